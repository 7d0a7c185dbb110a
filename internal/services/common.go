package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

func GenerateReference(prefix string) string {
	suffix := fmt.Sprintf("%04d", rand.Intn(10000))
	return fmt.Sprintf("%s%s-%s", prefix, time.Now().Format("20060102150405"), suffix)
}

// NewTransferReference returns the shared reference stamped on both legs of
// a transfer so the paired transactions can be matched in the ledger.
func NewTransferReference() string {
	return fmt.Sprintf("TRF-%s", uuid.NewString())
}
