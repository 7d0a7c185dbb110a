package cron

import (
	"context"
	"time"

	"fintrack/internal/repositories/datastore"
	"fintrack/internal/services"
	"fintrack/pkg/utils"

	"github.com/robfig/cron/v3"
)

func StartCronJob(ds *datastore.DataStore) *cron.Cron {
	c := cron.New()

	// Hourly total balance snapshot, so reconstruction has data even when
	// no mutations happen.
	_, err := c.AddFunc("0 * * * *", func() {
		if err := RecordHourlySnapshot(ds); err != nil {
			utils.Logger.Errorf("Cron job failed to record balance snapshot: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule balance snapshot job: %v", err)
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (balance snapshot hourly)")
	return c
}

func RecordHourlySnapshot(ds *datastore.DataStore) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return services.RecordBalanceSnapshot(ctx, ds)
}
