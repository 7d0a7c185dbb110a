package models

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type Category struct {
	ID        int    `json:"id,omitempty" db:"id,omitempty"`
	Name      string `json:"name,omitempty" db:"name,omitempty"`
	Type      string `json:"type,omitempty" db:"type,omitempty"`
	CreatedAt string `json:"created_at,omitempty" db:"created_at,omitempty"`
}

// ValidType reports whether t is one of the two transaction/category types.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}
