package models

type User struct {
	ID        int    `json:"id,omitempty" db:"id,omitempty"`
	Email     string `json:"email,omitempty" db:"email,omitempty"`
	Password  string `json:"password,omitempty" db:"password,omitempty"`
	CreatedAt string `json:"created_at,omitempty" db:"created_at,omitempty"`
}
