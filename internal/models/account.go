package models

import "time"

// Account represents a bank account owned by one person.
// Deleting an account does not cascade; its ledger entries stay.
type Account struct {
	ID        string    `json:"id"`
	PersonID  string    `json:"person_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
