package models

import "time"

// Category is a tag applied to ledger entries and obligation templates.
// Keywords drive the statement-import categorizer.
type Category struct {
	ID        string    `json:"id"`
	PersonID  string    `json:"person_id"`
	Name      string    `json:"name"`
	Keywords  []string  `json:"keywords,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
