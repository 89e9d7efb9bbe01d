package models

import "time"

// Person represents an owning person in the household graph. Persons may
// declare bidirectional relations to other persons; aggregation queries
// expand to the owner plus all related persons so linked users see a
// merged ledger.
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Relations []string  `json:"relations,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
