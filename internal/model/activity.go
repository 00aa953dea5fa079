package model

import "time"

// Activity is one row of the `activity_log` table.  Uploads,
// allocation runs, swaps and exports each append an entry so the
// admin dashboard can show what happened recently.
type Activity struct {
	ID          uint64    `json:"id"`           // activity_log.id
	Type        string    `json:"type"`         // activity_log.activity_type
	Description string    `json:"description"`  // activity_log.description
	CreatedAt   time.Time `json:"created_at"`   // activity_log.created_at
}
