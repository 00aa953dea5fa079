// Package queue defines message payloads exchanged over the message broker.
package queue

// AllocationCompletedEvent is published after an allocation run
// committed.  It carries enough context for downstream consumers to
// log or notify without querying the primary database.
type AllocationCompletedEvent struct {
	RunID         string   `json:"run_id"`
	Method        string   `json:"method"`
	Allocated     int      `json:"allocated"`
	TotalStudents int      `json:"total_students"`
	Rooms         []string `json:"rooms"`
	CompletedAt   string   `json:"completed_at"`
}
