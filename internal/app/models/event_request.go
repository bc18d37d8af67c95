package models

import (
	"time"
)

// EventRequest defines an alumni-submitted event proposal based on the
// 'event_requests' table. Submitting one also files an approval item of
// type "event" that references it, so admin screens and the event list
// read the same underlying decision.
type EventRequest struct {
	ID            int64        `json:"id" db:"id"`
	SubmitterID   int64        `json:"submitterId" db:"submitter_id"`
	Title         string       `json:"title" db:"title"`
	Description   string       `json:"description" db:"description"`
	Venue         string       `json:"venue" db:"venue"`
	ScheduledAt   time.Time    `json:"scheduledAt" db:"scheduled_at"`
	ExpectedCount int          `json:"expectedCount" db:"expected_count"`
	Priority      Priority     `json:"priority" db:"priority"`
	Status        ReviewStatus `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
	Submitter     *User        `json:"submitter,omitempty"` // Relation, no db tag
}
