package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ApprovalType discriminates the detail payload carried by an approval item
type ApprovalType string

const (
	ApprovalTypeProfile  ApprovalType = "profile"
	ApprovalTypeEvent    ApprovalType = "event"
	ApprovalTypeDonation ApprovalType = "donation"
	ApprovalTypeJob      ApprovalType = "job"
	ApprovalTypeContent  ApprovalType = "content"
)

// ApprovalDetails is the tagged-union interface implemented by one detail
// struct per approval type. The discriminator lives on the Approval row;
// the payload is stored as JSONB.
type ApprovalDetails interface {
	ApprovalType() ApprovalType
}

// ProfileDetails carries a profile-change submission
type ProfileDetails struct {
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

func (ProfileDetails) ApprovalType() ApprovalType { return ApprovalTypeProfile }

// EventDetails carries an event proposal submission
type EventDetails struct {
	EventRequestID int64     `json:"eventRequestId"`
	Title          string    `json:"title"`
	Venue          string    `json:"venue"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	ExpectedCount  int       `json:"expectedCount"`
}

func (EventDetails) ApprovalType() ApprovalType { return ApprovalTypeEvent }

// DonationDetails carries a donation pledge submission
type DonationDetails struct {
	Amount  int64  `json:"amount"` // Whole rupees
	Purpose string `json:"purpose"`
}

func (DonationDetails) ApprovalType() ApprovalType { return ApprovalTypeDonation }

// JobDetails carries a job posting submission
type JobDetails struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Location string `json:"location"`
	ApplyURL string `json:"applyUrl"`
}

func (JobDetails) ApprovalType() ApprovalType { return ApprovalTypeJob }

// ContentDetails carries a flagged or submitted content item
type ContentDetails struct {
	PostID  int64  `json:"postId"`
	Excerpt string `json:"excerpt"`
	Reason  string `json:"reason"`
}

func (ContentDetails) ApprovalType() ApprovalType { return ApprovalTypeContent }

// DecodeApprovalDetails unmarshals a JSONB payload into the detail struct
// matching the discriminator. Unknown types are an error, not a fallthrough.
func DecodeApprovalDetails(t ApprovalType, raw []byte) (ApprovalDetails, error) {
	var (
		details ApprovalDetails
		err     error
	)
	switch t {
	case ApprovalTypeProfile:
		var d ProfileDetails
		err = json.Unmarshal(raw, &d)
		details = d
	case ApprovalTypeEvent:
		var d EventDetails
		err = json.Unmarshal(raw, &d)
		details = d
	case ApprovalTypeDonation:
		var d DonationDetails
		err = json.Unmarshal(raw, &d)
		details = d
	case ApprovalTypeJob:
		var d JobDetails
		err = json.Unmarshal(raw, &d)
		details = d
	case ApprovalTypeContent:
		var d ContentDetails
		err = json.Unmarshal(raw, &d)
		details = d
	default:
		return nil, fmt.Errorf("unknown approval type %q", t)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s approval details: %w", t, err)
	}
	return details, nil
}

// Approval defines an approval item based on the 'approvals' table.
// It is the single canonical record behind the admin approval queue,
// the event-approval screen and the event list.
type Approval struct {
	ID           int64           `json:"id" db:"id"`
	Type         ApprovalType    `json:"type" db:"type"`
	SubmitterID  int64           `json:"submitterId" db:"submitter_id"`
	Title        string          `json:"title" db:"title"`
	Description  string          `json:"description" db:"description"`
	Priority     Priority        `json:"priority" db:"priority"`
	Status       ReviewStatus    `json:"status" db:"status"`
	Details      ApprovalDetails `json:"details" db:"-"`
	DecidedBy    *int64          `json:"decidedBy,omitempty" db:"decided_by"`
	DecisionNote *string         `json:"decisionNote,omitempty" db:"decision_note"`
	DecidedAt    *time.Time      `json:"decidedAt,omitempty" db:"decided_at"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	Submitter    *User           `json:"submitter,omitempty"` // Relation, no db tag
}

// Decide returns a copy of the approval with the decision applied.
// Only pending items can be decided; the receiver is never mutated.
func (a Approval) Decide(status ReviewStatus, adminID int64, note string, at time.Time) (Approval, error) {
	if a.Status.IsTerminal() {
		return Approval{}, fmt.Errorf("approval %d already %s", a.ID, a.Status)
	}
	if !status.IsTerminal() {
		return Approval{}, fmt.Errorf("invalid decision status %q", status)
	}
	decided := a
	decided.Status = status
	decided.DecidedBy = &adminID
	decided.DecidedAt = &at
	if note != "" {
		decided.DecisionNote = &note
	}
	return decided, nil
}
