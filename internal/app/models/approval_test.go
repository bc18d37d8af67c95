package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideAppliesDecisionOnCopy(t *testing.T) {
	original := Approval{
		ID:          1,
		Type:        ApprovalTypeEvent,
		SubmitterID: 5,
		Title:       "Annual meetup",
		Status:      StatusPending,
	}

	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	decided, err := original.Decide(StatusApproved, 9, "looks good", at)
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, int64(9), *decided.DecidedBy)
	require.NotNil(t, decided.DecisionNote)
	assert.Equal(t, "looks good", *decided.DecisionNote)
	require.NotNil(t, decided.DecidedAt)
	assert.Equal(t, at, *decided.DecidedAt)

	// The receiver is untouched
	assert.Equal(t, StatusPending, original.Status)
	assert.Nil(t, original.DecidedBy)
}

func TestDecideRejectsNonPending(t *testing.T) {
	for _, status := range []ReviewStatus{StatusApproved, StatusRejected} {
		a := Approval{ID: 1, Status: status}
		_, err := a.Decide(StatusRejected, 9, "", time.Now())
		assert.Error(t, err, "a %s item must not be decided again", status)
	}
}

func TestDecideRequiresTerminalTarget(t *testing.T) {
	a := Approval{ID: 1, Status: StatusPending}
	_, err := a.Decide(StatusPending, 9, "", time.Now())
	assert.Error(t, err)
}

func TestDecideOmitsEmptyNote(t *testing.T) {
	a := Approval{ID: 1, Status: StatusPending}
	decided, err := a.Decide(StatusRejected, 9, "", time.Now())
	require.NoError(t, err)
	assert.Nil(t, decided.DecisionNote)
}

func TestDecodeApprovalDetailsRoundTrip(t *testing.T) {
	cases := []ApprovalDetails{
		ProfileDetails{Field: "company", OldValue: "Acme", NewValue: "Globex"},
		EventDetails{EventRequestID: 3, Title: "Meetup", Venue: "Auditorium", ExpectedCount: 120},
		DonationDetails{Amount: 25000, Purpose: "scholarship fund"},
		JobDetails{Company: "Acme", Position: "SDE II", Location: "Pune", ApplyURL: "https://acme.example/jobs/1"},
		ContentDetails{PostID: 44, Excerpt: "…", Reason: "reported"},
	}

	for _, details := range cases {
		t.Run(string(details.ApprovalType()), func(t *testing.T) {
			raw, err := json.Marshal(details)
			require.NoError(t, err)

			decoded, err := DecodeApprovalDetails(details.ApprovalType(), raw)
			require.NoError(t, err)
			assert.Equal(t, details, decoded)
		})
	}
}

func TestDecodeApprovalDetailsUnknownType(t *testing.T) {
	_, err := DecodeApprovalDetails(ApprovalType("merchandise"), []byte(`{}`))
	assert.Error(t, err, "unknown discriminators are an error, not a fallthrough")
}

func TestReviewStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}
