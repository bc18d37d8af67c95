package models

import (
	"fmt"
	"time"
)

// BookingStatus tracks a mentoring session booking through payment
type BookingStatus string

const (
	BookingDraft          BookingStatus = "draft"           // Wizard completed, order not yet created
	BookingPendingPayment BookingStatus = "pending_payment" // Payment order created, awaiting capture
	BookingConfirmed      BookingStatus = "confirmed"       // Payment verified server-side
	BookingCancelled      BookingStatus = "cancelled"       // Checkout dismissed or order abandoned
)

// Booking defines a mentoring session booking based on the 'bookings' table.
// HourlyRate is a snapshot of the mentor's rate at booking time so a later
// rate change cannot alter an agreed total.
type Booking struct {
	ID          int64         `json:"id" db:"id"`
	StudentID   int64         `json:"studentId" db:"student_id"`
	MentorID    int64         `json:"mentorId" db:"mentor_id"`
	Topic       string        `json:"topic" db:"topic"`
	ScheduledAt time.Time     `json:"scheduledAt" db:"scheduled_at"`
	Hours       int           `json:"hours" db:"hours"`
	HourlyRate  int64         `json:"hourlyRate" db:"hourly_rate"`   // Whole rupees per hour
	TotalAmount int64         `json:"totalAmount" db:"total_amount"` // Hours * HourlyRate, whole rupees
	Message     string        `json:"message" db:"message"`
	Status      BookingStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
	Mentor      *User         `json:"mentor,omitempty"`  // Relation, no db tag
	Student     *User         `json:"student,omitempty"` // Relation, no db tag
}

// BookingTotal computes the amount owed for a session in whole rupees
func BookingTotal(hours int, hourlyRate int64) int64 {
	return int64(hours) * hourlyRate
}

// bookingTransitions lists the allowed forward moves for a booking
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingDraft:          {BookingPendingPayment, BookingCancelled},
	BookingPendingPayment: {BookingConfirmed, BookingCancelled, BookingDraft},
	BookingConfirmed:      {},
	BookingCancelled:      {},
}

// CanTransition reports whether a booking may move from one status to another.
// pending_payment -> draft is the release path when a checkout is dismissed.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition returns a copy of the booking in the new status or an error
// if the move is not allowed
func (b Booking) Transition(to BookingStatus, at time.Time) (Booking, error) {
	if !b.Status.CanTransition(to) {
		return Booking{}, fmt.Errorf("booking %d cannot move from %s to %s", b.ID, b.Status, to)
	}
	next := b
	next.Status = to
	next.UpdatedAt = at
	return next, nil
}
