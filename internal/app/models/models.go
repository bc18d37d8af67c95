package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleAlumni  RoleType = "ALUMNI"
	RoleAdmin   RoleType = "ADMIN"
)

// Priority represents the urgency of a submitted request
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ReviewStatus is the tri-state decision status shared by event requests
// and approval items. Transitions are one-way: pending -> approved|rejected.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

// IsTerminal reports whether the status allows no further transition
func (s ReviewStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ValidPriority reports whether p is one of the known priority values
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
