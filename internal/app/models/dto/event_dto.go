package dto

// CreateEventRequestRequest submits an event proposal
type CreateEventRequestRequest struct {
	Title         string `json:"title" binding:"required,min=3,max=255"`
	Description   string `json:"description"`
	Venue         string `json:"venue" binding:"required"`
	ScheduledAt   string `json:"scheduledAt" binding:"required"` // RFC 3339
	ExpectedCount int    `json:"expectedCount" binding:"min=0"`
	Priority      string `json:"priority" binding:"required,oneof=low medium high"`
}

// EventRequestListParams filter the event request list
type EventRequestListParams struct {
	Search   string
	Status   string
	Priority string
	Page     int
	Size     int
}
