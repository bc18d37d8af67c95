package dto

// ApprovalListParams filter the admin approval queue. All active filters
// are applied as a conjunction; search is case-insensitive substring match.
type ApprovalListParams struct {
	Search   string
	Status   string
	Type     string
	Priority string
	Page     int
	Size     int
}

// DecideApprovalRequest carries the optional note of an approve/reject action
type DecideApprovalRequest struct {
	Note string `json:"note" binding:"max=1000"`
}
