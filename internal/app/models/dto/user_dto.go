package dto

// UpdateProfileRequest updates the caller's own profile
type UpdateProfileRequest struct {
	FirstName   string  `json:"firstName" binding:"required,min=2,max=100"`
	LastName    string  `json:"lastName" binding:"required,min=2,max=100"`
	Department  string  `json:"department" binding:"required"`
	Bio         *string `json:"bio,omitempty"`
	LinkedinURL *string `json:"linkedinUrl,omitempty" binding:"omitempty,url"`
}

// UpdateMentorSettingsRequest updates an alumni user's mentoring settings
type UpdateMentorSettingsRequest struct {
	Company      string `json:"company" binding:"required"`
	JobTitle     string `json:"jobTitle" binding:"required"`
	MentorRate   int64  `json:"mentorRate" binding:"required,min=0"`
	OpenToMentor bool   `json:"openToMentor"`
}

// UserListParams are the admin user-list filters
type UserListParams struct {
	Search     string
	Role       string
	Department string
	Active     *bool
	Page       int
	Size       int
}

// UserListResponse is a paginated user list
type UserListResponse struct {
	Users []interface{} `json:"users"`
	PaginationInfo
}

// SetUserStatusRequest activates or deactivates an account
type SetUserStatusRequest struct {
	IsActive bool `json:"isActive"`
}
