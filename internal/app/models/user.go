package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email           string     `json:"email" db:"email" example:"sarah@alumni.edu"`              // User's email address
	Password        string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	FirstName       string     `json:"firstName" db:"first_name" example:"Sarah"`                // User's first name
	LastName        string     `json:"lastName" db:"last_name" example:"Mehta"`                  // User's last name
	RoleType        RoleType   `json:"roleType" db:"role_type" example:"ALUMNI"`                 // User's role (STUDENT, ALUMNI or ADMIN)
	Department      string     `json:"department" db:"department" example:"Computer Science"`    // Department the user belongs to
	GraduationYear  *int       `json:"graduationYear,omitempty" db:"graduation_year"`            // Graduation year (nullable for admins)
	Bio             *string    `json:"bio,omitempty" db:"bio"`                                   // Free-form profile bio (nullable)
	LinkedinURL     *string    `json:"linkedinUrl,omitempty" db:"linkedin_url"`                  // LinkedIn profile link (nullable)
	ProfilePhotoURL *string    `json:"profilePhotoUrl,omitempty" db:"profile_photo_url"`         // URL of the user's profile photo (nullable)
	IsActive        bool       `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	EmailVerified   bool       `json:"emailVerified" db:"email_verified"`                        // Whether the email address has been verified
	CreatedAt       time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`                                // Timestamp when the user was last updated
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
}

// FullName returns the display name used in notifications and search
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// AlumniProfile defines the alumni profile model based on the 'alumni_profiles' table.
// Only users with RoleAlumni carry one.
type AlumniProfile struct {
	ID             int64  `json:"id" db:"id"`
	UserID         int64  `json:"userId" db:"user_id"`
	Company        string `json:"company" db:"company"`
	JobTitle       string `json:"jobTitle" db:"job_title"`
	ExperienceYrs  int    `json:"experienceYears" db:"experience_years"`
	MentorRate     int64  `json:"mentorRate" db:"mentor_rate"` // Hourly mentoring rate in whole rupees
	OpenToMentor   bool   `json:"openToMentor" db:"open_to_mentor"`
	User           *User  `json:"user,omitempty"` // Relation, no db tag
}

// StudentProfile defines the student profile model based on the 'student_profiles' table
type StudentProfile struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"userId" db:"user_id"`
	StudentID   string `json:"studentId" db:"student_id"`
	CurrentYear int    `json:"currentYear" db:"current_year"`
	User        *User  `json:"user,omitempty"` // Relation, no db tag
}
