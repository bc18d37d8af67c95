package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/pkg/wizard"
)

func newTestWizardStore(t *testing.T) *wizard.Store {
	t.Helper()
	store := wizard.NewStore(time.Minute, zerolog.Nop())
	t.Cleanup(store.Close)
	return store
}

func TestSignupDefinitionStepCounts(t *testing.T) {
	student := signupDefinition(models.RoleStudent)
	alumni := signupDefinition(models.RoleAlumni)

	assert.Equal(t, 5, student.StepCount())
	assert.Equal(t, 6, alumni.StepCount())

	// The professional step only exists for alumni
	names := func(def *wizard.Definition) []string {
		out := make([]string, 0, len(def.Steps))
		for _, s := range def.Steps {
			out = append(out, s.Name)
		}
		return out
	}
	assert.Equal(t, []string{"account", "personal", "academic", "profile", "review"}, names(student))
	assert.Equal(t, []string{"account", "personal", "academic", "professional", "profile", "review"}, names(alumni))
}

func TestValidateAccountStep(t *testing.T) {
	cases := []struct {
		name   string
		data   wizard.Data
		broken []string
	}{
		{
			name:   "all valid",
			data:   wizard.Data{"email": "sarah@alumni.edu", "password": "passw0rd", "confirmPassword": "passw0rd"},
			broken: nil,
		},
		{
			name:   "missing email",
			data:   wizard.Data{"password": "passw0rd", "confirmPassword": "passw0rd"},
			broken: []string{"email"},
		},
		{
			name:   "malformed email",
			data:   wizard.Data{"email": "not-an-email", "password": "passw0rd", "confirmPassword": "passw0rd"},
			broken: []string{"email"},
		},
		{
			name:   "short password",
			data:   wizard.Data{"email": "sarah@alumni.edu", "password": "ab1", "confirmPassword": "ab1"},
			broken: []string{"password"},
		},
		{
			name:   "password without digit",
			data:   wizard.Data{"email": "sarah@alumni.edu", "password": "passwords", "confirmPassword": "passwords"},
			broken: []string{"password"},
		},
		{
			name:   "mismatched confirmation",
			data:   wizard.Data{"email": "sarah@alumni.edu", "password": "passw0rd", "confirmPassword": "passw0rd!"},
			broken: []string{"confirmPassword"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := validateAccountStep(tc.data)
			require.Len(t, errs, len(tc.broken))
			for _, field := range tc.broken {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidatePersonalStep(t *testing.T) {
	errs := validatePersonalStep(wizard.Data{"firstName": "Sarah", "lastName": "Mehta"})
	assert.Empty(t, errs, "phone is optional")

	errs = validatePersonalStep(wizard.Data{"firstName": "S", "lastName": "", "phone": "12345"})
	assert.Contains(t, errs, "firstName")
	assert.Contains(t, errs, "lastName")
	assert.Contains(t, errs, "phone")

	errs = validatePersonalStep(wizard.Data{"firstName": "Sarah", "lastName": "Mehta", "phone": "+919876543210"})
	assert.Empty(t, errs)
}

func TestAcademicStepValidatorByRole(t *testing.T) {
	year := strconv.Itoa(time.Now().Year())

	// Alumni do not need student fields
	errs := academicStepValidator(models.RoleAlumni)(wizard.Data{
		"department":     "Computer Science",
		"graduationYear": "2018",
	})
	assert.Empty(t, errs)

	// Students need a student id and a current year
	errs = academicStepValidator(models.RoleStudent)(wizard.Data{
		"department":     "Computer Science",
		"graduationYear": year,
	})
	assert.Contains(t, errs, "studentId")
	assert.Contains(t, errs, "currentYear")

	errs = academicStepValidator(models.RoleStudent)(wizard.Data{
		"department":     "Computer Science",
		"graduationYear": year,
		"studentId":      "CS2023001",
		"currentYear":    "3",
	})
	assert.Empty(t, errs)

	// Graduation year bounds
	errs = academicStepValidator(models.RoleAlumni)(wizard.Data{
		"department":     "Computer Science",
		"graduationYear": "1930",
	})
	assert.Contains(t, errs, "graduationYear")
}

func TestValidateProfessionalStep(t *testing.T) {
	errs := validateProfessionalStep(wizard.Data{"company": "Acme", "jobTitle": "Engineer"})
	assert.Empty(t, errs, "experience is optional")

	errs = validateProfessionalStep(wizard.Data{"company": "", "jobTitle": "", "experienceYears": "-2"})
	assert.Contains(t, errs, "company")
	assert.Contains(t, errs, "jobTitle")
	assert.Contains(t, errs, "experienceYears")
}

func TestValidateProfileStep(t *testing.T) {
	assert.Empty(t, validateProfileStep(wizard.Data{}))
	assert.Empty(t, validateProfileStep(wizard.Data{"linkedinUrl": "https://linkedin.com/in/sarah"}))
	assert.Contains(t, validateProfileStep(wizard.Data{"linkedinUrl": "http://linkedin.com/in/sarah"}), "linkedinUrl")
}

func TestValidateReviewStep(t *testing.T) {
	assert.Contains(t, validateReviewStep(wizard.Data{}), "acceptTerms")
	assert.Contains(t, validateReviewStep(wizard.Data{"acceptTerms": "false"}), "acceptTerms")
	assert.Empty(t, validateReviewStep(wizard.Data{"acceptTerms": "true"}))
}

func TestInvalidEmailKeepsSignupOnStepOne(t *testing.T) {
	def := signupDefinition(models.RoleStudent)
	store := newTestWizardStore(t)
	session := store.Create(def)

	session.SetField("email", "not-an-email")
	session.SetField("password", "passw0rd")
	session.SetField("confirmPassword", "passw0rd")

	done, errs := session.Next()
	assert.False(t, done)
	assert.Contains(t, errs, "email")
	assert.Equal(t, 1, session.Snapshot().Step)

	// Correcting the field clears its error and unblocks the step
	session.SetField("email", "sarah@university.edu")
	assert.NotContains(t, session.Snapshot().Errors, "email")

	done, errs = session.Next()
	assert.False(t, done)
	assert.Empty(t, errs)
	assert.Equal(t, 2, session.Snapshot().Step)
}

func TestBookingWizardWalkthrough(t *testing.T) {
	store := newTestWizardStore(t)
	session := store.Create(bookingDefinition())
	require.Equal(t, 4, session.Snapshot().TotalSteps)

	when := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	session.SetField("mentorId", "3")
	session.SetField("topic", "System design interviews")
	session.SetField("scheduledAt", when)
	done, errs := session.Next()
	require.False(t, done)
	require.Empty(t, errs)

	// Hours outside 1..8 block the schedule step
	session.SetField("hours", "12")
	done, errs = session.Next()
	assert.False(t, done)
	assert.Contains(t, errs, "hours")

	session.SetField("hours", "2")
	session.SetField("message", "Looking forward to it")
	done, errs = session.Next()
	require.False(t, done)
	require.Empty(t, errs)

	session.SetField("name", "Rohit Kumar")
	session.SetField("email", "rohit@university.edu")
	done, errs = session.Next()
	require.False(t, done)
	require.Empty(t, errs, "phone is optional on the contact step")

	session.SetField("acceptTerms", "true")
	done, _ = session.Next()
	assert.True(t, done)
	assert.True(t, session.Completed())
}

func TestBookingDetailsStepRejectsPastSessions(t *testing.T) {
	errs := validateBookingDetails(wizard.Data{
		"mentorId":    "3",
		"topic":       "Resume review",
		"scheduledAt": time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	assert.Contains(t, errs, "scheduledAt")
}
