package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/app/repositories"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
	"github.com/arnav/gradlink/internal/pkg/auth"
	"github.com/arnav/gradlink/internal/pkg/email"
	"github.com/arnav/gradlink/internal/pkg/validation"
	"github.com/arnav/gradlink/internal/pkg/wizard"
)

const verificationTokenTTL = 24 * time.Hour

// AuthService handles signup, login and token operations. Signup runs
// through the wizard engine: a transient session accumulates the form
// data and the user row is only written when the final step passes.
type AuthService struct {
	userRepo         *repositories.UserRepository
	tokenRepo        *repositories.TokenRepository
	verificationRepo *repositories.VerificationTokenRepository
	jwtService       *auth.JWTService
	wizardStore      *wizard.Store
	emailService     email.EmailService
	logger           zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	verificationRepo *repositories.VerificationTokenRepository,
	jwtService *auth.JWTService,
	wizardStore *wizard.Store,
	emailService email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		tokenRepo:        tokenRepo,
		verificationRepo: verificationRepo,
		jwtService:       jwtService,
		wizardStore:      wizardStore,
		emailService:     emailService,
		logger:           logger,
	}
}

// signupDefinition builds the signup wizard for a role. Students walk five
// steps; alumni get an extra professional step. Each step's validator only
// inspects its own fields.
func signupDefinition(role models.RoleType) *wizard.Definition {
	steps := []wizard.Step{
		{
			Name:     "account",
			Fields:   []string{"email", "password", "confirmPassword"},
			Validate: validateAccountStep,
		},
		{
			Name:     "personal",
			Fields:   []string{"firstName", "lastName", "phone"},
			Validate: validatePersonalStep,
		},
		{
			Name:     "academic",
			Fields:   []string{"department", "graduationYear", "studentId", "currentYear"},
			Validate: academicStepValidator(role),
		},
	}

	if role == models.RoleAlumni {
		steps = append(steps, wizard.Step{
			Name:     "professional",
			Fields:   []string{"company", "jobTitle", "experienceYears"},
			Validate: validateProfessionalStep,
		})
	}

	steps = append(steps,
		wizard.Step{
			Name:     "profile",
			Fields:   []string{"bio", "linkedinUrl"},
			Validate: validateProfileStep,
		},
		wizard.Step{
			Name:     "review",
			Fields:   []string{"acceptTerms"},
			Validate: validateReviewStep,
		},
	)

	return &wizard.Definition{Name: "signup:" + string(role), Steps: steps}
}

func validateAccountStep(data wizard.Data) wizard.FieldErrors {
	errs := wizard.FieldErrors{}

	email := strings.TrimSpace(data["email"])
	if email == "" {
		errs["email"] = "Email is required"
	} else if !validation.IsValidEmail(email) {
		errs["email"] = "Enter a valid email address"
	}

	password := data["password"]
	if len(password) < validation.PasswordMinLength {
		errs["password"] = fmt.Sprintf("Password must be at least %d characters", validation.PasswordMinLength)
	} else if !hasLetterAndDigit(password) {
		errs["password"] = "Password must contain a letter and a digit"
	}

	if data["confirmPassword"] != password {
		errs["confirmPassword"] = "Passwords do not match"
	}
	return errs
}

func validatePersonalStep(data wizard.Data) wizard.FieldErrors {
	errs := wizard.FieldErrors{}
	if len(strings.TrimSpace(data["firstName"])) < validation.NameMinLength {
		errs["firstName"] = "First name is required"
	}
	if len(strings.TrimSpace(data["lastName"])) < validation.NameMinLength {
		errs["lastName"] = "Last name is required"
	}
	if phone := strings.TrimSpace(data["phone"]); phone != "" && !validation.IsValidPhone(phone) {
		errs["phone"] = "Enter a valid mobile number"
	}
	return errs
}

func academicStepValidator(role models.RoleType) func(wizard.Data) wizard.FieldErrors {
	return func(data wizard.Data) wizard.FieldErrors {
		errs := wizard.FieldErrors{}
		if strings.TrimSpace(data["department"]) == "" {
			errs["department"] = "Department is required"
		}

		year, err := strconv.Atoi(data["graduationYear"])
		if err != nil || year < 1950 || year > time.Now().Year()+6 {
			errs["graduationYear"] = "Enter a valid graduation year"
		}

		if role == models.RoleStudent {
			if strings.TrimSpace(data["studentId"]) == "" {
				errs["studentId"] = "Student ID is required"
			}
			if y, err := strconv.Atoi(data["currentYear"]); err != nil || y < 1 || y > 6 {
				errs["currentYear"] = "Enter your current year of study"
			}
		}
		return errs
	}
}

func validateProfessionalStep(data wizard.Data) wizard.FieldErrors {
	errs := wizard.FieldErrors{}
	if strings.TrimSpace(data["company"]) == "" {
		errs["company"] = "Company is required"
	}
	if strings.TrimSpace(data["jobTitle"]) == "" {
		errs["jobTitle"] = "Job title is required"
	}
	if yrs := data["experienceYears"]; yrs != "" {
		if n, err := strconv.Atoi(yrs); err != nil || n < 0 || n > 60 {
			errs["experienceYears"] = "Enter your years of experience"
		}
	}
	return errs
}

// validateProfileStep allows everything; bio and links are optional
func validateProfileStep(data wizard.Data) wizard.FieldErrors {
	errs := wizard.FieldErrors{}
	if link := strings.TrimSpace(data["linkedinUrl"]); link != "" && !strings.HasPrefix(link, "https://") {
		errs["linkedinUrl"] = "Link must start with https://"
	}
	return errs
}

func validateReviewStep(data wizard.Data) wizard.FieldErrors {
	errs := wizard.FieldErrors{}
	if data["acceptTerms"] != "true" {
		errs["acceptTerms"] = "You must accept the terms to continue"
	}
	return errs
}

func hasLetterAndDigit(s string) bool {
	hasLetter, hasDigit := false, false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// StartSignup opens a wizard session for the requested role
func (s *AuthService) StartSignup(role models.RoleType) (wizard.State, error) {
	if role != models.RoleStudent && role != models.RoleAlumni {
		return wizard.State{}, apperrors.NewBadRequestError("signup is only open to students and alumni")
	}
	session := s.wizardStore.Create(signupDefinition(role))
	s.logger.Info().Str("sessionId", session.ID).Str("role", string(role)).Msg("Signup wizard started")
	return session.Snapshot(), nil
}

// SetSignupField writes one field of a signup session
func (s *AuthService) SetSignupField(sessionID, field, value string) (wizard.State, error) {
	session, err := s.wizardStore.Get(sessionID)
	if err != nil {
		return wizard.State{}, apperrors.ErrWizardNotFound
	}
	session.SetField(field, value)
	return session.Snapshot(), nil
}

// SignupNext validates the current step and advances when it is clean.
// When the final step passes, the accumulated data becomes a user account.
func (s *AuthService) SignupNext(ctx context.Context, sessionID string) (wizard.State, *dto.TokenResponse, error) {
	session, err := s.wizardStore.Get(sessionID)
	if err != nil {
		return wizard.State{}, nil, apperrors.ErrWizardNotFound
	}

	done, _ := session.Next()
	state := session.Snapshot()
	if !done {
		return state, nil, nil
	}

	tokens, err := s.registerFromWizard(ctx, session)
	if err != nil {
		return state, nil, err
	}
	s.wizardStore.Delete(sessionID)
	return state, tokens, nil
}

// SignupPrevious steps a signup session back without validating
func (s *AuthService) SignupPrevious(sessionID string) (wizard.State, error) {
	session, err := s.wizardStore.Get(sessionID)
	if err != nil {
		return wizard.State{}, apperrors.ErrWizardNotFound
	}
	session.Previous()
	return session.Snapshot(), nil
}

// CancelSignup discards a signup session
func (s *AuthService) CancelSignup(sessionID string) {
	s.wizardStore.Delete(sessionID)
}

// registerFromWizard turns completed wizard data into a persisted user
func (s *AuthService) registerFromWizard(ctx context.Context, session *wizard.Session) (*dto.TokenResponse, error) {
	data := session.DataCopy()
	role := models.RoleStudent
	if strings.HasSuffix(session.Def.Name, string(models.RoleAlumni)) {
		role = models.RoleAlumni
	}

	exists, err := s.userRepo.EmailExists(ctx, data["email"])
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(data["password"])
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	gradYear, _ := strconv.Atoi(data["graduationYear"])
	user := &models.User{
		Email:          strings.TrimSpace(data["email"]),
		Password:       hashed,
		FirstName:      strings.TrimSpace(data["firstName"]),
		LastName:       strings.TrimSpace(data["lastName"]),
		RoleType:       role,
		Department:     strings.TrimSpace(data["department"]),
		GraduationYear: &gradYear,
		IsActive:       true,
	}
	if bio := strings.TrimSpace(data["bio"]); bio != "" {
		user.Bio = &bio
	}
	if link := strings.TrimSpace(data["linkedinUrl"]); link != "" {
		user.LinkedinURL = &link
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	switch role {
	case models.RoleStudent:
		currentYear, _ := strconv.Atoi(data["currentYear"])
		profile := &models.StudentProfile{
			UserID:      user.ID,
			StudentID:   strings.TrimSpace(data["studentId"]),
			CurrentYear: currentYear,
		}
		if err := s.userRepo.CreateStudentProfile(ctx, profile); err != nil {
			return nil, err
		}
	case models.RoleAlumni:
		expYears, _ := strconv.Atoi(data["experienceYears"])
		profile := &models.AlumniProfile{
			UserID:        user.ID,
			Company:       strings.TrimSpace(data["company"]),
			JobTitle:      strings.TrimSpace(data["jobTitle"]),
			ExperienceYrs: expYears,
			MentorRate:    500,
			OpenToMentor:  false,
		}
		if err := s.userRepo.CreateAlumniProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	if err := s.sendVerification(ctx, user); err != nil {
		// Account creation succeeded; a failed email must not roll it back
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send verification email")
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(role)).Msg("User registered via signup wizard")
	return s.issueTokens(ctx, user)
}

func (s *AuthService) sendVerification(ctx context.Context, user *models.User) error {
	token := uuid.New().String()
	if err := s.verificationRepo.Create(ctx, user.ID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		return err
	}
	return s.emailService.SendVerificationEmail(user.Email, user.FullName(), token)
}

// Login authenticates credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token into a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Rotate: the presented token is single-use
	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.Revoke(ctx, refreshToken)
}

// VerifyEmail consumes a verification token and marks the account verified
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	vt, err := s.verificationRepo.GetValid(ctx, token)
	if err != nil {
		return err
	}
	if err := s.verificationRepo.MarkUsed(ctx, vt.ID); err != nil {
		return err
	}
	return s.userRepo.MarkEmailVerified(ctx, vt.UserID)
}

// ResendVerification issues a fresh verification email for an unverified account
func (s *AuthService) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}
	return s.sendVerification(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.Create(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
