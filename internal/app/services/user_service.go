package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/app/repositories"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
	"github.com/arnav/gradlink/internal/pkg/filestorage"
)

// UserService handles profile and admin user management operations
type UserService struct {
	userRepo    *repositories.UserRepository
	fileStorage *filestorage.LocalStorage
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, fileStorage *filestorage.LocalStorage, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// GetProfile returns a user with their role-specific profile attached
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, interface{}, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	switch user.RoleType {
	case models.RoleStudent:
		profile, err := s.userRepo.GetStudentProfileByUserID(ctx, userID)
		if err != nil {
			return user, nil, nil
		}
		return user, profile, nil
	case models.RoleAlumni:
		profile, err := s.userRepo.GetAlumniProfileByUserID(ctx, userID)
		if err != nil {
			return user, nil, nil
		}
		return user, profile, nil
	}
	return user, nil, nil
}

// UpdateProfile updates the caller's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*models.User, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, req); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfilePhoto stores an uploaded photo and records its URL
func (s *UserService) UpdateProfilePhoto(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.fileStorage.SaveProfilePhoto(file)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateProfilePhotoURL(ctx, userID, &url); err != nil {
		return "", err
	}

	// Best effort removal of the replaced photo
	if user.ProfilePhotoURL != nil {
		if err := s.fileStorage.Delete(*user.ProfilePhotoURL); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to remove previous profile photo")
		}
	}
	return url, nil
}

// UpdateMentorSettings updates an alumni user's mentoring configuration
func (s *UserService) UpdateMentorSettings(ctx context.Context, userID int64, req dto.UpdateMentorSettingsRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.RoleType != models.RoleAlumni {
		return apperrors.NewForbiddenError("only alumni can offer mentoring")
	}
	return s.userRepo.UpdateMentorSettings(ctx, userID, req)
}

// ListUsers returns the admin user list with filters applied together
func (s *UserService) ListUsers(ctx context.Context, params dto.UserListParams) ([]models.User, int64, error) {
	return s.userRepo.GetAll(ctx, params)
}

// SetUserStatus activates or deactivates an account. Accounts are never
// deleted, only disabled.
func (s *UserService) SetUserStatus(ctx context.Context, userID int64, active bool) error {
	return s.userRepo.SetActive(ctx, userID, active)
}

// ListMentors returns active alumni open to mentoring
func (s *UserService) ListMentors(ctx context.Context, search string, page, size int) ([]models.AlumniProfile, int64, error) {
	return s.userRepo.ListMentors(ctx, search, page, size)
}
