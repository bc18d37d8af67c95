// Package seed creates the default data the platform needs on first boot
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/arnav/gradlink/internal/app/models"
	appRepos "github.com/arnav/gradlink/internal/app/repositories"
)

// CreateDefaultData creates the default admin account and a demo mentor if
// they don't exist yet. Errors are collected so one failure does not stop
// the rest of the seeding.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin account --- //
	exists, err := userRepo.EmailExists(ctx, "admin@gradlink.app")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:         "admin@gradlink.app",
				Password:      string(hashedPassword),
				FirstName:     "GradLink",
				LastName:      "Admin",
				RoleType:      appModels.RoleAdmin,
				Department:    "Administration",
				IsActive:      true,
				EmailVerified: true,
			}
			if err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating default admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("userID", admin.ID).Msg("Default admin user created")
			}
		}
	}

	// --- Demo mentor, so the booking flow works out of the box --- //
	exists, err = userRepo.EmailExists(ctx, "mentor@gradlink.app")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if demo mentor exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating demo mentor account...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Mentor123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing mentor password")
			finalErr = errors.Join(finalErr, err)
		} else {
			gradYear := 2018
			mentor := &appModels.User{
				Email:          "mentor@gradlink.app",
				Password:       string(hashedPassword),
				FirstName:      "Priya",
				LastName:       "Sharma",
				RoleType:       appModels.RoleAlumni,
				Department:     "Computer Science",
				GraduationYear: &gradYear,
				IsActive:       true,
				EmailVerified:  true,
			}
			if err := userRepo.Create(ctx, mentor); err != nil {
				lgr.Error().Err(err).Msg("Error creating demo mentor user")
				finalErr = errors.Join(finalErr, err)
			} else {
				profile := &appModels.AlumniProfile{
					UserID:        mentor.ID,
					Company:       "Acme Software",
					JobTitle:      "Staff Engineer",
					ExperienceYrs: 7,
					MentorRate:    500,
					OpenToMentor:  true,
				}
				if err := userRepo.CreateAlumniProfile(ctx, profile); err != nil {
					lgr.Error().Err(err).Msg("Error creating demo mentor profile")
					finalErr = errors.Join(finalErr, err)
				} else {
					lgr.Info().Int64("userID", mentor.ID).Msg("Demo mentor created")
				}
			}
		}
	}

	return finalErr
}
