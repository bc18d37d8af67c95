package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
	"github.com/arnav/gradlink/internal/pkg/logger"
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation error.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // 23505 is unique_violation
}

// UserRepository handles user and profile database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const userColumns = `id, email, password, first_name, last_name, role_type, department,
	graduation_year, bio, linkedin_url, profile_photo_url, is_active, email_verified,
	created_at, updated_at, last_login_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.RoleType, &user.Department, &user.GraduationYear, &user.Bio,
		&user.LinkedinURL, &user.ProfilePhotoURL, &user.IsActive, &user.EmailVerified,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user and sets its ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "first_name", "last_name", "role_type",
			"department", "graduation_year", "bio", "linkedin_url", "email_verified").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.RoleType,
			user.Department, user.GraduationYear, user.Bio, user.LinkedinURL, user.EmailVerified).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	return user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves users with admin-screen filters and pagination.
// All active filters are applied together; search matches name and email
// case-insensitively.
func (r *UserRepository) GetAll(ctx context.Context, params dto.UserListParams) ([]models.User, int64, error) {
	builder := r.sb.Select(userColumns+", COUNT(*) OVER() AS total_count").
		From("users")

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"first_name || ' ' || last_name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}
	if params.Role != "" {
		builder = builder.Where(squirrel.Eq{"role_type": params.Role})
	}
	if params.Department != "" {
		builder = builder.Where(squirrel.Eq{"department": params.Department})
	}
	if params.Active != nil {
		builder = builder.Where(squirrel.Eq{"is_active": *params.Active})
	}

	offset := (params.Page - 1) * params.Size
	sql, args, err := builder.
		OrderBy("created_at DESC").
		Limit(uint64(params.Size)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build user list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing user list query")
		return nil, 0, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	var total int64
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
			&user.RoleType, &user.Department, &user.GraduationYear, &user.Bio,
			&user.LinkedinURL, &user.ProfilePhotoURL, &user.IsActive, &user.EmailVerified,
			&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, total, nil
}

// UpdateProfile updates a user's editable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"first_name":   req.FirstName,
			"last_name":    req.LastName,
			"department":   req.Department,
			"bio":          req.Bio,
			"linkedin_url": req.LinkedinURL,
			"updated_at":   time.Now(),
		}).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateProfilePhotoURL sets or clears the profile photo URL
func (r *UserRepository) UpdateProfilePhotoURL(ctx context.Context, userID int64, url *string) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE users SET profile_photo_url = $1, updated_at = NOW() WHERE id = $2", url, userID)
	if err != nil {
		return fmt.Errorf("error updating profile photo: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin records a successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET last_login_at = NOW() WHERE id = $1", userID)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// SetActive activates or deactivates an account
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2", active, userID)
	if err != nil {
		return fmt.Errorf("error setting user status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// MarkEmailVerified flips the email_verified flag
func (r *UserRepository) MarkEmailVerified(ctx context.Context, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE users SET email_verified = TRUE, updated_at = NOW() WHERE id = $1", userID)
	if err != nil {
		return fmt.Errorf("error marking email verified: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// CreateStudentProfile inserts a student profile row
func (r *UserRepository) CreateStudentProfile(ctx context.Context, profile *models.StudentProfile) error {
	sql, args, err := r.sb.Insert("student_profiles").
		Columns("user_id", "student_id", "current_year").
		Values(profile.UserID, profile.StudentID, profile.CurrentYear).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student profile query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&profile.ID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.NewConflictError("student ID is already registered")
		}
		return fmt.Errorf("error creating student profile: %w", err)
	}
	return nil
}

// CreateAlumniProfile inserts an alumni profile row
func (r *UserRepository) CreateAlumniProfile(ctx context.Context, profile *models.AlumniProfile) error {
	sql, args, err := r.sb.Insert("alumni_profiles").
		Columns("user_id", "company", "job_title", "experience_years", "mentor_rate", "open_to_mentor").
		Values(profile.UserID, profile.Company, profile.JobTitle, profile.ExperienceYrs,
			profile.MentorRate, profile.OpenToMentor).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create alumni profile query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&profile.ID)
	if err != nil {
		return fmt.Errorf("error creating alumni profile: %w", err)
	}
	return nil
}

// GetAlumniProfileByUserID retrieves the alumni profile of a user
func (r *UserRepository) GetAlumniProfileByUserID(ctx context.Context, userID int64) (*models.AlumniProfile, error) {
	profile := &models.AlumniProfile{}
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, company, job_title, experience_years, mentor_rate, open_to_mentor
		 FROM alumni_profiles WHERE user_id = $1`, userID).
		Scan(&profile.ID, &profile.UserID, &profile.Company, &profile.JobTitle,
			&profile.ExperienceYrs, &profile.MentorRate, &profile.OpenToMentor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMentorNotFound
		}
		return nil, fmt.Errorf("error getting alumni profile: %w", err)
	}
	return profile, nil
}

// GetStudentProfileByUserID retrieves the student profile of a user
func (r *UserRepository) GetStudentProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	profile := &models.StudentProfile{}
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, student_id, current_year
		 FROM student_profiles WHERE user_id = $1`, userID).
		Scan(&profile.ID, &profile.UserID, &profile.StudentID, &profile.CurrentYear)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting student profile: %w", err)
	}
	return profile, nil
}

// UpdateMentorSettings updates an alumni user's mentoring fields
func (r *UserRepository) UpdateMentorSettings(ctx context.Context, userID int64, req dto.UpdateMentorSettingsRequest) error {
	sql, args, err := r.sb.Update("alumni_profiles").
		SetMap(map[string]interface{}{
			"company":        req.Company,
			"job_title":      req.JobTitle,
			"mentor_rate":    req.MentorRate,
			"open_to_mentor": req.OpenToMentor,
		}).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update mentor settings query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating mentor settings: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMentorNotFound
	}
	return nil
}

// ListMentors retrieves active alumni who are open to mentoring, with an
// optional case-insensitive search over name, company and job title.
func (r *UserRepository) ListMentors(ctx context.Context, search string, page, size int) ([]models.AlumniProfile, int64, error) {
	builder := r.sb.Select(
		"ap.id", "ap.user_id", "ap.company", "ap.job_title", "ap.experience_years",
		"ap.mentor_rate", "ap.open_to_mentor",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role_type", "u.department",
		"u.graduation_year", "u.bio", "u.linkedin_url", "u.profile_photo_url",
		"COUNT(*) OVER() AS total_count").
		From("alumni_profiles ap").
		Join("users u ON u.id = ap.user_id").
		Where(squirrel.Eq{"ap.open_to_mentor": true, "u.is_active": true})

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"u.first_name || ' ' || u.last_name": pattern},
			squirrel.ILike{"ap.company": pattern},
			squirrel.ILike{"ap.job_title": pattern},
		})
	}

	offset := (page - 1) * size
	sql, args, err := builder.
		OrderBy("u.first_name ASC, u.last_name ASC").
		Limit(uint64(size)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build mentor list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing mentor list query")
		return nil, 0, fmt.Errorf("error querying mentors: %w", err)
	}
	defer rows.Close()

	mentors := []models.AlumniProfile{}
	var total int64
	for rows.Next() {
		var p models.AlumniProfile
		var u models.User
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Company, &p.JobTitle, &p.ExperienceYrs,
			&p.MentorRate, &p.OpenToMentor,
			&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.RoleType, &u.Department,
			&u.GraduationYear, &u.Bio, &u.LinkedinURL, &u.ProfilePhotoURL, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning mentor row: %w", err)
		}
		p.User = &u
		mentors = append(mentors, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating mentor rows: %w", err)
	}
	return mentors, total, nil
}
