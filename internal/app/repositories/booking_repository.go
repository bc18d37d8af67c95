package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
	"github.com/arnav/gradlink/internal/pkg/logger"
)

// BookingRepository handles mentoring session booking persistence
type BookingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new booking and sets its ID
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	sql, args, err := r.sb.Insert("bookings").
		Columns("student_id", "mentor_id", "topic", "scheduled_at", "hours",
			"hourly_rate", "total_amount", "message", "status").
		Values(booking.StudentID, booking.MentorID, booking.Topic, booking.ScheduledAt,
			booking.Hours, booking.HourlyRate, booking.TotalAmount, booking.Message,
			booking.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create booking query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", booking.StudentID).Msg("Error executing create booking query")
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	booking := &models.Booking{}
	err := r.db.QueryRow(ctx,
		`SELECT id, student_id, mentor_id, topic, scheduled_at, hours, hourly_rate,
			total_amount, message, status, created_at, updated_at
		 FROM bookings WHERE id = $1`, id).
		Scan(&booking.ID, &booking.StudentID, &booking.MentorID, &booking.Topic,
			&booking.ScheduledAt, &booking.Hours, &booking.HourlyRate,
			&booking.TotalAmount, &booking.Message, &booking.Status,
			&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookingNotFound
		}
		logger.Error().Err(err).Int64("bookingID", id).Msg("Error scanning booking row")
		return nil, fmt.Errorf("error getting booking by ID: %w", err)
	}
	return booking, nil
}

// UpdateStatus persists a status change that already passed the model's
// transition check. The expected current status guards against races.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to models.BookingStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3",
		to, id, from)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if checkErr := r.db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1)", id).Scan(&exists); checkErr == nil && !exists {
			return apperrors.ErrBookingNotFound
		}
		return apperrors.ErrInvalidStateTransition
	}
	return nil
}

// ListByStudent retrieves a student's bookings with the mentor joined,
// newest first.
func (r *BookingRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Booking, error) {
	return r.listFor(ctx, "student_id", studentID, "mentor_id")
}

// ListByMentor retrieves a mentor's bookings with the student joined,
// newest first.
func (r *BookingRepository) ListByMentor(ctx context.Context, mentorID int64) ([]models.Booking, error) {
	return r.listFor(ctx, "mentor_id", mentorID, "student_id")
}

func (r *BookingRepository) listFor(ctx context.Context, ownerColumn string, ownerID int64, otherColumn string) ([]models.Booking, error) {
	query := fmt.Sprintf(`
		SELECT b.id, b.student_id, b.mentor_id, b.topic, b.scheduled_at, b.hours,
			b.hourly_rate, b.total_amount, b.message, b.status, b.created_at, b.updated_at,
			u.first_name, u.last_name, u.department, u.profile_photo_url
		FROM bookings b
		JOIN users u ON u.id = b.%s
		WHERE b.%s = $1
		ORDER BY b.created_at DESC`, otherColumn, ownerColumn)

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var other models.User
		err := rows.Scan(
			&b.ID, &b.StudentID, &b.MentorID, &b.Topic, &b.ScheduledAt, &b.Hours,
			&b.HourlyRate, &b.TotalAmount, &b.Message, &b.Status, &b.CreatedAt, &b.UpdatedAt,
			&other.FirstName, &other.LastName, &other.Department, &other.ProfilePhotoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		if ownerColumn == "student_id" {
			other.ID = b.MentorID
			b.Mentor = &other
		} else {
			other.ID = b.StudentID
			b.Student = &other
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, nil
}

// HasOverlap reports whether the mentor already has a non-cancelled booking
// covering the given start time.
func (r *BookingRepository) HasOverlap(ctx context.Context, mentorID int64, scheduledAt time.Time, hours int) (bool, error) {
	var overlap bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE mentor_id = $1
			  AND status IN ('pending_payment', 'confirmed')
			  AND scheduled_at < $2::timestamptz + make_interval(hours => $3)
			  AND scheduled_at + make_interval(hours => hours) > $2::timestamptz
		)`, mentorID, scheduledAt, hours).Scan(&overlap)
	if err != nil {
		return false, fmt.Errorf("error checking booking overlap: %w", err)
	}
	return overlap, nil
}
