package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/app/models/dto"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
	"github.com/arnav/gradlink/internal/pkg/logger"
)

// EventRequestRepository handles event request database operations
type EventRequestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRequestRepository creates a new EventRequestRepository
func NewEventRequestRepository(db *pgxpool.Pool) *EventRequestRepository {
	return &EventRequestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new event request and sets its ID
func (r *EventRequestRepository) Create(ctx context.Context, req *models.EventRequest) error {
	sql, args, err := r.sb.Insert("event_requests").
		Columns("submitter_id", "title", "description", "venue", "scheduled_at",
			"expected_count", "priority").
		Values(req.SubmitterID, req.Title, req.Description, req.Venue, req.ScheduledAt,
			req.ExpectedCount, req.Priority).
		Suffix("RETURNING id, status, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create event request query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("submitterID", req.SubmitterID).Msg("Error executing create event request query")
		return fmt.Errorf("error creating event request: %w", err)
	}
	return nil
}

// GetByID retrieves an event request with its submitter
func (r *EventRequestRepository) GetByID(ctx context.Context, id int64) (*models.EventRequest, error) {
	query := `
		SELECT er.id, er.submitter_id, er.title, er.description, er.venue, er.scheduled_at,
			er.expected_count, er.priority, er.status, er.created_at, er.updated_at,
			u.first_name, u.last_name, u.department
		FROM event_requests er
		JOIN users u ON u.id = er.submitter_id
		WHERE er.id = $1`

	req := &models.EventRequest{}
	submitter := &models.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.SubmitterID, &req.Title, &req.Description, &req.Venue, &req.ScheduledAt,
		&req.ExpectedCount, &req.Priority, &req.Status, &req.CreatedAt, &req.UpdatedAt,
		&submitter.FirstName, &submitter.LastName, &submitter.Department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventRequestNotFound
		}
		logger.Error().Err(err).Int64("eventRequestID", id).Msg("Error scanning event request row")
		return nil, fmt.Errorf("error getting event request by ID: %w", err)
	}
	submitter.ID = req.SubmitterID
	req.Submitter = submitter
	return req, nil
}

// GetAll retrieves event requests with filtering and pagination. Search
// matches title and venue case-insensitively; status and priority filters
// apply together with it.
func (r *EventRequestRepository) GetAll(ctx context.Context, params dto.EventRequestListParams) ([]models.EventRequest, int64, error) {
	builder := r.sb.Select(
		"er.id", "er.submitter_id", "er.title", "er.description", "er.venue",
		"er.scheduled_at", "er.expected_count", "er.priority", "er.status",
		"er.created_at", "er.updated_at",
		"u.first_name", "u.last_name", "u.department",
		"COUNT(*) OVER() AS total_count").
		From("event_requests er").
		Join("users u ON u.id = er.submitter_id")

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"er.title": pattern},
			squirrel.ILike{"er.venue": pattern},
		})
	}
	if params.Status != "" {
		builder = builder.Where(squirrel.Eq{"er.status": params.Status})
	}
	if params.Priority != "" {
		builder = builder.Where(squirrel.Eq{"er.priority": params.Priority})
	}

	offset := (params.Page - 1) * params.Size
	sql, args, err := builder.
		OrderBy("er.created_at DESC").
		Limit(uint64(params.Size)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build event request list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing event request list query")
		return nil, 0, fmt.Errorf("error querying event requests: %w", err)
	}
	defer rows.Close()

	requests := []models.EventRequest{}
	var total int64
	for rows.Next() {
		var req models.EventRequest
		var submitter models.User
		err := rows.Scan(
			&req.ID, &req.SubmitterID, &req.Title, &req.Description, &req.Venue,
			&req.ScheduledAt, &req.ExpectedCount, &req.Priority, &req.Status,
			&req.CreatedAt, &req.UpdatedAt,
			&submitter.FirstName, &submitter.LastName, &submitter.Department, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning event request row: %w", err)
		}
		submitter.ID = req.SubmitterID
		req.Submitter = &submitter
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating event request rows: %w", err)
	}
	return requests, total, nil
}

// UpdateStatus moves an event request out of pending. The WHERE clause
// guards against double decisions at the SQL level.
func (r *EventRequestRepository) UpdateStatus(ctx context.Context, id int64, status models.ReviewStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE event_requests SET status = $1, updated_at = NOW() WHERE id = $2 AND status = 'pending'",
		status, id)
	if err != nil {
		return fmt.Errorf("error updating event request status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either missing or already decided; disambiguate for the caller
		var exists bool
		if checkErr := r.db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM event_requests WHERE id = $1)", id).Scan(&exists); checkErr == nil && !exists {
			return apperrors.ErrEventRequestNotFound
		}
		return apperrors.ErrApprovalDecided
	}
	return nil
}

// ListBySubmitter retrieves the event requests an alumni user has filed
func (r *EventRequestRepository) ListBySubmitter(ctx context.Context, submitterID int64) ([]models.EventRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, submitter_id, title, description, venue, scheduled_at,
			expected_count, priority, status, created_at, updated_at
		 FROM event_requests WHERE submitter_id = $1 ORDER BY created_at DESC`, submitterID)
	if err != nil {
		return nil, fmt.Errorf("error querying event requests by submitter: %w", err)
	}
	defer rows.Close()

	requests := []models.EventRequest{}
	for rows.Next() {
		var req models.EventRequest
		err := rows.Scan(&req.ID, &req.SubmitterID, &req.Title, &req.Description, &req.Venue,
			&req.ScheduledAt, &req.ExpectedCount, &req.Priority, &req.Status,
			&req.CreatedAt, &req.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning event request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event request rows: %w", err)
	}
	return requests, nil
}
