package repositories

import (
	"context"
	"encoding/json"
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

// ApprovalRepository handles the canonical approval queue. The typed
// detail payload is stored as JSONB next to the discriminator column.
type ApprovalRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApprovalRepository creates a new ApprovalRepository
func NewApprovalRepository(db *pgxpool.Pool) *ApprovalRepository {
	return &ApprovalRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new approval item and sets its ID. The details payload
// must match the approval's declared type.
func (r *ApprovalRepository) Create(ctx context.Context, approval *models.Approval) error {
	if approval.Details == nil {
		return fmt.Errorf("approval of type %s has no details", approval.Type)
	}
	if approval.Details.ApprovalType() != approval.Type {
		return fmt.Errorf("approval type %s does not match details type %s",
			approval.Type, approval.Details.ApprovalType())
	}

	raw, err := json.Marshal(approval.Details)
	if err != nil {
		return fmt.Errorf("failed to encode approval details: %w", err)
	}

	sql, args, err := r.sb.Insert("approvals").
		Columns("type", "submitter_id", "title", "description", "priority", "details").
		Values(approval.Type, approval.SubmitterID, approval.Title, approval.Description,
			approval.Priority, raw).
		Suffix("RETURNING id, status, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create approval query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&approval.ID, &approval.Status, &approval.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("type", string(approval.Type)).Msg("Error executing create approval query")
		return fmt.Errorf("error creating approval: %w", err)
	}
	return nil
}

// GetByID retrieves an approval item with its decoded details and submitter
func (r *ApprovalRepository) GetByID(ctx context.Context, id int64) (*models.Approval, error) {
	query := `
		SELECT a.id, a.type, a.submitter_id, a.title, a.description, a.priority, a.status,
			a.details, a.decided_by, a.decision_note, a.decided_at, a.created_at,
			u.first_name, u.last_name, u.department
		FROM approvals a
		JOIN users u ON u.id = a.submitter_id
		WHERE a.id = $1`

	approval := &models.Approval{}
	submitter := &models.User{}
	var raw []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&approval.ID, &approval.Type, &approval.SubmitterID, &approval.Title,
		&approval.Description, &approval.Priority, &approval.Status,
		&raw, &approval.DecidedBy, &approval.DecisionNote, &approval.DecidedAt,
		&approval.CreatedAt,
		&submitter.FirstName, &submitter.LastName, &submitter.Department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApprovalNotFound
		}
		logger.Error().Err(err).Int64("approvalID", id).Msg("Error scanning approval row")
		return nil, fmt.Errorf("error getting approval by ID: %w", err)
	}

	details, err := models.DecodeApprovalDetails(approval.Type, raw)
	if err != nil {
		return nil, fmt.Errorf("approval %d: %w", id, err)
	}
	approval.Details = details
	submitter.ID = approval.SubmitterID
	approval.Submitter = submitter
	return approval, nil
}

// GetAll retrieves the approval queue with filtering and pagination.
// Search matches title and submitter name case-insensitively; the status,
// type and priority filters are conjunctive with it.
func (r *ApprovalRepository) GetAll(ctx context.Context, params dto.ApprovalListParams) ([]models.Approval, int64, error) {
	builder := r.sb.Select(
		"a.id", "a.type", "a.submitter_id", "a.title", "a.description", "a.priority",
		"a.status", "a.details", "a.decided_by", "a.decision_note", "a.decided_at",
		"a.created_at",
		"u.first_name", "u.last_name", "u.department",
		"COUNT(*) OVER() AS total_count").
		From("approvals a").
		Join("users u ON u.id = a.submitter_id")

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"a.title": pattern},
			squirrel.ILike{"u.first_name || ' ' || u.last_name": pattern},
		})
	}
	if params.Status != "" {
		builder = builder.Where(squirrel.Eq{"a.status": params.Status})
	}
	if params.Type != "" {
		builder = builder.Where(squirrel.Eq{"a.type": params.Type})
	}
	if params.Priority != "" {
		builder = builder.Where(squirrel.Eq{"a.priority": params.Priority})
	}

	offset := (params.Page - 1) * params.Size
	sql, args, err := builder.
		OrderBy("a.created_at DESC").
		Limit(uint64(params.Size)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build approval list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing approval list query")
		return nil, 0, fmt.Errorf("error querying approvals: %w", err)
	}
	defer rows.Close()

	approvals := []models.Approval{}
	var total int64
	for rows.Next() {
		var approval models.Approval
		var submitter models.User
		var raw []byte
		err := rows.Scan(
			&approval.ID, &approval.Type, &approval.SubmitterID, &approval.Title,
			&approval.Description, &approval.Priority, &approval.Status,
			&raw, &approval.DecidedBy, &approval.DecisionNote, &approval.DecidedAt,
			&approval.CreatedAt,
			&submitter.FirstName, &submitter.LastName, &submitter.Department, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning approval row: %w", err)
		}

		details, err := models.DecodeApprovalDetails(approval.Type, raw)
		if err != nil {
			return nil, 0, fmt.Errorf("approval %d: %w", approval.ID, err)
		}
		approval.Details = details
		submitter.ID = approval.SubmitterID
		approval.Submitter = &submitter
		approvals = append(approvals, approval)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating approval rows: %w", err)
	}
	return approvals, total, nil
}

// RecordDecision persists a decided approval. The WHERE clause requires the
// row to still be pending, so a concurrent second decision loses.
func (r *ApprovalRepository) RecordDecision(ctx context.Context, decided models.Approval) error {
	sql, args, err := r.sb.Update("approvals").
		SetMap(map[string]interface{}{
			"status":        decided.Status,
			"decided_by":    decided.DecidedBy,
			"decision_note": decided.DecisionNote,
			"decided_at":    decided.DecidedAt,
		}).
		Where(squirrel.Eq{"id": decided.ID, "status": models.StatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approval decision query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error recording approval decision: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if checkErr := r.db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM approvals WHERE id = $1)", decided.ID).Scan(&exists); checkErr == nil && !exists {
			return apperrors.ErrApprovalNotFound
		}
		return apperrors.ErrApprovalDecided
	}
	return nil
}

// CountPending returns the number of undecided approval items, shown as the
// admin dashboard badge.
func (r *ApprovalRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM approvals WHERE status = 'pending'").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting pending approvals: %w", err)
	}
	return count, nil
}
