package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arnav/gradlink/internal/app/models"
	"github.com/arnav/gradlink/internal/pkg/apperrors"
	"github.com/arnav/gradlink/internal/pkg/logger"
)

// PaymentRepository handles payment order persistence
type PaymentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const paymentColumns = `id, booking_id, gateway_order_id, gateway_payment_id, amount,
	currency, status, failure_reason, created_at, updated_at`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(&p.ID, &p.BookingID, &p.GatewayOrderID, &p.GatewayPayID, &p.Amount,
		&p.Currency, &p.Status, &p.FailureReason, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new payment order record and sets its ID
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	sql, args, err := r.sb.Insert("payments").
		Columns("booking_id", "gateway_order_id", "amount", "currency", "status").
		Values(payment.BookingID, payment.GatewayOrderID, payment.Amount,
			payment.Currency, payment.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create payment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("bookingID", payment.BookingID).Msg("Error executing create payment query")
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments WHERE id = $1", paymentColumns)
	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error getting payment by ID: %w", err)
	}
	return payment, nil
}

// GetByOrderID retrieves a payment by its gateway order ID. The checkout
// callback only carries gateway identifiers, so verification starts here.
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments WHERE gateway_order_id = $1", paymentColumns)
	payment, err := scanPayment(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error getting payment by order ID: %w", err)
	}
	return payment, nil
}

// UpdateStatus persists a status move that already passed the model's
// transition check. The expected current status guards against races.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, from, to models.PaymentStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		"UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3",
		to, id, from)
	if err != nil {
		return fmt.Errorf("error updating payment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if checkErr := r.db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM payments WHERE id = $1)", id).Scan(&exists); checkErr == nil && !exists {
			return apperrors.ErrPaymentNotFound
		}
		return apperrors.ErrInvalidStateTransition
	}
	return nil
}

// RecordCapture marks a payment captured and stores the gateway payment ID
func (r *PaymentRepository) RecordCapture(ctx context.Context, id int64, gatewayPaymentID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE payments SET status = $1, gateway_payment_id = $2, updated_at = NOW()
		 WHERE id = $3 AND status = $4`,
		models.PaymentCaptured, gatewayPaymentID, id, models.PaymentVerifying)
	if err != nil {
		return fmt.Errorf("error recording payment capture: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidStateTransition
	}
	return nil
}

// RecordFailure marks a payment failed with a reason
func (r *PaymentRepository) RecordFailure(ctx context.Context, id int64, reason string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE payments SET status = $1, failure_reason = $2, updated_at = NOW()
		 WHERE id = $3 AND status IN ($4, $5)`,
		models.PaymentFailed, reason, id, models.PaymentCreated, models.PaymentVerifying)
	if err != nil {
		return fmt.Errorf("error recording payment failure: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidStateTransition
	}
	return nil
}
