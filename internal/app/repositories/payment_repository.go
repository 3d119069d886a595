package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/db"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

const paymentTable = "payments"

var paymentColumns = []string{
	"id", "campus_id", "fee_id", "student_id", "amount", "method", "reference",
	"status", "paid_at", "is_deleted", "meta_data", "created_at", "updated_at",
}

// PaymentRepository handles payment database operations
type PaymentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db, sb: statementBuilder()}
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(
		&p.ID, &p.CampusID, &p.FeeID, &p.StudentID, &p.Amount, &p.Method,
		&p.Reference, &p.Status, &p.PaidAt, &p.IsDeleted, &p.Metadata,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateWithInstallment inserts a payment and applies its installment to the
// fee in one transaction: the installment entry is appended, paid_amount
// grows by the payment amount and the fee moves to feeStatus. due_amount is
// left alone. ErrNotFound means the fee row vanished and nothing was written.
func (r *PaymentRepository) CreateWithInstallment(ctx context.Context, p *models.Payment, inst models.Installment, feeStatus models.FeeStatus) error {
	insertSQL, insertArgs, err := r.sb.Insert(paymentTable).
		Columns(paymentColumns...).
		Values(p.ID, p.CampusID, p.FeeID, p.StudentID, p.Amount, p.Method,
			p.Reference, p.Status, p.PaidAt, p.IsDeleted, p.Metadata,
			p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create payment query: %w", err)
	}

	encoded, err := json.Marshal([]models.Installment{inst})
	if err != nil {
		return fmt.Errorf("failed to encode installment: %w", err)
	}
	updateSQL, updateArgs, err := r.sb.Update(feeTable).
		Set("installments_paid", squirrel.Expr("installments_paid || ?::jsonb", string(encoded))).
		Set("paid_amount", squirrel.Expr("paid_amount + ?", inst.Amount)).
		Set("status", feeStatus).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.FeeID, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build append installment query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertSQL, insertArgs...); err != nil {
			logger.Error().Err(err).Msg("Error executing create payment query")
			return fmt.Errorf("error creating payment: %w", err)
		}
		cmdTag, err := tx.Exec(ctx, updateSQL, updateArgs...)
		if err != nil {
			logger.Error().Err(err).Str("feeID", p.FeeID).Msg("Error executing append installment query")
			return fmt.Errorf("error appending installment: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetByID retrieves a payment by id
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	sql, args, err := r.sb.Select(paymentColumns...).
		From(paymentTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get payment query: %w", err)
	}

	payment, err := scanPayment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("paymentID", id).Msg("Error scanning payment row")
		return nil, fmt.Errorf("error getting payment by id: %w", err)
	}
	return payment, nil
}

func (r *PaymentRepository) list(ctx context.Context, pred squirrel.Eq, offset uint64, limit int) ([]*models.Payment, error) {
	sql, args, err := r.sb.Select(paymentColumns...).
		From(paymentTable).
		Where(pred).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// GetAllByCampusID lists non-deleted payments for a campus
func (r *PaymentRepository) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Payment, error) {
	return r.list(ctx, squirrel.Eq{"campus_id": campusID, "is_deleted": false}, offset, limit)
}

// GetAllByFeeID lists non-deleted payments recorded against a fee
func (r *PaymentRepository) GetAllByFeeID(ctx context.Context, feeID string, offset uint64, limit int) ([]*models.Payment, error) {
	return r.list(ctx, squirrel.Eq{"fee_id": feeID, "is_deleted": false}, offset, limit)
}

// CountByCampusID counts non-deleted payments for a campus
func (r *PaymentRepository) CountByCampusID(ctx context.Context, campusID string) (int64, error) {
	return countRows(ctx, r.db, paymentTable, squirrel.Eq{"campus_id": campusID, "is_deleted": false})
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *PaymentRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(paymentTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update payment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("paymentID", id).Msg("Error executing update payment query")
		return fmt.Errorf("error updating payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
