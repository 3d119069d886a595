package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

const feeTable = "fees"

var feeColumns = []string{
	"id", "campus_id", "student_id", "fee_template_id", "total_amount",
	"paid_amount", "due_amount", "status", "installments_paid", "is_deleted",
	"meta_data", "created_at", "updated_at",
}

// FeeRepository handles fee database operations
type FeeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeeRepository creates a new FeeRepository
func NewFeeRepository(db *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{db: db, sb: statementBuilder()}
}

func scanFee(row pgx.Row) (*models.Fee, error) {
	f := &models.Fee{}
	err := row.Scan(
		&f.ID, &f.CampusID, &f.StudentID, &f.FeeTemplateID, &f.TotalAmount,
		&f.PaidAmount, &f.DueAmount, &f.Status, &f.InstallmentsPaid, &f.IsDeleted,
		&f.Metadata, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Create inserts a new fee
func (r *FeeRepository) Create(ctx context.Context, f *models.Fee) error {
	sql, args, err := r.sb.Insert(feeTable).
		Columns(feeColumns...).
		Values(f.ID, f.CampusID, f.StudentID, f.FeeTemplateID, f.TotalAmount,
			f.PaidAmount, f.DueAmount, f.Status, f.InstallmentsPaid, f.IsDeleted,
			f.Metadata, f.CreatedAt, f.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create fee query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create fee query")
		return fmt.Errorf("error creating fee: %w", err)
	}
	return nil
}

// GetByID retrieves a fee by id
func (r *FeeRepository) GetByID(ctx context.Context, id string) (*models.Fee, error) {
	sql, args, err := r.sb.Select(feeColumns...).
		From(feeTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get fee query: %w", err)
	}

	fee, err := scanFee(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("feeID", id).Msg("Error scanning fee row")
		return nil, fmt.Errorf("error getting fee by id: %w", err)
	}
	return fee, nil
}

func (r *FeeRepository) list(ctx context.Context, pred squirrel.Eq, offset uint64, limit int) ([]*models.Fee, error) {
	sql, args, err := r.sb.Select(feeColumns...).
		From(feeTable).
		Where(pred).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list fees query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying fees: %w", err)
	}
	defer rows.Close()

	fees := []*models.Fee{}
	for rows.Next() {
		fee, err := scanFee(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning fee row: %w", err)
		}
		fees = append(fees, fee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee rows: %w", err)
	}
	return fees, nil
}

// GetAllByCampusID lists non-deleted fees for a campus
func (r *FeeRepository) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.Fee, error) {
	return r.list(ctx, squirrel.Eq{"campus_id": campusID, "is_deleted": false}, offset, limit)
}

// GetAllByStudentID lists non-deleted fees for a student
func (r *FeeRepository) GetAllByStudentID(ctx context.Context, studentID string, offset uint64, limit int) ([]*models.Fee, error) {
	return r.list(ctx, squirrel.Eq{"student_id": studentID, "is_deleted": false}, offset, limit)
}

// CountByCampusID counts non-deleted fees for a campus
func (r *FeeRepository) CountByCampusID(ctx context.Context, campusID string) (int64, error) {
	return countRows(ctx, r.db, feeTable, squirrel.Eq{"campus_id": campusID, "is_deleted": false})
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *FeeRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(feeTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update fee query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("feeID", id).Msg("Error executing update fee query")
		return fmt.Errorf("error updating fee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
