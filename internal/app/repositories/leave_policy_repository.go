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

const leavePolicyTable = "leave_policies"

var leavePolicyColumns = []string{
	"id", "campus_id", "name", "leave_type", "days_allowed", "carry_forward",
	"applicable_roles", "is_active", "is_deleted", "meta_data",
	"created_at", "updated_at",
}

// LeavePolicyRepository handles leave policy database operations
type LeavePolicyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLeavePolicyRepository creates a new LeavePolicyRepository
func NewLeavePolicyRepository(db *pgxpool.Pool) *LeavePolicyRepository {
	return &LeavePolicyRepository{db: db, sb: statementBuilder()}
}

func scanLeavePolicy(row pgx.Row) (*models.LeavePolicy, error) {
	p := &models.LeavePolicy{}
	err := row.Scan(
		&p.ID, &p.CampusID, &p.Name, &p.LeaveType, &p.DaysAllowed, &p.CarryForward,
		&p.ApplicableRoles, &p.IsActive, &p.IsDeleted, &p.Metadata,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new leave policy
func (r *LeavePolicyRepository) Create(ctx context.Context, p *models.LeavePolicy) error {
	sql, args, err := r.sb.Insert(leavePolicyTable).
		Columns(leavePolicyColumns...).
		Values(p.ID, p.CampusID, p.Name, p.LeaveType, p.DaysAllowed, p.CarryForward,
			p.ApplicableRoles, p.IsActive, p.IsDeleted, p.Metadata,
			p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create leave policy query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create leave policy query")
		return fmt.Errorf("error creating leave policy: %w", err)
	}
	return nil
}

// GetByID retrieves a leave policy by id
func (r *LeavePolicyRepository) GetByID(ctx context.Context, id string) (*models.LeavePolicy, error) {
	sql, args, err := r.sb.Select(leavePolicyColumns...).
		From(leavePolicyTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get leave policy query: %w", err)
	}

	policy, err := scanLeavePolicy(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("leavePolicyID", id).Msg("Error scanning leave policy row")
		return nil, fmt.Errorf("error getting leave policy by id: %w", err)
	}
	return policy, nil
}

// GetAllByCampusID lists non-deleted leave policies for a campus
func (r *LeavePolicyRepository) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.LeavePolicy, error) {
	sql, args, err := r.sb.Select(leavePolicyColumns...).
		From(leavePolicyTable).
		Where(squirrel.Eq{"campus_id": campusID, "is_deleted": false}).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list leave policies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying leave policies: %w", err)
	}
	defer rows.Close()

	policies := []*models.LeavePolicy{}
	for rows.Next() {
		policy, err := scanLeavePolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning leave policy row: %w", err)
		}
		policies = append(policies, policy)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave policy rows: %w", err)
	}
	return policies, nil
}

// CountByCampusID counts non-deleted leave policies for a campus
func (r *LeavePolicyRepository) CountByCampusID(ctx context.Context, campusID string) (int64, error) {
	return countRows(ctx, r.db, leavePolicyTable, squirrel.Eq{"campus_id": campusID, "is_deleted": false})
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *LeavePolicyRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(leavePolicyTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update leave policy query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("leavePolicyID", id).Msg("Error executing update leave policy query")
		return fmt.Errorf("error updating leave policy: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
