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

const studentRecordTable = "student_records"

var studentRecordColumns = []string{
	"id", "campus_id", "student_id", "record_type", "title", "description",
	"academic_year", "attachment_url", "is_deleted", "meta_data",
	"created_at", "updated_at",
}

// StudentRecordRepository handles student record database operations
type StudentRecordRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRecordRepository creates a new StudentRecordRepository
func NewStudentRecordRepository(db *pgxpool.Pool) *StudentRecordRepository {
	return &StudentRecordRepository{db: db, sb: statementBuilder()}
}

func scanStudentRecord(row pgx.Row) (*models.StudentRecord, error) {
	rec := &models.StudentRecord{}
	err := row.Scan(
		&rec.ID, &rec.CampusID, &rec.StudentID, &rec.RecordType, &rec.Title,
		&rec.Description, &rec.AcademicYear, &rec.AttachmentURL, &rec.IsDeleted,
		&rec.Metadata, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Create inserts a new student record
func (r *StudentRecordRepository) Create(ctx context.Context, rec *models.StudentRecord) error {
	sql, args, err := r.sb.Insert(studentRecordTable).
		Columns(studentRecordColumns...).
		Values(rec.ID, rec.CampusID, rec.StudentID, rec.RecordType, rec.Title,
			rec.Description, rec.AcademicYear, rec.AttachmentURL, rec.IsDeleted,
			rec.Metadata, rec.CreatedAt, rec.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student record query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create student record query")
		return fmt.Errorf("error creating student record: %w", err)
	}
	return nil
}

// GetByID retrieves a student record by id
func (r *StudentRecordRepository) GetByID(ctx context.Context, id string) (*models.StudentRecord, error) {
	sql, args, err := r.sb.Select(studentRecordColumns...).
		From(studentRecordTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student record query: %w", err)
	}

	rec, err := scanStudentRecord(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("studentRecordID", id).Msg("Error scanning student record row")
		return nil, fmt.Errorf("error getting student record by id: %w", err)
	}
	return rec, nil
}

func (r *StudentRecordRepository) list(ctx context.Context, pred squirrel.Eq, offset uint64, limit int) ([]*models.StudentRecord, error) {
	sql, args, err := r.sb.Select(studentRecordColumns...).
		From(studentRecordTable).
		Where(pred).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list student records query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying student records: %w", err)
	}
	defer rows.Close()

	records := []*models.StudentRecord{}
	for rows.Next() {
		rec, err := scanStudentRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student record rows: %w", err)
	}
	return records, nil
}

// GetAllByCampusID lists non-deleted records for a campus
func (r *StudentRecordRepository) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.StudentRecord, error) {
	return r.list(ctx, squirrel.Eq{"campus_id": campusID, "is_deleted": false}, offset, limit)
}

// GetAllByStudentID lists non-deleted records for a student
func (r *StudentRecordRepository) GetAllByStudentID(ctx context.Context, studentID string, offset uint64, limit int) ([]*models.StudentRecord, error) {
	return r.list(ctx, squirrel.Eq{"student_id": studentID, "is_deleted": false}, offset, limit)
}

// CountByCampusID counts non-deleted records for a campus
func (r *StudentRecordRepository) CountByCampusID(ctx context.Context, campusID string) (int64, error) {
	return countRows(ctx, r.db, studentRecordTable, squirrel.Eq{"campus_id": campusID, "is_deleted": false})
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *StudentRecordRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(studentRecordTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student record query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentRecordID", id).Msg("Error executing update student record query")
		return fmt.Errorf("error updating student record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
