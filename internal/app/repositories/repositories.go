package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared not-found sentinel returned by all repositories.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// Repositories bundles all entity repositories sharing one pool.
type Repositories struct {
	CampusRepository            *CampusRepository
	FeeTemplateRepository       *FeeTemplateRepository
	FeeRepository               *FeeRepository
	PaymentRepository           *PaymentRepository
	SyllabusRepository          *SyllabusRepository
	StudentRecordRepository     *StudentRecordRepository
	LeavePolicyRepository       *LeavePolicyRepository
	ParentFeedControlRepository *ParentFeedControlRepository
	ChatPreferenceRepository    *ChatPreferenceRepository
	DeviceRepository            *DeviceRepository
	QuizSessionRepository       *QuizSessionRepository
	AppBuildRepository          *AppBuildRepository
}

// NewRepositories creates all repositories on a shared connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CampusRepository:            NewCampusRepository(db),
		FeeTemplateRepository:       NewFeeTemplateRepository(db),
		FeeRepository:               NewFeeRepository(db),
		PaymentRepository:           NewPaymentRepository(db),
		SyllabusRepository:          NewSyllabusRepository(db),
		StudentRecordRepository:     NewStudentRecordRepository(db),
		LeavePolicyRepository:       NewLeavePolicyRepository(db),
		ParentFeedControlRepository: NewParentFeedControlRepository(db),
		ChatPreferenceRepository:    NewChatPreferenceRepository(db),
		DeviceRepository:            NewDeviceRepository(db),
		QuizSessionRepository:       NewQuizSessionRepository(db),
		AppBuildRepository:          NewAppBuildRepository(db),
	}
}

// statementBuilder returns a squirrel builder with postgres placeholders.
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// countRows counts rows in table matching pred.
func countRows(ctx context.Context, db *pgxpool.Pool, table string, pred interface{}) (int64, error) {
	sql, args, err := statementBuilder().Select("COUNT(*)").From(table).Where(pred).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting rows in %s: %w", table, err)
	}
	return total, nil
}
