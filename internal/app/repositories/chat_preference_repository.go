package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolhub/backend/internal/app/models"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

const chatPreferenceTable = "chat_preferences"

var chatPreferenceColumns = []string{
	"id", "campus_id", "user_id", "mute_all", "muted_conversation_ids",
	"notification_sound", "show_read_receipts", "is_deleted", "meta_data",
	"created_at", "updated_at",
}

// ChatPreferenceRepository handles chat preference database operations
type ChatPreferenceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChatPreferenceRepository creates a new ChatPreferenceRepository
func NewChatPreferenceRepository(db *pgxpool.Pool) *ChatPreferenceRepository {
	return &ChatPreferenceRepository{db: db, sb: statementBuilder()}
}

func scanChatPreference(row pgx.Row) (*models.ChatPreference, error) {
	p := &models.ChatPreference{}
	err := row.Scan(
		&p.ID, &p.CampusID, &p.UserID, &p.MuteAll, &p.MutedConversationIDs,
		&p.NotificationSound, &p.ShowReadReceipts, &p.IsDeleted, &p.Metadata,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Upsert inserts a chat preference row or replaces the existing one for the user.
func (r *ChatPreferenceRepository) Upsert(ctx context.Context, p *models.ChatPreference) error {
	sql, args, err := r.sb.Insert(chatPreferenceTable).
		Columns(chatPreferenceColumns...).
		Values(p.ID, p.CampusID, p.UserID, p.MuteAll, p.MutedConversationIDs,
			p.NotificationSound, p.ShowReadReceipts, p.IsDeleted, p.Metadata,
			p.CreatedAt, p.UpdatedAt).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			mute_all = EXCLUDED.mute_all,
			muted_conversation_ids = EXCLUDED.muted_conversation_ids,
			notification_sound = EXCLUDED.notification_sound,
			show_read_receipts = EXCLUDED.show_read_receipts,
			meta_data = EXCLUDED.meta_data,
			is_deleted = FALSE,
			updated_at = EXCLUDED.updated_at
			RETURNING ` + strings.Join(chatPreferenceColumns, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert chat preference query: %w", err)
	}

	// An existing user row keeps its id and created_at; scan the stored row back.
	stored, err := scanChatPreference(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		logger.Error().Err(err).Msg("Error executing upsert chat preference query")
		return fmt.Errorf("error upserting chat preference: %w", err)
	}
	*p = *stored
	return nil
}

// GetByID retrieves a chat preference by id
func (r *ChatPreferenceRepository) GetByID(ctx context.Context, id string) (*models.ChatPreference, error) {
	sql, args, err := r.sb.Select(chatPreferenceColumns...).
		From(chatPreferenceTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get chat preference query: %w", err)
	}

	pref, err := scanChatPreference(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("chatPreferenceID", id).Msg("Error scanning chat preference row")
		return nil, fmt.Errorf("error getting chat preference by id: %w", err)
	}
	return pref, nil
}

// GetByUserID retrieves the preference row for a user
func (r *ChatPreferenceRepository) GetByUserID(ctx context.Context, userID string) (*models.ChatPreference, error) {
	sql, args, err := r.sb.Select(chatPreferenceColumns...).
		From(chatPreferenceTable).
		Where(squirrel.Eq{"user_id": userID, "is_deleted": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get chat preference query: %w", err)
	}

	pref, err := scanChatPreference(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting chat preference by user: %w", err)
	}
	return pref, nil
}

// GetAllByCampusID lists non-deleted chat preferences for a campus
func (r *ChatPreferenceRepository) GetAllByCampusID(ctx context.Context, campusID string, offset uint64, limit int) ([]*models.ChatPreference, error) {
	sql, args, err := r.sb.Select(chatPreferenceColumns...).
		From(chatPreferenceTable).
		Where(squirrel.Eq{"campus_id": campusID, "is_deleted": false}).
		OrderBy("updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list chat preferences query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying chat preferences: %w", err)
	}
	defer rows.Close()

	prefs := []*models.ChatPreference{}
	for rows.Next() {
		pref, err := scanChatPreference(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning chat preference row: %w", err)
		}
		prefs = append(prefs, pref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat preference rows: %w", err)
	}
	return prefs, nil
}

// UpdateByID applies a column patch; returns ErrNotFound when no row matched
func (r *ChatPreferenceRepository) UpdateByID(ctx context.Context, id string, patch map[string]interface{}) error {
	sql, args, err := r.sb.Update(chatPreferenceTable).
		SetMap(patch).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update chat preference query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("chatPreferenceID", id).Msg("Error executing update chat preference query")
		return fmt.Errorf("error updating chat preference: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
