package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/repository/base"
)

type ChatSessionRepository struct {
	*base.Repository
}

func NewChatSessionRepository(pool *pgxpool.Pool) *ChatSessionRepository {
	return &ChatSessionRepository{Repository: base.NewRepository(pool)}
}

const chatSessionColumns = `chat_id, role, session_cookie, display_name, created_at, updated_at`

func scanChatSession(row pgx.Row) (*model.ChatSession, error) {
	var s model.ChatSession
	err := row.Scan(
		&s.ChatID,
		&s.Role,
		&s.SessionCookie,
		&s.DisplayName,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert создаёт или перезаписывает привязку чата
func (r *ChatSessionRepository) Upsert(ctx context.Context, session *model.ChatSession) error {
	query := `
		INSERT INTO chat_sessions (chat_id, role, session_cookie, display_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chat_id) DO UPDATE
		SET role = EXCLUDED.role,
		    session_cookie = EXCLUDED.session_cookie,
		    display_name = EXCLUDED.display_name,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(ctx, query,
		session.ChatID,
		session.Role,
		session.SessionCookie,
		session.DisplayName,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert chat session: %w", err)
	}

	return nil
}

// GetByChatID получает привязку чата; nil если чат не привязан
func (r *ChatSessionRepository) GetByChatID(ctx context.Context, chatID int64) (*model.ChatSession, error) {
	query := `SELECT ` + chatSessionColumns + ` FROM chat_sessions WHERE chat_id = $1`

	session, err := scanChatSession(r.QueryRow(ctx, query, chatID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat session: %w", err)
	}

	return session, nil
}

// Delete удаляет привязку; false если её не было
func (r *ChatSessionRepository) Delete(ctx context.Context, chatID int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM chat_sessions WHERE chat_id = $1`, chatID)
	if err != nil {
		return false, fmt.Errorf("delete chat session: %w", err)
	}
	return affected > 0, nil
}

// CountByRole возвращает число привязанных чатов по ролям
func (r *ChatSessionRepository) CountByRole(ctx context.Context) (map[model.ChatRole]int, error) {
	rows, err := r.Query(ctx, `SELECT role, COUNT(*) FROM chat_sessions GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("count chat sessions: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.ChatRole]int)
	for rows.Next() {
		var role model.ChatRole
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("scan chat session count: %w", err)
		}
		counts[role] = n
	}

	return counts, rows.Err()
}
