package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// ChatSessionStore - хранилище привязок чатов
type ChatSessionStore interface {
	Upsert(ctx context.Context, session *model.ChatSession) error
	GetByChatID(ctx context.Context, chatID int64) (*model.ChatSession, error)
	Delete(ctx context.Context, chatID int64) (bool, error)
}

// ResetFunc сбрасывает состояние чата, построенное на старой сессии
type ResetFunc func(chatID int64)

type ChatSessionService struct {
	repo    ChatSessionStore
	onReset []ResetFunc
	logger  *zap.Logger
}

func NewChatSessionService(repo ChatSessionStore, logger *zap.Logger) *ChatSessionService {
	return &ChatSessionService{
		repo:   repo,
		logger: logger,
	}
}

// OnReset регистрирует сброс, вызываемый при перепривязке и отвязке чата
func (s *ChatSessionService) OnReset(fn ResetFunc) {
	s.onReset = append(s.onReset, fn)
}

// ParseRole переводит слово команды в роль: "personal" или "paciente"
func ParseRole(word string) (model.ChatRole, error) {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case "personal", "staff":
		return model.ChatRoleStaff, nil
	case "paciente", "patient":
		return model.ChatRolePatient, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, word)
	}
}

// Link привязывает чат к сессии клиники. Cookie не проверяется: её примет или отвергнет сервер.
func (s *ChatSessionService) Link(ctx context.Context, chatID int64, role model.ChatRole, cookie, displayName string) (*model.ChatSession, error) {
	cookie = strings.TrimSpace(cookie)
	if cookie == "" {
		return nil, ErrEmptyCookie
	}
	if role != model.ChatRoleStaff && role != model.ChatRolePatient {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	session := &model.ChatSession{
		ChatID:        chatID,
		Role:          role,
		SessionCookie: cookie,
		DisplayName:   displayName,
	}
	if err := s.repo.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("link chat: %w", err)
	}
	s.reset(chatID)

	s.logger.Info("Chat linked",
		zap.Int64("chat_id", chatID),
		zap.String("role", string(role)),
	)
	return session, nil
}

// Unlink удаляет привязку; false если чат не был привязан
func (s *ChatSessionService) Unlink(ctx context.Context, chatID int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("unlink chat: %w", err)
	}
	s.reset(chatID)

	if deleted {
		s.logger.Info("Chat unlinked", zap.Int64("chat_id", chatID))
	}
	return deleted, nil
}

// Get возвращает привязку чата или ErrNotLinked
func (s *ChatSessionService) Get(ctx context.Context, chatID int64) (*model.ChatSession, error) {
	session, err := s.repo.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get chat session: %w", err)
	}
	if session == nil {
		return nil, ErrNotLinked
	}
	return session, nil
}

// RequireStaff возвращает привязку персонала
func (s *ChatSessionService) RequireStaff(ctx context.Context, chatID int64) (*model.ChatSession, error) {
	session, err := s.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !session.IsStaff() {
		return nil, ErrStaffOnly
	}
	return session, nil
}

// RequirePatient возвращает привязку пациента
func (s *ChatSessionService) RequirePatient(ctx context.Context, chatID int64) (*model.ChatSession, error) {
	session, err := s.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !session.IsPatient() {
		return nil, ErrPatientOnly
	}
	return session, nil
}

func (s *ChatSessionService) reset(chatID int64) {
	for _, fn := range s.onReset {
		fn(chatID)
	}
}
