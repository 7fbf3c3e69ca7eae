package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// requireSession загружает привязку чата нужной роли.
// Возвращает session и true если OK; иначе сообщает пользователю и возвращает false.
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update, role model.ChatRole) (*model.ChatSession, bool) {
	if update.Message == nil {
		return nil, false
	}

	chatID := update.Message.Chat.ID
	var (
		session *model.ChatSession
		err     error
	)
	switch role {
	case model.ChatRoleStaff:
		session, err = h.sessions.RequireStaff(ctx, chatID)
	case model.ChatRolePatient:
		session, err = h.sessions.RequirePatient(ctx, chatID)
	default:
		session, err = h.sessions.Get(ctx, chatID)
	}

	if err != nil {
		h.logger.Debug("Session check failed",
			zap.Int64("chat_id", chatID),
			zap.String("role", string(role)),
			zap.Error(err))
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return nil, false
	}
	return session, true
}

// loadSession загружает привязку чата для callback и сообщает об ошибке всплывающим окном
func (h *Handlers) loadSession(hc *HandlerContext, role model.ChatRole) bool {
	var err error
	switch role {
	case model.ChatRoleStaff:
		hc.Session, err = h.sessions.RequireStaff(hc.Ctx, hc.ChatID)
	case model.ChatRolePatient:
		hc.Session, err = h.sessions.RequirePatient(hc.Ctx, hc.ChatID)
	default:
		hc.Session, err = h.sessions.Get(hc.Ctx, hc.ChatID)
	}
	if err != nil {
		hc.AnswerAlert(ErrorMessage(err))
		return false
	}
	return true
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML-сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) *models.Message {
	msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup(keyboard),
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return nil
	}
	return msg
}

// sendNotice отправляет временное уведомление, которое удалится само
func (h *Handlers) sendNotice(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	if msg := h.sendMessage(ctx, b, chatID, text, keyboard); msg != nil {
		h.notices.Track(chatID, msg.ID)
	}
}
