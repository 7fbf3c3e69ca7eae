package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/keyboard"
)

// HandleCallbackQuery распределяет нажатия inline-кнопок по обработчикам
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	hc := NewHandlerContext(ctx, b, update.CallbackQuery)
	data := hc.Callback.Data

	h.logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", hc.UserID),
		zap.Int64("chat_id", hc.ChatID))

	if hc.Message == nil {
		hc.AnswerAlert(ErrorMessage(ErrNoMessage))
		return
	}

	switch {
	case data == keyboard.Noop:
		hc.Answer("")
	case strings.HasPrefix(data, keyboard.CalendarPrefix):
		h.handleCalendar(hc)
	case strings.HasPrefix(data, keyboard.DialogPrefix):
		h.handleDialogCallback(hc)
	case strings.HasPrefix(data, keyboard.OdontogramPrefix):
		h.handleOdontogram(hc)
	default:
		h.logger.Warn("Unknown callback", zap.String("data", data))
		hc.AnswerAlert(ErrorMessage(keyboard.ErrInvalidFormat))
	}
}
