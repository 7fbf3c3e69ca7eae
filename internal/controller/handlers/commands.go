package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const helpText = "📚 <b>Comandos</b>\n\n" +
	"/vincular personal|paciente &lt;cookie&gt; - vincular este chat a tu sesión de la clínica\n" +
	"/desvincular - olvidar la sesión\n" +
	"/cancel - cancelar la operación en curso\n\n" +
	"<b>Personal</b>\n" +
	"/agenda - calendario semanal de citas\n" +
	"/odontograma &lt;id&gt; - abrir el odontograma de un paciente\n\n" +
	"<b>Pacientes</b>\n" +
	"/disponibilidad - huecos libres y solicitud de cita"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	name := displayName(update.Message.From)

	text := "👋 ¡Hola, " + name + "!\n\nSoy el asistente de la clínica dental.\n\n"
	session, err := h.sessions.Get(ctx, chatID)
	switch {
	case err == nil && session.IsStaff():
		text += "Chat vinculado como <b>personal</b>.\n/agenda - calendario de citas\n/odontograma &lt;id&gt; - odontograma"
	case err == nil && session.IsPatient():
		text += "Chat vinculado como <b>paciente</b>.\n/disponibilidad - solicitar cita"
	case errors.Is(err, service.ErrNotLinked):
		text += "Para empezar vincula el chat:\n/vincular personal|paciente &lt;cookie&gt;"
	default:
		h.logger.Error("Failed to load chat session", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Se produjo un error. Inténtalo más tarde.")
		return
	}

	h.sendMessage(ctx, b, chatID, text, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleLink обрабатывает /vincular <personal|paciente> <cookie>
func (h *Handlers) HandleLink(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	args := commandArgs(update.Message.Text)

	// Сообщение с cookie не должно оставаться в истории чата
	if len(args) > 1 {
		if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: update.Message.ID}); err != nil {
			h.logger.Debug("Failed to delete link message", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}

	if len(args) != 2 {
		h.sendError(ctx, b, chatID, ErrorMessage(service.ErrInvalidRole))
		return
	}

	role, err := service.ParseRole(args[0])
	if err != nil {
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}

	session, err := h.sessions.Link(ctx, chatID, role, args[1], displayName(update.Message.From))
	if err != nil {
		h.logger.Error("Failed to link chat", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}

	text := "✅ Chat vinculado como <b>paciente</b>.\n\n/disponibilidad - solicitar cita"
	if session.IsStaff() {
		text = "✅ Chat vinculado como <b>personal</b>.\n\n/agenda - calendario de citas\n/odontograma &lt;id&gt; - odontograma"
	}
	h.sendMessage(ctx, b, chatID, text, nil)
}

// HandleUnlink обрабатывает /desvincular
func (h *Handlers) HandleUnlink(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	deleted, err := h.sessions.Unlink(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to unlink chat", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}

	if !deleted {
		h.sendMessage(ctx, b, chatID, "Este chat no estaba vinculado.", nil)
		return
	}
	h.sendMessage(ctx, b, chatID, "✅ Sesión olvidada. El chat ya no está vinculado.", nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if h.stateManager.GetState(chatID) == state.StateNone {
		h.sendMessage(ctx, b, chatID, "No hay ninguna operación en curso.", nil)
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, "✅ Operación cancelada.\n\n/help - lista de comandos", nil)
}

// HandleTextMessage обрабатывает текст в зависимости от шага диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются своими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	currentState := h.stateManager.GetState(chatID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("chat_id", chatID),
		zap.String("state", string(currentState)))

	text := strings.TrimSpace(update.Message.Text)

	switch currentState {
	case state.StateNone:
		return
	case state.StateAppointmentPatient:
		h.handlePatientStep(ctx, b, chatID, text)
	case state.StateAppointmentDentist:
		h.handleDentistStep(ctx, b, chatID, text)
	case state.StateAppointmentReason:
		h.handleReasonStep(ctx, b, chatID, text)
	case state.StateAppointmentRoom:
		h.handleRoomStep(ctx, b, chatID, text)
	case state.StateAppointmentChair:
		h.handleChairStep(ctx, b, chatID, text)
	case state.StateRequestReason:
		h.handleRequestReasonStep(ctx, b, chatID, text)
	case state.StateOdontogramNotes:
		h.handleNotesStep(ctx, b, chatID, update.Message.Text)
	case state.StateAppointmentConfirm, state.StateRequestConfirm:
		h.sendMessage(ctx, b, chatID, "Confirma o cancela con los botones del mensaje anterior.", nil)
	default:
		h.logger.Warn("Unknown dialog state", zap.Int64("chat_id", chatID), zap.String("state", string(currentState)))
		h.stateManager.ClearState(chatID)
	}
}
