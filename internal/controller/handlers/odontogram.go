package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/clinicapi"
	"github.com/Freeeeeet/clinic_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/odontogram"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

// HandleOdontogram обрабатывает /odontograma <id пациента>
func (h *Handlers) HandleOdontogram(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update, model.ChatRoleStaff)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.sendError(ctx, b, chatID, "❌ Uso: /odontograma <id del paciente>")
		return
	}
	patientID, ok := parsePositiveID(args[0])
	if !ok {
		h.sendError(ctx, b, chatID, ErrorMessage(service.ErrInvalidPatient))
		return
	}

	editor, err := h.odontograms.Open(ctx, session, patientID)
	if err != nil {
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}
	if h.stateManager.GetState(chatID) == state.StateOdontogramNotes {
		h.stateManager.ClearState(chatID)
	}

	h.sendChart(ctx, b, chatID, editor)
	h.sendMessage(ctx, b, chatID, editorText(editor), editorKeyboard(editor))
}

// editorKeyboard - зубы с текущими статусами; выбранный зуб выделен
func editorKeyboard(editor *odontogram.Editor) *models.InlineKeyboardMarkup {
	selected := ""
	if info, ok := editor.Info(); ok {
		selected = info.Tooth.ID
	}
	return keyboard.OdontogramEditor(editor.Status, selected)
}

// sendChart отправляет одонтограмму HTML-документом только для просмотра
func (h *Handlers) sendChart(ctx context.Context, b *bot.Bot, chatID int64, editor *odontogram.Editor) {
	title := fmt.Sprintf("Odontograma - Paciente #%d", editor.PatientID())
	doc, err := odontogram.Document(editor.Chart(), title)
	if err != nil {
		h.logger.Error("Failed to render odontogram document", zap.Int64("patient_id", editor.PatientID()), zap.Error(err))
		return
	}

	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: fmt.Sprintf("odontograma_%d.html", editor.PatientID()),
			Data:     bytes.NewReader(doc),
		},
		Caption: "🦷 " + title,
	})
	if err != nil {
		h.logger.Error("Failed to send odontogram document", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// handleOdontogram обрабатывает кнопки редактора одонтограммы
func (h *Handlers) handleOdontogram(hc *HandlerContext) {
	if !h.loadSession(hc, model.ChatRoleStaff) {
		return
	}

	editor, err := h.odontograms.Editor(hc.ChatID)
	if err != nil {
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	data := hc.Callback.Data
	switch {
	case strings.HasPrefix(data, keyboard.OdontogramTooth):
		info, err := editor.Select(strings.TrimPrefix(data, keyboard.OdontogramTooth))
		if err != nil {
			hc.AnswerAlert(ErrorMessage(err))
			return
		}
		hc.Answer("")
		h.editEditor(hc, editorText(editor)+"\n\nElige el nuevo estado:", keyboard.ToothStatuses(info.Status))

	case strings.HasPrefix(data, keyboard.OdontogramStatus):
		status, err := keyboard.ParseStatus(data)
		if err != nil {
			hc.AnswerAlert(ErrorMessage(err))
			return
		}
		cell, err := editor.SetStatus(status)
		if err != nil {
			hc.AnswerAlert(ErrorMessage(err))
			return
		}
		hc.Answer(cell.Title())
		h.editEditor(hc, editorText(editor), editorKeyboard(editor))

	case data == keyboard.OdontogramTeeth:
		hc.Answer("")
		h.editEditor(hc, editorText(editor), editorKeyboard(editor))

	case data == keyboard.OdontogramNotes:
		h.stateManager.ClearState(hc.ChatID)
		h.stateManager.SetState(hc.ChatID, state.StateOdontogramNotes)
		if hc.Message != nil {
			h.stateManager.SetData(hc.ChatID, state.KeyMessageID, hc.Message.ID)
		}
		hc.Answer("")
		h.sendMessage(hc.Ctx, hc.Bot, hc.ChatID,
			"📝 Escribe las notas del odontograma.\n\nNotas actuales: "+orDash(editor.Notes()),
			keyboard.CancelOnly())

	case data == keyboard.OdontogramPreview:
		hc.Answer("")
		h.sendChart(hc.Ctx, hc.Bot, hc.ChatID, editor)

	case data == keyboard.OdontogramSave:
		url, err := h.odontograms.Save(hc.Ctx, hc.ChatID)
		if err != nil {
			hc.AnswerAlert(saveError(err))
			return
		}
		hc.Answer("")
		h.sendNotice(hc.Ctx, hc.Bot, hc.ChatID, "✅ Odontograma guardado correctamente.", keyboard.PatientLink(url))
		h.editEditor(hc, editorText(editor), editorKeyboard(editor))

	case data == keyboard.OdontogramClose:
		if editor.Dirty() {
			hc.Answer("")
			h.editEditor(hc, editorText(editor)+"\n\n⚠️ ¿Descartar los cambios sin guardar?", keyboard.DiscardChanges())
			return
		}
		h.closeEditor(hc, "Odontograma cerrado.")

	case data == keyboard.OdontogramDiscard:
		h.closeEditor(hc, "Cambios descartados. Odontograma cerrado.")

	default:
		hc.AnswerAlert(ErrorMessage(keyboard.ErrInvalidFormat))
	}
}

func (h *Handlers) editEditor(hc *HandlerContext, text string, kb *models.InlineKeyboardMarkup) {
	if err := hc.EditMessage(text, kb); err != nil {
		h.logger.Error("Failed to edit odontogram editor", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
	}
}

func (h *Handlers) closeEditor(hc *HandlerContext, text string) {
	h.odontograms.Close(hc.ChatID)
	if h.stateManager.GetState(hc.ChatID) == state.StateOdontogramNotes {
		h.stateManager.ClearState(hc.ChatID)
	}
	hc.Answer("")
	h.editEditor(hc, "🦷 "+text, nil)
}

// handleNotesStep сохраняет заметки в редакторе (на сервер они уйдут при сохранении)
func (h *Handlers) handleNotesStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	editor, err := h.odontograms.Editor(chatID)
	if err != nil {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}

	notes := strings.TrimSpace(text)
	if utf8.RuneCountInString(notes) > NotesMaxLength {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Las notas son demasiado largas. Máximo %d caracteres.", NotesMaxLength))
		return
	}

	messageID, hasMessage := state.Get[int](h.stateManager, chatID, state.KeyMessageID)
	h.stateManager.ClearState(chatID)
	editor.SetNotes(notes)

	if hasMessage {
		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        editorText(editor),
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: editorKeyboard(editor),
		})
		if err == nil || isMessageNotModified(err) {
			h.sendNotice(ctx, b, chatID, "📝 Notas actualizadas. Recuerda guardar el odontograma.", nil)
			return
		}
		h.logger.Debug("Failed to edit editor after notes", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	h.sendMessage(ctx, b, chatID, editorText(editor), editorKeyboard(editor))
}

// saveError - текст отказа сохранения одонтограммы
func saveError(err error) string {
	var apiErr *clinicapi.APIError
	switch {
	case errors.As(err, &apiErr):
		message := apiErr.Message
		if message == "" {
			message = "Error desconocido"
		}
		return "Error al guardar el odontograma: " + message
	case errors.Is(err, clinicapi.ErrUnauthorized), errors.Is(err, service.ErrNoOpenChart):
		return ErrorMessage(err)
	default:
		return "Error al guardar el odontograma. Por favor, intenta nuevamente."
	}
}
