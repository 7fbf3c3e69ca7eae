package handlers

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/calendar"
	"github.com/Freeeeeet/clinic_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

const expiredDialogText = "❌ La operación ha caducado. Vuelve a elegir el horario en el calendario."

// parsePositiveID разбирает идентификатор из текста пользователя
func parsePositiveID(text string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(text), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// appointmentForm достаёт форму записи из диалога; без неё диалог сбрасывается
func (h *Handlers) appointmentForm(ctx context.Context, b *bot.Bot, chatID int64) (calendar.AppointmentForm, bool) {
	form, ok := state.Get[calendar.AppointmentForm](h.stateManager, chatID, state.KeyForm)
	if !ok {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, expiredDialogText)
	}
	return form, ok
}

func (h *Handlers) requestForm(ctx context.Context, b *bot.Bot, chatID int64) (calendar.RequestForm, bool) {
	form, ok := state.Get[calendar.RequestForm](h.stateManager, chatID, state.KeyForm)
	if !ok {
		h.stateManager.ClearState(chatID)
		h.sendError(ctx, b, chatID, expiredDialogText)
	}
	return form, ok
}

// ===== Новая запись (персонал) =====

// handlePatientStep - шаг 1: идентификатор пациента
func (h *Handlers) handlePatientStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	form, ok := h.appointmentForm(ctx, b, chatID)
	if !ok {
		return
	}

	patientID, ok := parsePositiveID(text)
	if !ok {
		h.sendError(ctx, b, chatID, "❌ El ID del paciente debe ser un número positivo.\n\nInténtalo de nuevo:")
		return
	}

	form.PatientID = patientID
	h.stateManager.SetData(chatID, state.KeyForm, form)
	h.stateManager.SetState(chatID, state.StateAppointmentDentist)

	if dentists := h.calendars.Dentists(); len(dentists) > 0 {
		h.sendMessage(ctx, b, chatID, "Paso 2: elige el dentista.", keyboard.DentistChoice(dentists))
		return
	}
	h.sendMessage(ctx, b, chatID, "Paso 2: escribe el ID del dentista.", keyboard.CancelOnly())
}

// handleDentistStep - шаг 2 вводом текста (справочник может быть пустым)
func (h *Handlers) handleDentistStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	dentistID, ok := parsePositiveID(text)
	if !ok {
		h.sendError(ctx, b, chatID, "❌ El ID del dentista debe ser un número positivo.\n\nInténtalo de nuevo:")
		return
	}
	h.setDentist(ctx, b, chatID, dentistID)
}

func (h *Handlers) setDentist(ctx context.Context, b *bot.Bot, chatID int64, dentistID int64) {
	form, ok := h.appointmentForm(ctx, b, chatID)
	if !ok {
		return
	}

	form.DentistID = dentistID
	h.stateManager.SetData(chatID, state.KeyForm, form)
	h.stateManager.SetState(chatID, state.StateAppointmentReason)

	h.sendMessage(ctx, b, chatID, "Paso 3: escribe el motivo de la cita o pulsa «Omitir».", keyboard.Skip())
}

// handleReasonStep - шаг 3: мотив (необязательный)
func (h *Handlers) handleReasonStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if utf8.RuneCountInString(text) > ReasonMaxLength {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ El motivo es demasiado largo. Máximo %d caracteres.", ReasonMaxLength))
		return
	}

	form, ok := h.appointmentForm(ctx, b, chatID)
	if !ok {
		return
	}
	form.Reason = text
	h.stateManager.SetData(chatID, state.KeyForm, form)
	h.askRoom(ctx, b, chatID)
}

func (h *Handlers) askRoom(ctx context.Context, b *bot.Bot, chatID int64) {
	h.stateManager.SetState(chatID, state.StateAppointmentRoom)
	h.sendMessage(ctx, b, chatID, "Paso 4: escribe el número de sala o pulsa «Omitir».", keyboard.Skip())
}

// handleRoomStep - шаг 4: кабинет (необязательный)
func (h *Handlers) handleRoomStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	roomID, ok := parsePositiveID(text)
	if !ok {
		h.sendError(ctx, b, chatID, "❌ La sala debe ser un número positivo.\n\nInténtalo de nuevo o pulsa «Omitir»:")
		return
	}

	form, ok := h.appointmentForm(ctx, b, chatID)
	if !ok {
		return
	}
	form.RoomID = roomID
	h.stateManager.SetData(chatID, state.KeyForm, form)
	h.askChair(ctx, b, chatID)
}

func (h *Handlers) askChair(ctx context.Context, b *bot.Bot, chatID int64) {
	h.stateManager.SetState(chatID, state.StateAppointmentChair)
	h.sendMessage(ctx, b, chatID, "Paso 5: escribe el sillón o pulsa «Omitir».", keyboard.Skip())
}

// handleChairStep - шаг 5: кресло (необязательное)
func (h *Handlers) handleChairStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if utf8.RuneCountInString(text) > ChairMaxLength {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ El sillón es demasiado largo. Máximo %d caracteres.", ChairMaxLength))
		return
	}

	form, ok := h.appointmentForm(ctx, b, chatID)
	if !ok {
		return
	}
	form.Chair = text
	h.stateManager.SetData(chatID, state.KeyForm, form)
	h.askAppointmentConfirm(ctx, b, chatID)
}

func (h *Handlers) askAppointmentConfirm(ctx context.Context, b *bot.Bot, chatID int64) {
	form, ok := h.appointmentForm(ctx, b, chatID)
	if !ok {
		return
	}
	h.stateManager.SetState(chatID, state.StateAppointmentConfirm)
	h.sendMessage(ctx, b, chatID, appointmentSummary(form, h.dentistName(form.DentistID)), keyboard.ConfirmDialog("Crear cita"))
}

// ===== Заявка пациента =====

// handleRequestReasonStep - мотив заявки (необязательный)
func (h *Handlers) handleRequestReasonStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if utf8.RuneCountInString(text) > ReasonMaxLength {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ El motivo es demasiado largo. Máximo %d caracteres.", ReasonMaxLength))
		return
	}

	form, ok := h.requestForm(ctx, b, chatID)
	if !ok {
		return
	}
	form.Reason = text
	h.stateManager.SetData(chatID, state.KeyForm, form)
	h.askRequestConfirm(ctx, b, chatID)
}

func (h *Handlers) askRequestConfirm(ctx context.Context, b *bot.Bot, chatID int64) {
	form, ok := h.requestForm(ctx, b, chatID)
	if !ok {
		return
	}
	h.stateManager.SetState(chatID, state.StateRequestConfirm)
	h.sendMessage(ctx, b, chatID, requestSummary(form, h.dentistName(form.DentistID)), keyboard.ConfirmDialog("Solicitar"))
}

// ===== Кнопки диалогов =====

// handleDialogCallback обрабатывает кнопки Omitir / Confirmar / Cancelar и выбор дентиста
func (h *Handlers) handleDialogCallback(hc *HandlerContext) {
	data := hc.Callback.Data
	current := h.stateManager.GetState(hc.ChatID)

	switch {
	case data == keyboard.DialogCancel:
		h.stateManager.ClearState(hc.ChatID)
		hc.Answer("Operación cancelada")
		if err := hc.EditMessage("❌ Operación cancelada.", nil); err != nil {
			h.logger.Debug("Failed to edit cancelled dialog", zap.Error(err))
		}

	case data == keyboard.DialogSkip:
		hc.Answer("")
		switch current {
		case state.StateAppointmentReason:
			h.askRoom(hc.Ctx, hc.Bot, hc.ChatID)
		case state.StateAppointmentRoom:
			h.askChair(hc.Ctx, hc.Bot, hc.ChatID)
		case state.StateAppointmentChair:
			h.askAppointmentConfirm(hc.Ctx, hc.Bot, hc.ChatID)
		case state.StateRequestReason:
			h.askRequestConfirm(hc.Ctx, hc.Bot, hc.ChatID)
		}

	case strings.HasPrefix(data, keyboard.DialogDentist):
		if current != state.StateAppointmentDentist {
			hc.AnswerAlert(expiredDialogText)
			return
		}
		dentistID, ok := parsePositiveID(strings.TrimPrefix(data, keyboard.DialogDentist))
		if !ok {
			hc.AnswerAlert(ErrorMessage(keyboard.ErrInvalidFormat))
			return
		}
		if _, known := h.calendars.Dentist(dentistID); !known {
			hc.AnswerAlert(ErrorMessage(service.ErrUnknownDentist))
			return
		}
		hc.Answer("")
		h.setDentist(hc.Ctx, hc.Bot, hc.ChatID, dentistID)

	case data == keyboard.DialogConfirm:
		switch current {
		case state.StateAppointmentConfirm:
			h.submitAppointment(hc)
		case state.StateRequestConfirm:
			h.submitRequest(hc)
		default:
			hc.AnswerAlert(expiredDialogText)
		}

	default:
		hc.AnswerAlert(ErrorMessage(keyboard.ErrInvalidFormat))
	}
}

// submitAppointment отправляет новую запись. При отказе диалог остаётся на шаге подтверждения.
func (h *Handlers) submitAppointment(hc *HandlerContext) {
	if !h.loadSession(hc, model.ChatRoleStaff) {
		return
	}
	form, ok := state.Get[calendar.AppointmentForm](h.stateManager, hc.ChatID, state.KeyForm)
	if !ok {
		h.stateManager.ClearState(hc.ChatID)
		hc.AnswerAlert(expiredDialogText)
		return
	}

	cal, err := h.calendars.Staff(hc.Ctx, hc.Session)
	if cal == nil {
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	if err := cal.Create(hc.Ctx, form); err != nil {
		h.logger.Warn("Appointment creation failed", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
		hc.AnswerAlert(operationError(err, "Error al crear la cita"))
		return
	}

	h.stateManager.ClearState(hc.ChatID)
	hc.AnswerAlert("Cita creada correctamente")
	if err := hc.EditMessage(appointmentSummary(form, h.dentistName(form.DentistID))+"\n\n✅ Cita creada correctamente", nil); err != nil {
		h.logger.Debug("Failed to edit confirmed dialog", zap.Error(err))
	}
	h.refreshWeek(hc.Ctx, hc.Bot, hc.ChatID, hc.Session)
}

// submitRequest отправляет заявку пациента и показывает подтверждение клиники
func (h *Handlers) submitRequest(hc *HandlerContext) {
	if !h.loadSession(hc, model.ChatRolePatient) {
		return
	}
	form, ok := state.Get[calendar.RequestForm](h.stateManager, hc.ChatID, state.KeyForm)
	if !ok {
		h.stateManager.ClearState(hc.ChatID)
		hc.AnswerAlert(expiredDialogText)
		return
	}

	cal, err := h.calendars.Patient(hc.Session)
	if err != nil {
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	message, err := cal.Request(hc.Ctx, form)
	if err != nil {
		h.logger.Warn("Appointment request failed", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
		hc.AnswerAlert(operationError(err, "Error al solicitar la cita"))
		return
	}

	h.stateManager.ClearState(hc.ChatID)
	hc.AnswerAlert(message)
	if err := hc.EditMessage(requestSummary(form, h.dentistName(form.DentistID))+"\n\n✅ "+html.EscapeString(message), nil); err != nil {
		h.logger.Debug("Failed to edit confirmed request", zap.Error(err))
	}
	h.refreshWeek(hc.Ctx, hc.Bot, hc.ChatID, hc.Session)
}
