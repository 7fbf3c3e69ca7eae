package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/calendar"
	"github.com/Freeeeeet/clinic_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/render"
	"github.com/Freeeeeet/clinic_bot/internal/week"
)

// HandleAgenda обрабатывает /agenda - недельный календарь записей для персонала
func (h *Handlers) HandleAgenda(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update, model.ChatRoleStaff)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	cal, err := h.calendars.Staff(ctx, session)
	if cal == nil {
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}
	if err != nil {
		// Показывается прежняя неделя или заглушка с кнопкой обновления
		h.sendError(ctx, b, chatID, ErrorMessage(err))
	}

	h.sendWeek(ctx, b, chatID, keyboard.ViewStaff, cal.Render(), "")
}

// HandleAvailability обрабатывает /disponibilidad - свободные окна для пациента
func (h *Handlers) HandleAvailability(ctx context.Context, b *bot.Bot, update *models.Update) {
	session, ok := h.requireSession(ctx, b, update, model.ChatRolePatient)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	cal, err := h.calendars.Patient(session)
	if err != nil {
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}

	if cal.Dentist() == 0 {
		h.sendMessage(ctx, b, chatID, h.dentistPrompt(), keyboard.Dentists(h.calendars.Dentists(), 0))
		return
	}

	if err := cal.Load(ctx); err != nil {
		h.sendError(ctx, b, chatID, ErrorMessage(err))
	}
	h.sendWeek(ctx, b, chatID, keyboard.ViewPatient, cal.Render(), h.dentistName(cal.Dentist()))
}

// handleCalendar разбирает callback календаря и передаёт его нужному виду
func (h *Handlers) handleCalendar(hc *HandlerContext) {
	action, err := keyboard.ParseCalendar(hc.Callback.Data)
	if err != nil {
		h.logger.Warn("Invalid calendar callback", zap.String("data", hc.Callback.Data), zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	if action.View == keyboard.ViewStaff {
		h.handleStaffCalendar(hc, action)
		return
	}
	h.handlePatientCalendar(hc, action)
}

func (h *Handlers) handleStaffCalendar(hc *HandlerContext, a keyboard.CalendarAction) {
	if !h.loadSession(hc, model.ChatRoleStaff) {
		return
	}

	cal, err := h.calendars.Staff(hc.Ctx, hc.Session)
	if cal == nil {
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	switch a.Action {
	case keyboard.ActionPrev:
		err = cal.PreviousWeek(hc.Ctx)
	case keyboard.ActionNext:
		err = cal.NextWeek(hc.Ctx)
	case keyboard.ActionToday:
		err = cal.GoToToday(hc.Ctx)
	case keyboard.ActionRefresh:
		err = cal.Load(hc.Ctx)
	case keyboard.ActionWeek:
	case keyboard.ActionDay:
		session := hc.Session
		h.showDay(hc, keyboard.ViewStaff, cal.Render(), a.Day, func(id int64) string {
			return h.calendars.AppointmentEditURL(session, id)
		})
		return
	case keyboard.ActionSlot:
		h.startAppointment(hc, cal, a)
		return
	default:
		hc.AnswerAlert(ErrorMessage(keyboard.ErrInvalidFormat))
		return
	}

	h.answerNavigation(hc, err)
	h.replaceWeek(hc, keyboard.ViewStaff, cal.Render(), "")
}

func (h *Handlers) handlePatientCalendar(hc *HandlerContext, a keyboard.CalendarAction) {
	if !h.loadSession(hc, model.ChatRolePatient) {
		return
	}

	cal, err := h.calendars.Patient(hc.Session)
	if err != nil {
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	switch a.Action {
	case keyboard.ActionPick:
		hc.Answer("")
		h.replaceWithText(hc, h.dentistPrompt(), keyboard.Dentists(h.calendars.Dentists(), cal.Dentist()))
		return
	case keyboard.ActionDentist:
		cal, err = h.calendars.SelectDentist(hc.Ctx, hc.Session, a.Dentist)
		if cal == nil {
			hc.AnswerAlert(ErrorMessage(err))
			return
		}
	case keyboard.ActionPrev:
		err = cal.PreviousWeek(hc.Ctx)
	case keyboard.ActionNext:
		err = cal.NextWeek(hc.Ctx)
	case keyboard.ActionToday:
		err = cal.GoToToday(hc.Ctx)
	case keyboard.ActionRefresh:
		err = cal.Load(hc.Ctx)
	case keyboard.ActionWeek:
	case keyboard.ActionDay:
		h.showDay(hc, keyboard.ViewPatient, cal.Render(), a.Day, nil)
		return
	case keyboard.ActionSlot:
		h.startRequest(hc, cal, a)
		return
	default:
		hc.AnswerAlert(ErrorMessage(keyboard.ErrInvalidFormat))
		return
	}

	h.answerNavigation(hc, err)
	h.replaceWeek(hc, keyboard.ViewPatient, cal.Render(), h.dentistName(cal.Dentist()))
}

// answerNavigation отвечает на callback навигации; ошибка загрузки не мешает показать прежние данные
func (h *Handlers) answerNavigation(hc *HandlerContext, err error) {
	if err != nil {
		h.logger.Warn("Calendar load failed",
			zap.Int64("chat_id", hc.ChatID),
			zap.String("data", hc.Callback.Data),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}
	hc.Answer("")
}

// showDay показывает окна одного дня вместо навигации недели
func (h *Handlers) showDay(hc *HandlerContext, view keyboard.View, grid *calendar.Grid, day int, editURL keyboard.EditURLFunc) {
	if day < 0 || day >= week.DaysInWeek || grid.Placeholder != "" {
		hc.AnswerAlert(ErrorMessage(keyboard.ErrInvalidFormat))
		return
	}

	caption := dayCaption(view, grid, day)
	kb := keyboard.DaySlots(view, grid, day, editURL)

	var err error
	if hc.IsPhoto() {
		err = hc.EditCaption(caption, kb)
	} else {
		err = hc.EditMessage(caption, kb)
	}
	if err != nil {
		h.logger.Error("Failed to show day", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}
	hc.Answer("")
}

// cellAt достаёт ячейку по индексам из callback
func cellAt(grid *calendar.Grid, a keyboard.CalendarAction) (calendar.Cell, bool) {
	if grid.Placeholder != "" ||
		a.Day < 0 || a.Day >= week.DaysInWeek ||
		a.Slot < 0 || a.Slot >= calendar.SlotsPerDay {
		return calendar.Cell{}, false
	}
	return grid.Cells[a.Slot][a.Day], true
}

// startAppointment открывает диалог новой записи для свободного окна
func (h *Handlers) startAppointment(hc *HandlerContext, cal *calendar.StaffCalendar, a keyboard.CalendarAction) {
	cell, ok := cellAt(cal.Render(), a)
	if !ok {
		hc.AnswerAlert(ErrorMessage(keyboard.ErrInvalidFormat))
		return
	}

	form, err := cal.OpenAppointmentForm(cell)
	if err != nil {
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(hc.ChatID)
	h.stateManager.SetState(hc.ChatID, state.StateAppointmentPatient)
	h.stateManager.SetData(hc.ChatID, state.KeyForm, form)

	h.logger.Info("Appointment dialog started",
		zap.Int64("chat_id", hc.ChatID),
		zap.Time("start", form.Start))

	hc.Answer("")
	h.sendMessage(hc.Ctx, hc.Bot, hc.ChatID,
		"📝 <b>Nueva cita</b>\n🕐 "+cellLabel(cell)+"\n\nPaso 1: escribe el número de paciente (ID).",
		keyboard.CancelOnly())
}

// startRequest открывает диалог заявки пациента
func (h *Handlers) startRequest(hc *HandlerContext, cal *calendar.PatientCalendar, a keyboard.CalendarAction) {
	cell, ok := cellAt(cal.Render(), a)
	if !ok {
		if cal.Dentist() == 0 {
			hc.AnswerAlert(ErrorMessage(calendar.ErrNoDentist))
		} else {
			hc.AnswerAlert(ErrorMessage(calendar.ErrSlotNotAvailable))
		}
		return
	}

	form, err := cal.OpenRequestForm(cell)
	if err != nil {
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(hc.ChatID)
	h.stateManager.SetState(hc.ChatID, state.StateRequestReason)
	h.stateManager.SetData(hc.ChatID, state.KeyForm, form)

	h.logger.Info("Request dialog started",
		zap.Int64("chat_id", hc.ChatID),
		zap.Int64("dentist_id", form.DentistID),
		zap.Time("start", form.Start))

	hc.Answer("")
	h.sendMessage(hc.Ctx, hc.Bot, hc.ChatID,
		"📝 <b>Solicitar cita</b>\n🕐 "+cellLabel(cell)+"\n\nEscribe el motivo de la consulta o pulsa «Omitir».",
		keyboard.Skip())
}

// sendWeek отправляет изображение недели с клавиатурой навигации.
// Если картинку нарисовать не удалось, отправляется текст с той же клавиатурой.
func (h *Handlers) sendWeek(ctx context.Context, b *bot.Bot, chatID int64, view keyboard.View, grid *calendar.Grid, subtitle string) {
	caption := weekCaption(view, grid, subtitle)
	kb := keyboard.WeekNavigation(view, grid)

	image, err := render.WeekImage(grid, render.Options{Subtitle: subtitle, Now: h.calendars.Now()})
	if err == nil {
		if _, err = sendPhoto(ctx, b, chatID, image, caption, kb); err == nil {
			return
		}
	}

	h.logger.Error("Failed to send week image", zap.Int64("chat_id", chatID), zap.Error(err))
	h.sendMessage(ctx, b, chatID, caption, kb)
}

// replaceWeek отправляет новую неделю и удаляет сообщение, из которого пришёл callback
func (h *Handlers) replaceWeek(hc *HandlerContext, view keyboard.View, grid *calendar.Grid, subtitle string) {
	h.sendWeek(hc.Ctx, hc.Bot, hc.ChatID, view, grid, subtitle)
	h.deleteOrigin(hc)
}

// replaceWithText заменяет сообщение callback текстовым
func (h *Handlers) replaceWithText(hc *HandlerContext, text string, kb *models.InlineKeyboardMarkup) {
	if !hc.IsPhoto() {
		if err := hc.EditMessage(text, kb); err == nil {
			return
		}
	}
	h.sendMessage(hc.Ctx, hc.Bot, hc.ChatID, text, kb)
	h.deleteOrigin(hc)
}

func (h *Handlers) deleteOrigin(hc *HandlerContext) {
	if err := hc.DeleteMessage(); err != nil {
		h.logger.Debug("Failed to delete previous message", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
	}
}

// refreshWeek после записи или заявки показывает обновлённую неделю
func (h *Handlers) refreshWeek(ctx context.Context, b *bot.Bot, chatID int64, session *model.ChatSession) {
	switch {
	case session.IsStaff():
		cal, _ := h.calendars.Staff(ctx, session)
		if cal != nil {
			h.sendWeek(ctx, b, chatID, keyboard.ViewStaff, cal.Render(), "")
		}
	case session.IsPatient():
		cal, err := h.calendars.Patient(session)
		if err == nil {
			h.sendWeek(ctx, b, chatID, keyboard.ViewPatient, cal.Render(), h.dentistName(cal.Dentist()))
		}
	}
}

func (h *Handlers) dentistPrompt() string {
	if len(h.calendars.Dentists()) == 0 {
		return "❌ No hay dentistas configurados. Contacta con la clínica."
	}
	return "👩‍⚕️ <b>Selecciona un dentista</b> para ver su disponibilidad:"
}

func (h *Handlers) dentistName(id int64) string {
	if d, ok := h.calendars.Dentist(id); ok {
		return d.Name
	}
	return ""
}
