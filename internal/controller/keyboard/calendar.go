package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/calendar"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/week"
)

const (
	slotsPerRow = 2
	daysPerRow  = 4
)

// EditURLFunc возвращает ссылку на редактирование записи
type EditURLFunc func(appointmentID int64) string

// WeekNavigation - клавиатура под изображением недели: навигация и семь дней
func WeekNavigation(view View, grid *calendar.Grid) *models.InlineKeyboardMarkup {
	b := NewBuilder().Row(
		Button("◀️", Calendar(view, ActionPrev)),
		Button("Hoy", Calendar(view, ActionToday)),
		Button("▶️", Calendar(view, ActionNext)),
	)

	if grid.Placeholder == "" {
		days := make([]models.InlineKeyboardButton, 0, week.DaysInWeek)
		for day, date := range week.Days(grid.Anchor) {
			free := 0
			for _, cell := range grid.Day(day) {
				if cell.Clickable() {
					free++
				}
			}
			label := fmt.Sprintf("%s %02d", week.DayShortName(date.Weekday()), date.Day())
			if free > 0 {
				label = fmt.Sprintf("%s · %d", label, free)
			}
			days = append(days, Button(label, Calendar(view, ActionDay, int64(day))))
		}
		b.Wrap(daysPerRow, days...)
	}

	footer := []models.InlineKeyboardButton{Button("🔄 Actualizar", Calendar(view, ActionRefresh))}
	if view == ViewPatient {
		footer = append(footer, Button("👩‍⚕️ Dentista", Calendar(view, ActionPick)))
	}
	return b.Row(footer...).Build()
}

// DaySlots - клавиатура дня: 22 окна.
// Свободное окно начинает диалог, занятая запись ведёт на страницу редактирования, прошлое неактивно.
func DaySlots(view View, grid *calendar.Grid, day int, editURL EditURLFunc) *models.InlineKeyboardMarkup {
	b := NewBuilder()

	buttons := make([]models.InlineKeyboardButton, 0, calendar.SlotsPerDay)
	for _, cell := range grid.Day(day) {
		buttons = append(buttons, slotButton(view, cell, editURL))
	}
	b.Wrap(slotsPerRow, buttons...)

	return b.Row(BackButton(Calendar(view, ActionWeek))).Build()
}

func slotButton(view View, cell calendar.Cell, editURL EditURLFunc) models.InlineKeyboardButton {
	label := calendar.SlotLabel(cell.Slot)
	switch cell.State {
	case calendar.CellAvailable:
		return Button("✅ "+label, Calendar(view, ActionSlot, int64(cell.Day), int64(cell.Slot)))
	case calendar.CellOccupied:
		if cell.Appointment != nil && editURL != nil {
			return URLButton(fmt.Sprintf("%s %s %s", AppointmentEmoji(cell.Appointment.Status), label, cell.Appointment.PatientName),
				editURL(cell.Appointment.ID))
		}
		return Button("🔴 "+label, Noop)
	default:
		return Button("▫️ "+label, Noop)
	}
}

// AppointmentEmoji - значок статуса записи
func AppointmentEmoji(status model.AppointmentStatus) string {
	switch status {
	case model.AppointmentStatusScheduled:
		return "🟡"
	case model.AppointmentStatusConfirmed:
		return "🔵"
	case model.AppointmentStatusCanceled:
		return "⚪"
	case model.AppointmentStatusDone:
		return "🟢"
	default:
		return "🔴"
	}
}

// Dentists - выбор дентиста из справочника
func Dentists(dentists []model.Dentist, selected int64) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, d := range dentists {
		label := d.Name
		if d.ID == selected {
			label = "✔️ " + label
		}
		b.Row(Button(label, Calendar(ViewPatient, ActionDentist, d.ID)))
	}
	return b.Build()
}

// DentistChoice - выбор дентиста на шаге диалога записи
func DentistChoice(dentists []model.Dentist) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, d := range dentists {
		b.Row(Button(d.Name, fmt.Sprintf("%s%d", DialogDentist, d.ID)))
	}
	return b.Row(CancelButton(DialogCancel)).Build()
}
