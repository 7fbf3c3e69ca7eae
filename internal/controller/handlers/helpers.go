package handlers

import (
	"fmt"
	"html"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/calendar"
	"github.com/Freeeeeet/clinic_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/odontogram"
	"github.com/Freeeeeet/clinic_bot/internal/week"
)

// commandArgs возвращает аргументы команды: "/vincular personal abc" -> [personal abc]
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

// displayName собирает имя пользователя Telegram
func displayName(user *models.User) string {
	if user == nil {
		return ""
	}
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = user.Username
	}
	return name
}

// weekCaption - подпись под изображением недели
func weekCaption(view keyboard.View, grid *calendar.Grid, subtitle string) string {
	var sb strings.Builder
	if view == keyboard.ViewStaff {
		sb.WriteString("📅 <b>Agenda de la clínica</b>\n")
	} else {
		sb.WriteString("🦷 <b>Disponibilidad</b>\n")
	}
	if subtitle != "" {
		sb.WriteString("👩‍⚕️ " + html.EscapeString(subtitle) + "\n")
	}
	sb.WriteString(fmt.Sprintf("🗓 %s · %s\n\n", week.Title(grid.Anchor), week.RangeLabel(grid.Anchor)))

	if grid.Placeholder != "" {
		sb.WriteString(grid.Placeholder)
		return sb.String()
	}

	if view == keyboard.ViewStaff {
		sb.WriteString(fmt.Sprintf("Ocupadas: %d · Libres: %d\n", grid.Count(calendar.CellOccupied), grid.Count(calendar.CellAvailable)))
		sb.WriteString("Elige un día para crear una cita o abrir una existente.")
	} else {
		sb.WriteString(fmt.Sprintf("Tramos libres: %d\n", grid.Count(calendar.CellAvailable)))
		sb.WriteString("Elige un día para solicitar cita.")
	}
	return sb.String()
}

// dayCaption - подпись к списку окон одного дня
func dayCaption(view keyboard.View, grid *calendar.Grid, day int) string {
	date := week.Days(grid.Anchor)[day]
	free := 0
	for _, cell := range grid.Day(day) {
		if cell.Clickable() {
			free++
		}
	}

	hint := "✅ libre · ▫️ pasado · 🔴 ocupado"
	if view == keyboard.ViewStaff {
		hint = "✅ libre · ▫️ pasado · cita: abre la ficha en la web"
	}
	return fmt.Sprintf("📅 <b>%s, %s</b>\nTramos libres: %d\n\n%s",
		week.DayName(date.Weekday()), week.DayLabel(date), free, hint)
}

// cellLabel описывает окно: "Lunes 13 Octubre · 10:00-10:30"
func cellLabel(cell calendar.Cell) string {
	return fmt.Sprintf("%s %s · %s-%s",
		week.DayName(cell.Start.Weekday()), week.DayLabel(cell.Start),
		cell.Start.Format("15:04"), cell.End.Format("15:04"))
}

// appointmentSummary - сводка новой записи перед подтверждением
func appointmentSummary(form calendar.AppointmentForm, dentistName string) string {
	var sb strings.Builder
	sb.WriteString("📝 <b>Nueva cita</b>\n\n")
	sb.WriteString(fmt.Sprintf("🕐 %s\n", cellLabel(calendar.Cell{Start: form.Start, End: form.End})))
	sb.WriteString(fmt.Sprintf("🧑 Paciente: #%d\n", form.PatientID))
	if dentistName != "" {
		sb.WriteString(fmt.Sprintf("👩‍⚕️ Dentista: %s\n", html.EscapeString(dentistName)))
	} else {
		sb.WriteString(fmt.Sprintf("👩‍⚕️ Dentista: #%d\n", form.DentistID))
	}
	sb.WriteString(fmt.Sprintf("💬 Motivo: %s\n", orDash(form.Reason)))
	if form.RoomID > 0 {
		sb.WriteString(fmt.Sprintf("🚪 Sala: %d\n", form.RoomID))
	}
	sb.WriteString(fmt.Sprintf("💺 Sillón: %s", orDash(form.Chair)))
	return sb.String()
}

// requestSummary - сводка заявки пациента перед подтверждением
func requestSummary(form calendar.RequestForm, dentistName string) string {
	return fmt.Sprintf("📝 <b>Solicitar cita</b>\n\n🕐 %s\n👩‍⚕️ Dentista: %s\n💬 Motivo: %s",
		cellLabel(calendar.Cell{Start: form.Start, End: form.End}),
		html.EscapeString(dentistName),
		orDash(form.Reason))
}

// editorText - текст сообщения редактора одонтограммы
func editorText(editor *odontogram.Editor) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🦷 <b>Odontograma del paciente #%d</b>\n\n", editor.PatientID()))

	if info, ok := editor.Info(); ok {
		sb.WriteString(html.EscapeString(info.Text()))
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("Selecciona una pieza para cambiar su estado.\n\n")
	}

	sb.WriteString("📝 Notas: " + orDash(editor.Notes()))
	if editor.Dirty() {
		sb.WriteString("\n\n✏️ Hay cambios sin guardar")
	}
	return sb.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return html.EscapeString(s)
}
