package handlers

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/clinic_bot/internal/calendar"
	"github.com/Freeeeeet/clinic_bot/internal/clinicapi"
	"github.com/Freeeeeet/clinic_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/odontogram"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("get: %w", service.ErrNotLinked), "🔗 Este chat no está vinculado a la clínica.\nUsa /vincular personal|paciente <cookie>"},
		{clinicapi.ErrUnauthorized, "🔒 La sesión de la clínica ha caducado. Vuelve a vincular el chat con /vincular"},
		{&clinicapi.APIError{Status: 400, Message: "Paciente no encontrado"}, "Error: Paciente no encontrado"},
		{&clinicapi.APIError{Status: 500}, "Error del servidor (500)"},
		{&calendar.FieldError{Field: "patient_id", Reason: "required"}, "❌ Falta un dato obligatorio: paciente"},
		{calendar.ErrNoDentist, "Por favor selecciona un dentista primero"},
		{errors.New("boom"), "❌ Se produjo un error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorMessage(tt.err), tt.err.Error())
	}
}

func TestOperationError(t *testing.T) {
	assert.Equal(t, "Error: Horario ocupado",
		operationError(&clinicapi.APIError{Status: 400, Message: "Horario ocupado"}, "Error al crear la cita"))
	assert.Equal(t, "Error al crear la cita",
		operationError(fmt.Errorf("post: %w", clinicapi.ErrTransport), "Error al crear la cita"))
	assert.Equal(t, ErrorMessage(clinicapi.ErrUnauthorized),
		operationError(clinicapi.ErrUnauthorized, "Error al solicitar la cita"))
}

func TestSaveError(t *testing.T) {
	assert.Equal(t, "Error al guardar el odontograma: Sin permiso",
		saveError(&clinicapi.APIError{Status: 400, Message: "Sin permiso"}))
	assert.Equal(t, "Error al guardar el odontograma: Error desconocido",
		saveError(&clinicapi.APIError{Status: 200}))
	assert.Equal(t, "Error al guardar el odontograma. Por favor, intenta nuevamente.",
		saveError(clinicapi.ErrTransport))
}

func TestParsePositiveID(t *testing.T) {
	id, ok := parsePositiveID(" #42 ")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc", "4.2"} {
		_, ok := parsePositiveID(bad)
		assert.False(t, ok, bad)
	}
}

func TestCommandArgs(t *testing.T) {
	assert.Equal(t, []string{"personal", "abc=="}, commandArgs("/vincular  personal   abc=="))
	assert.Empty(t, commandArgs("/desvincular"))
	assert.Nil(t, commandArgs("   "))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ana López", displayName(&models.User{FirstName: "Ana", LastName: "López"}))
	assert.Equal(t, "ana_l", displayName(&models.User{Username: "ana_l"}))
	assert.Equal(t, "", displayName(nil))
}

func TestCellLabel(t *testing.T) {
	start := monday.Add(10 * time.Hour)
	cell := calendar.Cell{Start: start, End: start.Add(calendar.SlotDuration)}
	assert.Equal(t, "Lunes 13 Octubre · 10:00-10:30", cellLabel(cell))
}

func TestWeekCaption(t *testing.T) {
	grid := calendar.BuildStaffGrid(monday, nil, monday)
	caption := weekCaption(keyboard.ViewStaff, grid, "")
	assert.Contains(t, caption, "Agenda de la clínica")
	assert.Contains(t, caption, "Octubre 2025 · 13.10 - 19.10.2025")
	assert.Contains(t, caption, "Libres: 154")

	placeholder := &calendar.Grid{Anchor: monday, Placeholder: calendar.NoDentistPlaceholder}
	caption = weekCaption(keyboard.ViewPatient, placeholder, "")
	assert.Contains(t, caption, calendar.NoDentistPlaceholder)
	assert.NotContains(t, caption, "Tramos libres")
}

func TestAppointmentSummary(t *testing.T) {
	start := monday.Add(9 * time.Hour)
	form := calendar.AppointmentForm{
		PatientID: 7,
		DentistID: 2,
		Start:     start,
		End:       start.Add(calendar.SlotDuration),
		Reason:    "<limpieza>",
	}

	summary := appointmentSummary(form, "Dra. García")
	assert.Contains(t, summary, "Paciente: #7")
	assert.Contains(t, summary, "Dentista: Dra. García")
	assert.Contains(t, summary, "Motivo: &lt;limpieza&gt;")
	assert.Contains(t, summary, "Sillón: -")
	assert.NotContains(t, summary, "Sala")
}

func TestEditorText(t *testing.T) {
	chart := model.Odontogram{
		PatientID: 5,
		Teeth:     map[string]model.ToothEntry{"1.8": {Status: model.ToothStatusCavity}},
	}
	editor := odontogram.NewEditor(chart, nil, nil)

	text := editorText(editor)
	assert.Contains(t, text, "paciente #5")
	assert.Contains(t, text, "Selecciona una pieza")
	assert.NotContains(t, text, "cambios sin guardar")

	_, err := editor.Select("1.8")
	assert.NoError(t, err)
	_, err = editor.SetStatus(model.ToothStatusCrown)
	assert.NoError(t, err)

	text = editorText(editor)
	assert.Contains(t, text, "Pieza: 1.8 - Muela del juicio superior derecha")
	assert.Contains(t, text, "Estado actual: Corona")
	assert.Contains(t, text, "cambios sin guardar")
}
