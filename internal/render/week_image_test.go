package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/clinic_bot/internal/calendar"
	"github.com/Freeeeeet/clinic_bot/internal/model"
)

var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestWeekImage_StaffGrid(t *testing.T) {
	grid := calendar.BuildStaffGrid(monday, []model.Appointment{{
		ID:          1,
		PatientName: "María José Fernández de la Cruz",
		Start:       monday.Add(10 * time.Hour),
		End:         monday.Add(11 * time.Hour),
		Status:      model.AppointmentStatusConfirmed,
	}}, monday.Add(9*time.Hour+45*time.Minute))

	img, err := WeekImage(grid, Options{Subtitle: "Agenda", Now: monday.Add(12 * time.Hour)})
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, decoded.Bounds().Dx())
	assert.Equal(t, imageHeight, decoded.Bounds().Dy())
}

func TestWeekImage_Placeholder(t *testing.T) {
	grid := &calendar.Grid{Anchor: monday, Placeholder: calendar.NoDentistPlaceholder}

	img, err := WeekImage(grid, Options{})
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), img[:4])
}

func TestWeekImage_NilGrid(t *testing.T) {
	_, err := WeekImage(nil, Options{})
	assert.Error(t, err)
}

func TestCellText(t *testing.T) {
	appt := &model.Appointment{PatientName: "Ana", Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)}

	first := calendar.Cell{Slot: 2, Start: appt.Start, State: calendar.CellOccupied, Appointment: appt}
	second := calendar.Cell{Slot: 3, Start: appt.Start.Add(30 * time.Minute), State: calendar.CellOccupied, Appointment: appt}

	assert.Equal(t, "Ana", cellText(first))
	assert.Empty(t, cellText(second))
	assert.Empty(t, cellText(calendar.Cell{State: calendar.CellAvailable}))
	assert.Equal(t, "abcdefghijklmno...", truncate("abcdefghijklmnopqrstu", maxBadgeRunes))
}

func TestCellColor_ByAppointmentStatus(t *testing.T) {
	canceled := calendar.Cell{State: calendar.CellOccupied, Appointment: &model.Appointment{Status: model.AppointmentStatusCanceled}}
	assert.Equal(t, appointmentColors[model.AppointmentStatusCanceled], cellColor(canceled))
	assert.Equal(t, cellOccupiedColor, cellColor(calendar.Cell{State: calendar.CellOccupied}))
	assert.Equal(t, cellPastColor, cellColor(calendar.Cell{State: calendar.CellPast}))
}
