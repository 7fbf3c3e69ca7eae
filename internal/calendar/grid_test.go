package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Понедельник 01.01.2024
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestGrid_Shape(t *testing.T) {
	for _, anchor := range []time.Time{monday, time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC)} {
		g := BuildStaffGrid(anchor, nil, anchor.AddDate(-1, 0, 0))

		total := 0
		g.Each(func(c Cell) {
			total++
			assert.Equal(t, 30*time.Minute, c.End.Sub(c.Start))
			assert.Equal(t, 0, c.Start.Minute()%30)
		})
		assert.Equal(t, 154, total)
		assert.Equal(t, CellsPerWeek, total)

		assert.Equal(t, 9, g.Cells[0][0].Start.Hour())
		last := g.Cells[SlotsPerDay-1][6].Start
		assert.Equal(t, 19, last.Hour())
		assert.Equal(t, 30, last.Minute())
		assert.Equal(t, time.Sunday, last.Weekday())
	}

	labels := SlotLabels()
	require.Len(t, labels, 22)
	assert.Equal(t, "09:00", labels[0])
	assert.Equal(t, "09:30", labels[1])
	assert.Equal(t, "19:30", labels[21])
}

func TestGrid_PastCellsIgnoreData(t *testing.T) {
	// "Сейчас" - вторник 12:15: всё до вторника 12:00 включительно в прошлом
	now := time.Date(2024, 1, 2, 12, 15, 0, 0, time.UTC)
	appointments := []model.Appointment{{
		ID: 1, Start: monday.Add(9 * time.Hour), End: monday.AddDate(0, 0, 7),
	}}
	slots := []model.AvailabilitySlot{{Start: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC), Available: true}}

	for _, g := range []*Grid{
		BuildStaffGrid(monday, appointments, now),
		BuildPatientGrid(monday, slots, now),
	} {
		g.Each(func(c Cell) {
			if c.Start.Before(now) {
				assert.Equal(t, CellPast, c.State, "cell %s", c.Start)
				assert.Nil(t, c.Appointment)
			} else {
				assert.NotEqual(t, CellPast, c.State, "cell %s", c.Start)
			}
		})
		// 22 окна понедельника + 7 окон вторника до 12:00 включительно
		assert.Equal(t, 22+7, g.Count(CellPast))
	}
}

func TestBuildStaffGrid_SingleSlotAppointment(t *testing.T) {
	appt := model.Appointment{
		ID:          7,
		PatientName: "Ana Pérez",
		Start:       monday.Add(10 * time.Hour),
		End:         monday.Add(10*time.Hour + 30*time.Minute),
		Status:      model.AppointmentStatusConfirmed,
	}
	g := BuildStaffGrid(monday, []model.Appointment{appt}, monday.AddDate(0, 0, -1))

	assert.Equal(t, 1, g.Count(CellOccupied))
	assert.Equal(t, 153, g.Count(CellAvailable))

	cell, ok := g.Find(monday.Add(10 * time.Hour))
	require.True(t, ok)
	assert.Equal(t, CellOccupied, cell.State)
	require.NotNil(t, cell.Appointment)
	assert.Equal(t, int64(7), cell.Appointment.ID)
	assert.Equal(t, 0, cell.Day)
	assert.Equal(t, 2, cell.Slot)
}

func TestBuildStaffGrid_IntervalContainmentAndFirstMatch(t *testing.T) {
	appointments := []model.Appointment{
		{ID: 1, Start: monday.Add(11 * time.Hour), End: monday.Add(12*time.Hour + 15*time.Minute)},
		{ID: 2, Start: monday.Add(12 * time.Hour), End: monday.Add(13 * time.Hour)},
	}
	g := BuildStaffGrid(monday, appointments, monday.AddDate(0, 0, -1))

	day := g.Day(0)
	// 11:00, 11:30, 12:00 - первая запись (первая подходящая выигрывает на 12:00)
	assert.Equal(t, int64(1), day[4].Appointment.ID)
	assert.Equal(t, int64(1), day[5].Appointment.ID)
	assert.Equal(t, int64(1), day[6].Appointment.ID)
	// 12:30 - только вторая
	assert.Equal(t, int64(2), day[7].Appointment.ID)
	// 13:00 - конец интервала не включается
	assert.Equal(t, CellAvailable, day[8].State)
}

func TestBuildPatientGrid_ExactMatchOnly(t *testing.T) {
	start, err := time.Parse(time.RFC3339, "2024-01-01T10:00:00Z")
	require.NoError(t, err)

	slots := []model.AvailabilitySlot{{Start: start, Available: true}}
	g := BuildPatientGrid(monday, slots, monday.AddDate(0, 0, -1))

	assert.Equal(t, 1, g.Count(CellAvailable))
	assert.Equal(t, 153, g.Count(CellOccupied))
	cell, ok := g.Find(start)
	require.True(t, ok)
	assert.Equal(t, CellAvailable, cell.State)
	assert.True(t, cell.Clickable())
}

func TestBuildPatientGrid_MisalignedAndUnavailable(t *testing.T) {
	slots := []model.AvailabilitySlot{
		{Start: monday.Add(10*time.Hour + 15*time.Minute), Available: true},
		{Start: monday.Add(11 * time.Hour), Available: false},
	}
	g := BuildPatientGrid(monday, slots, monday.AddDate(0, 0, -1))

	assert.Equal(t, 0, g.Count(CellAvailable))
	assert.Equal(t, 154, g.Count(CellOccupied))
}

func TestSlotStart_KeepsWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	anchor := time.Date(2025, 3, 24, 0, 0, 0, 0, loc)
	sunday := SlotStart(anchor, 6, 0)
	assert.Equal(t, 9, sunday.Hour())
	assert.Equal(t, time.Sunday, sunday.Weekday())
	assert.Equal(t, 30, sunday.Day())
}
