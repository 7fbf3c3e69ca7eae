package calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/week"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointments struct {
	mu        sync.Mutex
	byWeek    map[string][]model.Appointment
	loadErr   error
	createErr error
	requested []string
	created   []model.NewAppointment
}

func (f *fakeAppointments) WeekAppointments(_ context.Context, anchor time.Time) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested = append(f.requested, week.FormatDate(anchor))
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.byWeek[week.FormatDate(anchor)], nil
}

func (f *fakeAppointments) CreateAppointment(_ context.Context, req model.NewAppointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, req)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStaffCalendar_LoadAndNavigate(t *testing.T) {
	now := time.Date(2023, 12, 27, 8, 0, 0, 0, time.UTC) // среда прошлой недели
	source := &fakeAppointments{byWeek: map[string][]model.Appointment{
		"2024-01-01": {{ID: 1, Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)}},
	}}
	cal := NewStaffCalendar(source, WithClock(fixedClock(now)))
	ctx := context.Background()

	assert.Equal(t, time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), cal.Anchor())
	require.NoError(t, cal.Load(ctx))
	assert.Equal(t, 0, cal.Render().Count(CellOccupied))

	require.NoError(t, cal.NextWeek(ctx))
	assert.Equal(t, monday, cal.Anchor())
	g := cal.Render()
	assert.Equal(t, monday, g.Anchor)
	assert.Equal(t, 2, g.Count(CellOccupied))

	require.NoError(t, cal.PreviousWeek(ctx))
	require.NoError(t, cal.GoToToday(ctx))
	assert.Equal(t, []string{"2023-12-25", "2024-01-01", "2023-12-25", "2023-12-25"}, source.requested)
}

func TestStaffCalendar_LoadFailureKeepsPreviousGrid(t *testing.T) {
	now := time.Date(2023, 12, 31, 8, 0, 0, 0, time.UTC)
	source := &fakeAppointments{byWeek: map[string][]model.Appointment{
		"2023-12-25": {{ID: 3, Start: time.Date(2023, 12, 31, 18, 0, 0, 0, time.UTC), End: time.Date(2023, 12, 31, 19, 0, 0, 0, time.UTC)}},
	}}
	cal := NewStaffCalendar(source, WithClock(fixedClock(now)))
	ctx := context.Background()

	require.NoError(t, cal.Load(ctx))
	before := cal.Render()
	require.Equal(t, 2, before.Count(CellOccupied))

	source.loadErr = errors.New("connection refused")
	err := cal.NextWeek(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, source.loadErr)

	// Якорь сдвинулся, но видна прежняя неделя с прежними записями
	assert.Equal(t, monday, cal.Anchor())
	after := cal.Render()
	assert.Equal(t, before.Anchor, after.Anchor)
	assert.Equal(t, 2, after.Count(CellOccupied))
	assert.Len(t, cal.Appointments(), 1)
}

func TestStaffCalendar_Create(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	source := &fakeAppointments{byWeek: map[string][]model.Appointment{}}
	cal := NewStaffCalendar(source, WithClock(fixedClock(now)))
	ctx := context.Background()
	require.NoError(t, cal.Load(ctx))

	cell, ok := cal.Render().Find(monday.Add(9 * time.Hour))
	require.True(t, ok)
	form, err := cal.OpenAppointmentForm(cell)
	require.NoError(t, err)
	assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), form.End)

	// Без пациента форма не отправляется
	err = cal.Create(ctx, form)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, source.created)

	form.PatientID = 12
	form.DentistID = 3
	form.Reason = "  Revisión "
	form.Chair = "Sillón 2"
	require.NoError(t, cal.Create(ctx, form))
	require.Len(t, source.created, 1)
	assert.Equal(t, "Revisión", source.created[0].Reason)
	assert.Nil(t, source.created[0].RoomID)
	require.NotNil(t, source.created[0].Chair)
	assert.Equal(t, "Sillón 2", *source.created[0].Chair)
	// После создания неделя перезагружена
	assert.Equal(t, []string{"2024-01-01", "2024-01-01"}, source.requested)

	source.createErr = errors.New("El dentista ya tiene una cita en ese horario")
	err = cal.Create(ctx, form)
	assert.Equal(t, source.createErr, err)
}

func TestStaffCalendar_OpenFormRejectsBusyCells(t *testing.T) {
	cal := NewStaffCalendar(&fakeAppointments{}, WithClock(fixedClock(monday.Add(12*time.Hour))))
	require.NoError(t, cal.Load(context.Background()))
	past := cal.Render().Cells[0][0]
	require.Equal(t, CellPast, past.State)

	_, err := cal.OpenAppointmentForm(past)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

// navigatingSource переключает неделю, пока отвечает на запрос
type navigatingSource struct {
	fakeAppointments
	during func()
}

func (s *navigatingSource) WeekAppointments(ctx context.Context, anchor time.Time) ([]model.Appointment, error) {
	if during := s.during; during != nil {
		s.during = nil
		during()
	}
	return s.fakeAppointments.WeekAppointments(ctx, anchor)
}

func TestStaffCalendar_StaleResponseDiscarded(t *testing.T) {
	now := time.Date(2023, 12, 27, 8, 0, 0, 0, time.UTC)
	source := &navigatingSource{fakeAppointments: fakeAppointments{byWeek: map[string][]model.Appointment{
		"2023-12-25": {{ID: 7, Start: time.Date(2023, 12, 28, 10, 0, 0, 0, time.UTC), End: time.Date(2023, 12, 28, 10, 30, 0, 0, time.UTC)}},
		"2024-01-01": {{ID: 8, Start: monday.Add(12 * time.Hour), End: monday.Add(12*time.Hour + 30*time.Minute)}},
	}}}
	cal := NewStaffCalendar(source, WithClock(fixedClock(now)))
	ctx := context.Background()
	source.during = func() { require.NoError(t, cal.NextWeek(ctx)) }

	require.NoError(t, cal.Load(ctx))

	assert.Equal(t, monday, cal.Anchor())
	apps := cal.Appointments()
	require.Len(t, apps, 1)
	assert.Equal(t, int64(8), apps[0].ID)
	assert.Equal(t, monday, cal.Render().Anchor)
}

func TestStaffCalendar_FirstLoadFailureShowsPlaceholder(t *testing.T) {
	source := &fakeAppointments{loadErr: errors.New("connection refused")}
	cal := NewStaffCalendar(source, WithClock(fixedClock(monday.Add(8*time.Hour))))
	ctx := context.Background()

	require.Error(t, cal.Load(ctx))
	assert.False(t, cal.Loaded())
	g := cal.Render()
	assert.Equal(t, AgendaUnavailablePlaceholder, g.Placeholder)
	assert.Equal(t, monday, g.Anchor)
	assert.Equal(t, 0, g.Count(CellAvailable))

	source.loadErr = nil
	require.NoError(t, cal.Load(ctx))
	assert.True(t, cal.Loaded())
	g = cal.Render()
	assert.Empty(t, g.Placeholder)
	assert.Equal(t, 154, g.Count(CellAvailable))
}
