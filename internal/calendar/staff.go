package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/week"
	"go.uber.org/zap"
)

// AgendaUnavailablePlaceholder показывается вместо сетки, пока неделя ни разу не загрузилась
const AgendaUnavailablePlaceholder = "No se pudo cargar la agenda. Pulsa «Actualizar» para reintentar."

// AppointmentSource - часть API клиники, нужная календарю персонала
type AppointmentSource interface {
	WeekAppointments(ctx context.Context, anchor time.Time) ([]model.Appointment, error)
	CreateAppointment(ctx context.Context, req model.NewAppointment) error
}

// StaffCalendar - недельный календарь записей для персонала клиники
type StaffCalendar struct {
	source AppointmentSource
	nav    *week.Navigator
	now    func() time.Time
	logger *zap.Logger

	mu           sync.Mutex
	appointments []model.Appointment
	loadedAnchor time.Time
}

// NewStaffCalendar создаёт календарь, установленный на текущую неделю.
// Данные не загружаются до первого Load или навигации.
func NewStaffCalendar(source AppointmentSource, opts ...Option) *StaffCalendar {
	o := buildOptions(opts)
	c := &StaffCalendar{
		source: source,
		now:    o.now,
		logger: o.logger,
	}
	c.nav = week.NewNavigator(o.now, c.load)
	return c
}

// Anchor возвращает понедельник отображаемой недели
func (c *StaffCalendar) Anchor() time.Time {
	return c.nav.Anchor()
}

// Load загружает записи текущей недели
func (c *StaffCalendar) Load(ctx context.Context) error {
	return c.load(ctx, c.nav.Anchor())
}

// PreviousWeek переходит на неделю назад и перезагружает записи
func (c *StaffCalendar) PreviousWeek(ctx context.Context) error {
	return c.nav.Previous(ctx)
}

// NextWeek переходит на неделю вперёд и перезагружает записи
func (c *StaffCalendar) NextWeek(ctx context.Context) error {
	return c.nav.Next(ctx)
}

// GoToToday возвращает календарь на текущую неделю
func (c *StaffCalendar) GoToToday(ctx context.Context) error {
	return c.nav.Today(ctx)
}

// load запрашивает неделю у клиники. При ошибке старый список остаётся на месте.
func (c *StaffCalendar) load(ctx context.Context, anchor time.Time) error {
	appointments, err := c.source.WeekAppointments(ctx, anchor)
	if err != nil {
		c.logger.Error("Failed to load week appointments",
			zap.String("week", week.FormatDate(anchor)),
			zap.Error(err))
		return fmt.Errorf("load appointments for week %s: %w", week.FormatDate(anchor), err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Пока шёл запрос, пользователь мог уйти на другую неделю
	if !c.nav.Anchor().Equal(anchor) {
		c.logger.Debug("Discarding stale week appointments",
			zap.String("week", week.FormatDate(anchor)))
		return nil
	}

	c.appointments = appointments
	c.loadedAnchor = anchor

	c.logger.Debug("Week appointments loaded",
		zap.String("week", week.FormatDate(anchor)),
		zap.Int("count", len(appointments)))
	return nil
}

// Loaded сообщает, была ли хоть одна неделя загружена успешно
func (c *StaffCalendar) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loadedAnchor.IsZero()
}

// Render строит сетку по последним успешно загруженным данным.
// Без данных возвращается заглушка: пустая неделя выглядела бы свободной.
func (c *StaffCalendar) Render() *Grid {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loadedAnchor.IsZero() {
		return &Grid{Anchor: c.nav.Anchor(), Placeholder: AgendaUnavailablePlaceholder}
	}
	return BuildStaffGrid(c.loadedAnchor, c.appointments, c.now())
}

// Appointments возвращает копию загруженного списка
func (c *StaffCalendar) Appointments() []model.Appointment {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]model.Appointment, len(c.appointments))
	copy(result, c.appointments)
	return result
}

// OpenAppointmentForm подготавливает форму новой записи для свободной ячейки
func (c *StaffCalendar) OpenAppointmentForm(cell Cell) (AppointmentForm, error) {
	if !cell.Clickable() {
		return AppointmentForm{}, fmt.Errorf("cell %s is %s: %w", cell.Start.Format(time.RFC3339), cell.State, ErrSlotNotAvailable)
	}
	return NewAppointmentForm(cell), nil
}

// Create отправляет новую запись и после успеха перезагружает неделю.
// Ошибка клиники возвращается как есть, чтобы показать её текст пользователю.
func (c *StaffCalendar) Create(ctx context.Context, form AppointmentForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	if err := c.source.CreateAppointment(ctx, form.Request()); err != nil {
		c.logger.Warn("Failed to create appointment",
			zap.Int64("patient_id", form.PatientID),
			zap.Int64("dentist_id", form.DentistID),
			zap.Time("start", form.Start),
			zap.Error(err))
		return err
	}

	c.logger.Info("Appointment created",
		zap.Int64("patient_id", form.PatientID),
		zap.Int64("dentist_id", form.DentistID),
		zap.Time("start", form.Start))

	if err := c.Load(ctx); err != nil {
		c.logger.Debug("Week not reloaded after create", zap.Error(err))
	}
	return nil
}
