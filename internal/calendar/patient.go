package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/week"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// NoDentistPlaceholder показывается вместо сетки, пока дентист не выбран
	NoDentistPlaceholder = "Selecciona un dentista para ver disponibilidad"
	// AvailabilityUnavailablePlaceholder показывается, пока окна выбранного дентиста не загружены
	AvailabilityUnavailablePlaceholder = "No se pudo cargar la disponibilidad. Pulsa «Actualizar» para reintentar."
	// DefaultRequestMessage используется, если клиника не прислала своё подтверждение
	DefaultRequestMessage = "Cita solicitada correctamente"
)

var (
	ErrNoDentist        = errors.New("no dentist selected")
	ErrSlotNotAvailable = errors.New("slot is not available")
)

// AvailabilitySource - часть API клиники, нужная календарю пациента
type AvailabilitySource interface {
	DayAvailability(ctx context.Context, day time.Time, dentistID int64) ([]model.AvailabilitySlot, error)
	RequestAppointment(ctx context.Context, req model.AppointmentRequest) (string, error)
}

// PatientCalendar - недельный календарь свободных окон выбранного дентиста
type PatientCalendar struct {
	source AvailabilitySource
	nav    *week.Navigator
	now    func() time.Time
	logger *zap.Logger

	mu            sync.Mutex
	dentistID     int64
	slots         []model.AvailabilitySlot
	loadedAnchor  time.Time
	loadedDentist int64
}

// NewPatientCalendar создаёт календарь без выбранного дентиста
func NewPatientCalendar(source AvailabilitySource, opts ...Option) *PatientCalendar {
	o := buildOptions(opts)
	c := &PatientCalendar{
		source: source,
		now:    o.now,
		logger: o.logger,
	}
	c.nav = week.NewNavigator(o.now, c.onWeekChanged)
	return c
}

// Anchor возвращает понедельник отображаемой недели
func (c *PatientCalendar) Anchor() time.Time {
	return c.nav.Anchor()
}

// Dentist возвращает выбранного дентиста (0 - не выбран)
func (c *PatientCalendar) Dentist() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dentistID
}

// SelectDentist выбирает дентиста и загружает его неделю
func (c *PatientCalendar) SelectDentist(ctx context.Context, dentistID int64) error {
	c.mu.Lock()
	c.dentistID = dentistID
	c.mu.Unlock()

	return c.Load(ctx)
}

// PreviousWeek переходит на неделю назад
func (c *PatientCalendar) PreviousWeek(ctx context.Context) error {
	return c.nav.Previous(ctx)
}

// NextWeek переходит на неделю вперёд
func (c *PatientCalendar) NextWeek(ctx context.Context) error {
	return c.nav.Next(ctx)
}

// GoToToday возвращает календарь на текущую неделю
func (c *PatientCalendar) GoToToday(ctx context.Context) error {
	return c.nav.Today(ctx)
}

// onWeekChanged перезагружает неделю только если дентист уже выбран
func (c *PatientCalendar) onWeekChanged(ctx context.Context, anchor time.Time) error {
	dentistID := c.Dentist()
	if dentistID == 0 {
		return nil
	}
	return c.load(ctx, anchor, dentistID)
}

// Load загружает свободные окна текущей недели
func (c *PatientCalendar) Load(ctx context.Context) error {
	dentistID := c.Dentist()
	if dentistID == 0 {
		return ErrNoDentist
	}
	return c.load(ctx, c.nav.Anchor(), dentistID)
}

// load запрашивает семь дней параллельно. Ошибка любого дня отменяет весь
// результат: сетка остаётся в предыдущем состоянии.
func (c *PatientCalendar) load(ctx context.Context, anchor time.Time, dentistID int64) error {
	days := week.Days(anchor)
	perDay := make([][]model.AvailabilitySlot, len(days))

	g, gctx := errgroup.WithContext(ctx)
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			slots, err := c.source.DayAvailability(gctx, day, dentistID)
			if err != nil {
				return fmt.Errorf("availability for %s: %w", week.FormatDate(day), err)
			}
			perDay[i] = slots
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Error("Failed to load availability",
			zap.String("week", week.FormatDate(anchor)),
			zap.Int64("dentist_id", dentistID),
			zap.Error(err))
		return err
	}

	var slots []model.AvailabilitySlot
	for _, daySlots := range perDay {
		slots = append(slots, daySlots...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dentistID != dentistID || !c.nav.Anchor().Equal(anchor) {
		c.logger.Debug("Discarding stale availability",
			zap.String("week", week.FormatDate(anchor)),
			zap.Int64("dentist_id", dentistID))
		return nil
	}

	c.slots = slots
	c.loadedAnchor = anchor
	c.loadedDentist = dentistID

	c.logger.Debug("Availability loaded",
		zap.String("week", week.FormatDate(anchor)),
		zap.Int64("dentist_id", dentistID),
		zap.Int("slots", len(slots)))
	return nil
}

// loadedLocked сообщает, загружены ли окна именно выбранного дентиста
func (c *PatientCalendar) loadedLocked() bool {
	return c.dentistID != 0 && c.loadedDentist == c.dentistID && !c.loadedAnchor.IsZero()
}

// Render строит сетку по последним загруженным окнам или возвращает заглушку.
// Окна прежнего дентиста новому не показываются.
func (c *PatientCalendar) Render() *Grid {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dentistID == 0 {
		return &Grid{Anchor: c.nav.Anchor(), Placeholder: NoDentistPlaceholder}
	}
	if !c.loadedLocked() {
		return &Grid{Anchor: c.nav.Anchor(), Placeholder: AvailabilityUnavailablePlaceholder}
	}
	return BuildPatientGrid(c.loadedAnchor, c.slots, c.now())
}

// OpenRequestForm подготавливает заявку на свободную ячейку
func (c *PatientCalendar) OpenRequestForm(cell Cell) (RequestForm, error) {
	c.mu.Lock()
	dentistID := c.dentistID
	loaded := c.loadedLocked()
	c.mu.Unlock()

	if dentistID == 0 {
		return RequestForm{}, ErrNoDentist
	}
	if !loaded {
		return RequestForm{}, fmt.Errorf("availability of dentist %d is not loaded: %w", dentistID, ErrSlotNotAvailable)
	}
	if !cell.Clickable() {
		return RequestForm{}, fmt.Errorf("cell %s is %s: %w", cell.Start.Format(time.RFC3339), cell.State, ErrSlotNotAvailable)
	}
	return RequestForm{DentistID: dentistID, Start: cell.Start, End: cell.End}, nil
}

// Request отправляет заявку и возвращает подтверждение клиники.
// После успеха неделя перезагружается.
func (c *PatientCalendar) Request(ctx context.Context, form RequestForm) (string, error) {
	if form.DentistID == 0 {
		form.DentistID = c.Dentist()
	}
	if err := form.Validate(); err != nil {
		return "", err
	}

	message, err := c.source.RequestAppointment(ctx, form.Request())
	if err != nil {
		c.logger.Warn("Failed to request appointment",
			zap.Int64("dentist_id", form.DentistID),
			zap.Time("start", form.Start),
			zap.Error(err))
		return "", err
	}
	if message == "" {
		message = DefaultRequestMessage
	}

	c.logger.Info("Appointment requested",
		zap.Int64("dentist_id", form.DentistID),
		zap.Time("start", form.Start))

	if c.Dentist() != 0 {
		if err := c.Load(ctx); err != nil {
			c.logger.Debug("Week not reloaded after request", zap.Error(err))
		}
	}
	return message, nil
}
