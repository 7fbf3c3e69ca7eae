package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/calendar"
	"github.com/Freeeeeet/clinic_bot/internal/model"
)

type staffEntry struct {
	cookie string
	api    ClinicAPI
	cal    *calendar.StaffCalendar
}

type patientEntry struct {
	cookie string
	cal    *calendar.PatientCalendar
}

// CalendarService хранит календари по чатам: у каждого чата своя неделя и свой дентист
type CalendarService struct {
	clinic   ClinicFactory
	dentists []model.Dentist
	now      func() time.Time
	logger   *zap.Logger

	mu      sync.Mutex
	staff   map[int64]*staffEntry
	patient map[int64]*patientEntry
}

func NewCalendarService(clinic ClinicFactory, dentists []model.Dentist, now func() time.Time, logger *zap.Logger) *CalendarService {
	if now == nil {
		now = time.Now
	}
	return &CalendarService{
		clinic:   clinic,
		dentists: dentists,
		now:      now,
		logger:   logger,
		staff:    make(map[int64]*staffEntry),
		patient:  make(map[int64]*patientEntry),
	}
}

// Staff возвращает календарь персонала чата. Пока неделя ни разу не загрузилась,
// каждый вызов повторяет загрузку.
func (s *CalendarService) Staff(ctx context.Context, session *model.ChatSession) (*calendar.StaffCalendar, error) {
	if !session.IsStaff() {
		return nil, ErrStaffOnly
	}

	s.mu.Lock()
	entry, ok := s.staff[session.ChatID]
	created := !ok || entry.cookie != session.SessionCookie
	if created {
		api := s.clinic(session.SessionCookie)
		entry = &staffEntry{
			cookie: session.SessionCookie,
			api:    api,
			cal: calendar.NewStaffCalendar(api,
				calendar.WithClock(s.now),
				calendar.WithLogger(s.logger.With(zap.Int64("chat_id", session.ChatID)))),
		}
		s.staff[session.ChatID] = entry
	}
	s.mu.Unlock()

	if created || !entry.cal.Loaded() {
		if err := entry.cal.Load(ctx); err != nil {
			return entry.cal, err
		}
	}
	return entry.cal, nil
}

// AppointmentEditURL - ссылка на редактирование записи в веб-панели клиники
func (s *CalendarService) AppointmentEditURL(session *model.ChatSession, appointmentID int64) string {
	s.mu.Lock()
	entry, ok := s.staff[session.ChatID]
	s.mu.Unlock()
	if ok {
		return entry.api.AppointmentEditURL(appointmentID)
	}
	return s.clinic(session.SessionCookie).AppointmentEditURL(appointmentID)
}

// Patient возвращает календарь пациента чата; без выбранного дентиста он ничего не загружает
func (s *CalendarService) Patient(session *model.ChatSession) (*calendar.PatientCalendar, error) {
	if !session.IsPatient() {
		return nil, ErrPatientOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.patient[session.ChatID]
	if !ok || entry.cookie != session.SessionCookie {
		entry = &patientEntry{
			cookie: session.SessionCookie,
			cal: calendar.NewPatientCalendar(s.clinic(session.SessionCookie),
				calendar.WithClock(s.now),
				calendar.WithLogger(s.logger.With(zap.Int64("chat_id", session.ChatID)))),
		}
		s.patient[session.ChatID] = entry
	}
	return entry.cal, nil
}

// SelectDentist выбирает дентиста из справочника и загружает его неделю
func (s *CalendarService) SelectDentist(ctx context.Context, session *model.ChatSession, dentistID int64) (*calendar.PatientCalendar, error) {
	if _, ok := s.Dentist(dentistID); !ok {
		return nil, ErrUnknownDentist
	}
	cal, err := s.Patient(session)
	if err != nil {
		return nil, err
	}
	return cal, cal.SelectDentist(ctx, dentistID)
}

// Dentists возвращает справочник дентистов
func (s *CalendarService) Dentists() []model.Dentist {
	return s.dentists
}

// Dentist ищет дентиста в справочнике
func (s *CalendarService) Dentist(id int64) (model.Dentist, bool) {
	for _, d := range s.dentists {
		if d.ID == id {
			return d, true
		}
	}
	return model.Dentist{}, false
}

// Now - текущий момент в часовом поясе клиники
func (s *CalendarService) Now() time.Time {
	return s.now()
}

// Location - часовой пояс, в котором строятся недели
func (s *CalendarService) Location() *time.Location {
	return s.now().Location()
}

// Reset забывает календари чата
func (s *CalendarService) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.staff, chatID)
	delete(s.patient, chatID)
}
