package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

type fakeStore struct {
	mu       sync.Mutex
	sessions map[int64]*model.ChatSession
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[int64]*model.ChatSession)}
}

func (f *fakeStore) Upsert(_ context.Context, s *model.ChatSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.sessions[s.ChatID] = &cp
	return nil
}

func (f *fakeStore) GetByChatID(_ context.Context, chatID int64) (*model.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[chatID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) Delete(_ context.Context, chatID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sessions[chatID]
	delete(f.sessions, chatID)
	return ok, nil
}

type fakeClinic struct {
	mu           sync.Mutex
	cookie       string
	weekRequests int
	weekErr      error
	charts       map[int64]model.Odontogram
	saved        map[int64]model.OdontogramSave
	loadErr      error
}

func (f *fakeClinic) WeekAppointments(context.Context, time.Time) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weekRequests++
	return nil, f.weekErr
}

func (f *fakeClinic) CreateAppointment(context.Context, model.NewAppointment) error {
	return nil
}

func (f *fakeClinic) DayAvailability(context.Context, time.Time, int64) ([]model.AvailabilitySlot, error) {
	return nil, nil
}

func (f *fakeClinic) RequestAppointment(context.Context, model.AppointmentRequest) (string, error) {
	return "", nil
}

func (f *fakeClinic) LoadOdontogram(_ context.Context, patientID int64) (model.Odontogram, error) {
	if f.loadErr != nil {
		return model.Odontogram{}, f.loadErr
	}
	return f.charts[patientID], nil
}

func (f *fakeClinic) SaveOdontogram(_ context.Context, patientID int64, payload model.OdontogramSave) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		f.saved = make(map[int64]model.OdontogramSave)
	}
	f.saved[patientID] = payload
	return nil
}

func (f *fakeClinic) AppointmentEditURL(id int64) string {
	return fmt.Sprintf("https://clinica.test/panel/citas/%d/editar?from=dashboard", id)
}

func (f *fakeClinic) PatientURL(id int64) string {
	return fmt.Sprintf("https://clinica.test/panel/pacientes/%d", id)
}

// clinicFactory запоминает созданные клиенты по cookie
type clinicFactory struct {
	mu      sync.Mutex
	clients map[string]*fakeClinic
	proto   fakeClinic
}

func (c *clinicFactory) New(cookie string) ClinicAPI {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clients == nil {
		c.clients = make(map[string]*fakeClinic)
	}
	client := &fakeClinic{cookie: cookie, charts: c.proto.charts, loadErr: c.proto.loadErr, weekErr: c.proto.weekErr}
	c.clients[cookie] = client
	return client
}
