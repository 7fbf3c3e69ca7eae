package clinicapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL:    srv.URL,
		CookieName: "session",
		Timeout:    time.Second,
		Location:   time.UTC,
	}, nil)
	require.NoError(t, err)
	return c.WithSession("abc")
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(Config{BaseURL: "not a url"}, nil)
	assert.Error(t, err)
}

func TestWeekAppointments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/panel/calendario/citas-semana", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("fecha"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		if cookie, err := r.Cookie("session"); assert.NoError(t, err) {
			assert.Equal(t, "abc", cookie.Value)
		}

		_, _ = io.WriteString(w, `{"start_of_week":"2024-01-01","end_of_week":"2024-01-07","citas":[
			{"id":5,"patient_id":2,"patient_name":"Ana Pérez","dentist_id":3,"dentist_name":"Dr. Ruiz",
			 "start":"2024-01-01T10:00:00","end":"2024-01-01T10:30:00","sillon":"","motivo":"Revisión","estado":"confirmada"}]}`)
	})

	got, err := c.WeekAppointments(context.Background(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].ID)
	assert.Equal(t, "Ana Pérez", got[0].PatientName)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, model.AppointmentStatusConfirmed, got[0].Status)
}

func TestCreateAppointment_ApplicationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2024-01-01T10:00:00", body["start"])
		assert.Nil(t, body["room_id"])

		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"error":"El dentista ya tiene una cita en ese horario"}`)
	})

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	err := c.CreateAppointment(context.Background(), model.NewAppointment{
		PatientID: 1, DentistID: 2, Start: start, End: start.Add(30 * time.Minute),
	})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "El dentista ya tiene una cita en ese horario", apiErr.Message)
	assert.True(t, IsApplication(err))
}

func TestDayAvailability(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("dentist_id"))
		_, _ = io.WriteString(w, `{"tramos":[{"start":"2024-01-01T10:00:00Z","end":"2024-01-01T10:30:00Z","disponible":true}]}`)
	})

	slots, err := c.DayAvailability(context.Background(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Available)
	assert.True(t, slots[0].Start.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
}

func TestRequestAppointment_Message(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"message":"Cita solicitada. Recibirás confirmación."}`)
	})

	msg, err := c.RequestAppointment(context.Background(), model.AppointmentRequest{DentistID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Cita solicitada. Recibirás confirmación.", msg)
}

func TestSaveOdontogram_Body(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/panel/pacientes/9/odontograma", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"piezas":{"1.1":{"estado":"caries"}},"notas":""}`, string(raw))
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	err := c.SaveOdontogram(context.Background(), 9, model.OdontogramSave{
		Teeth: map[string]model.ToothEntry{"1.1": {Status: model.ToothStatusCavity}},
	})
	require.NoError(t, err)
}

func TestLoadOdontogram_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = io.WriteString(w, `{"piezas":null,"notas":"Sin hallazgos"}`)
	})

	chart, err := c.LoadOdontogram(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), chart.PatientID)
	assert.NotNil(t, chart.Teeth)
	assert.Equal(t, "Sin hallazgos", chart.Notes)
}

func TestErrors_TransportAndSession(t *testing.T) {
	redirect := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/auth/login", http.StatusFound)
	})
	_, err := redirect.WeekAppointments(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrUnauthorized)

	garbage := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	})
	_, err = garbage.WeekAppointments(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrTransport)

	c, err := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, nil)
	require.NoError(t, err)
	_, err = c.DayAvailability(context.Background(), time.Now(), 1)
	assert.ErrorIs(t, err, ErrTransport)
	assert.False(t, IsApplication(err))
}

func TestURLs(t *testing.T) {
	c, err := New(Config{BaseURL: "https://clinica.example.com/"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://clinica.example.com/panel/citas/12/editar?from=dashboard", c.AppointmentEditURL(12))
	assert.Equal(t, "https://clinica.example.com/panel/pacientes/3", c.PatientURL(3))
}
