package clinicapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/week"
)

// WeekAppointments загружает записи недели, содержащей anchor
func (c *Client) WeekAppointments(ctx context.Context, anchor time.Time) ([]model.Appointment, error) {
	var resp weekResponse
	query := url.Values{"fecha": {week.FormatDate(anchor.In(c.loc))}}
	if err := c.do(ctx, http.MethodGet, "/panel/calendario/citas-semana", query, nil, &resp); err != nil {
		return nil, err
	}

	appointments := make([]model.Appointment, 0, len(resp.Appointments))
	for _, w := range resp.Appointments {
		a, err := w.toModel(c.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransport, err)
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

// CreateAppointment создает запись от имени персонала
func (c *Client) CreateAppointment(ctx context.Context, req model.NewAppointment) error {
	body := createAppointmentBody{
		PatientID: req.PatientID,
		DentistID: req.DentistID,
		Start:     formatTime(req.Start, c.loc),
		End:       formatTime(req.End, c.loc),
		Reason:    req.Reason,
		RoomID:    req.RoomID,
		Chair:     req.Chair,
	}

	var result resultResponse
	if err := c.do(ctx, http.MethodPost, "/panel/calendario/crear-cita", nil, body, &result); err != nil {
		return err
	}
	return checkResult(result)
}

// DayAvailability загружает получасовые интервалы дентиста на один день
func (c *Client) DayAvailability(ctx context.Context, day time.Time, dentistID int64) ([]model.AvailabilitySlot, error) {
	var resp availabilityResponse
	query := url.Values{
		"fecha":      {week.FormatDate(day.In(c.loc))},
		"dentist_id": {strconv.FormatInt(dentistID, 10)},
	}
	if err := c.do(ctx, http.MethodGet, "/paciente/calendario/disponibilidad", query, nil, &resp); err != nil {
		return nil, err
	}

	slots := make([]model.AvailabilitySlot, 0, len(resp.Slots))
	for _, w := range resp.Slots {
		s, err := w.toModel(c.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransport, err)
		}
		slots = append(slots, s)
	}
	return slots, nil
}

// RequestAppointment отправляет заявку пациента и возвращает сообщение сервера
func (c *Client) RequestAppointment(ctx context.Context, req model.AppointmentRequest) (string, error) {
	body := requestAppointmentBody{
		DentistID: req.DentistID,
		Start:     formatTime(req.Start, c.loc),
		End:       formatTime(req.End, c.loc),
		Reason:    req.Reason,
	}

	var result resultResponse
	if err := c.do(ctx, http.MethodPost, "/paciente/calendario/solicitar-cita", nil, body, &result); err != nil {
		return "", err
	}
	if err := checkResult(result); err != nil {
		return "", err
	}
	return result.Message, nil
}
