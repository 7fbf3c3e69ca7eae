package clinicapi

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// LocalLayout - формат времени сервера клиники: локальное время без зоны
const LocalLayout = "2006-01-02T15:04:05"

type wireAppointment struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DentistID   int64  `json:"dentist_id"`
	DentistName string `json:"dentist_name"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Chair       string `json:"sillon"`
	Reason      string `json:"motivo"`
	Status      string `json:"estado"`
}

type weekResponse struct {
	StartOfWeek  string            `json:"start_of_week"`
	EndOfWeek    string            `json:"end_of_week"`
	Appointments []wireAppointment `json:"citas"`
}

type wireSlot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"disponible"`
}

type availabilityResponse struct {
	Slots   []wireSlot `json:"tramos"`
	Message string     `json:"message,omitempty"`
}

type createAppointmentBody struct {
	PatientID int64   `json:"patient_id"`
	DentistID int64   `json:"dentist_id"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Reason    string  `json:"motivo"`
	RoomID    *int64  `json:"room_id"`
	Chair     *string `json:"sillon"`
}

type requestAppointmentBody struct {
	DentistID int64  `json:"dentist_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Reason    string `json:"motivo"`
}

// resultResponse - общий ответ на изменяющие запросы
type resultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type odontogramResponse struct {
	Teeth map[string]model.ToothEntry `json:"piezas"`
	Notes string                      `json:"notas"`
}

// parseTime разбирает время сервера: локальное без зоны или RFC 3339
func parseTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(LocalLayout, value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
	}
	return t.In(loc), nil
}

// formatTime выводит момент как локальное время клиники без зоны
func formatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LocalLayout)
}

func (w wireAppointment) toModel(loc *time.Location) (model.Appointment, error) {
	start, err := parseTime(w.Start, loc)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("appointment %d start: %w", w.ID, err)
	}
	end, err := parseTime(w.End, loc)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("appointment %d end: %w", w.ID, err)
	}
	return model.Appointment{
		ID:          w.ID,
		PatientID:   w.PatientID,
		PatientName: w.PatientName,
		DentistID:   w.DentistID,
		DentistName: w.DentistName,
		Start:       start,
		End:         end,
		Chair:       w.Chair,
		Reason:      w.Reason,
		Status:      model.AppointmentStatus(w.Status),
	}, nil
}

func (w wireSlot) toModel(loc *time.Location) (model.AvailabilitySlot, error) {
	start, err := parseTime(w.Start, loc)
	if err != nil {
		return model.AvailabilitySlot{}, fmt.Errorf("slot start: %w", err)
	}
	end, err := parseTime(w.End, loc)
	if err != nil {
		return model.AvailabilitySlot{}, fmt.Errorf("slot end: %w", err)
	}
	return model.AvailabilitySlot{Start: start, End: end, Available: w.Available}, nil
}
