package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// ErrValidation - форма не прошла проверку обязательных полей
var ErrValidation = errors.New("form validation failed")

// FieldError описывает незаполненное или неверное поле формы
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// AppointmentForm - форма новой записи в календаре персонала.
// Обязательны пациент, дентист, начало и конец; остальное опционально.
type AppointmentForm struct {
	PatientID int64
	DentistID int64
	Start     time.Time
	End       time.Time
	Reason    string
	RoomID    int64  // 0 = не указан
	Chair     string // "" = не указано
}

// NewAppointmentForm создаёт форму, заполненную окном ячейки
func NewAppointmentForm(cell Cell) AppointmentForm {
	return AppointmentForm{Start: cell.Start, End: cell.End}
}

// Validate проверяет обязательные поля
func (f AppointmentForm) Validate() error {
	switch {
	case f.PatientID <= 0:
		return &FieldError{Field: "patient_id", Reason: "required"}
	case f.DentistID <= 0:
		return &FieldError{Field: "dentist_id", Reason: "required"}
	}
	return validateRange(f.Start, f.End)
}

// Request переводит форму в запрос к клинике
func (f AppointmentForm) Request() model.NewAppointment {
	req := model.NewAppointment{
		PatientID: f.PatientID,
		DentistID: f.DentistID,
		Start:     f.Start,
		End:       f.End,
		Reason:    strings.TrimSpace(f.Reason),
	}
	if f.RoomID > 0 {
		roomID := f.RoomID
		req.RoomID = &roomID
	}
	if chair := strings.TrimSpace(f.Chair); chair != "" {
		req.Chair = &chair
	}
	return req
}

// RequestForm - форма заявки пациента; дентист берётся из текущего выбора
type RequestForm struct {
	DentistID int64
	Start     time.Time
	End       time.Time
	Reason    string
}

// Validate проверяет обязательные поля
func (f RequestForm) Validate() error {
	if f.DentistID <= 0 {
		return &FieldError{Field: "dentist_id", Reason: "required"}
	}
	return validateRange(f.Start, f.End)
}

// Request переводит форму в запрос к клинике
func (f RequestForm) Request() model.AppointmentRequest {
	return model.AppointmentRequest{
		DentistID: f.DentistID,
		Start:     f.Start,
		End:       f.End,
		Reason:    strings.TrimSpace(f.Reason),
	}
}

func validateRange(start, end time.Time) error {
	switch {
	case start.IsZero():
		return &FieldError{Field: "start", Reason: "required"}
	case end.IsZero():
		return &FieldError{Field: "end", Reason: "required"}
	case !end.After(start):
		return &FieldError{Field: "end", Reason: "must be after start"}
	}
	return nil
}
