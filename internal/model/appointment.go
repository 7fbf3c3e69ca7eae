package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "programada" // Создана, ждёт подтверждения
	AppointmentStatusConfirmed AppointmentStatus = "confirmada" // Подтверждена клиникой
	AppointmentStatusCanceled  AppointmentStatus = "cancelada"  // Отменена
	AppointmentStatusDone      AppointmentStatus = "realizada"  // Приём состоялся
)

// Appointment - запись пациента к дентисту, как её отдаёт клиника для недельного календаря
type Appointment struct {
	ID          int64             `json:"id"`
	PatientID   int64             `json:"patient_id"`
	PatientName string            `json:"patient_name"`
	DentistID   int64             `json:"dentist_id"`
	DentistName string            `json:"dentist_name"`
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	Chair       string            `json:"sillon"`
	Reason      string            `json:"motivo"`
	Status      AppointmentStatus `json:"estado"`
}

// Contains проверяет попадает ли момент t в полуинтервал [Start, End)
func (a *Appointment) Contains(t time.Time) bool {
	return !t.Before(a.Start) && t.Before(a.End)
}

// NewAppointment - данные для создания записи из календаря персонала
type NewAppointment struct {
	PatientID int64
	DentistID int64
	Start     time.Time
	End       time.Time
	Reason    string
	RoomID    *int64  // nil = без кабинета
	Chair     *string // nil = без кресла
}

// AppointmentRequest - заявка пациента на приём
type AppointmentRequest struct {
	DentistID int64
	Start     time.Time
	End       time.Time
	Reason    string
}
