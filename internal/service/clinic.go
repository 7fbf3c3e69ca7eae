package service

import (
	"context"

	"github.com/Freeeeeet/clinic_bot/internal/calendar"
	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/odontogram"
)

// ClinicAPI - API клиники от имени одной сессии
type ClinicAPI interface {
	calendar.AppointmentSource
	calendar.AvailabilitySource
	odontogram.Saver
	LoadOdontogram(ctx context.Context, patientID int64) (model.Odontogram, error)
	AppointmentEditURL(appointmentID int64) string
	PatientURL(patientID int64) string
}

// ClinicFactory создаёт клиент API для cookie сессии
type ClinicFactory func(sessionCookie string) ClinicAPI
