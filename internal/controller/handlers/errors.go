package handlers

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/clinic_bot/internal/calendar"
	"github.com/Freeeeeet/clinic_bot/internal/clinicapi"
	"github.com/Freeeeeet/clinic_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/clinic_bot/internal/odontogram"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

// ErrNoMessage - у callback нет сообщения (слишком старое)
var ErrNoMessage = errors.New("no message in callback")

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var apiErr *clinicapi.APIError
	var fieldErr *calendar.FieldError

	switch {
	case errors.Is(err, service.ErrNotLinked):
		return "🔗 Este chat no está vinculado a la clínica.\nUsa /vincular personal|paciente <cookie>"
	case errors.Is(err, service.ErrStaffOnly):
		return "❌ Disponible solo para el personal de la clínica"
	case errors.Is(err, service.ErrPatientOnly):
		return "❌ Disponible solo para pacientes"
	case errors.Is(err, service.ErrInvalidRole), errors.Is(err, service.ErrEmptyCookie):
		return "❌ Uso: /vincular personal|paciente <cookie>"
	case errors.Is(err, service.ErrUnknownDentist):
		return "❌ Dentista desconocido"
	case errors.Is(err, service.ErrNoOpenChart):
		return "❌ No hay ningún odontograma abierto. Usa /odontograma <id>"
	case errors.Is(err, service.ErrInvalidPatient):
		return "❌ Identificador de paciente no válido"
	case errors.Is(err, clinicapi.ErrUnauthorized):
		return "🔒 La sesión de la clínica ha caducado. Vuelve a vincular el chat con /vincular"
	case errors.Is(err, calendar.ErrNoDentist):
		return "Por favor selecciona un dentista primero"
	case errors.Is(err, calendar.ErrSlotNotAvailable):
		return "❌ Ese horario ya no está disponible"
	case errors.As(err, &fieldErr):
		return fmt.Sprintf("❌ Falta un dato obligatorio: %s", fieldLabel(fieldErr.Field))
	case errors.Is(err, odontogram.ErrNoToothSelected):
		return "Selecciona una pieza primero"
	case errors.Is(err, odontogram.ErrUnknownTooth),
		errors.Is(err, odontogram.ErrUnknownStatus),
		errors.Is(err, keyboard.ErrInvalidFormat):
		return "❌ Datos no válidos"
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return "Error: " + apiErr.Message
		}
		return fmt.Sprintf("Error del servidor (%d)", apiErr.Status)
	case errors.Is(err, clinicapi.ErrTransport):
		return "❌ No se pudo conectar con la clínica. Inténtalo de nuevo"
	case errors.Is(err, ErrNoMessage):
		return "❌ El mensaje ya no está disponible"
	default:
		return "❌ Se produjo un error"
	}
}

// operationError - текст ошибки конкретной операции: отказ сервера и ошибка
// формы показываются как есть, прочие сбои заменяются общим текстом операции
func operationError(err error, failure string) string {
	var apiErr *clinicapi.APIError
	var fieldErr *calendar.FieldError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return "Error: " + apiErr.Message
	case errors.As(err, &fieldErr),
		errors.Is(err, clinicapi.ErrUnauthorized),
		errors.Is(err, service.ErrNotLinked):
		return ErrorMessage(err)
	default:
		return failure
	}
}

func fieldLabel(field string) string {
	switch field {
	case "patient_id":
		return "paciente"
	case "dentist_id":
		return "dentista"
	case "start":
		return "inicio"
	case "end":
		return "fin"
	default:
		return field
	}
}
