package state

// ChatState - шаг диалога, в котором находится чат
type ChatState string

const (
	StateNone ChatState = "" // Нет активного диалога

	// Новая запись из календаря персонала
	StateAppointmentPatient ChatState = "appointment_patient"
	StateAppointmentDentist ChatState = "appointment_dentist"
	StateAppointmentReason  ChatState = "appointment_reason"
	StateAppointmentRoom    ChatState = "appointment_room"
	StateAppointmentChair   ChatState = "appointment_chair"
	StateAppointmentConfirm ChatState = "appointment_confirm"

	// Заявка пациента на свободное окно
	StateRequestReason  ChatState = "request_reason"
	StateRequestConfirm ChatState = "request_confirm"

	// Заметки одонтограммы
	StateOdontogramNotes ChatState = "odontogram_notes"
)

// Ключи временных данных диалога
const (
	KeyForm      = "form"       // calendar.AppointmentForm или calendar.RequestForm
	KeyMessageID = "message_id" // сообщение с клавиатурой, которое редактирует диалог
)

// ChatData хранит шаг и временные данные диалога
type ChatData struct {
	State ChatState
	Data  map[string]any
}
