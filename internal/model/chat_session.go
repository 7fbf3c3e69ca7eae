package model

import "time"

type ChatRole string

const (
	ChatRoleStaff   ChatRole = "staff"   // Персонал клиники: календарь записей и одонтограммы
	ChatRolePatient ChatRole = "patient" // Пациент: свободные окна и заявки на приём
)

// ChatSession связывает чат Telegram с сессией пользователя в клинике
type ChatSession struct {
	ChatID        int64     `json:"chat_id"`
	Role          ChatRole  `json:"role"`
	SessionCookie string    `json:"-"` // непрозрачное значение cookie, передаётся клинике как есть
	DisplayName   string    `json:"display_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsStaff проверяет что чат привязан к персоналу клиники
func (s *ChatSession) IsStaff() bool {
	return s.Role == ChatRoleStaff
}

// IsPatient проверяет что чат привязан к пациенту
func (s *ChatSession) IsPatient() bool {
	return s.Role == ChatRolePatient
}

// Dentist - запись справочника дентистов для выбора в календаре пациента
type Dentist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
