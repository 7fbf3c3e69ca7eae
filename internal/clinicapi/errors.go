package clinicapi

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport - сеть недоступна или ответ не разобрать
	ErrTransport = errors.New("clinic api transport error")
	// ErrUnauthorized - сессия клиники отсутствует или истекла
	ErrUnauthorized = errors.New("clinic session is not authorized")
)

// APIError - отказ сервера клиники с его собственным сообщением
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("clinic api error (status %d)", e.Status)
	}
	return e.Message
}
