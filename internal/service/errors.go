package service

import "errors"

var (
	ErrNotLinked      = errors.New("chat is not linked to a clinic session")
	ErrInvalidRole    = errors.New("invalid chat role")
	ErrEmptyCookie    = errors.New("empty session cookie")
	ErrStaffOnly      = errors.New("available to clinic staff only")
	ErrPatientOnly    = errors.New("available to patients only")
	ErrUnknownDentist = errors.New("unknown dentist")
	ErrNoOpenChart    = errors.New("no odontogram is open in this chat")
	ErrInvalidPatient = errors.New("invalid patient id")
)
