package handlers

// Ограничения ввода в диалогах
const (
	ReasonMaxLength = 500
	ChairMaxLength  = 50
	NotesMaxLength  = 2000
)
