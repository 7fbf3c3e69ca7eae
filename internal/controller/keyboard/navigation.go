package keyboard

import "github.com/go-telegram/bot/models"

// BackButton создаёт кнопку "Volver"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Volver", callbackData)
}

// CancelButton создаёт кнопку "Cancelar"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancelar", callbackData)
}

// ConfirmButton создаёт кнопку подтверждения с заданным текстом
func ConfirmButton(text, callbackData string) models.InlineKeyboardButton {
	return Button("✅ "+text, callbackData)
}

// YesNo - клавиатура подтверждения опасного действия
func YesNo(question Confirmation) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("✅ Sí", question.Yes), Button("❌ No", question.No)).
		Build()
}

// Confirmation - пара callback для ответа на вопрос
type Confirmation struct {
	Yes string
	No  string
}

// Skip - клавиатура необязательного шага диалога
func Skip() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("⏭ Omitir", DialogSkip), CancelButton(DialogCancel)).
		Build()
}

// CancelOnly - клавиатура обязательного шага диалога
func CancelOnly() *models.InlineKeyboardMarkup {
	return NewBuilder().Row(CancelButton(DialogCancel)).Build()
}

// ConfirmDialog - последний шаг диалога: отправить или отменить
func ConfirmDialog(text string) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(ConfirmButton(text, DialogConfirm), CancelButton(DialogCancel)).
		Build()
}
