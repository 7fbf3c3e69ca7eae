package keyboard

import (
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/odontogram"
)

// StatusLookup возвращает статус зуба по идентификатору
type StatusLookup func(id string) model.ToothStatus

// ToothEmoji - значок статуса зуба на кнопке
func ToothEmoji(status model.ToothStatus) string {
	switch status {
	case model.ToothStatusHealthy:
		return "🟢"
	case model.ToothStatusCavity:
		return "🔴"
	case model.ToothStatusFilling:
		return "🟡"
	case model.ToothStatusCrown:
		return "🔵"
	case model.ToothStatusRootCanal:
		return "🔷"
	case model.ToothStatusImplant:
		return "🟣"
	case model.ToothStatusExtraction:
		return "❌"
	case model.ToothStatusMissing:
		return "⚫"
	default:
		return "⚪"
	}
}

// OdontogramEditor - четыре ряда по восемь зубов в порядке схемы и действия редактора
func OdontogramEditor(status StatusLookup, selected string) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, jaw := range odontogram.Layout() {
		for _, q := range jaw.Quadrants {
			row := make([]models.InlineKeyboardButton, 0, len(q.Teeth))
			for _, tooth := range q.Teeth {
				label := ToothEmoji(status(tooth.ID)) + tooth.Short()
				if tooth.ID == selected {
					label = "[" + tooth.Short() + "]"
				}
				row = append(row, Button(label, ToothCallback(tooth.ID)))
			}
			b.Row(row...)
		}
	}

	return b.
		Row(Button("📝 Notas", OdontogramNotes), Button("👁 Ver", OdontogramPreview)).
		Row(Button("💾 Guardar", OdontogramSave), Button("✖️ Cerrar", OdontogramClose)).
		Build()
}

// ToothStatuses - выбор статуса выбранного зуба
func ToothStatuses(current model.ToothStatus) *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, len(model.ToothStatuses)+1)
	for _, s := range model.ToothStatuses {
		label := ToothEmoji(s) + " " + s.Label()
		if s == current {
			label = "✔️ " + s.Label()
		}
		buttons = append(buttons, Button(label, StatusCallback(s)))
	}

	noneLabel := ToothEmoji(model.ToothStatusNone) + " " + model.ToothStatusNone.Label()
	if current == model.ToothStatusNone {
		noneLabel = "✔️ " + model.ToothStatusNone.Label()
	}

	return NewBuilder().
		Wrap(2, buttons...).
		Row(Button(noneLabel, StatusCallback(model.ToothStatusNone))).
		Row(BackButton(OdontogramTeeth)).
		Build()
}

// DiscardChanges - подтверждение закрытия редактора с несохранёнными изменениями
func DiscardChanges() *models.InlineKeyboardMarkup {
	return YesNo(Confirmation{Yes: OdontogramDiscard, No: OdontogramTeeth})
}

// PatientLink - ссылка на карточку пациента после сохранения
func PatientLink(url string) *models.InlineKeyboardMarkup {
	return NewBuilder().Row(URLButton("📋 Volver a la ficha", url)).Build()
}
