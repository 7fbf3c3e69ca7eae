package model

// ToothStatus - клиническое состояние зуба
type ToothStatus string

const (
	ToothStatusNone       ToothStatus = ""
	ToothStatusHealthy    ToothStatus = "sano"
	ToothStatusCavity     ToothStatus = "caries"
	ToothStatusFilling    ToothStatus = "empaste"
	ToothStatusCrown      ToothStatus = "corona"
	ToothStatusRootCanal  ToothStatus = "endodoncia"
	ToothStatusImplant    ToothStatus = "implante"
	ToothStatusExtraction ToothStatus = "extraccion"
	ToothStatusMissing    ToothStatus = "ausente"
)

// ToothStatuses перечисляет все статусы в порядке отображения
var ToothStatuses = []ToothStatus{
	ToothStatusHealthy,
	ToothStatusCavity,
	ToothStatusFilling,
	ToothStatusCrown,
	ToothStatusRootCanal,
	ToothStatusImplant,
	ToothStatusExtraction,
	ToothStatusMissing,
}

// IsKnown проверяет что статус входит в перечисление (пустой статус тоже допустим)
func (s ToothStatus) IsKnown() bool {
	if s == ToothStatusNone {
		return true
	}
	for _, known := range ToothStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label возвращает подпись статуса для легенды и кнопок
func (s ToothStatus) Label() string {
	switch s {
	case ToothStatusHealthy:
		return "Sano"
	case ToothStatusCavity:
		return "Caries"
	case ToothStatusFilling:
		return "Empaste"
	case ToothStatusCrown:
		return "Corona"
	case ToothStatusRootCanal:
		return "Endodoncia"
	case ToothStatusImplant:
		return "Implante"
	case ToothStatusExtraction:
		return "Extracción"
	case ToothStatusMissing:
		return "Ausente"
	default:
		return "Sin estado"
	}
}

// ToothEntry - запись одного зуба в одонтограмме
type ToothEntry struct {
	Status ToothStatus `json:"estado,omitempty"`
}

// Odontogram - карта зубов пациента (ключ - "квадрант.позиция", от 1.1 до 4.8)
type Odontogram struct {
	PatientID int64                 `json:"-"`
	Teeth     map[string]ToothEntry `json:"piezas"`
	Notes     string                `json:"notas"`
}

// OdontogramSave - тело запроса на сохранение одонтограммы
type OdontogramSave struct {
	Teeth map[string]ToothEntry `json:"piezas"`
	Notes string                `json:"notas"`
}
