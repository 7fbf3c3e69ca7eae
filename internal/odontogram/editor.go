package odontogram

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

var (
	ErrUnknownTooth    = errors.New("unknown tooth")
	ErrNoToothSelected = errors.New("no tooth selected")
	ErrUnknownStatus   = errors.New("unknown tooth status")
)

// Saver отправляет одонтограмму пациента на сервер
type Saver interface {
	SaveOdontogram(ctx context.Context, patientID int64, payload model.OdontogramSave) error
}

// ToothInfo - сведения о выбранном зубе
type ToothInfo struct {
	Tooth  Tooth
	Status model.ToothStatus
}

// Text возвращает описание для показа пользователю
func (i ToothInfo) Text() string {
	return fmt.Sprintf("Pieza: %s - %s\nEstado actual: %s", i.Tooth.ID, i.Tooth.Title, i.Status.Label())
}

// Editor хранит редактируемую одонтограмму одного пациента
type Editor struct {
	mu        sync.RWMutex
	patientID int64
	teeth     map[string]model.ToothStatus
	notes     string
	selected  string
	dirty     bool
	revision  uint64 // растёт при каждом изменении

	saver  Saver
	logger *zap.Logger
}

// NewEditor создает редактор, заполненный сохраненной одонтограммой.
// Записи без статуса и с чужими идентификаторами отбрасываются.
func NewEditor(chart model.Odontogram, saver Saver, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	teeth := make(map[string]model.ToothStatus, len(chart.Teeth))
	for id, entry := range chart.Teeth {
		if entry.Status == model.ToothStatusNone || !IsValidID(id) {
			continue
		}
		teeth[id] = entry.Status
	}
	return &Editor{
		patientID: chart.PatientID,
		teeth:     teeth,
		notes:     chart.Notes,
		saver:     saver,
		logger:    logger,
	}
}

func (e *Editor) PatientID() int64 {
	return e.patientID
}

// Select делает зуб текущим
func (e *Editor) Select(id string) (ToothInfo, error) {
	tooth, ok := Lookup(id)
	if !ok {
		return ToothInfo{}, fmt.Errorf("%w: %q", ErrUnknownTooth, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = id
	return ToothInfo{Tooth: tooth, Status: e.teeth[id]}, nil
}

// Info возвращает сведения о выбранном зубе; false если зуб не выбран
func (e *Editor) Info() (ToothInfo, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.selected == "" {
		return ToothInfo{}, false
	}
	tooth, _ := Lookup(e.selected)
	return ToothInfo{Tooth: tooth, Status: e.teeth[e.selected]}, true
}

// SetStatus меняет статус выбранного зуба и возвращает перерисованную клетку.
// Пустой статус снимает отметку.
func (e *Editor) SetStatus(status model.ToothStatus) (ViewCell, error) {
	if !status.IsKnown() {
		return ViewCell{}, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected == "" {
		return ViewCell{}, ErrNoToothSelected
	}

	if e.teeth[e.selected] != status {
		e.dirty = true
		e.revision++
	}
	if status == model.ToothStatusNone {
		delete(e.teeth, e.selected)
	} else {
		e.teeth[e.selected] = status
	}

	tooth, _ := Lookup(e.selected)
	return NewViewCell(tooth, status), nil
}

// Status возвращает текущий статус зуба
func (e *Editor) Status(id string) model.ToothStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.teeth[id]
}

func (e *Editor) SetNotes(notes string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.notes != notes {
		e.dirty = true
		e.revision++
	}
	e.notes = notes
}

func (e *Editor) Notes() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.notes
}

// Dirty сообщает есть ли несохраненные изменения
func (e *Editor) Dirty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dirty
}

// Payload собирает тело запроса: только зубы со статусом
func (e *Editor) Payload() model.OdontogramSave {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.payloadLocked()
}

func (e *Editor) payloadLocked() model.OdontogramSave {
	payload := model.OdontogramSave{
		Teeth: make(map[string]model.ToothEntry, len(e.teeth)),
		Notes: e.notes,
	}
	for id, status := range e.teeth {
		if status == model.ToothStatusNone {
			continue
		}
		payload.Teeth[id] = model.ToothEntry{Status: status}
	}
	return payload
}

// Chart возвращает снимок одонтограммы для отрисовки
func (e *Editor) Chart() model.Odontogram {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p := e.payloadLocked()
	return model.Odontogram{PatientID: e.patientID, Teeth: p.Teeth, Notes: p.Notes}
}

// Save отправляет одонтограмму. Ошибка сервера возвращается как есть, изменения остаются.
// Правки, сделанные во время запроса, остаются несохранёнными.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.RLock()
	payload := e.payloadLocked()
	revision := e.revision
	e.mu.RUnlock()

	if err := e.saver.SaveOdontogram(ctx, e.patientID, payload); err != nil {
		e.logger.Error("Failed to save odontogram",
			zap.Int64("patient_id", e.patientID),
			zap.Error(err),
		)
		return err
	}

	e.mu.Lock()
	if e.revision == revision {
		e.dirty = false
	}
	e.mu.Unlock()

	e.logger.Info("Odontogram saved",
		zap.Int64("patient_id", e.patientID),
		zap.Int("teeth", len(payload.Teeth)),
	)
	return nil
}
