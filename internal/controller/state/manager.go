package state

import (
	"sync"
)

// Manager хранит состояние диалогов по чатам
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*ChatData // chatID -> ChatData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*ChatData),
	}
}

// GetState получает текущий шаг диалога
func (sm *Manager) GetState(chatID int64) ChatState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if data, exists := sm.states[chatID]; exists {
		return data.State
	}
	return StateNone
}

// SetState устанавливает шаг диалога. StateNone сбрасывает диалог вместе с данными.
func (sm *Manager) SetState(chatID int64, state ChatState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, chatID)
		return
	}

	if _, exists := sm.states[chatID]; !exists {
		sm.states[chatID] = &ChatData{
			State: state,
			Data:  make(map[string]any),
		}
	} else {
		sm.states[chatID].State = state
	}
}

// GetData получает временные данные диалога
func (sm *Manager) GetData(chatID int64, key string) (any, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if data, exists := sm.states[chatID]; exists {
		value, ok := data.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные диалога
func (sm *Manager) SetData(chatID int64, key string, value any) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.states[chatID]; !exists {
		sm.states[chatID] = &ChatData{
			State: StateNone,
			Data:  make(map[string]any),
		}
	}
	sm.states[chatID].Data[key] = value
}

// ClearState очищает состояние и данные чата
func (sm *Manager) ClearState(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, chatID)
}

// Get достаёт значение нужного типа; false если ключа нет или тип другой
func Get[T any](sm *Manager, chatID int64, key string) (T, bool) {
	var zero T
	value, ok := sm.GetData(chatID, key)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
