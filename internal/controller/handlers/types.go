package handlers

import (
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

// Handlers содержит все зависимости для обработки команд и callback
type Handlers struct {
	sessions     *service.ChatSessionService
	calendars    *service.CalendarService
	odontograms  *service.OdontogramService
	notices      *service.NoticeService
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers создаёт обработчики и подписывает сброс диалога на перепривязку чата
func NewHandlers(
	sessions *service.ChatSessionService,
	calendars *service.CalendarService,
	odontograms *service.OdontogramService,
	notices *service.NoticeService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	h := &Handlers{
		sessions:     sessions,
		calendars:    calendars,
		odontograms:  odontograms,
		notices:      notices,
		stateManager: stateManager,
		logger:       logger,
	}
	sessions.OnReset(stateManager.ClearState)
	return h
}
