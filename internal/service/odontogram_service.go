package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
	"github.com/Freeeeeet/clinic_bot/internal/odontogram"
)

type openChart struct {
	api    ClinicAPI
	editor *odontogram.Editor
}

// OdontogramService держит открытые редакторы одонтограмм, по одному на чат
type OdontogramService struct {
	clinic ClinicFactory
	logger *zap.Logger

	mu     sync.Mutex
	charts map[int64]*openChart
}

func NewOdontogramService(clinic ClinicFactory, logger *zap.Logger) *OdontogramService {
	return &OdontogramService{
		clinic: clinic,
		logger: logger,
		charts: make(map[int64]*openChart),
	}
}

// Open загружает одонтограмму пациента и открывает её в редакторе чата.
// Ранее открытый редактор заменяется.
func (s *OdontogramService) Open(ctx context.Context, session *model.ChatSession, patientID int64) (*odontogram.Editor, error) {
	if !session.IsStaff() {
		return nil, ErrStaffOnly
	}
	if patientID <= 0 {
		return nil, ErrInvalidPatient
	}

	api := s.clinic(session.SessionCookie)
	chart, err := api.LoadOdontogram(ctx, patientID)
	if err != nil {
		s.logger.Warn("Failed to load odontogram",
			zap.Int64("chat_id", session.ChatID),
			zap.Int64("patient_id", patientID),
			zap.Error(err))
		return nil, fmt.Errorf("load odontogram: %w", err)
	}
	chart.PatientID = patientID

	editor := odontogram.NewEditor(chart, api, s.logger.With(zap.Int64("chat_id", session.ChatID)))

	s.mu.Lock()
	s.charts[session.ChatID] = &openChart{api: api, editor: editor}
	s.mu.Unlock()

	s.logger.Info("Odontogram opened",
		zap.Int64("chat_id", session.ChatID),
		zap.Int64("patient_id", patientID),
		zap.Int("teeth", len(chart.Teeth)))
	return editor, nil
}

// Editor возвращает открытый редактор чата
func (s *OdontogramService) Editor(chatID int64) (*odontogram.Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chart, ok := s.charts[chatID]
	if !ok {
		return nil, ErrNoOpenChart
	}
	return chart.editor, nil
}

// Save сохраняет открытую одонтограмму и возвращает ссылку на карточку пациента
func (s *OdontogramService) Save(ctx context.Context, chatID int64) (string, error) {
	s.mu.Lock()
	chart, ok := s.charts[chatID]
	s.mu.Unlock()
	if !ok {
		return "", ErrNoOpenChart
	}

	if err := chart.editor.Save(ctx); err != nil {
		return "", err
	}
	return chart.api.PatientURL(chart.editor.PatientID()), nil
}

// Close закрывает редактор без сохранения
func (s *OdontogramService) Close(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.charts, chatID)
}
