package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MessageDeleter удаляет сообщение из чата
type MessageDeleter interface {
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

type notice struct {
	chatID    int64
	messageID int
	expiresAt time.Time
}

// NoticeService удаляет временные уведомления после истечения срока
type NoticeService struct {
	deleter MessageDeleter
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu      sync.Mutex
	pending []notice
}

func NewNoticeService(deleter MessageDeleter, ttl time.Duration, logger *zap.Logger) *NoticeService {
	return &NoticeService{
		deleter: deleter,
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

// Track ставит сообщение в очередь на удаление через TTL
func (s *NoticeService) Track(chatID int64, messageID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, notice{
		chatID:    chatID,
		messageID: messageID,
		expiresAt: s.now().Add(s.ttl),
	})
}

// Pending возвращает число уведомлений в очереди
func (s *NoticeService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Sweep удаляет истёкшие уведомления и возвращает их число.
// Ошибка удаления только логируется: сообщение могли удалить вручную.
func (s *NoticeService) Sweep(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	var expired []notice
	kept := s.pending[:0]
	for _, n := range s.pending {
		if now.Before(n.expiresAt) {
			kept = append(kept, n)
		} else {
			expired = append(expired, n)
		}
	}
	s.pending = kept
	s.mu.Unlock()

	for _, n := range expired {
		if err := s.deleter.DeleteMessage(ctx, n.chatID, n.messageID); err != nil {
			s.logger.Debug("Failed to delete notice",
				zap.Int64("chat_id", n.chatID),
				zap.Int("message_id", n.messageID),
				zap.Error(err))
		}
	}
	return len(expired)
}
