package create_booking

import (
	"context"
	"time"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

// SlotGuard захват слота без двойного бронирования
type SlotGuard interface {
	TryClaimSlot(ctx context.Context, scheduleID int64, slotStart time.Time, durationMinutes int, draft *domain.Booking) (*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context, scheduleID int64) (*domain.ScheduleSettings, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Notifier отправка уведомлений клиенту
type Notifier interface {
	NotifyWithGracefulDegradation(ctx context.Context, eventType string, booking *domain.Booking) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// TokenGenerator генератор токенов отмены
type TokenGenerator interface {
	NewToken() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее локальное время в виде настенных часов без зоны
func (p *RealTimeProvider) Now() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.UTC)
}
