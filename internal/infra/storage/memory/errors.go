package memory

import (
	"fmt"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("memory: booking %w", domain.ErrNotFound)

	// ErrSettingsNotFound возвращается, когда настройки расписания не сохранены
	ErrSettingsNotFound = fmt.Errorf("memory: settings %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("memory: service %w", domain.ErrNotFound)
)
