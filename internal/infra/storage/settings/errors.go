package settings

import (
	"errors"
	"fmt"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

var (
	// ErrSettingsNotFound возвращается, когда настройки расписания не сохранены
	ErrSettingsNotFound = fmt.Errorf("settings.repository: settings %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)
