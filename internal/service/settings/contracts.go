package settings

import (
	"context"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек доставки
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.DeliverySettings, error)
	Upsert(ctx context.Context, settings *domain.DeliverySettings) (*domain.DeliverySettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
