package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// SettingsProvider интерфейс сервиса настроек доставки
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.DeliverySettings, error)
}

// SlotRepository интерфейс репозитория предгенерированных слотов
type SlotRepository interface {
	UpsertTemplates(ctx context.Context, templates []domain.SlotTemplate) error
	DeletePastDates(ctx context.Context, before time.Time) (int64, error)
}

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
