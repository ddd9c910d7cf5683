package get_available_slots

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
	GetByDate(ctx context.Context, date time.Time) ([]*domain.DeliverySlot, error)
}

// HoldRepository интерфейс репозитория удержаний
type HoldRepository interface {
	GetActiveByDate(ctx context.Context, date time.Time, now time.Time) ([]*domain.Hold, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Reservation, error)
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
