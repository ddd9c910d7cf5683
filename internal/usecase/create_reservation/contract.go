package create_reservation

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
	DeleteByToken(ctx context.Context, token string) error
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByOrderID(ctx context.Context, orderID int64) (*domain.Reservation, error)
	GetByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
