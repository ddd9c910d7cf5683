package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// SlotRepository интерфейс репозитория предгенерированных слотов
type SlotRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.DeliverySlot, error)
	Update(ctx context.Context, date time.Time, slotKey string, capacity *int, status *domain.SlotStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
