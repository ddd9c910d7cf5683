package order_status

import (
	"context"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	reservationsService "github.com/m04kA/SMC-DeliverySlotService/internal/service/reservations"
)

type ReservationsService interface {
	ApplyOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (reservationsService.OrderStatusAction, *domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
