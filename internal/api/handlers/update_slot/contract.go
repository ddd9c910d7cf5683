package update_slot

import (
	"context"

	slotsService "github.com/m04kA/SMC-DeliverySlotService/internal/service/slots"
)

type SlotsService interface {
	Update(ctx context.Context, req *slotsService.UpdateSlotRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
