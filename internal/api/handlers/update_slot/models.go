package update_slot

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	slotsService "github.com/m04kA/SMC-DeliverySlotService/internal/service/slots"
)

// UpdateSlotRequest HTTP request model
type UpdateSlotRequest struct {
	Capacity *int    `json:"capacity,omitempty"`
	Status   *string `json:"status,omitempty"` // open | closed
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSlotRequest) ToServiceRequest(userID int64, date time.Time, slotKey string) *slotsService.UpdateSlotRequest {
	req := &slotsService.UpdateSlotRequest{
		UserID:   userID,
		Date:     date,
		SlotKey:  slotKey,
		Capacity: r.Capacity,
	}
	if r.Status != nil {
		status := domain.SlotStatus(*r.Status)
		req.Status = &status
	}
	return req
}
