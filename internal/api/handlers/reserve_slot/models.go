package reserve_slot

import (
	"time"

	reserveSlot "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/reserve_slot"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	Zip       string `json:"zip"`
	SlotValue string `json:"slotValue"` // "YYYY-MM-DD|HH:MM-HH:MM"
	Token     string `json:"token,omitempty"`
}

// HoldResponse HTTP response model
type HoldResponse struct {
	Token     string `json:"token"`
	Date      string `json:"date"`
	SlotKey   string `json:"slotKey"`
	SlotValue string `json:"slotValue"`
	Label     string `json:"label"`
	ExpiresAt string `json:"expiresAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest() *reserveSlot.Request {
	return &reserveSlot.Request{
		Zip:       r.Zip,
		SlotValue: r.SlotValue,
		Token:     r.Token,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *HoldResponse {
	return &HoldResponse{
		Token:     resp.Token,
		Date:      resp.Date,
		SlotKey:   resp.SlotKey,
		SlotValue: resp.SlotValue,
		Label:     resp.Label,
		ExpiresAt: resp.ExpiresAt.Format(time.RFC3339),
	}
}
