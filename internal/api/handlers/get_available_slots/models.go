package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Zip       string         `json:"zip"`
	Date      string         `json:"date,omitempty"`
	DateLabel string         `json:"dateLabel,omitempty"`
	Slots     []SlotResponse `json:"slots"`
}

// SlotResponse модель слота в HTTP ответе
type SlotResponse struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
	Remaining int    `json:"remaining"`
	Spots     string `json:"spots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			Key:       slot.Key,
			Value:     slot.Value,
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Label:     slot.Label,
			Remaining: slot.Remaining,
			Spots:     slot.Spots,
		})
	}
	return &AvailableSlotsResponse{
		Zip:       resp.Zip,
		Date:      resp.Date,
		DateLabel: resp.DateLabel,
		Slots:     slots,
	}
}
