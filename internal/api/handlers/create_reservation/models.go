package create_reservation

import (
	createReservation "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	OrderID   int64  `json:"orderId"`
	Zip       string `json:"zip"`
	SlotValue string `json:"slotValue"` // "YYYY-MM-DD|HH:MM-HH:MM"
	Token     string `json:"token,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ReservationID int64             `json:"reservationId"`
	OrderID       int64             `json:"orderId"`
	Date          string            `json:"date"`
	SlotKey       string            `json:"slotKey"`
	Status        string            `json:"status"`
	DisplayLabel  string            `json:"displayLabel"`
	Metadata      map[string]string `json:"metadata"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		OrderID:   r.OrderID,
		Zip:       r.Zip,
		SlotValue: r.SlotValue,
		Token:     r.Token,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ReservationID: resp.ReservationID,
		OrderID:       resp.OrderID,
		Date:          resp.Date,
		SlotKey:       resp.SlotKey,
		Status:        resp.Status,
		DisplayLabel:  resp.DisplayLabel,
		Metadata:      resp.Metadata,
	}
}
