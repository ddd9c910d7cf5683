package get_reservation

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                 int64             `json:"id"`
	OrderID            int64             `json:"orderId"`
	Date               string            `json:"date"`
	SlotKey            string            `json:"slotKey"`
	StartTime          string            `json:"startTime"`
	EndTime            string            `json:"endTime"`
	Zip                string            `json:"zip"`
	Status             string            `json:"status"`
	DisplayLabel       string            `json:"displayLabel"`
	Metadata           map[string]string `json:"metadata"`
	CancellationReason *string           `json:"cancellationReason,omitempty"`
	CancelledAt        *string           `json:"cancelledAt,omitempty"`
	CreatedAt          string            `json:"createdAt"`
	UpdatedAt          string            `json:"updatedAt"`
}

// FromDomainReservation конвертирует доменную резервацию в HTTP response
func FromDomainReservation(reservation *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:                 reservation.ID,
		OrderID:            reservation.OrderID,
		Date:               reservation.SlotDate.Format(domain.DateFormat),
		SlotKey:            reservation.SlotKey,
		StartTime:          reservation.StartTime.String(),
		EndTime:            reservation.EndTime.String(),
		Zip:                reservation.Zip,
		Status:             string(reservation.Status),
		DisplayLabel:       reservation.DisplayLabel,
		Metadata:           reservation.Metadata(),
		CancellationReason: reservation.CancellationReason,
		CreatedAt:          reservation.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          reservation.UpdatedAt.Format(time.RFC3339),
	}
	if reservation.CancelledAt != nil {
		cancelledAt := reservation.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}
	return resp
}
