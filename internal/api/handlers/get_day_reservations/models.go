package get_day_reservations

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// DayReservationsResponse HTTP response model
type DayReservationsResponse struct {
	Date         string                `json:"date"`
	Total        int                   `json:"total"`
	Reservations []ReservationResponse `json:"reservations"`
}

// ReservationResponse модель резервации в списке за день
type ReservationResponse struct {
	ID                 int64   `json:"id"`
	OrderID            int64   `json:"orderId"`
	SlotKey            string  `json:"slotKey"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	Zip                string  `json:"zip"`
	Status             string  `json:"status"`
	DisplayLabel       string  `json:"displayLabel"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// FromDomainReservations конвертирует доменные резервации в HTTP response
func FromDomainReservations(date time.Time, reservations []*domain.Reservation) *DayReservationsResponse {
	items := make([]ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		items = append(items, ReservationResponse{
			ID:                 reservation.ID,
			OrderID:            reservation.OrderID,
			SlotKey:            reservation.SlotKey,
			StartTime:          reservation.StartTime.String(),
			EndTime:            reservation.EndTime.String(),
			Zip:                reservation.Zip,
			Status:             string(reservation.Status),
			DisplayLabel:       reservation.DisplayLabel,
			CancellationReason: reservation.CancellationReason,
			CreatedAt:          reservation.CreatedAt.Format(time.RFC3339),
		})
	}
	return &DayReservationsResponse{
		Date:         date.Format(domain.DateFormat),
		Total:        len(items),
		Reservations: items,
	}
}
