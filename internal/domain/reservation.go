package domain

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/pkg/types"
)

// ReservationStatus represents the status of a durable slot reservation
type ReservationStatus string

const (
	ReservationReserved  ReservationStatus = "reserved"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// OrderStatus mirrors the external order lifecycle states the engine
// reacts to. Orders live outside this service; only status-change
// notifications cross the boundary.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
	OrderFailed     OrderStatus = "failed"
)

// IsTerminalNegative returns true for order states that must release
// the associated slot capacity
func (s OrderStatus) IsTerminalNegative() bool {
	for _, status := range TerminalNegativeOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsConfirming returns true for order states that confirm the reservation
func (s OrderStatus) IsConfirming() bool {
	for _, status := range ConfirmingOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Reservation is a durable capacity commitment bound to an order.
// It is created at order-creation time from a held slot selection and
// counts toward slot usage until cancelled.
type Reservation struct {
	ID        int64
	OrderID   int64
	SlotDate  time.Time
	SlotKey   string
	StartTime types.TimeString
	EndTime   types.TimeString
	Zip       string

	Status       ReservationStatus
	DisplayLabel string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true while the reservation occupies slot capacity
func (r *Reservation) IsActive() bool {
	return r.Status != ReservationCancelled
}

// IsCancelled returns true once capacity has been returned to the pool
func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationCancelled
}

// SlotValue returns the checkout field value this reservation was made from
func (r *Reservation) SlotValue() string {
	return r.SlotDate.Format(DateFormat) + "|" + r.SlotKey
}

// Metadata returns the order metadata keys written onto the external order
func (r *Reservation) Metadata() map[string]string {
	return map[string]string{
		MetaSlotKey: r.SlotValue(),
		MetaDate:    r.SlotDate.Format(DateFormat),
		MetaSlot:    r.SlotKey,
		MetaDisplay: r.DisplayLabel,
		MetaZip:     r.Zip,
	}
}
