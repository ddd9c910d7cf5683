package domain

// Default delivery settings applied when no configuration row exists
// or when an admin submits an invalid field
const (
	DefaultSlotCapacity        = 2
	DefaultSlotStart           = "10:00"
	DefaultSlotEnd             = "20:00"
	DefaultSlotDurationMinutes = 120
	DefaultCutoffTime          = "14:00"
)

// Business validation constants
const (
	MinSlotCapacity        = 1
	MaxSlotCapacity        = 100
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 480 // 8 hours
	ZipLength              = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Order metadata keys written at order-binding time and consumed by
// admin screens, e-mail templates and the thank-you page
const (
	MetaSlotKey = "_delivery_slot_key"
	MetaDate    = "_delivery_date"
	MetaSlot    = "_delivery_slot"
	MetaDisplay = "_delivery_display"
	MetaZip     = "_delivery_zip"
)

// InactiveReservationStatuses статусы, не занимающие вместимость слота
// Используются при подсчете занятости
var InactiveReservationStatuses = []ReservationStatus{
	ReservationCancelled,
}

// ActiveReservationStatuses статусы, занимающие вместимость слота
var ActiveReservationStatuses = []ReservationStatus{
	ReservationReserved,
	ReservationConfirmed,
}

// TerminalNegativeOrderStatuses статусы заказа, освобождающие слот
var TerminalNegativeOrderStatuses = []OrderStatus{
	OrderCancelled,
	OrderRefunded,
	OrderFailed,
}

// ConfirmingOrderStatuses статусы заказа, подтверждающие бронь слота
var ConfirmingOrderStatuses = []OrderStatus{
	OrderProcessing,
	OrderCompleted,
}
