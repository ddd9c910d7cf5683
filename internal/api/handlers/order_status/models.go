package order_status

// UpdateOrderStatusRequest HTTP request model
type UpdateOrderStatusRequest struct {
	OldStatus string `json:"oldStatus,omitempty"`
	NewStatus string `json:"newStatus"`
}

// OrderStatusResponse HTTP response model
type OrderStatusResponse struct {
	OrderID           int64  `json:"orderId"`
	Action            string `json:"action"` // none | confirmed | released
	ReservationID     int64  `json:"reservationId"`
	ReservationStatus string `json:"reservationStatus"`
}
