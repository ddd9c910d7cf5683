package order_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	reservationsService "github.com/m04kA/SMC-DeliverySlotService/internal/service/reservations"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidOrderID      = "некорректный ID заказа"
	msgStatusRequired      = "требуется поле newStatus"
	msgReservationNotFound = "резервация для заказа не найдена"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderId}/delivery-status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["orderId"]
	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || orderID <= 0 {
		h.logger.Warn("PATCH /orders/{id}/delivery-status - Invalid order id: %q", rawID)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req UpdateOrderStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{id}/delivery-status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.NewStatus == "" {
		h.logger.Warn("PATCH /orders/{id}/delivery-status - Status required: order=%d", orderID)
		handlers.RespondBadRequest(w, msgStatusRequired)
		return
	}

	action, reservation, err := h.service.ApplyOrderStatus(r.Context(), orderID, domain.OrderStatus(req.NewStatus))
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("PATCH /orders/{id}/delivery-status - Reservation not found: order=%d", orderID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		default:
			h.logger.Error("PATCH /orders/{id}/delivery-status - Failed: order=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/delivery-status - order=%d, status=%s, action=%s",
		orderID, req.NewStatus, action)
	handlers.RespondJSON(w, http.StatusOK, &OrderStatusResponse{
		OrderID:           orderID,
		Action:            string(action),
		ReservationID:     reservation.ID,
		ReservationStatus: string(reservation.Status),
	})
}
