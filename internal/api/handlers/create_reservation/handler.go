package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgOrderRequired      = "требуется поле orderId"
	msgZipRequired        = "требуется поле zip"
	msgZipNotEligible     = "доставка недоступна для указанного ZIP-кода"
	msgSlotRequired       = "требуется поле slotValue"
	msgMalformedSlot      = "некорректный слот, ожидается YYYY-MM-DD|HH:MM-HH:MM"
	msgDateUnavailable    = "доставка недоступна на выбранную дату"
	msgSlotUnavailable    = "в выбранном слоте не осталось мест"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/delivery/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /delivery/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrOrderRequired):
			h.logger.Warn("POST /delivery/reservations - Order required")
			handlers.RespondBadRequest(w, msgOrderRequired)

		case errors.Is(err, createReservation.ErrZipRequired):
			h.logger.Warn("POST /delivery/reservations - Zip required: %q", req.Zip)
			handlers.RespondBadRequest(w, msgZipRequired)

		case errors.Is(err, createReservation.ErrSlotRequired):
			h.logger.Warn("POST /delivery/reservations - Slot required: order=%d", req.OrderID)
			handlers.RespondBadRequest(w, msgSlotRequired)

		case errors.Is(err, createReservation.ErrMalformedSlot):
			h.logger.Warn("POST /delivery/reservations - Malformed slot: %q", req.SlotValue)
			handlers.RespondBadRequest(w, msgMalformedSlot)

		case errors.Is(err, createReservation.ErrZipNotEligible):
			h.logger.Info("POST /delivery/reservations - Zip not eligible: %q", req.Zip)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgZipNotEligible)

		case errors.Is(err, createReservation.ErrDateUnavailable):
			h.logger.Info("POST /delivery/reservations - Date unavailable: slot=%q", req.SlotValue)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDateUnavailable)

		case errors.Is(err, createReservation.ErrSlotUnavailable):
			h.logger.Info("POST /delivery/reservations - Slot unavailable: order=%d, slot=%q",
				req.OrderID, req.SlotValue)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		default:
			h.logger.Error("POST /delivery/reservations - Failed: order=%d, error=%v", req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /delivery/reservations - Reservation created: id=%d, order=%d",
		result.ReservationID, result.OrderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
