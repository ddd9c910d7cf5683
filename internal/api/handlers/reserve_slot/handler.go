package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	reserveSlot "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgZipRequired        = "требуется поле zip"
	msgZipNotEligible     = "доставка недоступна для указанного ZIP-кода"
	msgSlotRequired       = "требуется поле slotValue"
	msgMalformedSlot      = "некорректный слот, ожидается YYYY-MM-DD|HH:MM-HH:MM"
	msgDateUnavailable    = "доставка недоступна на выбранную дату"
	msgSlotUnavailable    = "в выбранном слоте не осталось мест"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/delivery/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /delivery/holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrZipRequired):
			h.logger.Warn("POST /delivery/holds - Zip required: %q", req.Zip)
			handlers.RespondBadRequest(w, msgZipRequired)

		case errors.Is(err, reserveSlot.ErrSlotRequired):
			h.logger.Warn("POST /delivery/holds - Slot required")
			handlers.RespondBadRequest(w, msgSlotRequired)

		case errors.Is(err, reserveSlot.ErrMalformedSlot):
			h.logger.Warn("POST /delivery/holds - Malformed slot: %q", req.SlotValue)
			handlers.RespondBadRequest(w, msgMalformedSlot)

		case errors.Is(err, reserveSlot.ErrZipNotEligible):
			h.logger.Info("POST /delivery/holds - Zip not eligible: %q", req.Zip)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgZipNotEligible)

		case errors.Is(err, reserveSlot.ErrDateUnavailable):
			h.logger.Info("POST /delivery/holds - Date unavailable: slot=%q", req.SlotValue)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDateUnavailable)

		case errors.Is(err, reserveSlot.ErrSlotUnavailable):
			h.logger.Info("POST /delivery/holds - Slot unavailable: slot=%q", req.SlotValue)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		default:
			h.logger.Error("POST /delivery/holds - Failed: slot=%q, error=%v", req.SlotValue, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /delivery/holds - Hold created: token=%s, slot=%s", result.Token, result.SlotValue)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
