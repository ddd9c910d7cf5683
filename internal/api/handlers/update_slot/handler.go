package update_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlotService/internal/api/middleware"
	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	slotsService "github.com/m04kA/SMC-DeliverySlotService/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSlot        = "некорректные параметры слота"
	msgUnauthorized       = "требуется аутентификация"
	msgAccessDenied       = "недостаточно прав для изменения слотов"
	msgSlotNotFound       = "слот не найден"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/delivery/dates/{date}/slots/{slotKey}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /delivery/dates/{date}/slots/{slotKey} - Missing user in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("PATCH /delivery/dates/{date}/slots/{slotKey} - Invalid date: %q", vars["date"])
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /delivery/dates/{date}/slots/{slotKey} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Update(r.Context(), req.ToServiceRequest(userID, date, vars["slotKey"]))
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrAccessDenied):
			h.logger.Warn("PATCH /delivery/dates/{date}/slots/{slotKey} - Access denied: user=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("PATCH /delivery/dates/{date}/slots/{slotKey} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, slotsService.ErrSlotNotFound):
			h.logger.Warn("PATCH /delivery/dates/{date}/slots/{slotKey} - Not found: %s %s",
				vars["date"], vars["slotKey"])
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("PATCH /delivery/dates/{date}/slots/{slotKey} - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
