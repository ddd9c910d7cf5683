package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/get_available_slots"
)

const (
	msgZipRequired     = "требуется параметр zip"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgZipNotEligible  = "доставка недоступна для указанного ZIP-кода"
	msgDateUnavailable = "доставка недоступна на выбранную дату"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/delivery/available-slots?zip=&token=[&date=]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &getAvailableSlots.Request{
		Zip:   query.Get("zip"),
		Token: query.Get("token"),
	}

	if rawDate := query.Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /delivery/available-slots - Invalid date: %q", rawDate)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /delivery/available-slots - Invalid zip: %q", req.Zip)
			handlers.RespondBadRequest(w, msgZipRequired)

		case errors.Is(err, getAvailableSlots.ErrZipNotEligible):
			h.logger.Info("GET /delivery/available-slots - Zip not eligible: %q", req.Zip)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgZipNotEligible)

		case errors.Is(err, getAvailableSlots.ErrDateUnavailable):
			h.logger.Info("GET /delivery/available-slots - Date unavailable: zip=%q", req.Zip)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDateUnavailable)

		default:
			h.logger.Error("GET /delivery/available-slots - Failed: zip=%q, error=%v", req.Zip, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
