package check_zip

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	checkZip "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/check_zip"
)

const (
	msgZipRequired = "требуется параметр zip"
)

type Handler struct {
	useCase CheckZipUseCase
	logger  Logger
}

func NewHandler(useCase CheckZipUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/delivery/zip-eligibility?zip=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")

	result, err := h.useCase.Execute(r.Context(), &checkZip.Request{Zip: zip})
	if err != nil {
		switch {
		case errors.Is(err, checkZip.ErrInvalidInput):
			h.logger.Warn("GET /delivery/zip-eligibility - Invalid zip: %q", zip)
			handlers.RespondBadRequest(w, msgZipRequired)

		default:
			h.logger.Error("GET /delivery/zip-eligibility - Failed to check zip=%q: %v", zip, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
