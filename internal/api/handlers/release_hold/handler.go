package release_hold

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DeliverySlotService/internal/api/handlers"
	releaseHold "github.com/m04kA/SMC-DeliverySlotService/internal/usecase/release_hold"
)

const (
	msgTokenRequired = "требуется токен удержания"
)

type Handler struct {
	useCase ReleaseHoldUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/delivery/holds/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := h.useCase.Execute(r.Context(), token); err != nil {
		switch {
		case errors.Is(err, releaseHold.ErrInvalidInput):
			h.logger.Warn("DELETE /delivery/holds - Token required")
			handlers.RespondBadRequest(w, msgTokenRequired)

		default:
			h.logger.Error("DELETE /delivery/holds - Failed: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
