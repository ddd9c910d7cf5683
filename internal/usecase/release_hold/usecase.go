package release_hold

import (
	"context"
	"fmt"
)

// UseCase use case освобождения удержания при завершении сессии оформления
type UseCase struct {
	holdRepo HoldRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(holdRepo HoldRepository, logger Logger) *UseCase {
	return &UseCase{
		holdRepo: holdRepo,
		logger:   logger,
	}
}

// Execute снимает удержание токена
// Идемпотентно: отсутствие удержания не является ошибкой
func (uc *UseCase) Execute(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	if err := uc.holdRepo.DeleteByToken(ctx, token); err != nil {
		uc.logger.Error("ReleaseHold: failed to delete hold for token=%s: %v", token, err)
		return fmt.Errorf("%w: failed to delete hold: %v", ErrInternal, err)
	}

	uc.logger.Info("ReleaseHold: token=%s released", token)
	return nil
}
