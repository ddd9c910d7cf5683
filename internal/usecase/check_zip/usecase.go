package check_zip

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// UseCase use case проверки обслуживания ZIP-кода
type UseCase struct {
	settings     SettingsProvider
	timeProvider TimeProvider
	horizonDays  int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(settings SettingsProvider, timeProvider TimeProvider, horizonDays int, logger Logger) *UseCase {
	return &UseCase{
		settings:     settings,
		timeProvider: timeProvider,
		horizonDays:  horizonDays,
		logger:       logger,
	}
}

// Execute выполняет проверку ZIP-кода
// Необслуживаемый ZIP не является ошибкой: ответ с Eligible=false,
// чтобы витрина могла показать вежливое сообщение без обработки ошибок
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация и нормализация входных данных
	normalized := domain.NormalizeZip(req.Zip)
	if normalized == "" {
		uc.logger.Warn("CheckZip: zip %q carries no digits", req.Zip)
		return nil, fmt.Errorf("%w: zip is required", ErrInvalidInput)
	}

	// 2. Получаем настройки доставки
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("CheckZip: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Проверяем whitelist
	if !settings.IsZipAllowed(normalized) {
		uc.logger.Info("CheckZip: zip=%s is not eligible", normalized)
		return &Response{Zip: normalized, Eligible: false}, nil
	}

	// 4. Вычисляем первую дату доставки для подсказки на витрине
	resp := &Response{Zip: normalized, Eligible: true}
	if firstDate, ok := domain.FirstEligibleDate(uc.timeProvider.Now(), settings, uc.horizonDays); ok {
		formatted := firstDate.Format(domain.DateFormat)
		resp.FirstDate = &formatted
	}

	uc.logger.Info("CheckZip: zip=%s is eligible", normalized)
	return resp, nil
}
