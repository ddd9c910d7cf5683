package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// validateRequest валидирует и нормализует входные данные запроса
// Возвращает нормализованный ZIP
func validateRequest(req *Request) (string, error) {
	normalized := domain.NormalizeZip(req.Zip)
	if normalized == "" {
		return "", fmt.Errorf("%w: zip is required", ErrInvalidInput)
	}
	return normalized, nil
}

// validateRequestedDate проверяет явно запрошенную дату: не раньше первой
// доступной и в пределах горизонта поиска. Blackout-даты проверяются выше:
// они не отказ, а пустая выдача
func validateRequestedDate(date time.Time, firstEligible time.Time, now time.Time, horizonDays int) error {
	requested := domain.DateOnly(date)

	if requested.Before(domain.DateOnly(firstEligible)) {
		return ErrDateUnavailable
	}

	limit := domain.DateOnly(now).AddDate(0, 0, horizonDays)
	if requested.After(limit) {
		return fmt.Errorf("%w: beyond %d day search horizon", ErrDateUnavailable, horizonDays)
	}

	return nil
}
