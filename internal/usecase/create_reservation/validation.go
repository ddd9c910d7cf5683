package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// validateRequest валидирует входные данные и разбирает выбранный слот
// Возвращает нормализованный ZIP, дату и ключ слота
func validateRequest(req *Request, loc *time.Location) (zip string, date time.Time, slotKey string, err error) {
	if req.OrderID <= 0 {
		return "", time.Time{}, "", ErrOrderRequired
	}

	if req.Zip == "" {
		return "", time.Time{}, "", ErrZipRequired
	}
	zip = domain.NormalizeZip(req.Zip)
	if zip == "" {
		return "", time.Time{}, "", fmt.Errorf("%w: %q carries no digits", ErrZipRequired, req.Zip)
	}

	if req.SlotValue == "" {
		return "", time.Time{}, "", ErrSlotRequired
	}
	date, slotKey, parseErr := domain.ParseSlotValue(req.SlotValue, loc)
	if parseErr != nil {
		return "", time.Time{}, "", fmt.Errorf("%w: %q", ErrMalformedSlot, req.SlotValue)
	}

	return zip, date, slotKey, nil
}

// validateDate проверяет дату слота: не раньше первой доступной,
// не blackout и в пределах горизонта поиска
func validateDate(date time.Time, now time.Time, settings *domain.DeliverySettings, horizonDays int) error {
	firstEligible, ok := domain.FirstEligibleDate(now, settings, horizonDays)
	if !ok {
		return ErrDateUnavailable
	}

	requested := domain.DateOnly(date)
	if requested.Before(domain.DateOnly(firstEligible)) {
		return ErrDateUnavailable
	}
	if settings.IsBlackoutDate(requested) {
		return ErrDateUnavailable
	}

	limit := domain.DateOnly(now).AddDate(0, 0, horizonDays)
	if requested.After(limit) {
		return fmt.Errorf("%w: beyond %d day search horizon", ErrDateUnavailable, horizonDays)
	}

	return nil
}

// findSlotTemplate находит шаблон слота по ключу среди сгенерированных
// с учетом предгенерированных строк (закрытый слот недоступен)
func findSlotTemplate(date time.Time, settings *domain.DeliverySettings, rows []*domain.DeliverySlot, slotKey string) (*domain.SlotTemplate, error) {
	byKey := make(map[string]*domain.DeliverySlot, len(rows))
	for _, row := range rows {
		byKey[row.SlotKey] = row
	}

	for _, template := range domain.GenerateSlots(date, settings) {
		if template.Key() != slotKey {
			continue
		}
		if row, ok := byKey[slotKey]; ok {
			if row.IsClosed() {
				return nil, ErrSlotUnavailable
			}
			template.Capacity = row.Capacity
		}
		return &template, nil
	}

	return nil, fmt.Errorf("%w: slot %q does not exist", ErrSlotUnavailable, slotKey)
}
