package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// UseCase use case получения доступных слотов доставки
type UseCase struct {
	settings        SettingsProvider
	slotRepo        SlotRepository
	holdRepo        HoldRepository
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	horizonDays     int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	settings SettingsProvider,
	slotRepo SlotRepository,
	holdRepo HoldRepository,
	reservationRepo ReservationRepository,
	timeProvider TimeProvider,
	horizonDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		settings:        settings,
		slotRepo:        slotRepo,
		holdRepo:        holdRepo,
		reservationRepo: reservationRepo,
		timeProvider:    timeProvider,
		horizonDays:     horizonDays,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Без явной даты возвращает первую дату с хотя бы одним свободным слотом;
// с явной датой возвращает слоты этой даты (возможно, пустой список)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	zip, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Ленивая чистка истекших удержаний. Ошибка не фатальна:
	// GetActiveByDate и так отфильтрует истекшие по expires_at
	if purged, err := uc.holdRepo.PurgeExpired(ctx, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: purge expired holds failed: %v", err)
	} else if purged > 0 {
		uc.logger.Info("GetAvailableSlots: purged %d expired holds", purged)
	}

	// 4. Получаем настройки доставки
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 5. Проверяем whitelist
	if !settings.IsZipAllowed(zip) {
		uc.logger.Info("GetAvailableSlots: zip=%s is not eligible", zip)
		return nil, ErrZipNotEligible
	}

	// 6. Вычисляем первую доступную дату
	firstEligible, ok := domain.FirstEligibleDate(now, settings, uc.horizonDays)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: no eligible date within %d days", uc.horizonDays)
		return &Response{Zip: zip, Slots: []Slot{}}, nil
	}

	// 7. Явная дата: валидируем и возвращаем её слоты как есть.
	// Дата могла быть распарсена в другой локации (обычно UTC из query),
	// поэтому пересобираем календарный день в часовом поясе магазина,
	// иначе сравнение с первой доступной датой сдвинется на сутки
	if req.Date != nil {
		year, month, day := req.Date.Date()
		date := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

		if settings.IsBlackoutDate(date) {
			uc.logger.Info("GetAvailableSlots: zip=%s, date=%s is blacked out",
				zip, date.Format(domain.DateFormat))
			return buildResponse(zip, date, now, []Slot{}), nil
		}
		if err := validateRequestedDate(date, firstEligible, now, uc.horizonDays); err != nil {
			uc.logger.Warn("GetAvailableSlots: date %s rejected: %v",
				date.Format(domain.DateFormat), err)
			return nil, err
		}

		slots, err := uc.slotsForDate(ctx, date, settings, req.Token, now)
		if err != nil {
			return nil, err
		}

		uc.logger.Info("GetAvailableSlots: zip=%s, date=%s, %d slots available",
			zip, date.Format(domain.DateFormat), len(slots))
		return buildResponse(zip, date, now, slots), nil
	}

	// 8. Без даты: идем от первой доступной даты вперед до первой даты
	// с непустой выдачей, в пределах горизонта поиска
	date := firstEligible
	for {
		slots, err := uc.slotsForDate(ctx, date, settings, req.Token, now)
		if err != nil {
			return nil, err
		}

		if len(slots) > 0 {
			uc.logger.Info("GetAvailableSlots: zip=%s, date=%s, %d slots available",
				zip, date.Format(domain.DateFormat), len(slots))
			return buildResponse(zip, date, now, slots), nil
		}

		next, ok := domain.NextEligibleDate(date, now, settings, uc.horizonDays)
		if !ok {
			uc.logger.Info("GetAvailableSlots: zip=%s, no availability within %d days", zip, uc.horizonDays)
			return &Response{Zip: zip, Slots: []Slot{}}, nil
		}
		date = next
	}
}

// slotsForDate вычисляет доступные слоты на дату
func (uc *UseCase) slotsForDate(ctx context.Context, date time.Time, settings *domain.DeliverySettings, token string, now time.Time) ([]Slot, error) {
	templates := domain.GenerateSlots(date, settings)
	if len(templates) == 0 {
		return []Slot{}, nil
	}

	rows, err := uc.slotRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slot rows for %s: %v",
			date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get slot rows: %v", ErrInternal, err)
	}
	templates = mergeSlotRows(templates, rows)

	reservations, err := uc.reservationRepo.GetByDate(ctx, date, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations for %s: %v",
			date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	holds, err := uc.holdRepo.GetActiveByDate(ctx, date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get holds for %s: %v",
			date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
	}

	usage := countUsage(reservations, holds, token)
	return buildAvailableSlots(templates, usage), nil
}

// buildResponse собирает ответ с человекочитаемой подписью даты
func buildResponse(zip string, date time.Time, now time.Time, slots []Slot) *Response {
	return &Response{
		Zip:       zip,
		Date:      date.Format(domain.DateFormat),
		DateLabel: domain.DateLabel(date, now),
		Slots:     slots,
	}
}
