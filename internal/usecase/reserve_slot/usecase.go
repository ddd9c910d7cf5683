package reserve_slot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// UseCase use case удержания слота на время оформления заказа
type UseCase struct {
	settings        SettingsProvider
	slotRepo        SlotRepository
	holdRepo        HoldRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	horizonDays     int
	holdTTL         time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	settings SettingsProvider,
	slotRepo SlotRepository,
	holdRepo HoldRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	horizonDays int,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		settings:        settings,
		slotRepo:        slotRepo,
		holdRepo:        holdRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		horizonDays:     horizonDays,
		holdTTL:         holdTTL,
		logger:          logger,
	}
}

// Execute выполняет use case удержания слота
// Проверка занятости и вставка удержания выполняются в сериализуемой
// транзакции: два конкурентных запроса не могут забрать последнее место.
// При любом отказе валидации прежнее удержание токена снимается, чтобы
// отвергнутый выбор не продолжал занимать место
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: zip=%q, slot=%q, token=%q", req.Zip, req.SlotValue, req.Token)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных и разбор слота
	zip, date, slotKey, err := validateRequest(req, now.Location())
	if err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		uc.releaseOnFailure(ctx, req.Token)
		return nil, err
	}

	// 3. Ленивая чистка истекших удержаний
	if _, err := uc.holdRepo.PurgeExpired(ctx, now); err != nil {
		uc.logger.Warn("ReserveSlot: purge expired holds failed: %v", err)
	}

	// 4. Получаем настройки и проверяем whitelist
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if !settings.IsZipAllowed(zip) {
		uc.logger.Info("ReserveSlot: zip=%s is not eligible", zip)
		uc.releaseOnFailure(ctx, req.Token)
		return nil, ErrZipNotEligible
	}

	// 5. Проверяем дату слота
	if err := validateDate(date, now, settings, uc.horizonDays); err != nil {
		uc.logger.Warn("ReserveSlot: date %s rejected: %v", date.Format(domain.DateFormat), err)
		uc.releaseOnFailure(ctx, req.Token)
		return nil, err
	}

	// 6. Токен без удержания получает новый идентификатор
	token := req.Token
	if token == "" {
		token = uuid.NewString()
	}

	expiresAt := now.Add(uc.holdTTL)
	var template *domain.SlotTemplate

	// 7. Проверка занятости и вставка удержания в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Находим слот среди сгенерированных с учетом строк предгенерации
		rows, err := uc.slotRepo.GetByDate(txCtx, date)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to get slot rows: %v", err)
			return fmt.Errorf("%w: failed to get slot rows: %v", ErrInternal, err)
		}
		template, err = findSlotTemplate(date, settings, rows, slotKey)
		if err != nil {
			return err
		}

		// 7.2. Считаем занятость: активные резервации плюс чужие удержания
		// Чтения выполняются с FOR UPDATE, конкурент дождется фиксации
		reservations, err := uc.reservationRepo.GetByDate(txCtx, date, false)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}
		holds, err := uc.holdRepo.GetActiveByDate(txCtx, date, now)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to get holds: %v", err)
			return fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
		}

		usage := 0
		for _, reservation := range reservations {
			if reservation.SlotKey == slotKey {
				usage++
			}
		}
		for _, hold := range holds {
			if hold.SlotKey == slotKey && hold.Token != token {
				usage++
			}
		}

		if usage >= template.Capacity {
			uc.logger.Info("ReserveSlot: slot %s on %s is full (%d/%d)",
				slotKey, date.Format(domain.DateFormat), usage, template.Capacity)
			return ErrSlotUnavailable
		}

		// 7.3. Создаем или обновляем удержание токена
		_, err = uc.holdRepo.Upsert(txCtx, &domain.Hold{
			SlotDate:  domain.DateOnly(date),
			SlotKey:   slotKey,
			Token:     token,
			ExpiresAt: expiresAt,
		})
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to upsert hold: %v", err)
			return fmt.Errorf("%w: failed to upsert hold: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		uc.releaseOnFailure(ctx, req.Token)
		return nil, err
	}

	uc.logger.Info("ReserveSlot: token=%s holds %s on %s until %s",
		token, slotKey, date.Format(domain.DateFormat), expiresAt.Format(time.RFC3339))

	return &Response{
		Token:     token,
		Date:      date.Format(domain.DateFormat),
		SlotKey:   slotKey,
		SlotValue: template.Value(),
		Label:     template.Label(),
		ExpiresAt: expiresAt,
	}, nil
}

// releaseOnFailure снимает прежнее удержание токена после отказа
// Ошибка не фатальна: удержание истечет само по TTL
func (uc *UseCase) releaseOnFailure(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := uc.holdRepo.DeleteByToken(ctx, token); err != nil {
		uc.logger.Warn("ReserveSlot: failed to release hold for token=%s: %v", token, err)
	}
}
