package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/reservation"
)

// UseCase use case привязки удержанного слота к заказу
type UseCase struct {
	settings        SettingsProvider
	slotRepo        SlotRepository
	holdRepo        HoldRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
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
	txManager TransactionManager,
	timeProvider TimeProvider,
	horizonDays int,
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
		logger:          logger,
	}
}

// Execute выполняет use case создания резервации
// Идемпотентно по заказу: повторный запрос для того же orderID возвращает
// существующую резервацию. Проверка занятости и вставка выполняются в
// сериализуемой транзакции; удержание токена при этом не считается занятостью
// и снимается после успешной привязки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: order=%d, zip=%q, slot=%q, token=%q",
		req.OrderID, req.Zip, req.SlotValue, req.Token)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных и разбор слота
	zip, date, slotKey, err := validateRequest(req, now.Location())
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 3. Идемпотентность: заказ уже привязан к слоту
	if existing, err := uc.reservationRepo.GetByOrderID(ctx, req.OrderID); err == nil {
		uc.logger.Info("CreateReservation: order=%d already bound to reservation id=%d",
			req.OrderID, existing.ID)
		return fromDomainReservation(existing), nil
	} else if !errors.Is(err, reservationRepo.ErrReservationNotFound) {
		uc.logger.Error("CreateReservation: failed to check existing reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing reservation: %v", ErrInternal, err)
	}

	// 4. Получаем настройки и проверяем whitelist
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if !settings.IsZipAllowed(zip) {
		uc.logger.Info("CreateReservation: zip=%s is not eligible", zip)
		return nil, ErrZipNotEligible
	}

	// 5. Проверяем дату слота
	if err := validateDate(date, now, settings, uc.horizonDays); err != nil {
		uc.logger.Warn("CreateReservation: date %s rejected: %v", date.Format(domain.DateFormat), err)
		return nil, err
	}

	var result *domain.Reservation

	// 6. Повторная проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Находим слот с учетом строк предгенерации
		rows, err := uc.slotRepo.GetByDate(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get slot rows: %v", err)
			return fmt.Errorf("%w: failed to get slot rows: %v", ErrInternal, err)
		}
		template, err := findSlotTemplate(date, settings, rows, slotKey)
		if err != nil {
			return err
		}

		// 6.2. Считаем занятость без собственного удержания токена:
		// удержание сейчас конвертируется в резервацию, а не дополняет её
		reservations, err := uc.reservationRepo.GetByDate(txCtx, date, false)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}
		holds, err := uc.holdRepo.GetActiveByDate(txCtx, date, now)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get holds: %v", err)
			return fmt.Errorf("%w: failed to get holds: %v", ErrInternal, err)
		}

		usage := 0
		for _, reservation := range reservations {
			if reservation.SlotKey == slotKey {
				usage++
			}
		}
		for _, hold := range holds {
			if hold.SlotKey == slotKey && hold.Token != req.Token {
				usage++
			}
		}

		if usage >= template.Capacity {
			uc.logger.Info("CreateReservation: slot %s on %s is full (%d/%d)",
				slotKey, date.Format(domain.DateFormat), usage, template.Capacity)
			return ErrSlotUnavailable
		}

		// 6.3. Создаем резервацию
		result, err = uc.reservationRepo.Create(txCtx, &domain.Reservation{
			OrderID:      req.OrderID,
			SlotDate:     domain.DateOnly(date),
			SlotKey:      slotKey,
			StartTime:    template.Start,
			EndTime:      template.End,
			Zip:          zip,
			Status:       domain.ReservationReserved,
			DisplayLabel: template.DisplayLabel(),
		})
		if err != nil {
			return err
		}

		// 6.4. Снимаем удержание: его место заняла резервация
		if req.Token != "" {
			if err := uc.holdRepo.DeleteByToken(txCtx, req.Token); err != nil {
				uc.logger.Error("CreateReservation: failed to release hold token=%s: %v", req.Token, err)
				return fmt.Errorf("%w: failed to release hold: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		// Гонка по идемпотентности: параллельный запрос успел привязать заказ
		if errors.Is(err, reservationRepo.ErrDuplicateOrder) {
			existing, getErr := uc.reservationRepo.GetByOrderID(ctx, req.OrderID)
			if getErr == nil {
				uc.logger.Info("CreateReservation: order=%d bound concurrently to reservation id=%d",
					req.OrderID, existing.ID)
				return fromDomainReservation(existing), nil
			}
		}
		if errors.Is(err, ErrSlotUnavailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReservation: order=%d bound to reservation id=%d (%s %s)",
		req.OrderID, result.ID, result.SlotDate.Format(domain.DateFormat), result.SlotKey)

	return fromDomainReservation(result), nil
}
