package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/reservation"
)

// OrderStatusAction результат применения смены статуса заказа к резервации
type OrderStatusAction string

const (
	// ActionNone статус не влияет на резервацию
	ActionNone OrderStatusAction = "none"
	// ActionConfirmed резервация подтверждена
	ActionConfirmed OrderStatusAction = "confirmed"
	// ActionReleased резервация отменена, вместимость возвращена в пул
	ActionReleased OrderStatusAction = "released"
)

// Service сервис резерваций слотов доставки
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса резерваций
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает резервацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return reservation, nil
}

// GetByOrderID получает резервацию по ID заказа
func (s *Service) GetByOrderID(ctx context.Context, orderID int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByOrderID: reservation for order=%d not found", orderID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByOrderID: repository error for order=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: GetByOrderID - repository error: %v", ErrInternal, err)
	}

	return reservation, nil
}

// GetByDate получает резервации на дату
// includeInactive=true добавляет отмененные резервации (админский обзор дня)
func (s *Service) GetByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Reservation, error) {
	reservations, err := s.reservationRepo.GetByDate(ctx, date, includeInactive)
	if err != nil {
		s.logger.Error("GetByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	return reservations, nil
}

// Cancel отменяет резервацию и возвращает вместимость слота в пул
// Идемпотентно: отмена уже отмененной резервации не является ошибкой
func (s *Service) Cancel(ctx context.Context, id int64, reason string) error {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if reservation.IsCancelled() {
		s.logger.Info("Cancel: reservation id=%d already cancelled", id)
		return nil
	}

	if err := s.reservationRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: reservation id=%d cancelled, reason=%q", id, reason)
	return nil
}

// ApplyOrderStatus применяет смену статуса внешнего заказа к резервации
// Терминально-негативные статусы (cancelled, refunded, failed) освобождают слот,
// подтверждающие (processing, completed) переводят резервацию в confirmed,
// остальные игнорируются. Повторная доставка того же статуса безопасна
func (s *Service) ApplyOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (OrderStatusAction, *domain.Reservation, error) {
	s.logger.Info("ApplyOrderStatus: order=%d, status=%s", orderID, status)

	reservation, err := s.GetByOrderID(ctx, orderID)
	if err != nil {
		return ActionNone, nil, err
	}

	switch {
	case status.IsTerminalNegative():
		if reservation.IsCancelled() {
			s.logger.Info("ApplyOrderStatus: reservation id=%d already released", reservation.ID)
			return ActionNone, reservation, nil
		}
		reason := fmt.Sprintf("order %s", status)
		if err := s.reservationRepo.Cancel(ctx, reservation.ID, reason); err != nil {
			s.logger.Error("ApplyOrderStatus: cancel failed for reservation id=%d: %v", reservation.ID, err)
			return ActionNone, nil, fmt.Errorf("%w: ApplyOrderStatus - cancel failed: %v", ErrInternal, err)
		}
		s.logger.Info("ApplyOrderStatus: reservation id=%d released for order=%d", reservation.ID, orderID)
		return ActionReleased, reservation, nil

	case status.IsConfirming():
		// Отмененную резервацию подтверждение заказа не воскрешает:
		// вместимость могла уже уйти другому покупателю
		if reservation.Status != domain.ReservationReserved {
			s.logger.Info("ApplyOrderStatus: reservation id=%d in status=%s, confirm skipped",
				reservation.ID, reservation.Status)
			return ActionNone, reservation, nil
		}
		if err := s.reservationRepo.UpdateStatus(ctx, reservation.ID, domain.ReservationConfirmed); err != nil {
			s.logger.Error("ApplyOrderStatus: confirm failed for reservation id=%d: %v", reservation.ID, err)
			return ActionNone, nil, fmt.Errorf("%w: ApplyOrderStatus - confirm failed: %v", ErrInternal, err)
		}
		reservation.Status = domain.ReservationConfirmed
		s.logger.Info("ApplyOrderStatus: reservation id=%d confirmed for order=%d", reservation.ID, orderID)
		return ActionConfirmed, reservation, nil

	default:
		return ActionNone, reservation, nil
	}
}
