package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	slotRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/slot"
)

// UpdateSlotRequest запрос на административное обновление слота
// nil-поля не изменяются
type UpdateSlotRequest struct {
	UserID   int64
	Date     time.Time
	SlotKey  string
	Capacity *int
	Status   *domain.SlotStatus
}

// Service сервис административного управления предгенерированными слотами
type Service struct {
	slotRepo SlotRepository
	adminIDs []int64
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, adminIDs []int64, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		adminIDs: adminIDs,
		logger:   logger,
	}
}

// GetByDate получает предгенерированные слоты на дату
func (s *Service) GetByDate(ctx context.Context, date time.Time) ([]*domain.DeliverySlot, error) {
	slots, err := s.slotRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}
	return slots, nil
}

// Update обновляет вместимость или статус предгенерированного слота
// Доступно только администраторам. Занятость слота при этом не пересчитывается:
// уже выданные резервации остаются в силе, меняется только будущая доступность
func (s *Service) Update(ctx context.Context, req *UpdateSlotRequest) error {
	s.logger.Info("Update: slot %s on %s by user=%d",
		req.SlotKey, req.Date.Format(domain.DateFormat), req.UserID)

	if err := s.checkAdminAccess(req.UserID); err != nil {
		s.logger.Warn("Update: access denied for user=%d", req.UserID)
		return err
	}

	if !domain.IsSlotKey(req.SlotKey) {
		return fmt.Errorf("%w: malformed slot key %q", ErrInvalidInput, req.SlotKey)
	}
	if req.Capacity == nil && req.Status == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.Capacity != nil && (*req.Capacity < 0 || *req.Capacity > domain.MaxSlotCapacity) {
		return fmt.Errorf("%w: capacity %d out of range", ErrInvalidInput, *req.Capacity)
	}
	if req.Status != nil && *req.Status != domain.SlotOpen && *req.Status != domain.SlotClosed {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}

	err := s.slotRepo.Update(ctx, domain.DateOnly(req.Date), req.SlotKey, req.Capacity, req.Status)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Update: slot %s on %s not found", req.SlotKey, req.Date.Format(domain.DateFormat))
			return ErrSlotNotFound
		}
		s.logger.Error("Update: repository error: %v", err)
		return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: slot %s on %s updated", req.SlotKey, req.Date.Format(domain.DateFormat))
	return nil
}

// checkAdminAccess проверяет, что пользователь в списке администраторов
func (s *Service) checkAdminAccess(userID int64) error {
	for _, adminID := range s.adminIDs {
		if adminID == userID {
			return nil
		}
	}
	return ErrAccessDenied
}
