package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-DeliverySlotService/internal/service/settings/models"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/types"
)

// Service сервис настроек доставки
// Отвечает за чтение настроек с fallback на значения по умолчанию
// и за тихую санитизацию при административном обновлении
type Service struct {
	settingsRepo SettingsRepository
	adminIDs     []int64
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, adminIDs []int64, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		adminIDs:     adminIDs,
		logger:       logger,
	}
}

// Get получает текущие настройки доставки
// При отсутствии сохраненной конфигурации возвращает значения по умолчанию
// (с пустым whitelist ни один ZIP не обслуживается, пока админ не настроит)
func (s *Service) Get(ctx context.Context) (*domain.DeliverySettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultSettings(), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return settings, nil
}

// Update частично обновляет настройки доставки
// Доступно только администраторам. Некорректные значения не приводят к ошибке:
// каждое поле санитизируется независимо, невалидное значение тихо отбрасывается
// и остается прежним. Так кривое поле формы не роняет остальную конфигурацию
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*domain.DeliverySettings, error) {
	s.logger.Info("Update: updating delivery settings by user=%d", req.UserID)

	if err := s.checkAdminAccess(req.UserID); err != nil {
		s.logger.Warn("Update: access denied for user=%d", req.UserID)
		return nil, err
	}

	// 1. Загружаем текущие настройки (или дефолты) как базу для частичного обновления
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Применяем присланные поля с санитизацией
	if req.ZipWhitelist != nil {
		current.ZipWhitelist = sanitizeZipWhitelist(*req.ZipWhitelist)
	}
	if req.DefaultCapacity != nil {
		current.DefaultCapacity = clampCapacity(*req.DefaultCapacity)
	}

	newStart, newEnd := current.SlotStart, current.SlotEnd
	if req.SlotStart != nil {
		if t := types.TimeString(*req.SlotStart); t.Validate() == nil {
			newStart = t
		} else {
			s.logger.Warn("Update: ignoring invalid slot start %q", *req.SlotStart)
		}
	}
	if req.SlotEnd != nil {
		if t := types.TimeString(*req.SlotEnd); t.Validate() == nil {
			newEnd = t
		} else {
			s.logger.Warn("Update: ignoring invalid slot end %q", *req.SlotEnd)
		}
	}
	// Окно применяется только целиком: перевернутое окно отбрасывается парой
	if newStart.IsBefore(newEnd) {
		current.SlotStart = newStart
		current.SlotEnd = newEnd
	} else {
		s.logger.Warn("Update: ignoring inverted slot window %s-%s", newStart, newEnd)
	}

	if req.SlotDurationMinutes != nil {
		if d := *req.SlotDurationMinutes; d >= domain.MinSlotDurationMinutes && d <= domain.MaxSlotDurationMinutes {
			current.SlotDurationMinutes = d
		} else {
			s.logger.Warn("Update: ignoring invalid slot duration %d", *req.SlotDurationMinutes)
		}
	}
	if req.CutoffTime != nil {
		if t := types.TimeString(*req.CutoffTime); t.Validate() == nil {
			current.CutoffTime = t
		} else {
			s.logger.Warn("Update: ignoring invalid cutoff time %q", *req.CutoffTime)
		}
	}
	if req.BlackoutDates != nil {
		current.BlackoutDates = sanitizeBlackoutDates(*req.BlackoutDates)
	}
	if req.SlotCapacities != nil {
		current.SlotCapacities = sanitizeSlotCapacities(*req.SlotCapacities)
	}

	// 3. Сохраняем результат
	updated, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings updated, whitelist=%d zips, window=%s-%s",
		len(updated.ZipWhitelist), updated.SlotStart, updated.SlotEnd)
	return updated, nil
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

// clampCapacity приводит вместимость по умолчанию в допустимый диапазон
func clampCapacity(capacity int) int {
	if capacity < domain.MinSlotCapacity {
		return domain.MinSlotCapacity
	}
	if capacity > domain.MaxSlotCapacity {
		return domain.MaxSlotCapacity
	}
	return capacity
}

// sanitizeZipWhitelist нормализует каждый ZIP и отбрасывает пустые и дубликаты
// Порядок первых вхождений сохраняется
func sanitizeZipWhitelist(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))
	for _, zip := range raw {
		normalized := domain.NormalizeZip(zip)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}

// sanitizeBlackoutDates оставляет только валидные даты YYYY-MM-DD без дубликатов
func sanitizeBlackoutDates(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))
	for _, date := range raw {
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			continue
		}
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		result = append(result, date)
	}
	return result
}

// sanitizeSlotCapacities оставляет только ключи вида HH:MM-HH:MM
// с неотрицательной вместимостью. Явный 0 допустим: слот навсегда заполнен
func sanitizeSlotCapacities(raw map[string]int) map[string]int {
	result := make(map[string]int, len(raw))
	for key, capacity := range raw {
		if !domain.IsSlotKey(key) || capacity < 0 || capacity > domain.MaxSlotCapacity {
			continue
		}
		result[key] = capacity
	}
	return result
}
