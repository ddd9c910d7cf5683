package models

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// UpdateSettingsRequest запрос на частичное обновление настроек доставки
// nil-поля не изменяются; присланные поля проходят тихую санитизацию
type UpdateSettingsRequest struct {
	UserID int64

	ZipWhitelist        *[]string
	DefaultCapacity     *int
	SlotStart           *string
	SlotEnd             *string
	SlotDurationMinutes *int
	CutoffTime          *string
	BlackoutDates       *[]string
	SlotCapacities      *map[string]int
}

// SettingsResponse настройки доставки в ответе API
type SettingsResponse struct {
	ZipWhitelist        []string       `json:"zip_whitelist"`
	DefaultCapacity     int            `json:"default_capacity"`
	SlotStart           string         `json:"slot_start"`
	SlotEnd             string         `json:"slot_end"`
	SlotDurationMinutes int            `json:"slot_duration_minutes"`
	CutoffTime          string         `json:"cutoff_time"`
	BlackoutDates       []string       `json:"blackout_dates"`
	SlotCapacities      map[string]int `json:"slot_capacities"`
	UpdatedAt           *time.Time     `json:"updated_at,omitempty"`
}

// FromDomainSettings конвертирует domain.DeliverySettings в ответ API
func FromDomainSettings(settings *domain.DeliverySettings) *SettingsResponse {
	resp := &SettingsResponse{
		ZipWhitelist:        settings.ZipWhitelist,
		DefaultCapacity:     settings.DefaultCapacity,
		SlotStart:           settings.SlotStart.String(),
		SlotEnd:             settings.SlotEnd.String(),
		SlotDurationMinutes: settings.SlotDurationMinutes,
		CutoffTime:          settings.CutoffTime.String(),
		BlackoutDates:       settings.BlackoutDates,
		SlotCapacities:      settings.SlotCapacities,
	}
	if !settings.UpdatedAt.IsZero() {
		updatedAt := settings.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
