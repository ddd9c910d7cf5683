package update_settings

import (
	"github.com/m04kA/SMC-DeliverySlotService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model
// Все поля опциональны: присутствующие обновляются, отсутствующие не трогаются
type UpdateSettingsRequest struct {
	ZipWhitelist        *[]string       `json:"zipWhitelist,omitempty"`
	DefaultCapacity     *int            `json:"defaultCapacity,omitempty"`
	SlotStart           *string         `json:"slotStart,omitempty"`
	SlotEnd             *string         `json:"slotEnd,omitempty"`
	SlotDurationMinutes *int            `json:"slotDurationMinutes,omitempty"`
	CutoffTime          *string         `json:"cutoffTime,omitempty"`
	BlackoutDates       *[]string       `json:"blackoutDates,omitempty"`
	SlotCapacities      *map[string]int `json:"slotCapacities,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(userID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:              userID,
		ZipWhitelist:        r.ZipWhitelist,
		DefaultCapacity:     r.DefaultCapacity,
		SlotStart:           r.SlotStart,
		SlotEnd:             r.SlotEnd,
		SlotDurationMinutes: r.SlotDurationMinutes,
		CutoffTime:          r.CutoffTime,
		BlackoutDates:       r.BlackoutDates,
		SlotCapacities:      r.SlotCapacities,
	}
}
