package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// mergeSlotRows накладывает предгенерированные строки на шаблоны из настроек
// Строка с status=closed убирает слот из выдачи, её capacity имеет приоритет
// над настройками (админ мог поправить вместимость конкретного дня)
func mergeSlotRows(templates []domain.SlotTemplate, rows []*domain.DeliverySlot) []domain.SlotTemplate {
	if len(rows) == 0 {
		return templates
	}

	byKey := make(map[string]*domain.DeliverySlot, len(rows))
	for _, row := range rows {
		byKey[row.SlotKey] = row
	}

	merged := make([]domain.SlotTemplate, 0, len(templates))
	for _, template := range templates {
		row, ok := byKey[template.Key()]
		if !ok {
			merged = append(merged, template)
			continue
		}
		if row.IsClosed() {
			continue
		}
		template.Capacity = row.Capacity
		merged = append(merged, template)
	}

	return merged
}

// countUsage считает занятость по ключу слота: активные резервации плюс
// неистекшие удержания, кроме удержания самого запрашивающего токена
func countUsage(reservations []*domain.Reservation, holds []*domain.Hold, excludeToken string) map[string]int {
	usage := make(map[string]int)
	for _, reservation := range reservations {
		usage[reservation.SlotKey]++
	}
	for _, hold := range holds {
		if excludeToken != "" && hold.Token == excludeToken {
			continue
		}
		usage[hold.SlotKey]++
	}
	return usage
}

// buildAvailableSlots собирает ответные слоты, отфильтровывая полные
func buildAvailableSlots(templates []domain.SlotTemplate, usage map[string]int) []Slot {
	slots := make([]Slot, 0, len(templates))
	for _, template := range templates {
		remaining := template.Capacity - usage[template.Key()]
		if remaining <= 0 {
			continue
		}
		slots = append(slots, Slot{
			Key:       template.Key(),
			Value:     template.Value(),
			StartTime: template.Start,
			EndTime:   template.End,
			Label:     template.Label(),
			Remaining: remaining,
			Spots:     spotsLabel(remaining),
		})
	}
	return slots
}

// spotsLabel возвращает фразу об остатке мест
func spotsLabel(remaining int) string {
	if remaining == 1 {
		return "1 spot left"
	}
	return fmt.Sprintf("%d spots left", remaining)
}
