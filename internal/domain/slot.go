package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/pkg/types"
)

// SlotStatus represents the administrative state of a pregenerated slot row
type SlotStatus string

const (
	SlotOpen   SlotStatus = "open"
	SlotClosed SlotStatus = "closed"
)

// SlotTemplate is a delivery time window derived from settings for a date.
// It is a value, not an entity: identical inputs always produce identical
// templates. Persisted slot rows (DeliverySlot) are materialized from it.
type SlotTemplate struct {
	Date     time.Time
	Start    types.TimeString
	End      types.TimeString
	Capacity int
}

// Key returns the canonical slot key "HH:MM-HH:MM"
func (s SlotTemplate) Key() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Value returns the checkout field value "YYYY-MM-DD|HH:MM-HH:MM"
func (s SlotTemplate) Value() string {
	return fmt.Sprintf("%s|%s", s.Date.Format(DateFormat), s.Key())
}

// Label returns the human time range, e.g. "10:00 AM - 12:00 PM"
func (s SlotTemplate) Label() string {
	return fmt.Sprintf("%s - %s", s.Start.Format12Hour(), s.End.Format12Hour())
}

// DisplayLabel returns the full human sentence stored as order metadata,
// e.g. "Delivery on Saturday, June 1 between 10:00 AM and 12:00 PM"
func (s SlotTemplate) DisplayLabel() string {
	return fmt.Sprintf("Delivery on %s between %s and %s",
		s.Date.Format("Monday, January 2"), s.Start.Format12Hour(), s.End.Format12Hour())
}

// DeliverySlot is a pregenerated slot row with identity. Rows are created
// by the scheduled pregeneration job and may be administratively updated
// (capacity, status) or deleted.
type DeliverySlot struct {
	ID        int64
	SlotDate  time.Time
	SlotKey   string
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
	Status    SlotStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsClosed returns true if the slot has been administratively closed
func (s *DeliverySlot) IsClosed() bool {
	return s.Status == SlotClosed
}

// GenerateSlots производит упорядоченный список слотов на дату из настроек.
// Курсор стартует с SlotStart и двигается шагами SlotDurationMinutes;
// слот [cursor, cursor+duration) попадает в результат, только если целиком
// помещается в окно; неполный хвостовой слот не генерируется.
// Чистая функция: без I/O и побочных эффектов; при SlotEnd <= SlotStart
// или некорректных настройках возвращает пустой список, а не ошибку.
func GenerateSlots(date time.Time, settings *DeliverySettings) []SlotTemplate {
	slots := make([]SlotTemplate, 0)

	if settings.SlotDurationMinutes <= 0 {
		return slots
	}
	if !settings.SlotStart.IsBefore(settings.SlotEnd) {
		return slots
	}

	cursor := settings.SlotStart
	for {
		end, err := cursor.AddMinutes(settings.SlotDurationMinutes)
		if err != nil || end.IsAfter(settings.SlotEnd) {
			break
		}

		slot := SlotTemplate{
			Date:  date,
			Start: cursor,
			End:   end,
		}
		slot.Capacity = settings.EffectiveCapacity(slot.Key())
		slots = append(slots, slot)

		if !end.IsBefore(settings.SlotEnd) {
			break
		}
		cursor = end
	}

	return slots
}

// slotKeyRe каноническая форма ключа слота
var slotKeyRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]-([01][0-9]|2[0-3]):[0-5][0-9]$`)

var (
	// ErrMalformedSlotKey возвращается при ключе слота не вида HH:MM-HH:MM
	ErrMalformedSlotKey = errors.New("malformed slot key")

	// ErrMalformedSlotValue возвращается при значении слота не вида YYYY-MM-DD|HH:MM-HH:MM
	ErrMalformedSlotValue = errors.New("malformed slot value")
)

// IsSlotKey reports whether s has the canonical "HH:MM-HH:MM" shape
func IsSlotKey(s string) bool {
	return slotKeyRe.MatchString(s)
}

// ParseSlotKey разбирает ключ "HH:MM-HH:MM" на время начала и конца
func ParseSlotKey(key string) (start, end types.TimeString, err error) {
	if !slotKeyRe.MatchString(key) {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedSlotKey, key)
	}
	// После проверки регуляркой срезы безопасны: "HH:MM-HH:MM" всегда 11 символов
	start = types.TimeString(key[:5])
	end = types.TimeString(key[6:])
	if !start.IsBefore(end) {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedSlotKey, key)
	}
	return start, end, nil
}

// ParseSlotValue разбирает значение поля checkout "YYYY-MM-DD|HH:MM-HH:MM"
// Дата интерпретируется в локации loc (часовой пояс магазина)
func ParseSlotValue(value string, loc *time.Location) (date time.Time, slotKey string, err error) {
	// "YYYY-MM-DD|HH:MM-HH:MM": 10 символов даты, разделитель, 11 символов ключа
	if len(value) != 22 || value[10] != '|' {
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrMalformedSlotValue, value)
	}

	date, parseErr := time.ParseInLocation(DateFormat, value[:10], loc)
	if parseErr != nil {
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrMalformedSlotValue, value)
	}

	slotKey = value[11:]
	if _, _, keyErr := ParseSlotKey(slotKey); keyErr != nil {
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrMalformedSlotValue, value)
	}

	return date, slotKey, nil
}
