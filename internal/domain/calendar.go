package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/pkg/types"
)

// FirstEligibleDate вычисляет первую дату, на которую можно предлагать слоты:
// сегодня, если текущее время строго раньше времени отсечки и сегодня не
// blackout-дата; иначе перебор вперед день за днем с пропуском blackout-дат.
// Поиск ограничен horizonDays, чтобы полностью заполненный blackout-календарь
// не приводил к бесконечному циклу; при исчерпании горизонта ok == false.
func FirstEligibleDate(now time.Time, settings *DeliverySettings, horizonDays int) (time.Time, bool) {
	today := DateOnly(now)

	candidate := today
	if !isBeforeCutoff(now, settings.CutoffTime) {
		candidate = today.AddDate(0, 0, 1)
	}

	for i := 0; i <= horizonDays; i++ {
		if !settings.IsBlackoutDate(candidate) {
			return candidate, true
		}
		candidate = candidate.AddDate(0, 0, 1)
	}

	return time.Time{}, false
}

// NextEligibleDate возвращает первую не-blackout дату строго после after,
// в пределах горизонта от опорной даты reference
func NextEligibleDate(after time.Time, reference time.Time, settings *DeliverySettings, horizonDays int) (time.Time, bool) {
	limit := DateOnly(reference).AddDate(0, 0, horizonDays)

	candidate := DateOnly(after).AddDate(0, 0, 1)
	for !candidate.After(limit) {
		if !settings.IsBlackoutDate(candidate) {
			return candidate, true
		}
		candidate = candidate.AddDate(0, 0, 1)
	}

	return time.Time{}, false
}

// isBeforeCutoff проверяет, что момент now строго раньше времени отсечки
// своего календарного дня
func isBeforeCutoff(now time.Time, cutoff types.TimeString) bool {
	cutoffMinutes, err := cutoff.Minutes()
	if err != nil {
		return false
	}
	nowMinutes := now.Hour()*60 + now.Minute()
	return nowMinutes < cutoffMinutes
}

// DateOnly обнуляет время, сохраняя локацию
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что две даты относятся к одному календарному дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateLabel возвращает человекочитаемую подпись даты доставки:
// "Today (June 1)", "Tomorrow (June 2)" или "Monday, June 3"
func DateLabel(date, now time.Time) string {
	today := DateOnly(now)
	switch {
	case IsSameDay(date, today):
		return fmt.Sprintf("Today (%s)", date.Format("January 2"))
	case IsSameDay(date, today.AddDate(0, 0, 1)):
		return fmt.Sprintf("Tomorrow (%s)", date.Format("January 2"))
	default:
		return date.Format("Monday, January 2")
	}
}
