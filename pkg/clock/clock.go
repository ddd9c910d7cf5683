// Package clock предоставляет часы, привязанные к часовому поясу магазина.
// Вся доменная логика (отсечка same-day, blackout-даты, истечение удержаний)
// оперирует временем в этом поясе, а не в поясе сервера.
package clock

import "time"

// Clock часы сервиса
type Clock struct {
	loc *time.Location
}

// New создает часы в указанной локации
func New(loc *time.Location) *Clock {
	return &Clock{loc: loc}
}

// Now возвращает текущее время в часовом поясе сервиса
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location возвращает часовой пояс сервиса
func (c *Clock) Location() *time.Location {
	return c.loc
}
