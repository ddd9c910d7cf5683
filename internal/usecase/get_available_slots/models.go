package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	Zip   string     // ZIP-код покупателя
	Token string     // Токен сессии (его собственное удержание не занимает место)
	Date  *time.Time // Конкретная дата; при nil берется первая дата с доступностью
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Zip       string // Нормализованный ZIP-код
	Date      string // Дата слотов (YYYY-MM-DD); пустая, если доступности нет
	DateLabel string // Человекочитаемая подпись даты ("Today (June 1)")
	Slots     []Slot // Доступные слоты (полные отфильтрованы)
}

// Slot модель доступного слота
type Slot struct {
	Key       string           // Канонический ключ "HH:MM-HH:MM"
	Value     string           // Значение поля checkout "YYYY-MM-DD|HH:MM-HH:MM"
	StartTime types.TimeString // Время начала слота
	EndTime   types.TimeString // Время конца слота
	Label     string           // Диапазон в 12-часовом формате ("10:00 AM - 12:00 PM")
	Remaining int              // Сколько мест осталось
	Spots     string           // Фраза об остатке ("2 spots left")
}
