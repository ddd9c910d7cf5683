package reserve_slot

import "time"

// Request модель запроса на удержание слота
type Request struct {
	Zip       string // ZIP-код покупателя
	SlotValue string // Выбранный слот "YYYY-MM-DD|HH:MM-HH:MM"
	Token     string // Токен сессии; если пустой, сервер сгенерирует новый
}

// Response модель ответа с созданным удержанием
type Response struct {
	Token     string    // Токен, которым владеет удержание
	Date      string    // Дата слота (YYYY-MM-DD)
	SlotKey   string    // Ключ слота "HH:MM-HH:MM"
	SlotValue string    // Значение поля checkout
	Label     string    // Диапазон в 12-часовом формате
	ExpiresAt time.Time // Момент истечения удержания
}
