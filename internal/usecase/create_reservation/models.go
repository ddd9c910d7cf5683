package create_reservation

import (
	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// Request модель запроса на привязку слота к заказу
type Request struct {
	OrderID   int64  // ID внешнего заказа
	Zip       string // ZIP-код доставки
	SlotValue string // Выбранный слот "YYYY-MM-DD|HH:MM-HH:MM"
	Token     string // Токен сессии с удержанием; может быть пустым
}

// Response модель ответа с созданной резервацией
type Response struct {
	ReservationID int64             // ID резервации
	OrderID       int64             // ID заказа
	Date          string            // Дата слота (YYYY-MM-DD)
	SlotKey       string            // Ключ слота "HH:MM-HH:MM"
	Status        string            // Статус резервации
	DisplayLabel  string            // Человекочитаемое описание доставки
	Metadata      map[string]string // Метаданные для записи на заказ
}

// fromDomainReservation собирает ответ из доменной резервации
func fromDomainReservation(reservation *domain.Reservation) *Response {
	return &Response{
		ReservationID: reservation.ID,
		OrderID:       reservation.OrderID,
		Date:          reservation.SlotDate.Format(domain.DateFormat),
		SlotKey:       reservation.SlotKey,
		Status:        string(reservation.Status),
		DisplayLabel:  reservation.DisplayLabel,
		Metadata:      reservation.Metadata(),
	}
}
