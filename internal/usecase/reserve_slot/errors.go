package reserve_slot

import "errors"

var (
	// ErrZipRequired возвращается при отсутствии ZIP-кода
	ErrZipRequired = errors.New("zip is required")

	// ErrZipNotEligible возвращается, когда ZIP-код не обслуживается доставкой
	ErrZipNotEligible = errors.New("zip is not eligible for delivery")

	// ErrSlotRequired возвращается при отсутствии выбранного слота
	ErrSlotRequired = errors.New("slot selection is required")

	// ErrMalformedSlot возвращается при слоте не вида YYYY-MM-DD|HH:MM-HH:MM
	ErrMalformedSlot = errors.New("malformed slot value")

	// ErrDateUnavailable возвращается, когда дата слота недоступна
	// (прошлая, blackout или вне горизонта поиска)
	ErrDateUnavailable = errors.New("date is not available for delivery")

	// ErrSlotUnavailable возвращается, когда слот не существует, закрыт
	// или в нем не осталось мест
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
