package get_available_slots

import "errors"

var (
	// ErrZipNotEligible возвращается, когда ZIP-код не обслуживается доставкой
	ErrZipNotEligible = errors.New("zip is not eligible for delivery")

	// ErrDateUnavailable возвращается, когда запрошенная дата недоступна
	// (прошлая, blackout или вне горизонта поиска)
	ErrDateUnavailable = errors.New("date is not available for delivery")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
