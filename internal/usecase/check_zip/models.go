package check_zip

// Request модель запроса проверки ZIP-кода
type Request struct {
	Zip string // ZIP-код в произвольном пользовательском написании
}

// Response модель ответа проверки ZIP-кода
type Response struct {
	Zip       string  // Нормализованный ZIP-код
	Eligible  bool    // Обслуживается ли ZIP-код доставкой
	FirstDate *string // Первая дата с возможной доставкой (YYYY-MM-DD), если обслуживается
}
