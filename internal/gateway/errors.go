package gateway

import "errors"

// Ошибки шлюза алертов.
var (
	// ErrPermissionDenied — доставка алертов запрещена пользователем.
	// Пасс прерывается без мутаций и повторяется на следующем триггере.
	ErrPermissionDenied = errors.New("alert permission denied")

	// ErrUnavailable — хостовая подсистема недоступна.
	// Ошибка одного вызова: считается, пасс продолжается.
	ErrUnavailable = errors.New("alert gateway unavailable")
)
