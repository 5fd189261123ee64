// Package gateway описывает интерфейс хостовой подсистемы доставки алертов
// и его HTTP-реализацию.
//
// Структура:
//   - gateway.go — интерфейс Gateway (permission, pending, submit, cancel)
//   - http.go    — клиент хостового alert-демона
//   - errors.go  — ErrPermissionDenied, ErrUnavailable
//
// Список pending-алертов демона — единственный источник истины о том,
// что взведено; движок ничего не хранит сам.
package gateway
