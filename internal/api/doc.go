// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go       — Handler с DI (движок, шлюз алертов, logger)
//   - routes.go        — регистрация маршрутов
//   - middleware.go    — middleware (logging, recovery)
//   - response.go      — унифицированные JSON-ответы и обработка ошибок
//   - dto.go           — Data Transfer Objects (request/response)
//   - pass_handler.go  — запуск пассов сверки
//   - alert_handler.go — очередь алертов, выполнение, разрешение
//
// API предоставляет REST endpoints для ручного запуска пассов и наблюдения
// за очередью алертов.
package api
