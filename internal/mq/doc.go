// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация сообщений в очереди
//   - consumer.go   — потребление сообщений из очередей
//
// Типы сообщений:
//   - sync.completed  — синхронизация списка завершена, нужен пасс сверки
//   - alert.action    — действие пользователя по сработавшему алерту
//   - pass.completed  — сводка завершённого пасса сверки
//
// Exchanges:
//   - alerta.sync     — события синхронизации
//   - alerta.alerts   — действия по алертам
//   - alerta.passes   — сводки пассов
//   - alerta.dlq      — dead letter queue
package mq
