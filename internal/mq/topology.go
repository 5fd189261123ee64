package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Exchanges — имена обменников.
const (
	ExchangeSync   Exchange = "alerta.sync"
	ExchangeAlerts Exchange = "alerta.alerts"
	ExchangePasses Exchange = "alerta.passes"
	ExchangeDLQ    Exchange = "alerta.dlq"
)

// Queues — имена очередей.
const (
	QueueSyncCompleted   Queue = "sync.completed"
	QueueAlertActions    Queue = "alerts.actions"
	QueuePassesCompleted Queue = "passes.completed"
	QueueDLQActions      Queue = "dlq.actions"
)

// Routing keys.
const (
	RoutingKeyCompleted  RoutingKey = "completed"
	RoutingKeyActions    RoutingKey = "actions"
	RoutingKeyDLQActions RoutingKey = "actions"
)

func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		// 1. Создаём exchanges
		if err := declareExchanges(ch); err != nil {
			return err
		}

		// 2. Создаём queues
		if err := declareQueues(ch); err != nil {
			return err
		}

		// 3. Привязываем queues к exchanges
		if err := bindQueues(ch); err != nil {
			return err
		}

		return nil
	})
}

// declareExchanges создаёт обменники.
func declareExchanges(ch *amqp.Channel) error {
	exchanges := []struct {
		name Exchange
		kind string
	}{
		{ExchangeSync, "direct"},
		{ExchangeAlerts, "direct"},
		{ExchangePasses, "direct"},
		{ExchangeDLQ, "direct"},
	}

	for _, ex := range exchanges {
		err := ch.ExchangeDeclare(
			string(ex.name), // name
			ex.kind,         // type
			true,            // durable
			false,           // auto-deleted
			false,           // internal
			false,           // no-wait
			nil,             // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ex.name, err)
		}
	}

	return nil
}

// declareQueues создаёт очереди.
func declareQueues(ch *amqp.Channel) error {
	// Аргументы для очередей с DLQ
	dlqArgs := amqp.Table{
		"x-dead-letter-exchange":    string(ExchangeDLQ),
		"x-dead-letter-routing-key": string(RoutingKeyDLQActions),
	}

	queues := []struct {
		name Queue
		args amqp.Table
	}{
		// sync.completed — без DLQ (пропущенный сигнал догонит wake-таймер)
		{QueueSyncCompleted, nil},

		// alerts.actions — с DLQ (действие пользователя терять нельзя)
		{QueueAlertActions, dlqArgs},

		// passes.completed — без DLQ (сводки пассов, события наблюдаемости)
		{QueuePassesCompleted, nil},

		// dlq.actions — сама DLQ очередь
		{QueueDLQActions, nil},
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			string(q.name), // name
			true,           // durable
			false,          // delete when unused
			false,          // exclusive
			false,          // no-wait
			q.args,         // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", q.name, err)
		}
	}

	return nil
}

// bindQueues привязывает очереди к обменникам.
func bindQueues(ch *amqp.Channel) error {
	bindings := []struct {
		queue      Queue
		routingKey RoutingKey
		exchange   Exchange
	}{
		{QueueSyncCompleted, RoutingKeyCompleted, ExchangeSync},
		{QueueAlertActions, RoutingKeyActions, ExchangeAlerts},
		{QueuePassesCompleted, RoutingKeyCompleted, ExchangePasses},
		{QueueDLQActions, RoutingKeyDLQActions, ExchangeDLQ},
	}

	for _, b := range bindings {
		err := ch.QueueBind(
			string(b.queue),      // queue name
			string(b.routingKey), // routing key
			string(b.exchange),   // exchange
			false,                // no-wait
			nil,                  // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", b.queue, b.exchange, err)
		}
	}

	return nil
}

// TopologyInfo возвращает описание топологии для логирования.
func TopologyInfo() string {
	return `
  Alerta RabbitMQ Topology:

    alerta.sync (direct)
    └── sync.completed [routing: completed]
            Consumer: Engine (пасс по синхронизированному списку)

    alerta.alerts (direct)
    └── alerts.actions [routing: actions]
            Consumer: Engine (обработка действий по алертам)
            DLQ: dlq.actions

    alerta.passes (direct)
    └── passes.completed [routing: completed]
            Consumer: внешние наблюдатели

    alerta.dlq (direct)
    └── dlq.actions [routing: actions]
            Manual processing
  `
}
