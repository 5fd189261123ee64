// Alerta Engine — движок напоминаний.
//
// Engine:
//   - Держит алерты хоста в соответствии с напоминаниями в хранилище
//   - Просыпается по адаптивному таймеру и выполняет пассы сверки
//   - Слушает события синхронизации и действия по алертам из RabbitMQ
//   - Выполняет ночной полный пасс по cron-расписанию
//   - Предоставляет HTTP API для ручных пассов и наблюдения
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/shaiso/Alerta/internal/api"
	"github.com/shaiso/Alerta/internal/gateway"
	"github.com/shaiso/Alerta/internal/mq"
	"github.com/shaiso/Alerta/internal/repo"
	"github.com/shaiso/Alerta/internal/scheduler"
	"github.com/shaiso/Alerta/internal/telemetry"
)

func main() {
	// Инициализируем structured logging и метрики
	logger := telemetry.SetupLogger()
	telemetry.MustRegister()
	logger.Info("starting alerta-engine")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// DB pool
	pool, err := repo.NewPool(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	store := repo.NewStore(pool)

	// Шлюз алертов хоста
	gatewayURL := os.Getenv("GATEWAY_URL")
	if gatewayURL == "" {
		gatewayURL = "http://localhost:8090"
	}
	gw := gateway.NewClient(gatewayURL)

	// RabbitMQ — опционально: без него движок живёт на таймере пробуждений
	var publisher *mq.Publisher
	var mqConn *mq.Connection
	mqURL := os.Getenv("RABBITMQ_URL")
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}

	mqConn, err = mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, running in timer-only mode", "error", err)
		mqConn = nil
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		// Создаём топологию
		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Warn("failed to setup topology", "error", err)
		}

		publisher = mq.NewPublisher(mqConn, logger)
	}

	// Таймер пробуждений
	wakes := scheduler.NewWakeTimer()

	cfg := scheduler.Config{
		Store:   store,
		Gateway: gw,
		Wakes:   wakes,
		Budget:  envInt("ALERT_BUDGET", 0),
		Logger:  logger,
	}
	if publisher != nil {
		cfg.Publisher = publisher
	}
	engine := scheduler.New(cfg)

	// Запрашиваем разрешение на показ алертов у хоста
	granted, err := gw.RequestPermission(ctx)
	switch {
	case err != nil:
		logger.Warn("permission request failed", "error", err)
	case !granted:
		logger.Warn("alert permission denied, passes will be no-ops")
	default:
		logger.Info("alert permission granted")
	}

	// Цикл пробуждений
	go wakes.Run(ctx, func(ctx context.Context) {
		if _, err := engine.RunReconciliation(ctx, "wake"); err != nil {
			logger.Error("wake pass failed", "error", err)
		}
	})

	// Ночной полный пасс по cron-расписанию
	cronSpec := os.Getenv("FULL_PASS_CRON")
	if cronSpec == "" {
		cronSpec = "0 3 * * *"
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	runner := cron.New(cron.WithParser(parser))
	_, err = runner.AddFunc(cronSpec, func() {
		if _, err := engine.RunReconciliation(ctx, "cron"); err != nil {
			logger.Error("cron pass failed", "error", err)
		}
	})
	if err != nil {
		logger.Error("invalid FULL_PASS_CRON", "spec", cronSpec, "error", err)
		os.Exit(1)
	}
	runner.Start()
	defer runner.Stop()

	// Consumers событий из RabbitMQ
	if mqConn != nil {
		startConsumers(ctx, mqConn, engine, logger)
	}

	// Стартовый пасс: подхватываем всё, что изменилось, пока движок не работал
	go func() {
		if _, err := engine.RunReconciliation(ctx, "startup"); err != nil {
			logger.Error("startup pass failed", "error", err)
		}
	}()

	// HTTP: /healthz + /metrics + API
	handler := api.NewHandler(api.Config{
		Engine:  engine,
		Gateway: gw,
		Logger:  logger,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	handler.RegisterRoutes(mux)

	addr := ":8080"
	if v := os.Getenv("ENGINE_PORT"); v != "" {
		addr = ":" + v
	}

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()
	logger.Info("shutting down")

	// Graceful shutdown с таймаутом 10 секунд
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("alerta-engine stopped")
}

// startConsumers подписывает движок на события синхронизации и действия
// по алертам.
func startConsumers(ctx context.Context, conn *mq.Connection, engine *scheduler.Scheduler, logger *slog.Logger) {
	syncConsumer := mq.NewConsumer(conn, logger, mq.ConsumerConfig{
		Queue: string(mq.QueueSyncCompleted),
		Handler: func(ctx context.Context, d *mq.Delivery) error {
			payload, err := mq.ParsePayload[mq.SyncCompletedPayload](&d.Message)
			if err != nil {
				logger.Error("bad sync.completed payload", "error", err)
				return nil // некорректный payload бессмысленно ретраить
			}

			if payload.ListID == uuid.Nil {
				_, err = engine.RunReconciliation(ctx, "sync")
			} else {
				_, err = engine.ReconcileList(ctx, "sync", payload.ListID)
			}
			return err
		},
	})

	actionConsumer := mq.NewConsumer(conn, logger, mq.ConsumerConfig{
		Queue: string(mq.QueueAlertActions),
		Handler: func(ctx context.Context, d *mq.Delivery) error {
			payload, err := mq.ParsePayload[mq.AlertActionPayload](&d.Message)
			if err != nil {
				logger.Error("bad alert.action payload", "error", err)
				return nil
			}

			if payload.Category != "complete" {
				logger.Warn("unknown alert action category", "category", payload.Category)
				return nil
			}

			// ErrListBusy вернёт сообщение в очередь на повтор
			return engine.OnCompletionAction(ctx, payload.ItemID, payload.ListID)
		},
	})

	go func() {
		if err := syncConsumer.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("sync consumer stopped", "error", err)
		}
	}()
	go func() {
		if err := actionConsumer.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("action consumer stopped", "error", err)
		}
	}()
}

// envInt читает целочисленную переменную окружения, def — если не задана.
func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
