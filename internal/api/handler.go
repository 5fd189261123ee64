package api

import (
	"log/slog"

	"github.com/shaiso/Alerta/internal/gateway"
	"github.com/shaiso/Alerta/internal/scheduler"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	engine  *scheduler.Scheduler
	gateway gateway.Gateway
	logger  *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	Engine  *scheduler.Scheduler
	Gateway gateway.Gateway
	Logger  *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		engine:  cfg.Engine,
		gateway: cfg.Gateway,
		logger:  cfg.Logger,
	}
}
