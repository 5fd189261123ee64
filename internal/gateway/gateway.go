package gateway

import (
	"context"
	"time"

	"github.com/shaiso/Alerta/internal/domain"
)

// Gateway — хостовая подсистема доставки алертов.
//
// Движок не ведёт собственного реестра взведённых алертов: PendingAlerts
// — единственный источник истины. Поэтому рестарт процесса или выселение
// алертов хостом самовосстанавливаются на следующем пассе.
type Gateway interface {
	// HasPermission проверяет разрешение на доставку алертов.
	HasPermission(ctx context.Context) (bool, error)

	// RequestPermission запрашивает разрешение у пользователя.
	RequestPermission(ctx context.Context) (bool, error)

	// PendingAlerts возвращает все взведённые алерты, включая чужие.
	PendingAlerts(ctx context.Context) ([]domain.PendingAlert, error)

	// Submit взводит алерт. Идемпотентный upsert: алерт с тем же
	// идентификатором заменяется.
	Submit(ctx context.Context, id domain.AlertID, fireAt time.Time, payload domain.AlertPayload) error

	// Cancel снимает алерты. Неизвестные идентификаторы игнорируются.
	Cancel(ctx context.Context, ids []domain.AlertID) error
}
