package domain

import (
	"time"

	"github.com/google/uuid"
)

// ListRef — список напоминаний в перечислении хранилища.
//
// Движку от списка нужны только идентификатор и время последнего
// изменения: по нему работает recency-пул выбора списков.
type ListRef struct {
	// ID — уникальный идентификатор списка.
	ID uuid.UUID `json:"id"`

	// Name — имя списка для логов и CLI.
	Name string `json:"name,omitempty"`

	// LastModified — время последнего изменения любого элемента списка.
	LastModified time.Time `json:"last_modified"`
}
