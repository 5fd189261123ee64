package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AlertIDPrefix — префикс идентификаторов алертов движка.
//
// По префиксу движок отличает свои алерты от чужих: алерты без префикса
// никогда не отменяются и не пересчитываются. Правило деривации — единственный
// долговременный "формат" движка; менять его нельзя, иначе ранее взведённые
// алерты перестанут распознаваться и никогда не будут отменены.
const AlertIDPrefix = "alerta:item:"

// CategoryComplete — категория действия "выполнено" в payload алерта.
const CategoryComplete = "complete"

// AlertID — идентификатор алерта в хостовой подсистеме доставки.
type AlertID string

// AlertIDFor выводит идентификатор алерта из идентификатора элемента.
// Преобразование детерминированное и взаимно однозначное: один элемент —
// один алерт, на всех устройствах и между перезапусками.
func AlertIDFor(itemID uuid.UUID) AlertID {
	return AlertID(AlertIDPrefix + itemID.String())
}

// ParseAlertID восстанавливает идентификатор элемента из идентификатора
// алерта. ok=false для чужих алертов (без префикса или с некорректным UUID).
func ParseAlertID(id AlertID) (itemID uuid.UUID, ok bool) {
	s := string(id)
	if !strings.HasPrefix(s, AlertIDPrefix) {
		return uuid.Nil, false
	}
	itemID, err := uuid.Parse(strings.TrimPrefix(s, AlertIDPrefix))
	if err != nil {
		return uuid.Nil, false
	}
	return itemID, true
}

// Owned проверяет, принадлежит ли алерт движку.
func (id AlertID) Owned() bool {
	_, ok := ParseAlertID(id)
	return ok
}

// PendingAlert — взведённый алерт из списка хостовой подсистемы.
// Этот список — единственный источник истины о взведённых алертах:
// движок не ведёт собственного реестра.
type PendingAlert struct {
	// ID — идентификатор алерта.
	ID AlertID `json:"id"`

	// FireAt — время срабатывания. Хост может его не раскрывать.
	FireAt *time.Time `json:"fire_at,omitempty"`
}

// AlertPayload — полезная нагрузка алерта.
//
// ItemID и ListID позволяют действию "выполнено" из самого алерта
// найти элемент без обращения к движку.
type AlertPayload struct {
	Title    string    `json:"title"`
	Body     string    `json:"body,omitempty"`
	Category string    `json:"category"`
	ItemID   uuid.UUID `json:"item_id"`
	ListID   uuid.UUID `json:"list_id"`
}
