package domain

import (
	"time"

	"github.com/google/uuid"
)

// RepeatUnit — единица повторения напоминания.
type RepeatUnit string

// Единицы повторения.
const (
	RepeatDay   RepeatUnit = "day"
	RepeatWeek  RepeatUnit = "week"
	RepeatMonth RepeatUnit = "month"
	RepeatYear  RepeatUnit = "year"

	// RepeatWeekdays — "каждый будний день". Interval для этой единицы
	// не учитывается: правило всегда означает шаг в один будний день.
	RepeatWeekdays RepeatUnit = "weekdays"
)

// IsValid проверяет, что единица повторения известна.
func (u RepeatUnit) IsValid() bool {
	switch u {
	case RepeatDay, RepeatWeek, RepeatMonth, RepeatYear, RepeatWeekdays:
		return true
	}
	return false
}

// RepeatMode — режим вычисления следующего срока повторяющегося напоминания.
type RepeatMode string

// Режимы повторения.
const (
	// RepeatModeFixed — следующий срок отсчитывается от предыдущего срока.
	// Если элемент выполнили сильно позже срока, правило применяется
	// несколько раз, пока результат не окажется строго в будущем.
	RepeatModeFixed RepeatMode = "fixed"

	// RepeatModeAfterComplete — следующий срок отсчитывается от момента
	// выполнения: одно применение правила к "сейчас".
	RepeatModeAfterComplete RepeatMode = "after_complete"
)

// RepeatRule — правило повторения напоминания.
type RepeatRule struct {
	// Unit — единица повторения (day, week, month, year, weekdays).
	Unit RepeatUnit `json:"unit"`

	// Interval — шаг повторения в единицах Unit. Минимум 1.
	Interval int `json:"interval"`
}

// ReminderItem — элемент списка с напоминанием.
//
// Элементы принадлежат внешнему хранилищу; движок их только читает.
// Единственная мутация с нашей стороны — обработка действия "выполнено"
// (см. scheduler.OnCompletionAction).
type ReminderItem struct {
	// ID — уникальный идентификатор элемента.
	ID uuid.UUID `json:"id"`

	// ListID — список, которому принадлежит элемент.
	ListID uuid.UUID `json:"list_id"`

	// Title — заголовок элемента. Попадает в текст алерта.
	Title string `json:"title"`

	// Notes — заметки элемента.
	Notes string `json:"notes,omitempty"`

	// DueDate — срок напоминания.
	// nil ⇒ элемент никогда не порождает алерт.
	DueDate *time.Time `json:"due_date,omitempty"`

	// Repeat — правило повторения. nil для разовых напоминаний.
	Repeat *RepeatRule `json:"repeat,omitempty"`

	// RepeatMode — режим повторения. Учитывается только если Repeat != nil.
	RepeatMode RepeatMode `json:"repeat_mode,omitempty"`

	// Checked — элемент отмечен выполненным.
	// Выполненный элемент не должен иметь действующего алерта.
	Checked bool `json:"checked"`

	// Deleted — элемент помечен удалённым (soft delete).
	// Удалённый элемент не должен иметь действующего алерта.
	Deleted bool `json:"deleted"`

	// CreatedAt — время создания элемента.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего изменения.
	UpdatedAt time.Time `json:"updated_at"`
}

// NeedsAlert проверяет, должен ли элемент иметь алерт.
func (i *ReminderItem) NeedsAlert() bool {
	return !i.Checked && !i.Deleted && i.DueDate != nil
}

// IsRepeating проверяет, повторяется ли напоминание.
func (i *ReminderItem) IsRepeating() bool {
	return i.Repeat != nil
}
