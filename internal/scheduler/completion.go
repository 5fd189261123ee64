package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shaiso/Alerta/internal/domain"
	"github.com/shaiso/Alerta/internal/repeat"
)

// OnCompletionAction обрабатывает действие "выполнено" из алерта.
//
// Повторяющийся элемент не отмечается выполненным: вычисляется следующий
// срок, алерт снимается, и список проходит одиночную сверку — перевзвод
// уважает бюджет, а не происходит безусловно. Разовый элемент получает
// Checked=true без срока, алерт снимается.
//
// Если элемент к этому моменту удалён параллельно — действие тихо
// становится no-op, без повторов.
func (s *Scheduler) OnCompletionAction(ctx context.Context, itemID, listID uuid.UUID) error {
	log := s.logger.With("item_id", itemID, "list_id", listID)

	if !s.leases.TryAcquire(listID) {
		return fmt.Errorf("list %s: %w", listID, ErrListBusy)
	}
	defer s.leases.Release(listID)

	item, err := s.store.GetItem(ctx, listID, itemID)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		log.Info("item not found, completion action is a no-op")
		return nil
	}

	now := s.now()
	alertID := domain.AlertIDFor(item.ID)

	if item.IsRepeating() {
		item.DueDate = repeat.NextDueDate(item.DueDate, item.Repeat, item.RepeatMode, now)
		item.Checked = false
	} else {
		item.Checked = true
		item.DueDate = nil
	}
	item.UpdatedAt = now

	if err := s.store.SaveItem(ctx, item); err != nil {
		return fmt.Errorf("save item: %w", err)
	}

	if err := s.gateway.Cancel(ctx, []domain.AlertID{alertID}); err != nil {
		// Несвёрнутый алерт подберёт следующий пасс.
		log.Warn("failed to cancel completed item's alert", "error", err)
	}

	log.Info("completion action handled",
		"repeating", item.IsRepeating(),
		"next_due", item.DueDate,
	)

	if item.DueDate == nil {
		return nil
	}

	// Новый срок проходит обычную сверку списка в рамках бюджета.
	// Лиза списка уже наша, поэтому внутренний вариант без захвата.
	if _, err := s.reconcileListLocked(ctx, "completion", listID); err != nil {
		return fmt.Errorf("reconcile after completion: %w", err)
	}
	return nil
}
