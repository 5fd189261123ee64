package scheduler

import (
	"sync"

	"github.com/google/uuid"
)

// listLeases — per-list guard пассов сверки.
//
// Два пасса не могут одновременно работать с одним списком; независимые
// списки сверяются параллельно. Лиза берётся на время пасса и
// освобождается на всех путях выхода через defer — никаких
// свободно висящих булевых флагов "список синхронизируется".
type listLeases struct {
	mu   sync.Mutex
	held map[uuid.UUID]struct{}
}

func newListLeases() *listLeases {
	return &listLeases{held: make(map[uuid.UUID]struct{})}
}

// TryAcquire берёт лизу списка. false — список уже занят другим пассом.
func (l *listLeases) TryAcquire(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[id]; ok {
		return false
	}
	l.held[id] = struct{}{}
	return true
}

// Release освобождает лизу списка.
func (l *listLeases) Release(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, id)
}
