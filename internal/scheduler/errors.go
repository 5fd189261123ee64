package scheduler

import "errors"

// Ошибки оркестратора сверки.
var (
	// ErrListBusy — список уже сверяется другим пассом.
	// Вызывающий повторяет операцию позже.
	ErrListBusy = errors.New("list is being reconciled by another pass")
)
