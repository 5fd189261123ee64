// Package scheduler оркестрирует пассы сверки напоминаний с алертами.
//
// Scheduler отвечает за:
//   - Полный пасс по парку списков (RunReconciliation) и пасс по одному
//     списку (ReconcileList) — обе операции используют один planner.Plan
//   - Выбор списков при парке больше окна сканирования (selector.go)
//   - Вычисление и регистрацию следующего фонового пробуждения (wake.go)
//   - Per-list лизы против одновременных пассов (lease.go)
//   - Обработку действия "выполнено" из алерта (completion.go)
//
// Структура:
//   - scheduler.go  — оркестрация пасса, применение диффа
//   - selector.go   — окно сканирования: приоритетный и recency пулы
//   - wake.go       — адаптивный интервал пробуждения
//   - lease.go      — per-list guard
//   - completion.go — действие "выполнено"
//   - timer.go      — процессный таймер пробуждений (WakeRegistrar)
//
// Между пассами движок не хранит никакого изменяемого состояния:
// всё перевычисляется из хранилища и шлюза, поэтому рестарт процесса
// или выселение алертов хостом самовосстанавливаются.
package scheduler
