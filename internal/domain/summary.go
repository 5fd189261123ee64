package domain

// Summary — счётчики одного пасса сверки.
//
// Summary — единственный пользовательский канал о результатах пасса:
// отдельного канала ошибок нет, сбои деградируют до "напоминание
// останется несвежим до следующего успешного пасса".
type Summary struct {
	// Admitted — элементы, прошедшие admission control (в рамках бюджета).
	Admitted int `json:"admitted"`

	// Scheduled — алерты, взведённые в этом пассе.
	Scheduled int `json:"scheduled"`

	// Cancelled — алерты, отменённые в этом пассе.
	Cancelled int `json:"cancelled"`

	// Deferred — элементы, не поместившиеся в бюджет.
	Deferred int `json:"deferred"`

	// Failed — обращения к шлюзу, завершившиеся ошибкой.
	Failed int `json:"failed"`

	// SkippedLists — списки, не попавшие в окно сканирования этого пасса.
	SkippedLists int `json:"skipped_lists"`
}

// Merge прибавляет счётчики другого Summary.
func (s *Summary) Merge(other Summary) {
	s.Admitted += other.Admitted
	s.Scheduled += other.Scheduled
	s.Cancelled += other.Cancelled
	s.Deferred += other.Deferred
	s.Failed += other.Failed
	s.SkippedLists += other.SkippedLists
}
