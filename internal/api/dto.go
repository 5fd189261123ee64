package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Alerta/internal/domain"
)

// Pass DTOs

// SummaryResponse — сводка завершённого пасса сверки.
type SummaryResponse struct {
	Trigger   string `json:"trigger"`
	Admitted  int    `json:"admitted"`
	Scheduled int    `json:"scheduled"`
	Cancelled int    `json:"cancelled"`
	Deferred  int    `json:"deferred"`
	Failed    int    `json:"failed"`

	// SkippedLists — списки, пропущенные из-за занятой аренды или ошибки чтения.
	SkippedLists int `json:"skipped_lists"`
}

// SummaryFromDomain конвертирует domain.Summary в SummaryResponse.
func SummaryFromDomain(trigger string, s domain.Summary) SummaryResponse {
	return SummaryResponse{
		Trigger:      trigger,
		Admitted:     s.Admitted,
		Scheduled:    s.Scheduled,
		Cancelled:    s.Cancelled,
		Deferred:     s.Deferred,
		Failed:       s.Failed,
		SkippedLists: s.SkippedLists,
	}
}

// Alert DTOs

// PendingAlertResponse — взведённый алерт в очереди хоста.
type PendingAlertResponse struct {
	ID     string     `json:"id"`
	FireAt *time.Time `json:"fire_at,omitempty"`

	// Owned — алерт принадлежит движку (префикс alerta:item:).
	Owned bool `json:"owned"`

	// ItemID — элемент, стоящий за алертом (только для owned).
	ItemID *uuid.UUID `json:"item_id,omitempty"`
}

// PendingAlertFromDomain конвертирует domain.PendingAlert в PendingAlertResponse.
func PendingAlertFromDomain(a domain.PendingAlert) PendingAlertResponse {
	resp := PendingAlertResponse{
		ID:     string(a.ID),
		FireAt: a.FireAt,
		Owned:  a.ID.Owned(),
	}
	if itemID, ok := domain.ParseAlertID(a.ID); ok {
		resp.ItemID = &itemID
	}
	return resp
}

// Permission DTOs

// PermissionResponse — статус разрешения на показ алертов.
type PermissionResponse struct {
	Granted bool `json:"granted"`
}
