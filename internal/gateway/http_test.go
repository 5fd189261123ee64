package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Alerta/internal/domain"
)

func TestClient_HasPermission(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/permission" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]bool{"granted": true})
	}))
	defer srv.Close()

	granted, err := NewClient(srv.URL).HasPermission(context.Background())
	if err != nil {
		t.Fatalf("HasPermission: %v", err)
	}
	if !granted {
		t.Error("expected granted=true")
	}
}

func TestClient_SubmitPutsByID(t *testing.T) {
	itemID := uuid.New()
	alertID := domain.AlertIDFor(itemID)

	var gotPath string
	var gotReq struct {
		FireAt  time.Time           `json:"fire_at"`
		Payload domain.AlertPayload `json:"payload"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method %s", r.Method)
		}
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	fireAt := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	payload := domain.AlertPayload{Title: "t", ItemID: itemID}

	err := NewClient(srv.URL).Submit(context.Background(), alertID, fireAt, payload)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if gotPath != "/v1/alerts/"+string(alertID) {
		t.Errorf("path = %q", gotPath)
	}
	if !gotReq.FireAt.Equal(fireAt) {
		t.Errorf("fire_at = %v, want %v", gotReq.FireAt, fireAt)
	}
	if gotReq.Payload.ItemID != itemID {
		t.Errorf("payload item id = %v", gotReq.Payload.ItemID)
	}
}

func TestClient_CancelSkipsEmpty(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Cancel(context.Background(), nil); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if called {
		t.Error("empty cancel must not hit the daemon")
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"forbidden", http.StatusForbidden, ErrPermissionDenied},
		{"server error", http.StatusInternalServerError, ErrUnavailable},
		{"bad gateway", http.StatusBadGateway, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).HasPermission(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_UnreachableDaemon(t *testing.T) {
	// Закрытый сервер: транспортная ошибка должна выглядеть как ErrUnavailable
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL).PendingAlerts(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
