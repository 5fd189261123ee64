package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shaiso/Alerta/internal/domain"
)

// Client — HTTP-реализация Gateway поверх хостового alert-демона.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент шлюза.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// permissionResponse — ответ демона на запросы о разрешении.
type permissionResponse struct {
	Granted bool `json:"granted"`
}

// submitRequest — тело запроса на взведение алерта.
type submitRequest struct {
	FireAt  time.Time           `json:"fire_at"`
	Payload domain.AlertPayload `json:"payload"`
}

// cancelRequest — тело запроса на снятие алертов.
type cancelRequest struct {
	IDs []domain.AlertID `json:"ids"`
}

// HasPermission проверяет разрешение на доставку алертов.
func (c *Client) HasPermission(ctx context.Context) (bool, error) {
	var resp permissionResponse
	if err := c.do(ctx, http.MethodGet, "/v1/permission", nil, &resp); err != nil {
		return false, err
	}
	return resp.Granted, nil
}

// RequestPermission запрашивает разрешение у пользователя.
func (c *Client) RequestPermission(ctx context.Context) (bool, error) {
	var resp permissionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/permission/request", nil, &resp); err != nil {
		return false, err
	}
	return resp.Granted, nil
}

// PendingAlerts возвращает все взведённые алерты демона.
func (c *Client) PendingAlerts(ctx context.Context) ([]domain.PendingAlert, error) {
	var alerts []domain.PendingAlert
	if err := c.do(ctx, http.MethodGet, "/v1/alerts/pending", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// Submit взводит алерт. PUT по идентификатору — идемпотентный upsert:
// повторный Submit с тем же идентификатором заменяет алерт.
func (c *Client) Submit(ctx context.Context, id domain.AlertID, fireAt time.Time, payload domain.AlertPayload) error {
	path := "/v1/alerts/" + url.PathEscape(string(id))
	return c.do(ctx, http.MethodPut, path, submitRequest{FireAt: fireAt, Payload: payload}, nil)
}

// Cancel снимает алерты. Неизвестные идентификаторы демон игнорирует.
func (c *Client) Cancel(ctx context.Context, ids []domain.AlertID) error {
	if len(ids) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/v1/alerts/cancel", cancelRequest{IDs: ids}, nil)
}

// do выполняет запрос к демону и декодирует ответ в out (если не nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return ErrPermissionDenied
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("gateway request %s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
