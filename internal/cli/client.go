package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// SummaryResponse — сводка пасса сверки из API.
type SummaryResponse struct {
	Trigger      string `json:"trigger"`
	Admitted     int    `json:"admitted"`
	Scheduled    int    `json:"scheduled"`
	Cancelled    int    `json:"cancelled"`
	Deferred     int    `json:"deferred"`
	Failed       int    `json:"failed"`
	SkippedLists int    `json:"skipped_lists"`
}

// PendingAlertResponse — взведённый алерт из API.
type PendingAlertResponse struct {
	ID     string `json:"id"`
	FireAt string `json:"fire_at,omitempty"`
	Owned  bool   `json:"owned"`
	ItemID string `json:"item_id,omitempty"`
}

// PermissionResponse — статус разрешения на показ алертов.
type PermissionResponse struct {
	Granted bool `json:"granted"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Alerta API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Passes ---

// Reconcile запускает полный пасс сверки.
func (c *Client) Reconcile() (*SummaryResponse, error) {
	var summary SummaryResponse
	err := c.post("/api/v1/reconcile", nil, &summary)
	return &summary, err
}

// ReconcileList запускает пасс сверки по одному списку.
func (c *Client) ReconcileList(listID string) (*SummaryResponse, error) {
	var summary SummaryResponse
	err := c.post("/api/v1/lists/"+listID+"/reconcile", nil, &summary)
	return &summary, err
}

// --- Alerts ---

// ListPending возвращает очередь взведённых алертов хоста.
func (c *Client) ListPending() ([]PendingAlertResponse, error) {
	var pending []PendingAlertResponse
	err := c.list("/api/v1/alerts/pending", &pending)
	return pending, err
}

// CompleteItem отмечает элемент выполненным.
func (c *Client) CompleteItem(listID, itemID string) error {
	return c.post("/api/v1/lists/"+listID+"/items/"+itemID+"/complete", nil, nil)
}

// --- Permission ---

// GetPermission возвращает статус разрешения на показ алертов.
func (c *Client) GetPermission() (*PermissionResponse, error) {
	var perm PermissionResponse
	err := c.get("/api/v1/permission", &perm)
	return &perm, err
}

// RequestPermission запрашивает разрешение на показ алертов.
func (c *Client) RequestPermission() (*PermissionResponse, error) {
	var perm PermissionResponse
	err := c.post("/api/v1/permission/request", nil, &perm)
	return &perm, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) list(path string, result any) error {
	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
