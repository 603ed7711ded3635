package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	productionBaseURL = "https://api.flex-api.com/api/v1"
	sandboxBaseURL    = "https://sandbox.flex-api.com/api/v1"
)

// Config holds the credentials issued by the provider. TestMode selects the
// sandbox environment.
type Config struct {
	PublicAPIKey  string
	PrivateAPIKey string
	TestMode      bool
}

type httpClient struct {
	cfg     Config
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient builds the provider client. Both API keys are required.
func NewHTTPClient(cfg Config, logger *zap.Logger) (Client, error) {
	if cfg.PublicAPIKey == "" || cfg.PrivateAPIKey == "" {
		return nil, errors.New("missing provider credentials")
	}

	baseURL := productionBaseURL
	if cfg.TestMode {
		baseURL = sandboxBaseURL
	}

	return &httpClient{
		cfg:     cfg,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}, nil
}

func (h *httpClient) Authorize(ctx context.Context, checkoutToken string) (*Transaction, error) {
	var txn Transaction
	body := map[string]any{"transaction_id": checkoutToken}
	if err := h.do(ctx, http.MethodPost, "/transactions", body, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (h *httpClient) Capture(ctx context.Context, transactionID string) (*Event, error) {
	var event Event
	path := fmt.Sprintf("/transactions/%s/capture", transactionID)
	if err := h.do(ctx, http.MethodPost, path, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (h *httpClient) Void(ctx context.Context, transactionID string) (*Event, error) {
	var event Event
	path := fmt.Sprintf("/transactions/%s/void", transactionID)
	if err := h.do(ctx, http.MethodPost, path, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (h *httpClient) Refund(ctx context.Context, transactionID string, amount int64) (*Event, error) {
	var event Event
	path := fmt.Sprintf("/transactions/%s/refund", transactionID)
	body := map[string]any{"amount": amount}
	if err := h.do(ctx, http.MethodPost, path, body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (h *httpClient) ReadTransaction(ctx context.Context, checkoutToken string) (*Transaction, error) {
	var txn Transaction
	path := fmt.Sprintf("/transactions/%s", checkoutToken)
	if err := h.do(ctx, http.MethodGet, path, nil, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// do performs one provider call. Every failure mode comes back as a
// *RequestError so callers can treat the provider as a single error source.
func (h *httpClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(h.cfg.PublicAPIKey, h.cfg.PrivateAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		// Timeouts and transport failures fail closed.
		h.logger.Warn("provider request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &RequestError{Message: fmt.Sprintf("provider unreachable: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return h.requestError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (h *httpClient) requestError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var payload struct {
		Message string `json:"message"`
	}
	message := ""
	if err := json.Unmarshal(raw, &payload); err == nil {
		message = payload.Message
	}
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	if message == "" {
		message = fmt.Sprintf("provider returned status %d", resp.StatusCode)
	}

	h.logger.Warn("provider rejected request",
		zap.Int("status", resp.StatusCode),
		zap.String("message", message),
	)

	return &RequestError{
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}
