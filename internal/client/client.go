// Package client is the typed REST client the grid runs against.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"kpiroom/internal/model"
)

// Client talks to a kpiroom server.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Config client options
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// New builds a client. BaseURL is required.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
		log:     logger,
	}, nil
}

// SheetData fetches the month grid payload.
// GET /api/sheet-data?month=&room_id=
func (c *Client) SheetData(ctx context.Context, month, roomID string) (*model.SheetData, error) {
	q := url.Values{}
	q.Set("month", month)
	if roomID != "" {
		q.Set("room_id", roomID)
	}

	var data model.SheetData
	if err := c.do(ctx, http.MethodGet, "/api/sheet-data?"+q.Encode(), nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

type submitRequest struct {
	Date    string                  `json:"date"`
	Entries []model.FieldEntryInput `json:"entries"`
}

// SubmitEntries submits one date's field values.
// POST /api/field-entries
func (c *Client) SubmitEntries(ctx context.Context, date string, entries []model.FieldEntryInput) (*model.SubmitResult, error) {
	var result model.SubmitResult
	req := submitRequest{Date: date, Entries: entries}
	if err := c.do(ctx, http.MethodPost, "/api/field-entries", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, target any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("client: encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
			return fmt.Errorf("client: remote error %d: %s", resp.StatusCode, envelope.Error)
		}
		return fmt.Errorf("client: remote error %d", resp.StatusCode)
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}
