// Package sheets delivers extracted transaction tables to a spreadsheet
// webhook. The webhook URL is injected, never read from a global, so tests
// and deployments point the client wherever they need.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// appendPayload is the wire shape the webhook expects: the period labels the
// target sheet tab, header and rows carry the fixed 6-column table.
type appendPayload struct {
	Period string     `json:"period"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// AppendResult reports one delivery: how many rows went out and the raw
// response body, which the webhook uses for status text.
type AppendResult struct {
	RowsSent int    `json:"rows_sent"`
	Response string `json:"response"`
}

// Client posts transaction tables to the configured webhook.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a client for the given webhook URL. An empty URL is valid
// and turns delivery into a no-op, for deployments without a spreadsheet.
func NewClient(url string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Enabled reports whether a webhook URL is configured.
func (c *Client) Enabled() bool { return c.url != "" }

// AppendRows sends the table under the given period label. Rows may be empty;
// the webhook still learns the period exists.
func (c *Client) AppendRows(ctx context.Context, period string, header []string, rows [][]string) (*AppendResult, error) {
	if !c.Enabled() {
		return &AppendResult{}, nil
	}

	body, err := json.Marshal(appendPayload{Period: period, Header: header, Rows: rows})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sheet payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach sheet webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sheet webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	c.logger.Info("appended rows to sheet",
		slog.String("period", period),
		slog.Int("rows", len(rows)),
	)
	return &AppendResult{RowsSent: len(rows), Response: string(respBody)}, nil
}
