package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AppendRows(t *testing.T) {
	var got appendPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		io.WriteString(w, "2 rows appended")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	require.True(t, client.Enabled())

	header := []string{"Date", "Vendor", "Description", "Debit Amount", "Credit Amount", "Balance"}
	rows := [][]string{
		{"2025-07-01", "Acme", "Invoice", "500", "", "1000"},
		{"2025-07-02", "Beta", "Refund", "", "200", "1200"},
	}

	result, err := client.AppendRows(context.Background(), "July 2025", header, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowsSent)
	assert.Equal(t, "2 rows appended", result.Response)

	assert.Equal(t, "July 2025", got.Period)
	assert.Equal(t, header, got.Header)
	assert.Equal(t, rows, got.Rows)
}

func TestClient_AppendRows_WebhookError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sheet locked", http.StatusConflict)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).AppendRows(context.Background(), "July 2025", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
}

func TestClient_Disabled(t *testing.T) {
	client := NewClient("", nil)
	assert.False(t, client.Enabled())

	result, err := client.AppendRows(context.Background(), "July 2025", nil, [][]string{{"x"}})
	require.NoError(t, err)
	assert.Zero(t, result.RowsSent)
}
