package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gargnikhil/statement-extractor/internal/domain/statement"
	"github.com/gargnikhil/statement-extractor/internal/sheets"
)

type fakePage struct {
	text   string
	tables []statement.Table
}

func (p fakePage) Text() string              { return p.text }
func (p fakePage) Tables() []statement.Table { return p.tables }

type fakeDocument struct {
	pages  []statement.Page
	closed bool
}

func (d *fakeDocument) Pages() []statement.Page { return d.pages }
func (d *fakeDocument) Close() error            { d.closed = true; return nil }

func openerFor(doc *fakeDocument) OpenDocumentFunc {
	return func(string) (Document, error) { return doc, nil }
}

func statementDoc() *fakeDocument {
	return &fakeDocument{pages: []statement.Page{
		fakePage{
			text: "Statement Period: 01/07/2025 - 31/07/2025",
			tables: []statement.Table{
				{
					{"01/07/2025", "Acme", "Invoice", "500D", "", "1000"},
					{"02/07/2025", "Employer", "Salary", "", "2000C", "3000"},
				},
			},
		},
	}}
}

func TestService_ProcessFile(t *testing.T) {
	doc := statementDoc()
	svc := NewService(openerFor(doc), nil, nil)

	result, err := svc.ProcessFile(context.Background(), "statement.pdf")
	require.NoError(t, err)
	assert.True(t, doc.closed, "document is closed on success")

	assert.Equal(t, "July 2025", result.Period)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "Acme", result.Transactions[0].Vendor)

	require.Contains(t, result.ByVendor, "Employer")
	assert.Len(t, result.ByVendor["Employer"].Credit, 1)
	assert.Equal(t, "500", result.MonthlyTotals["2025-07"].Debit.String())
	assert.Equal(t, "2000", result.MonthlyTotals["2025-07"].Credit.String())
	assert.Nil(t, result.Sheet, "no webhook configured")
}

func TestService_ProcessFile_NoTransactions(t *testing.T) {
	doc := &fakeDocument{pages: []statement.Page{fakePage{text: "cover letter only"}}}
	svc := NewService(openerFor(doc), nil, nil)

	_, err := svc.ProcessFile(context.Background(), "statement.pdf")
	require.ErrorIs(t, err, ErrNoTransactions)
	assert.True(t, doc.closed, "document is closed on the error path too")
}

func TestService_ProcessFile_OpenFailure(t *testing.T) {
	open := func(string) (Document, error) { return nil, errors.New("not a PDF") }
	svc := NewService(open, nil, nil)

	_, err := svc.ProcessFile(context.Background(), "statement.pdf")
	require.ErrorIs(t, err, ErrUnreadable)
	assert.NotErrorIs(t, err, ErrNoTransactions)
}

func TestService_ProcessFile_UnknownPeriod(t *testing.T) {
	doc := &fakeDocument{pages: []statement.Page{
		fakePage{tables: []statement.Table{{{"01/07/2025", "Acme", "Invoice", "500D"}}}},
	}}
	svc := NewService(openerFor(doc), nil, nil)

	result, err := svc.ProcessFile(context.Background(), "statement.pdf")
	require.NoError(t, err)
	assert.Equal(t, UnknownPeriod, result.Period)
}

func TestService_ProcessFile_DeliversToSheet(t *testing.T) {
	var payload struct {
		Period string     `json:"period"`
		Rows   [][]string `json:"rows"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	svc := NewService(openerFor(statementDoc()), sheets.NewClient(srv.URL, nil), nil)

	result, err := svc.ProcessFile(context.Background(), "statement.pdf")
	require.NoError(t, err)
	require.NotNil(t, result.Sheet)
	assert.Equal(t, 2, result.Sheet.RowsSent)
	assert.Equal(t, "July 2025", payload.Period)
	require.Len(t, payload.Rows, 2)
	assert.Equal(t, []string{"2025-07-01", "Acme", "Invoice", "500", "", "1000"}, payload.Rows[0])
}

func TestService_ProcessFile_SheetFailureIsNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewService(openerFor(statementDoc()), sheets.NewClient(srv.URL, nil), nil)

	result, err := svc.ProcessFile(context.Background(), "statement.pdf")
	require.NoError(t, err)
	assert.Nil(t, result.Sheet)
}

func TestService_ProcessFile_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.csv")
	csv := "date,vendor,description,debit,credit,balance\n" +
		"01/07/2025,Acme,Invoice,500,,1000\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	svc := NewService(nil, nil, nil)
	result, err := svc.ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "July 2025", result.Period)
	require.Len(t, result.Transactions, 1)
	require.NotNil(t, result.Transactions[0].DebitAmount)
	assert.Equal(t, "500", result.Transactions[0].DebitAmount.String())
}

func TestService_ProcessFile_CSVEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,vendor,description,amount\n"), 0o600))

	svc := NewService(nil, nil, nil)
	_, err := svc.ProcessFile(context.Background(), path)
	require.ErrorIs(t, err, ErrNoTransactions)
}
