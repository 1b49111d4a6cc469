// Package handler exposes statement processing over HTTP.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gargnikhil/statement-extractor/internal/api/middleware"
	"github.com/gargnikhil/statement-extractor/internal/domain/statement/service"
	"github.com/gargnikhil/statement-extractor/internal/export"
	"github.com/gargnikhil/statement-extractor/pkg/storage"
)

// maxUploadBytes bounds the multipart form held in memory before spilling
// to disk.
const maxUploadBytes = 32 << 20

// StatementHandler serves the statement processing endpoints.
type StatementHandler struct {
	svc     *service.Service
	staging *storage.Staging
	logger  *slog.Logger
}

// NewStatementHandler creates the handler. Uploads are staged through the
// given store and removed when the request finishes.
func NewStatementHandler(svc *service.Service, staging *storage.Staging, logger *slog.Logger) *StatementHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatementHandler{svc: svc, staging: staging, logger: logger}
}

// Register mounts the statement routes on the mux.
func (h *StatementHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /process", h.Process)
	mux.HandleFunc("POST /export", h.Export)
	mux.HandleFunc("GET /healthz", h.Health)
}

// Process accepts a multipart statement upload and returns the extracted
// transactions, vendor breakdown, and delivery status as JSON.
func (h *StatementHandler) Process(w http.ResponseWriter, r *http.Request) {
	path, cleanup, ok := h.stageUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	result, err := h.svc.ProcessFile(r.Context(), path)
	if err != nil {
		h.writeProcessError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, result)
}

// Export processes an upload and streams the transactions back as an XLSX
// workbook with one sheet per statement period.
func (h *StatementHandler) Export(w http.ResponseWriter, r *http.Request) {
	path, cleanup, ok := h.stageUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	result, err := h.svc.ProcessFile(r.Context(), path)
	if err != nil {
		h.writeProcessError(w, err)
		return
	}

	wb := export.NewWorkbook()
	defer wb.Close()
	if err := wb.AddSheet(result.Period, result.Transactions); err != nil {
		h.logger.Error("failed to build workbook", slog.Any("error", err))
		middleware.WriteError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	if _, err := wb.WriteTo(w); err != nil {
		h.logger.Error("failed to stream workbook", slog.Any("error", err))
	}
}

// Health reports liveness.
func (h *StatementHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// stageUpload pulls the "file" part out of the multipart form and stages it
// on disk. The returned cleanup removes the staged file and must run on
// every path after ok.
func (h *StatementHandler) stageUpload(w http.ResponseWriter, r *http.Request) (string, func(), bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "missing file field")
		return "", nil, false
	}
	defer file.Close()

	staged, err := h.staging.Stage(header.Filename, file)
	if err != nil {
		h.logger.Error("failed to stage upload", slog.Any("error", err))
		middleware.WriteError(w, http.StatusInternalServerError, "failed to stage upload")
		return "", nil, false
	}

	cleanup := func() {
		if err := h.staging.Remove(staged); err != nil {
			h.logger.Warn("failed to remove staged upload", slog.Any("error", err))
		}
	}
	return staged.Path, cleanup, true
}

// writeProcessError maps the service error taxonomy onto HTTP statuses: a
// statement we cannot read or that holds no transactions is a client-side
// 422, everything else is a 500.
func (h *StatementHandler) writeProcessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoTransactions):
		middleware.WriteError(w, http.StatusUnprocessableEntity, "no transactions found")
	case errors.Is(err, service.ErrUnreadable):
		middleware.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("statement processing failed", slog.Any("error", err))
		middleware.WriteError(w, http.StatusInternalServerError, "statement processing failed")
	}
}
