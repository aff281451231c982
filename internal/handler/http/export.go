package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/butters-makana/payroll-backend-go/internal/domain/report"
	"github.com/butters-makana/payroll-backend-go/internal/handler/http/response"
)

// ExportHandler records and lists exports rendered by clients.
type ExportHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type exportHandlerImpl struct {
	exportService report.ExportService
}

func NewExportHandler(exportService report.ExportService) ExportHandler {
	return &exportHandlerImpl{exportService: exportService}
}

// Record handles POST /exports
func (h *exportHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req report.CreateExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordExport decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.exportService.Record(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Export recorded successfully", created)
}

// Get handles GET /exports/{id}
func (h *exportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid export ID", nil)
		return
	}

	found, err := h.exportService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// List handles GET /exports?type=&format=&limit=
func (h *exportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.ListExportsRequest{
		Type:   q.Get("type"),
		Format: q.Get("format"),
		Limit:  q.Get("limit"),
	}

	exports, err := h.exportService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, exports)
}
