package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RecordHandler interface {
	// Per-kind lifecycle, /records/{kind}
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListKind(w http.ResponseWriter, r *http.Request)

	// Cross-kind views
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Archive(w http.ResponseWriter, r *http.Request)
}

type recordHandlerImpl struct {
	recordService payroll.RecordService
}

func NewRecordHandler(recordService payroll.RecordService) RecordHandler {
	return &recordHandlerImpl{recordService: recordService}
}

func kindParam(r *http.Request) (payroll.Kind, error) {
	kind, ok := payroll.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		return "", payroll.ErrUnknownKind
	}
	return kind, nil
}

func listRecordsRequest(r *http.Request) payroll.ListRecordsRequest {
	q := r.URL.Query()
	return payroll.ListRecordsRequest{
		Company:    q.Get("company"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		RecordType: q.Get("record_type"),
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
	}
}

// Create handles POST /records/{kind}
func (h *recordHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	raw, err := decodeForm(r)
	if err != nil {
		slog.Error("CreateRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.recordService.Create(r.Context(), kind, raw)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, string(kind)+" record created successfully", created)
}

// Get handles GET /records/{kind}/{id}
func (h *recordHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid record ID", nil)
		return
	}

	found, err := h.recordService.Get(r.Context(), kind, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Update handles PUT|PATCH /records/{kind}/{id}
func (h *recordHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid record ID", nil)
		return
	}

	raw, err := decodeForm(r)
	if err != nil {
		slog.Error("UpdateRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.recordService.Update(r.Context(), kind, id, raw)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, string(kind)+" record updated successfully", updated)
}

// Delete handles DELETE /records/{kind}/{id}
func (h *recordHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid record ID", nil)
		return
	}

	if err := h.recordService.Delete(r.Context(), kind, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, string(kind)+" record deleted successfully", nil)
}

// ListKind handles GET /records/{kind}
func (h *recordHandlerImpl) ListKind(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := listRecordsRequest(r)
	req.RecordType = string(kind)

	records, err := h.recordService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, records)
}

// List handles GET /records
func (h *recordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.recordService.List(r.Context(), listRecordsRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, records)
}

// Summary handles GET /records/summary
func (h *recordHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.recordService.Summary(r.Context(), listRecordsRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// Archive handles POST /records/archive
func (h *recordHandlerImpl) Archive(w http.ResponseWriter, r *http.Request) {
	var req payroll.ArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ArchiveRecords decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.recordService.Archive(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Records archived successfully", result)
}
