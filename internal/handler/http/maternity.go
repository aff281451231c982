package http

import (
	"log/slog"
	"net/http"

	"github.com/butters-makana/payroll-backend-go/internal/domain/maternity"
	"github.com/butters-makana/payroll-backend-go/internal/handler/http/response"
)

type MaternityHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type maternityHandlerImpl struct {
	recordService maternity.RecordService
}

func NewMaternityHandler(recordService maternity.RecordService) MaternityHandler {
	return &maternityHandlerImpl{recordService: recordService}
}

// Create handles POST /maternity-records
func (h *maternityHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeForm(r)
	if err != nil {
		slog.Error("CreateMaternityRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.recordService.Create(r.Context(), raw)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Maternity record created successfully", created)
}

// Get handles GET /maternity-records/{id}
func (h *maternityHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid maternity record ID", nil)
		return
	}

	found, err := h.recordService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// List handles GET /maternity-records?company=&employee_id=&start_date=&end_date=
func (h *maternityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := maternity.ListRecordsRequest{
		Company:    q.Get("company"),
		EmployeeID: q.Get("employee_id"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
	}

	records, err := h.recordService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, records)
}

// Update handles PUT|PATCH /maternity-records/{id}
func (h *maternityHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid maternity record ID", nil)
		return
	}

	raw, err := decodeForm(r)
	if err != nil {
		slog.Error("UpdateMaternityRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.recordService.Update(r.Context(), id, raw)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Maternity record updated successfully", updated)
}

// Delete handles DELETE /maternity-records/{id}
func (h *maternityHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid maternity record ID", nil)
		return
	}

	if err := h.recordService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Maternity record deleted successfully", nil)
}
