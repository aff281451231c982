package http

import (
	"log/slog"
	"net/http"

	"github.com/butters-makana/payroll-backend-go/internal/domain/recurring"
	"github.com/butters-makana/payroll-backend-go/internal/handler/http/response"
)

type RecurringDeductionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type recurringDeductionHandlerImpl struct {
	deductionService recurring.DeductionService
}

func NewRecurringDeductionHandler(deductionService recurring.DeductionService) RecurringDeductionHandler {
	return &recurringDeductionHandlerImpl{deductionService: deductionService}
}

// Create handles POST /recurring-deductions
func (h *recurringDeductionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeForm(r)
	if err != nil {
		slog.Error("CreateRecurringDeduction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.deductionService.Create(r.Context(), raw)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Recurring deduction created successfully", created)
}

// Get handles GET /recurring-deductions/{id}
func (h *recurringDeductionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid recurring deduction ID", nil)
		return
	}

	found, err := h.deductionService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// List handles GET /recurring-deductions?company=&employee_id=&frequency=&status=
func (h *recurringDeductionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := recurring.ListDeductionsRequest{
		Company:    q.Get("company"),
		EmployeeID: q.Get("employee_id"),
		Frequency:  q.Get("frequency"),
		Status:     q.Get("status"),
	}

	deductions, err := h.deductionService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, deductions)
}

// Update handles PUT|PATCH /recurring-deductions/{id}
func (h *recurringDeductionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid recurring deduction ID", nil)
		return
	}

	raw, err := decodeForm(r)
	if err != nil {
		slog.Error("UpdateRecurringDeduction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.deductionService.Update(r.Context(), id, raw)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Recurring deduction updated successfully", updated)
}

// Delete handles DELETE /recurring-deductions/{id}
func (h *recurringDeductionHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid recurring deduction ID", nil)
		return
	}

	if err := h.deductionService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Recurring deduction deleted successfully", nil)
}
