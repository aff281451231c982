package http

import (
	"log/slog"
	"net/http"

	"github.com/butters-makana/payroll-backend-go/internal/domain/insurance"
	"github.com/butters-makana/payroll-backend-go/internal/handler/http/response"
)

type InsuranceHandler interface {
	// Policies
	CreatePolicy(w http.ResponseWriter, r *http.Request)
	GetPolicy(w http.ResponseWriter, r *http.Request)
	ListPolicies(w http.ResponseWriter, r *http.Request)
	UpdatePolicy(w http.ResponseWriter, r *http.Request)
	DeletePolicy(w http.ResponseWriter, r *http.Request)

	// Payments
	AddPayment(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	DeletePayment(w http.ResponseWriter, r *http.Request)
}

type insuranceHandlerImpl struct {
	policyService insurance.PolicyService
}

func NewInsuranceHandler(policyService insurance.PolicyService) InsuranceHandler {
	return &insuranceHandlerImpl{policyService: policyService}
}

// ========== Policies ==========

// CreatePolicy handles POST /insurance-policies
func (h *insuranceHandlerImpl) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeForm(r)
	if err != nil {
		slog.Error("CreatePolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.policyService.Create(r.Context(), raw)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Insurance policy created successfully", created)
}

// GetPolicy handles GET /insurance-policies/{id}
func (h *insuranceHandlerImpl) GetPolicy(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid policy ID", nil)
		return
	}

	found, err := h.policyService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// ListPolicies handles GET /insurance-policies?company=&employee_id=&status=&insurer=
func (h *insuranceHandlerImpl) ListPolicies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := insurance.ListPoliciesRequest{
		Company:    q.Get("company"),
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
		Insurer:    q.Get("insurer"),
	}

	policies, err := h.policyService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, policies)
}

// UpdatePolicy handles PUT|PATCH /insurance-policies/{id}
func (h *insuranceHandlerImpl) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid policy ID", nil)
		return
	}

	raw, err := decodeForm(r)
	if err != nil {
		slog.Error("UpdatePolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.policyService.Update(r.Context(), id, raw)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Insurance policy updated successfully", updated)
}

// DeletePolicy handles DELETE /insurance-policies/{id}
func (h *insuranceHandlerImpl) DeletePolicy(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid policy ID", nil)
		return
	}

	if err := h.policyService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Insurance policy deleted successfully", nil)
}

// ========== Payments ==========

// AddPayment handles POST /insurance-policies/{id}/payments
func (h *insuranceHandlerImpl) AddPayment(w http.ResponseWriter, r *http.Request) {
	policyID, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid policy ID", nil)
		return
	}

	raw, err := decodeForm(r)
	if err != nil {
		slog.Error("AddPayment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	payment, err := h.policyService.AddPayment(r.Context(), policyID, raw)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payment recorded successfully", payment)
}

// ListPayments handles GET /insurance-policies/{id}/payments
func (h *insuranceHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	policyID, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid policy ID", nil)
		return
	}

	payments, err := h.policyService.ListPayments(r.Context(), policyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, payments)
}

// DeletePayment handles DELETE /insurance-policies/{id}/payments/{paymentId}
func (h *insuranceHandlerImpl) DeletePayment(w http.ResponseWriter, r *http.Request) {
	policyID, err := parseIDParam(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid policy ID", nil)
		return
	}
	paymentID, err := parseIDParam(r, "paymentId")
	if err != nil {
		response.BadRequest(w, "Invalid payment ID", nil)
		return
	}

	if err := h.policyService.DeletePayment(r.Context(), policyID, paymentID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payment deleted successfully", nil)
}
