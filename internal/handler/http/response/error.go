package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/butters-makana/payroll-backend-go/internal/domain/auth"
	"github.com/butters-makana/payroll-backend-go/internal/domain/employee"
	"github.com/butters-makana/payroll-backend-go/internal/domain/insurance"
	"github.com/butters-makana/payroll-backend-go/internal/domain/maternity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/domain/recurring"
	"github.com/butters-makana/payroll-backend-go/internal/domain/report"
	"github.com/butters-makana/payroll-backend-go/internal/domain/schema"
	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, jwt.ErrInvalidTokenType):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, jwt.ErrNoActor):
		Unauthorized(w, "Authentication required")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is deactivated")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCannotDemoteSelf), errors.Is(err, user.ErrCannotDeactivateSelf):
		Forbidden(w, err.Error())

	// Schema errors
	case errors.Is(err, schema.ErrSchemaNotFound):
		NotFound(w, "Form schema not found")

	// Payroll record errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Record not found")
	case errors.Is(err, payroll.ErrUnknownKind):
		NotFound(w, "Unknown record type")
	case errors.Is(err, payroll.ErrNoKindsSelected):
		BadRequest(w, err.Error(), nil)

	// Recurring deduction errors
	case errors.Is(err, recurring.ErrDeductionNotFound):
		NotFound(w, "Recurring deduction not found")

	// Insurance errors
	case errors.Is(err, insurance.ErrPolicyNotFound):
		NotFound(w, "Insurance policy not found")
	case errors.Is(err, insurance.ErrPaymentNotFound):
		NotFound(w, "Policy payment not found")
	case errors.Is(err, insurance.ErrPolicyNumberExists):
		Conflict(w, "Policy number already exists for this insurer")

	// Maternity errors
	case errors.Is(err, maternity.ErrRecordNotFound):
		NotFound(w, "Maternity record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeTerminated):
		Conflict(w, "Employee is already terminated")

	// Export errors
	case errors.Is(err, report.ErrExportNotFound):
		NotFound(w, "Export not found")

	// Store rejected the write
	case database.IsConstraintViolation(err):
		Conflict(w, constraintMessage(err))

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func constraintMessage(err error) string {
	var pe *database.PersistenceError
	if errors.As(err, &pe) && pe.ConstraintName != "" {
		return "Request conflicts with existing data (" + pe.ConstraintName + ")"
	}
	return "Request conflicts with existing data"
}
