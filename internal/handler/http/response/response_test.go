package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/butters-makana/payroll-backend-go/internal/domain/auth"
	"github.com/butters-makana/payroll-backend-go/internal/domain/employee"
	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/domain/user"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestList_NilBecomesEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	List[string](rec, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"meta":{"count":0}}`, rec.Body.String())
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "amount", Message: "amount is required"}}, http.StatusUnprocessableEntity, CodeValidation},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized},
		{"revoked refresh", fmt.Errorf("refresh: %w", auth.ErrRefreshTokenRevoked), http.StatusUnauthorized, CodeUnauthorized},
		{"inactive user", user.ErrUserInactive, http.StatusForbidden, CodeForbidden},
		{"missing record", payroll.ErrRecordNotFound, http.StatusNotFound, CodeNotFound},
		{"duplicate code", employee.ErrEmployeeCodeExists, http.StatusConflict, CodeConflict},
		{
			"foreign key",
			database.Wrap("insert payroll record", &pgconn.PgError{Code: "23503", ConstraintName: "payroll_records_employee_id_fkey"}),
			http.StatusConflict, CodeConflict,
		},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "end_date", Message: "end_date must not be before start_date"}})

	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, map[string]string{"end_date": "end_date must not be before start_date"}, resp.Error.Details)
}
