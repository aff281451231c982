package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/butters-makana/payroll-backend-go/internal/domain/insurance"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// ========== Policies ==========

type insurancePolicyRepositoryImpl struct {
	db *database.DB
}

func NewInsurancePolicyRepository(db *database.DB) insurance.PolicyRepository {
	return &insurancePolicyRepositoryImpl{db: db}
}

const insurancePolicyColumns = `
	p.id, p.employee_id, p.insurer, p.policy_number, p.amount, p.status, p.start_date, p.end_date,
	p.notes, p.created_by, p.created_at, p.updated_at,
	e.full_name, e.employee_code, e.company
`

func scanInsurancePolicy(row pgx.Row) (insurance.Policy, error) {
	var p insurance.Policy
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Insurer, &p.PolicyNumber, &p.Amount, &p.Status, &p.StartDate, &p.EndDate,
		&p.Notes, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.EmployeeCode, &p.Company,
	)
	return p, err
}

// Create implements insurance.PolicyRepository.
func (r *insurancePolicyRepositoryImpl) Create(ctx context.Context, p insurance.Policy) (insurance.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			INSERT INTO insurance_policies (
				employee_id, insurer, policy_number, amount, status, start_date, end_date, notes, created_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)
		SELECT ` + insurancePolicyColumns + `
		FROM p
		JOIN employees e ON e.id = p.employee_id
	`

	created, err := scanInsurancePolicy(q.QueryRow(ctx, query,
		p.EmployeeID, p.Insurer, p.PolicyNumber, p.Amount, string(p.Status), p.StartDate, p.EndDate, p.Notes, p.CreatedBy,
	))
	if err != nil {
		if database.IsUniqueViolation(err, "insurance_policies_policy_number_key") {
			return insurance.Policy{}, insurance.ErrPolicyNumberExists
		}
		return insurance.Policy{}, database.Wrap("insert insurance policy", err)
	}
	return created, nil
}

// GetByID implements insurance.PolicyRepository.
func (r *insurancePolicyRepositoryImpl) GetByID(ctx context.Context, id int64) (insurance.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + insurancePolicyColumns + `
		FROM insurance_policies p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	found, err := scanInsurancePolicy(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return insurance.Policy{}, insurance.ErrPolicyNotFound
		}
		return insurance.Policy{}, database.Wrap("get insurance policy", err)
	}
	return found, nil
}

// Update implements insurance.PolicyRepository.
func (r *insurancePolicyRepositoryImpl) Update(ctx context.Context, p insurance.Policy) (insurance.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			UPDATE insurance_policies SET
				employee_id = $1, insurer = $2, policy_number = $3, amount = $4, status = $5,
				start_date = $6, end_date = $7, notes = $8, updated_at = NOW()
			WHERE id = $9
			RETURNING *
		)
		SELECT ` + insurancePolicyColumns + `
		FROM p
		JOIN employees e ON e.id = p.employee_id
	`

	updated, err := scanInsurancePolicy(q.QueryRow(ctx, query,
		p.EmployeeID, p.Insurer, p.PolicyNumber, p.Amount, string(p.Status), p.StartDate, p.EndDate, p.Notes, p.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return insurance.Policy{}, insurance.ErrPolicyNotFound
		}
		if database.IsUniqueViolation(err, "insurance_policies_policy_number_key") {
			return insurance.Policy{}, insurance.ErrPolicyNumberExists
		}
		return insurance.Policy{}, database.Wrap("update insurance policy", err)
	}
	return updated, nil
}

// Delete implements insurance.PolicyRepository. Payments cascade.
func (r *insurancePolicyRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM insurance_policies WHERE id = $1`, id)
	if err != nil {
		return database.Wrap("delete insurance policy", err)
	}
	if tag.RowsAffected() == 0 {
		return insurance.ErrPolicyNotFound
	}
	return nil
}

// List implements insurance.PolicyRepository.
func (r *insurancePolicyRepositoryImpl) List(ctx context.Context, filter insurance.Filter) ([]insurance.Policy, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	if filter.Company != nil {
		args = append(args, *filter.Company)
		conditions = append(conditions, fmt.Sprintf("e.company = $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if filter.Insurer != nil {
		args = append(args, "%"+*filter.Insurer+"%")
		conditions = append(conditions, fmt.Sprintf("p.insurer ILIKE $%d", len(args)))
	}

	query := `
		SELECT ` + insurancePolicyColumns + `
		FROM insurance_policies p
		JOIN employees e ON e.id = p.employee_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.full_name, p.start_date, p.id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list insurance policies", err)
	}
	defer rows.Close()

	policies := []insurance.Policy{}
	for rows.Next() {
		p, err := scanInsurancePolicy(rows)
		if err != nil {
			return nil, database.Wrap("scan insurance policy", err)
		}
		policies = append(policies, p)
	}

	if err = rows.Err(); err != nil {
		return nil, database.Wrap("list insurance policies", err)
	}

	return policies, nil
}

// ========== Payments ==========

type policyPaymentRepositoryImpl struct {
	db *database.DB
}

func NewPolicyPaymentRepository(db *database.DB) insurance.PaymentRepository {
	return &policyPaymentRepositoryImpl{db: db}
}

const policyPaymentColumns = `id, policy_id, month, amount, method, created_by, created_at`

func scanPolicyPayment(row pgx.Row) (insurance.Payment, error) {
	var p insurance.Payment
	err := row.Scan(&p.ID, &p.PolicyID, &p.Month, &p.Amount, &p.Method, &p.CreatedBy, &p.CreatedAt)
	return p, err
}

// Create implements insurance.PaymentRepository.
func (r *policyPaymentRepositoryImpl) Create(ctx context.Context, p insurance.Payment) (insurance.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO policy_payments (policy_id, month, amount, method, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + policyPaymentColumns

	created, err := scanPolicyPayment(q.QueryRow(ctx, query, p.PolicyID, p.Month, p.Amount, string(p.Method), p.CreatedBy))
	if err != nil {
		return insurance.Payment{}, database.Wrap("insert policy payment", err)
	}
	return created, nil
}

// ListByPolicy implements insurance.PaymentRepository.
func (r *policyPaymentRepositoryImpl) ListByPolicy(ctx context.Context, policyID int64) ([]insurance.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + policyPaymentColumns + ` FROM policy_payments WHERE policy_id = $1 ORDER BY month DESC, id DESC`

	rows, err := q.Query(ctx, query, policyID)
	if err != nil {
		return nil, database.Wrap("list policy payments", err)
	}
	defer rows.Close()

	payments := []insurance.Payment{}
	for rows.Next() {
		p, err := scanPolicyPayment(rows)
		if err != nil {
			return nil, database.Wrap("scan policy payment", err)
		}
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, database.Wrap("list policy payments", err)
	}

	return payments, nil
}

// Delete implements insurance.PaymentRepository.
func (r *policyPaymentRepositoryImpl) Delete(ctx context.Context, policyID, paymentID int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM policy_payments WHERE id = $1 AND policy_id = $2`, paymentID, policyID)
	if err != nil {
		return database.Wrap("delete policy payment", err)
	}
	if tag.RowsAffected() == 0 {
		return insurance.ErrPaymentNotFound
	}
	return nil
}
