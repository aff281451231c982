package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/butters-makana/payroll-backend-go/internal/domain/recurring"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type recurringDeductionRepositoryImpl struct {
	db *database.DB
}

func NewRecurringDeductionRepository(db *database.DB) recurring.DeductionRepository {
	return &recurringDeductionRepositoryImpl{db: db}
}

const recurringDeductionColumns = `
	d.id, d.employee_id, d.name, d.amount, d.start_date, d.end_date, d.frequency, d.status,
	d.reference_number, d.document_image, d.notes, d.created_by, d.created_at, d.updated_at,
	e.full_name, e.employee_code, e.company
`

func scanRecurringDeduction(row pgx.Row) (recurring.Deduction, error) {
	var d recurring.Deduction
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.Name, &d.Amount, &d.StartDate, &d.EndDate, &d.Frequency, &d.Status,
		&d.ReferenceNumber, &d.DocumentImage, &d.Notes, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
		&d.EmployeeName, &d.EmployeeCode, &d.Company,
	)
	return d, err
}

// Create implements recurring.DeductionRepository.
func (r *recurringDeductionRepositoryImpl) Create(ctx context.Context, d recurring.Deduction) (recurring.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH d AS (
			INSERT INTO recurring_deductions (
				employee_id, name, amount, start_date, end_date, frequency, status,
				document_image, notes, created_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING *
		)
		SELECT ` + recurringDeductionColumns + `
		FROM d
		JOIN employees e ON e.id = d.employee_id
	`

	created, err := scanRecurringDeduction(q.QueryRow(ctx, query,
		d.EmployeeID, d.Name, d.Amount, d.StartDate, d.EndDate, string(d.Frequency), string(d.Status),
		d.DocumentImage, d.Notes, d.CreatedBy,
	))
	if err != nil {
		return recurring.Deduction{}, database.Wrap("insert recurring deduction", err)
	}
	return created, nil
}

// SetReferenceNumber implements recurring.DeductionRepository.
func (r *recurringDeductionRepositoryImpl) SetReferenceNumber(ctx context.Context, id int64, reference string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE recurring_deductions SET reference_number = $1 WHERE id = $2`, reference, id)
	if err != nil {
		return database.Wrap("set reference number", err)
	}
	if tag.RowsAffected() == 0 {
		return recurring.ErrDeductionNotFound
	}
	return nil
}

// GetByID implements recurring.DeductionRepository.
func (r *recurringDeductionRepositoryImpl) GetByID(ctx context.Context, id int64) (recurring.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recurringDeductionColumns + `
		FROM recurring_deductions d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.id = $1
	`

	found, err := scanRecurringDeduction(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recurring.Deduction{}, recurring.ErrDeductionNotFound
		}
		return recurring.Deduction{}, database.Wrap("get recurring deduction", err)
	}
	return found, nil
}

// Update implements recurring.DeductionRepository.
func (r *recurringDeductionRepositoryImpl) Update(ctx context.Context, d recurring.Deduction) (recurring.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH d AS (
			UPDATE recurring_deductions SET
				employee_id = $1, name = $2, amount = $3, start_date = $4, end_date = $5,
				frequency = $6, status = $7, document_image = $8, notes = $9, updated_at = NOW()
			WHERE id = $10
			RETURNING *
		)
		SELECT ` + recurringDeductionColumns + `
		FROM d
		JOIN employees e ON e.id = d.employee_id
	`

	updated, err := scanRecurringDeduction(q.QueryRow(ctx, query,
		d.EmployeeID, d.Name, d.Amount, d.StartDate, d.EndDate,
		string(d.Frequency), string(d.Status), d.DocumentImage, d.Notes, d.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recurring.Deduction{}, recurring.ErrDeductionNotFound
		}
		return recurring.Deduction{}, database.Wrap("update recurring deduction", err)
	}
	return updated, nil
}

// Delete implements recurring.DeductionRepository.
func (r *recurringDeductionRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM recurring_deductions WHERE id = $1`, id)
	if err != nil {
		return database.Wrap("delete recurring deduction", err)
	}
	if tag.RowsAffected() == 0 {
		return recurring.ErrDeductionNotFound
	}
	return nil
}

// List implements recurring.DeductionRepository.
func (r *recurringDeductionRepositoryImpl) List(ctx context.Context, filter recurring.Filter) ([]recurring.Deduction, error) {
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
		conditions = append(conditions, fmt.Sprintf("d.employee_id = $%d", len(args)))
	}
	if filter.Frequency != nil {
		args = append(args, string(*filter.Frequency))
		conditions = append(conditions, fmt.Sprintf("d.frequency = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("d.status = $%d", len(args)))
	}

	query := `
		SELECT ` + recurringDeductionColumns + `
		FROM recurring_deductions d
		JOIN employees e ON e.id = d.employee_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY d.start_date, d.id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list recurring deductions", err)
	}
	defer rows.Close()

	deductions := []recurring.Deduction{}
	for rows.Next() {
		d, err := scanRecurringDeduction(rows)
		if err != nil {
			return nil, database.Wrap("scan recurring deduction", err)
		}
		deductions = append(deductions, d)
	}

	if err = rows.Err(); err != nil {
		return nil, database.Wrap("list recurring deductions", err)
	}

	return deductions, nil
}
