package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRecordRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRecordRepository(db *database.DB) payroll.RecordRepository {
	return &payrollRecordRepositoryImpl{db: db}
}

const payrollRecordColumns = `
	r.id, r.employee_id, r.record_type, r.date, r.status, r.details, r.description, r.notes, r.document_image,
	r.amount, r.hours, r.rate, r.recurring, r.start_date, r.end_date, r.total_days, r.leave_type,
	r.deduction_type, r.bank_name, r.account_number, r.branch_code, r.account_type, r.reason,
	r.created_by, r.created_at, r.updated_at,
	e.full_name, e.employee_code, e.company
`

// payrollArchiveColumns lists the columns copied verbatim into the archive.
const payrollArchiveColumns = `
	id, employee_id, record_type, date, status, details, description, notes, document_image,
	amount, hours, rate, recurring, start_date, end_date, total_days, leave_type,
	deduction_type, bank_name, account_number, branch_code, account_type, reason,
	created_by, created_at, updated_at
`

func scanPayrollRecord(row pgx.Row) (payroll.Record, error) {
	var (
		r payroll.Record
		c payroll.Columns
	)
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Kind, &r.Date, &r.Status, &r.Details, &r.Description, &r.Notes, &r.DocumentImage,
		&c.Amount, &c.Hours, &c.Rate, &c.Recurring, &c.StartDate, &c.EndDate, &c.TotalDays, &c.LeaveType,
		&c.DeductionType, &c.BankName, &c.AccountNumber, &c.BranchCode, &c.AccountType, &c.Reason,
		&r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.EmployeeCode, &r.Company,
	)
	if err != nil {
		return payroll.Record{}, err
	}
	r.Payload = c.Payload(r.Kind)
	return r, nil
}

// payrollRecordArgs returns the writable columns of r in insert order.
func payrollRecordArgs(r payroll.Record) []any {
	c := payroll.Flatten(r.Payload)
	return []any{
		r.EmployeeID, string(r.Kind), r.Date, string(r.Status), r.Details, r.Description, r.Notes, r.DocumentImage,
		c.Amount, c.Hours, c.Rate, c.Recurring, c.StartDate, c.EndDate, c.TotalDays, c.LeaveType,
		c.DeductionType, c.BankName, c.AccountNumber, c.BranchCode, c.AccountType, c.Reason,
	}
}

// Create implements payroll.RecordRepository.
func (p *payrollRecordRepositoryImpl) Create(ctx context.Context, r payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		WITH r AS (
			INSERT INTO payroll_records (
				employee_id, record_type, date, status, details, description, notes, document_image,
				amount, hours, rate, recurring, start_date, end_date, total_days, leave_type,
				deduction_type, bank_name, account_number, branch_code, account_type, reason,
				created_by
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8,
				$9, $10, $11, $12, $13, $14, $15, $16,
				$17, $18, $19, $20, $21, $22,
				$23
			)
			RETURNING *
		)
		SELECT ` + payrollRecordColumns + `
		FROM r
		JOIN employees e ON e.id = r.employee_id
	`

	args := append(payrollRecordArgs(r), r.CreatedBy)
	created, err := scanPayrollRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		return payroll.Record{}, database.Wrap("insert payroll record", err)
	}
	return created, nil
}

// GetByID implements payroll.RecordRepository.
func (p *payrollRecordRepositoryImpl) GetByID(ctx context.Context, id int64) (payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`

	found, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, database.Wrap("get payroll record", err)
	}
	return found, nil
}

// Update implements payroll.RecordRepository.
func (p *payrollRecordRepositoryImpl) Update(ctx context.Context, r payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		WITH r AS (
			UPDATE payroll_records SET
				employee_id = $1, record_type = $2, date = $3, status = $4, details = $5,
				description = $6, notes = $7, document_image = $8,
				amount = $9, hours = $10, rate = $11, recurring = $12, start_date = $13,
				end_date = $14, total_days = $15, leave_type = $16,
				deduction_type = $17, bank_name = $18, account_number = $19, branch_code = $20,
				account_type = $21, reason = $22,
				updated_at = NOW()
			WHERE id = $23
			RETURNING *
		)
		SELECT ` + payrollRecordColumns + `
		FROM r
		JOIN employees e ON e.id = r.employee_id
	`

	args := append(payrollRecordArgs(r), r.ID)
	updated, err := scanPayrollRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, database.Wrap("update payroll record", err)
	}
	return updated, nil
}

// Delete implements payroll.RecordRepository.
func (p *payrollRecordRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, p.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id)
	if err != nil {
		return database.Wrap("delete payroll record", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}
	return nil
}

// List implements payroll.RecordRepository.
func (p *payrollRecordRepositoryImpl) List(ctx context.Context, filter payroll.RecordFilter) ([]payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	var (
		conditions []string
		args       []any
	)
	addCondition := func(format string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if filter.Company != nil {
		addCondition("e.company = $%d", *filter.Company)
	}
	if filter.StartDate != nil {
		addCondition("r.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("r.date <= $%d", *filter.EndDate)
	}
	if len(filter.Kinds) > 0 {
		addCondition("r.record_type = ANY($%d)", kindNames(filter.Kinds))
	}
	if filter.EmployeeID != nil {
		addCondition("r.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.Status != nil {
		addCondition("r.status = $%d", string(*filter.Status))
	}

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records r
		JOIN employees e ON e.id = r.employee_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY r.date, r.id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list payroll records", err)
	}
	defer rows.Close()

	records := []payroll.Record{}
	for rows.Next() {
		r, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, database.Wrap("scan payroll record", err)
		}
		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, database.Wrap("list payroll records", err)
	}

	return records, nil
}

// Archive implements payroll.RecordRepository. The move is a single statement,
// so a failure leaves both tables untouched.
func (p *payrollRecordRepositoryImpl) Archive(ctx context.Context, kinds []payroll.Kind, archivedBy *int64) (int64, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		WITH moved AS (
			DELETE FROM payroll_records
			WHERE record_type = ANY($1)
			RETURNING ` + payrollArchiveColumns + `
		)
		INSERT INTO payroll_records_archive (` + payrollArchiveColumns + `, archived_by)
		SELECT ` + payrollArchiveColumns + `, $2::BIGINT FROM moved
	`

	tag, err := q.Exec(ctx, query, kindNames(kinds), archivedBy)
	if err != nil {
		return 0, database.Wrap("archive payroll records", err)
	}
	return tag.RowsAffected(), nil
}

func kindNames(kinds []payroll.Kind) []string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}
	return names
}
