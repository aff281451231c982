package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/butters-makana/payroll-backend-go/internal/domain/maternity"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type maternityRecordRepositoryImpl struct {
	db *database.DB
}

func NewMaternityRecordRepository(db *database.DB) maternity.RecordRepository {
	return &maternityRecordRepositoryImpl{db: db}
}

const maternityRecordColumns = `
	m.id, m.employee_id, m.from_date, m.to_date, m.comments, m.created_by, m.created_at, m.updated_at,
	e.full_name, e.employee_code, e.company
`

func scanMaternityRecord(row pgx.Row) (maternity.Record, error) {
	var r maternity.Record
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.FromDate, &r.ToDate, &r.Comments, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.EmployeeCode, &r.Company,
	)
	return r, err
}

// Create implements maternity.RecordRepository.
func (m *maternityRecordRepositoryImpl) Create(ctx context.Context, r maternity.Record) (maternity.Record, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		WITH m AS (
			INSERT INTO maternity_records (employee_id, from_date, to_date, comments, created_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT ` + maternityRecordColumns + `
		FROM m
		JOIN employees e ON e.id = m.employee_id
	`

	created, err := scanMaternityRecord(q.QueryRow(ctx, query, r.EmployeeID, r.FromDate, r.ToDate, r.Comments, r.CreatedBy))
	if err != nil {
		return maternity.Record{}, database.Wrap("insert maternity record", err)
	}
	return created, nil
}

// GetByID implements maternity.RecordRepository.
func (m *maternityRecordRepositoryImpl) GetByID(ctx context.Context, id int64) (maternity.Record, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		SELECT ` + maternityRecordColumns + `
		FROM maternity_records m
		JOIN employees e ON e.id = m.employee_id
		WHERE m.id = $1
	`

	found, err := scanMaternityRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return maternity.Record{}, maternity.ErrRecordNotFound
		}
		return maternity.Record{}, database.Wrap("get maternity record", err)
	}
	return found, nil
}

// Update implements maternity.RecordRepository.
func (m *maternityRecordRepositoryImpl) Update(ctx context.Context, r maternity.Record) (maternity.Record, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		WITH m AS (
			UPDATE maternity_records SET
				employee_id = $1, from_date = $2, to_date = $3, comments = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING *
		)
		SELECT ` + maternityRecordColumns + `
		FROM m
		JOIN employees e ON e.id = m.employee_id
	`

	updated, err := scanMaternityRecord(q.QueryRow(ctx, query, r.EmployeeID, r.FromDate, r.ToDate, r.Comments, r.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return maternity.Record{}, maternity.ErrRecordNotFound
		}
		return maternity.Record{}, database.Wrap("update maternity record", err)
	}
	return updated, nil
}

// Delete implements maternity.RecordRepository.
func (m *maternityRecordRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, m.db)

	tag, err := q.Exec(ctx, `DELETE FROM maternity_records WHERE id = $1`, id)
	if err != nil {
		return database.Wrap("delete maternity record", err)
	}
	if tag.RowsAffected() == 0 {
		return maternity.ErrRecordNotFound
	}
	return nil
}

// List implements maternity.RecordRepository.
func (m *maternityRecordRepositoryImpl) List(ctx context.Context, filter maternity.Filter) ([]maternity.Record, error) {
	q := GetQuerier(ctx, m.db)

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
		conditions = append(conditions, fmt.Sprintf("m.employee_id = $%d", len(args)))
	}
	// A record matches a window when the two spans overlap.
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("m.to_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("m.from_date <= $%d", len(args)))
	}

	query := `
		SELECT ` + maternityRecordColumns + `
		FROM maternity_records m
		JOIN employees e ON e.id = m.employee_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY m.from_date DESC, m.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list maternity records", err)
	}
	defer rows.Close()

	records := []maternity.Record{}
	for rows.Next() {
		r, err := scanMaternityRecord(rows)
		if err != nil {
			return nil, database.Wrap("scan maternity record", err)
		}
		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, database.Wrap("list maternity records", err)
	}

	return records, nil
}
