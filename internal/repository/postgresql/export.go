package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/butters-makana/payroll-backend-go/internal/domain/report"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type exportRepositoryImpl struct {
	db *database.DB
}

func NewExportRepository(db *database.DB) report.ExportRepository {
	return &exportRepositoryImpl{db: db}
}

const exportColumns = `
	x.id, x.type, x.format, x.company, x.start_date, x.end_date, x.record_count, x.file_location,
	x.created_by, x.created_at, u.full_name
`

func scanExport(row pgx.Row) (report.Export, error) {
	var e report.Export
	err := row.Scan(
		&e.ID, &e.Type, &e.Format, &e.Company, &e.StartDate, &e.EndDate, &e.RecordCount, &e.FileLocation,
		&e.CreatedBy, &e.CreatedAt, &e.CreatedByName,
	)
	return e, err
}

// Create implements report.ExportRepository.
func (r *exportRepositoryImpl) Create(ctx context.Context, e report.Export) (report.Export, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH x AS (
			INSERT INTO export_records (type, format, company, start_date, end_date, record_count, file_location, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING *
		)
		SELECT ` + exportColumns + `
		FROM x
		LEFT JOIN users u ON u.id = x.created_by
	`

	created, err := scanExport(q.QueryRow(ctx, query,
		e.Type, string(e.Format), e.Company, e.StartDate, e.EndDate, e.RecordCount, e.FileLocation, e.CreatedBy,
	))
	if err != nil {
		return report.Export{}, database.Wrap("insert export record", err)
	}
	return created, nil
}

// GetByID implements report.ExportRepository.
func (r *exportRepositoryImpl) GetByID(ctx context.Context, id int64) (report.Export, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + exportColumns + `
		FROM export_records x
		LEFT JOIN users u ON u.id = x.created_by
		WHERE x.id = $1
	`

	found, err := scanExport(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.Export{}, report.ErrExportNotFound
		}
		return report.Export{}, database.Wrap("get export record", err)
	}
	return found, nil
}

// List implements report.ExportRepository, newest first.
func (r *exportRepositoryImpl) List(ctx context.Context, filter report.Filter) ([]report.Export, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	if filter.Type != nil {
		args = append(args, *filter.Type)
		conditions = append(conditions, fmt.Sprintf("x.type ILIKE $%d", len(args)))
	}
	if filter.Format != nil {
		args = append(args, string(*filter.Format))
		conditions = append(conditions, fmt.Sprintf("x.format = $%d", len(args)))
	}

	query := `
		SELECT ` + exportColumns + `
		FROM export_records x
		LEFT JOIN users u ON u.id = x.created_by
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY x.created_at DESC, x.id DESC LIMIT $%d", len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list export records", err)
	}
	defer rows.Close()

	exports := []report.Export{}
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, database.Wrap("scan export record", err)
		}
		exports = append(exports, e)
	}

	if err = rows.Err(); err != nil {
		return nil, database.Wrap("list export records", err)
	}

	return exports, nil
}
