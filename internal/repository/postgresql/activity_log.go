package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
)

type activityRepositoryImpl struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// Create implements activity.ActivityRepository.
func (a *activityRepositoryImpl) Create(ctx context.Context, entry activity.Entry) error {
	q := GetQuerier(ctx, a.db)

	_, err := q.Exec(ctx,
		`INSERT INTO activity_logs (user_id, action, details) VALUES ($1, $2, $3)`,
		entry.UserID, string(entry.Action), entry.Details,
	)
	return database.Wrap("insert activity log", err)
}

// List implements activity.ActivityRepository. Newest entries come first.
func (a *activityRepositoryImpl) List(ctx context.Context, filter activity.Filter) ([]activity.Entry, error) {
	q := GetQuerier(ctx, a.db)

	var (
		conditions []string
		args       []any
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("l.user_id = $%d", len(args)))
	}
	if filter.Action != nil {
		args = append(args, string(*filter.Action))
		conditions = append(conditions, fmt.Sprintf("l.action = $%d", len(args)))
	}

	query := `
		SELECT l.id, l.user_id, l.action, l.details, l.created_at, u.username
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.user_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = activity.DefaultLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY l.created_at DESC, l.id DESC LIMIT $%d", len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list activity logs", err)
	}
	defer rows.Close()

	entries := []activity.Entry{}
	for rows.Next() {
		var e activity.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Details, &e.CreatedAt, &e.Username); err != nil {
			return nil, database.Wrap("scan activity log", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, database.Wrap("list activity logs", err)
	}

	return entries, nil
}
