package report

import "context"

type ExportRepository interface {
	Create(ctx context.Context, e Export) (Export, error)
	GetByID(ctx context.Context, id int64) (Export, error)
	List(ctx context.Context, filter Filter) ([]Export, error)
}
