package maternity

import "context"

type RecordRepository interface {
	Create(ctx context.Context, r Record) (Record, error)
	GetByID(ctx context.Context, id int64) (Record, error)
	Update(ctx context.Context, r Record) (Record, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]Record, error)
}
