package maternity

import "context"

type RecordService interface {
	Create(ctx context.Context, raw map[string]any) (RecordResponse, error)
	Get(ctx context.Context, id int64) (RecordResponse, error)
	List(ctx context.Context, req ListRecordsRequest) ([]RecordResponse, error)
	Update(ctx context.Context, id int64, raw map[string]any) (RecordResponse, error)
	Delete(ctx context.Context, id int64) error
}
