package payroll

import "context"

type RecordService interface {
	Create(ctx context.Context, kind Kind, raw map[string]any) (RecordResponse, error)
	Get(ctx context.Context, kind Kind, id int64) (RecordResponse, error)
	Update(ctx context.Context, kind Kind, id int64, raw map[string]any) (RecordResponse, error)
	Delete(ctx context.Context, kind Kind, id int64) error
	List(ctx context.Context, req ListRecordsRequest) ([]RecordResponse, error)
	Summary(ctx context.Context, req ListRecordsRequest) (Summary, error)
	Archive(ctx context.Context, req ArchiveRequest) (ArchiveResponse, error)
}
