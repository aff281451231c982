package report

import "context"

type ExportService interface {
	Record(ctx context.Context, req CreateExportRequest) (ExportResponse, error)
	Get(ctx context.Context, id int64) (ExportResponse, error)
	List(ctx context.Context, req ListExportsRequest) ([]ExportResponse, error)
}
