package recurring

import "context"

type DeductionService interface {
	Create(ctx context.Context, raw map[string]any) (DeductionResponse, error)
	Get(ctx context.Context, id int64) (DeductionResponse, error)
	List(ctx context.Context, req ListDeductionsRequest) ([]DeductionResponse, error)
	Update(ctx context.Context, id int64, raw map[string]any) (DeductionResponse, error)
	Delete(ctx context.Context, id int64) error
}
