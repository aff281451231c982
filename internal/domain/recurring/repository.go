package recurring

import "context"

type DeductionRepository interface {
	Create(ctx context.Context, d Deduction) (Deduction, error)
	SetReferenceNumber(ctx context.Context, id int64, reference string) error
	GetByID(ctx context.Context, id int64) (Deduction, error)
	Update(ctx context.Context, d Deduction) (Deduction, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]Deduction, error)
}
