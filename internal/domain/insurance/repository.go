package insurance

import "context"

type PolicyRepository interface {
	Create(ctx context.Context, p Policy) (Policy, error)
	GetByID(ctx context.Context, id int64) (Policy, error)
	Update(ctx context.Context, p Policy) (Policy, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]Policy, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	ListByPolicy(ctx context.Context, policyID int64) ([]Payment, error)
	Delete(ctx context.Context, policyID, paymentID int64) error
}
