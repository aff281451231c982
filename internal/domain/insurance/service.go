package insurance

import "context"

type PolicyService interface {
	Create(ctx context.Context, raw map[string]any) (PolicyResponse, error)
	Get(ctx context.Context, id int64) (PolicyResponse, error)
	List(ctx context.Context, req ListPoliciesRequest) ([]PolicyResponse, error)
	Update(ctx context.Context, id int64, raw map[string]any) (PolicyResponse, error)
	Delete(ctx context.Context, id int64) error

	AddPayment(ctx context.Context, policyID int64, raw map[string]any) (PaymentResponse, error)
	ListPayments(ctx context.Context, policyID int64) ([]PaymentResponse, error)
	DeletePayment(ctx context.Context, policyID, paymentID int64) error
}
