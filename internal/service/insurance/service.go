package insurance

import (
	"context"
	"fmt"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/insurance"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
)

type PolicyServiceImpl struct {
	tx           database.Transactor
	policyRepo   insurance.PolicyRepository
	paymentRepo  insurance.PaymentRepository
	activityRepo activity.ActivityRepository
	now          func() time.Time
}

func NewPolicyService(
	tx database.Transactor,
	policyRepo insurance.PolicyRepository,
	paymentRepo insurance.PaymentRepository,
	activityRepo activity.ActivityRepository,
) insurance.PolicyService {
	return &PolicyServiceImpl{
		tx:           tx,
		policyRepo:   policyRepo,
		paymentRepo:  paymentRepo,
		activityRepo: activityRepo,
		now:          time.Now,
	}
}

// ========== Policies ==========

func (s *PolicyServiceImpl) Create(ctx context.Context, raw map[string]any) (insurance.PolicyResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return insurance.PolicyResponse{}, err
	}

	p, err := insurance.ParsePolicy(raw, s.now())
	if err != nil {
		return insurance.PolicyResponse{}, err
	}
	p.CreatedBy = &actor.UserID

	var created insurance.Policy
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.policyRepo.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("create insurance policy: %w", err)
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionPolicyCreated,
			Details: fmt.Sprintf("Created %s policy %s for %s", created.Insurer, created.PolicyNumber, created.EmployeeName),
		})
	})
	if err != nil {
		return insurance.PolicyResponse{}, err
	}

	return insurance.NewPolicyResponse(created), nil
}

func (s *PolicyServiceImpl) Get(ctx context.Context, id int64) (insurance.PolicyResponse, error) {
	p, err := s.policyRepo.GetByID(ctx, id)
	if err != nil {
		return insurance.PolicyResponse{}, err
	}
	return insurance.NewPolicyResponse(p), nil
}

func (s *PolicyServiceImpl) List(ctx context.Context, req insurance.ListPoliciesRequest) ([]insurance.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	policies, err := s.policyRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, fmt.Errorf("list insurance policies: %w", err)
	}

	resp := make([]insurance.PolicyResponse, 0, len(policies))
	for _, p := range policies {
		resp = append(resp, insurance.NewPolicyResponse(p))
	}
	return resp, nil
}

func (s *PolicyServiceImpl) Update(ctx context.Context, id int64, raw map[string]any) (insurance.PolicyResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return insurance.PolicyResponse{}, err
	}

	var updated insurance.Policy
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.policyRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		patched, err := insurance.ApplyPolicyPatch(existing, raw)
		if err != nil {
			return err
		}

		updated, err = s.policyRepo.Update(ctx, patched)
		if err != nil {
			return fmt.Errorf("update insurance policy %d: %w", id, err)
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionPolicyUpdated,
			Details: fmt.Sprintf("Updated %s policy %s (%s)", updated.Insurer, updated.PolicyNumber, updated.Status),
		})
	})
	if err != nil {
		return insurance.PolicyResponse{}, err
	}

	return insurance.NewPolicyResponse(updated), nil
}

// Delete removes the policy; its payments go with it.
func (s *PolicyServiceImpl) Delete(ctx context.Context, id int64) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.policyRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.policyRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete insurance policy %d: %w", id, err)
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionPolicyDeleted,
			Details: fmt.Sprintf("Deleted %s policy %s for %s", existing.Insurer, existing.PolicyNumber, existing.EmployeeName),
		})
	})
}

// ========== Payments ==========

func (s *PolicyServiceImpl) AddPayment(ctx context.Context, policyID int64, raw map[string]any) (insurance.PaymentResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return insurance.PaymentResponse{}, err
	}

	payment, err := insurance.ParsePayment(policyID, raw, s.now())
	if err != nil {
		return insurance.PaymentResponse{}, err
	}
	payment.CreatedBy = &actor.UserID

	var created insurance.Payment
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		policy, err := s.policyRepo.GetByID(ctx, policyID)
		if err != nil {
			return err
		}

		created, err = s.paymentRepo.Create(ctx, payment)
		if err != nil {
			return fmt.Errorf("add policy payment: %w", err)
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionPaymentAdded,
			Details: fmt.Sprintf("Recorded %s payment of %s for policy %s", created.Month, created.Amount.StringFixed(2), policy.PolicyNumber),
		})
	})
	if err != nil {
		return insurance.PaymentResponse{}, err
	}

	return insurance.NewPaymentResponse(created), nil
}

func (s *PolicyServiceImpl) ListPayments(ctx context.Context, policyID int64) ([]insurance.PaymentResponse, error) {
	if _, err := s.policyRepo.GetByID(ctx, policyID); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByPolicy(ctx, policyID)
	if err != nil {
		return nil, fmt.Errorf("list policy payments: %w", err)
	}

	resp := make([]insurance.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, insurance.NewPaymentResponse(p))
	}
	return resp, nil
}

func (s *PolicyServiceImpl) DeletePayment(ctx context.Context, policyID, paymentID int64) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		policy, err := s.policyRepo.GetByID(ctx, policyID)
		if err != nil {
			return err
		}

		if err := s.paymentRepo.Delete(ctx, policyID, paymentID); err != nil {
			return err
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionPaymentDeleted,
			Details: fmt.Sprintf("Deleted payment %d from policy %s", paymentID, policy.PolicyNumber),
		})
	})
}
