package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/recurring"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
)

type DeductionServiceImpl struct {
	tx            database.Transactor
	deductionRepo recurring.DeductionRepository
	activityRepo  activity.ActivityRepository
	now           func() time.Time
}

func NewDeductionService(
	tx database.Transactor,
	deductionRepo recurring.DeductionRepository,
	activityRepo activity.ActivityRepository,
) recurring.DeductionService {
	return &DeductionServiceImpl{
		tx:            tx,
		deductionRepo: deductionRepo,
		activityRepo:  activityRepo,
		now:           time.Now,
	}
}

// Create stores the deduction and then assigns its reference number, which
// derives from the generated id, inside the same transaction.
func (s *DeductionServiceImpl) Create(ctx context.Context, raw map[string]any) (recurring.DeductionResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return recurring.DeductionResponse{}, err
	}

	d, err := recurring.Parse(raw, s.now())
	if err != nil {
		return recurring.DeductionResponse{}, err
	}
	d.CreatedBy = &actor.UserID

	var created recurring.Deduction
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.deductionRepo.Create(ctx, d)
		if err != nil {
			return fmt.Errorf("create recurring deduction: %w", err)
		}

		reference := recurring.ReferenceNumber(created.ID)
		if err := s.deductionRepo.SetReferenceNumber(ctx, created.ID, reference); err != nil {
			return fmt.Errorf("assign reference number: %w", err)
		}
		created.ReferenceNumber = &reference

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionRecurringCreated,
			Details: fmt.Sprintf("Created recurring deduction %s (%s) for %s", reference, created.Name, created.EmployeeName),
		})
	})
	if err != nil {
		return recurring.DeductionResponse{}, err
	}

	return recurring.NewDeductionResponse(created), nil
}

func (s *DeductionServiceImpl) Get(ctx context.Context, id int64) (recurring.DeductionResponse, error) {
	d, err := s.deductionRepo.GetByID(ctx, id)
	if err != nil {
		return recurring.DeductionResponse{}, err
	}
	return recurring.NewDeductionResponse(d), nil
}

func (s *DeductionServiceImpl) List(ctx context.Context, req recurring.ListDeductionsRequest) ([]recurring.DeductionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	deductions, err := s.deductionRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, fmt.Errorf("list recurring deductions: %w", err)
	}

	resp := make([]recurring.DeductionResponse, 0, len(deductions))
	for _, d := range deductions {
		resp = append(resp, recurring.NewDeductionResponse(d))
	}
	return resp, nil
}

func (s *DeductionServiceImpl) Update(ctx context.Context, id int64, raw map[string]any) (recurring.DeductionResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return recurring.DeductionResponse{}, err
	}

	var updated recurring.Deduction
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.deductionRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		patched, err := recurring.ApplyPatch(existing, raw)
		if err != nil {
			return err
		}

		updated, err = s.deductionRepo.Update(ctx, patched)
		if err != nil {
			return fmt.Errorf("update recurring deduction %d: %w", id, err)
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionRecurringUpdated,
			Details: fmt.Sprintf("Updated recurring deduction %s for %s", reference(updated), updated.EmployeeName),
		})
	})
	if err != nil {
		return recurring.DeductionResponse{}, err
	}

	return recurring.NewDeductionResponse(updated), nil
}

func (s *DeductionServiceImpl) Delete(ctx context.Context, id int64) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.deductionRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.deductionRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete recurring deduction %d: %w", id, err)
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionRecurringDeleted,
			Details: fmt.Sprintf("Deleted recurring deduction %s for %s", reference(existing), existing.EmployeeName),
		})
	})
}

func reference(d recurring.Deduction) string {
	if d.ReferenceNumber != nil {
		return *d.ReferenceNumber
	}
	return recurring.ReferenceNumber(d.ID)
}
