package maternity

import (
	"context"
	"fmt"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/maternity"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
)

type RecordServiceImpl struct {
	tx           database.Transactor
	recordRepo   maternity.RecordRepository
	activityRepo activity.ActivityRepository
	now          func() time.Time
}

func NewRecordService(
	tx database.Transactor,
	recordRepo maternity.RecordRepository,
	activityRepo activity.ActivityRepository,
) maternity.RecordService {
	return &RecordServiceImpl{
		tx:           tx,
		recordRepo:   recordRepo,
		activityRepo: activityRepo,
		now:          time.Now,
	}
}

func (s *RecordServiceImpl) Create(ctx context.Context, raw map[string]any) (maternity.RecordResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return maternity.RecordResponse{}, err
	}

	r, err := maternity.Parse(raw, s.now())
	if err != nil {
		return maternity.RecordResponse{}, err
	}
	r.CreatedBy = &actor.UserID

	var created maternity.Record
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.recordRepo.Create(ctx, r)
		if err != nil {
			return fmt.Errorf("create maternity record: %w", err)
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionMaternityCreated,
			Details: describe("Created", created),
		})
	})
	if err != nil {
		return maternity.RecordResponse{}, err
	}

	return maternity.NewRecordResponse(created), nil
}

func (s *RecordServiceImpl) Get(ctx context.Context, id int64) (maternity.RecordResponse, error) {
	r, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return maternity.RecordResponse{}, err
	}
	return maternity.NewRecordResponse(r), nil
}

func (s *RecordServiceImpl) List(ctx context.Context, req maternity.ListRecordsRequest) ([]maternity.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	records, err := s.recordRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, fmt.Errorf("list maternity records: %w", err)
	}

	resp := make([]maternity.RecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, maternity.NewRecordResponse(r))
	}
	return resp, nil
}

func (s *RecordServiceImpl) Update(ctx context.Context, id int64, raw map[string]any) (maternity.RecordResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return maternity.RecordResponse{}, err
	}

	var updated maternity.Record
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.recordRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		patched, err := maternity.ApplyPatch(existing, raw)
		if err != nil {
			return err
		}

		updated, err = s.recordRepo.Update(ctx, patched)
		if err != nil {
			return fmt.Errorf("update maternity record %d: %w", id, err)
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionMaternityUpdated,
			Details: describe("Updated", updated),
		})
	})
	if err != nil {
		return maternity.RecordResponse{}, err
	}

	return maternity.NewRecordResponse(updated), nil
}

func (s *RecordServiceImpl) Delete(ctx context.Context, id int64) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.recordRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.recordRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete maternity record %d: %w", id, err)
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionMaternityDeleted,
			Details: describe("Deleted", existing),
		})
	})
}

func describe(verb string, r maternity.Record) string {
	return fmt.Sprintf("%s maternity record for %s (%s to %s)", verb, r.EmployeeName,
		r.FromDate.Format(validator.DateLayout), r.ToDate.Format(validator.DateLayout))
}
