package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/employee"
	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
)

type RecordServiceImpl struct {
	tx           database.Transactor
	recordRepo   payroll.RecordRepository
	employeeRepo employee.EmployeeRepository
	activityRepo activity.ActivityRepository
	now          func() time.Time
}

func NewRecordService(
	tx database.Transactor,
	recordRepo payroll.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	activityRepo activity.ActivityRepository,
) payroll.RecordService {
	return &RecordServiceImpl{
		tx:           tx,
		recordRepo:   recordRepo,
		employeeRepo: employeeRepo,
		activityRepo: activityRepo,
		now:          time.Now,
	}
}

// ========== LIFECYCLE ==========

func (s *RecordServiceImpl) Create(ctx context.Context, kind payroll.Kind, raw map[string]any) (payroll.RecordResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	record, err := payroll.Parse(kind, raw, s.now())
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	record.CreatedBy = &actor.UserID

	var created payroll.Record
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.recordRepo.Create(ctx, record)
		if err != nil {
			return fmt.Errorf("create %s record: %w", kind, err)
		}

		// A termination record ends the employment it refers to.
		if kind == payroll.KindTermination {
			if err := s.employeeRepo.UpdateStatus(ctx, created.EmployeeID, employee.StatusTerminated); err != nil {
				return fmt.Errorf("terminate employee %d: %w", created.EmployeeID, err)
			}
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionRecordCreated,
			Details: fmt.Sprintf("Created %s record #%d for %s", kind, created.ID, created.EmployeeName),
		})
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return payroll.NewRecordResponse(created), nil
}

func (s *RecordServiceImpl) Get(ctx context.Context, kind payroll.Kind, id int64) (payroll.RecordResponse, error) {
	record, err := s.getOfKind(ctx, kind, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return payroll.NewRecordResponse(record), nil
}

func (s *RecordServiceImpl) Update(ctx context.Context, kind payroll.Kind, id int64, raw map[string]any) (payroll.RecordResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	var updated payroll.Record
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.getOfKind(ctx, kind, id)
		if err != nil {
			return err
		}

		patched, err := payroll.ApplyPatch(existing, raw)
		if err != nil {
			return err
		}

		updated, err = s.recordRepo.Update(ctx, patched)
		if err != nil {
			return fmt.Errorf("update %s record %d: %w", kind, id, err)
		}

		// Moving a termination to another employee moves its effect too.
		if kind == payroll.KindTermination && updated.EmployeeID != existing.EmployeeID {
			if err := s.employeeRepo.UpdateStatus(ctx, updated.EmployeeID, employee.StatusTerminated); err != nil {
				return fmt.Errorf("terminate employee %d: %w", updated.EmployeeID, err)
			}
			if err := s.reinstate(ctx, existing.EmployeeID); err != nil {
				return err
			}
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionRecordUpdated,
			Details: fmt.Sprintf("Updated %s record #%d for %s", kind, updated.ID, updated.EmployeeName),
		})
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return payroll.NewRecordResponse(updated), nil
}

func (s *RecordServiceImpl) Delete(ctx context.Context, kind payroll.Kind, id int64) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.getOfKind(ctx, kind, id)
		if err != nil {
			return err
		}

		if err := s.recordRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete %s record %d: %w", kind, id, err)
		}

		if kind == payroll.KindTermination {
			if err := s.reinstate(ctx, existing.EmployeeID); err != nil {
				return err
			}
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionRecordDeleted,
			Details: fmt.Sprintf("Deleted %s record #%d for %s", kind, existing.ID, existing.EmployeeName),
		})
	})
}

// reinstate returns a Terminated employee to Active once no termination
// record refers to them any more. Must run after the record was moved or
// deleted, inside the same transaction.
func (s *RecordServiceImpl) reinstate(ctx context.Context, employeeID int64) error {
	remaining, err := s.recordRepo.List(ctx, payroll.RecordFilter{
		EmployeeID: &employeeID,
		Kinds:      []payroll.Kind{payroll.KindTermination},
	})
	if err != nil {
		return fmt.Errorf("list terminations of employee %d: %w", employeeID, err)
	}
	if len(remaining) > 0 {
		return nil
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("get employee %d: %w", employeeID, err)
	}
	if emp.Status != employee.StatusTerminated {
		return nil
	}
	if err := s.employeeRepo.UpdateStatus(ctx, employeeID, employee.StatusActive); err != nil {
		return fmt.Errorf("reinstate employee %d: %w", employeeID, err)
	}
	return nil
}

// getOfKind treats a record of another kind as absent, so /records/loan/7
// never exposes a Leave record with id 7.
func (s *RecordServiceImpl) getOfKind(ctx context.Context, kind payroll.Kind, id int64) (payroll.Record, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.Record{}, err
	}
	if record.Kind != kind {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	return record, nil
}

// ========== QUERIES ==========

func (s *RecordServiceImpl) List(ctx context.Context, req payroll.ListRecordsRequest) ([]payroll.RecordResponse, error) {
	records, err := s.list(ctx, req)
	if err != nil {
		return nil, err
	}
	return payroll.NewRecordResponses(records), nil
}

func (s *RecordServiceImpl) Summary(ctx context.Context, req payroll.ListRecordsRequest) (payroll.Summary, error) {
	records, err := s.list(ctx, req)
	if err != nil {
		return payroll.Summary{}, err
	}
	return payroll.Summarize(records), nil
}

func (s *RecordServiceImpl) list(ctx context.Context, req payroll.ListRecordsRequest) ([]payroll.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	records, err := s.recordRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, fmt.Errorf("list payroll records: %w", err)
	}
	return records, nil
}

// ========== ARCHIVE ==========

func (s *RecordServiceImpl) Archive(ctx context.Context, req payroll.ArchiveRequest) (payroll.ArchiveResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ArchiveResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payroll.ArchiveResponse{}, err
	}

	kinds := req.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}

	var moved int64
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		moved, err = s.recordRepo.Archive(ctx, kinds, &actor.UserID)
		if err != nil {
			return fmt.Errorf("archive records: %w", err)
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionRecordsArchive,
			Details: fmt.Sprintf("Archived %d records of type %s", moved, strings.Join(names, ", ")),
		})
	})
	if err != nil {
		return payroll.ArchiveResponse{}, err
	}

	slog.Info("payroll records archived", "count", moved, "record_types", names, "user_id", actor.UserID)

	return payroll.ArchiveResponse{Archived: moved, RecordTypes: names}, nil
}
