package report

import (
	"context"
	"fmt"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/domain/report"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/database"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/jwt"
)

type ExportServiceImpl struct {
	tx           database.Transactor
	exportRepo   report.ExportRepository
	recordRepo   payroll.RecordRepository
	activityRepo activity.ActivityRepository
}

func NewExportService(
	tx database.Transactor,
	exportRepo report.ExportRepository,
	recordRepo payroll.RecordRepository,
	activityRepo activity.ActivityRepository,
) report.ExportService {
	return &ExportServiceImpl{
		tx:           tx,
		exportRepo:   exportRepo,
		recordRepo:   recordRepo,
		activityRepo: activityRepo,
	}
}

// Record stores the metadata of an export the client has rendered. When the
// client omits record_count it is taken from the records the export covers.
func (s *ExportServiceImpl) Record(ctx context.Context, req report.CreateExportRequest) (report.ExportResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return report.ExportResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return report.ExportResponse{}, err
	}

	export := req.ToExport()
	export.CreatedBy = &actor.UserID

	if req.RecordCount == nil {
		if filter, ok := export.RecordFilter(); ok {
			records, err := s.recordRepo.List(ctx, filter)
			if err != nil {
				return report.ExportResponse{}, fmt.Errorf("count exported records: %w", err)
			}
			export.RecordCount = int64(len(records))
		}
	}

	var created report.Export
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.exportRepo.Create(ctx, export)
		if err != nil {
			return fmt.Errorf("record export: %w", err)
		}

		return s.activityRepo.Create(ctx, activity.Entry{
			UserID:  &actor.UserID,
			Action:  activity.ActionExportRecorded,
			Details: fmt.Sprintf("Exported %d %s records as %s", created.RecordCount, created.Type, created.Format),
		})
	})
	if err != nil {
		return report.ExportResponse{}, err
	}

	return report.NewExportResponse(created), nil
}

func (s *ExportServiceImpl) Get(ctx context.Context, id int64) (report.ExportResponse, error) {
	e, err := s.exportRepo.GetByID(ctx, id)
	if err != nil {
		return report.ExportResponse{}, err
	}
	return report.NewExportResponse(e), nil
}

func (s *ExportServiceImpl) List(ctx context.Context, req report.ListExportsRequest) ([]report.ExportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exports, err := s.exportRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}

	resp := make([]report.ExportResponse, 0, len(exports))
	for _, e := range exports {
		resp = append(resp, report.NewExportResponse(e))
	}
	return resp, nil
}
