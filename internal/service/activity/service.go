package activity

import (
	"context"
	"fmt"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
)

type ActivityServiceImpl struct {
	activityRepo activity.ActivityRepository
}

func NewActivityService(activityRepo activity.ActivityRepository) activity.ActivityService {
	return &ActivityServiceImpl{activityRepo: activityRepo}
}

// List returns the most recent entries first.
func (s *ActivityServiceImpl) List(ctx context.Context, req activity.ListActivityRequest) ([]activity.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.activityRepo.List(ctx, req.ToFilter())
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	resp := make([]activity.EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, activity.NewEntryResponse(e))
	}
	return resp, nil
}
