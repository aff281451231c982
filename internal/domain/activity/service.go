package activity

import "context"

type ActivityService interface {
	List(ctx context.Context, req ListActivityRequest) ([]EntryResponse, error)
}
