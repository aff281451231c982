package activity

import (
	"strconv"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type Filter struct {
	UserID *int64
	Action *Action
	Limit  int
}

// ListActivityRequest carries the raw list query parameters.
type ListActivityRequest struct {
	UserID string
	Action string
	Limit  string
}

func (r *ListActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID != "" {
		if id, err := strconv.ParseInt(r.UserID, 10, 64); err != nil || id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "user_id",
				Message: "user_id must be a positive integer",
			})
		}
	}

	if r.Limit != "" {
		if n, err := strconv.Atoi(r.Limit); err != nil || n < 1 || n > MaxLimit {
			errs = append(errs, validator.ValidationError{
				Field:   "limit",
				Message: "limit must be between 1 and " + validator.Itoa(MaxLimit),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r ListActivityRequest) ToFilter() Filter {
	filter := Filter{Limit: DefaultLimit}
	if id, err := strconv.ParseInt(r.UserID, 10, 64); err == nil {
		filter.UserID = &id
	}
	if r.Action != "" {
		a := Action(r.Action)
		filter.Action = &a
	}
	if n, err := strconv.Atoi(r.Limit); err == nil && n > 0 {
		filter.Limit = n
	}
	return filter
}

type EntryResponse struct {
	ID        int64   `json:"id"`
	UserID    *int64  `json:"user_id,omitempty"`
	Username  *string `json:"username,omitempty"`
	Action    string  `json:"action"`
	Details   string  `json:"details"`
	CreatedAt string  `json:"created_at"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Username:  e.Username,
		Action:    string(e.Action),
		Details:   e.Details,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
