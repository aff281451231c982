package http

import (
	"net/http"

	"github.com/butters-makana/payroll-backend-go/internal/domain/activity"
	"github.com/butters-makana/payroll-backend-go/internal/handler/http/response"
)

type ActivityHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	activityService activity.ActivityService
}

func NewActivityHandler(activityService activity.ActivityService) ActivityHandler {
	return &activityHandlerImpl{activityService: activityService}
}

// List handles GET /activity-logs?user_id=&action=&limit=
func (h *activityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := activity.ListActivityRequest{
		UserID: q.Get("user_id"),
		Action: q.Get("action"),
		Limit:  q.Get("limit"),
	}

	entries, err := h.activityService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, entries)
}
