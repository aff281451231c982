package http

import (
	"net/http"

	"github.com/butters-makana/payroll-backend-go/internal/domain/schema"
	"github.com/butters-makana/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// SchemaHandler serves the form definitions clients render and validate against.
type SchemaHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type schemaHandlerImpl struct {
	registry *schema.Registry
}

func NewSchemaHandler(registry *schema.Registry) SchemaHandler {
	return &schemaHandlerImpl{registry: registry}
}

// List handles GET /schemas
func (h *schemaHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	response.List(w, h.registry.All())
}

// Get handles GET /schemas/{form}
func (h *schemaHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.registry.Get(chi.URLParam(r, "form"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s)
}
