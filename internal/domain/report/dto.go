package report

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/butters-makana/payroll-backend-go/internal/domain/payroll"
	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
)

// TypeAllRecords exports every record kind in one file.
const TypeAllRecords = "all-records"

type CreateExportRequest struct {
	Type         string  `json:"type"`
	Format       string  `json:"format"`
	Company      *string `json:"company"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	RecordCount  *int64  `json:"record_count"`
	FileLocation *string `json:"file_location"`
}

func (r *CreateExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Type) {
		errs.Add("type", "type is required")
	} else if utf8.RuneCountInString(r.Type) > 64 {
		errs.Add("type", "type must not exceed 64 characters")
	}

	if !validator.IsInSlice(strings.ToLower(strings.TrimSpace(r.Format)), Formats) {
		errs.Add("format", "format must be one of: "+strings.Join(Formats, ", "))
	}

	if r.Company != nil && !strings.EqualFold(*r.Company, "all") && !validator.IsInSlice(*r.Company, []string{"Butters", "Makana"}) {
		errs.Add("company", "company must be one of: all, Butters, Makana")
	}

	var start, end time.Time
	startOK, endOK := false, false
	if r.StartDate != nil {
		if start, startOK = validator.ParseCalendarDate(*r.StartDate); !startOK {
			errs.Add("start_date", "start_date must be a valid date (YYYY-MM-DD)")
		}
	}
	if r.EndDate != nil {
		if end, endOK = validator.ParseCalendarDate(*r.EndDate); !endOK {
			errs.Add("end_date", "end_date must be a valid date (YYYY-MM-DD)")
		}
	}
	if startOK && endOK && end.Before(start) {
		errs.Add("end_date", "end_date must be on or after start_date")
	}

	if r.RecordCount != nil && *r.RecordCount < 0 {
		errs.Add("record_count", "record_count must be at least 0")
	}

	if r.FileLocation != nil && utf8.RuneCountInString(*r.FileLocation) > 500 {
		errs.Add("file_location", "file_location must not exceed 500 characters")
	}

	return errs.Err()
}

// ToExport normalizes a validated request.
func (r CreateExportRequest) ToExport() Export {
	e := Export{
		Type:         strings.TrimSpace(r.Type),
		Format:       Format(strings.ToLower(strings.TrimSpace(r.Format))),
		FileLocation: r.FileLocation,
	}
	if r.Company != nil && !strings.EqualFold(*r.Company, "all") {
		c := *r.Company
		e.Company = &c
	}
	if r.StartDate != nil {
		if d, ok := validator.ParseCalendarDate(*r.StartDate); ok {
			e.StartDate = &d
		}
	}
	if r.EndDate != nil {
		if d, ok := validator.ParseCalendarDate(*r.EndDate); ok {
			e.EndDate = &d
		}
	}
	if r.RecordCount != nil {
		e.RecordCount = *r.RecordCount
	}
	return e
}

// RecordFilter selects the payroll records an export of this type covers.
// Types that name no record kind count nothing.
func (e Export) RecordFilter() (payroll.RecordFilter, bool) {
	filter := payroll.RecordFilter{
		Company:   e.Company,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
	}
	if strings.EqualFold(e.Type, TypeAllRecords) {
		return filter, true
	}
	kind, ok := payroll.ParseKind(e.Type)
	if !ok {
		return payroll.RecordFilter{}, false
	}
	filter.Kinds = []payroll.Kind{kind}
	return filter, true
}

type ListExportsRequest struct {
	Type   string
	Format string
	Limit  string
}

func (r *ListExportsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Format != "" && !validator.IsInSlice(strings.ToLower(r.Format), Formats) {
		errs.Add("format", "format must be one of: "+strings.Join(Formats, ", "))
	}

	if r.Limit != "" {
		if n, err := strconv.Atoi(r.Limit); err != nil || n < 1 || n > MaxLimit {
			errs.Add("limit", "limit must be between 1 and "+validator.Itoa(MaxLimit))
		}
	}

	return errs.Err()
}

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

func (r ListExportsRequest) ToFilter() Filter {
	filter := Filter{Limit: DefaultLimit}
	if t := strings.TrimSpace(r.Type); t != "" {
		filter.Type = &t
	}
	if r.Format != "" {
		f := Format(strings.ToLower(r.Format))
		filter.Format = &f
	}
	if n, err := strconv.Atoi(r.Limit); err == nil && n > 0 && n <= MaxLimit {
		filter.Limit = n
	}
	return filter
}

type Filter struct {
	Type   *string
	Format *Format
	Limit  int
}

type ExportResponse struct {
	ID            int64   `json:"id"`
	Type          string  `json:"type"`
	Format        string  `json:"format"`
	Company       *string `json:"company"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	RecordCount   int64   `json:"record_count"`
	FileLocation  *string `json:"file_location"`
	CreatedBy     *int64  `json:"created_by,omitempty"`
	CreatedByName *string `json:"created_by_name,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func NewExportResponse(e Export) ExportResponse {
	resp := ExportResponse{
		ID:            e.ID,
		Type:          e.Type,
		Format:        string(e.Format),
		Company:       e.Company,
		RecordCount:   e.RecordCount,
		FileLocation:  e.FileLocation,
		CreatedBy:     e.CreatedBy,
		CreatedByName: e.CreatedByName,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
	if e.StartDate != nil {
		s := e.StartDate.Format(validator.DateLayout)
		resp.StartDate = &s
	}
	if e.EndDate != nil {
		s := e.EndDate.Format(validator.DateLayout)
		resp.EndDate = &s
	}
	return resp
}
