package report

import "time"

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var Formats = []string{string(FormatCSV), string(FormatXLSX), string(FormatPDF)}

// Export is the history entry for a report file produced by a client. The
// rendering happens elsewhere; only the metadata is kept here.
type Export struct {
	ID           int64
	Type         string
	Format       Format
	Company      *string
	StartDate    *time.Time
	EndDate      *time.Time
	RecordCount  int64
	FileLocation *string
	CreatedBy    *int64
	CreatedAt    time.Time

	// Joined fields
	CreatedByName *string
}
