package payroll

import "errors"

var (
	ErrRecordNotFound  = errors.New("payroll record not found")
	ErrUnknownKind     = errors.New("unknown record type")
	ErrNoKindsSelected = errors.New("select at least one record type to archive")
)
