package report

import "errors"

var ErrExportNotFound = errors.New("export record not found")
