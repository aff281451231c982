package recurring

import "errors"

var ErrDeductionNotFound = errors.New("recurring deduction not found")
