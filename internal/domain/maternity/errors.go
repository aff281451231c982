package maternity

import "errors"

var ErrRecordNotFound = errors.New("maternity record not found")
