package insurance

import "errors"

var (
	ErrPolicyNotFound     = errors.New("insurance policy not found")
	ErrPaymentNotFound    = errors.New("policy payment not found")
	ErrPolicyNumberExists = errors.New("policy number already exists for this insurer")
)
