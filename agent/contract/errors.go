package contract

import "errors"

var (
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrValidation      = errors.New("validation failed")
	ErrToolArgs        = errors.New("invalid tool arguments")
	ErrProductNotFound = errors.New("product not found")
)
