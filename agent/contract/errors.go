package contract

import "errors"

var (
	ErrModelInvoke        = errors.New("model invoke failed")
	ErrPromptMissing      = errors.New("required prompt is missing")
	ErrValidation         = errors.New("validation failed")
	ErrUnsupportedRequest = errors.New("unsupported request type")
)
