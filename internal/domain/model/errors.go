package model

import "errors"

var (
	ErrNotImplemented = errors.New("request not implemented")
	ErrMissingField   = errors.New("missing field")
	ErrInvalidField   = errors.New("invalid field")
	ErrUnknownEffect  = errors.New("unknown effect")
)
