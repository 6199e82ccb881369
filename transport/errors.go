package transport

import "errors"

var (
	ErrEncoding = errors.New("invalid encoding")
)
