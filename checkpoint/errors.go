package checkpoint

import "errors"

var (
	ErrSignatureInvalid = errors.New("checkpoint signature is not valid")
	ErrNoKid            = errors.New("checkpoint has no key identifier")
)
