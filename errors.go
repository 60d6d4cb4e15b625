package mediate

import "errors"

var (
	// Resolution errors.
	ErrHandlerNotFound = errors.New("mediate: no handler registered for request")
	ErrInvalidHandler  = errors.New("mediate: registered handler has wrong type")

	// Response errors.
	ErrInvalidResponse = errors.New("mediate: handler returned mismatched response type")
)
