package behavior

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/xraph/mediate/handler"
)

// ErrValidation is returned (wrapped) when a request fails struct
// validation before reaching its handler.
var ErrValidation = errors.New("mediate: request validation failed")

// Validation returns a behavior that validates the request value with
// go-playground/validator struct tags before the handler runs. Invalid
// requests short-circuit the chain with an error wrapping ErrValidation;
// the handler is never invoked.
//
// Non-struct requests (and pointers to non-structs) pass through
// unvalidated — validator tags only apply to struct fields.
func Validation(v *validator.Validate) Behavior {
	return func(ctx context.Context, env *handler.Envelope, next Handler) (any, error) {
		if isStruct(env.Request) {
			if err := v.StructCtx(ctx, env.Request); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrValidation, env.Name, err)
			}
		}
		return next(ctx)
	}
}

func isStruct(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
