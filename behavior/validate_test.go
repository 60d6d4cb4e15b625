package behavior_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/xraph/mediate/behavior"
	"github.com/xraph/mediate/handler"
	"github.com/xraph/mediate/id"
)

type createOrder struct {
	CustomerID string `validate:"required"`
	Quantity   int    `validate:"gte=1"`
}

func newValidatedEnvelope(req any) *handler.Envelope {
	return &handler.Envelope{
		ID:      id.NewRequestID(),
		Name:    "behavior_test.createOrder",
		Kind:    handler.KindRequest,
		Request: req,
	}
}

func TestValidation_PassesValidRequest(t *testing.T) {
	b := behavior.Validation(validator.New())
	env := newValidatedEnvelope(createOrder{CustomerID: "cust_1", Quantity: 2})

	called := false
	_, err := b(context.Background(), env, func(_ context.Context) (any, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler not called for valid request")
	}
}

func TestValidation_RejectsInvalidRequest(t *testing.T) {
	b := behavior.Validation(validator.New())
	env := newValidatedEnvelope(createOrder{Quantity: 0})

	called := false
	_, err := b(context.Background(), env, func(_ context.Context) (any, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, behavior.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if called {
		t.Fatal("handler must not run for an invalid request")
	}
}

func TestValidation_PointerRequest(t *testing.T) {
	b := behavior.Validation(validator.New())
	env := newValidatedEnvelope(&createOrder{})

	_, err := b(context.Background(), env, func(_ context.Context) (any, error) {
		return nil, nil
	})
	if !errors.Is(err, behavior.ErrValidation) {
		t.Fatalf("expected ErrValidation for invalid pointer request, got %v", err)
	}
}

func TestValidation_SkipsNonStructRequests(t *testing.T) {
	b := behavior.Validation(validator.New())
	env := newValidatedEnvelope("plain string request")

	called := false
	_, err := b(context.Background(), env, func(_ context.Context) (any, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler not called for non-struct request")
	}
}
