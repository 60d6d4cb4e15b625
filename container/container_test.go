package container_test

import (
	"context"
	"testing"

	"github.com/xraph/mediate/container"
	"github.com/xraph/mediate/handler"
)

type ping struct{}

type handlerA struct{}

func (handlerA) Handle(context.Context, ping) error { return nil }

type handlerB struct{}

func (handlerB) Handle(context.Context, ping) error { return nil }

type handlerC struct{}

func (handlerC) Handle(context.Context, ping) error { return nil }

type unrelated struct{}

func TestResolve_FirstRegistrationWins(t *testing.T) {
	c := container.New()
	key := container.Key[handler.NotificationHandler[ping]]()

	c.RegisterInstance(key, handlerA{})
	c.RegisterInstance(key, handlerB{})

	v, ok := c.Resolve(key)
	if !ok {
		t.Fatal("expected resolution")
	}
	if _, isA := v.(handlerA); !isA {
		t.Errorf("resolved %T, want handlerA", v)
	}
}

func TestResolve_AbsenceIsNotAnError(t *testing.T) {
	c := container.New()
	v, ok := c.Resolve(container.Key[handler.NotificationHandler[ping]]())
	if ok || v != nil {
		t.Errorf("Resolve on empty container = (%v, %v), want (nil, false)", v, ok)
	}
}

func TestResolveAll_Empty(t *testing.T) {
	c := container.New()
	got := c.ResolveAll(container.Key[handler.NotificationHandler[ping]]())
	if len(got) != 0 {
		t.Errorf("ResolveAll = %d instances, want 0", len(got))
	}
}

// Registry contains A and B registered directly under the closed
// interface, plus C registered under the open form. Resolving all
// instances yields exactly {A, B, C} with no duplicates.
func TestResolveAll_OpenUnion(t *testing.T) {
	c := container.New()
	key := container.Key[handler.NotificationHandler[ping]]()

	c.RegisterInstance(key, handlerA{})
	c.RegisterInstance(key, handlerB{})
	c.RegisterOpenInstance(container.Group(key), handlerC{})

	got := c.ResolveAll(key)
	if len(got) != 3 {
		t.Fatalf("ResolveAll = %d instances, want 3", len(got))
	}
	if _, ok := got[0].(handlerA); !ok {
		t.Errorf("got[0] = %T, want handlerA", got[0])
	}
	if _, ok := got[1].(handlerB); !ok {
		t.Errorf("got[1] = %T, want handlerB", got[1])
	}
	if _, ok := got[2].(handlerC); !ok {
		t.Errorf("got[2] = %T, want handlerC", got[2])
	}
}

func TestResolveAll_DeduplicatesByConcreteType(t *testing.T) {
	c := container.New()
	key := container.Key[handler.NotificationHandler[ping]]()

	// C registered both directly and under the open form: the direct
	// registration wins positionally, the union copy is dropped.
	c.RegisterInstance(key, handlerA{})
	c.RegisterInstance(key, handlerC{})
	c.RegisterOpenInstance(container.Group(key), handlerC{})

	got := c.ResolveAll(key)
	if len(got) != 2 {
		t.Fatalf("ResolveAll = %d instances, want 2", len(got))
	}
	if _, ok := got[1].(handlerC); !ok {
		t.Errorf("got[1] = %T, want handlerC", got[1])
	}
}

func TestResolveAll_OpenSkipsUnassignable(t *testing.T) {
	c := container.New()
	key := container.Key[handler.NotificationHandler[ping]]()

	c.RegisterOpenInstance(container.Group(key), unrelated{})
	c.RegisterOpenInstance(container.Group(key), handlerC{})

	got := c.ResolveAll(key)
	if len(got) != 1 {
		t.Fatalf("ResolveAll = %d instances, want 1", len(got))
	}
	if _, ok := got[0].(handlerC); !ok {
		t.Errorf("got[0] = %T, want handlerC", got[0])
	}
}

func TestRegisterSingleton_MemoizesFactory(t *testing.T) {
	c := container.New()
	key := container.Key[handler.NotificationHandler[ping]]()

	calls := 0
	c.RegisterSingleton(key, func() any {
		calls++
		return handlerA{}
	})

	c.Resolve(key)
	c.Resolve(key)
	c.ResolveAll(key)

	if calls != 1 {
		t.Errorf("factory calls = %d, want 1", calls)
	}
}

func TestRegister_TransientFactory(t *testing.T) {
	c := container.New()
	key := container.Key[handler.NotificationHandler[ping]]()

	calls := 0
	c.Register(key, func() any {
		calls++
		return handlerA{}
	})

	c.Resolve(key)
	c.Resolve(key)

	if calls != 2 {
		t.Errorf("factory calls = %d, want 2", calls)
	}
}

func TestGroup_StripsTypeArguments(t *testing.T) {
	closedA := container.Key[handler.NotificationHandler[ping]]()
	closedB := container.Key[handler.NotificationHandler[unrelated]]()

	if container.Group(closedA) != container.Group(closedB) {
		t.Errorf("instantiations of the same definition must share a group: %q != %q",
			container.Group(closedA), container.Group(closedB))
	}
	want := "github.com/xraph/mediate/handler.NotificationHandler"
	if got := container.Group(closedA); got != want {
		t.Errorf("Group = %q, want %q", got, want)
	}
}

func TestResolveOpen(t *testing.T) {
	key := container.Key[handler.NotificationHandler[ping]]()

	t.Run("closed registration wins", func(t *testing.T) {
		c := container.New()
		c.RegisterInstance(key, handlerA{})
		c.RegisterOpenInstance(container.Group(key), handlerB{})

		v, ok := c.ResolveOpen(key)
		if !ok {
			t.Fatal("expected resolution")
		}
		if _, isA := v.(handlerA); !isA {
			t.Errorf("resolved %T, want handlerA", v)
		}
	})

	t.Run("falls back to open group", func(t *testing.T) {
		c := container.New()
		c.RegisterOpenInstance(container.Group(key), handlerB{})

		v, ok := c.ResolveOpen(key)
		if !ok {
			t.Fatal("expected resolution")
		}
		if _, isB := v.(handlerB); !isB {
			t.Errorf("resolved %T, want handlerB", v)
		}
	})

	t.Run("skips unassignable open registrations", func(t *testing.T) {
		c := container.New()
		c.RegisterOpenInstance(container.Group(key), unrelated{})

		if v, ok := c.ResolveOpen(key); ok {
			t.Errorf("resolved %T, want no resolution", v)
		}
	})
}

func TestRegistered(t *testing.T) {
	c := container.New()
	key := container.Key[handler.NotificationHandler[ping]]()

	if c.Registered(key) {
		t.Error("Registered = true on empty container")
	}
	c.RegisterInstance(key, handlerA{})
	if !c.Registered(key) {
		t.Error("Registered = false after registration")
	}
}
