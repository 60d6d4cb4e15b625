package register_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/xraph/mediate"
	"github.com/xraph/mediate/register"
	"github.com/xraph/mediate/scan"
	"github.com/xraph/mediate/typeset"
)

type orderShipped struct {
	ID string
}

type auditNotifier struct {
	seen []string
}

func (n *auditNotifier) Handle(ctx context.Context, note orderShipped) error {
	n.seen = append(n.seen, note.ID)
	return nil
}

type emailNotifier struct {
	calls int
}

func (n *emailNotifier) Handle(ctx context.Context, note orderShipped) error {
	n.calls++
	return nil
}

type shipOrder struct {
	ID string
}

type shipOrderHandler struct{}

func (h *shipOrderHandler) Handle(ctx context.Context, req shipOrder) (orderShipped, error) {
	return orderShipped{ID: req.ID}, nil
}

// scannedResult builds the descriptor universe the scanner would
// produce for the fixture types above.
func scannedResult() *scan.Result {
	reqDef := typeset.NewDefinition("RequestHandler")
	noteDef := typeset.NewDefinition("NotificationHandler")

	shipOrderT := typeset.NewStruct("shipOrder")
	orderShippedT := typeset.NewStruct("orderShipped")

	audit := typeset.NewStruct("auditNotifier",
		typeset.WithInterfaces(noteDef.Instantiate(orderShippedT)))
	email := typeset.NewStruct("emailNotifier",
		typeset.WithInterfaces(noteDef.Instantiate(orderShippedT)))
	ship := typeset.NewStruct("shipOrderHandler",
		typeset.WithInterfaces(reqDef.Instantiate(shipOrderT, orderShippedT)))

	return &scan.Result{
		Module:               typeset.NewModule(audit, email, orderShippedT, shipOrderT, ship),
		RequestHandlers:      reqDef,
		NotificationHandlers: noteDef,
		PackagePath:          "register_test",
	}
}

func testOpts() []mediate.Option {
	return []mediate.Option{
		mediate.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func TestSetup(t *testing.T) {
	audit := &auditNotifier{}
	email := &emailNotifier{}

	m, err := register.Setup(scannedResult(), register.Bindings{
		"auditNotifier":    register.Instance(audit),
		"emailNotifier":    register.Instance(email),
		"shipOrderHandler": register.Instance(&shipOrderHandler{}),
	}, testOpts()...)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	res, err := mediate.Send[shipOrder, orderShipped](context.Background(), m, shipOrder{ID: "o1"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.ID != "o1" {
		t.Errorf("res.ID = %q, want %q", res.ID, "o1")
	}

	if err := mediate.Publish(context.Background(), m, orderShipped{ID: "o1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(audit.seen) != 1 || audit.seen[0] != "o1" {
		t.Errorf("audit.seen = %v, want [o1]", audit.seen)
	}
	if email.calls != 1 {
		t.Errorf("email.calls = %d, want 1", email.calls)
	}
}

func TestSetupMissingBinding(t *testing.T) {
	_, err := register.Setup(scannedResult(), register.Bindings{
		"auditNotifier":    register.Instance(&auditNotifier{}),
		"shipOrderHandler": register.Instance(&shipOrderHandler{}),
	}, testOpts()...)
	if err == nil {
		t.Fatal("expected error for unbound emailNotifier")
	}
	if !strings.Contains(err.Error(), "emailNotifier") {
		t.Errorf("error = %q, want mention of emailNotifier", err)
	}
}

func TestApplyRegistersImplementationOnce(t *testing.T) {
	noteDef := typeset.NewDefinition("NotificationHandler")
	a := typeset.NewStruct("A")
	b := typeset.NewStruct("B")

	// One implementation declaring two instantiations yields two
	// matches but must be registered once.
	multi := typeset.NewStruct("multiNotifier",
		typeset.WithInterfaces(noteDef.Instantiate(a), noteDef.Instantiate(b)))

	result := &scan.Result{
		Module:               typeset.NewModule(multi),
		RequestHandlers:      typeset.NewDefinition("RequestHandler"),
		NotificationHandlers: noteDef,
	}

	calls := 0
	m, err := mediate.New(testOpts()...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = register.Apply(m, result, register.Bindings{
		"multiNotifier": func() any {
			calls++
			return &auditNotifier{}
		},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if err := mediate.Publish(context.Background(), m, orderShipped{}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if calls != 1 {
		t.Errorf("factory calls = %d, want 1", calls)
	}
}

type fakeRegistrar struct {
	names   map[string]func() any
	failure error
}

func (f *fakeRegistrar) RegisterSingleton(name string, factory func() any) error {
	if f.failure != nil {
		return f.failure
	}
	if f.names == nil {
		f.names = make(map[string]func() any)
	}
	f.names[name] = factory
	return nil
}

func TestInto(t *testing.T) {
	m, err := mediate.New(testOpts()...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	fr := &fakeRegistrar{}
	if err := register.Into(fr, m); err != nil {
		t.Fatalf("Into: %v", err)
	}

	factory, ok := fr.names[register.ServiceName]
	if !ok {
		t.Fatalf("mediator not registered under %q", register.ServiceName)
	}
	if factory() != m {
		t.Error("factory did not return the mounted mediator")
	}

	failErr := errors.New("container full")
	if err := register.Into(&fakeRegistrar{failure: failErr}, m); !errors.Is(err, failErr) {
		t.Errorf("err = %v, want wrapped container error", err)
	}
}
