package plugin

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

type dispatchOnly struct {
	before int
	after  int
	err    error
}

func (p *dispatchOnly) Name() string { return "dispatch-only" }

func (p *dispatchOnly) OnBeforeDispatch(_ context.Context, _ any) error {
	p.before++
	return p.err
}

func (p *dispatchOnly) OnAfterDispatch(_ context.Context, _ any) error {
	p.after++
	return nil
}

type shutdownOnly struct {
	calls int
}

func (p *shutdownOnly) Name() string { return "shutdown-only" }

func (p *shutdownOnly) OnShutdown(_ context.Context) error {
	p.calls++
	return nil
}

func TestRegistry_TypeCaching(t *testing.T) {
	r := NewRegistry(slog.Default())
	d := &dispatchOnly{}
	s := &shutdownOnly{}
	r.Register(d)
	r.Register(s)

	ctx := context.Background()
	r.EmitBeforeDispatch(ctx, nil)
	r.EmitAfterDispatch(ctx, nil)
	r.EmitActionRegistered(ctx, nil)
	r.EmitShutdown(ctx)

	if d.before != 1 || d.after != 1 {
		t.Errorf("dispatch hooks = %d/%d, want 1/1", d.before, d.after)
	}
	if s.calls != 1 {
		t.Errorf("shutdown hooks = %d, want 1", s.calls)
	}
	if len(r.Plugins()) != 2 {
		t.Errorf("Plugins() = %d, want 2", len(r.Plugins()))
	}
}

func TestRegistry_HookErrorsAreSwallowed(t *testing.T) {
	r := NewRegistry(slog.Default())
	d := &dispatchOnly{err: errors.New("hook failed")}
	r.Register(d)

	// Must not panic or propagate.
	r.EmitBeforeDispatch(context.Background(), nil)

	if d.before != 1 {
		t.Errorf("hook calls = %d, want 1", d.before)
	}
}

func TestRegistry_OrderPreserved(t *testing.T) {
	r := NewRegistry(slog.Default())
	var order []string

	for _, name := range []string{"a", "b", "c"} {
		r.Register(&namedShutdown{name: name, order: &order})
	}
	r.EmitShutdown(context.Background())

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("shutdown order = %v, want [a b c]", order)
	}
}

type namedShutdown struct {
	name  string
	order *[]string
}

func (p *namedShutdown) Name() string { return p.name }

func (p *namedShutdown) OnShutdown(_ context.Context) error {
	*p.order = append(*p.order, p.name)
	return nil
}
