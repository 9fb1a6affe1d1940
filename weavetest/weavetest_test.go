package weavetest

import (
	"context"
	"testing"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
)

func TestDecoratorCallsThrough(t *testing.T) {
	var (
		d Decorator
		h Handler
	)
	handler := Decorate(&h, &d)

	if _, err := handler.Check(nil, nil, nil); err != nil {
		t.Fatalf("check: %s", err)
	}
	if _, err := handler.Deliver(nil, nil, nil); err != nil {
		t.Fatalf("deliver: %s", err)
	}
	if d.CallCount() != 2 || h.CallCount() != 2 {
		t.Fatalf("want 2 calls each, got decorator %d, handler %d", d.CallCount(), h.CallCount())
	}

	d.CheckErr = errors.ErrUnauthorized
	if _, err := handler.Check(nil, nil, nil); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %v", err)
	}
	if h.CheckCallCount() != 1 {
		t.Fatalf("handler must not be called on decorator failure")
	}
	if d.CheckCallCount() != 2 {
		t.Fatalf("failing decorator call must be counted")
	}
}

func TestHandlerResult(t *testing.T) {
	h := Handler{
		CheckResult:   weave.CheckResult{Data: []byte("check")},
		DeliverResult: weave.DeliverResult{Data: []byte("deliver")},
		DeliverErr:    errors.ErrAmount,
	}
	cres, err := h.Check(nil, nil, nil)
	if err != nil || string(cres.Data) != "check" {
		t.Fatalf("unexpected check result %v, %v", cres, err)
	}
	if _, err := h.Deliver(nil, nil, nil); !errors.ErrAmount.Is(err) {
		t.Fatalf("want insufficient amount, got %v", err)
	}
	if h.CheckCallCount() != 1 || h.DeliverCallCount() != 1 {
		t.Fatal("every call must be counted")
	}
}

func TestWriteHandler(t *testing.T) {
	db := store.MemStore()
	h := WriteHandler{Key: []byte("k"), Value: []byte("v"), Err: errors.ErrState}
	if _, err := h.Deliver(nil, db, nil); !errors.ErrState.Is(err) {
		t.Fatalf("want invalid state, got %v", err)
	}
	if v, _ := db.Get([]byte("k")); string(v) != "v" {
		t.Fatalf("want value written, got %q", v)
	}
}

func TestAuth(t *testing.T) {
	a, b := NewCondition(), NewCondition()

	auth := Auth{Signer: a}
	if !auth.HasAddress(nil, a.Address()) {
		t.Fatal("signer must be authenticated")
	}
	if auth.HasAddress(nil, b.Address()) {
		t.Fatal("random condition must not be present")
	}

	ctxAuth := CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetConditions(weave.WithChainID(ctxBackground(), "test-chain"), b)
	if !ctxAuth.HasAddress(ctx, b.Address()) {
		t.Fatal("context signer must be authenticated")
	}
	if ctxAuth.HasAddress(ctx, a.Address()) {
		t.Fatal("random condition must not be present")
	}
	if got := (&CtxAuth{Key: "other"}).GetConditions(ctx); got != nil {
		t.Fatalf("want nil, got %v", got)
	}
}

func TestRandomAddr(t *testing.T) {
	a, b := RandomAddr(t), RandomAddr(t)
	if a.Equals(b) {
		t.Fatal("random addresses must differ")
	}
	if !DecodeAddr(t, a.String()).Equals(a) {
		t.Fatal("hex round trip failed")
	}
	if !ParseAddress(t, "hex:"+a.String()).Equals(a) {
		t.Fatal("prefixed hex round trip failed")
	}
}

func ctxBackground() weave.Context {
	return context.Background()
}
