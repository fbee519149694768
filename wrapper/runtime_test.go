package wrapper

import (
	"testing"

	"github.com/objbind/objbind"
)

func TestRuntimeWrapperLifecycle(t *testing.T) {
	rt := NewRuntime("lifecycle", true)

	if objbind.DefaultInterpreter() != rt.Interpreter() {
		t.Fatal("runtime interpreter is not the default")
	}

	var s objbind.Slot
	addr, err := rt.NewWrapper(&s)
	if err != nil {
		t.Fatal(err)
	}
	if !s.OwnsWrapper() || s.WrapperAddr() != addr {
		t.Fatal("NewWrapper left the slot in an unexpected state")
	}
	if got, ok := objbind.LookupSlot(addr); !ok || got != &s {
		t.Fatal("wrapper address does not resolve to the slot")
	}
	if rt.Arena().Refcnt(addr) != 1 {
		t.Fatalf("wrapper refcnt = %d, want 1", rt.Arena().Refcnt(addr))
	}

	s.Destroy()
	if rt.Arena().Alive(addr) {
		t.Fatal("wrapper survived native object destruction")
	}
	if leaked := rt.Shutdown(); leaked != 0 {
		t.Fatalf("Shutdown() leaked %d wrappers", leaked)
	}
}

func TestRuntimeRejectsSecondWrapper(t *testing.T) {
	rt := NewRuntime("second", false)

	var s objbind.Slot
	if _, err := rt.NewWrapper(&s); err != nil {
		t.Fatal(err)
	}
	if _, err := rt.NewWrapper(&s); err != objbind.ErrAlreadyBound {
		t.Fatalf("second NewWrapper: err = %v, want ErrAlreadyBound", err)
	}
	if rt.Arena().Len() != 1 {
		t.Fatalf("failed bind leaked an arena record: Len() = %d", rt.Arena().Len())
	}

	s.Destroy()
	if leaked := rt.Shutdown(); leaked != 0 {
		t.Fatalf("Shutdown() leaked %d wrappers", leaked)
	}
}

func TestRuntimeShutdownLeaks(t *testing.T) {
	rt := NewRuntime("leaky", false)

	var s objbind.Slot
	addr, err := rt.NewWrapper(&s)
	if err != nil {
		t.Fatal(err)
	}

	if leaked := rt.Shutdown(); leaked != 1 {
		t.Fatalf("Shutdown() = %d leaked, want 1", leaked)
	}
	if !rt.Interpreter().Disarmed() {
		t.Fatal("Shutdown did not disarm the interpreter")
	}

	// the native object dies later; its teardown must not reach the
	// dead runtime, so the wrapper record stays leaked
	s.Destroy()
	if !rt.Arena().Alive(addr) {
		t.Fatal("teardown reached a runtime that already shut down")
	}
}
