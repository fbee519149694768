package wrapper

import (
	"github.com/objbind/objbind"
)

// Runtime is an in-process model of a foreign managed runtime: an arena
// of reference-counted wrapper objects plus the interpreter handle the
// binding layer calls back into. Embedding hosts use it as a stand-in
// for a real scripting runtime.
type Runtime struct {
	name   string
	arena  *Arena
	interp *objbind.Interpreter
}

// NewRuntime creates the runtime and registers its interpreter.
func NewRuntime(name string, isDefault bool) *Runtime {
	rt := &Runtime{
		name:  name,
		arena: NewArena(),
	}
	rt.interp = objbind.NewInterpreter(&objbind.VTable{
		Name:   func() string { return rt.name },
		Decref: rt.decref,
	})
	objbind.RegisterInterpreter(rt.interp, isDefault)
	return rt
}

func (rt *Runtime) Name() string { return rt.name }

func (rt *Runtime) Interpreter() *objbind.Interpreter { return rt.interp }

func (rt *Runtime) Arena() *Arena { return rt.arena }

func (rt *Runtime) decref(addr uintptr, hasSlot bool) {
	_ = hasSlot // the model runtime keeps no per-slot bookkeeping
	rt.arena.Decref(addr)
}

// NewWrapper allocates a wrapper shadowing the native object behind
// slot and hands its initial strong reference to the native side.
func (rt *Runtime) NewWrapper(slot *objbind.Slot) (uintptr, error) {
	addr := rt.arena.Alloc()
	if err := objbind.BindWrapper(slot, rt.interp, addr); err != nil {
		rt.arena.Decref(addr)
		return 0, err
	}
	return addr, nil
}

// Shutdown disarms the interpreter and unregisters it, then reports how
// many wrappers are leaked: native objects still owning references will
// no-op their teardown from now on, so those records stay live forever.
func (rt *Runtime) Shutdown() (leaked int) {
	rt.interp.Disarm()
	objbind.UnregisterInterpreter(rt.interp)
	leaked = rt.arena.Len()
	if leaked == 0 {
		rt.arena.Release()
	}
	return leaked
}
