package objbind

import (
	"errors"
	"sync/atomic"
)

// ErrNoInterpreter reports that a native object has no foreign runtime
// bound yet. It is a legitimate query outcome, not a defect.
var ErrNoInterpreter = errors.New("objbind: no runtime interpreter bound")

// VTable is the set of operations a foreign runtime exposes to native
// code. All fields are required.
type VTable struct {
	// Name identifies the runtime in diagnostics.
	Name func() string
	// Decref releases one strong reference to the wrapper at addr.
	// hasSlot tells the runtime the release comes from a native object
	// carrying a Slot.
	Decref func(addr uintptr, hasSlot bool)
}

// Interpreter is the process-lifetime handle to a foreign runtime.
// Slots hold *Interpreter, never the vtable directly, so that a dying
// runtime can be disarmed underneath every slot bound to it.
type Interpreter struct {
	_        noCopy
	disarmed atomic.Bool
	vt       atomic.Pointer[VTable]
}

func NewInterpreter(vt *VTable) *Interpreter {
	if vt == nil || vt.Name == nil || vt.Decref == nil {
		panic("objbind: interpreter vtable is incomplete")
	}
	interp := new(Interpreter)
	interp.vt.Store(vt)
	return interp
}

func (i *Interpreter) Name() string { return i.vt.Load().Name() }

func (i *Interpreter) Decref(addr uintptr, hasSlot bool) {
	i.vt.Load().Decref(addr, hasSlot)
}

// Disarmed reports whether the runtime behind this interpreter has shut
// down.
func (i *Interpreter) Disarmed() bool { return i.disarmed.Load() }

// Disarm swaps in a vtable that leaks wrapper references instead of
// calling into the runtime. A runtime that shuts down while native
// objects still hold wrappers must disarm its interpreter first:
// leaking the wrappers is preferable to touching a dead runtime.
// Disarm is idempotent.
func (i *Interpreter) Disarm() {
	if !i.disarmed.CompareAndSwap(false, true) {
		return
	}
	name := "<disarmed " + i.vt.Load().Name() + ">"
	i.vt.Store(&VTable{
		Name:   func() string { return name },
		Decref: func(uintptr, bool) {},
	})
}
