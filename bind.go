package objbind

import "errors"

// ErrAlreadyBound reports that a slot already has a runtime bound. A
// binding is permanent for the slot's lifetime; rebinding, even to the
// same runtime, is rejected.
var ErrAlreadyBound = errors.New("objbind: slot is already bound to a runtime")

// BindWrapper binds interp to slot, records the wrapper address and
// takes the strong reference to the wrapper, in that order. This is the
// only ordering under which a concurrent destroyer can trust the
// ownership bit: the bit is set last, after the interpreter and address
// it implies are in place.
//
// The raw Slot operations do not enforce that ordering themselves;
// callers establishing a binding by hand inherit the obligation, with a
// fatal check at teardown as the only guard.
func BindWrapper(slot *Slot, interp *Interpreter, addr uintptr) error {
	if interp == nil {
		panic("objbind: expect non-nil interpreter")
	}
	if addr == 0 || addr&ownsBit != 0 {
		panic("objbind: wrapper address must be non-zero and aligned")
	}
	if !slot.bindInterpreter(interp) {
		return ErrAlreadyBound
	}
	slot.setWrapperAddr(addr)
	bindTable.m.Store(addr, slot)
	slot.SetOwnsWrapper(true)
	return nil
}

// ReleaseOwnership hands the strong wrapper reference back to the
// foreign side without tearing the binding down: the slot stays bound
// and keeps its address, but destruction will no longer release
// anything.
func ReleaseOwnership(slot *Slot) {
	slot.SetOwnsWrapper(false)
}
