package objbind

import "sync/atomic"

// Slot associates a native object with its shadow wrapper living in a
// foreign runtime. The wrapper word packs the wrapper address with an
// ownership bit (bit 0): when the bit is set, the native object holds a
// strong reference to the wrapper and must release it exactly once at
// destruction.
//
// A Slot is safe for concurrent use without external locking. The zero
// value is an unbound slot.
type Slot struct {
	_       noCopy
	interp  atomic.Pointer[Interpreter]
	wrapper atomic.Uintptr
}

// Interpreter returns the runtime this slot is bound to, or nil.
func (s *Slot) Interpreter() *Interpreter {
	return s.interp.Load()
}

// LoadInterpreter is like Interpreter but reports ErrNoInterpreter
// instead of returning nil.
func (s *Slot) LoadInterpreter() (*Interpreter, error) {
	if interp := s.interp.Load(); interp != nil {
		return interp, nil
	}
	return nil, ErrNoInterpreter
}

// WrapperAddr returns the wrapper address with the ownership bit masked
// off, or 0 if no wrapper has been associated. The address is never
// dereferenced by this package.
func (s *Slot) WrapperAddr() uintptr {
	return wrapperWordAddr(s.wrapper.Load())
}

// OwnsWrapper reports whether the native object currently holds a
// strong reference to the wrapper.
func (s *Slot) OwnsWrapper() bool {
	return wrapperWordOwns(s.wrapper.Load())
}

// SetOwnsWrapper flips the ownership bit, leaving the wrapper address
// untouched even if it is concurrently rewritten.
func (s *Slot) SetOwnsWrapper(owns bool) {
	for {
		old := s.wrapper.Load()
		if s.wrapper.CompareAndSwap(old, packWrapperWord(old, owns)) {
			return
		}
	}
}

// CheckWrapper returns the wrapper address as seen by interp: None if
// the slot is unbound, Some(addr) if interp is the bound runtime.
// A slot never serves two runtimes; asking on behalf of a different one
// is a defect in the caller.
func (s *Slot) CheckWrapper(interp *Interpreter) Optional[uintptr] {
	switch bound := s.interp.Load(); bound {
	case nil:
		return None[uintptr]()
	case interp:
		return Some(s.WrapperAddr())
	}
	panic("objbind: wrapper is owned by another runtime")
}

func (s *Slot) bindInterpreter(interp *Interpreter) bool {
	return s.interp.CompareAndSwap(nil, interp)
}

func (s *Slot) setWrapperAddr(addr uintptr) {
	for {
		old := s.wrapper.Load()
		if s.wrapper.CompareAndSwap(old, packWrapperWord(addr, wrapperWordOwns(old))) {
			return
		}
	}
}

// Destroy releases the owned wrapper reference, if any, and drops the
// slot from the bind table. It must only be called from the native
// object's own destruction path, when neither the native object nor the
// wrapper has outstanding strong references; after it returns the slot
// is inert.
func (s *Slot) Destroy() {
	addr := s.WrapperAddr()
	s.maybeDestroyWrapper()
	if addr != 0 {
		bindTable.m.Delete(addr)
	}
}

func (s *Slot) maybeDestroyWrapper() {
	if !s.OwnsWrapper() {
		return
	}
	interp := s.interp.Load()
	if interp == nil {
		panic("objbind: slot owns a wrapper but no runtime is bound")
	}
	addr := s.WrapperAddr()
	if addr == 0 {
		panic("objbind: slot owns a wrapper at address zero")
	}
	interp.Decref(addr, true)
	// Destruction is only reachable when there are no references left
	// to the native object, nor to the wrapper (a live wrapper keeps
	// its native object alive). So nothing can legitimately read this
	// word anymore and it is cleared without further ordering, modulo
	// weak reference races on the foreign side.
	s.wrapper.Store(0)
}
