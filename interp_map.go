package objbind

import (
	"fmt"

	xsync "github.com/puzpuzpuz/xsync/v2"
)

type _InterpMap struct {
	name2interp   map[string]*Interpreter
	defaultInterp *Interpreter
	mu            *xsync.RBMutex
}

var interpMap = newInterpMap()

func newInterpMap() *_InterpMap {
	return &_InterpMap{
		name2interp: make(map[string]*Interpreter),
		mu:          xsync.NewRBMutex(),
	}
}

func (m *_InterpMap) add(interp *Interpreter, isDefault bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if isDefault && m.defaultInterp != nil {
		panic("objbind: default runtime is already set")
	}

	name := interp.Name()
	if _, exists := m.name2interp[name]; exists {
		panic(fmt.Sprintf("objbind: runtime [name=%s] already registered", name))
	}
	m.name2interp[name] = interp

	if isDefault {
		m.defaultInterp = interp
	}
}

func (m *_InterpMap) remove(interp *Interpreter) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, i := range m.name2interp {
		if i == interp {
			delete(m.name2interp, name)
		}
	}
	if m.defaultInterp == interp {
		m.defaultInterp = nil
	}
}

func (m *_InterpMap) Default() *Interpreter {
	rtok := m.mu.RLock()
	defer m.mu.RUnlock(rtok)
	return m.defaultInterp
}

func (m *_InterpMap) GetByName(name string) *Interpreter {
	rtok := m.mu.RLock()
	defer m.mu.RUnlock(rtok)
	if interp, ok := m.name2interp[name]; ok {
		return interp
	} else {
		panic(fmt.Sprintf("objbind: runtime [name=%s] not exists", name))
	}
}

func (m *_InterpMap) Resolve(interp *Interpreter) *Interpreter {
	if interp != nil {
		return interp
	}
	return m.Default()
}

// RegisterInterpreter publishes a runtime for lookup by name. At most
// one runtime may be the default. A disarmed interpreter stays
// registered until unregistered; registration is keyed by the name at
// registration time.
func RegisterInterpreter(interp *Interpreter, isDefault bool) {
	interpMap.add(interp, isDefault)
}

func UnregisterInterpreter(interp *Interpreter) {
	interpMap.remove(interp)
}

func DefaultInterpreter() *Interpreter { return interpMap.Default() }

// InterpreterByName panics if no runtime with that name is registered.
func InterpreterByName(name string) *Interpreter { return interpMap.GetByName(name) }

// ResolveInterpreter returns interp itself, or the default runtime when
// interp is nil.
func ResolveInterpreter(interp *Interpreter) *Interpreter { return interpMap.Resolve(interp) }
