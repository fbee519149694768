package wrapper

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	xsync "github.com/puzpuzpuz/xsync/v2"
)

// Wrapper addresses are synthetic: dense record ids shifted to look
// like 16-byte aligned pointers, keeping the low bits clear for tag
// bits on the native side.
const addrShift = 4

func addrOf(id uint32) uintptr { return (uintptr(id) + 1) << addrShift }
func idOf(addr uintptr) uint32 { return uint32(addr>>addrShift) - 1 }

type record struct {
	refcnt uint32
	alive  bool
}

// Arena is the wrapper-object space of a model foreign runtime. Each
// record carries its own reference count, independent of the native
// object's; the binding layer moves one strong reference between the
// two sides.
type Arena struct {
	mu      *xsync.RBMutex
	ids     *bitset.BitSet
	records []record
}

func NewArena() *Arena {
	return &Arena{
		mu:  xsync.NewRBMutex(),
		ids: bitsetGet(),
	}
}

// Alloc creates a wrapper record holding one strong reference and
// returns its address.
func (a *Arena) Alloc() uintptr {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, ok := bitsetFillFirstClear(a.ids)
	if !ok {
		panic("objbind: wrapper arena exhausted")
	}
	for int(id) >= len(a.records) {
		a.records = append(a.records, record{})
	}
	a.records[id] = record{refcnt: 1, alive: true}
	return addrOf(id)
}

func (a *Arena) Incref(addr uintptr) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record(addr).refcnt++
}

// Decref drops one strong reference. At zero the record dies and its id
// becomes reusable. Reports whether the record was freed.
func (a *Arena) Decref(addr uintptr) (freed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec := a.record(addr)
	rec.refcnt--
	if rec.refcnt == 0 {
		rec.alive = false
		a.ids.Clear(uint(idOf(addr)))
		return true
	}
	return false
}

func (a *Arena) Alive(addr uintptr) bool {
	rtok := a.mu.RLock()
	defer a.mu.RUnlock(rtok)
	id := idOf(addr)
	return int(id) < len(a.records) && a.records[id].alive
}

func (a *Arena) Refcnt(addr uintptr) uint32 {
	rtok := a.mu.RLock()
	defer a.mu.RUnlock(rtok)
	id := idOf(addr)
	if int(id) >= len(a.records) || !a.records[id].alive {
		return 0
	}
	return a.records[id].refcnt
}

// Len returns the number of live wrapper records.
func (a *Arena) Len() int {
	rtok := a.mu.RLock()
	defer a.mu.RUnlock(rtok)
	return int(a.ids.Count())
}

// Release returns the arena's id set to the shared pool. Only valid
// once no records are live.
func (a *Arena) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ids.Count() != 0 {
		panic("objbind: releasing a wrapper arena with live records")
	}
	bitsetRecycle(a.ids)
	a.ids = nil
	a.records = nil
}

func (a *Arena) record(addr uintptr) *record {
	id := idOf(addr)
	if int(id) >= len(a.records) || !a.records[id].alive {
		panic(fmt.Sprintf("objbind: no live wrapper at address %#x", addr))
	}
	return &a.records[id]
}
