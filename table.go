package objbind

import (
	"github.com/puzpuzpuz/xsync/v2"
)

type _bindTable struct {
	m *xsync.MapOf[uintptr, *Slot]
}

var bindTable _bindTable

func init() {
	bindTable.m = xsync.NewIntegerMapOf[uintptr, *Slot]()
}

// LookupSlot resolves a wrapper address back to the slot of the native
// object it shadows. Foreign runtimes use it to probe whether a wrapper
// reached from a weak reference still has a live native object behind
// it.
func LookupSlot(addr uintptr) (*Slot, bool) {
	return bindTable.m.Load(addr &^ ownsBit)
}

// NumBound returns the number of wrappers currently bound to native
// objects across all runtimes.
func NumBound() int {
	return bindTable.m.Size()
}
