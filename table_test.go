package objbind

import "testing"

func TestBindTableLifecycle(t *testing.T) {
	_, interp := newCountingInterp("table")

	var s Slot
	if _, ok := LookupSlot(0xB000); ok {
		t.Fatal("table has an entry before binding")
	}

	if err := BindWrapper(&s, interp, 0xB000); err != nil {
		t.Fatal(err)
	}
	got, ok := LookupSlot(0xB000)
	if !ok || got != &s {
		t.Fatal("bound slot not found by wrapper address")
	}
	// lookups tolerate a tagged address
	if got, ok := LookupSlot(0xB000 | ownsBit); !ok || got != &s {
		t.Fatal("tagged-address lookup failed")
	}

	s.Destroy()
	if _, ok := LookupSlot(0xB000); ok {
		t.Fatal("table entry survived slot destruction")
	}
}

func TestBindTableDropsRelinquishedSlots(t *testing.T) {
	_, interp := newCountingInterp("table2")

	var s Slot
	if err := BindWrapper(&s, interp, 0xC000); err != nil {
		t.Fatal(err)
	}
	ReleaseOwnership(&s)
	if _, ok := LookupSlot(0xC000); !ok {
		t.Fatal("relinquishing ownership must not drop the binding")
	}
	s.Destroy()
	if _, ok := LookupSlot(0xC000); ok {
		t.Fatal("destruction left a stale table entry")
	}
}

func TestBindWrapperValidatesArgs(t *testing.T) {
	_, interp := newCountingInterp("args")
	var s Slot

	for name, f := range map[string]func(){
		"nil interpreter": func() { _ = BindWrapper(&s, nil, 0xD000) },
		"zero address":    func() { _ = BindWrapper(&s, interp, 0) },
		"tagged address":  func() { _ = BindWrapper(&s, interp, 0xD001) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s: BindWrapper did not panic", name)
				}
			}()
			f()
		}()
	}
	if s.Interpreter() != nil || s.WrapperAddr() != 0 {
		t.Fatal("rejected bind mutated the slot")
	}
}
