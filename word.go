package objbind

// The wrapper word packs two logically independent fields into one
// atomic uintptr: bits[1..] hold the foreign wrapper address, bit 0
// records whether the native object owns a strong reference to it.
// Co-locating them means a flag toggle and an address read can never
// observe each other half-done.

const ownsBit uintptr = 1

func packWrapperWord(addr uintptr, owns bool) uintptr {
	word := addr &^ ownsBit
	if owns {
		word |= ownsBit
	}
	return word
}

func wrapperWordAddr(word uintptr) uintptr { return word &^ ownsBit }
func wrapperWordOwns(word uintptr) bool    { return word&ownsBit != 0 }
