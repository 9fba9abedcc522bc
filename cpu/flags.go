package cpu

// Flag is the outcome of the most recent comparison. FLAG_UNSET
// holds until the first CMP.
type Flag int

//go:generate go tool stringer -linecomment -type=Flag
const (
	FLAG_UNSET   = Flag(0) // -
	FLAG_EQUAL   = Flag(1) // E
	FLAG_GREATER = Flag(2) // G
	FLAG_LESS    = Flag(3) // L
)

// compare returns the ordering of a against b.
func compare(a, b byte) Flag {
	switch {
	case a > b:
		return FLAG_GREATER
	case a < b:
		return FLAG_LESS
	default:
		return FLAG_EQUAL
	}
}
