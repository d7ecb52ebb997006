package intexpr

import (
	"strconv"
	"time"
)

// NumRegisters is the number of slots in a register bank.
const NumRegisters = 36

// Registers is a bank of registers which expressions read with %0 through %9
// and %A through %Z. Slots 0 to 9 are the positional registers; slots 10 to
// 35 are the named registers A to Z. Names are case-insensitive.
type Registers [NumRegisters]uint64

// Conventional named registers set by Standard.
const (
	// RegBits holds the number of bits in a byte.
	RegBits = 'B'
	// RegWidth holds the size in bytes of a value.
	RegWidth = 'W'
	// RegTime holds the time in nanoseconds since the Unix epoch.
	RegTime = 'T'
)

// RegisterIndex returns the slot for a register name. The second result is
// false if c does not name a register.
func RegisterIndex(c byte) (int, bool) {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0'), true
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10, true
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10, true
	default:
		return 0, false
	}
}

// RegisterName returns the canonical name for a slot. Panics if k is not a
// valid slot.
func RegisterName(k int) byte {
	switch {
	case 0 <= k && k < 10:
		return byte('0' + k)
	case 10 <= k && k < NumRegisters:
		return byte('A' + k - 10)
	default:
		panic("intexpr: invalid register slot " + strconv.Itoa(k))
	}
}

// Get returns the value of a register. If c does not name a register, the
// result is 0, false. A nil bank reads as all zeros.
func (r *Registers) Get(c byte) (uint64, bool) {
	k, ok := RegisterIndex(c)
	if !ok {
		return 0, false
	}
	if r == nil {
		return 0, true
	}
	return r[k], true
}

// Set sets the value of a register. Returns an error if c does not name a
// register.
func (r *Registers) Set(c byte, v uint64) error {
	k, ok := RegisterIndex(c)
	if !ok {
		return &RegisterError{Name: string(rune(c))}
	}
	r[k] = v
	return nil
}

// read is the register read used by the grammar.
func (r *Registers) read(k int) uint64 {
	if r == nil {
		return 0
	}
	return r[k]
}

// Standard creates a register bank with the conventional contents: the
// positional registers hold the given values in order, with values past the
// tenth ignored, %B holds the bits per byte, %W holds the byte width of a
// value, and %T holds now as nanoseconds since the Unix epoch.
func Standard(now time.Time, positional ...uint64) *Registers {
	var r Registers
	for i, v := range positional {
		if i >= 10 {
			break
		}
		r[i] = v
	}
	r.Builtins(now)
	return &r
}

// Builtins sets %B, %W, and %T, overwriting any values they held.
func (r *Registers) Builtins(now time.Time) {
	r.Set(RegBits, 8)
	r.Set(RegWidth, 8)
	r.Set(RegTime, uint64(now.Unix())*1e9+uint64(now.Nanosecond()))
}

// RegisterError is an error indicating a name that does not refer to a
// register.
type RegisterError struct {
	// Name is the invalid register name.
	Name string
}

func (err *RegisterError) Error() string {
	return "invalid register name " + strconv.Quote(err.Name)
}
