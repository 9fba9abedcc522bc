package cpu

const (
	REGISTER_COUNT = 8    // Number of general purpose registers.
	REG_SP         = 7    // Register doubling as the stack pointer.
	STACK_TOP      = 0xF4 // Initial stack pointer; also the empty stack sentinel.
)

// Registers is the register file. R7 is the stack pointer by convention
// only; arithmetic and moves may target it.
type Registers [REGISTER_COUNT]byte

// Get returns the value of a register.
func (reg *Registers) Get(index byte) (value byte, err error) {
	if int(index) >= len(reg) {
		err = ErrRegisterInvalid
		return
	}

	value = reg[index]
	return
}

// Set sets the value of a register.
func (reg *Registers) Set(index byte, value byte) (err error) {
	if int(index) >= len(reg) {
		err = ErrRegisterInvalid
		return
	}

	reg[index] = value
	return
}
