package cpu

const (
	MEMORY_SIZE = 256 // Size of the flat address space.
)

// Memory is the flat byte store shared by code, data and the stack.
type Memory [MEMORY_SIZE]byte

// Read returns the byte at address.
func (mem *Memory) Read(address int) (value byte, err error) {
	if address < 0 || address >= len(mem) {
		err = ErrAccess(address)
		return
	}

	value = mem[address]
	return
}

// Write stores a byte at address.
func (mem *Memory) Write(address int, value byte) (err error) {
	if address < 0 || address >= len(mem) {
		err = ErrAccess(address)
		return
	}

	mem[address] = value
	return
}

// Load copies an image into memory, starting at address 0.
func (mem *Memory) Load(image []byte) (err error) {
	if len(image) > len(mem) {
		err = ErrAccess(len(image) - 1)
		return
	}

	copy(mem[:], image)
	return
}
