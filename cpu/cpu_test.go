package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

// newTestCpu returns a CPU with the image loaded, and its recorded output.
func newTestCpu(t *testing.T, image ...byte) (cpu *Cpu, rec *io.Record) {
	cpu = NewCpu()
	rec = &io.Record{}
	cpu.SetChannel(rec)

	err := cpu.Load(image)
	assert.NoError(t, err)

	return
}

// runCpu ticks until halt or error.
func runCpu(cpu *Cpu) (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}
	return
}

func TestNewCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(0, cpu.Pc)
	assert.Equal(byte(STACK_TOP), cpu.Register[REG_SP])
	assert.Equal(FLAG_UNSET, cpu.Flag)
	assert.False(cpu.Halted)
	for n := range REG_SP {
		assert.Equal(byte(0), cpu.Register[n])
	}
}

func TestLdi(t *testing.T) {
	assert := assert.New(t)

	for reg := range byte(REGISTER_COUNT) {
		for _, value := range []byte{0, 1, 0x7f, 0x80, 0xff} {
			cpu, _ := newTestCpu(t, byte(OP_LDI), reg, value)
			err := cpu.Tick()
			assert.NoError(err)
			assert.Equal(value, cpu.Register[reg])
			assert.Equal(3, cpu.Pc)
		}
	}
}

func TestLdiRegisterInvalid(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, byte(OP_LDI), 8, 1)
	err := cpu.Tick()
	assert.ErrorIs(err, ErrRegisterInvalid)
	assert.Equal(0, cpu.Pc)
}

func TestPrn(t *testing.T) {
	assert := assert.New(t)

	cpu, rec := newTestCpu(t, byte(OP_PRN), 3)
	cpu.Register[3] = 0xa5

	err := cpu.Tick()
	assert.NoError(err)
	assert.Equal([]byte{0xa5}, rec.Values)
	assert.Equal(2, cpu.Pc)
	assert.Equal(byte(0xa5), cpu.Register[3])
}

func TestPrnNoChannel(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]byte{byte(OP_PRN), 0}))
	assert.ErrorIs(cpu.Tick(), ErrChannelInvalid)
}

func TestArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		op     Code
		a, b   byte
		result byte
	}{
		{"add", OP_ADD, 2, 3, 5},
		{"add_wrap", OP_ADD, 0xff, 2, 1},
		{"sub", OP_SUB, 9, 4, 5},
		{"sub_wrap", OP_SUB, 0, 1, 0xff},
		{"mul", OP_MUL, 2, 3, 6},
		{"mul_wrap", OP_MUL, 16, 17, 16},
		{"div", OP_DIV, 7, 2, 3},
		{"div_one", OP_DIV, 200, 1, 200},
	}

	for _, entry := range table {
		cpu, _ := newTestCpu(t, byte(entry.op), 0, 1)
		cpu.Register[0] = entry.a
		cpu.Register[1] = entry.b

		err := cpu.Tick()
		assert.NoError(err, entry.name)
		assert.Equal(entry.result, cpu.Register[0], entry.name)
		assert.Equal(entry.b, cpu.Register[1], entry.name)
		assert.Equal(3, cpu.Pc, entry.name)
	}
}

func TestDivisionByZero(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, byte(OP_DIV), 0, 1)
	cpu.Register[0] = 10

	err := cpu.Tick()
	assert.ErrorIs(err, ErrDivisionByZero)
	assert.Equal(byte(10), cpu.Register[0])
	assert.Equal(0, cpu.Pc)
}

func TestAluUnsupported(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	err := cpu.Alu(AluOp(99), 0, 1)
	assert.ErrorIs(err, ErrAluUnsupported)
}

func TestCompare(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		a, b byte
		flag Flag
	}{
		{1, 1, FLAG_EQUAL},
		{2, 1, FLAG_GREATER},
		{1, 2, FLAG_LESS},
		{0xff, 0, FLAG_GREATER},
		{0, 0, FLAG_EQUAL},
	}

	cpu := NewCpu()
	for _, entry := range table {
		cpu.Register[0] = entry.a
		cpu.Register[1] = entry.b
		err := cpu.Alu(ALU_OP_CMP, 0, 1)
		assert.NoError(err)
		assert.Equal(entry.flag, cpu.Flag, "%v vs %v", entry.a, entry.b)
	}
}

func TestCompareUsesContents(t *testing.T) {
	assert := assert.New(t)

	// Register 5 holds less than register 2, although 5 > 2.
	cpu, _ := newTestCpu(t, byte(OP_CMP), 5, 2)
	cpu.Register[5] = 1
	cpu.Register[2] = 9

	assert.NoError(cpu.Tick())
	assert.Equal(FLAG_LESS, cpu.Flag)
	assert.Equal(3, cpu.Pc)
}

func TestJumps(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name  string
		op    Code
		flag  Flag
		taken bool
	}{
		{"jmp", OP_JMP, FLAG_UNSET, true},
		{"jeq_equal", OP_JEQ, FLAG_EQUAL, true},
		{"jeq_greater", OP_JEQ, FLAG_GREATER, false},
		{"jeq_less", OP_JEQ, FLAG_LESS, false},
		{"jeq_unset", OP_JEQ, FLAG_UNSET, false},
		{"jne_equal", OP_JNE, FLAG_EQUAL, false},
		{"jne_greater", OP_JNE, FLAG_GREATER, true},
		{"jne_less", OP_JNE, FLAG_LESS, true},
		{"jne_unset", OP_JNE, FLAG_UNSET, true},
	}

	for _, entry := range table {
		cpu, _ := newTestCpu(t, byte(entry.op), 4)
		cpu.Register[4] = 0x40
		cpu.Flag = entry.flag

		err := cpu.Tick()
		assert.NoError(err, entry.name)
		if entry.taken {
			assert.Equal(0x40, cpu.Pc, entry.name)
		} else {
			assert.Equal(2, cpu.Pc, entry.name)
		}
		assert.Equal(entry.flag, cpu.Flag, entry.name)
	}
}

func TestHalt(t *testing.T) {
	assert := assert.New(t)

	cpu, rec := newTestCpu(t,
		byte(OP_HLT),
		byte(OP_LDI), 0, 1,
	)

	assert.NoError(cpu.Tick())
	assert.True(cpu.Halted)
	assert.Equal(0, cpu.Pc)
	assert.Equal([]string{"halt!"}, rec.Notices)

	err := cpu.Tick()
	assert.ErrorIs(err, ErrHalted)
	assert.Equal(byte(0), cpu.Register[0])
	assert.Equal(1, cpu.Ticks)
}

func TestUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t,
		byte(OP_LDI), 0, 1,
		0xff,
	)

	assert.NoError(cpu.Tick())
	err := cpu.Tick()
	assert.ErrorIs(err, ErrOpcodeUnknown)

	var eo ErrOpcode
	assert.True(errors.As(err, &eo))
	assert.Equal(Code(0xff), eo.Opcode)
	assert.Equal(3, eo.Address)
	assert.Contains(err.Error(), "0xff")
	assert.Contains(err.Error(), "0x03")
}

func TestFetchEndOfMemory(t *testing.T) {
	assert := assert.New(t)

	// A one byte instruction at the last address runs, even though the
	// operand window is past the end of memory.
	cpu, rec := newTestCpu(t)
	cpu.Memory[MEMORY_SIZE-1] = byte(OP_HLT)
	cpu.Pc = MEMORY_SIZE - 1

	fetched, err := cpu.Fetch()
	assert.NoError(err)
	assert.Equal(1, fetched.Valid)

	assert.NoError(cpu.Tick())
	assert.True(cpu.Halted)
	assert.Equal([]string{"halt!"}, rec.Notices)

	// A two byte instruction there is a fault.
	cpu, _ = newTestCpu(t)
	cpu.Memory[MEMORY_SIZE-1] = byte(OP_PRN)
	cpu.Pc = MEMORY_SIZE - 1

	err = cpu.Tick()
	assert.ErrorIs(err, ErrAddress)
	var ea ErrAccess
	assert.True(errors.As(err, &ea))
	assert.Equal(ErrAccess(MEMORY_SIZE), ea)
}

func TestPcOutOfRange(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t)
	cpu.Pc = MEMORY_SIZE

	err := cpu.Tick()
	assert.ErrorIs(err, ErrAddress)
}

func TestLoadTooLarge(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	err := cpu.Load(make([]byte, MEMORY_SIZE+1))
	assert.ErrorIs(err, ErrAddress)

	err = cpu.Load(make([]byte, MEMORY_SIZE))
	assert.NoError(err)
}

func TestTraceLine(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, byte(OP_LDI), 0, 8)
	cpu.Register[1] = 0xab

	assert.Equal("TRACE: 00 | 82 00 08 | 00 AB 00 00 00 00 00 F4", cpu.TraceLine())

	cpu.Pc = MEMORY_SIZE - 1
	assert.Equal("TRACE: FF | 00 00 00 | 00 AB 00 00 00 00 00 F4", cpu.TraceLine())
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t,
		byte(OP_LDI), 0, 8,
		byte(OP_PRN), 0,
		byte(OP_HLT),
		0x00,
	)

	table := []struct {
		address int
		text    string
		size    int
	}{
		{0, "LDI R0,8", 3},
		{3, "PRN R0", 2},
		{5, "HLT", 1},
		{6, ".byte 0x00", 1},
	}

	for _, entry := range table {
		text, size := cpu.Disassemble(entry.address)
		assert.Equal(entry.text, text)
		assert.Equal(entry.size, size)
	}
}

func TestCodeString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("LDI", OP_LDI.String())
	assert.Equal("JNE", OP_JNE.String())
	assert.Equal("Code(0x00)", Code(0).String())
}

func TestEnumString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add", ALU_OP_ADD.String())
	assert.Equal("cmp", ALU_OP_CMP.String())
	assert.Equal("AluOp(9)", AluOp(9).String())
	assert.Equal("-", FLAG_UNSET.String())
	assert.Equal("L", FLAG_LESS.String())
	assert.Equal("reg", OPERAND_REG.String())
	assert.Equal("stop", PC_STOP.String())
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range NewCpu().Defines() {
		defines[key] = value
	}

	assert.Equal("256", defines["MEMORY_SIZE"])
	assert.Equal("0xf4", defines["STACK_TOP"])
	assert.Equal("7", defines["REG_SP"])
	assert.Equal("0x82", defines["OP_LDI"])
	assert.Equal("0x01", defines["OP_HLT"])
}

func TestPrint8(t *testing.T) {
	assert := assert.New(t)

	cpu, rec := newTestCpu(t,
		byte(OP_LDI), 0, 8,
		byte(OP_PRN), 0,
		byte(OP_HLT),
	)

	assert.NoError(runCpu(cpu))
	assert.Equal([]byte{8}, rec.Values)
	assert.Equal(3, cpu.Ticks)
}

func TestMult(t *testing.T) {
	assert := assert.New(t)

	cpu, rec := newTestCpu(t,
		byte(OP_LDI), 0, 2,
		byte(OP_LDI), 1, 3,
		byte(OP_MUL), 0, 1,
		byte(OP_PRN), 0,
		byte(OP_HLT),
	)

	assert.NoError(runCpu(cpu))
	assert.Equal([]byte{6}, rec.Values)
}
