package cpu

import (
	"errors"
)

// push decrements SP, then writes the contents of register reg at the
// new SP. Pushing SP itself stores the decremented value.
func (cpu *Cpu) push(reg byte) (err error) {
	if int(reg) >= len(cpu.Register) {
		err = ErrRegisterInvalid
		return
	}

	sp := cpu.Register[REG_SP]
	if sp == 0 {
		err = ErrStackFull
		return
	}

	sp--
	cpu.Register[REG_SP] = sp
	err = cpu.Memory.Write(int(sp), cpu.Register[reg])
	return
}

// pop reads the value at SP into register reg, then increments SP.
// Only the STACK_TOP sentinel is recognized as empty.
func (cpu *Cpu) pop(reg byte) (err error) {
	if int(reg) >= len(cpu.Register) {
		err = ErrRegisterInvalid
		return
	}

	sp := cpu.Register[REG_SP]
	if sp == STACK_TOP {
		err = ErrStackEmpty
		return
	}

	value, err := cpu.Memory.Read(int(sp))
	if err != nil {
		return
	}

	if int(sp)+1 >= MEMORY_SIZE {
		err = ErrAccess(int(sp) + 1)
		return
	}

	cpu.Register[reg] = value
	cpu.Register[REG_SP]++
	return
}

// recoverable reports a stack fault on the output channel, and
// lets execution continue.
func (cpu *Cpu) recoverable(err error) error {
	if errors.Is(err, ErrStackFull) || errors.Is(err, ErrStackEmpty) {
		return cpu.notice(err.Error())
	}
	return err
}

func (cpu *Cpu) opPush(a, b byte) (next int, err error) {
	err = cpu.recoverable(cpu.push(a))
	return
}

func (cpu *Cpu) opPop(a, b byte) (next int, err error) {
	err = cpu.recoverable(cpu.pop(a))
	return
}

// opCall stores the return address at SP before decrementing it, and
// takes the target from memory at operand+1 rather than the register.
func (cpu *Cpu) opCall(a, b byte) (next int, err error) {
	sp := cpu.Register[REG_SP]

	ret := cpu.Pc + 2
	if ret >= MEMORY_SIZE {
		err = ErrAccess(ret)
		return
	}

	if sp == 0 {
		err = ErrAccess(-1)
		return
	}

	err = cpu.Memory.Write(int(sp), byte(ret))
	if err != nil {
		return
	}
	cpu.Register[REG_SP] = sp - 1

	target, err := cpu.Memory.Read(int(a) + 1)
	next = int(target)
	return
}

// opRet takes the return address from memory at SP+1, then increments SP.
func (cpu *Cpu) opRet(a, b byte) (next int, err error) {
	sp := cpu.Register[REG_SP]

	target, err := cpu.Memory.Read(int(sp) + 1)
	if err != nil {
		return
	}

	cpu.Register[REG_SP] = sp + 1
	next = int(target)
	return
}
