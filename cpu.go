// cpu.go - V810-class instruction interpreter ("NVC")
//
// Register file, processor status word, system registers, and the
// fetch/decode/execute loop. The CPU never touches a clock or a sink
// directly; it borrows a Bus for one instruction at a time and returns
// how many cycles that instruction cost. The console facade is what
// drives cycles into the rest of the machine between steps.

package main

import (
	"fmt"
	"math"
)

// Bus is everything the CPU needs from the interconnect to fetch, load
// and store. The CPU aligns its load/store addresses (halfword: bit 0
// cleared, word: bits 0-1 cleared) and bus implementations mask them again.
type Bus interface {
	ReadByte(addr uint32) uint8
	ReadHalfword(addr uint32) uint16
	ReadWord(addr uint32) uint32
	WriteByte(addr uint32, v uint8)
	WriteHalfword(addr uint32, v uint16)
	WriteWord(addr uint32, v uint32)
}

// PSW flag bits, laid out the way the V810 processor status word is.
const (
	PSWZ  uint32 = 1 << 0  // zero
	PSWS  uint32 = 1 << 1  // sign
	PSWOV uint32 = 1 << 2  // overflow
	PSWCY uint32 = 1 << 3  // carry

	PSWFPR uint32 = 1 << 4 // floating reserved operand (sticky)
	PSWFUD uint32 = 1 << 5 // floating underflow (sticky)
	PSWFOV uint32 = 1 << 6 // floating overflow (sticky)
	PSWFZD uint32 = 1 << 7 // floating zero divide (sticky)
	PSWFIV uint32 = 1 << 8 // floating invalid operation (sticky)

	PSWID uint32 = 1 << 12 // interrupt disable
	PSWAE uint32 = 1 << 13 // address trap enable
	PSWEP uint32 = 1 << 14 // exception pending (in a level-1 handler)
	PSWNP uint32 = 1 << 15 // NMI/duplexed-exception pending

	pswInterruptLevelShift = 16
	pswInterruptLevelMask  = 0xF
)

// Internal exception vectors (full 32-bit handler addresses). Hardware
// interrupt vectors (timer, VIP) are 16-bit codes OR'd with 0xFFFF0000
// instead; see RequestInterrupt.
const (
	vectorFPInvalid     uint32 = 0xFFFFFF60
	vectorFPZeroDivide  uint32 = 0xFFFFFF68
	vectorFPOverflow    uint32 = 0xFFFFFF70
	vectorFPReserved    uint32 = 0xFFFFFF78
	vectorZeroDivision  uint32 = 0xFFFFFF80
	vectorInvalidOpcode uint32 = 0xFFFFFF90
	vectorTrapLow       uint32 = 0xFFFFFFA0
	vectorTrapHigh      uint32 = 0xFFFFFFB0
	vectorAddressTrap   uint32 = 0xFFFFFFC0
	vectorDuplexed      uint32 = 0xFFFFFFD0
	vectorReset         uint32 = 0xFFFFFFF0
)

// CPU holds the V810-class register file and exception state.
type CPU struct {
	gpr [32]uint32
	pc  uint32
	psw uint32

	eipc  uint32
	eipsw uint32
	fepc  uint32
	fepsw uint32
	ecr   uint32
	chcw  uint32

	halted bool

	// pendingInterrupt latches a hardware interrupt that arrived while
	// masked (PSW.ID/NP/EP, or a lower level than already in service) so
	// Step can re-attempt delivery once the mask clears, per errors.go's
	// InterruptMaskedError contract: latched, not dropped.
	pendingInterrupt    bool
	pendingInterruptVec uint16

	watchpoints   map[uint32]bool
	watchpointHit bool
}

// NewCPU returns a CPU in its post-reset state.
func NewCPU() *CPU {
	cpu := &CPU{watchpoints: make(map[uint32]bool)}
	cpu.Reset()
	return cpu
}

func (cpu *CPU) Reset() {
	for i := range cpu.gpr {
		cpu.gpr[i] = 0
	}
	cpu.pc = vectorReset
	cpu.psw = PSWNP
	cpu.eipc, cpu.eipsw, cpu.fepc, cpu.fepsw, cpu.ecr, cpu.chcw = 0, 0, 0, 0, 0, 0
	cpu.halted = false
	cpu.watchpointHit = false
	cpu.pendingInterrupt = false
	cpu.pendingInterruptVec = 0
}

func (cpu *CPU) PC() uint32 { return cpu.pc }
func (cpu *CPU) PSW() uint32 { return cpu.psw }
func (cpu *CPU) Halted() bool { return cpu.halted }

func (cpu *CPU) GPR(i int) uint32 {
	if i == 0 {
		return 0
	}
	return cpu.gpr[i&0x1F]
}

func (cpu *CPU) setGPR(i int, v uint32) {
	if i == 0 {
		return // r0 is hard-wired zero
	}
	cpu.gpr[i&0x1F] = v
}

// SetWatchpoint and ClearWatchpoint arm/disarm an address for step()'s
// watchpoint_hit return. Registration itself is a host-side concern; the
// CPU only consults the set during load/store.
func (cpu *CPU) SetWatchpoint(addr uint32) { cpu.watchpoints[addr] = true }

func (cpu *CPU) ClearWatchpoint(addr uint32) { delete(cpu.watchpoints, addr) }

func (cpu *CPU) checkWatchpoint(addr uint32) {
	if cpu.watchpoints[addr] {
		cpu.watchpointHit = true
	}
}

// Step fetches, decodes and executes one instruction, returning the
// cycle cost charged to it and whether a load/store in this step touched
// an armed watchpoint.
func (cpu *CPU) Step(bus Bus) (cycles int, watchpointHit bool) {
	cpu.watchpointHit = false

	if cpu.pendingInterrupt && cpu.tryDeliverInterrupt(cpu.pendingInterruptVec) {
		cpu.pendingInterrupt = false
	}

	if cpu.halted {
		return 1, false
	}

	pc := cpu.pc
	first := bus.ReadHalfword(pc)
	dec, err := Decode(first)
	if err != nil {
		cpu.raiseException(vectorInvalidOpcode)
		return 1, cpu.watchpointHit
	}

	var second uint16
	if dec.Format.HasSecondHalfword() {
		second = bus.ReadHalfword(pc + 2)
	}

	nextPC := pc + 2
	if dec.Format.HasSecondHalfword() {
		nextPC = pc + 4
	}
	cpu.pc = nextPC

	cycles = dec.Cycles
	switch dec.Format {
	case FormatI:
		cycles = cpu.execFormatI(bus, dec, first)
	case FormatII:
		cycles = cpu.execFormatII(dec, first)
	case FormatIII:
		cycles = cpu.execFormatIII(pc, dec, first)
	case FormatIV:
		cycles = cpu.execFormatIV(pc, dec, first, second)
	case FormatV:
		cpu.execFormatV(dec, first, second)
	case FormatVI:
		cycles = cpu.execFormatVI(bus, dec, first, second)
	case FormatVII:
		cpu.execFormatVII(dec, first, second)
	}

	return cycles, cpu.watchpointHit
}

// RequestInterrupt models an external hardware interrupt (timer, VIP).
// vector is the 16-bit hardware code (e.g. 0xFE10); the full handler
// address is 0xFFFF0000 | vector. Returns an error (not fatal - just
// informative) when the interrupt could not be delivered and was
// latched instead, per §7 InterruptMasked.
func (cpu *CPU) RequestInterrupt(vector uint16) error {
	if cpu.tryDeliverInterrupt(vector) {
		return nil
	}
	cpu.pendingInterrupt = true
	cpu.pendingInterruptVec = vector
	return &InterruptMaskedError{Vector: vector}
}

// tryDeliverInterrupt attempts immediate delivery of vector, reporting
// whether the CPU accepted it. Shared by RequestInterrupt and Step's
// latched-pending retry so both go through identical masking rules.
func (cpu *CPU) tryDeliverInterrupt(vector uint16) bool {
	level := (uint32(vector) >> 4) & pswInterruptLevelMask
	currentLevel := (cpu.psw >> pswInterruptLevelShift) & pswInterruptLevelMask

	if cpu.psw&PSWID != 0 || cpu.psw&PSWNP != 0 || cpu.psw&PSWEP != 0 || level < currentLevel {
		return false
	}

	cpu.halted = false
	cpu.eipc = cpu.pc
	cpu.eipsw = cpu.psw
	cpu.ecr = uint32(vector)
	cpu.psw |= PSWEP | PSWID
	cpu.psw = (cpu.psw &^ (pswInterruptLevelMask << pswInterruptLevelShift)) | (level << pswInterruptLevelShift)
	cpu.pc = 0xFFFF0000 | uint32(vector)
	return true
}

// raiseException delivers a CPU-internal exception (invalid opcode,
// division error, invalid system register, FP exception). Unlike
// RequestInterrupt these cannot be masked; if the CPU is already in a
// duplexed (NP=1) exception, a further exception is fatal per §4.2.
func (cpu *CPU) raiseException(vector uint32) {
	if cpu.psw&PSWNP != 0 {
		cpu.halted = true
		return
	}
	if cpu.psw&PSWEP != 0 {
		cpu.fepc = cpu.pc
		cpu.fepsw = cpu.psw
		cpu.psw |= PSWNP
	} else {
		cpu.eipc = cpu.pc
		cpu.eipsw = cpu.psw
		cpu.psw |= PSWEP
	}
	cpu.ecr = vector
	cpu.psw |= PSWID
	cpu.pc = vector
}

// execFormatI runs a reg1/reg2 instruction and returns its cycle cost,
// which is the decode table's fixed cost for every opcode, JMP included.
func (cpu *CPU) execFormatI(bus Bus, dec Decoded, h uint16) int {
	reg1, reg2 := operandsI(h)
	a := cpu.GPR(reg1)
	b := cpu.GPR(reg2)

	switch dec.Op {
	case OpMOV:
		cpu.setGPR(reg2, a)
	case OpADD:
		result, z, s, ov, cy := add32(b, a)
		cpu.setGPR(reg2, result)
		cpu.setArith(z, s, ov, cy)
	case OpSUB:
		result, z, s, ov, cy := sub32(b, a)
		cpu.setGPR(reg2, result)
		cpu.setArith(z, s, ov, cy)
	case OpCMP:
		_, z, s, ov, cy := sub32(b, a)
		cpu.setArith(z, s, ov, cy)
	case OpSHL:
		result, cy := shl32(b, a&0x1F)
		cpu.setGPR(reg2, result)
		cpu.setShift(result, cy)
	case OpSHR:
		result, cy := shr32(b, a&0x1F)
		cpu.setGPR(reg2, result)
		cpu.setShift(result, cy)
	case OpSAR:
		result, cy := sar32(b, a&0x1F)
		cpu.setGPR(reg2, result)
		cpu.setShift(result, cy)
	case OpJMP:
		cpu.pc = a
		return dec.Cycles
	case OpMUL:
		prod := int64(int32(b)) * int64(int32(a))
		lo := uint32(prod)
		hi := uint32(prod >> 32)
		cpu.setGPR(30, hi)
		cpu.setGPR(reg2, lo)
		cpu.setMulFlags(prod == 0, prod < 0, hi != 0 && hi != 0xFFFFFFFF)
	case OpMULU:
		prod := uint64(b) * uint64(a)
		lo := uint32(prod)
		hi := uint32(prod >> 32)
		cpu.setGPR(30, hi)
		cpu.setGPR(reg2, lo)
		cpu.setMulFlags(prod == 0, int32(lo) < 0, hi != 0)
	case OpDIV:
		dividend := int32(b)
		divisor := int32(a)
		if divisor == 0 {
			cpu.raiseException(vectorZeroDivision)
			return dec.Cycles
		}
		var quotient, remainder int32
		if dividend == math.MinInt32 && divisor == -1 {
			quotient, remainder = math.MinInt32, 0
			cpu.psw |= PSWOV
		} else {
			quotient, remainder = dividend/divisor, dividend%divisor
			cpu.psw &^= PSWOV
		}
		cpu.setGPR(30, uint32(remainder))
		cpu.setGPR(reg2, uint32(quotient))
		cpu.setZS(uint32(quotient))
	case OpDIVU:
		if a == 0 {
			cpu.raiseException(vectorZeroDivision)
			return dec.Cycles
		}
		quotient, remainder := b/a, b%a
		cpu.setGPR(30, remainder)
		cpu.setGPR(reg2, quotient)
		cpu.psw &^= PSWOV
		cpu.setZS(quotient)
	case OpOR:
		result := b | a
		cpu.setGPR(reg2, result)
		cpu.setLogic(result)
	case OpAND:
		result := b & a
		cpu.setGPR(reg2, result)
		cpu.setLogic(result)
	case OpXOR:
		result := b ^ a
		cpu.setGPR(reg2, result)
		cpu.setLogic(result)
	case OpNOT:
		result := ^a
		cpu.setGPR(reg2, result)
		cpu.setLogic(result)
	}
	return dec.Cycles
}

func (cpu *CPU) execFormatII(dec Decoded, h uint16) int {
	imm5, reg2 := operandsI(h)
	imm5Sext := uint32(int32(int8(imm5<<3)) >> 3) // sign-extend 5 bits
	b := cpu.GPR(reg2)

	switch dec.Op {
	case OpMOVI5:
		cpu.setGPR(reg2, imm5Sext)
	case OpADDI5:
		result, z, s, ov, cy := add32(b, imm5Sext)
		cpu.setGPR(reg2, result)
		cpu.setArith(z, s, ov, cy)
	case OpCMPI5:
		_, z, s, ov, cy := sub32(b, imm5Sext)
		cpu.setArith(z, s, ov, cy)
	case OpSHLI5:
		result, cy := shl32(b, uint32(imm5))
		cpu.setGPR(reg2, result)
		cpu.setShift(result, cy)
	case OpSHRI5:
		result, cy := shr32(b, uint32(imm5))
		cpu.setGPR(reg2, result)
		cpu.setShift(result, cy)
	case OpSARI5:
		result, cy := sar32(b, uint32(imm5))
		cpu.setGPR(reg2, result)
		cpu.setShift(result, cy)
	case OpSETF:
		cond := Condition(imm5)
		var v uint32
		if cpu.evalCondition(cond) {
			v = 1
		}
		cpu.setGPR(reg2, v)
	case OpCLI:
		cpu.psw &^= PSWID
	case OpSEI:
		cpu.psw |= PSWID
	case OpTRAP:
		vec := vectorTrapLow
		if imm5 >= 16 {
			vec = vectorTrapHigh
		}
		cpu.raiseException(vec)
	case OpHALT:
		cpu.halted = true
	case OpRETI:
		cpu.execReti()
	case OpLDSR:
		cpu.writeSystemRegister(imm5, b)
	case OpSTSR:
		v, err := cpu.readSystemRegister(imm5)
		if err != nil {
			cpu.raiseException(vectorInvalidOpcode)
			break
		}
		cpu.setGPR(reg2, v)
	}
	return dec.Cycles
}

func (cpu *CPU) execReti() {
	if cpu.psw&PSWNP != 0 {
		cpu.pc = cpu.fepc
		cpu.psw = cpu.fepsw
	} else {
		cpu.pc = cpu.eipc
		cpu.psw = cpu.eipsw
	}
}

func (cpu *CPU) execFormatIII(pc uint32, dec Decoded, h uint16) int {
	if !cpu.evalCondition(dec.Cond) {
		return 1
	}
	disp := dispIII(h)
	cpu.pc = uint32(int64(pc) + int64(disp))
	return cycleBranch
}

func (cpu *CPU) execFormatIV(pc uint32, dec Decoded, first, second uint16) int {
	disp := dispIV(first, second)
	target := uint32(int64(pc) + int64(disp))
	if dec.Op == OpJAL {
		cpu.setGPR(31, pc+4)
	}
	cpu.pc = target
	return dec.Cycles
}

func (cpu *CPU) execFormatV(dec Decoded, first, second uint16) {
	reg1, reg2 := operandsI(first)
	a := cpu.GPR(reg1)
	imm16 := uint32(second)

	switch dec.Op {
	case OpMOVHI:
		cpu.setGPR(reg2, a+(imm16<<16))
	case OpMOVEA:
		cpu.setGPR(reg2, a+signExtend16(imm16))
	case OpADDI:
		result, z, s, ov, cy := add32(a, signExtend16(imm16))
		cpu.setGPR(reg2, result)
		cpu.setArith(z, s, ov, cy)
	case OpANDI:
		result := a & imm16
		cpu.setGPR(reg2, result)
		cpu.psw &^= (PSWZ | PSWS)
		if result == 0 {
			cpu.psw |= PSWZ
		}
	case OpORI:
		result := a | imm16
		cpu.setGPR(reg2, result)
		cpu.psw &^= (PSWZ | PSWS)
		if result == 0 {
			cpu.psw |= PSWZ
		}
	case OpXORI:
		result := a ^ imm16
		cpu.setGPR(reg2, result)
		cpu.psw &^= (PSWZ | PSWS)
		if result == 0 {
			cpu.psw |= PSWZ
		}
	}
}

func (cpu *CPU) execFormatVI(bus Bus, dec Decoded, first, second uint16) int {
	reg1, reg2 := operandsI(first)
	base := cpu.GPR(reg1)
	disp := signExtend16(uint32(second))
	addr := base + disp

	switch dec.Op {
	case OpLDB:
		cpu.checkWatchpoint(addr)
		cpu.setGPR(reg2, uint32(int32(int8(bus.ReadByte(addr)))))
	case OpLDH:
		a := addr &^ 1
		cpu.checkWatchpoint(a)
		cpu.setGPR(reg2, uint32(int32(int16(bus.ReadHalfword(a)))))
	case OpLDW:
		a := addr &^ 3
		cpu.checkWatchpoint(a)
		cpu.setGPR(reg2, bus.ReadWord(a))
	case OpSTB:
		cpu.checkWatchpoint(addr)
		bus.WriteByte(addr, uint8(cpu.GPR(reg2)))
	case OpSTH:
		a := addr &^ 1
		cpu.checkWatchpoint(a)
		bus.WriteHalfword(a, uint16(cpu.GPR(reg2)))
	case OpSTW:
		a := addr &^ 3
		cpu.checkWatchpoint(a)
		bus.WriteWord(a, cpu.GPR(reg2))
	case OpINB:
		cpu.setGPR(reg2, uint32(bus.ReadByte(addr)))
	case OpINH:
		cpu.setGPR(reg2, uint32(bus.ReadHalfword(addr&^1)))
	case OpINW:
		cpu.setGPR(reg2, bus.ReadWord(addr&^3))
	case OpOUTB:
		bus.WriteByte(addr, uint8(cpu.GPR(reg2)))
	case OpOUTH:
		bus.WriteHalfword(addr&^1, uint16(cpu.GPR(reg2)))
	case OpOUTW:
		bus.WriteWord(addr&^3, cpu.GPR(reg2))
	}
	return dec.Cycles
}

// execFormatVII runs the float/extended sub-opcodes. Floating-point
// status bits are sticky: they accumulate and are only cleared by an
// explicit LDSR to PSW.
func (cpu *CPU) execFormatVII(dec Decoded, first, second uint16) {
	reg1, reg2 := operandsI(first)
	sub, err := DecodeSubOp(second >> 10)
	if err != nil {
		cpu.raiseException(vectorInvalidOpcode)
		return
	}

	a := math.Float32frombits(cpu.GPR(reg1))
	b := math.Float32frombits(cpu.GPR(reg2))

	switch sub {
	case SubCMPFS:
		_, z, s, ov, cy := sub32(math.Float32bits(b), math.Float32bits(a))
		if b-a == 0 {
			z = true
		}
		cpu.setArith(z, s, ov, cy)
	case SubCVTWS:
		f := float32(int32(cpu.GPR(reg1)))
		cpu.setGPR(reg2, math.Float32bits(f))
	case SubCVTSW:
		i := int32(math.Round(float64(a)))
		cpu.setGPR(reg2, uint32(i))
	case SubADDFS:
		cpu.setFloatResult(reg2, b+a)
	case SubSUBFS:
		cpu.setFloatResult(reg2, b-a)
	case SubMULFS:
		cpu.setFloatResult(reg2, b*a)
	case SubDIVFS:
		if a == 0 {
			cpu.psw |= PSWFZD
			cpu.raiseException(vectorFPZeroDivide)
			return
		}
		cpu.setFloatResult(reg2, b/a)
	case SubXB:
		v := cpu.GPR(reg2)
		lo := (v & 0x000000FF) << 8 & 0xFF00
		lo |= (v & 0x0000FF00) >> 8
		hi := (v & 0x00FF0000) << 8 & 0xFF000000
		hi |= (v & 0xFF000000) >> 8
		cpu.setGPR(reg2, lo|hi)
	case SubXH:
		v := cpu.GPR(reg2)
		cpu.setGPR(reg2, (v<<16)|(v>>16))
	case SubTRNCSW:
		cpu.setGPR(reg2, uint32(int32(a)))
	case SubMPYHW:
		prod := int32(int16(cpu.GPR(reg1))) * int32(int16(cpu.GPR(reg2)))
		cpu.setGPR(reg2, uint32(prod))
	}
}

func (cpu *CPU) setFloatResult(reg2 int, f float32) {
	switch {
	case math.IsNaN(float64(f)):
		cpu.psw |= PSWFIV
	case math.IsInf(float64(f), 0):
		cpu.psw |= PSWFOV
	case f != 0 && math.Abs(float64(f)) < math.SmallestNonzeroFloat32*2:
		cpu.psw |= PSWFUD
	}
	cpu.setGPR(reg2, math.Float32bits(f))
}

func (cpu *CPU) evalCondition(cond Condition) bool {
	z := cpu.psw&PSWZ != 0
	s := cpu.psw&PSWS != 0
	ov := cpu.psw&PSWOV != 0
	cy := cpu.psw&PSWCY != 0

	switch cond {
	case CondBV:
		return ov
	case CondBL:
		return cy
	case CondBE:
		return z
	case CondBNH:
		return z || cy
	case CondBN:
		return s
	case CondBR:
		return true
	case CondBLT:
		return s != ov
	case CondBLE:
		return z || (s != ov)
	case CondBNV:
		return !ov
	case CondBNL:
		return !cy
	case CondBNE:
		return !z
	case CondBH:
		return !z && !cy
	case CondBP:
		return !s
	case CondNOP:
		return false
	case CondBGE:
		return s == ov
	case CondBGT:
		return !z && (s == ov)
	default:
		return false
	}
}

func (cpu *CPU) readSystemRegister(index int) (uint32, error) {
	switch index {
	case 0:
		return cpu.eipc, nil
	case 1:
		return cpu.eipsw, nil
	case 2:
		return cpu.fepc, nil
	case 3:
		return cpu.fepsw, nil
	case 4:
		return cpu.ecr, nil
	case 5:
		return cpu.psw, nil
	case 24:
		return cpu.chcw, nil
	default:
		return 0, &InvalidSystemRegisterError{Index: index}
	}
}

func (cpu *CPU) writeSystemRegister(index int, v uint32) {
	switch index {
	case 0:
		cpu.eipc = v
	case 1:
		cpu.eipsw = v
	case 2:
		cpu.fepc = v
	case 3:
		cpu.fepsw = v
	case 4:
		cpu.ecr = v
	case 5:
		cpu.psw = v
	case 24:
		cpu.chcw = v
	default:
		cpu.raiseException(vectorInvalidOpcode)
	}
}

// --- arithmetic flag helpers -------------------------------------------------

func (cpu *CPU) setZS(v uint32) {
	cpu.psw &^= (PSWZ | PSWS)
	if v == 0 {
		cpu.psw |= PSWZ
	}
	if int32(v) < 0 {
		cpu.psw |= PSWS
	}
}

func (cpu *CPU) setArith(z, s, ov, cy bool) {
	cpu.psw &^= (PSWZ | PSWS | PSWOV | PSWCY)
	if z {
		cpu.psw |= PSWZ
	}
	if s {
		cpu.psw |= PSWS
	}
	if ov {
		cpu.psw |= PSWOV
	}
	if cy {
		cpu.psw |= PSWCY
	}
}

func (cpu *CPU) setShift(result uint32, cy bool) {
	cpu.psw &^= (PSWZ | PSWS | PSWOV | PSWCY)
	if result == 0 {
		cpu.psw |= PSWZ
	}
	if int32(result) < 0 {
		cpu.psw |= PSWS
	}
	if cy {
		cpu.psw |= PSWCY
	}
}

func (cpu *CPU) setLogic(result uint32) {
	cpu.psw &^= (PSWZ | PSWS | PSWOV)
	if result == 0 {
		cpu.psw |= PSWZ
	}
	if int32(result) < 0 {
		cpu.psw |= PSWS
	}
}

func (cpu *CPU) setMulFlags(zero, negative, overflow bool) {
	cpu.psw &^= (PSWZ | PSWS | PSWOV)
	if zero {
		cpu.psw |= PSWZ
	}
	if negative {
		cpu.psw |= PSWS
	}
	if overflow {
		cpu.psw |= PSWOV
	}
}

func signExtend16(v uint32) uint32 {
	return uint32(int32(int16(v)))
}

func add32(a, b uint32) (result uint32, z, s, ov, cy bool) {
	sum := uint64(a) + uint64(b)
	result = uint32(sum)
	z = result == 0
	s = int32(result) < 0
	cy = sum > 0xFFFFFFFF
	signA, signB, signR := a>>31, b>>31, result>>31
	ov = signA == signB && signR != signA
	return
}

func sub32(a, b uint32) (result uint32, z, s, ov, cy bool) {
	diff := uint64(a) - uint64(b)
	result = uint32(diff)
	z = result == 0
	s = int32(result) < 0
	cy = a < b
	signA, signB, signR := a>>31, b>>31, result>>31
	ov = signA != signB && signR != signA
	return
}

func shl32(v, n uint32) (result uint32, cy bool) {
	if n == 0 {
		return v, false
	}
	result = v << n
	cy = (v>>(32-n))&1 != 0
	return
}

func shr32(v, n uint32) (result uint32, cy bool) {
	if n == 0 {
		return v, false
	}
	result = v >> n
	cy = (v>>(n-1))&1 != 0
	return
}

func sar32(v, n uint32) (result uint32, cy bool) {
	if n == 0 {
		return v, false
	}
	result = uint32(int32(v) >> n)
	cy = (v>>(n-1))&1 != 0
	return
}

func (cpu *CPU) String() string {
	return fmt.Sprintf("pc=0x%08X psw=0x%08X", cpu.pc, cpu.psw)
}
