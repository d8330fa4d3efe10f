package main

import "testing"

// flatBus is a plain 64 KiB byte-addressable memory used only to drive
// CPU.Step in isolation, without needing a full Interconnect.
type flatBus struct {
	mem [0x10000]byte
}

func (b *flatBus) ReadByte(addr uint32) uint8      { return b.mem[addr&0xFFFF] }
func (b *flatBus) WriteByte(addr uint32, v uint8)  { b.mem[addr&0xFFFF] = v }
func (b *flatBus) ReadHalfword(addr uint32) uint16 {
	addr &^= 1
	return uint16(b.ReadByte(addr)) | uint16(b.ReadByte(addr+1))<<8
}
func (b *flatBus) WriteHalfword(addr uint32, v uint16) {
	addr &^= 1
	b.WriteByte(addr, uint8(v))
	b.WriteByte(addr+1, uint8(v>>8))
}
func (b *flatBus) ReadWord(addr uint32) uint32 {
	addr &^= 3
	return uint32(b.ReadHalfword(addr)) | uint32(b.ReadHalfword(addr+2))<<16
}
func (b *flatBus) WriteWord(addr uint32, v uint32) {
	addr &^= 3
	b.WriteHalfword(addr, uint16(v))
	b.WriteHalfword(addr+2, uint16(v>>16))
}

func (b *flatBus) loadAt(addr uint32, halfwords ...uint16) {
	for i, h := range halfwords {
		b.WriteHalfword(addr+uint32(i*2), h)
	}
}

// newTestCPU returns a CPU as if execution were already past reset
// (PSW cleared rather than the post-reset PSWNP), so these instruction
// -level tests don't have to fight the boot-time duplexed-exception
// guard to exercise ordinary flag and interrupt behavior.
func newTestCPU(bus *flatBus, pc uint32) *CPU {
	cpu := NewCPU()
	cpu.psw = 0
	cpu.pc = pc
	return cpu
}

func formatI(opcode uint16, reg1, reg2 int) uint16 {
	return opcode<<10 | uint16(reg2&0x1F)<<5 | uint16(reg1&0x1F)
}

func TestCPUAddSetsFlags(t *testing.T) {
	bus := &flatBus{}
	bus.loadAt(0, formatI(0b000001, 1, 2)) // ADD r1, r2
	cpu := newTestCPU(bus, 0)
	cpu.setGPR(1, 1)
	cpu.setGPR(2, 0xFFFFFFFF) // -1

	cycles, _ := cpu.Step(bus)
	if cycles != cycleDefault {
		t.Fatalf("cycles = %d, want %d", cycles, cycleDefault)
	}
	if got := cpu.GPR(2); got != 0 {
		t.Fatalf("r2 = 0x%08X, want 0", got)
	}
	if cpu.psw&PSWZ == 0 {
		t.Fatal("expected PSWZ set after 1 + (-1) = 0")
	}
	if cpu.psw&PSWCY == 0 {
		t.Fatal("expected PSWCY set on unsigned overflow")
	}
}

func TestCPUR0HardwiredZero(t *testing.T) {
	bus := &flatBus{}
	bus.loadAt(0, formatI(0b000000, 5, 0)) // MOV r5, r0
	cpu := newTestCPU(bus, 0)
	cpu.setGPR(5, 0xDEADBEEF)

	cpu.Step(bus)
	if cpu.GPR(0) != 0 {
		t.Fatalf("r0 = 0x%08X, want 0 (hardwired)", cpu.GPR(0))
	}
}

func TestCPULoadStoreRoundTrip(t *testing.T) {
	bus := &flatBus{}
	// ADDI 0x1000, r0, r1 ; MOVEA 0xABCD, r0, r2
	// ST.H r2, 0[r1] ; LD.H 0[r1], r3
	var pc uint32
	writeFormatV := func(opcode uint16, reg1, reg2 int, imm uint16) {
		bus.loadAt(pc, opcode<<10|uint16(reg2&0x1F)<<5|uint16(reg1&0x1F), imm)
		pc += 4
	}
	writeFormatVI := func(opcode uint16, reg1, reg2 int, disp uint16) {
		bus.loadAt(pc, opcode<<10|uint16(reg2&0x1F)<<5|uint16(reg1&0x1F), disp)
		pc += 4
	}
	writeFormatV(0b101001, 0, 1, 0x1000) // ADDI 0x1000, r0, r1 (MOVEA-equivalent opcode via ADDI)
	writeFormatV(0b101000, 0, 2, 0xABCD) // MOVEA 0xABCD, r0, r2 (r2 = 0xFFFFABCD)
	writeFormatVI(0b110101, 1, 2, 0)     // ST.H r2, 0[r1]
	writeFormatVI(0b110001, 1, 3, 0)     // LD.H 0[r1], r3

	cpu := newTestCPU(bus, 0)
	for i := 0; i < 4; i++ {
		cpu.Step(bus)
	}

	got := cpu.GPR(3)
	want := uint32(0xFFFFABCD) // sign-extended halfword load
	if got != want {
		t.Fatalf("r3 = 0x%08X, want 0x%08X", got, want)
	}
}

func TestCPUHaltStopsStepping(t *testing.T) {
	bus := &flatBus{}
	bus.loadAt(0, uint16(0b011010<<10)) // HALT
	cpu := newTestCPU(bus, 0)

	cpu.Step(bus)
	if !cpu.Halted() {
		t.Fatal("expected CPU to be halted after executing HALT")
	}
	pcBefore := cpu.PC()
	cpu.Step(bus)
	if cpu.PC() != pcBefore {
		t.Fatalf("halted CPU advanced PC: before=0x%X after=0x%X", pcBefore, cpu.PC())
	}
}

func TestCPUDivisionByZeroRaisesException(t *testing.T) {
	bus := &flatBus{}
	bus.loadAt(0, formatI(0b001001, 1, 2)) // DIV r1, r2
	cpu := newTestCPU(bus, 0)
	cpu.setGPR(1, 0)
	cpu.setGPR(2, 42)

	cpu.Step(bus)
	if cpu.PC() != vectorZeroDivision {
		t.Fatalf("PC = 0x%08X, want exception vector 0x%08X", cpu.PC(), vectorZeroDivision)
	}
	if cpu.psw&PSWEP == 0 {
		t.Fatal("expected PSWEP set after raising an exception")
	}
}

func TestCPUDivisionIntMinByNegativeOneSetsOverflow(t *testing.T) {
	bus := &flatBus{}
	bus.loadAt(0, formatI(0b001001, 1, 2)) // DIV r1, r2
	cpu := newTestCPU(bus, 0)
	cpu.setGPR(1, 0xFFFFFFFF) // divisor = -1
	cpu.setGPR(2, 0x80000000) // dividend = INT_MIN

	cpu.Step(bus)
	if got := cpu.GPR(2); got != 0x80000000 {
		t.Fatalf("quotient = 0x%08X, want 0x80000000 (INT_MIN)", got)
	}
	if got := cpu.GPR(30); got != 0 {
		t.Fatalf("remainder = 0x%08X, want 0", got)
	}
	if cpu.psw&PSWOV == 0 {
		t.Fatal("expected PSWOV set for INT_MIN / -1")
	}
}

func TestCPUInterruptMaskedWhenIDSet(t *testing.T) {
	bus := &flatBus{}
	cpu := newTestCPU(bus, 0x1000)
	cpu.psw |= PSWID

	err := cpu.RequestInterrupt(0xFE10)
	if err == nil {
		t.Fatal("expected InterruptMaskedError when PSW.ID is set")
	}
	if cpu.PC() != 0x1000 {
		t.Fatalf("PC changed despite masked interrupt: 0x%08X", cpu.PC())
	}
}

func TestCPURequestInterruptDelivers(t *testing.T) {
	bus := &flatBus{}
	cpu := newTestCPU(bus, 0x1000)

	if err := cpu.RequestInterrupt(0xFE10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cpu.PC() != 0xFFFF0000|0xFE10 {
		t.Fatalf("PC = 0x%08X, want the timer's full interrupt vector", cpu.PC())
	}
	if cpu.eipc != 0x1000 {
		t.Fatalf("EIPC = 0x%08X, want 0x1000", cpu.eipc)
	}
}

func TestCPUMaskedInterruptRedeliveredOnceUnmasked(t *testing.T) {
	bus := &flatBus{}
	cpu := newTestCPU(bus, 0x1000)
	cpu.psw |= PSWID

	if err := cpu.RequestInterrupt(0xFE10); err == nil {
		t.Fatal("expected the interrupt to be masked and latched, not delivered")
	}
	if !cpu.pendingInterrupt {
		t.Fatal("expected the masked interrupt to be latched as pending rather than dropped")
	}
	if cpu.PC() != 0x1000 {
		t.Fatalf("PC changed despite masked interrupt: 0x%08X", cpu.PC())
	}

	cpu.psw &^= PSWID
	cpu.Step(bus)
	if cpu.pendingInterrupt {
		t.Fatal("expected the latched interrupt to be cleared once redelivered")
	}
	if cpu.eipc != 0x1000 {
		t.Fatalf("EIPC = 0x%08X, want 0x1000 (the redelivered interrupt's return address)", cpu.eipc)
	}
	if cpu.psw&PSWEP == 0 {
		t.Fatal("expected PSWEP set after the latched interrupt was redelivered")
	}
}
