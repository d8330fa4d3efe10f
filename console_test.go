package main

import "testing"

func TestConsoleStepAdvancesEverySubsystem(t *testing.T) {
	rom := NewRom(make([]byte, 1024))
	sram := NewSram(1024, nil)
	ic := NewInterconnect(rom, sram)
	console := NewConsole(ic)

	// ROM is all zero bytes, which decodes as MOV r0, r0 (opcode 0) - a
	// harmless one-cycle instruction to step through.
	video := &nullVideoSink{}
	audio := newNullAudioSink(64)

	pcBefore := console.CPU.PC()
	cycles, hit := console.Step(video, audio)
	if hit {
		t.Fatal("did not expect a watchpoint hit")
	}
	if cycles <= 0 {
		t.Fatalf("cycles = %d, want > 0", cycles)
	}
	if console.CPU.PC() == pcBefore {
		t.Fatal("expected PC to advance after a non-branching instruction")
	}
}

