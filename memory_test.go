package main

import "testing"

func TestRomWrapsModulo(t *testing.T) {
	rom := NewRom([]byte{0x11, 0x22, 0x33, 0x44})
	if got := rom.ReadByte(4); got != 0x11 {
		t.Fatalf("ReadByte(4) = 0x%02X, want 0x11 (wrap)", got)
	}
	if got := rom.ReadWord(0); got != 0x44332211 {
		t.Fatalf("ReadWord(0) = 0x%08X, want 0x44332211", got)
	}
}

func TestWramMirrorsAcrossRegion(t *testing.T) {
	w := NewWram()
	w.WriteByte(0, 0xAB)
	if got := w.ReadByte(wramSize); got != 0xAB {
		t.Fatalf("ReadByte(wramSize) = 0x%02X, want mirrored 0xAB", got)
	}
}

func TestWramWordWrapsAtMirrorBoundary(t *testing.T) {
	w := NewWram()
	w.WriteWord(wramSize-2, 0xDEADBEEF)
	if got := w.ReadWord(wramSize - 2); got != 0xDEADBEEF {
		t.Fatalf("ReadWord at mirror boundary = 0x%08X, want 0xDEADBEEF", got)
	}
}

func TestSramPersistsAcrossNewSram(t *testing.T) {
	s1 := NewSram(16, nil)
	s1.WriteByte(3, 0x42)
	s2 := NewSram(16, s1.Bytes())
	if got := s2.ReadByte(3); got != 0x42 {
		t.Fatalf("ReadByte(3) = 0x%02X, want 0x42", got)
	}
}
