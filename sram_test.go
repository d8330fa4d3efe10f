package main

import (
	"path/filepath"
	"testing"
)

func TestLoadSramMissingFileStartsBlank(t *testing.T) {
	dir := t.TempDir()
	sram, err := LoadSram(filepath.Join(dir, "missing.sram"), 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sram.Bytes()) != 1024 {
		t.Fatalf("len = %d, want 1024", len(sram.Bytes()))
	}
	if sram.ReadByte(0) != 0 {
		t.Fatal("expected blank SRAM to read zero")
	}
}

func TestSaveThenLoadSramRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.sram")

	sram := NewSram(256, nil)
	sram.WriteByte(10, 0x7A)
	if err := SaveSram(path, sram); err != nil {
		t.Fatalf("SaveSram: %v", err)
	}

	reloaded, err := LoadSram(path, 256)
	if err != nil {
		t.Fatalf("LoadSram: %v", err)
	}
	if got := reloaded.ReadByte(10); got != 0x7A {
		t.Fatalf("ReadByte(10) = 0x%02X, want 0x7A", got)
	}
}
