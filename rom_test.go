package main

import "testing"

func buildHeaderedRom(name, maker, game string, version uint8) []byte {
	data := make([]byte, romHeaderLength+16) // a little ROM body ahead of the trailer
	base := len(data) - romHeaderLength
	copy(data[base:base+romHeaderNameLen], []byte(name))
	copy(data[base+romHeaderNameLen:], []byte(maker))
	copy(data[base+romHeaderNameLen+romHeaderMakerLen:], []byte(game))
	data[len(data)-1] = version
	return data
}

func TestRomHeaderParsing(t *testing.T) {
	data := buildHeaderedRom("MY GAME", "ABCD", "WXYZ", 3)
	rom := NewRom(data)

	header, ok := rom.Header()
	if !ok {
		t.Fatal("expected a header to be present")
	}
	if header.Name != "MY GAME" {
		t.Fatalf("Name = %q, want %q", header.Name, "MY GAME")
	}
	if header.Maker != "ABCD" {
		t.Fatalf("Maker = %q, want %q", header.Maker, "ABCD")
	}
	if header.GameID != "WXYZ" {
		t.Fatalf("GameID = %q, want %q", header.GameID, "WXYZ")
	}
	if header.Version != 3 {
		t.Fatalf("Version = %d, want 3", header.Version)
	}
}

func TestRomHeaderAbsentWhenTooSmall(t *testing.T) {
	rom := NewRom(make([]byte, 64))
	if _, ok := rom.Header(); ok {
		t.Fatal("expected no header for a ROM smaller than the header trailer")
	}
}
