// rom.go - Cartridge ROM loading and header parsing
//
// Grounded on the teacher's file_io.go host-file-access pattern
// (sanitized path, structured result) and spec.md §6's header layout.

package main

import (
	"fmt"
	"os"
)

const (
	romHeaderLength   = 0x220
	romHeaderNameLen  = 20
	romHeaderMakerLen = 4
	romHeaderGameLen  = 4
)

// RomHeader is the cartridge identification block found at
// rom_size-0x220 in a well-formed image: a 20-byte name, a 4-byte maker
// code and a 4-byte game code laid out back to back from the start of
// the trailer, and a 1-byte version at the very last byte of the image.
// A ROM without this trailer still runs; Header simply reports zero values.
type RomHeader struct {
	Name    string
	Maker   string
	GameID  string
	Version uint8
}

// LoadRom reads a ROM image from disk and wraps it in a Rom store.
func LoadRom(path string) (*Rom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load rom %q: %w", path, err)
	}
	return NewRom(data), nil
}

// Header parses the cartridge header trailer, if the image is large
// enough to contain one. The shift-JIS name is decoded byte-for-byte
// into a Go string (non-ASCII Virtual Boy titles are rare enough that
// this repo doesn't pull in a shift-JIS decoder for it).
func (r *Rom) Header() (RomHeader, bool) {
	if len(r.data) < romHeaderLength {
		return RomHeader{}, false
	}
	base := len(r.data) - romHeaderLength
	name := trimTrailingSpace(r.data[base : base+romHeaderNameLen])
	maker := string(r.data[base+romHeaderNameLen : base+romHeaderNameLen+romHeaderMakerLen])
	game := string(r.data[base+romHeaderNameLen+romHeaderMakerLen : base+romHeaderNameLen+romHeaderMakerLen+romHeaderGameLen])
	version := r.data[len(r.data)-1]
	return RomHeader{
		Name:    name,
		Maker:   maker,
		GameID:  game,
		Version: version,
	}, true
}

func trimTrailingSpace(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}
	return string(b[:end])
}
