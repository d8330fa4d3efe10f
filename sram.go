// sram.go - Cartridge save RAM persistence
//
// Follows the same host-file-access shape as rom.go's LoadRom: SRAM is
// the only state this core persists outside process lifetime (§5), and
// that persistence is a host-side call at startup/shutdown, not a
// guest-visible register.

package main

import (
	"fmt"
	"os"
)

const defaultSramSize = 8 * 1024

// LoadSram reads a previously persisted save image, if one exists, and
// returns an Sram of the given size pre-populated from it. A missing
// file is not an error: the cartridge simply starts with blank SRAM.
func LoadSram(path string, size int) (*Sram, error) {
	if size <= 0 {
		size = defaultSramSize
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSram(size, nil), nil
		}
		return nil, fmt.Errorf("load sram %q: %w", path, err)
	}
	return NewSram(size, data), nil
}

// SaveSram persists the live SRAM contents to path, called by the host
// on shutdown (or periodically, if it chooses).
func SaveSram(path string, s *Sram) error {
	if err := os.WriteFile(path, s.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save sram %q: %w", path, err)
	}
	return nil
}
