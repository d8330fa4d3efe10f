// memory.go - Passive byte/halfword/word stores: ROM, WRAM, SRAM
//
// None of these know about the rest of the machine; the interconnect
// decides which one an address belongs to. All three expose the same
// trio of accessors so the interconnect can treat them uniformly.

package main

import "encoding/binary"

const (
	wramSize = 64 * 1024 // 64 KiB, mirrored across its full 16 MiB region
	wramMask = wramSize - 1
)

// Rom is a read-only byte store backing cartridge ROM.
type Rom struct {
	data []byte
}

// NewRom wraps a raw ROM image. Accesses beyond its length wrap modulo
// the image size, matching how cartridge address lines alias on real
// hardware with smaller-than-region ROM chips.
func NewRom(data []byte) *Rom {
	return &Rom{data: data}
}

func (r *Rom) ReadByte(addr uint32) uint8 {
	if len(r.data) == 0 {
		return 0
	}
	return r.data[addr%uint32(len(r.data))]
}

func (r *Rom) ReadHalfword(addr uint32) uint16 {
	addr &^= 1
	if len(r.data) < 2 {
		return uint16(r.ReadByte(addr))
	}
	n := uint32(len(r.data))
	return binary.LittleEndian.Uint16([]byte{r.data[addr%n], r.data[(addr+1)%n]})
}

func (r *Rom) ReadWord(addr uint32) uint32 {
	addr &^= 3
	lo := r.ReadHalfword(addr)
	hi := r.ReadHalfword(addr + 2)
	return uint32(lo) | uint32(hi)<<16
}

func (r *Rom) Size() int { return len(r.data) }

// Wram is the console's 64 KiB work RAM, mirrored across its full
// region by masking the offset rather than by storing 16 MiB.
type Wram struct {
	data [wramSize]byte
}

func NewWram() *Wram { return &Wram{} }

func (w *Wram) ReadByte(addr uint32) uint8 { return w.data[addr&wramMask] }

func (w *Wram) ReadHalfword(addr uint32) uint16 {
	addr &^= 1
	return binary.LittleEndian.Uint16(w.data[addr&wramMask:])
}

func (w *Wram) ReadWord(addr uint32) uint32 {
	addr &^= 3
	a := addr & wramMask
	if a > wramMask-3 {
		// wrap at the mirror boundary: read byte by byte
		var b [4]byte
		for i := 0; i < 4; i++ {
			b[i] = w.data[(addr+uint32(i))&wramMask]
		}
		return binary.LittleEndian.Uint32(b[:])
	}
	return binary.LittleEndian.Uint32(w.data[a:])
}

func (w *Wram) WriteByte(addr uint32, v uint8) { w.data[addr&wramMask] = v }

func (w *Wram) WriteHalfword(addr uint32, v uint16) {
	addr &^= 1
	binary.LittleEndian.PutUint16(w.data[addr&wramMask:], v)
}

func (w *Wram) WriteWord(addr uint32, v uint32) {
	addr &^= 3
	a := addr & wramMask
	if a > wramMask-3 {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		for i := 0; i < 4; i++ {
			w.data[(addr+uint32(i))&wramMask] = b[i]
		}
		return
	}
	binary.LittleEndian.PutUint32(w.data[a:], v)
}

// Sram is cartridge save RAM. Its contents are the only state the core
// persists outside process lifetime, via LoadSram/SaveSram (see sram.go).
type Sram struct {
	data []byte
}

// NewSram allocates size bytes of save RAM, optionally pre-populated
// from a previously persisted image.
func NewSram(size int, initial []byte) *Sram {
	s := &Sram{data: make([]byte, size)}
	copy(s.data, initial)
	return s
}

func (s *Sram) ReadByte(addr uint32) uint8 {
	if len(s.data) == 0 {
		return 0
	}
	return s.data[addr%uint32(len(s.data))]
}

func (s *Sram) ReadHalfword(addr uint32) uint16 {
	addr &^= 1
	if len(s.data) == 0 {
		return 0
	}
	n := uint32(len(s.data))
	return uint16(s.data[addr%n]) | uint16(s.data[(addr+1)%n])<<8
}

func (s *Sram) ReadWord(addr uint32) uint32 {
	addr &^= 3
	lo := s.ReadHalfword(addr)
	hi := s.ReadHalfword(addr + 2)
	return uint32(lo) | uint32(hi)<<16
}

func (s *Sram) WriteByte(addr uint32, v uint8) {
	if len(s.data) == 0 {
		return
	}
	s.data[addr%uint32(len(s.data))] = v
}

func (s *Sram) WriteHalfword(addr uint32, v uint16) {
	addr &^= 1
	if len(s.data) == 0 {
		return
	}
	n := uint32(len(s.data))
	s.data[addr%n] = byte(v)
	s.data[(addr+1)%n] = byte(v >> 8)
}

func (s *Sram) WriteWord(addr uint32, v uint32) {
	addr &^= 3
	s.WriteHalfword(addr, uint16(v))
	s.WriteHalfword(addr+2, uint16(v>>16))
}

// Bytes returns the live backing slice for persistence (see SaveSram).
func (s *Sram) Bytes() []byte { return s.data }
