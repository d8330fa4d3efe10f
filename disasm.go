// disasm.go - Mnemonic formatting for decoded instructions
//
// This only turns a Decoded value plus its raw halfword(s) into a
// human-readable line; it does not walk memory or maintain a cursor.
// Callers (tests, a future debugger front-end) own the fetch loop.

package main

import "fmt"

// Disassemble formats one instruction starting at addr. first is the
// instruction's leading halfword; second is only read when the format
// requires it (caller fetches it from whatever read order the memory
// model prefers).
func Disassemble(addr uint32, first, second uint16, d Decoded) string {
	switch d.Format {
	case FormatI:
		reg1, reg2 := operandsI(first)
		if d.Op == OpJMP {
			return fmt.Sprintf("0x%08X  jmp [r%d]", addr, reg1)
		}
		return fmt.Sprintf("0x%08X  %s r%d, r%d", addr, mnemonic(d.Op), reg1, reg2)

	case FormatII:
		imm5, reg2 := operandsI(first)
		switch d.Op {
		case OpCLI, OpRETI, OpSEI:
			return fmt.Sprintf("0x%08X  %s", addr, mnemonic(d.Op))
		case OpLDSR, OpSTSR:
			return fmt.Sprintf("0x%08X  %s r%d, %s", addr, mnemonic(d.Op), reg2, sysRegName(imm5))
		default:
			return fmt.Sprintf("0x%08X  %s %d, r%d", addr, mnemonic(d.Op), imm5, reg2)
		}

	case FormatIII:
		disp := dispIII(first)
		target := uint32(int64(addr) + int64(disp))
		return fmt.Sprintf("0x%08X  %s 0x%x (0x%08X)", addr, d.Cond, first&0x1FF, target)

	case FormatIV:
		disp := dispIV(first, second)
		target := addr + uint32(disp)
		return fmt.Sprintf("0x%08X  %s %d (0x%08X)", addr, mnemonic(d.Op), disp, target)

	case FormatV:
		reg1, reg2 := operandsI(first)
		return fmt.Sprintf("0x%08X  %s 0x%x, r%d, r%d", addr, mnemonic(d.Op), second, reg1, reg2)

	case FormatVI:
		reg1, reg2 := operandsI(first)
		disp := int16(second)
		return fmt.Sprintf("0x%08X  %s %d[r%d], r%d", addr, mnemonic(d.Op), disp, reg1, reg2)

	case FormatVII:
		reg1, reg2 := operandsI(first)
		sub, err := DecodeSubOp(second >> 10)
		if err != nil {
			sub = SubInvalid
		}
		return fmt.Sprintf("0x%08X  %s r%d, r%d", addr, sub, reg1, reg2)

	default:
		return fmt.Sprintf("0x%08X  ???", addr)
	}
}

func mnemonic(op Opcode) string {
	return op.String()
}
