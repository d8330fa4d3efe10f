//go:build amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm

// le_check.go - duoscope assumes a little-endian host.
//
// The build is restricted to the little-endian targets listed above (the
// byte packing in vip.go, vsu.go and memory.go uses explicit shifts or
// encoding/binary.LittleEndian, which do not depend on host byte order).
// This file compiles on those targets; the sibling file be_unsupported.go
// contains a deliberate compile error for any architecture not listed here.

package main

func init() {
	compiledFeatures = append(compiledFeatures, "endian:little")
}
