// main.go - Host CLI: loads a ROM and optional SRAM image, wires up a
// Console, and hands control to the build's host loop (ebiten+oto, or
// headless under -tags headless).

package main

import (
	"flag"
	"fmt"
	"os"
)

// Version is stamped into release builds; unset in source checkouts.
var Version = "dev"

func main() {
	var (
		romPath        = flag.String("rom", "", "path to a Virtual Boy ROM image (required)")
		sramPath       = flag.String("sram", "", "path to a save RAM image (created if missing)")
		sramSize       = flag.Int("sram-size", defaultSramSize, "save RAM size in bytes")
		cyclesPerTick  = flag.Int("cycles-per-batch", 20000, "maximum CPU instructions stepped per host loop iteration (ignored by the headless host)")
		sampleRate     = flag.Int("sample-rate", 41700, "audio output sample rate in Hz")
		showFeatures   = flag.Bool("features", false, "print compiled features and exit")
	)
	flag.Parse()

	if *showFeatures {
		printFeatures()
		return
	}

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "duoscope: -rom is required")
		flag.Usage()
		os.Exit(2)
	}

	rom, err := LoadRom(*romPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duoscope:", err)
		os.Exit(1)
	}
	if header, ok := rom.Header(); ok {
		fmt.Printf("duoscope: loaded %q (maker=%s game=%s version=%d)\n", header.Name, header.Maker, header.GameID, header.Version)
	}

	sramFile := *sramPath
	if sramFile == "" {
		sramFile = *romPath + ".sram"
	}
	sram, err := LoadSram(sramFile, *sramSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duoscope:", err)
		os.Exit(1)
	}

	ic := NewInterconnect(rom, sram)
	console := NewConsole(ic)

	if err := runHost(console, *cyclesPerTick, *sampleRate); err != nil {
		fmt.Fprintln(os.Stderr, "duoscope:", err)
	}

	if err := SaveSram(sramFile, sram); err != nil {
		fmt.Fprintln(os.Stderr, "duoscope:", err)
		os.Exit(1)
	}
}
