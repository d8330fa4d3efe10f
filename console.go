// console.go - Virtual console facade: owns the CPU and interconnect,
// and is the one component allowed to see both sinks.
//
// Grounded on emulator.rs's VirtualBoy::step(video_driver, audio_driver)
// - a thin facade over Cpu::step(interconnect) that also drives the
// interconnect's per-tick cycles() and interrupt delivery, not a single
// fused CPU operation.

package main

// Console is the top-level virtual machine: CPU, interconnect, and the
// pull-driven step loop that ties them together.
type Console struct {
	CPU          *CPU
	Interconnect *Interconnect
}

// NewConsole wires a fresh CPU to the given interconnect and resets it
// to its power-on state.
func NewConsole(ic *Interconnect) *Console {
	c := &Console{CPU: NewCPU(), Interconnect: ic}
	c.CPU.Reset()
	return c
}

// Step executes exactly one CPU instruction, advances every other
// component by the resulting cycle count, and delivers any interrupt
// that become pending to the CPU - not immediately, but so it's
// observed on the CPU's next Step call, per §5's ordering guarantee.
func (c *Console) Step(videoSink VideoSink, audioSink AudioSink) (cycles int, watchpointHit bool) {
	cycles, watchpointHit = c.CPU.Step(c.Interconnect)

	if vector, raised := c.Interconnect.Cycles(cycles, videoSink, audioSink); raised {
		c.CPU.RequestInterrupt(vector)
	}

	return cycles, watchpointHit
}
