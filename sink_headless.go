//go:build headless

// sink_headless.go - sinks for running the core without a display or
// audio device (CI, fuzzing, batch ROM validation).

package main

func init() {
	compiledFeatures = append(compiledFeatures, "video:headless", "audio:headless")
}

func newAudioSink(sampleRate int) (AudioSink, error) {
	return newNullAudioSink(otoRingFramesHeadless), nil
}

const otoRingFramesHeadless = 8192

// runHost steps the console until the CPU halts or a watchpoint is hit.
// There's no display and no real-time pacing to wait on; cyclesPerTick
// is not used and the null audio sink applies no backpressure.
func runHost(console *Console, cyclesPerTick int, sampleRate int) error {
	videoSink := &nullVideoSink{}
	audioSink, err := newAudioSink(sampleRate)
	if err != nil {
		return err
	}
	for !console.CPU.Halted() {
		_, hit := console.Step(videoSink, audioSink)
		if hit {
			break
		}
	}
	return nil
}
