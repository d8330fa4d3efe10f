//go:build !headless

// sink_audio_oto.go - oto-backed AudioSink, writing stereo PCM16 frames
// into a ring buffer an oto player drains on its own goroutine.

package main

import (
	"encoding/binary"
	"time"

	"github.com/ebitengine/oto/v3"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:oto")
}

const otoRingFrames = 8192 // ~185ms at 44.1kHz, generous enough to absorb host jitter

// otoAudioSink is a single-producer/single-consumer PCM16 stereo ring
// buffer: Push (the emulation thread) writes and blocks when full;
// oto's player goroutine reads via io.Reader.
type otoAudioSink struct {
	ring       []int16 // interleaved L,R pairs
	writeIndex int
	readIndex  int
	filled     int

	player *oto.Player
}

func newOtoAudioSink(sampleRate int) (*otoAudioSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	s := &otoAudioSink{ring: make([]int16, otoRingFrames*2)}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

func (s *otoAudioSink) Push(frame AudioFrame) {
	for s.filled >= otoRingFrames {
		// ring full: give the consumer goroutine a chance to drain.
		// A real deployment would use a condition variable; a short
		// sleep keeps this sink dependency-free beyond oto itself.
		timeSleep(time.Millisecond)
	}
	s.ring[s.writeIndex*2] = frame.Left
	s.ring[s.writeIndex*2+1] = frame.Right
	s.writeIndex = (s.writeIndex + 1) % otoRingFrames
	s.filled++
}

func (s *otoAudioSink) Capacity() int       { return otoRingFrames }
func (s *otoAudioSink) WritePosition() int  { return s.writeIndex }
func (s *otoAudioSink) ReadPosition() int   { return s.readIndex }

// Read implements io.Reader for oto.Player: it drains available frames
// as little-endian interleaved PCM16, padding with silence if the
// producer hasn't kept up.
func (s *otoAudioSink) Read(p []byte) (int, error) {
	n := 0
	for n+4 <= len(p) {
		if s.filled == 0 {
			binary.LittleEndian.PutUint16(p[n:], 0)
			binary.LittleEndian.PutUint16(p[n+2:], 0)
			n += 4
			continue
		}
		binary.LittleEndian.PutUint16(p[n:], uint16(s.ring[s.readIndex*2]))
		binary.LittleEndian.PutUint16(p[n+2:], uint16(s.ring[s.readIndex*2+1]))
		s.readIndex = (s.readIndex + 1) % otoRingFrames
		s.filled--
		n += 4
	}
	return n, nil
}

func timeSleep(d time.Duration) { time.Sleep(d) }

func newAudioSink(sampleRate int) (AudioSink, error) { return newOtoAudioSink(sampleRate) }
