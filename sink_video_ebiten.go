//go:build !headless

// sink_video_ebiten.go - ebiten-backed VideoSink, driving an interactive
// window from the stereo framebuffer pair produced each display cycle.

package main

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

func init() {
	compiledFeatures = append(compiledFeatures, "video:ebiten")
}

// ebitenVideoSink pushes the latest stereo frame into a shared slot the
// ebiten game loop reads from on its own Draw call; it never blocks the
// producer, matching the non-blocking/latest-frame-wins contract.
type ebitenVideoSink struct {
	mu     sync.Mutex
	latest StereoFrame
	dirty  bool

	leftImage  *ebiten.Image
	rightImage *ebiten.Image
}

func newEbitenVideoSink() *ebitenVideoSink {
	return &ebitenVideoSink{
		leftImage:  ebiten.NewImage(displayResolutionX, displayResolutionY),
		rightImage: ebiten.NewImage(displayResolutionX, displayResolutionY),
	}
}

func (s *ebitenVideoSink) Push(frame StereoFrame) {
	s.mu.Lock()
	s.latest = frame
	s.dirty = true
	s.mu.Unlock()
}

// syncImages rebuilds the ebiten textures from whatever frame is
// currently latched; called once per host Draw, never from Push.
func (s *ebitenVideoSink) syncImages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return
	}
	s.dirty = false
	writePlane(s.leftImage, s.latest.Left, s.latest.Width, s.latest.Height)
	writePlane(s.rightImage, s.latest.Right, s.latest.Width, s.latest.Height)
}

func writePlane(img *ebiten.Image, plane []byte, width, height int) {
	if len(plane) != width*height {
		return
	}
	pix := make([]byte, width*height*4)
	for i, gray := range plane {
		c := color.Gray{Y: gray} // VIP planes already carry 8-bit brightness
		r, g, b, a := c.RGBA()
		pix[i*4+0] = byte(r >> 8)
		pix[i*4+1] = byte(g >> 8)
		pix[i*4+2] = byte(b >> 8)
		pix[i*4+3] = byte(a >> 8)
	}
	img.WritePixels(pix)
}

// emulatorGame adapts Console.Step into ebiten's Update/Draw/Layout
// lifecycle, side-by-side rendering both eyes.
type emulatorGame struct {
	console       *Console
	videoSink     *ebitenVideoSink
	audioSink     AudioSink
	cyclesPerTick int
}

func (g *emulatorGame) Update() error {
	for budget := g.audioSinkBudget(); budget > 0; budget-- {
		cycles, hit := g.console.Step(g.videoSink, g.audioSink)
		if hit {
			break
		}
		_ = cycles
	}
	return nil
}

// audioSinkBudget sizes this tick's instruction budget off the audio
// ring buffer's free space: a fuller buffer means fewer cycles this
// tick, which is the audio backpressure §5 describes driving the host
// loop with.
func (g *emulatorGame) audioSinkBudget() int {
	free := g.audioSink.Capacity() - (g.audioSink.WritePosition()-g.audioSink.ReadPosition())
	if free <= 0 {
		return 0
	}
	if free > g.cyclesPerTick {
		free = g.cyclesPerTick
	}
	return free
}

func (g *emulatorGame) Draw(screen *ebiten.Image) {
	g.videoSink.syncImages()
	op := &ebiten.DrawImageOptions{}
	screen.DrawImage(g.videoSink.leftImage, op)
	op2 := &ebiten.DrawImageOptions{}
	op2.GeoM.Translate(displayResolutionX, 0)
	screen.DrawImage(g.videoSink.rightImage, op2)
}

func (g *emulatorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return displayResolutionX * 2, displayResolutionY
}

// runHost drives the console under an ebiten window until the user
// closes it or the game returns an error.
func runHost(console *Console, cyclesPerTick int, sampleRate int) error {
	audioSink, err := newAudioSink(sampleRate)
	if err != nil {
		return err
	}
	game := &emulatorGame{
		console:       console,
		videoSink:     newEbitenVideoSink(),
		audioSink:     audioSink,
		cyclesPerTick: cyclesPerTick,
	}
	ebiten.SetWindowSize(displayResolutionX*2, displayResolutionY)
	ebiten.SetWindowTitle("duoscope")
	return ebiten.RunGame(game)
}
