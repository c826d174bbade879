// Package audio turns microphone input into a gravity drive: the bass
// level of the live spectrum sways the gravity multiplier around its
// value at start. The portaudio callback only analyzes and hands levels
// off on a channel; the frame loop drains it via [Drive.Pump], so every
// engine call stays on the host's single control flow.
package audio

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"

	"doodlebox/internal/param"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// GravitySwing is how far a full-scale bass level pushes the gravity
	// multiplier away from its base value.
	GravitySwing = 2.0
)

type Drive struct {
	binder *param.Binder
	stream *portaudio.Stream
	levels chan float64

	// Callback-owned analysis state. Nothing below the channel is read
	// from the frame loop.
	buf      []complex128
	maxLevel float64
	bass     float64

	base   float64
	level  float64
	active bool
}

func NewDrive(b *param.Binder) *Drive {
	return &Drive{
		binder:   b,
		levels:   make(chan float64, 8),
		buf:      make([]complex128, BufferSize),
		maxLevel: 0.1,
	}
}

func (d *Drive) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initialize audio: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, BufferSize, d.analyze)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("start input stream: %w", err)
	}
	d.stream = stream
	d.base = d.binder.Value(param.Gravity)
	d.active = true
	return nil
}

func (d *Drive) Stop() {
	if d.stream != nil {
		d.stream.Stop()
		d.stream.Close()
		d.stream = nil
	}
	if d.active {
		portaudio.Terminate()
		d.active = false
		d.binder.Set(param.Gravity, d.base)
	}
}

func (d *Drive) Active() bool { return d.active }

// Level returns the last bass level Pump consumed, in 0..1.
func (d *Drive) Level() float64 { return d.level }

// Pump drains pending levels and pushes the newest one into the gravity
// multiplier. Hosts call it once per frame.
func (d *Drive) Pump() {
	if !d.active {
		return
	}
	got := false
drain:
	for {
		select {
		case v := <-d.levels:
			d.level = v
			got = true
		default:
			break drain
		}
	}
	if got {
		d.binder.Set(param.Gravity, d.base+d.level*GravitySwing)
	}
}

// analyze runs on the portaudio callback thread. It windows the input,
// takes the spectrum, tracks the bass bucket with slow gain control and
// hands the smoothed level off. A full channel drops the sample rather
// than block the audio thread.
func (d *Drive) analyze(in []float32) {
	for i, v := range in {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(BufferSize-1)))
		d.buf[i] = complex(float64(v)*window, 0)
	}
	spectrum := fft.FFT(d.buf)

	bassSum := 0.0
	for i := 0; i < 5; i++ {
		bassSum += cmplx.Abs(spectrum[i])
	}

	peak := bassSum / 100.0
	if peak > d.maxLevel {
		d.maxLevel = peak
	} else {
		d.maxLevel *= 0.999
	}
	gain := 1.0
	if d.maxLevel > 0.001 {
		gain = 1.0 / d.maxLevel
	}
	if gain > 50.0 {
		gain = 50.0
	}

	d.bass = d.bass*0.9 + math.Min(bassSum/100.0*gain, 1.0)*0.1

	select {
	case d.levels <- d.bass:
	default:
	}
}
