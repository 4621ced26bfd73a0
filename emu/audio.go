package emu

import (
	"math"
	"sync/atomic"
)

const (
	sampleRate = 48000

	// The DAC output band sits well below Nyquist: the divider register
	// keeps source rates between roughly 14 and 28 kHz.
	lpfCutoffHz = 6000.0

	// dacRingSize bounds the DAC byte queue at several frames of audio.
	// Must be a power of two.
	dacRingSize = 2048
)

// lpfAlpha is the smoothing factor for the first-order RC low-pass filter.
// Derived from: alpha = dt / (RC + dt) where RC = 1/(2*pi*fc).
var lpfAlpha = 1.0 / (float64(sampleRate)/(2*math.Pi*lpfCutoffHz) + 1)

// dacRing is a single-producer single-consumer queue of DAC bytes
// between the scheduler and the frame drain. A push against a full
// queue drops the sample; pops never block.
type dacRing struct {
	buf  [dacRingSize]byte
	head atomic.Uint32 // consumer index
	tail atomic.Uint32 // producer index
}

// push appends one DAC byte, dropping it when the queue is full.
func (r *dacRing) push(b byte) {
	t := r.tail.Load()
	if t-r.head.Load() == dacRingSize {
		return
	}
	r.buf[t&(dacRingSize-1)] = b
	r.tail.Store(t + 1)
}

// pop removes the oldest DAC byte, reporting false when empty.
func (r *dacRing) pop() (byte, bool) {
	h := r.head.Load()
	if h == r.tail.Load() {
		return 0, false
	}
	b := r.buf[h&(dacRingSize-1)]
	r.head.Store(h + 1)
	return b, true
}

// buffered returns the number of queued DAC bytes.
func (r *dacRing) buffered() int {
	return int(r.tail.Load() - r.head.Load())
}

// reset discards queued samples.
func (r *dacRing) reset() {
	r.head.Store(r.tail.Load())
}

// resampler converts the coprocessor's DAC stream to the host rate by
// linear interpolation. The source rate follows the $2006 divider, so
// the step resets whenever a game retunes the DAC.
type resampler struct {
	step float64 // source samples advanced per output sample
	pos  float64 // output position between prev and the incoming sample
	prev float64
}

func newResampler(srcHz int) *resampler {
	return &resampler{step: float64(srcHz) / sampleRate}
}

// push accepts one source sample in [-1, 1] and appends the output
// samples that land before it, mono duplicated to stereo.
func (r *resampler) push(s float64, out []int16) []int16 {
	for r.pos < 1 {
		v := r.prev + (s-r.prev)*r.pos
		p := int16(v * 32767)
		out = append(out, p, p)
		r.pos += r.step
	}
	r.pos--
	r.prev = s
	return out
}

// setDACRate recreates the resampler when the source rate changes.
func (e *Emulator) setDACRate(srcHz int) {
	if srcHz == e.dacSourceHz {
		return
	}
	e.dacSourceHz = srcHz
	e.resampler = newResampler(srcHz)
}

// drainAudio pulls queued DAC bytes through the resampler into the
// frame audio buffer. The DAC is unsigned 8-bit, centered here around
// zero.
func (e *Emulator) drainAudio() {
	for {
		b, ok := e.samples.pop()
		if !ok {
			break
		}
		v := float64(b)/255*2 - 1
		e.audioBuffer = e.resampler.push(v, e.audioBuffer)
	}
	if e.audioFilter {
		e.applyLowPass()
	}
}

// applyLowPass applies a first-order RC low-pass filter to the audio
// buffer, smoothing the zero-order hold steps of the DAC. The console
// output is mono so one filter state serves both channels, persisting
// across frames.
func (e *Emulator) applyLowPass() {
	for i := 0; i < len(e.audioBuffer); i += 2 {
		in := float64(e.audioBuffer[i])
		e.filterPrev = lpfAlpha*in + (1-lpfAlpha)*e.filterPrev
		s := int16(math.Round(e.filterPrev))
		e.audioBuffer[i] = s
		e.audioBuffer[i+1] = s
	}
}

// GetAudioSamples returns accumulated audio samples as 16-bit stereo PCM.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.audioBuffer
}

// SetAudioFilter enables or disables the output low-pass filter.
func (e *Emulator) SetAudioFilter(enabled bool) {
	e.audioFilter = enabled
}
