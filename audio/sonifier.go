// Package audio turns the collision rate into short clicks
package audio

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/collisions/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Sonifier plays one click per drawn frame with collisions; pitch follows the collision count
// The speaker runs its own goroutine; Frame only queues streamers on the mixer
type Sonifier struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	last        time.Time

	muted atomic.Bool
}

// NewSonifier creates a silent sonifier; Initialize opens the speaker
func NewSonifier() *Sonifier {
	return &Sonifier{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device
func (s *Sonifier) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close stops playback and releases the device
func (s *Sonifier) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

// SetMuted toggles output without closing the device
func (s *Sonifier) SetMuted(muted bool) {
	s.muted.Store(muted)
}

// Muted reports the mute state
func (s *Sonifier) Muted() bool {
	return s.muted.Load()
}

// Frame queues a click for the collisions performed since the previous frame
// Clicks closer than MinSoundGap are dropped
func (s *Sonifier) Frame(now time.Time, collisions uint64) {
	if collisions == 0 || s.muted.Load() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized || now.Sub(s.last) < parameter.MinSoundGap {
		return
	}
	click, err := Click(ClickFrequency(collisions))
	if err != nil {
		return
	}
	s.last = now
	speaker.Lock()
	s.mixer.Add(click)
	speaker.Unlock()
}

// ClickFrequency maps a per-frame collision count onto the click pitch, saturating at the top of the range
func ClickFrequency(collisions uint64) float64 {
	f := math.Log1p(float64(collisions)) / parameter.ClickRateScale
	return parameter.ClickBaseFreq + parameter.ClickFreqRange*min(f, 1)
}

// Click builds one shaped sine click at freq
func Click(freq float64) (beep.Streamer, error) {
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	n := sampleRate.N(parameter.ClickDuration)
	shaped := &envelope{streamer: beep.Take(n, tone), total: n, release: n / 2}
	return &effects.Volume{Streamer: shaped, Base: 2, Volume: math.Log2(parameter.ClickVolume)}, nil
}

// envelope fades the second half of a finite stream to silence
type envelope struct {
	streamer beep.Streamer
	position int
	total    int
	release  int
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	start := e.total - e.release
	for i := 0; i < n; i++ {
		if e.position >= start && e.release > 0 {
			vol := float64(e.total-e.position) / float64(e.release)
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
