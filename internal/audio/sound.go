// Package audio plays a short click for collisions between bodies.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate     = beep.SampleRate(44100)
	impactDuration = 40 * time.Millisecond
	minImpactGap   = 30 * time.Millisecond // Collisions closer together than this share one click
	baseFrequency  = 220.0
	topFrequency   = 880.0
)

// SoundManager mixes impact clicks onto the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	maxSpeed    float64
	lastImpact  time.Time
	initialized bool
}

// NewSoundManager creates a sound manager. maxSpeed is the impact speed that
// maps to the loudest, highest click.
func NewSoundManager(maxSpeed float64) *SoundManager {
	return &SoundManager{
		mixer:    &beep.Mixer{},
		maxSpeed: maxSpeed,
	}
}

// Initialize sets up the audio system.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayImpact queues a click for a collision with the given relative normal speed.
// Zero speeds and clicks arriving within minImpactGap of the previous one are dropped.
func (sm *SoundManager) PlayImpact(speed float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !(speed > 0) {
		return
	}
	now := time.Now()
	if now.Sub(sm.lastImpact) < minImpactGap {
		return
	}
	s, err := ImpactSound(sampleRate, speed, sm.maxSpeed)
	if err != nil {
		return
	}
	sm.lastImpact = now
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// ImpactSound builds the click for one collision: a short sine whose pitch and
// loudness grow with speed/maxSpeed.
func ImpactSound(rate beep.SampleRate, speed, maxSpeed float64) (beep.Streamer, error) {
	level := 1.0
	if maxSpeed > 0 {
		level = math.Min(1, math.Max(0, speed/maxSpeed))
	}
	freq := baseFrequency + level*(topFrequency-baseFrequency)
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	return newVolume(beep.Take(rate.N(impactDuration), tone), 0.15+0.6*level), nil
}

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf, so 0 becomes silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
