// Package audio plays short sound effects through the system speaker.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the rate the speaker is opened at; every effect is resampled to it.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager holds decoded effects and mixes them onto the speaker.
type Manager struct {
	mu          sync.RWMutex
	initialized bool
	sampleRate  beep.SampleRate
	volume      float64                 // 0..1, linear
	buffers     map[string]*beep.Buffer // decoded at sampleRate
	mixer       *beep.Mixer
}

// New creates a new audio manager.
func New(volume float64) *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		volume:     clamp(volume, 0, 1),
		buffers:    make(map[string]*beep.Buffer),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close stops playback and drops loaded effects.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
	}
	m.buffers = make(map[string]*beep.Buffer)
	m.initialized = false
}

// Volume returns the volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// Load decodes WAV data and keeps it under name. It does not need the speaker.
func (m *Manager) Load(name string, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav %s: %w", name, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}
	format.SampleRate = m.sampleRate
	buf := beep.NewBuffer(format)
	buf.Append(src)
	if buf.Len() == 0 {
		return fmt.Errorf("wav %s has no samples", name)
	}

	m.mu.Lock()
	m.buffers[name] = buf
	m.mu.Unlock()
	return nil
}

// Loaded returns the length in samples of a loaded effect.
func (m *Manager) Loaded(name string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.buffers[name]
	if !ok {
		return 0, false
	}
	return buf.Len(), true
}

// Play starts a loaded effect. Overlapping plays are mixed.
func (m *Manager) Play(name string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return fmt.Errorf("audio not initialized")
	}
	buf, ok := m.buffers[name]
	if !ok {
		return fmt.Errorf("sound %s not loaded", name)
	}

	voice := attenuate(buf.Streamer(0, buf.Len()), m.volume)
	speaker.Lock()
	m.mixer.Add(voice)
	speaker.Unlock()
	return nil
}

// attenuate scales s linearly by vol. effects.Volume multiplies by Base^Volume,
// so base 10 with log10(vol) gives a gain of exactly vol.
func attenuate(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 10, Volume: math.Log10(vol)}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
