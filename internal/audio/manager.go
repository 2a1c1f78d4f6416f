// Package audio synthesizes the collision cues for the terminal game. No
// asset files; both cues are generated decaying sines.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	balls "github.com/zegevlier/bevy-balls"
)

const sampleRate = beep.SampleRate(44100)

// Manager owns the speaker and a persistent mixer cue streamers are added
// to. A Manager that failed to initialize stays usable and plays nothing.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewManager() *Manager {
	return &Manager{mixer: &beep.Mixer{}}
}

// Init opens the speaker and starts streaming the mixer. Safe to call
// twice.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops playback and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// Play queues one cue streamer per kind. The simulation already reduced
// the tick's events to at most one cue per kind, so this never stacks
// duplicates within a tick.
func (m *Manager) Play(cues []balls.CueKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	for _, cue := range cues {
		switch cue {
		case balls.CueWall:
			m.add(110, 18, 150*time.Millisecond)
		case balls.CueBall:
			m.add(880, 40, 60*time.Millisecond)
		}
	}
}

// add appends a finite decaying-sine streamer to the live mixer. The
// speaker goroutine is streaming the mixer, so the mutation happens under
// the speaker lock.
func (m *Manager) add(freq, decay float64, duration time.Duration) {
	streamer := beep.Take(sampleRate.N(duration), &toneGenerator{
		sr:    sampleRate,
		freq:  freq,
		decay: decay,
	})
	speaker.Lock()
	m.mixer.Add(streamer)
	speaker.Unlock()
}

// toneGenerator emits a sine at freq whose amplitude decays exponentially
// at decay per second.
type toneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	decay float64
	pos   int
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		v := 0.25 * math.Exp(-t*g.decay) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error { return nil }
