// Package audio synthesizes every cue and music track at runtime. There are
// no sound assets; each effect is an oscillator recipe.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// SoundManager owns the speaker, the effect mixer and the looping music
// track. A zero-initialized manager swallows every call, so headless runs
// just skip Initialize.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	mode        string
	initialized bool
}

// NewSoundManager creates a sound manager. Call Initialize before use.
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything. The speaker itself has no close.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.music != nil {
		sm.music.Paused = true
	}
	sm.mixer.Clear()
	sm.initialized = false
}

// PlayCue fires a one-shot effect by cue name. Unknown names are ignored.
func (sm *SoundManager) PlayCue(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := cueStreamer(name)
	if s == nil {
		return
	}
	sm.mixer.Add(s)
}

// SetMusicMode swaps the looping background track. Same mode is a no-op.
func (sm *SoundManager) SetMusicMode(mode string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || mode == sm.mode {
		return
	}
	if sm.music != nil {
		sm.music.Paused = true
	}
	sm.mode = mode
	sm.music = &beep.Ctrl{Streamer: musicStreamer(mode)}
	sm.mixer.Add(sm.music)
}

func cueStreamer(name string) beep.Streamer {
	switch name {
	case "egg-collect":
		return newNoteSeq(sampleRate,
			note{880, 60 * time.Millisecond, WaveSine, 0.5},
			note{1318.51, 90 * time.Millisecond, WaveSine, 0.5},
		)
	case "predator-scared":
		return newVolume(NewEnvelope(
			NewSweep(600, 150, 200*time.Millisecond, WaveSquare, sampleRate),
			200*time.Millisecond, 5*time.Millisecond, 80*time.Millisecond, sampleRate), 0.4)
	case "bird-captured":
		return newNoteSeq(sampleRate,
			note{392, 120 * time.Millisecond, WaveSaw, 0.5},
			note{311.13, 180 * time.Millisecond, WaveSaw, 0.5},
		)
	case "corn-thrown":
		return newVolume(NewEnvelope(
			NewOscillator(0, 90*time.Millisecond, WaveNoise, sampleRate),
			90*time.Millisecond, 2*time.Millisecond, 60*time.Millisecond, sampleRate), 0.25)
	case "score-up":
		return newVolume(NewEnvelope(
			NewSweep(523.25, 1046.5, 130*time.Millisecond, WaveSquare, sampleRate),
			130*time.Millisecond, 5*time.Millisecond, 50*time.Millisecond, sampleRate), 0.3)
	case "score-down":
		return newVolume(NewEnvelope(
			NewSweep(440, 220, 180*time.Millisecond, WaveSquare, sampleRate),
			180*time.Millisecond, 5*time.Millisecond, 70*time.Millisecond, sampleRate), 0.3)
	case "chicken-squawk":
		return newNoteSeq(sampleRate,
			note{740, 50 * time.Millisecond, WaveSquare, 0.35},
			note{660, 40 * time.Millisecond, WaveSquare, 0.3},
			note{740, 60 * time.Millisecond, WaveSquare, 0.35},
		)
	case "duck-quack":
		return newVolume(NewEnvelope(
			NewSweep(320, 240, 140*time.Millisecond, WaveSaw, sampleRate),
			140*time.Millisecond, 10*time.Millisecond, 60*time.Millisecond, sampleRate), 0.4)
	case "hawk-screech":
		return newVolume(NewEnvelope(
			NewSweep(2200, 900, 450*time.Millisecond, WaveSaw, sampleRate),
			450*time.Millisecond, 20*time.Millisecond, 200*time.Millisecond, sampleRate), 0.35)
	case "dog-bark":
		return newNoteSeq(sampleRate,
			note{180, 90 * time.Millisecond, WaveSaw, 0.5},
			note{0, 50 * time.Millisecond, WaveSine, 0},
			note{200, 110 * time.Millisecond, WaveSaw, 0.5},
		)
	}
	return nil
}

// musicStreamer builds the looping track for a mode. The danger track is a
// low pulsing ostinato, the visitor track a light waltz figure, calm a slow
// drone arpeggio.
func musicStreamer(mode string) beep.Streamer {
	q := 300 * time.Millisecond
	switch mode {
	case "danger":
		return NewMelody(sampleRate, []note{
			{110, q / 2, WaveSquare, 0.18},
			{110, q / 2, WaveSquare, 0.1},
			{130.81, q / 2, WaveSquare, 0.18},
			{110, q / 2, WaveSquare, 0.1},
			{98, q / 2, WaveSquare, 0.18},
			{110, q / 2, WaveSquare, 0.1},
		})
	case "liz":
		return NewMelody(sampleRate, []note{
			{329.63, q, WaveSine, 0.16},
			{392, q, WaveSine, 0.12},
			{493.88, q, WaveSine, 0.12},
			{523.25, q, WaveSine, 0.16},
			{493.88, q, WaveSine, 0.12},
			{392, q, WaveSine, 0.12},
		})
	default:
		return NewMelody(sampleRate, []note{
			{196, 2 * q, WaveSine, 0.1},
			{246.94, 2 * q, WaveSine, 0.08},
			{293.66, 2 * q, WaveSine, 0.1},
			{246.94, 2 * q, WaveSine, 0.08},
		})
	}
}
