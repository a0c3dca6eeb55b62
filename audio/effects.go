package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator streamer.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep is an oscillator whose frequency glides between two values, used for
// the hawk screech and the score jingles.
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewSweep creates a frequency glide streamer.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, false
		}

		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t

		var val float64
		switch s.wave {
		case WaveSquare:
			if s.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (s.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		default:
			val = math.Sin(2 * math.Pi * s.phase)
		}

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase = s.phase - math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes a streamer with linear attack and release ramps.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		var vol float64 = 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps a streamer with a volume effect. math.Log2(0) is -Inf, so
// zero volume switches to silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is a tone within a cue or melody.
type note struct {
	freq float64
	dur  time.Duration
	wave WaveType
	vol  float64
}

// newNoteSeq sequences notes into one streamer, each shaped by a short
// envelope so transitions do not click.
func newNoteSeq(rate beep.SampleRate, notes ...note) beep.Streamer {
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := NewOscillator(n.freq, n.dur, n.wave, rate)
		shaped := NewEnvelope(osc, n.dur, 5*time.Millisecond, n.dur/3, rate)
		streamers = append(streamers, newVolume(shaped, n.vol))
	}
	return beep.Seq(streamers...)
}

// melody is an endless looping note sequence for background music.
type melody struct {
	notes    []note
	rate     beep.SampleRate
	idx      int
	position int
	phase    float64
	samples  int
}

// NewMelody creates an infinite looping melody streamer.
func NewMelody(rate beep.SampleRate, notes []note) beep.Streamer {
	m := &melody{notes: notes, rate: rate}
	m.samples = rate.N(notes[0].dur)
	return m
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		cur := m.notes[m.idx]

		val := math.Sin(2 * math.Pi * m.phase)
		if cur.wave == WaveSquare {
			if m.phase < 0.5 {
				val = 0.6
			} else {
				val = -0.6
			}
		}

		// Fade each note in and out over its first and last tenth.
		edge := m.samples / 10
		vol := cur.vol
		if edge > 0 {
			if m.position < edge {
				vol *= float64(m.position) / float64(edge)
			} else if rem := m.samples - m.position; rem < edge {
				vol *= float64(rem) / float64(edge)
			}
		}

		samples[i][0] = val * vol
		samples[i][1] = val * vol

		m.phase += cur.freq / float64(m.rate)
		m.phase = m.phase - math.Floor(m.phase)
		m.position++
		if m.position >= m.samples {
			m.position = 0
			m.idx = (m.idx + 1) % len(m.notes)
			m.samples = m.rate.N(m.notes[m.idx].dur)
		}
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }
