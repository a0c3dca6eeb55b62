package game

import (
	"log/slog"

	"github.com/mossfeld/henyard/audio"
	"github.com/mossfeld/henyard/systems"
)

// Presenter receives the simulation's outbound notifications. The core only
// pushes; a presenter can never feed state back into the step loop.
type Presenter interface {
	PlayCue(c systems.Cue)
	SetMusicMode(m systems.MusicMode)
	NotifyScoreChange(delta int, reason string)
	NotifyRosterChange(chickens, ducks int)
	NotifyTimerTick(remaining float32)
	NotifySessionEnd(outcome Outcome, stats Stats)
}

// NopPresenter discards every notification. Used in headless runs and tests
// that do not record cues.
type NopPresenter struct{}

func (NopPresenter) PlayCue(systems.Cue)             {}
func (NopPresenter) SetMusicMode(systems.MusicMode)  {}
func (NopPresenter) NotifyScoreChange(int, string)   {}
func (NopPresenter) NotifyRosterChange(int, int)     {}
func (NopPresenter) NotifyTimerTick(float32)         {}
func (NopPresenter) NotifySessionEnd(Outcome, Stats) {}

// AudioPresenter forwards cues and music mode changes to the sound manager.
// The HUD reads score, roster and timer straight from the session each frame,
// so those notifications only go to the log.
type AudioPresenter struct {
	Sound *audio.SoundManager
}

func (p *AudioPresenter) PlayCue(c systems.Cue) {
	p.Sound.PlayCue(string(c))
}

func (p *AudioPresenter) SetMusicMode(m systems.MusicMode) {
	p.Sound.SetMusicMode(string(m))
}

func (p *AudioPresenter) NotifyScoreChange(delta int, reason string) {
	slog.Debug("score change", "delta", delta, "reason", reason)
}

func (p *AudioPresenter) NotifyRosterChange(chickens, ducks int) {}

func (p *AudioPresenter) NotifyTimerTick(remaining float32) {}

func (p *AudioPresenter) NotifySessionEnd(outcome Outcome, stats Stats) {
	slog.Info("session ended",
		"outcome", outcome.String(),
		"score", stats.Score,
		"birds_remaining", stats.BirdsRemaining,
		"eggs", stats.EggsCollected,
	)
}

// RecordingPresenter captures cues and notifications for tests.
type RecordingPresenter struct {
	Cues       []systems.Cue
	Modes      []systems.MusicMode
	ScoreLog   []int
	EndOutcome Outcome
	EndStats   Stats
	Ended      bool
}

func (p *RecordingPresenter) PlayCue(c systems.Cue) { p.Cues = append(p.Cues, c) }

func (p *RecordingPresenter) SetMusicMode(m systems.MusicMode) {
	if len(p.Modes) == 0 || p.Modes[len(p.Modes)-1] != m {
		p.Modes = append(p.Modes, m)
	}
}

func (p *RecordingPresenter) NotifyScoreChange(delta int, reason string) {
	p.ScoreLog = append(p.ScoreLog, delta)
}

func (p *RecordingPresenter) NotifyRosterChange(chickens, ducks int) {}

func (p *RecordingPresenter) NotifyTimerTick(remaining float32) {}

func (p *RecordingPresenter) NotifySessionEnd(outcome Outcome, stats Stats) {
	p.Ended = true
	p.EndOutcome = outcome
	p.EndStats = stats
}
