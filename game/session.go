package game

import (
	"github.com/mossfeld/henyard/config"
)

// Outcome is the session's terminal state.
type Outcome uint8

const (
	OutcomeActive Outcome = iota
	OutcomeCompleted
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	default:
		return "active"
	}
}

// EggCycle tracks the nest row's shared lay/collect cycle. Collected flags
// are reset when a cycle's window expires, so a fresh availability phase
// always starts with every nest holding an egg.
type EggCycle struct {
	Available bool
	Timer     float32
	Collected []bool
}

// AllCollected reports whether every nest was emptied this cycle.
func (ec *EggCycle) AllCollected() bool {
	for _, c := range ec.Collected {
		if !c {
			return false
		}
	}
	return len(ec.Collected) > 0
}

// Session holds score, rosters, timers and the terminal outcome of one
// playthrough. All mutation happens through the resolver and the step loop.
type Session struct {
	Elapsed float32
	Budget  float32
	Score   int

	Chickens     int
	Ducks        int
	InitialFlock int

	RanAway       int
	Killed        int
	Defeated      int
	EggsCollected int
	BasketStreak  int

	FeedCharges int
	Eggs        EggCycle
	SafeTimer   float32

	Outcome Outcome
}

// NewSession builds the starting session state. budgetOverride replaces the
// configured time budget when positive.
func NewSession(cfg *config.Config, budgetOverride float64) *Session {
	budget := cfg.Session.TimeBudget
	if budgetOverride > 0 {
		budget = budgetOverride
	}
	return &Session{
		Budget:       float32(budget),
		Chickens:     cfg.Flock.Chickens,
		Ducks:        cfg.Flock.Ducks,
		InitialFlock: cfg.Derived.InitialFlock,
		FeedCharges:  cfg.Feed.Charges,
		SafeTimer:    float32(cfg.Session.SafeInterval),
		Eggs: EggCycle{
			Timer:     float32(cfg.Eggs.LayDelay),
			Collected: make([]bool, cfg.Yard.Coop.NestCount),
		},
	}
}

// FlockCount returns the number of birds still in the yard.
func (s *Session) FlockCount() int {
	return s.Chickens + s.Ducks
}

// Remaining returns the seconds left until the time budget runs out.
func (s *Session) Remaining() float32 {
	r := s.Budget - s.Elapsed
	if r < 0 {
		return 0
	}
	return r
}

// Terminal reports whether the session has ended.
func (s *Session) Terminal() bool {
	return s.Outcome != OutcomeActive
}

// Stats is the end-of-session summary handed to the presenter.
type Stats struct {
	Score          int
	Duration       float32
	BirdsRemaining int
	EggsCollected  int
	RanAway        int
	Killed         int
	Defeated       int
}

func (s *Session) stats() Stats {
	return Stats{
		Score:          s.Score,
		Duration:       s.Elapsed,
		BirdsRemaining: s.FlockCount(),
		EggsCollected:  s.EggsCollected,
		RanAway:        s.RanAway,
		Killed:         s.Killed,
		Defeated:       s.Defeated,
	}
}
