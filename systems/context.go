package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/mossfeld/henyard/components"
	"github.com/mossfeld/henyard/config"
)

// Cue names an audio cue the core requests from the presentation layer.
// Fire-and-forget; playback never feeds back into the simulation.
type Cue string

const (
	CueEggCollect     Cue = "egg-collect"
	CuePredatorScared Cue = "predator-scared"
	CueBirdCaptured   Cue = "bird-captured"
	CueCornThrown     Cue = "corn-thrown"
	CueScoreUp        Cue = "score-up"
	CueScoreDown      Cue = "score-down"
	CueChickenSquawk  Cue = "chicken-squawk"
	CueDuckQuack      Cue = "duck-quack"
	CueHawkScreech    Cue = "hawk-screech"
	CueDogBark        Cue = "dog-bark"
)

// MusicMode selects the looping music track.
type MusicMode string

const (
	MusicCalm   MusicMode = "calm"
	MusicDanger MusicMode = "danger"
	MusicLiz    MusicMode = "liz"
)

// EventKind identifies a simulation event emitted by behavior updates.
type EventKind uint8

const (
	EventBirdRanAway EventKind = iota
	EventBirdKilled
	EventBirdCaptured
	EventBirdReleased
	EventBirdAttracted
	EventBirdPerched
	EventPerchCleared
	EventPredatorStruck
	EventPredatorEscaped
	EventTreatTossed
	EventEggCollected
	EventCornThrown
)

// String returns the event name used in telemetry output.
func (k EventKind) String() string {
	switch k {
	case EventBirdRanAway:
		return "bird_ran_away"
	case EventBirdKilled:
		return "bird_killed"
	case EventBirdCaptured:
		return "bird_captured"
	case EventBirdReleased:
		return "bird_released"
	case EventBirdAttracted:
		return "bird_attracted"
	case EventBirdPerched:
		return "bird_perched"
	case EventPerchCleared:
		return "perch_cleared"
	case EventPredatorStruck:
		return "predator_struck"
	case EventPredatorEscaped:
		return "predator_escaped"
	case EventTreatTossed:
		return "treat_tossed"
	case EventEggCollected:
		return "egg_collected"
	case EventCornThrown:
		return "corn_thrown"
	default:
		return "unknown"
	}
}

// Event is a cross-agent effect emitted during a behavior update. The
// resolver applies all events after agent updates finish, so behavior code
// never mutates session state directly.
type Event struct {
	Kind     EventKind
	Bird     ecs.Entity
	Predator ecs.Entity
	Nest     int
}

// Effects collects the events and cues of one frame.
type Effects struct {
	Events []Event
	Cues   []Cue
}

// Emit appends an event.
func (fx *Effects) Emit(ev Event) {
	fx.Events = append(fx.Events, ev)
}

// PlayCue requests an audio cue.
func (fx *Effects) PlayCue(c Cue) {
	fx.Cues = append(fx.Cues, c)
}

// Reset clears the collected effects for the next frame.
func (fx *Effects) Reset() {
	fx.Events = fx.Events[:0]
	fx.Cues = fx.Cues[:0]
}

// Tuning caches the behavior constants as float32 for the per-frame hot
// path, mirroring how the config cache avoids repeated Cfg() lookups.
type Tuning struct {
	// Birds
	WanderSpeed     float32
	FleeMultiplier  float32
	ScareMultiplier float32
	AlertRadius     float32
	FleeCooldown    float32
	WanderMin       float32
	WanderMax       float32
	CoopVisitMin    float32
	CoopVisitMax    float32
	CoopStay        float32
	PondBias        float32
	PerchRadius     float32
	PerchChance     float32
	MaxPerched      int
	OutGrace        float32
	ScareRadius     float32
	SeekSpeed       float32
	EatRadius       float32
	FeedLifetime    float32
	NestReach       float32

	// Predators
	FleeRadius     float32
	CaptureRadius  float32
	CruiseAltitude float32
	ClimbRate      float32
	AvoidRadius    float32
	Hawk           PredatorTuning
	Dog            PredatorTuning

	// Visitor
	VisitorWalkSpeed float32
	SitDuration      float32
	TreatInterval    float32
	AttractRadius    float32
	AttractChance    float32
	EnterX           float32
	ExitX            float32
}

// PredatorTuning holds one predator kind's constants.
type PredatorTuning struct {
	Speed      float32
	CarrySpeed float32
	Health     int
	Flying     bool
	StalkTime  float32
	ScareRange float32
}

// NewTuning extracts behavior constants from the loaded config.
func NewTuning(cfg *config.Config) *Tuning {
	kind := func(kc *config.PredatorKindConfig) PredatorTuning {
		return PredatorTuning{
			Speed:      float32(kc.Speed),
			CarrySpeed: float32(kc.CarrySpeed),
			Health:     kc.Health,
			Flying:     kc.Flying,
			StalkTime:  float32(kc.StalkTime),
			ScareRange: float32(kc.ScareRange),
		}
	}
	return &Tuning{
		WanderSpeed:     float32(cfg.Flock.WanderSpeed),
		FleeMultiplier:  float32(cfg.Flock.FleeMultiplier),
		ScareMultiplier: float32(cfg.Flock.ScareMultiplier),
		AlertRadius:     float32(cfg.Flock.AlertRadius),
		FleeCooldown:    float32(cfg.Flock.FleeCooldown),
		WanderMin:       float32(cfg.Flock.WanderMin),
		WanderMax:       float32(cfg.Flock.WanderMax),
		CoopVisitMin:    float32(cfg.Flock.CoopVisitMin),
		CoopVisitMax:    float32(cfg.Flock.CoopVisitMax),
		CoopStay:        float32(cfg.Flock.CoopStay),
		PondBias:        float32(cfg.Flock.PondBias),
		PerchRadius:     float32(cfg.Flock.PerchRadius),
		PerchChance:     float32(cfg.Flock.PerchChance),
		MaxPerched:      cfg.Flock.MaxPerched,
		OutGrace:        float32(cfg.Flock.OutGrace),
		ScareRadius:     float32(cfg.Player.ScareRadius),
		SeekSpeed:       float32(cfg.Feed.SeekSpeed),
		EatRadius:       float32(cfg.Feed.EatRadius),
		FeedLifetime:    float32(cfg.Feed.Lifetime),
		NestReach:       float32(cfg.Yard.Coop.NestReach),

		FleeRadius:     float32(cfg.Predators.FleeRadius),
		CaptureRadius:  float32(cfg.Predators.CaptureRadius),
		CruiseAltitude: float32(cfg.Predators.CruiseAltitude),
		ClimbRate:      float32(cfg.Predators.ClimbRate),
		AvoidRadius:    float32(cfg.Predators.AvoidRadius),
		Hawk:           kind(&cfg.Predators.Hawk),
		Dog:            kind(&cfg.Predators.Dog),

		VisitorWalkSpeed: float32(cfg.Visitor.WalkSpeed),
		SitDuration:      float32(cfg.Visitor.SitDuration),
		TreatInterval:    float32(cfg.Visitor.TreatInterval),
		AttractRadius:    float32(cfg.Visitor.AttractRadius),
		AttractChance:    float32(cfg.Visitor.AttractChance),
		EnterX:           float32(cfg.Visitor.EnterX),
		ExitX:            float32(cfg.Visitor.ExitX),
	}
}

// Kind returns the tuning block for a predator kind.
func (t *Tuning) Kind(k components.PredatorKind) *PredatorTuning {
	if k == components.KindDog {
		return &t.Dog
	}
	return &t.Hawk
}

// Threat is a predator as seen by birds this frame.
type Threat struct {
	E      ecs.Entity
	X, Y   float32
	Flying bool
}

// CornSpot is a corn pile as seen by birds this frame.
type CornSpot struct {
	E    ecs.Entity
	X, Y float32
}

// FlockSpot is a bird as seen by predators and the visitor this frame.
// Free means the bird is neither captured nor perched nor inside the coop.
type FlockSpot struct {
	E    ecs.Entity
	X, Y float32
	Free bool
}

// PlayerInfo is the player's state as agents perceive it.
type PlayerInfo struct {
	X, Y    float32
	Scaring bool
}

// Frame is the shared read context for one behavior pass. The frame loop is
// the sole writer of agent state; everything here is rebuilt or refreshed
// each frame before agents run.
type Frame struct {
	DT  float32
	RNG *rand.Rand

	Tune *Tuning
	Yard *Yard

	Player  PlayerInfo
	Threats []Threat
	Corn    []CornSpot
	Flock   []FlockSpot
	Visitor *Visitor

	// Component access for cross-agent reads and position slaving. Stale
	// entity handles held across frames must be checked against World
	// before a Get; the maps panic on dead entities.
	World   *ecs.World
	PosMap  *ecs.Map1[components.Position]
	BirdMap *ecs.Map1[components.Bird]

	FX *Effects
}

// NearestThreat returns the closest threat to a point and its squared
// distance, or ok=false when no predator is present.
func (fr *Frame) NearestThreat(x, y float32) (Threat, float32, bool) {
	best := float32(-1)
	var found Threat
	for _, t := range fr.Threats {
		d2 := Dist2(x, y, t.X, t.Y)
		if best < 0 || d2 < best {
			best = d2
			found = t
		}
	}
	return found, best, best >= 0
}

// NearestCorn returns the closest corn pile to a point, or ok=false.
func (fr *Frame) NearestCorn(x, y float32) (CornSpot, float32, bool) {
	best := float32(-1)
	var found CornSpot
	for _, c := range fr.Corn {
		d2 := Dist2(x, y, c.X, c.Y)
		if best < 0 || d2 < best {
			best = d2
			found = c
		}
	}
	return found, best, best >= 0
}

// NearestFreeBird returns the closest free bird to a point, or ok=false.
func (fr *Frame) NearestFreeBird(x, y float32) (FlockSpot, float32, bool) {
	best := float32(-1)
	var found FlockSpot
	for _, b := range fr.Flock {
		if !b.Free {
			continue
		}
		d2 := Dist2(x, y, b.X, b.Y)
		if best < 0 || d2 < best {
			best = d2
			found = b
		}
	}
	return found, best, best >= 0
}
