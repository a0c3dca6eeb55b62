package components

// Species identifies a bird species.
type Species uint8

const (
	SpeciesChicken Species = iota
	SpeciesDuck
)

// String returns the species name.
func (s Species) String() string {
	if s == SpeciesDuck {
		return "duck"
	}
	return "chicken"
}

// BirdPhase is the behavior state of a bird. A bird is in exactly one phase
// at a time, so captured/perched/coop states cannot overlap.
type BirdPhase uint8

const (
	BirdWandering BirdPhase = iota
	BirdFleeing
	BirdSeekingFeed
	BirdCoopWalking
	BirdCoopInside
	BirdCoopReturning
	BirdAttracted
	BirdPerched
	BirdCaptured
)

// String returns the phase name.
func (p BirdPhase) String() string {
	switch p {
	case BirdFleeing:
		return "fleeing"
	case BirdSeekingFeed:
		return "seekingFeed"
	case BirdCoopWalking:
		return "coopWalking"
	case BirdCoopInside:
		return "coopInside"
	case BirdCoopReturning:
		return "coopReturning"
	case BirdAttracted:
		return "attracted"
	case BirdPerched:
		return "perched"
	case BirdCaptured:
		return "captured"
	default:
		return "wandering"
	}
}

// Bird holds bird-specific state. Phase-specific fields are only meaningful
// in their phase: FleeTimer/FleeSpeed while fleeing, CoopTimer counts down to
// the next visit while not visiting and counts the stay while inside.
type Bird struct {
	Species Species
	Phase   BirdPhase

	// Wander heading (unit vector) and cadence until the next heading change
	HeadingX, HeadingY float32
	WanderTimer        float32

	FleeTimer float32 // remaining behavior suppression after a fright
	FleeSpeed float32 // speed multiplier for the current fright

	CoopTimer float32 // chickens only; see Phase
	OutTimer  float32 // accrued time outside the yard bounds
}
