package components

import "github.com/mlange-42/ark/ecs"

// PredatorKind identifies a predator kind.
type PredatorKind uint8

const (
	KindHawk PredatorKind = iota
	KindDog
)

// String returns the kind name.
func (k PredatorKind) String() string {
	if k == KindDog {
		return "dog"
	}
	return "hawk"
}

// PredatorPhase is the behavior state of a predator. The phase tags which
// association fields are valid: Target while stalking, Prey while carrying.
// A predator can never stalk and carry at the same time.
type PredatorPhase uint8

const (
	PredHunting PredatorPhase = iota
	PredStalking
	PredCarrying
	PredFleeing
)

// String returns the phase name.
func (p PredatorPhase) String() string {
	switch p {
	case PredStalking:
		return "stalking"
	case PredCarrying:
		return "carrying"
	case PredFleeing:
		return "fleeing"
	default:
		return "hunting"
	}
}

// Predator holds predator-specific state.
type Predator struct {
	Kind   PredatorKind
	Phase  PredatorPhase
	Health int

	Target     ecs.Entity // stalking lock, valid only while PredStalking
	Prey       ecs.Entity // carried bird, valid only while PredCarrying
	StalkTimer float32    // accumulated stalking time toward capture

	Alt         float32 // altitude of flying kinds
	ScreechDone bool    // one-shot dive cue, re-armed only at cruise with no target
}
