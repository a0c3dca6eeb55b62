// Package components defines ECS components for the yard simulation.
package components

// Position represents an entity's position on the ground plane.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's ground-plane velocity.
type Velocity struct {
	X, Y float32
}
