// Package components defines the ECS components carried by node entities.
package components

import "github.com/go-gl/mathgl/mgl32"

// Neuron marks an entity as a structure node and carries its stable
// identity. ID is the node's index into the lattice, fixed for the session.
type Neuron struct {
	ID     uint32
	Degree uint16 // incident structural edges
}

// Position is the node's animated world position.
type Position struct {
	X, Y, Z float32
}

// Vec returns the position as a vector.
func (p Position) Vec() mgl32.Vec3 { return mgl32.Vec3{p.X, p.Y, p.Z} }

// Set overwrites the position from a vector.
func (p *Position) Set(v mgl32.Vec3) { p.X, p.Y, p.Z = v.X(), v.Y(), v.Z() }

// Anchor is the node's home position from the builder. The floating
// animation wanders around it and always returns.
type Anchor struct {
	X, Y, Z float32
}

// Vec returns the anchor as a vector.
func (a Anchor) Vec() mgl32.Vec3 { return mgl32.Vec3{a.X, a.Y, a.Z} }

// Oscillation drives the per-node floating animation.
type Oscillation struct {
	Phase float32 // fixed random offset so nodes never move in lockstep
	Amp   float32
	Speed float32
}

// Activity is the node's glow state. Level spikes when a pulse wave front
// passes and decays back toward Base.
type Activity struct {
	Base  float32
	Level float32
}
