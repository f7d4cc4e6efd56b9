// Package cloth implements a mass-spring cloth simulation solved with
// Störmer–Verlet integration and iterative constraint projection.
//
// A [Cloth] is a rows×cols grid of point masses wired with structural,
// shear and bending springs. Each [Cloth.Update] call runs the fixed
// per-frame pipeline:
//
//  1. force accumulation — gravity, air drag, wind, Hooke + axial damping
//  2. Verlet integration — positions advance, velocity is recovered
//  3. constraint projection — spring lengths clamped into a stretch band
//
// Collision passes ([Cloth.CollideSphere], [Cloth.CollideSelf]) are not
// part of the fixed pipeline; the caller invokes them as needed, normally
// after Update.
//
// The package is not safe for concurrent use. Particle and spring slices
// returned by the accessors are views into simulation state and stay
// valid only until the next Update or Reset.
package cloth
