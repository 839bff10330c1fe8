// Package force places tasks on a 2D canvas with an iterative force
// simulation.
//
// Every pair of tasks repels with an inverse-square force and every
// resolved dependency acts as a spring pulling its endpoints together. The
// simulation runs a fixed number of iterations; there is no convergence
// test. Each iteration:
//
//  1. resets every velocity to zero,
//  2. accumulates all-pairs repulsion (Repulsion / d², with d clamped to at
//     least 1),
//  3. accumulates spring attraction along each edge (d² / Spring),
//  4. scales velocities by Damping, moves each task, and clamps it into
//     [Options.Bounds].
//
// Coordinates that become NaN or infinite are reset to the canvas center,
// so callers never observe non-finite positions.
//
// # Determinism
//
// Initial positions are drawn uniformly at random inside the bounds. With
// Seed set to zero each call uses a fresh seed and layouts differ between
// runs. A non-zero Seed makes [Compute] reproducible for the same graph and
// options:
//
//	opts := force.DefaultOptions()
//	opts.Seed = 42
//	positions, err := force.Compute(ctx, g, opts)
package force
