// Package curvedspaces is the module root for a three-manifold tiling
// engine: given a generator-file description of a closed constant-
// curvature 3-manifold (spherical, flat, or hyperbolic), it builds a
// Dirichlet fundamental domain, tiles space with copies of it, and
// maintains an observer's kinematic state as they move through the
// tiling. The root package holds no code; every concern lives in its own
// subpackage.
//
// # Pipeline
//
// The packages compose in the order a space loads and renders:
//
//	genfile   parses a generator file into raw matrices and an auto-
//	          detected curvature (spec §6)
//	geom      the linear-algebra kernel every other package builds on:
//	          Vector, Matrix, Curvature-parameterized inner products
//	holonomy  grows the generators into a finite, radius-bounded window
//	          of the holonomy group
//	dirichlet builds the Dirichlet fundamental domain as a half-edge
//	          polyhedron via iterative half-space intersection
//	honeycomb tiles space with one cell per group element and culls/
//	          sorts the visible ones each frame
//	observer  applies forward motion, rotation, and return-to-cell
//	projection builds the projection matrices and frustum planes a
//	          renderer needs
//	mesh      turns a Dirichlet polyhedron into renderer-ready vertex/
//	          index buffers
//	model     ModelData: the single lock-guarded owner tying all of the
//	          above together for a host application
//
// # Basic Usage
//
//	m := model.New()
//	if err := m.Load(ctx, generatorFile); err != nil {
//		log.Fatal(err)
//	}
//	m.Advance(deltaT)
//	snap := m.Snapshot()
package curvedspaces
