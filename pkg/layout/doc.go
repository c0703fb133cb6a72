// Package layout holds the PositionedLayout intermediate model and the
// registry of archetype layout solvers that produce it from a Brief.
//
// # Overview
//
// A Solver is a pure function Brief → PositionedLayout. One is registered
// per archetype in §4.3's closed set, the same factory-registry shape the
// teacher uses for its spatial embedders (force-directed vs orthogonal):
// callers look a solver up by name rather than importing a concrete type.
//
// Solvers never fail outright; they degrade. EnforceInvariants runs after
// every solver and uniformly scales block widths down if the first pass
// overflowed the canvas, recording a warning rather than returning an
// error — LayoutUnsatisfiable is reserved for the case where even that
// cannot restore the invariants, which solver authors should treat as a
// bug in their own placement math.
package layout
