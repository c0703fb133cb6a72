// Package orchestrator is the façade that wires every other package
// together for one end-to-end generation request, per §4.9. It is the
// composition root: the only place that holds concrete implementations of
// the cache, record-store, and artifact-store capabilities the rest of
// the module only sees as narrow interfaces (§9's singleton
// re-architecture note).
//
// Grounded on pkg/dungeon.DefaultGenerator's Generate method (teacher):
// same shape — a single struct holding one collaborator per pipeline
// stage, a single Generate(ctx, req) entry point, strictly sequential
// stages with an early return on the first failing one — generalized
// from the five-stage dungeon pipeline (graph, embed, carve, content,
// validate) to the nine-step generation pipeline in §4.9.
package orchestrator
