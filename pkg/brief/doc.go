// Package brief defines the Brief data model: the structured plan the
// Reasoning Service produces and the archetype layout solvers consume.
//
// A Brief is immutable once constructed. Validate enforces the invariants
// from §3: entity ids are unique, connection endpoints and layer members
// reference existing entities, and colors are 6-hex lowercase.
package brief
