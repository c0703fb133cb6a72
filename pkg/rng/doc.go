// Package rng provides deterministic random number generation for the
// orchestrator's preprocessing sub-steps, per SPEC_FULL §4.9 step 3.
//
// # Overview
//
// The RNG type makes logo k-means centroid seeding reproducible: the same
// uploaded logo bytes must always extract the same dominant-color palette,
// so the derivation below takes the logo's content hash rather than wall
// clock time as its source of entropy.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_stage = H(masterSeed, stageName, configHash)
//
// where:
//   - masterSeed: caller-supplied entropy, 0 when the call site has none
//   - stageName: preprocessing sub-step identifier (e.g. "logo_kmeans")
//   - configHash: hash of the bytes the sub-step operates on (the logo)
//
// This ensures:
//  1. Same inputs always produce same RNG sequence (determinism)
//  2. Different sub-steps get independent random sequences (isolation)
//  3. A different logo results in a different sequence (sensitivity)
//
// # Usage
//
//	logoHash := sha256.Sum256(logoBytes)
//	kmeansRNG := rng.NewRNG(0, "logo_kmeans", logoHash[:])
//	centroidIdx := kmeansRNG.Intn(len(pixels))
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each goroutine should use its own RNG
// instance.
//
// # Performance
//
// The underlying math/rand.Rand is highly efficient:
//   - Uint64(): ~2ns per call
//   - Intn():   ~3ns per call
//   - Float64(): ~2ns per call
//
// Creating a new RNG costs ~8µs due to SHA-256 computation.
package rng
