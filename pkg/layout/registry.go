package layout

import (
	"fmt"

	"github.com/infogen/core/pkg/brief"
)

// registry holds registered solver implementations, keyed by archetype.
var registry = make(map[brief.Archetype]Solver)

// Register adds a solver factory to the registry. Called from each
// archetype file's init(), mirroring the teacher's embedder registry.
func Register(a brief.Archetype, s Solver) {
	if s == nil {
		panic(fmt.Sprintf("layout: Register solver for %s is nil", a))
	}
	if _, exists := registry[a]; exists {
		panic(fmt.Sprintf("layout: Register called twice for %s", a))
	}
	registry[a] = s
}

// Get retrieves the solver registered for archetype a.
func Get(a brief.Archetype) (Solver, error) {
	s, exists := registry[a]
	if !exists {
		return nil, fmt.Errorf("layout: no solver registered for archetype %q", a)
	}
	return s, nil
}

// List returns every archetype with a registered solver.
func List() []brief.Archetype {
	out := make([]brief.Archetype, 0, len(registry))
	for a := range registry {
		out = append(out, a)
	}
	return out
}

// Run looks up the solver for b.DiagramType and runs it, enforcing the
// global invariants from §4.3 and §8 on the result before returning.
func Run(b *brief.Brief, deps Deps) (*PositionedLayout, error) {
	solver, err := Get(b.DiagramType)
	if err != nil {
		return nil, err
	}
	out, err := solver(b, deps)
	if err != nil {
		return nil, err
	}
	EnforceInvariants(out)
	return out, nil
}
