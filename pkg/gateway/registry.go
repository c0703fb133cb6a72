package gateway

import "fmt"

// registry holds constructed Provider instances keyed by name, mirroring
// the teacher's embedder registry (pkg/embedding.Register/Get/List).
var registry = make(map[string]Provider)

// RegisterProvider adds a constructed provider adapter to the registry.
// Called once at startup for every provider the deployment has credentials
// for; a tier's fallback chain may name a model whose provider was never
// registered, in which case Complete skips it and moves to the next model.
func RegisterProvider(p Provider) {
	if p == nil {
		panic("gateway: RegisterProvider called with nil provider")
	}
	if _, exists := registry[p.Name()]; exists {
		panic(fmt.Sprintf("gateway: RegisterProvider called twice for %s", p.Name()))
	}
	registry[p.Name()] = p
}

// GetProvider retrieves a registered provider by name.
func GetProvider(name string) (Provider, bool) {
	p, ok := registry[name]
	return p, ok
}

// ListProviders returns the names of every registered provider.
func ListProviders() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// UnregisterProviderForTest removes a registered provider by name. It
// exists only so external test packages (which cannot reach the
// unexported registry map the way this package's own tests do) can clean
// up a fake provider registered for one test.
func UnregisterProviderForTest(name string) {
	delete(registry, name)
}
