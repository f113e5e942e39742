package shape

import "github.com/milk9111/rigid/diag"

// Registry is the process-wide table of shape type descriptors. Exactly one
// registry may be live at a time; the simulation driver installs it before
// any other initialization and uninstalls it on teardown so a stale global
// can never be reused silently.
type Registry struct {
	names [numKinds]string
}

// Instance is the live registry, nil when no driver is up. Owned by the
// driver; everything else treats it as read-only.
var Instance *Registry

// Install creates the registry singleton. Installing while one is live is
// a programming fault.
func Install() *Registry {
	diag.Assert(Instance == nil, "shape.Instance == nil",
		"shape registry installed twice")
	Instance = &Registry{}
	return Instance
}

// Uninstall destroys the singleton and nulls it out, making a double
// teardown detectable.
func Uninstall() {
	diag.Assert(Instance != nil, "shape.Instance != nil",
		"shape registry uninstalled twice")
	Instance = nil
}

// RegisterTypes records the descriptors for every simulated shape type.
// Must run once after Install and before bodies are created.
func (r *Registry) RegisterTypes() {
	r.register(KindCircle, "circle")
	r.register(KindBox, "box")
	r.register(KindSegment, "segment")
}

func (r *Registry) register(k Kind, name string) {
	diag.Assertf(int(k) < numKinds, "kind < numKinds", "shape kind %d", k)
	diag.Assertf(r.names[k] == "", "not yet registered",
		"shape kind %s registered twice", name)
	r.names[k] = name
}

// Registered reports whether a kind has a descriptor.
func (r *Registry) Registered(k Kind) bool {
	return int(k) < numKinds && r.names[k] != ""
}

// Name returns the registered name of a shape kind.
func (r *Registry) Name(k Kind) string {
	diag.Assertf(r.Registered(k), "kind registered", "shape kind %d not registered", k)
	return r.names[k]
}
