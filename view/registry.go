package view

// Kind names a node primitive the renderer understands natively.
type Kind string

const (
	KindContainer Kind = "container"
	KindStack     Kind = "stack"
	KindRow       Kind = "row"
	KindCard      Kind = "card"
	KindHeading   Kind = "heading"
	KindText      Kind = "text"
	KindSpan      Kind = "span"
	KindButton    Kind = "button"
	KindImage     Kind = "image"
	KindBadge     Kind = "badge"
	KindTable     Kind = "table"
	KindChart     Kind = "chart"
	KindInput     Kind = "input"
)

// Registry is the closed set of kinds the renderer supports. It is frozen for
// the duration of a render pass; unknown kinds resolve to the fallback
// container kind rather than failing.
type Registry struct {
	kinds    map[string]Kind
	fallback Kind
}

// DefaultRegistry returns the registry of built-in primitives with
// KindContainer as the fallback.
func DefaultRegistry() *Registry {
	kinds := make(map[string]Kind, 16)
	for _, k := range []Kind{
		KindContainer, KindStack, KindRow, KindCard, KindHeading, KindText,
		KindSpan, KindButton, KindImage, KindBadge, KindTable, KindChart,
		KindInput,
	} {
		kinds[string(k)] = k
	}
	return &Registry{kinds: kinds, fallback: KindContainer}
}

// Resolve maps a requested kind name to a registered Kind. The second return
// reports whether the name was known; on a miss the fallback kind is returned
// so callers always receive a renderable kind.
func (r *Registry) Resolve(name string) (Kind, bool) {
	if r == nil || r.kinds == nil {
		return KindContainer, false
	}
	if k, ok := r.kinds[name]; ok {
		return k, true
	}
	return r.fallback, false
}

// Fallback is the kind substituted for unrecognized names.
func (r *Registry) Fallback() Kind {
	if r == nil {
		return KindContainer
	}
	return r.fallback
}
