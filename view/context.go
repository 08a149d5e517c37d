package view

// Context is the per-render-pass key/value environment used to resolve
// marker-prefixed property values. A nil Context behaves as an empty one.
type Context map[string]any

// Lookup reports presence explicitly so that present-but-falsy values
// (0, false, "") still resolve.
func (c Context) Lookup(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c[key]
	return v, ok
}
