package view

import "strings"

// Marker is the sentinel prefix that turns a string prop into a context
// lookup: "$symbol" resolves to ctx["symbol"] when present.
const Marker = "$"

// Node is a rendered UI node produced by a Renderer.
type Node struct {
	Kind     Kind
	Props    map[string]any
	Children []*Node

	// RequestedKind keeps the original descriptor name when the registry
	// fell back to the container kind. Empty for recognized kinds.
	RequestedKind string
}

// Renderer is the host primitive that turns a resolved (kind, props,
// children) triple into a node. children may contain nil entries for hidden
// subtrees; the renderer decides how to skip them.
type Renderer interface {
	CreateNode(kind Kind, props map[string]any, children []*Node) *Node
}

// nodeRenderer is the default Renderer: a pure tree constructor.
type nodeRenderer struct{}

func (nodeRenderer) CreateNode(kind Kind, props map[string]any, children []*Node) *Node {
	return &Node{Kind: kind, Props: props, Children: children}
}

// InterpreterOption customizes an Interpreter.
type InterpreterOption func(*Interpreter)

func WithRegistry(r *Registry) InterpreterOption {
	return func(it *Interpreter) {
		if r != nil {
			it.registry = r
		}
	}
}

func WithRenderer(r Renderer) InterpreterOption {
	return func(it *Interpreter) {
		if r != nil {
			it.renderer = r
		}
	}
}

// Interpreter walks a descriptor tree and produces rendered nodes. It holds
// no per-render state; a single Interpreter may serve concurrent renders.
//
// Render never fails: hidden nodes collapse to nil, unknown kinds fall back
// to the container kind, and unresolved markers pass through verbatim. A
// malformed node must not take its siblings down with it.
type Interpreter struct {
	registry *Registry
	renderer Renderer
}

func NewInterpreter(opts ...InterpreterOption) *Interpreter {
	it := &Interpreter{
		registry: DefaultRegistry(),
		renderer: nodeRenderer{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(it)
		}
	}
	return it
}

// Render resolves the descriptor against ctx and returns the rendered node,
// or nil when the descriptor is absent or marked invisible. An invisible
// descriptor short-circuits: its children are never evaluated and the
// renderer is never called for the subtree.
func (it *Interpreter) Render(d *Descriptor, ctx Context) *Node {
	if d == nil || !d.visible() {
		return nil
	}

	kind, known := it.registry.Resolve(d.Kind)
	props := resolveProps(d.Props, ctx)

	children := make([]*Node, len(d.Children))
	for i, child := range d.Children {
		children[i] = it.Render(child, ctx)
	}

	node := it.renderer.CreateNode(kind, props, children)
	if node != nil && !known {
		node.RequestedKind = d.Kind
	}
	return node
}

// resolveProps returns a fresh prop bag with marker-prefixed strings
// substituted from ctx. A key present in ctx replaces the prop even when the
// value is falsy; a missing key keeps the literal "$key" string so unresolved
// templates stay visible downstream. Everything else passes through as-is.
func resolveProps(props map[string]any, ctx Context) map[string]any {
	resolved := make(map[string]any, len(props))
	for key, value := range props {
		resolved[key] = resolveValue(value, ctx)
	}
	return resolved
}

func resolveValue(value any, ctx Context) any {
	s, ok := value.(string)
	if !ok || !strings.HasPrefix(s, Marker) {
		return value
	}
	if v, found := ctx.Lookup(strings.TrimPrefix(s, Marker)); found {
		return v
	}
	return s
}
