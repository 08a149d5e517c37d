package view

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Descriptor is the declarative, data-only representation of one UI node and
// its subtree. Trees are built fresh per render pass and never mutated by the
// interpreter; callers own them.
type Descriptor struct {
	Kind     string         `json:"kind"`
	Props    map[string]any `json:"props,omitempty"`
	Children []*Descriptor  `json:"children,omitempty"`

	// Visible defaults to true when absent.
	Visible *bool `json:"visible,omitempty"`
}

// New builds a Descriptor with props and children defaulted to empty.
func New(kind string, props map[string]any, children ...*Descriptor) *Descriptor {
	if props == nil {
		props = map[string]any{}
	}
	if children == nil {
		children = []*Descriptor{}
	}
	return &Descriptor{
		Kind:     kind,
		Props:    props,
		Children: children,
	}
}

// Hidden marks the descriptor invisible and returns it, for builder chaining.
func (d *Descriptor) Hidden() *Descriptor {
	hidden := false
	d.Visible = &hidden
	return d
}

func (d *Descriptor) visible() bool {
	return d == nil || d.Visible == nil || *d.Visible
}

// DecodeDescriptor parses a JSON descriptor tree, e.g. one produced by the
// copilot agent or posted to the render endpoint.
func DecodeDescriptor(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode descriptor: %w", err)
	}
	return &d, nil
}

// EncodeDescriptor serializes a descriptor tree back to JSON.
func EncodeDescriptor(d *Descriptor) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode descriptor: %w", err)
	}
	return data, nil
}
