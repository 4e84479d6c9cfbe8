package node

import "github.com/flowcore/engine/pkg/typesys"

// Input is a named, typed port that accepts at most one connected
// source and may request its owning node's re-evaluation on change.
type Input struct {
	io
	Required bool
	source   *Output
}

// NewInput constructs a detached input port. Nodes attach it via
// Node.AddInput.
func NewInput(uuid string, spec Spec, types *typesys.Registry) *Input {
	return &Input{io: newIO(uuid, spec, nil, types), Required: spec.Required}
}

// SetValue applies the type converter and records the new value,
// requesting a trigger on the owning node if the value changed and the
// port does_trigger.
func (in *Input) SetValue(v interface{}, trigger bool) error {
	return in.setValue(v, trigger, true)
}

// Source returns the connected Output, or nil.
func (in *Input) Source() *Output {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.source
}

// Connect pairs in with out. See Output.Connect for the full contract.
func (in *Input) Connect(out *Output) error {
	return Connect(out, in)
}

// Disconnect removes in's source connection, if any.
func (in *Input) Disconnect() error {
	in.mu.Lock()
	src := in.source
	in.mu.Unlock()
	if src == nil {
		return nil
	}
	return Disconnect(src, in)
}
