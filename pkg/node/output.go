package node

import "github.com/flowcore/engine/pkg/typesys"

// Output is a named, typed port that may fan out to many connected
// Inputs, in the order the connections were made.
type Output struct {
	io
	targets []*Input
}

// NewOutput constructs a detached output port. Nodes attach it via
// Node.AddOutput.
func NewOutput(uuid string, spec Spec, types *typesys.Registry) *Output {
	spec.DoesTrigger = false
	return &Output{io: newIO(uuid, spec, nil, types)}
}

// SetValue records the new value and propagates it, in connection order,
// to every connected Input.
func (out *Output) SetValue(v interface{}, trigger bool) error {
	if err := out.setValue(v, trigger, false); err != nil {
		return err
	}
	out.mu.Lock()
	targets := append([]*Input(nil), out.targets...)
	val := out.value
	out.mu.Unlock()
	for _, in := range targets {
		if err := in.SetValue(val, true); err != nil {
			in.emitter.After("error", map[string]interface{}{"error": err})
		}
	}
	return nil
}

// Targets returns the currently connected inputs, in connection order.
func (out *Output) Targets() []*Input {
	out.mu.Lock()
	defer out.mu.Unlock()
	return append([]*Input(nil), out.targets...)
}

// Connect pairs out with in. See the package-level Connect.
func (out *Output) Connect(in *Input) error {
	return Connect(out, in)
}
