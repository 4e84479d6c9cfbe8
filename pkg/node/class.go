package node

import "github.com/flowcore/engine/pkg/typesys"

// ReactiveHook mutates a sibling IO's value_options (or similar metadata)
// in reaction to another IO's value changing. NodeMaker installs these as
// after_set_value handlers at instantiation time.
type ReactiveHook func(n *Node, changedInput string, newValue interface{})

// Class is a static descriptor for a kind of node: its id, its declared
// IO shape, and the evaluator every instance shares. It is not itself a
// node — New instantiates one.
type Class struct {
	NodeID        string
	NodeName      string
	Description   string
	Category      string
	Inputs        []Spec
	Outputs       []Spec
	Evaluator     Evaluator
	ReactiveHooks map[string][]ReactiveHook // keyed by the input name that triggers them
	RenderOptions map[string]interface{}
}

// Instantiate builds a live Node from the class descriptor, wiring every
// declared input/output and registering its reactive hooks.
func (c *Class) Instantiate(types *typesys.Registry) *Node {
	n := New(c.NodeID, c.NodeName, c.Evaluator, types)
	n.Description = c.Description

	for _, spec := range c.Inputs {
		n.AddInput(spec)
	}
	for _, spec := range c.Outputs {
		n.AddOutput(spec)
	}

	for inputName, hooks := range c.ReactiveHooks {
		in := n.Input(inputName)
		if in == nil {
			continue
		}
		for _, hook := range hooks {
			h := hook
			name := inputName
			in.Emitter().OnAfter("set_value", func(data map[string]interface{}) error {
				h(n, name, data["new"])
				return nil
			})
		}
	}

	return n
}
