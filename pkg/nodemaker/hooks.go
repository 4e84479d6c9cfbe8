package nodemaker

import "github.com/flowcore/engine/pkg/node"

// UpdateOtherIOOptions builds a ReactiveHook that recomputes the
// value_options of the named target input whenever the hook's owning
// input changes, by calling compute with the new value.
func UpdateOtherIOOptions(target string, compute func(newValue interface{}) map[string]interface{}) node.ReactiveHook {
	return func(n *node.Node, changedInput string, newValue interface{}) {
		in := n.Input(target)
		if in == nil {
			return
		}
		in.SetValueOptions(compute(newValue))
	}
}

// UpdateOtherIOValueOptions is like UpdateOtherIOOptions but targets
// several sibling inputs with the same computed options at once.
func UpdateOtherIOValueOptions(targets []string, compute func(newValue interface{}) map[string]interface{}) node.ReactiveHook {
	return func(n *node.Node, changedInput string, newValue interface{}) {
		opts := compute(newValue)
		for _, target := range targets {
			if in := n.Input(target); in != nil {
				in.SetValueOptions(opts)
			}
		}
	}
}
