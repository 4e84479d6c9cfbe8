// Command pipeline-demo builds a small node space in process and drives
// it end to end, printing each stage of propagation as it settles.
//
// Usage:
//
//	pipeline-demo
package main

import (
	"fmt"
	"time"

	"github.com/flowcore/engine/pkg/library"
	"github.com/flowcore/engine/pkg/node"
	"github.com/flowcore/engine/pkg/nodemaker"
	"github.com/flowcore/engine/pkg/nodespace"
)

func double(x int) int {
	return x * 2
}

func waitIdle(n *node.Node, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if n.State() == node.StateIdle {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func main() {
	doubleClass, err := nodemaker.Make("math.double", "Double", double, nodemaker.Options{
		InputNames:  []string{"x"},
		OutputNames: []string{"out"},
		Category:    "math",
	})
	if err != nil {
		panic(err)
	}

	lib := library.New()
	if err := lib.AddNodes([]*node.Class{doubleClass}, []string{"math"}); err != nil {
		panic(err)
	}

	space := nodespace.New(lib, nil)
	space.Emitter().OnAfter("add_node", func(data map[string]interface{}) error {
		fmt.Printf("node added: %v\n", data["node"])
		return nil
	})

	a, err := space.AddNode("math.double")
	if err != nil {
		panic(err)
	}
	b, err := space.AddNode("math.double")
	if err != nil {
		panic(err)
	}

	if err := space.Connect(a.UUID, "out", b.UUID, "x"); err != nil {
		panic(err)
	}

	if err := a.Input("x").SetValue(3, true); err != nil {
		panic(err)
	}
	waitIdle(a, time.Second)
	waitIdle(b, time.Second)

	fmt.Printf("a.out = %v\n", a.Output("out").Value())
	fmt.Printf("b.out = %v\n", b.Output("out").Value())

	wire := space.Serialize()
	fmt.Printf("serialized %d nodes, %d edges\n", len(wire.Nodes), len(wire.Edges))

	restored := nodespace.New(lib, nil)
	if err := restored.Deserialize(wire); err != nil {
		panic(err)
	}
	fmt.Printf("restored %d nodes from the wire form\n", len(restored.Nodes()))
}
