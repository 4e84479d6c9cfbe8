package nodespace

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/flowcore/engine/pkg/library"
	"github.com/flowcore/engine/pkg/node"
)

func doubleClass() *node.Class {
	return &node.Class{
		NodeID:   "double",
		NodeName: "Double",
		Evaluator: func(ctx context.Context, in map[string]interface{}) (map[string]interface{}, error) {
			x, _ := in["x"].(int)
			return map[string]interface{}{"out": 2 * x}, nil
		},
		Inputs:  []node.Spec{{Name: "x", Type: "int", Required: true, DoesTrigger: true}},
		Outputs: []node.Spec{{Name: "out", Type: "int"}},
	}
}

func additionClass() *node.Class {
	return &node.Class{
		NodeID:   "add",
		NodeName: "Add",
		Evaluator: func(ctx context.Context, in map[string]interface{}) (map[string]interface{}, error) {
			x, _ := in["x"].(int)
			y, _ := in["y"].(int)
			return map[string]interface{}{"z": x + y}, nil
		},
		Inputs: []node.Spec{
			{Name: "x", Type: "int", Required: true, DoesTrigger: true},
			{Name: "y", Type: "int", Required: true, DoesTrigger: true},
		},
		Outputs: []node.Spec{{Name: "z", Type: "int"}},
	}
}

func newTestLibrary() *library.Library {
	lib := library.New()
	_ = lib.AddNodes([]*node.Class{doubleClass(), additionClass()}, []string{"test"})
	return lib
}

func waitSpaceIdle(t *testing.T, s *Space, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		idle := true
		for _, n := range s.Nodes() {
			if n.State() != node.StateIdle {
				idle = false
				break
			}
		}
		if idle {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("space did not return to idle in time")
}

func TestAddNodeAndConnect(t *testing.T) {
	s := New(newTestLibrary(), nil)

	a, err := s.AddNode("double")
	if err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}
	b, err := s.AddNode("double")
	if err != nil {
		t.Fatalf("AddNode failed: %v", err)
	}

	if err := s.Connect(a.UUID, "out", b.UUID, "x"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if err := a.Input("x").SetValue(3, true); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	waitSpaceIdle(t, s, time.Second)

	if got := b.Output("out").Value(); got != 12 {
		t.Errorf("expected b.out = 12, got %v", got)
	}
}

func TestRemoveNodeDisconnects(t *testing.T) {
	s := New(newTestLibrary(), nil)
	a, _ := s.AddNode("double")
	b, _ := s.AddNode("double")
	if err := s.Connect(a.UUID, "out", b.UUID, "x"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if err := s.RemoveNode(b.UUID); err != nil {
		t.Fatalf("RemoveNode failed: %v", err)
	}
	if len(s.Nodes()) != 1 {
		t.Errorf("expected 1 node remaining, got %d", len(s.Nodes()))
	}
	if got := len(a.Output("out").Targets()); got != 0 {
		t.Errorf("expected a.out to have no targets after removing b, got %d", got)
	}
}

// Scenario 6: diamond (a→b, a→c, b→d, c→d) round-trip.
func TestDiamondSerializeDeserialize(t *testing.T) {
	s := New(newTestLibrary(), nil)

	a, _ := s.AddNode("double")
	b, _ := s.AddNode("double")
	c, _ := s.AddNode("double")
	d, _ := s.AddNode("add")

	if err := s.Connect(a.UUID, "out", b.UUID, "x"); err != nil {
		t.Fatalf("connect a->b failed: %v", err)
	}
	if err := s.Connect(a.UUID, "out", c.UUID, "x"); err != nil {
		t.Fatalf("connect a->c failed: %v", err)
	}
	if err := s.Connect(b.UUID, "out", d.UUID, "x"); err != nil {
		t.Fatalf("connect b->d failed: %v", err)
	}
	if err := s.Connect(c.UUID, "out", d.UUID, "y"); err != nil {
		t.Fatalf("connect c->d failed: %v", err)
	}

	if err := a.Input("x").SetValue(2, true); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	waitSpaceIdle(t, s, time.Second)

	if got := d.Output("z").Value(); got != 16 {
		t.Fatalf("expected diamond to converge to z=16, got %v", got)
	}

	wire := s.Serialize()

	restored := New(newTestLibrary(), nil)
	if err := restored.Deserialize(wire); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	if got := len(restored.Nodes()); got != 4 {
		t.Fatalf("expected 4 restored nodes, got %d", got)
	}

	rewired := restored.Serialize()
	if len(rewired.Edges) != len(wire.Edges) {
		t.Errorf("expected %d edges after round-trip, got %d", len(wire.Edges), len(rewired.Edges))
	}
	if !reflect.DeepEqual(rewired.Edges, wire.Edges) {
		t.Errorf("expected edges to round-trip byte-for-byte (same uuids), got %v vs %v", wire.Edges, rewired.Edges)
	}

	original := map[string]*node.Node{a.UUID: a, b.UUID: b, c.UUID: c, d.UUID: d}
	for _, n := range restored.Nodes() {
		want, ok := original[n.UUID]
		if !ok {
			t.Errorf("restored node uuid %s does not match any original node uuid", n.UUID)
			continue
		}
		if want.NodeID != n.NodeID {
			t.Errorf("uuid %s: expected node_id %s, got %s", n.UUID, want.NodeID, n.NodeID)
		}
	}

	var restoredD *node.Node
	for _, n := range restored.Nodes() {
		if n.NodeID == "add" {
			restoredD = n
		}
	}
	if restoredD == nil {
		t.Fatal("expected an add node in the restored space")
	}
	if restoredD.UUID != d.UUID {
		t.Errorf("expected restored add node uuid to equal original %s, got %s", d.UUID, restoredD.UUID)
	}
	if got := restoredD.Output("z").Value(); got != 16 {
		t.Errorf("expected restored z=16, got %v", got)
	}
}

func TestTriggerAllOnlyTriggersRoots(t *testing.T) {
	s := New(newTestLibrary(), nil)
	a, _ := s.AddNode("double")
	b, _ := s.AddNode("double")
	if err := s.Connect(a.UUID, "out", b.UUID, "x"); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	_ = a.Input("x").SetValue(5, false)

	s.TriggerAll()
	waitSpaceIdle(t, s, time.Second)

	if got := a.Output("out").Value(); got != 10 {
		t.Errorf("expected a.out = 10 after TriggerAll, got %v", got)
	}
}

func TestDeserializeSkipsEdgeWithMissingEndpoint(t *testing.T) {
	s := New(newTestLibrary(), nil)
	wire := s.Serialize()
	wire.Edges = append(wire.Edges, [4]string{"ghost-src", "out", "ghost-dst", "x"})

	if err := s.Deserialize(wire); err != nil {
		t.Fatalf("Deserialize should tolerate a dangling edge, got %v", err)
	}
}
