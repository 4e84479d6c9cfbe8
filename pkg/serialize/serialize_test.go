package serialize

import (
	"context"
	"testing"

	"github.com/flowcore/engine/pkg/library"
	"github.com/flowcore/engine/pkg/node"
	"github.com/flowcore/engine/pkg/typesys"
)

func buildNode() *node.Node {
	n := node.New("double", "d", func(ctx context.Context, in map[string]interface{}) (map[string]interface{}, error) {
		x, _ := in["x"].(int)
		return map[string]interface{}{"out": 2 * x}, nil
	}, typesys.NewRegistry())
	n.AddInput(node.Spec{Name: "x", Type: "int", Required: true, DoesTrigger: true})
	n.AddOutput(node.Spec{Name: "out", Type: "int"})
	return n
}

func TestEncodePortOmitsNoValue(t *testing.T) {
	n := buildNode()
	wire := EncodePort(n.Input("x"))
	if wire.Value != nil {
		t.Errorf("expected no value on an unset input, got %v", wire.Value)
	}
	if wire.Name != "x" || wire.Type != "int" {
		t.Errorf("unexpected port wire form: %+v", wire)
	}
}

func TestEncodePortIncludesSetValue(t *testing.T) {
	n := buildNode()
	if err := n.Input("x").SetValue(5, false); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	wire := EncodePort(n.Input("x"))
	if wire.Value != 5 {
		t.Errorf("expected value 5, got %v", wire.Value)
	}
}

func TestEncodeNodeIncludesAllIOs(t *testing.T) {
	n := buildNode()
	wire := EncodeNode(n)
	if wire.NodeID != "double" || wire.ID != n.UUID {
		t.Errorf("unexpected node identity in wire form: %+v", wire)
	}
	if _, ok := wire.IOs["x"]; !ok {
		t.Error("expected input x in encoded IOs")
	}
	if _, ok := wire.IOs["out"]; !ok {
		t.Error("expected output out in encoded IOs")
	}
}

func TestEncodeEdgesReflectsConnections(t *testing.T) {
	a := buildNode()
	b := buildNode()
	if err := node.Connect(a.Output("out"), b.Input("x")); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	edges := EncodeEdges([]*node.Node{a, b})
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0][0] != a.UUID || edges[0][1] != "out" || edges[0][2] != b.UUID || edges[0][3] != "x" {
		t.Errorf("unexpected edge encoding: %v", edges[0])
	}
}

func TestEncodeLibraryRoundTripsShelfStructure(t *testing.T) {
	lib := library.New()
	cls := &node.Class{
		NodeID: "double",
		Inputs: []node.Spec{{Name: "x", Type: "int", Required: true}},
	}
	if err := lib.AddNodes([]*node.Class{cls}, []string{"math"}); err != nil {
		t.Fatalf("AddNodes failed: %v", err)
	}
	lib.AddDependency("mypkg==1.0.0")

	wire := EncodeLibrary(lib)
	if len(wire.Dependencies) != 1 || wire.Dependencies[0] != "mypkg==1.0.0" {
		t.Errorf("expected dependency to round-trip, got %v", wire.Dependencies)
	}
	if len(wire.Shelves) != 1 || wire.Shelves[0].Name != "math" {
		t.Fatalf("expected a single math shelf, got %v", wire.Shelves)
	}
	if len(wire.Shelves[0].Nodes) != 1 || wire.Shelves[0].Nodes[0].NodeID != "double" {
		t.Errorf("expected double node class in math shelf, got %v", wire.Shelves[0].Nodes)
	}
}

func TestPipelineEncodeDispatchesByType(t *testing.T) {
	p := DefaultPipeline()
	n := buildNode()

	result := p.Encode(n, false)
	if !result.Handled {
		t.Fatal("expected nodeEncoder to claim a *node.Node")
	}
	data, ok := result.Data.(map[string]interface{})
	if !ok || data["__type__"] != "node" {
		t.Errorf("expected __type__=node, got %v", result.Data)
	}
}

func TestPipelineEncodeFallsThroughUnhandled(t *testing.T) {
	p := DefaultPipeline()
	result := p.Encode(42, false)
	if result.Handled {
		t.Error("expected an unrecognized value to fall through unhandled")
	}
	if result.Data != 42 {
		t.Errorf("expected the raw value to pass through, got %v", result.Data)
	}
}

func TestPipelinePreviewOmitsRenderOptions(t *testing.T) {
	p := DefaultPipeline()
	n := node.New("double", "d", func(ctx context.Context, in map[string]interface{}) (map[string]interface{}, error) {
		return nil, nil
	}, typesys.NewRegistry())
	n.AddInput(node.Spec{Name: "x", Type: "int", RenderOptions: map[string]interface{}{"widget": "slider"}})

	result := p.Encode(n.Input("x"), true)
	data := result.Data.(map[string]interface{})
	io := data["io"].(IOJSON)
	if io.RenderOptions != nil {
		t.Errorf("expected preview encoding to omit render options, got %v", io.RenderOptions)
	}
}

func TestDecoderRegistryDispatchesOnTag(t *testing.T) {
	r := NewDecoderRegistry()
	r.Register("widget", func(data map[string]interface{}) (interface{}, error) {
		return data["name"], nil
	})

	got, err := r.Decode(map[string]interface{}{"__type__": "widget", "name": "gauge"})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "gauge" {
		t.Errorf("expected gauge, got %v", got)
	}
}

func TestDecoderRegistryUnknownTag(t *testing.T) {
	r := NewDecoderRegistry()
	if _, err := r.Decode(map[string]interface{}{"__type__": "mystery"}); err == nil {
		t.Error("expected an error for an unregistered tag")
	}
}

func TestDecoderRegistryMissingTag(t *testing.T) {
	r := NewDecoderRegistry()
	if _, err := r.Decode(map[string]interface{}{}); err == nil {
		t.Error("expected an error when __type__ is missing")
	}
}
