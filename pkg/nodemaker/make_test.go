package nodemaker

import (
	"context"
	"errors"
	"testing"

	"github.com/flowcore/engine/pkg/node"
	"github.com/flowcore/engine/pkg/typesys"
)

func TestMakeRejectsNonFunction(t *testing.T) {
	_, err := Make("x", "X", 42, Options{})
	if !errors.Is(err, ErrNotAFunction) {
		t.Errorf("expected ErrNotAFunction, got %v", err)
	}
}

func TestMakeRejectsArityMismatch(t *testing.T) {
	add := func(x, y int) int { return x + y }
	_, err := Make("add", "Add", add, Options{InputNames: []string{"x"}})
	if !errors.Is(err, ErrArityMismatch) {
		t.Errorf("expected ErrArityMismatch for input count, got %v", err)
	}

	_, err = Make("add", "Add", add, Options{
		InputNames:  []string{"x", "y"},
		OutputNames: []string{"z", "w"},
	})
	if !errors.Is(err, ErrArityMismatch) {
		t.Errorf("expected ErrArityMismatch for output count, got %v", err)
	}
}

func TestMakeSingleOutputDefaultsToOut(t *testing.T) {
	add := func(x, y int) int { return x + y }
	cls, err := Make("add", "Add", add, Options{InputNames: []string{"x", "y"}})
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	if len(cls.Outputs) != 1 || cls.Outputs[0].Name != "out" {
		t.Fatalf("expected a single output named out, got %v", cls.Outputs)
	}

	n := cls.Instantiate(typesys.NewRegistry())
	out, err := cls.Evaluator(context.Background(), map[string]interface{}{"x": 2, "y": 3})
	if err != nil {
		t.Fatalf("evaluator failed: %v", err)
	}
	if out["out"] != 5 {
		t.Errorf("expected out=5, got %v", out)
	}
	_ = n
}

func TestMakeDetectsContextAndError(t *testing.T) {
	fn := func(ctx context.Context, name string) (string, error) {
		if name == "" {
			return "", errors.New("empty")
		}
		return "hello " + name, nil
	}
	cls, err := Make("greet", "Greet", fn, Options{InputNames: []string{"name"}})
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}

	out, err := cls.Evaluator(context.Background(), map[string]interface{}{"name": "a"})
	if err != nil {
		t.Fatalf("evaluator failed: %v", err)
	}
	if out["out"] != "hello a" {
		t.Errorf("expected 'hello a', got %v", out)
	}

	_, err = cls.Evaluator(context.Background(), map[string]interface{}{"name": ""})
	if err == nil {
		t.Error("expected the wrapped function's error to propagate")
	}
}

func TestMakeDefaultsMakeInputOptional(t *testing.T) {
	fn := func(x int) int { return x }
	cls, err := Make("identity", "Identity", fn, Options{
		InputNames: []string{"x"},
		Defaults:   map[string]interface{}{"x": 10},
	})
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	if cls.Inputs[0].Required {
		t.Error("expected input with a default to be non-required")
	}
	if cls.Inputs[0].Default != 10 {
		t.Errorf("expected default 10, got %v", cls.Inputs[0].Default)
	}
}

func TestAutoDescriptionTitleCasesSnakeCase(t *testing.T) {
	if got := autoDescription("max_retry_count"); got != "Max Retry Count" {
		t.Errorf("expected 'Max Retry Count', got %q", got)
	}
}

func TestMakeNoOutputs(t *testing.T) {
	fn := func(x int) {}
	cls, err := Make("sink", "Sink", fn, Options{InputNames: []string{"x"}})
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	if len(cls.Outputs) != 0 {
		t.Errorf("expected no outputs, got %v", cls.Outputs)
	}
}

func TestUpdateOtherIOOptionsHook(t *testing.T) {
	cls := &node.Class{
		NodeID: "reactive",
		Evaluator: func(ctx context.Context, in map[string]interface{}) (map[string]interface{}, error) {
			return nil, nil
		},
		Inputs: []node.Spec{
			{Name: "mode", Type: "string"},
			{Name: "value", Type: "string"},
		},
		ReactiveHooks: map[string][]node.ReactiveHook{
			"mode": {UpdateOtherIOOptions("value", func(newValue interface{}) map[string]interface{} {
				return map[string]interface{}{"choices": newValue}
			})},
		},
	}

	n := cls.Instantiate(typesys.NewRegistry())
	if err := n.Input("mode").SetValue("advanced", false); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	opts := n.Input("value").ValueOptions()
	if opts["choices"] != "advanced" {
		t.Errorf("expected sibling value_options to be updated, got %v", opts)
	}
}
