package node

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flowcore/engine/pkg/events"
	"github.com/flowcore/engine/pkg/runtime"
	"github.com/flowcore/engine/pkg/typesys"
)

// State is a node's position in its trigger state machine.
type State string

const (
	StateIdle      State = "idle"
	StateRequested State = "requested"
	StateRunning   State = "running"
)

// Evaluator is a node's computation body. It receives the current input
// values keyed by name and returns the new output values keyed by name.
// It is always invoked as if asynchronous; synchronous bodies are
// expected to return promptly, and CPU-bound bodies should be wrapped by
// a runner (see pkg/runner) before being installed here.
type Evaluator func(ctx context.Context, inputs map[string]interface{}) (map[string]interface{}, error)

// Node is a single computation: a set of typed IO ports, a trigger state
// machine, and an evaluator.
type Node struct {
	UUID        string
	NodeID      string
	NodeName    string
	Description string

	mu          sync.Mutex
	state       State
	cancelFn    context.CancelFunc
	properties  map[string]interface{}

	inputs      map[string]*Input
	outputs     map[string]*Output
	inputOrder  []string
	outputOrder []string

	evaluator Evaluator
	emitter   *events.Emitter
	types     *typesys.Registry
}

// New constructs a node with no IO. Call AddInput/AddOutput before
// wiring it into a graph, then set Evaluator.
func New(nodeID, nodeName string, evaluator Evaluator, types *typesys.Registry) *Node {
	if types == nil {
		types = typesys.Global()
	}
	return &Node{
		UUID:       runtime.NewExecutionID(),
		NodeID:     nodeID,
		NodeName:   nodeName,
		state:      StateIdle,
		properties: map[string]interface{}{},
		inputs:     map[string]*Input{},
		outputs:    map[string]*Output{},
		evaluator:  evaluator,
		emitter:    events.New(nil),
		types:      types,
	}
}

// Emitter exposes the node's before/after event emitter
// (before_trigger/after_trigger, triggererror, error, remove).
func (n *Node) Emitter() *events.Emitter { return n.emitter }

// State returns the node's current trigger state.
func (n *Node) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// AddInput attaches a new input port under spec.Name.
func (n *Node) AddInput(spec Spec) *Input {
	in := NewInput(fmt.Sprintf("%s:%s", n.UUID, spec.Name), spec, n.types)
	in.owner = n
	n.mu.Lock()
	n.inputs[spec.Name] = in
	n.inputOrder = append(n.inputOrder, spec.Name)
	n.mu.Unlock()
	return in
}

// AddOutput attaches a new output port under spec.Name.
func (n *Node) AddOutput(spec Spec) *Output {
	out := NewOutput(fmt.Sprintf("%s:%s", n.UUID, spec.Name), spec, n.types)
	out.owner = n
	n.mu.Lock()
	n.outputs[spec.Name] = out
	n.outputOrder = append(n.outputOrder, spec.Name)
	n.mu.Unlock()
	return out
}

// Input returns the named input port, or nil.
func (n *Node) Input(name string) *Input {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.inputs[name]
}

// Output returns the named output port, or nil.
func (n *Node) Output(name string) *Output {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.outputs[name]
}

// Inputs returns every input port in declaration order.
func (n *Node) Inputs() []*Input {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Input, 0, len(n.inputOrder))
	for _, name := range n.inputOrder {
		out = append(out, n.inputs[name])
	}
	return out
}

// Outputs returns every output port in declaration order.
func (n *Node) Outputs() []*Output {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Output, 0, len(n.outputOrder))
	for _, name := range n.outputOrder {
		out = append(out, n.outputs[name])
	}
	return out
}

// Properties returns the node's free-form property bag.
func (n *Node) Properties() map[string]interface{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.properties
}

// SetProperty sets a single entry in the node's property bag.
func (n *Node) SetProperty(key string, value interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.properties[key] = value
}

// RequestTrigger asks the node to evaluate. From idle, evaluation starts
// immediately on a new goroutine. From running, the request coalesces
// into state requested — at most one additional evaluation will run
// after the current one finishes. From requested, it is a no-op: a
// coalesced evaluation is already pending.
func (n *Node) RequestTrigger() {
	n.mu.Lock()
	switch n.state {
	case StateIdle:
		n.state = StateRunning
		n.mu.Unlock()
		go n.runLoop()
	case StateRunning:
		n.state = StateRequested
		n.mu.Unlock()
	case StateRequested:
		n.mu.Unlock()
	}
}

func (n *Node) runLoop() {
	for {
		n.evaluateOnce()
		n.mu.Lock()
		if n.state == StateRequested {
			n.state = StateRunning
			n.mu.Unlock()
			continue
		}
		n.state = StateIdle
		n.mu.Unlock()
		return
	}
}

// Cancel best-effort cancels the in-flight evaluation, if any. The
// node returns to idle once the current evaluation observes the
// cancellation.
func (n *Node) Cancel() {
	n.mu.Lock()
	cancel := n.cancelFn
	if n.state == StateRequested {
		n.state = StateRunning
	}
	n.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (n *Node) evaluateOnce() {
	ctx, cancel := context.WithCancel(context.Background())
	n.mu.Lock()
	n.cancelFn = cancel
	n.mu.Unlock()
	defer cancel()

	data := map[string]interface{}{"node": n.UUID}
	if err := n.emitter.Before("trigger", data); err != nil {
		n.emitter.After("triggererror", map[string]interface{}{"kind": "before-trigger-vetoed", "error": err})
		return
	}

	inputs := make(map[string]interface{}, len(n.inputOrder))
	for _, name := range n.inputOrder {
		in := n.Input(name)
		v := in.Value()
		if IsNoValue(v) && in.Required {
			n.emitter.After("triggererror", map[string]interface{}{"kind": "missing-input", "input": name})
			return
		}
		inputs[name] = v
	}

	start := time.Now()
	result, err := n.evaluator(ctx, inputs)
	if err != nil {
		n.emitter.After("error", map[string]interface{}{"error": fmt.Errorf("%w: %v", ErrNodeTrigger, err)})
		return
	}

	if ctx.Err() != nil {
		// Cancelled mid-flight: discard the result entirely.
		return
	}

	for _, name := range n.outputOrder {
		val, ok := result[name]
		if !ok {
			continue
		}
		out := n.Output(name)
		if serr := out.SetValue(val, true); serr != nil {
			n.emitter.After("error", map[string]interface{}{"error": serr})
		}
	}

	n.emitter.After("trigger", map[string]interface{}{
		"inputs":   inputs,
		"outputs":  result,
		"duration": time.Since(start),
	})
}

// Remove disconnects every IO, cancels any pending evaluation, and emits
// a lifecycle "remove" event. Call before dropping the node from a
// NodeSpace.
func (n *Node) Remove() {
	n.Cancel()
	for _, in := range n.Inputs() {
		_ = in.Disconnect()
	}
	for _, out := range n.Outputs() {
		for _, target := range out.Targets() {
			_ = Disconnect(out, target)
		}
	}
	n.emitter.After("remove", map[string]interface{}{"node": n.UUID})
}
