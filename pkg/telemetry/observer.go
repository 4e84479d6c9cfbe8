package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flowcore/engine/pkg/node"
	"github.com/flowcore/engine/pkg/nodespace"
)

// NodeObserver attaches to a single node's event emitter and records
// span/metric telemetry for every evaluation, without the node itself
// knowing telemetry exists.
type NodeObserver struct {
	provider *Provider
	node     *node.Node

	mu        sync.Mutex
	span      trace.Span
	spanStart time.Time
}

// Attach registers before/after trigger handlers on n that open and
// close a span around each evaluation and record duration/outcome
// metrics. Call once per node, after construction.
func Attach(provider *Provider, n *node.Node) *NodeObserver {
	o := &NodeObserver{provider: provider, node: n}

	n.Emitter().OnBefore("trigger", func(data map[string]interface{}) error {
		o.mu.Lock()
		defer o.mu.Unlock()
		_, span := o.provider.Tracer().Start(context.Background(), "node.trigger",
			trace.WithAttributes(
				attribute.String("node.id", n.UUID),
				attribute.String("node.class", n.NodeID),
			),
		)
		o.span = span
		o.spanStart = time.Now()
		return nil
	})

	n.Emitter().OnAfter("trigger", func(data map[string]interface{}) error {
		o.finish(data, true)
		return nil
	})

	n.Emitter().OnAfter("error", func(data map[string]interface{}) error {
		o.finish(data, false)
		return nil
	})

	n.Emitter().OnAfter("triggererror", func(data map[string]interface{}) error {
		o.finish(data, false)
		return nil
	})

	return o
}

func (o *NodeObserver) finish(data map[string]interface{}, success bool) {
	o.mu.Lock()
	span := o.span
	start := o.spanStart
	o.span = nil
	o.mu.Unlock()

	duration := time.Since(start)
	if start.IsZero() {
		duration = 0
	}

	o.provider.RecordNodeExecution(context.Background(), o.node.UUID, o.node.NodeID, duration, success)

	if span == nil {
		return
	}
	if !success {
		if err, ok := data["error"].(error); ok {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Error, fmt.Sprintf("%v", data["kind"]))
		}
	} else {
		span.SetStatus(codes.Ok, "evaluation completed")
	}
	span.End()
}

// SpaceObserver attaches to a NodeSpace's event emitter, instrumenting
// every node added to the space. It does not record trigger_all calls;
// Provider.RecordSpaceTrigger does that when called directly.
type SpaceObserver struct {
	provider *Provider
	space    *nodespace.Space
	logger   *slog.Logger

	mu        sync.Mutex
	observers map[string]*NodeObserver
}

// AttachSpace registers add_node/remove_node handlers that keep every
// live node instrumented with a NodeObserver for its lifetime in the
// space.
func AttachSpace(provider *Provider, space *nodespace.Space) *SpaceObserver {
	o := &SpaceObserver{
		provider:  provider,
		space:     space,
		logger:    slog.Default(),
		observers: make(map[string]*NodeObserver),
	}

	for _, n := range space.Nodes() {
		o.track(n)
	}

	space.Emitter().OnAfter("add_node", func(data map[string]interface{}) error {
		uuid, _ := data["node"].(string)
		if n := space.Node(uuid); n != nil {
			o.track(n)
		}
		return nil
	})

	space.Emitter().OnAfter("remove_node", func(data map[string]interface{}) error {
		uuid, _ := data["node"].(string)
		o.mu.Lock()
		delete(o.observers, uuid)
		o.mu.Unlock()
		return nil
	})

	return o
}

func (o *SpaceObserver) track(n *node.Node) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.observers[n.UUID]; ok {
		return
	}
	o.observers[n.UUID] = Attach(o.provider, n)
}
