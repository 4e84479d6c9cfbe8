package node

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/flowcore/engine/pkg/events"
	"github.com/flowcore/engine/pkg/typesys"
)

// noValueType is the sentinel type of NoValue. It is distinct from any
// value a node could legitimately produce.
type noValueType struct{}

func (noValueType) String() string { return "<novalue>" }

// NoValue means "no value has been produced" for an IO.
var NoValue interface{} = noValueType{}

// IsNoValue reports whether v is the NoValue sentinel.
func IsNoValue(v interface{}) bool {
	_, ok := v.(noValueType)
	return ok
}

// Spec describes an IO port before it is attached to a node, used by
// node classes and NodeMaker to declare inputs and outputs.
type Spec struct {
	Name          string
	Description   string
	Type          string
	Default       interface{}
	Hidden        bool
	ValueOptions  map[string]interface{}
	RenderOptions map[string]interface{}
	DoesTrigger   bool
	Required      bool
}

// io is the shared state of an Input or Output port.
type io struct {
	mu            sync.Mutex
	uuid          string
	name          string
	description   string
	typ           string
	value         interface{}
	defaultValue  interface{}
	hidden        bool
	valueOptions  map[string]interface{}
	renderOptions map[string]interface{}
	doesTrigger   bool
	owner         *Node
	types         *typesys.Registry
	emitter       *events.Emitter
}

func newIO(uuid string, spec Spec, owner *Node, types *typesys.Registry) io {
	val := NoValue
	if spec.Default != nil {
		val = spec.Default
	}
	opts := spec.ValueOptions
	if opts == nil {
		opts = map[string]interface{}{}
	}
	render := spec.RenderOptions
	if render == nil {
		render = map[string]interface{}{}
	}
	return io{
		uuid:          uuid,
		name:          spec.Name,
		description:   spec.Description,
		typ:           spec.Type,
		value:         val,
		defaultValue:  spec.Default,
		hidden:        spec.Hidden,
		valueOptions:  opts,
		renderOptions: render,
		doesTrigger:   spec.DoesTrigger,
		owner:         owner,
		types:         types,
		emitter:       events.New(nil),
	}
}

// Name returns the port's declared name.
func (p *io) Name() string { return p.name }

// Type returns the port's declared type key.
func (p *io) Type() string { return p.typ }

// UUID returns the port's stable identifier within its owning node.
func (p *io) UUID() string { return p.uuid }

// Value returns the port's current value, or NoValue.
func (p *io) Value() interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Emitter exposes the port's before/after event emitter.
func (p *io) Emitter() *events.Emitter { return p.emitter }

// Description returns the port's human-readable description.
func (p *io) Description() string { return p.description }

// Default returns the port's declared default value, or nil if none.
func (p *io) Default() interface{} { return p.defaultValue }

// Hidden reports whether the port should be hidden from display.
func (p *io) Hidden() bool { return p.hidden }

// DoesTrigger reports whether value changes on this port request an
// owner re-evaluation.
func (p *io) DoesTrigger() bool { return p.doesTrigger }

// ValueOptions returns the port's UI-facing value options (e.g.
// enumerations).
func (p *io) ValueOptions() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.valueOptions
}

// SetValueOptions replaces the port's value options, as done by reactive
// NodeMaker hooks.
func (p *io) SetValueOptions(opts map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.valueOptions = opts
}

// RenderOptions returns the port's rendering metadata, preserved
// verbatim and not interpreted by the engine.
func (p *io) RenderOptions() map[string]interface{} { return p.renderOptions }

func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	at, bt := reflect.TypeOf(a), reflect.TypeOf(b)
	if at != bt {
		return false
	}
	if at.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// setValue converts v through the port's declared type, and if it differs
// from the current value, records it and fires after_set_value. When
// trigger is true and this port does_trigger, the owning node is asked
// to re-evaluate.
func (p *io) setValue(v interface{}, trigger bool, asInput bool) error {
	converted := v
	if !IsNoValue(v) {
		var err error
		converted, err = p.types.Convert(p.typ, v)
		if err != nil {
			p.emitter.After("error", map[string]interface{}{"error": fmt.Errorf("%w: %v", ErrIOValue, err)})
			return fmt.Errorf("%w: %v", ErrIOValue, err)
		}
	}

	p.mu.Lock()
	old := p.value
	if valuesEqual(old, converted) {
		p.mu.Unlock()
		return nil
	}
	p.value = converted
	owner := p.owner
	doesTrigger := p.doesTrigger
	p.mu.Unlock()

	p.emitter.After("set_value", map[string]interface{}{"old": old, "new": converted})

	if trigger && asInput && doesTrigger && owner != nil {
		owner.RequestTrigger()
	}
	return nil
}
