package node

import "fmt"

// Connect establishes an edge from out to in. It fails with
// ErrSameNodeConnection if they belong to the same node,
// ErrMultipleConnections if in already has a source, and
// ErrNodeConnection if the declared types are incompatible: neither
// side is "any", the types don't match exactly, and in has no
// registered converter that could coerce an incoming value at
// set-time. On success, if out currently holds a value, it is pushed
// to in immediately (through that same conversion path).
func Connect(out *Output, in *Input) error {
	if out == nil || in == nil {
		return fmt.Errorf("%w: nil io", ErrNodeConnection)
	}

	out.mu.Lock()
	outOwner := out.owner
	outType := out.typ
	outVal := out.value
	out.mu.Unlock()

	in.mu.Lock()
	inOwner := in.owner
	inType := in.typ
	existingSource := in.source
	types := in.types
	in.mu.Unlock()

	if outOwner != nil && inOwner != nil && outOwner == inOwner {
		return fmt.Errorf("%w: %s", ErrSameNodeConnection, in.name)
	}
	if existingSource != nil {
		return fmt.Errorf("%w: input %q already connected", ErrMultipleConnections, in.name)
	}
	exact := outType == inType || outType == "any" || inType == "any"
	if !exact && (types == nil || !types.Has(inType)) {
		return fmt.Errorf("%w: cannot connect %s (%s) to %s (%s)", ErrNodeConnection, out.name, outType, in.name, inType)
	}

	in.mu.Lock()
	in.source = out
	in.mu.Unlock()

	out.mu.Lock()
	out.targets = append(out.targets, in)
	out.mu.Unlock()

	in.emitter.After("connect", map[string]interface{}{"output": out.name})
	out.emitter.After("connect", map[string]interface{}{"input": in.name})

	if !IsNoValue(outVal) {
		if err := in.SetValue(outVal, true); err != nil {
			return nil
		}
	}
	return nil
}

// Disconnect removes the edge between out and in, if one exists.
func Disconnect(out *Output, in *Input) error {
	if out == nil || in == nil {
		return nil
	}

	in.mu.Lock()
	if in.source == out {
		in.source = nil
	}
	in.mu.Unlock()

	out.mu.Lock()
	kept := out.targets[:0]
	for _, t := range out.targets {
		if t != in {
			kept = append(kept, t)
		}
	}
	out.targets = kept
	out.mu.Unlock()

	in.emitter.After("disconnect", map[string]interface{}{"output": out.name})
	out.emitter.After("disconnect", map[string]interface{}{"input": in.name})
	return nil
}
