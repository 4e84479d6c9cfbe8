package serialize

import "fmt"

// Decoder reconstructs a Go value from its tagged wire form.
type Decoder func(data map[string]interface{}) (interface{}, error)

// DecoderRegistry dispatches on a "__type__" tag to decode polymorphic
// wire values, mirroring the engine's tagged node-data decoding.
type DecoderRegistry struct {
	decoders map[string]Decoder
}

// NewDecoderRegistry creates an empty decoder registry.
func NewDecoderRegistry() *DecoderRegistry {
	return &DecoderRegistry{decoders: make(map[string]Decoder)}
}

// Register installs dec under the tag value typeTag.
func (r *DecoderRegistry) Register(typeTag string, dec Decoder) {
	r.decoders[typeTag] = dec
}

// Decode dispatches on data["__type__"] to the matching Decoder.
func (r *DecoderRegistry) Decode(data map[string]interface{}) (interface{}, error) {
	tag, ok := data["__type__"].(string)
	if !ok {
		return nil, fmt.Errorf("serialize: missing __type__ tag")
	}
	dec, ok := r.decoders[tag]
	if !ok {
		return nil, fmt.Errorf("serialize: no decoder registered for __type__ %q", tag)
	}
	return dec(data)
}

// DefaultPipeline builds the encoder pipeline the engine installs by
// default: IO, Node, Shelf, and Library each get a tagged encoder, tried
// in that order. A value none of them claim falls through unhandled.
func DefaultPipeline() *Pipeline {
	p := NewPipeline()

	p.Register(ioEncoder)
	p.Register(nodeEncoder)
	p.Register(shelfEncoder)
	p.Register(libraryEncoder)

	return p
}

