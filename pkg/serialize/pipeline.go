package serialize

// Encdata is the result of running one Encoder over a value.
type Encdata struct {
	Data    interface{}
	Handled bool
	Done    bool
}

// Encoder attempts to turn value into its wire representation. preview
// requests a lighter, display-only form (no large payloads). Returning
// Handled=false lets later encoders in the pipeline try.
type Encoder func(value interface{}, preview bool) Encdata

// Pipeline runs a value through an ordered list of Encoders, returning
// the first Handled result, or the value unchanged if none claim it.
type Pipeline struct {
	encoders []Encoder
}

// NewPipeline creates an empty encoder pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Register appends enc to the end of the pipeline.
func (p *Pipeline) Register(enc Encoder) {
	p.encoders = append(p.encoders, enc)
}

// Encode runs value through the pipeline. If no encoder claims it, the
// value is returned as-is with Handled=false.
func (p *Pipeline) Encode(value interface{}, preview bool) Encdata {
	for _, enc := range p.encoders {
		result := enc(value, preview)
		if result.Handled {
			return result
		}
	}
	return Encdata{Data: value, Handled: false, Done: true}
}
