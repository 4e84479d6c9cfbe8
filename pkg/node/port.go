package node

// Port is the read-only view of an IO port shared by Input and Output,
// used by the serialization pipeline so it need not special-case either.
type Port interface {
	UUID() string
	Name() string
	Type() string
	Value() interface{}
	Description() string
	Default() interface{}
	Hidden() bool
	DoesTrigger() bool
	ValueOptions() map[string]interface{}
	RenderOptions() map[string]interface{}
}

var (
	_ Port = (*Input)(nil)
	_ Port = (*Output)(nil)
)
