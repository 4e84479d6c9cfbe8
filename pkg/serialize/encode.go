package serialize

import (
	"github.com/flowcore/engine/pkg/library"
	"github.com/flowcore/engine/pkg/node"
)

// EncodePort converts a live Port into its wire form. The value is
// omitted when the port holds NoValue.
func EncodePort(p node.Port) IOJSON {
	out := IOJSON{
		UUID:          p.UUID(),
		Name:          p.Name(),
		Type:          p.Type(),
		Default:       p.Default(),
		Hidden:        p.Hidden(),
		DoesTrigger:   p.DoesTrigger(),
		ValueOptions:  p.ValueOptions(),
		RenderOptions: p.RenderOptions(),
	}
	if v := p.Value(); !node.IsNoValue(v) {
		out.Value = v
	}
	return out
}

// EncodeNode converts a live Node into its wire form.
func EncodeNode(n *node.Node) NodeJSON {
	ios := make(map[string]IOJSON)
	for _, in := range n.Inputs() {
		ios[in.Name()] = EncodePort(in)
	}
	for _, out := range n.Outputs() {
		ios[out.Name()] = EncodePort(out)
	}
	return NodeJSON{
		ID:         n.UUID,
		NodeID:     n.NodeID,
		NodeName:   n.NodeName,
		IOs:        ios,
		Properties: n.Properties(),
	}
}

// EncodeEdges collects every connection among nodes, in each output's
// connection order.
func EncodeEdges(nodes []*node.Node) []EdgeJSON {
	owner := make(map[*node.Input]string)
	for _, n := range nodes {
		for _, in := range n.Inputs() {
			owner[in] = n.UUID
		}
	}

	var edges []EdgeJSON
	for _, n := range nodes {
		for _, out := range n.Outputs() {
			for _, in := range out.Targets() {
				dstUUID, ok := owner[in]
				if !ok {
					continue
				}
				edges = append(edges, EdgeJSON{n.UUID, out.Name(), dstUUID, in.Name()})
			}
		}
	}
	return edges
}

// EncodeClassSpec converts an IO declaration spec into its wire form.
func EncodeClassSpec(s node.Spec) IOSpecJSON {
	return IOSpecJSON{
		Name:        s.Name,
		Description: s.Description,
		Type:        s.Type,
		Default:     s.Default,
		Required:    s.Required,
	}
}

// EncodeClass converts a node Class descriptor into its wire form.
func EncodeClass(c *node.Class) NodeClassJSON {
	inputs := make([]IOSpecJSON, 0, len(c.Inputs))
	for _, s := range c.Inputs {
		inputs = append(inputs, EncodeClassSpec(s))
	}
	outputs := make([]IOSpecJSON, 0, len(c.Outputs))
	for _, s := range c.Outputs {
		outputs = append(outputs, EncodeClassSpec(s))
	}
	return NodeClassJSON{
		NodeID:      c.NodeID,
		NodeName:    c.NodeName,
		Description: c.Description,
		Category:    c.Category,
		Inputs:      inputs,
		Outputs:     outputs,
	}
}

// EncodeShelf converts a Shelf snapshot into its wire form.
func EncodeShelf(s *library.Snapshot) ShelfJSON {
	nodes := make([]NodeClassJSON, 0, len(s.Nodes))
	for _, cls := range s.Nodes {
		nodes = append(nodes, EncodeClass(cls))
	}
	subs := make([]ShelfJSON, 0, len(s.Subshelves))
	for _, sub := range s.Subshelves {
		subs = append(subs, EncodeShelf(sub))
	}
	return ShelfJSON{Name: s.Name, Description: s.Description, Nodes: nodes, Subshelves: subs}
}

// EncodeLibrary converts a Library into its wire form.
func EncodeLibrary(l *library.Library) LibraryJSON {
	shelves := make([]ShelfJSON, 0)
	for _, s := range l.Shelves() {
		shelves = append(shelves, EncodeShelf(s))
	}
	return LibraryJSON{Shelves: shelves, Dependencies: l.Dependencies()}
}

// ioEncoder, nodeEncoder, shelfEncoder, and libraryEncoder are the four
// Encoders DefaultPipeline installs, one per serializable component.
func ioEncoder(value interface{}, preview bool) Encdata {
	p, ok := value.(node.Port)
	if !ok {
		return Encdata{Handled: false}
	}
	out := EncodePort(p)
	if preview {
		out.RenderOptions = nil
	}
	return Encdata{Data: map[string]interface{}{"__type__": "io", "io": out}, Handled: true, Done: true}
}

func nodeEncoder(value interface{}, preview bool) Encdata {
	n, ok := value.(*node.Node)
	if !ok {
		return Encdata{Handled: false}
	}
	return Encdata{Data: map[string]interface{}{"__type__": "node", "node": EncodeNode(n)}, Handled: true, Done: false}
}

func shelfEncoder(value interface{}, preview bool) Encdata {
	s, ok := value.(*library.Snapshot)
	if !ok {
		return Encdata{Handled: false}
	}
	return Encdata{Data: map[string]interface{}{"__type__": "shelf", "shelf": EncodeShelf(s)}, Handled: true, Done: false}
}

func libraryEncoder(value interface{}, preview bool) Encdata {
	l, ok := value.(*library.Library)
	if !ok {
		return Encdata{Handled: false}
	}
	return Encdata{Data: map[string]interface{}{"__type__": "library", "library": EncodeLibrary(l)}, Handled: true, Done: false}
}
