package nodespace

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/flowcore/engine/pkg/events"
	"github.com/flowcore/engine/pkg/graph"
	"github.com/flowcore/engine/pkg/library"
	"github.com/flowcore/engine/pkg/node"
	"github.com/flowcore/engine/pkg/serialize"
	"github.com/flowcore/engine/pkg/typesys"
)

// Space is a live collection of connected Node instances, backed by a
// Library for instantiation and lookup.
type Space struct {
	mu         sync.Mutex
	library    *library.Library
	types      *typesys.Registry
	nodes      []*node.Node
	properties map[string]interface{}
	emitter    *events.Emitter
	logger     *slog.Logger
}

// New creates an empty node space backed by lib.
func New(lib *library.Library, types *typesys.Registry) *Space {
	if types == nil {
		types = typesys.Global()
	}
	return &Space{
		library:    lib,
		types:      types,
		properties: map[string]interface{}{},
		emitter:    events.New(nil),
		logger:     slog.Default(),
	}
}

// Emitter exposes the space's before/after event emitter
// (after_add_node, after_remove_node).
func (s *Space) Emitter() *events.Emitter { return s.emitter }

// Library returns the backing library.
func (s *Space) Library() *library.Library { return s.library }

// Nodes returns every node currently in the space, in insertion order.
func (s *Space) Nodes() []*node.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*node.Node(nil), s.nodes...)
}

// Node returns the node with the given uuid, or nil.
func (s *Space) Node(uuid string) *node.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.nodes {
		if n.UUID == uuid {
			return n
		}
	}
	return nil
}

// Properties returns the space's free-form property bag.
func (s *Space) Properties() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.properties
}

// AddNode instantiates nodeID from the library, adds it to the space,
// and fires after_add_node.
func (s *Space) AddNode(nodeID string) (*node.Node, error) {
	cls, err := s.library.GetNodeByID(nodeID)
	if err != nil {
		return nil, err
	}
	n := cls.Instantiate(s.types)
	s.AddNodeInstance(n)
	return n, nil
}

// AddNodeInstance adds an already-built node instance to the space.
func (s *Space) AddNodeInstance(n *node.Node) {
	s.mu.Lock()
	s.nodes = append(s.nodes, n)
	s.mu.Unlock()
	s.emitter.After("add_node", map[string]interface{}{"node": n.UUID})
}

// RemoveNode disconnects every IO on the named node, cancels its pending
// evaluation, drops it from the space, and fires after_remove_node.
func (s *Space) RemoveNode(uuid string) error {
	s.mu.Lock()
	idx := -1
	for i, n := range s.nodes {
		if n.UUID == uuid {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNodeNotInSpace, uuid)
	}
	n := s.nodes[idx]
	s.nodes = append(s.nodes[:idx], s.nodes[idx+1:]...)
	s.mu.Unlock()

	n.Remove()
	s.emitter.After("remove_node", map[string]interface{}{"node": uuid})
	return nil
}

// Connect wires srcNode's named output to dstNode's named input. It is a
// no-op if the two ports are already connected.
func (s *Space) Connect(srcNodeUUID, outName, dstNodeUUID, inName string) error {
	src := s.Node(srcNodeUUID)
	dst := s.Node(dstNodeUUID)
	if src == nil || dst == nil {
		return fmt.Errorf("%w: %s or %s", ErrNodeNotInSpace, srcNodeUUID, dstNodeUUID)
	}
	out := src.Output(outName)
	in := dst.Input(inName)
	if out == nil {
		return fmt.Errorf("%w: %s.%s", node.ErrIONotFound, srcNodeUUID, outName)
	}
	if in == nil {
		return fmt.Errorf("%w: %s.%s", node.ErrIONotFound, dstNodeUUID, inName)
	}
	if in.Source() == out {
		return nil
	}
	return node.Connect(out, in)
}

// TriggerAll requests a trigger on every node with no incoming edges;
// downstream evaluation proceeds through normal propagation.
func (s *Space) TriggerAll() {
	for _, n := range s.rootNodes() {
		n.RequestTrigger()
	}
}

func (s *Space) rootNodes() []*node.Node {
	nodes := s.Nodes()
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.UUID)
	}
	g := graph.New(ids, s.edgeList(nodes))

	byID := make(map[string]*node.Node, len(nodes))
	for _, n := range nodes {
		byID[n.UUID] = n
	}

	roots := make([]*node.Node, 0)
	for _, id := range g.RootNodes() {
		roots = append(roots, byID[id])
	}
	return roots
}

func (s *Space) edgeList(nodes []*node.Node) []graph.Edge {
	ownerOf := make(map[*node.Input]string)
	for _, n := range nodes {
		for _, in := range n.Inputs() {
			ownerOf[in] = n.UUID
		}
	}
	var edges []graph.Edge
	for _, n := range nodes {
		for _, out := range n.Outputs() {
			for _, in := range out.Targets() {
				dst, ok := ownerOf[in]
				if !ok {
					continue
				}
				edges = append(edges, graph.Edge{Source: n.UUID, Target: dst})
			}
		}
	}
	return edges
}

// Cancel cancels every node's pending evaluation, in reverse insertion
// order.
func (s *Space) Cancel() {
	nodes := s.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		nodes[i].Cancel()
	}
}

// Serialize produces the canonical wire form of the space.
func (s *Space) Serialize() serialize.SpaceJSON {
	nodes := s.Nodes()
	nodeJSON := make([]serialize.NodeJSON, 0, len(nodes))
	for _, n := range nodes {
		nodeJSON = append(nodeJSON, serialize.EncodeNode(n))
	}
	return serialize.SpaceJSON{
		Version:    serialize.Version,
		Nodes:      nodeJSON,
		Edges:      serialize.EncodeEdges(nodes),
		Properties: s.Properties(),
		Lib:        serialize.EncodeLibrary(s.library),
	}
}

// Deserialize reconstitutes nodes in input order, preserving each
// node's original uuid so identity round-trips exactly, then connects
// edges (skipping any edge whose endpoints are missing, with a logged
// warning), then restores the property bag.
func (s *Space) Deserialize(data serialize.SpaceJSON) error {
	known := make(map[string]bool, len(data.Nodes))

	for _, nj := range data.Nodes {
		n, err := s.AddNode(nj.NodeID)
		if err != nil {
			s.logger.Warn("skipping node with unknown class on deserialize", "node_id", nj.NodeID, "error", err)
			continue
		}
		n.UUID = nj.ID
		known[nj.ID] = true
		n.NodeName = nj.NodeName
		for k, v := range nj.Properties {
			n.SetProperty(k, v)
		}
		for name, io := range nj.IOs {
			if io.Value == nil {
				continue
			}
			if in := n.Input(name); in != nil {
				_ = in.SetValue(io.Value, false)
				continue
			}
			if out := n.Output(name); out != nil {
				_ = out.SetValue(io.Value, false)
			}
		}
	}

	for _, edge := range data.Edges {
		if !known[edge[0]] || !known[edge[2]] {
			s.logger.Warn("skipping edge with missing endpoint", "edge", edge)
			continue
		}
		if err := s.Connect(edge[0], edge[1], edge[2], edge[3]); err != nil {
			s.logger.Warn("skipping edge that failed to connect", "edge", edge, "error", err)
		}
	}

	s.mu.Lock()
	for k, v := range data.Properties {
		s.properties[k] = v
	}
	s.mu.Unlock()

	return nil
}
