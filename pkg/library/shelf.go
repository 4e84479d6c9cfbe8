package library

import (
	"sync"
	"weak"

	"github.com/flowcore/engine/pkg/node"
)

// Shelf is a named, recursive grouping of node classes. Classes are held
// weakly; Snapshot filters out any that have been garbage collected.
type Shelf struct {
	Name        string
	Description string

	mu         sync.Mutex
	nodeRefs   []weak.Pointer[node.Class]
	subshelves []*Shelf
}

// NewShelf creates an empty shelf.
func NewShelf(name, description string) *Shelf {
	return &Shelf{Name: name, Description: description}
}

// AddNode appends or updates (by NodeID) a weakly-held class on this
// shelf. The caller remains responsible for keeping a strong reference
// to cls alive for as long as it should remain visible.
func (s *Shelf) AddNode(cls *node.Class) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ref := range s.nodeRefs {
		if existing := ref.Value(); existing != nil && existing.NodeID == cls.NodeID {
			s.nodeRefs[i] = weak.Make(cls)
			return
		}
	}
	s.nodeRefs = append(s.nodeRefs, weak.Make(cls))
}

// Subshelf returns the direct child shelf named name, creating it if
// addIfMissing is true and it does not already exist.
func (s *Shelf) Subshelf(name string, addIfMissing bool) *Shelf {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subshelves {
		if sub.Name == name {
			return sub
		}
	}
	if !addIfMissing {
		return nil
	}
	sub := NewShelf(name, "")
	s.subshelves = append(s.subshelves, sub)
	return sub
}

// AddSubshelf attaches sub as a child. If a child with the same name
// already exists and is not the same shelf, this is a malformed
// definition and returns ErrShelf.
func (s *Shelf) AddSubshelf(sub *Shelf) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subshelves {
		if existing.Name == sub.Name {
			if existing == sub {
				return nil
			}
			return ErrShelf
		}
	}
	s.subshelves = append(s.subshelves, sub)
	return nil
}

// Snapshot is a live, strong-reference view of a Shelf suitable for
// serialization or iteration; dead node-class slots are omitted.
type Snapshot struct {
	Name        string
	Description string
	Nodes       []*node.Class
	Subshelves  []*Snapshot
}

// Snapshot materializes a strong-reference snapshot of s and every
// descendant, filtering out node classes that have been collected.
func (s *Shelf) Snapshot() *Snapshot {
	s.mu.Lock()
	refs := append([]weak.Pointer[node.Class](nil), s.nodeRefs...)
	subs := append([]*Shelf(nil), s.subshelves...)
	s.mu.Unlock()

	nodes := make([]*node.Class, 0, len(refs))
	for _, ref := range refs {
		if cls := ref.Value(); cls != nil {
			nodes = append(nodes, cls)
		}
	}

	subsnap := make([]*Snapshot, 0, len(subs))
	for _, sub := range subs {
		subsnap = append(subsnap, sub.Snapshot())
	}

	return &Snapshot{Name: s.Name, Description: s.Description, Nodes: nodes, Subshelves: subsnap}
}

// find performs a depth-first search for node_id, appending the path of
// shelf names leading to each match to paths. When all is false it stops
// after the first match.
func (s *Shelf) find(nodeID string, all bool, prefix []string, paths *[][]string) bool {
	s.mu.Lock()
	refs := append([]weak.Pointer[node.Class](nil), s.nodeRefs...)
	subs := append([]*Shelf(nil), s.subshelves...)
	s.mu.Unlock()

	for _, ref := range refs {
		cls := ref.Value()
		if cls == nil {
			continue
		}
		if cls.NodeID == nodeID {
			found := append(append([]string(nil), prefix...), s.Name)
			*paths = append(*paths, found)
			if !all {
				return true
			}
		}
	}
	for _, sub := range subs {
		if sub.find(nodeID, all, append(prefix, s.Name), paths) && !all {
			return true
		}
	}
	return false
}

// getByID returns the first matching, still-alive class.
func (s *Shelf) getByID(nodeID string) *node.Class {
	s.mu.Lock()
	refs := append([]weak.Pointer[node.Class](nil), s.nodeRefs...)
	subs := append([]*Shelf(nil), s.subshelves...)
	s.mu.Unlock()

	for _, ref := range refs {
		if cls := ref.Value(); cls != nil && cls.NodeID == nodeID {
			return cls
		}
	}
	for _, sub := range subs {
		if cls := sub.getByID(nodeID); cls != nil {
			return cls
		}
	}
	return nil
}
