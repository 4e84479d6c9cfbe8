package library

import (
	"fmt"
	"sync"

	"github.com/flowcore/engine/pkg/node"
	"github.com/flowcore/engine/pkg/runtime"
)

// Library is the top-level node-class registry: an ordered list of
// top-level shelves plus a record of module dependency strings retained
// for reproducibility (e.g. "mypackage==1.2.3"). Each Library carries
// its own node-class registry, scoped to the library rather than the
// process, so registering the same node_id under two different
// classes fails regardless of which shelf path it's added through.
type Library struct {
	mu           sync.Mutex
	shelves      []*Shelf
	dependencies []string
	registry     *runtime.Registry
}

// New creates an empty library.
func New() *Library {
	return &Library{registry: runtime.NewRegistry()}
}

// AddShelf appends shelf at the top level. Adding the same *Shelf twice
// is a no-op; adding a distinct shelf that reuses an existing top-level
// name is rejected with ErrShelf.
func (l *Library) AddShelf(shelf *Shelf) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.shelves {
		if existing.Name == shelf.Name {
			if existing == shelf {
				return nil
			}
			return fmt.Errorf("%w: shelf %q already registered", ErrShelf, shelf.Name)
		}
	}
	l.shelves = append(l.shelves, shelf)
	return nil
}

// AddDependency records a module dependency string.
func (l *Library) AddDependency(dep string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.dependencies {
		if existing == dep {
			return
		}
	}
	l.dependencies = append(l.dependencies, dep)
}

// Dependencies returns the recorded dependency strings.
func (l *Library) Dependencies() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.dependencies...)
}

// AddNodes creates intermediate shelves along path as needed and
// appends/updates each class by NodeID within the target shelf. A
// class whose node_id is already registered to a different class is
// rejected rather than silently overwriting the existing shelf entry.
// The library's registry keeps a strong reference to every class added
// here, so these classes stay alive for as long as the library does.
func (l *Library) AddNodes(classes []*node.Class, path []string) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty path", ErrShelf)
	}

	for _, cls := range classes {
		if err := l.registry.Register(cls.NodeID, cls); err != nil {
			return fmt.Errorf("%w: %v", ErrDuplicateNodeID, err)
		}
	}

	l.mu.Lock()
	var top *Shelf
	for _, s := range l.shelves {
		if s.Name == path[0] {
			top = s
			break
		}
	}
	if top == nil {
		top = NewShelf(path[0], "")
		l.shelves = append(l.shelves, top)
	}
	l.mu.Unlock()

	cur := top
	for _, name := range path[1:] {
		cur = cur.Subshelf(name, true)
	}
	for _, cls := range classes {
		cur.AddNode(cls)
	}
	return nil
}

// FindNodeID returns every shelf-name path leading to nodeID. When all is
// false, it stops at the first match found.
func (l *Library) FindNodeID(nodeID string, all bool) [][]string {
	l.mu.Lock()
	shelves := append([]*Shelf(nil), l.shelves...)
	l.mu.Unlock()

	var paths [][]string
	for _, s := range shelves {
		if s.find(nodeID, all, nil, &paths) && !all {
			break
		}
	}
	return paths
}

// GetNodeByID returns the first still-alive class registered under
// nodeID, or ErrNodeClassNotFound.
func (l *Library) GetNodeByID(nodeID string) (*node.Class, error) {
	l.mu.Lock()
	shelves := append([]*Shelf(nil), l.shelves...)
	l.mu.Unlock()

	for _, s := range shelves {
		if cls := s.getByID(nodeID); cls != nil {
			return cls, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNodeClassNotFound, nodeID)
}

// Shelves returns a live, strong-reference snapshot of every top-level
// shelf, suitable for serialization. Dead node-class slots are omitted.
func (l *Library) Shelves() []*Snapshot {
	l.mu.Lock()
	shelves := append([]*Shelf(nil), l.shelves...)
	l.mu.Unlock()

	out := make([]*Snapshot, 0, len(shelves))
	for _, s := range shelves {
		out = append(out, s.Snapshot())
	}
	return out
}
