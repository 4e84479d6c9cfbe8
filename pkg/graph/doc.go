// Package graph provides graph algorithms over node ids and edges.
//
// # Overview
//
// The graph package implements the few graph operations the node-space
// runtime needs: topological ordering, root and terminal node discovery,
// per-node edge lookup, and cycle detection.
//
// # Key Algorithms
//
// Topological Sort:
//   - Implements Kahn's algorithm for topological ordering
//   - Orders every node after all of its sources
//   - Returns ErrCycleDetected when the graph has a cycle
//   - Starts from the zero in-degree nodes in sorted order
//
// Cycle Detection:
//   - DetectCycles runs the topological sort and returns its error
//   - It reports only whether a cycle exists, not which nodes form it
//
// Root and terminal nodes:
//   - RootNodes returns the nodes with no incoming edges, sorted
//   - TerminalNodes returns the nodes with no outgoing edges, in input order
//
// # Graph Representation
//
// A graph is a list of node ids plus a list of directed edges where:
//
//   - Direction indicates data flow (source → target)
//   - Multiple edges can connect the same nodes
//   - Edges are not checked against the node list
//
// # Topological Sort Usage
//
//	import "github.com/flowcore/engine/pkg/graph"
//
//	// Build adjacency list
//	edges := []graph.Edge{
//	    {Source: "A", Target: "B"},
//	    {Source: "B", Target: "C"},
//	}
//
//	// Perform topological sort
//	g := graph.New(nodeIDs, edges)
//	sorted, err := g.TopologicalSort()
//	if err != nil {
//	    // errors.Is(err, graph.ErrCycleDetected)
//	}
//
//	// Execute in sorted order
//	for _, nodeID := range sorted {
//	    execute(nodeID)
//	}
//
// # Cycle Detection
//
//	if err := g.DetectCycles(); err != nil {
//	    fmt.Printf("Cycle detected: %v\n", err)
//	}
//
// # Performance Characteristics
//
//   - Topological sort: O(V + E) where V=nodes, E=edges
//   - Cycle detection: same cost, since it runs the topological sort
//   - Edge lookups (InputEdges, OutputEdges): O(E) per call
//
// # Error Handling
//
// The only error graph operations return is ErrCycleDetected, from
// TopologicalSort and DetectCycles. An empty graph sorts to an empty
// slice without error, and nodes without connections are ordinary roots.
//
// # Algorithm Details
//
// Kahn's Algorithm (Topological Sort):
//  1. Calculate in-degree for all nodes
//  2. Add zero in-degree nodes to queue
//  3. Process queue: remove node, decrement neighbor in-degrees
//  4. Add newly zero in-degree nodes to queue
//  5. If processed count != node count, cycle exists
//
// # Thread Safety
//
// Graph algorithms are stateless and safe for concurrent use.
// Multiple goroutines can analyze the same graph simultaneously.
package graph
