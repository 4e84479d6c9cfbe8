// Package graph provides DAG (Directed Acyclic Graph) operations used by
// the node-space runtime: topological ordering, root discovery, and
// cycle diagnostics over a plain node-id/edge representation.
package graph

import (
	"fmt"
)

// Edge is a directed edge between two node ids.
type Edge struct {
	Source string
	Target string
}

// Graph represents a set of node ids and the directed edges between them.
type Graph struct {
	nodes []string
	edges []Edge
}

// New creates a new Graph from node ids and edges.
func New(nodes []string, edges []Edge) *Graph {
	return &Graph{
		nodes: nodes,
		edges: edges,
	}
}

// TopologicalSort performs topological sorting using Kahn's algorithm.
// This determines a valid execution order for nodes in a directed
// acyclic graph (DAG).
//
// Returns:
//   - []string: Ordered list of node IDs for sequential execution
//   - error: If the graph contains cycles (circular dependencies)
//
// Algorithm:
//  1. Calculate in-degree (number of incoming edges) for each node
//  2. Start with nodes that have no dependencies (in-degree = 0)
//  3. Process nodes and reduce in-degree of their neighbors
//  4. If all nodes processed, we have a valid execution order
//  5. If nodes remain, there's a cycle in the graph
func (g *Graph) TopologicalSort() ([]string, error) {
	numNodes := len(g.nodes)

	if numNodes == 0 {
		return []string{}, nil
	}

	inDegree := make(map[string]int, numNodes)
	adjacency := make(map[string][]string, numNodes)

	for i := range g.nodes {
		inDegree[g.nodes[i]] = 0
	}

	for i := range g.edges {
		edge := &g.edges[i]
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
		inDegree[edge.Target]++
	}

	orphanNodes := make([]string, 0, numNodes)
	for nodeID, degree := range inDegree {
		if degree == 0 {
			orphanNodes = append(orphanNodes, nodeID)
		}
	}

	insertionSort(orphanNodes)

	queue := make([]string, numNodes)
	queueStart := 0
	queueEnd := len(orphanNodes)
	copy(queue, orphanNodes)

	order := make([]string, 0, numNodes)

	for queueStart < queueEnd {
		current := queue[queueStart]
		queueStart++
		order = append(order, current)

		neighbors := adjacency[current]
		for i := range neighbors {
			neighbor := neighbors[i]
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue[queueEnd] = neighbor
				queueEnd++
			}
		}
	}

	if len(order) != numNodes {
		return nil, fmt.Errorf("%w", ErrCycleDetected)
	}

	return order, nil
}

// insertionSort sorts a slice of strings in place. Faster than the
// standard library sort for the small slices typical of root-node sets.
func insertionSort(arr []string) {
	for i := 1; i < len(arr); i++ {
		key := arr[i]
		j := i - 1
		for j >= 0 && arr[j] > key {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = key
	}
}

// HasNode reports whether nodeID is present in the graph.
func (g *Graph) HasNode(nodeID string) bool {
	for _, id := range g.nodes {
		if id == nodeID {
			return true
		}
	}
	return false
}

// InputEdges returns all edges where nodeID is the target.
func (g *Graph) InputEdges(nodeID string) []Edge {
	var edges []Edge
	for _, edge := range g.edges {
		if edge.Target == nodeID {
			edges = append(edges, edge)
		}
	}
	return edges
}

// OutputEdges returns all edges where nodeID is the source.
func (g *Graph) OutputEdges(nodeID string) []Edge {
	var edges []Edge
	for _, edge := range g.edges {
		if edge.Source == nodeID {
			edges = append(edges, edge)
		}
	}
	return edges
}

// RootNodes returns every node id with no incoming edges, in a stable,
// sorted order — the set a NodeSpace triggers on trigger_all.
func (g *Graph) RootNodes() []string {
	hasIncoming := make(map[string]bool, len(g.nodes))
	for _, edge := range g.edges {
		hasIncoming[edge.Target] = true
	}

	roots := make([]string, 0, len(g.nodes))
	for _, id := range g.nodes {
		if !hasIncoming[id] {
			roots = append(roots, id)
		}
	}
	insertionSort(roots)
	return roots
}

// TerminalNodes returns all node ids with no outgoing edges.
func (g *Graph) TerminalNodes() []string {
	terminal := make(map[string]bool, len(g.nodes))
	for _, id := range g.nodes {
		terminal[id] = true
	}
	for _, edge := range g.edges {
		terminal[edge.Source] = false
	}

	result := make([]string, 0)
	for _, id := range g.nodes {
		if terminal[id] {
			result = append(result, id)
		}
	}
	return result
}

// DetectCycles reports whether the graph contains a cycle.
func (g *Graph) DetectCycles() error {
	_, err := g.TopologicalSort()
	return err
}
