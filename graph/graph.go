// Package graph implements the dependency graph between the projects and
// distributions of a suite.
package graph

import (
	"sort"
	"strings"
)

// A Graph is a directed graph of named nodes. An edge from A to B means that A
// depends on B.
type Graph struct {
	nodes map[string]bool
	edges map[string][]string
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]bool),
		edges: make(map[string][]string),
	}
}

// AddNode adds a node without edges.
func (g *Graph) AddNode(name string) {
	g.nodes[name] = true
}

// AddEdge records that from depends on to. Both nodes are added.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	for _, e := range g.edges[from] {
		if e == to {
			return
		}
	}
	g.edges[from] = append(g.edges[from], to)
}

// Has reports whether name is a node of the graph.
func (g *Graph) Has(name string) bool {
	return g.nodes[name]
}

// Nodes returns all nodes in sorted order.
func (g *Graph) Nodes() []string {
	var names []string
	for n := range g.nodes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Deps returns the direct dependencies of name, in insertion order.
func (g *Graph) Deps(name string) []string {
	return g.edges[name]
}

// A CycleError reports a dependency cycle. Path starts and ends with the same
// node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "dependency cycle: " + strings.Join(e.Path, " -> ")
}

// Order returns roots and everything they transitively depend on, with every
// node placed after its dependencies. With no roots, all nodes are ordered.
func (g *Graph) Order(roots ...string) ([]string, error) {
	if len(roots) == 0 {
		roots = g.Nodes()
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int)
	var order []string
	var stack []string

	var visit func(n string) error
	visit = func(n string) error {
		switch state[n] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, s := range stack {
				if s == n {
					start = i
					break
				}
			}
			path := append(append([]string{}, stack[start:]...), n)
			return &CycleError{Path: path}
		}
		state[n] = visiting
		stack = append(stack, n)
		for _, d := range g.edges[n] {
			if err := visit(d); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		order = append(order, n)
		return nil
	}

	for _, r := range roots {
		if err := visit(r); err != nil {
			return nil, err
		}
	}
	return order, nil
}
