package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/mxsuite/graph"
)

func TestOrderPlacesDependenciesFirst(t *testing.T) {
	g := graph.New()
	g.AddEdge("irwriter", "irbuilder")
	g.AddEdge("testgenerator", "irwriter")
	g.AddEdge("testgenerator", "irbuilder")
	g.AddNode("unrelated")

	order, err := g.Order("testgenerator")
	require.NoError(t, err)
	assert.Equal(t, []string{"irbuilder", "irwriter", "testgenerator"}, order)

	all, err := g.Order()
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Contains(t, all, "unrelated")
}

func TestOrderReportsCycle(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "b")

	_, err := g.Order("a")
	require.Error(t, err)
	cycle, ok := err.(*graph.CycleError)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c", "b"}, cycle.Path)
	assert.Equal(t, "dependency cycle: b -> c -> b", cycle.Error())
}

func TestAddEdgeIsIdempotent(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	assert.Equal(t, []string{"b"}, g.Deps("a"))
	assert.True(t, g.Has("b"))
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}
