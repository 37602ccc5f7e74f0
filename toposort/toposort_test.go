package toposort

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf[T comparable](s []T, v T) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func TestSortRespectsDependencies(t *testing.T) {
	g := New[string]()
	g.Depend("compile", "link")
	g.Depend("link", "run")
	g.Insert("unrelated")

	order, err := g.Sort()
	require.NoError(t, err)
	assert.Len(t, order, 4)
	assert.Less(t, indexOf(order, "compile"), indexOf(order, "link"))
	assert.Less(t, indexOf(order, "link"), indexOf(order, "run"))
}

func TestSortDetectsCycle(t *testing.T) {
	g := New[string]()
	g.Depend("a", "b")
	g.Depend("b", "a")

	_, err := g.Sort()
	require.Error(t, err)
	assert.Equal(t, ErrCycle{}, err)
}

func TestFrontSet(t *testing.T) {
	g := New[string]()
	g.Depend("a", "b")
	g.Insert("c")
	front := g.FrontSet()
	assert.ElementsMatch(t, []string{"a", "c"}, front)
}
