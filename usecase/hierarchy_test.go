package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

func mapFetch(nodes map[string]*model.Hierarchy) hierarchyFetch {
	return func(id string) (*model.Hierarchy, error) {
		node, ok := nodes[id]
		if !ok {
			return nil, consts.ErrNotFound
		}
		return node, nil
	}
}

func Test_AllAncestors(t *testing.T) {
	nodes := map[string]*model.Hierarchy{
		"root": {},
		"mid":  {ParentUUID: "root"},
		"leaf": {ParentUUID: "mid"},
	}

	chain, err := AllAncestors(mapFetch(nodes), "leaf")
	require.NoError(t, err)
	require.Equal(t, []string{"root", "mid"}, chain)

	chain, err = AllAncestors(mapFetch(nodes), "root")
	require.NoError(t, err)
	require.Empty(t, chain)
}

func Test_AllAncestorsLoop(t *testing.T) {
	nodes := map[string]*model.Hierarchy{
		"a": {ParentUUID: "b"},
		"b": {ParentUUID: "a"},
	}

	_, err := AllAncestors(mapFetch(nodes), "a")
	require.ErrorIs(t, err, consts.ErrHierarchyLoop)
}

func Test_AllDescendants(t *testing.T) {
	nodes := map[string]*model.Hierarchy{
		"root": {ChildUUIDs: []string{"a", "b"}},
		"a":    {ParentUUID: "root", ChildUUIDs: []string{"a1", "gone"}},
		"b":    {ParentUUID: "root"},
		"a1":   {ParentUUID: "a"},
	}

	subtree, err := AllDescendants(mapFetch(nodes), "root")
	require.NoError(t, err)
	// breadth-first; the dangling "gone" link is skipped
	require.Equal(t, []string{"a", "b", "a1"}, subtree)
}

func Test_AllDescendantsLoop(t *testing.T) {
	nodes := map[string]*model.Hierarchy{
		"root": {ChildUUIDs: []string{"a"}},
		"a":    {ChildUUIDs: []string{"root"}},
	}

	_, err := AllDescendants(mapFetch(nodes), "root")
	require.ErrorIs(t, err, consts.ErrHierarchyLoop)
}
