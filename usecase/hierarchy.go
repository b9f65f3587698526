package usecase

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

// hierarchyFetch resolves one node of a same-type tree. Returns ErrNotFound
// for a dangling reference.
type hierarchyFetch func(id string) (*model.Hierarchy, error)

// AllAncestors walks parent links from the given node to its root and returns
// the chain oldest-first, the node itself excluded. The walk keeps a visited
// set and is bounded by the depth cap, so a corrupted parent chain surfaces
// as ErrHierarchyLoop instead of hanging.
func AllAncestors(fetch hierarchyFetch, startUUID string) ([]string, error) {
	start, err := fetch(startUUID)
	if err != nil {
		return nil, err
	}
	visited := map[string]struct{}{startUUID: {}}
	chain := []string{}
	current := start.Parent()
	for i := 0; current != ""; i++ {
		if i >= consts.MaxHierarchyDepth {
			return nil, consts.ErrHierarchyLoop
		}
		if _, seen := visited[current]; seen {
			return nil, consts.ErrHierarchyLoop
		}
		visited[current] = struct{}{}
		chain = append([]string{current}, chain...)
		node, err := fetch(current)
		if err != nil {
			return nil, err
		}
		current = node.Parent()
	}
	return chain, nil
}

// AllDescendants collects the subtree below the given node breadth-first, the
// node itself excluded. Child links pointing at missing nodes are skipped.
// The same loop protection as in AllAncestors applies.
func AllDescendants(fetch hierarchyFetch, startUUID string) ([]string, error) {
	start, err := fetch(startUUID)
	if err != nil {
		return nil, err
	}
	visited := map[string]struct{}{startUUID: {}}
	result := []string{}
	queue := append([]string{}, start.ChildUUIDs...)
	for depth := 0; len(queue) > 0; depth++ {
		if depth >= consts.MaxHierarchyDepth {
			return nil, consts.ErrHierarchyLoop
		}
		next := []string{}
		for _, id := range queue {
			if _, seen := visited[id]; seen {
				return nil, consts.ErrHierarchyLoop
			}
			visited[id] = struct{}{}
			node, err := fetch(id)
			if err == consts.ErrNotFound {
				continue
			}
			if err != nil {
				return nil, err
			}
			result = append(result, id)
			next = append(next, node.ChildUUIDs...)
		}
		queue = next
	}
	return result, nil
}
