package services

// DependencyEdge is one directed prerequisite relation between two service
// task templates: the dependent cannot start before the prerequisite.
type DependencyEdge struct {
	DependentID    uint64
	PrerequisiteID uint64
}

// WouldCreateCycle reports whether adding the proposed edge to the existing
// per-service edge set would close a cycle. It walks depth-first from the
// proposed dependent along dependent→prerequisite edges keeping the current
// path; revisiting a node on that path is a back-edge and confirms a cycle.
// Pure function, O(V+E). Self-edges and duplicates are rejected by the caller
// before this check runs, but both register as cycles here as well.
func WouldCreateCycle(edges []DependencyEdge, proposed DependencyEdge) bool {
	adjacency := make(map[uint64][]uint64, len(edges)+1)
	for _, e := range edges {
		adjacency[e.DependentID] = append(adjacency[e.DependentID], e.PrerequisiteID)
	}
	adjacency[proposed.DependentID] = append(adjacency[proposed.DependentID], proposed.PrerequisiteID)

	onPath := make(map[uint64]bool, len(adjacency))
	visited := make(map[uint64]bool, len(adjacency))

	var visit func(node uint64) bool
	visit = func(node uint64) bool {
		if onPath[node] {
			return true
		}
		if visited[node] {
			return false
		}
		onPath[node] = true
		visited[node] = true
		for _, next := range adjacency[node] {
			if visit(next) {
				return true
			}
		}
		onPath[node] = false
		return false
	}

	return visit(proposed.DependentID)
}
