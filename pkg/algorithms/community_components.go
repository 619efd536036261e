package algorithms

import (
	"container/list"

	"golang.org/x/exp/constraints"
)

// ConnectedComponents finds all connected components of g. Components are
// numbered in order of their smallest vertex.
func ConnectedComponents[T constraints.Ordered](g *Graph[T]) *ComponentsResult[T] {
	visited := make(map[T]bool, g.VertexCount())
	nodeComponent := make(map[T]int, g.VertexCount())
	components := make([]*Component[T], 0)
	componentID := 0

	// BFS to find each component
	for _, startNode := range g.Vertices() {
		if visited[startNode] {
			continue
		}

		component := &Component[T]{ID: componentID}
		degreeSum := 0

		queue := list.New()
		queue.PushBack(startNode)
		visited[startNode] = true

		for queue.Len() > 0 {
			node, ok := queue.Remove(queue.Front()).(T)
			if !ok {
				continue
			}
			component.Nodes = append(component.Nodes, node)
			nodeComponent[node] = componentID
			degreeSum += g.Degree(node)

			for _, nb := range g.Neighbors(node) {
				if !visited[nb] {
					visited[nb] = true
					queue.PushBack(nb)
				}
			}
		}

		component.Size = len(component.Nodes)
		component.Edges = degreeSum / 2
		if component.Size > 1 {
			pairs := component.Size * (component.Size - 1) / 2
			component.Density = float64(component.Edges) / float64(pairs)
		}
		components = append(components, component)
		componentID++
	}

	return &ComponentsResult[T]{
		Components:    components,
		NodeComponent: nodeComponent,
	}
}
