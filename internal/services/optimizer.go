package services

import (
	"crawl-route-service/internal/domain"
	"fmt"
)

// OptimalOrder computes a visiting order with a greedy nearest-neighbor walk.
//
// The walk always starts at index 0 and moves to the unvisited index with the
// smallest duration from the current one. Equal durations resolve to the lower
// index, so the result is fully determined by the matrix. The path is open:
// no return leg to the start is added.
func OptimalOrder(m *domain.DurationMatrix) ([]int, error) {
	if m == nil || m.Size() == 0 {
		return nil, domain.InvalidInput("optimal order", "matrix is empty")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	n := m.Size()
	if n == 1 {
		return []int{0}, nil
	}

	visited := make([]bool, n)
	visited[0] = true
	route := make([]int, 1, n)
	current := 0

	for len(route) < n {
		next := -1
		for x := 0; x < n; x++ {
			if visited[x] {
				continue
			}
			if next == -1 || m.Durations[current][x] < m.Durations[current][next] {
				next = x
			}
		}
		if next == -1 {
			return nil, fmt.Errorf("optimal order: no unvisited index after %d stops", len(route))
		}

		visited[next] = true
		route = append(route, next)
		current = next
	}

	return route, nil
}
