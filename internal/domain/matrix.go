package domain

import "fmt"

// DurationMatrix holds all-pairs travel costs over an ordered venue list.
// Durations are seconds and Distances are meters; cell [i][j] is the cost of
// travelling from i to j. The matrix is not assumed symmetric.
type DurationMatrix struct {
	Durations [][]float64
	Distances [][]float64
}

// NewDurationMatrix allocates an n×n zero matrix.
func NewDurationMatrix(n int) *DurationMatrix {
	m := &DurationMatrix{
		Durations: make([][]float64, n),
		Distances: make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		m.Durations[i] = make([]float64, n)
		m.Distances[i] = make([]float64, n)
	}
	return m
}

func (m *DurationMatrix) Size() int {
	if m == nil {
		return 0
	}
	return len(m.Durations)
}

// Validate checks that the duration table is square and, when present,
// that the distance table has the same shape.
func (m *DurationMatrix) Validate() error {
	if m == nil {
		return InvalidInput("validate matrix", "matrix is nil")
	}

	n := len(m.Durations)
	for i, row := range m.Durations {
		if len(row) != n {
			return InvalidInput(
				"validate matrix", "duration matrix is not square",
				fmt.Sprintf("row=%d len=%d want=%d", i, len(row), n),
			)
		}
	}

	if m.Distances != nil {
		if len(m.Distances) != n {
			return InvalidInput(
				"validate matrix", "distance matrix size mismatch",
				fmt.Sprintf("rows=%d want=%d", len(m.Distances), n),
			)
		}
		for i, row := range m.Distances {
			if len(row) != n {
				return InvalidInput(
					"validate matrix", "distance matrix is not square",
					fmt.Sprintf("row=%d len=%d want=%d", i, len(row), n),
				)
			}
		}
	}

	return nil
}

// PathCost sums durations and distances along an open path of indices.
func (m *DurationMatrix) PathCost(order []int) (seconds, meters float64) {
	for i := 1; i < len(order); i++ {
		a, b := order[i-1], order[i]
		seconds += m.Durations[a][b]
		if m.Distances != nil {
			meters += m.Distances[a][b]
		}
	}
	return seconds, meters
}
