package basis

import "fmt"

// Matrix is an immutable, row-major matrix of basis-function values: rows are
// evaluation points, columns are the retained basis orders in ascending
// original index. The element type is fixed at construction by the backend
// that built it.
type Matrix[T any] struct {
	rows, cols int
	data       []T
}

func newMatrix[T any](rows, cols int) Matrix[T] {
	return Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// Rows returns the number of evaluation points.
func (m Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of retained basis orders.
func (m Matrix[T]) Cols() int { return m.cols }

// At returns the element at row i, column j.
func (m Matrix[T]) At(i, j int) T {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("cannot At: index (%d, %d) outside (%d, %d) matrix", i, j, m.rows, m.cols))
	}
	return m.data[i*m.cols+j]
}

// Row returns a copy of row i.
func (m Matrix[T]) Row(i int) []T {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("cannot Row: index %d outside %d rows", i, m.rows))
	}
	row := make([]T, m.cols)
	copy(row, m.data[i*m.cols:(i+1)*m.cols])
	return row
}

// Col returns a copy of column j.
func (m Matrix[T]) Col(j int) []T {
	if j < 0 || j >= m.cols {
		panic(fmt.Sprintf("cannot Col: index %d outside %d columns", j, m.cols))
	}
	col := make([]T, m.rows)
	for i := range col {
		col[i] = m.data[i*m.cols+j]
	}
	return col
}

func (m Matrix[T]) set(i, j int, v T) {
	m.data[i*m.cols+j] = v
}

// powScale returns c^k by repeated multiplication. Both backends compute the
// derivative rescaling this way so that their float64 results stay bitwise
// comparable.
func powScale(c float64, k int) float64 {
	p := 1.0
	for i := 0; i < k; i++ {
		p *= c
	}
	return p
}
