package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jkendall327/VoynichBruteForce/internal/textbuf"
)

// ColumnarTransposition writes the text into rows of len(order) columns and
// reads the columns back in the given order. No padding is added; short
// final rows simply yield short final columns.
type ColumnarTransposition struct {
	order []int
}

func NewColumnarTransposition(order []int) (ColumnarTransposition, error) {
	if len(order) < 2 {
		return ColumnarTransposition{}, fmt.Errorf("column order needs at least 2 columns: %d", len(order))
	}
	seen := make([]bool, len(order))
	for _, col := range order {
		if col < 0 || col >= len(order) {
			return ColumnarTransposition{}, fmt.Errorf("column index out of range: %d", col)
		}
		if seen[col] {
			return ColumnarTransposition{}, fmt.Errorf("duplicate column index: %d", col)
		}
		seen[col] = true
	}
	copied := make([]int, len(order))
	copy(copied, order)
	return ColumnarTransposition{order: copied}, nil
}

func (c ColumnarTransposition) Name() string {
	parts := make([]string, len(c.order))
	for i, col := range c.order {
		parts[i] = strconv.Itoa(col)
	}
	return "columnar[" + strings.Join(parts, ",") + "]"
}

func (c ColumnarTransposition) CognitiveCost() int {
	return 7
}

func (c ColumnarTransposition) Apply(buf *textbuf.Buffer) {
	src := buf.ReadView()
	dst := buf.WriteView()
	n := len(src)
	cols := len(c.order)
	out := 0
	for _, col := range c.order {
		for i := col; i < n; i += cols {
			dst[out] = src[i]
			out++
		}
	}
	buf.Commit(n)
}
