// AngelaMos | 2026
// order.go

package slides

import (
	"math"
	"sort"

	"github.com/carterperez-dev/voice-to-ppt/internal/pptx"
)

// ShapeOrder decides which text shape plays the title role and which the
// body: the first returned shape is the title, the second the body.
type ShapeOrder interface {
	Order(shapes []*pptx.Shape) []*pptx.Shape
}

// VerticalOrder sorts top to bottom. Placeholder indices are not trusted
// across arbitrary templates, so position is the only signal. Shapes without
// a resolvable offset go last, in document order.
type VerticalOrder struct{}

func (VerticalOrder) Order(shapes []*pptx.Shape) []*pptx.Shape {
	out := make([]*pptx.Shape, len(shapes))
	copy(out, shapes)

	tops := make(map[*pptx.Shape]int64, len(out))
	for _, sh := range out {
		_, y, ok := sh.Offset()
		if !ok {
			y = math.MaxInt64
		}
		tops[sh] = y
	}

	sort.SliceStable(out, func(i, j int) bool {
		return tops[out[i]] < tops[out[j]]
	})
	return out
}

// PlaceholderOrder puts title placeholders first, then other placeholders by
// index, then non-placeholder shapes in document order.
type PlaceholderOrder struct{}

func (PlaceholderOrder) Order(shapes []*pptx.Shape) []*pptx.Shape {
	out := make([]*pptx.Shape, len(shapes))
	copy(out, shapes)

	rank := func(sh *pptx.Shape) int {
		typ, idx, ok := sh.Placeholder()
		switch {
		case !ok:
			return math.MaxInt
		case typ == "title" || typ == "ctrTitle":
			return -1
		default:
			return idx
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})
	return out
}
