package multicol

import (
	"context"

	"github.com/npillmayer/multicol/floats"
)

// Element is an opaque handle onto a piece of the visual output tree.
// The balancer never inspects visual content; it only detaches a
// container's children while trials are in flight and re-appends the
// winning trial's column elements afterwards.
type Element interface {
	AppendChild(child Element)
	RemoveChildren()
}

// BreakType classifies how a column ended. A column carrying anything but
// BreakNone was cut short by a forced break (column/page/region break) and
// is exempt from balancing considerations.
type BreakType uint8

const (
	BreakNone   BreakType = iota // column ended at its natural extent
	BreakColumn                  // forced column break
	BreakPage                    // forced page break
	BreakRegion                  // forced region break
)

func (b BreakType) String() string {
	switch b {
	case BreakNone:
		return "none"
	case BreakColumn:
		return "column"
	case BreakPage:
		return "page"
	case BreakRegion:
		return "region"
	}
	return "?"
}

// Column is one measurement record of a column-generation trial. Columns
// are produced by the column generator and are never mutated afterwards;
// the balancer only reads them.
//
// DistanceToBlockEndFloats is the distance from the column's block-end edge
// to the nearest block-end page float, or NaN if the column has no
// block-end floats. MaxFloatBlockSize is the largest block size any page
// float inside the column demands; it bounds how far a container may
// shrink.
type Column struct {
	ComputedBlockSize        float64
	Break                    BreakType
	DistanceToBlockEndFloats float64
	MaxFloatBlockSize        float64
	Element                  Element
}

// LayoutPosition is an opaque marker for how far into the upstream content
// a column run has consumed. Positions are engine-owned; the balancer only
// ever compares them for equality. A nil position means the flow has been
// consumed completely.
type LayoutPosition interface {
	SamePosition(other LayoutPosition) bool
}

// SamePosition compares two possibly-nil layout positions. Two nil
// positions compare equal (both mean "flow exhausted").
func SamePosition(a, b LayoutPosition) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.SamePosition(b)
}

// FlowPosition tells how much content of the region's flow is still
// unconsumed. The balancer factory uses it once, to detect the terminal
// fragment of a flow.
type FlowPosition interface {
	Remaining() int
}

// ColumnLayoutResult is the outcome of one column-generation attempt.
//
// FloatContexts is not filled in by the generator: immediately after a
// result is produced, the balancer moves the live page-float state of the
// region into the result, so that every trial owns the float subtrees it
// was generated with. They are given back exactly once, when the trial wins.
type ColumnLayoutResult struct {
	Columns       []*Column
	Position      LayoutPosition
	FloatContexts []*floats.PageFloatLayoutContext
}

// ColumnGenerator produces one column set at the container's current block
// size. Generators may suspend internally (fonts, reflow); the balancer
// calls them strictly one at a time. A nil result with a nil error ends
// the balancing search. For a fixed container block size a generator is
// idempotent with respect to the external flow position.
type ColumnGenerator func(ctx context.Context) (*ColumnLayoutResult, error)
