package balance

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"math"

	"github.com/npillmayer/multicol"
	"github.com/npillmayer/multicol/region"
)

// DefaultLastColumnTolerance is the slack, in layout units, by which the
// trailing column may exceed each of its siblings before the candidate is
// rejected. The value accounts for trailing-edge measurement jitter of
// column generators and does not necessarily generalize across unit
// systems; it can be overridden per run (Params.Tolerance).
const DefaultLastColumnTolerance = 6.0

// growthRatio is the fraction of the original container block size by
// which the grow phase widens the container per trial.
const growthRatio = 0.1

// --- Last-column strategy ----------------------------------------------------

// lastColumnBalancer balances the terminal fragment of a flow (or a
// fragment ending in a forced break): there will be no later opportunity
// to fix the trailing column, so no column, least of all the last, may end
// up longer than its siblings beyond a small tolerance.
//
// The search has two phases. Starting from a deliberate undershoot
// (total size / column count), the container grows by a tenth of its
// original block size per trial until a size is found at which the
// trailing-column constraint holds and the run still consumes the same
// amount of upstream content. From that upper bound on, the container
// shrinks as long as shrinking keeps improving the score.
type lastColumnBalancer struct {
	container         *region.Container
	originalBlockSize float64
	columnCount       int
	tolerance         float64
	originalPosition  multicol.LayoutPosition
	foundUpperBound   bool
}

func (lcb *lastColumnBalancer) preBalance(result *multicol.ColumnLayoutResult) {
	total := 0.0
	for _, col := range result.Columns {
		total += col.ComputedBlockSize
	}
	guess := total / float64(lcb.columnCount)
	tracer().Debugf("last-column balancing %d column(s), first guess %.2f", lcb.columnCount, guess)
	lcb.container.SetBlockSize(guess)
	lcb.originalPosition = result.Position
}

func (lcb *lastColumnBalancer) calculatePenalty(result *multicol.ColumnLayoutResult) float64 {
	if !multicol.SamePosition(result.Position, lcb.originalPosition) {
		// Resizing must never change how much content the run consumes.
		return math.Inf(1)
	}
	if lastColumnLongerThanAnyOther(result.Columns, lcb.tolerance) {
		return math.Inf(1)
	}
	return maxBlockSize(result.Columns)
}

func (lcb *lastColumnBalancer) hasNextCandidate(trials []trial) bool {
	if len(trials) == 1 {
		return true
	}
	if lcb.foundUpperBound {
		return canReduceContainerSize(trials)
	}
	last := trials[len(trials)-1].result
	if multicol.SamePosition(last.Position, lcb.originalPosition) &&
		!lastColumnLongerThanAnyOther(last.Columns, lcb.tolerance) {
		lcb.foundUpperBound = true
		return true
	}
	return lcb.container.BlockSize() < lcb.originalBlockSize
}

func (lcb *lastColumnBalancer) updateCondition(trials []trial) {
	if lcb.foundUpperBound {
		reduceContainerSize(trials, lcb.container)
		return
	}
	size := math.Min(lcb.originalBlockSize,
		lcb.container.BlockSize()+growthRatio*lcb.originalBlockSize)
	tracer().Debugf("growing container block size to %.2f", size)
	lcb.container.SetBlockSize(size)
}

// lastColumnLongerThanAnyOther reports whether the trailing column exceeds
// every other column by more than the tolerance. Trivially false for
// single-column sets.
func lastColumnLongerThanAnyOther(columns []*multicol.Column, tolerance float64) bool {
	if len(columns) <= 1 {
		return false
	}
	last := columns[len(columns)-1].ComputedBlockSize
	for _, col := range columns[:len(columns)-1] {
		if last <= col.ComputedBlockSize+tolerance {
			return false
		}
	}
	return true
}

// --- Non-last-column strategy --------------------------------------------------

// nonLastColumnBalancer balances a mid-flow fragment under column-fill
// 'balance-all': the block sizes of all columns should vary as little as
// possible. Columns cut short by a forced break are allowed to be
// irregular and are excluded from the score. The strategy only ever
// shrinks, starting from the natural size the caller generated at.
type nonLastColumnBalancer struct {
	container *region.Container
}

func (ncb *nonLastColumnBalancer) preBalance(result *multicol.ColumnLayoutResult) {}

func (ncb *nonLastColumnBalancer) calculatePenalty(result *multicol.ColumnLayoutResult) float64 {
	allZero := true
	for _, col := range result.Columns {
		if col.ComputedBlockSize != 0 { // bit-exact: a zero-sized run is degenerate
			allZero = false
			break
		}
	}
	if allZero {
		return math.Inf(1)
	}
	sizes := make([]float64, 0, len(result.Columns))
	for _, col := range result.Columns {
		if col.Break == multicol.BreakNone {
			sizes = append(sizes, col.ComputedBlockSize)
		}
	}
	if len(sizes) == 0 { // every column forcibly broken
		return math.Inf(1)
	}
	return variance(sizes)
}

func (ncb *nonLastColumnBalancer) hasNextCandidate(trials []trial) bool {
	return canReduceContainerSize(trials)
}

func (ncb *nonLastColumnBalancer) updateCondition(trials []trial) {
	reduceContainerSize(trials, ncb.container)
}

// variance is the population variance of xs. xs must not be empty.
func variance(xs []float64) float64 {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	v := 0.0
	for _, x := range xs {
		d := x - mean
		v += d * d
	}
	return v / float64(len(xs))
}

// --- Shared shrink helpers ----------------------------------------------------

// maxBlockSize returns the largest computed block size among columns.
func maxBlockSize(columns []*multicol.Column) float64 {
	m := math.Inf(-1)
	for _, col := range columns {
		if col.ComputedBlockSize > m {
			m = col.ComputedBlockSize
		}
	}
	return m
}

// canReduceContainerSize reports whether another shrink trial can still
// improve the score: the last trial is not already perfect, it improved on
// its predecessor, and the columns are taller than what their page floats
// demand.
func canReduceContainerSize(trials []trial) bool {
	last := trials[len(trials)-1]
	if last.penalty == 0 { // bit-exact: cannot beat a perfect score
		return false
	}
	if len(trials) >= 2 && last.penalty >= trials[len(trials)-2].penalty {
		return false
	}
	maxColumnBlockSize := maxBlockSize(last.result.Columns)
	maxPageFloatBlockSize := math.Inf(-1)
	for _, col := range last.result.Columns {
		if col.MaxFloatBlockSize > maxPageFloatBlockSize {
			maxPageFloatBlockSize = col.MaxFloatBlockSize
		}
	}
	return maxColumnBlockSize > maxPageFloatBlockSize+sizeStep
}

// reduceContainerSize shrinks the container for the next trial. The target
// is just below the tallest column edge, where a column's edge steps over
// its block-end floats if it has any. If the computed target would not
// shrink anything, the container shrinks by a single step instead, so that
// the shrink phase always makes progress.
func reduceContainerSize(trials []trial, container *region.Container) {
	last := trials[len(trials)-1].result
	maxColumnBlockSize := math.Inf(-1)
	for _, col := range last.Columns {
		edge := col.ComputedBlockSize
		if d := col.DistanceToBlockEndFloats; !math.IsNaN(d) && !math.IsInf(d, 0) {
			edge = col.ComputedBlockSize - d + sizeStep
		}
		if edge > maxColumnBlockSize {
			maxColumnBlockSize = edge
		}
	}
	newEdge := maxColumnBlockSize - sizeStep
	if newEdge < container.BlockSize() {
		container.SetBlockSize(newEdge)
	} else {
		container.SetBlockSize(container.BlockSize() - sizeStep)
	}
	tracer().Debugf("reduced container block size to %.2f", container.BlockSize())
}
