package balance

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"context"

	"github.com/npillmayer/multicol"
	"github.com/npillmayer/multicol/floats"
	"github.com/npillmayer/multicol/region"
)

// sizeStep is the smallest step, in layout units, by which a container is
// resized during the shrink phase. It guarantees progress and thereby
// termination of the shrink loop.
const sizeStep = 1.0

// maxTrials caps the trial loop. Well-behaved strategies terminate far
// below this; the cap only guards against a pathological, non-monotonic
// column generator.
const maxTrials = 1024

// trial is one scored attempt at generating a column set at a specific
// container block size. Trials are immutable once appended; the trial list
// of a run is append-only.
type trial struct {
	result  *multicol.ColumnLayoutResult
	penalty float64
}

// strategy is the policy part of the balancing search. calculatePenalty
// scores a candidate (math.Inf(1) rejects it), hasNextCandidate decides
// whether another trial is worthwhile, and updateCondition resizes the
// container so that the next trial differs from the previous one.
type strategy interface {
	preBalance(result *multicol.ColumnLayoutResult)
	calculatePenalty(result *multicol.ColumnLayoutResult) float64
	hasNextCandidate(trials []trial) bool
	updateCondition(trials []trial)
}

// Balancer drives the balancing search for one column set. Balancers are
// created by New, live for a single call to BalanceColumns, and are then
// discarded; nothing persists across runs.
type Balancer struct {
	gen               multicol.ColumnGenerator
	flcx              *floats.PageFloatLayoutContext
	container         *region.Container
	originalBlockSize float64
	strat             strategy
}

// BalanceColumns runs the search, starting from an initial generation
// attempt the caller has already made at the current container size. It
// returns the best-scoring result, with its column elements re-appended to
// the container and its page-float state re-attached to the live context.
// The container's block size is restored to its pre-run value in any case.
//
// An error from the column generator aborts the run and propagates
// unchanged; there is no retry and no partial result.
func (b *Balancer) BalanceColumns(ctx context.Context, result *multicol.ColumnLayoutResult) (
	*multicol.ColumnLayoutResult, error) {
	//
	defer b.container.SetBlockSize(b.originalBlockSize)
	b.strat.preBalance(result)
	b.adoptResult(result)
	trials := []trial{{result: result, penalty: b.strat.calculatePenalty(result)}}
	for len(trials) < maxTrials && b.strat.hasNextCandidate(trials) {
		b.strat.updateCondition(trials)
		tracer().Debugf("balancing trial #%d at block size %.2f", len(trials),
			b.container.BlockSize())
		next, err := b.gen(ctx)
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}
		b.adoptResult(next)
		trials = append(trials, trial{result: next, penalty: b.strat.calculatePenalty(next)})
	}
	best := pickBest(trials)
	b.restore(best.result)
	return best.result, nil
}

// adoptResult moves the live page-float state into a freshly generated
// result and clears the container, so that the trial exclusively owns what
// it was generated with.
func (b *Balancer) adoptResult(result *multicol.ColumnLayoutResult) {
	result.FloatContexts = b.flcx.DetachChildren()
	b.container.Clear()
}

// pickBest returns the earliest trial achieving the smallest penalty. Ties
// keep the first candidate, so a run in which every candidate scored
// math.Inf(1) falls back to the untouched initial result.
func pickBest(trials []trial) trial {
	best := trials[0]
	for _, tr := range trials[1:] {
		if tr.penalty < best.penalty {
			best = tr
		}
	}
	return best
}

// restore puts the winning result's column elements back into the
// container and re-attaches its page-float state to the live context.
func (b *Balancer) restore(result *multicol.ColumnLayoutResult) {
	if result.FloatContexts == nil {
		// Every trial passes through adoptResult, so this is a caller or
		// integration bug, not a data condition.
		panic("balance: winning trial carries no page-float state")
	}
	if parent := b.container.Element(); parent != nil {
		for _, col := range result.Columns {
			if col.Element != nil {
				parent.AppendChild(col.Element)
			}
		}
	}
	b.flcx.AttachChildren(result.FloatContexts)
	tracer().Debugf("balanced column set restored, %d column(s)", len(result.Columns))
}
