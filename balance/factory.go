package balance

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/multicol"
	"github.com/npillmayer/multicol/floats"
	"github.com/npillmayer/multicol/props"
	"github.com/npillmayer/multicol/region"
)

// Params collects what the factory needs to decide whether, and how, a
// column set is to be balanced.
type Params struct {
	ColumnCount  int                             // target number of columns, ≥ 1
	Fill         props.Fill                      // used value of column-fill
	Generator    multicol.ColumnGenerator        // re-runs column generation at the current container size
	FloatContext *floats.PageFloatLayoutContext  // live page-float context of the region
	Container    *region.Container               // region the column set is laid out into
	Columns      []*multicol.Column              // columns of the initial generation attempt
	FlowPosition multicol.FlowPosition           // nil means the flow is exhausted
	Tolerance    float64                         // trailing-column slack; ≤ 0 selects DefaultLastColumnTolerance
}

// New decides whether balancing applies and selects the strategy. It
// returns nil when the column set is to be left as generated: column-fill
// 'auto' never balances, and 'balance' balances only the terminal fragment
// of a flow.
//
// The container's block size is captured here and restored by
// BalanceColumns, so New must be called before any trial resizing.
func New(p Params) *Balancer {
	if p.Fill == props.FillAuto {
		return nil
	}
	columnCount := p.ColumnCount
	if columnCount < 1 {
		columnCount = 1
	}
	noMoreContent := p.FlowPosition == nil || p.FlowPosition.Remaining() == 0
	forcedBreak := len(p.Columns) > 0 && p.Columns[len(p.Columns)-1].Break != multicol.BreakNone
	b := &Balancer{
		gen:               p.Generator,
		flcx:              p.FloatContext,
		container:         p.Container,
		originalBlockSize: p.Container.BlockSize(),
	}
	switch {
	case noMoreContent || forcedBreak:
		tolerance := p.Tolerance
		if tolerance <= 0 {
			tolerance = DefaultLastColumnTolerance
		}
		b.strat = &lastColumnBalancer{
			container:         p.Container,
			originalBlockSize: b.originalBlockSize,
			columnCount:       columnCount,
			tolerance:         tolerance,
		}
	case p.Fill == props.FillBalanceAll:
		b.strat = &nonLastColumnBalancer{container: p.Container}
	default:
		// column-fill: balance, mid-flow, no forced break. Nothing to do.
		return nil
	}
	return b
}
