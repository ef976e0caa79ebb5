package props

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"

	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

// ErrIllegalFill flags a keyword which is not a value of column-fill.
var ErrIllegalFill = errors.New("not a column-fill keyword")

// Fill reflects the CSS column-fill property, which selects the balancing
// policy for a column set.
type Fill uint8

const (
	FillBalance    Fill = iota // balance the terminal fragment only; initial value
	FillAuto                   // fill columns sequentially, never balance
	FillBalanceAll             // balance every fragment of the flow
)

func (f Fill) String() string {
	switch f {
	case FillBalance:
		return "balance"
	case FillAuto:
		return "auto"
	case FillBalanceAll:
		return "balance-all"
	}
	return "?"
}

// ParseFill converts a column-fill keyword into a Fill value.
func ParseFill(keyword string) (Fill, error) {
	switch keyword {
	case "balance":
		return FillBalance, nil
	case "auto":
		return FillAuto, nil
	case "balance-all":
		return FillBalanceAll, nil
	}
	return FillBalance, ErrIllegalFill
}

// --- Option types for the multicol sizing properties ------------------------

const (
	kindNone    uint32 = 0
	kindAuto    uint32 = 0x0001
	kindJust    uint32 = 0x0002
	kindNormal  uint32 = 0x0003
	kindPercent uint32 = 0x0004
	kindMask    uint32 = 0x000f
)

/*
type CountT = Auto | Just n
type WidthT = Auto | JustDimen d
type GapT   = Normal | JustDimen d | Percentage p
*/

// CountT is an option type for the CSS column-count property.
type CountT struct {
	n     int
	flags uint32
}

// CountAuto creates a column-count of 'auto'.
func CountAuto() CountT {
	return CountT{flags: kindAuto}
}

// JustCount creates a column-count with a fixed value of n.
func JustCount(n int) CountT {
	return CountT{n: n, flags: kindJust}
}

// IsAuto denotes a column-count of 'auto'.
func (c CountT) IsAuto() bool {
	return c.flags&kindMask == kindAuto
}

// Just matches a fixed column-count, optionally writing it through n.
func (c CountT) Just(n *int) bool {
	if c.flags&kindMask != kindJust {
		return false
	}
	if n != nil {
		*n = c.n
	}
	return true
}

// WidthT is an option type for the CSS column-width property.
type WidthT struct {
	d     dimen.DU
	flags uint32
}

// WidthAuto creates a column-width of 'auto'.
func WidthAuto() WidthT {
	return WidthT{flags: kindAuto}
}

// JustWidth creates a column-width with a fixed length of d.
func JustWidth(d dimen.DU) WidthT {
	return WidthT{d: d, flags: kindJust}
}

// IsAuto denotes a column-width of 'auto'.
func (w WidthT) IsAuto() bool {
	return w.flags&kindMask == kindAuto
}

// Just matches a fixed column-width, optionally writing it through d.
func (w WidthT) Just(d *dimen.DU) bool {
	if w.flags&kindMask != kindJust {
		return false
	}
	if d != nil {
		*d = w.d
	}
	return true
}

// GapT is an option type for the CSS column-gap property.
type GapT struct {
	d     dimen.DU
	p     percent.Percent
	flags uint32
}

// GapNormal creates a column-gap of 'normal' (1em by definition).
func GapNormal() GapT {
	return GapT{flags: kindNormal}
}

// JustGap creates a column-gap with a fixed length of d.
func JustGap(d dimen.DU) GapT {
	return GapT{d: d, flags: kindJust}
}

// GapPercentage creates a column-gap with a %-relative value.
func GapPercentage(p percent.Percent) GapT {
	return GapT{p: p, flags: kindPercent}
}

// IsNormal denotes a column-gap of 'normal'.
func (g GapT) IsNormal() bool {
	return g.flags&kindMask == kindNormal
}

// Just matches a fixed column-gap, optionally writing it through d.
func (g GapT) Just(d *dimen.DU) bool {
	if g.flags&kindMask != kindJust {
		return false
	}
	if d != nil {
		*d = g.d
	}
	return true
}

// Percentage matches a %-relative column-gap, optionally writing it
// through p. Resolving the percentage against an inline size is up to the
// style layer.
func (g GapT) Percentage(p *percent.Percent) bool {
	if g.flags&kindMask != kindPercent {
		return false
	}
	if p != nil {
		*p = g.p
	}
	return true
}
