package props

import (
	"github.com/npillmayer/tyse/core/dimen"
)

// UsedColumnCount computes the used number of columns for a multi-column
// container, given the resolved values of column-count and column-width
// and the container's available inline size. This is the pseudo-algorithm
// of CSS Multi-column Layout §3.4:
//
//	column-width auto             →  column-count
//	column-count auto             →  floor((available + gap) / (width + gap))
//	neither auto                  →  the minimum of both
//
// The result is always at least 1. Both properties 'auto' collapses to a
// single column.
func UsedColumnCount(available, gap dimen.DU, count CountT, width WidthT) int {
	var w dimen.DU
	var n int
	if width.Just(&w) && w > 0 {
		fit := int((available + gap) / (w + gap))
		if fit < 1 {
			fit = 1
		}
		if count.Just(&n) && n >= 1 && n < fit {
			fit = n
		}
		return fit
	}
	if count.Just(&n) && n >= 1 {
		return n
	}
	return 1
}
