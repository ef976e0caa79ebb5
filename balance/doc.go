/*
Package balance implements the column balancing search.

Balancing a column set means finding a container block size at which the
generated columns satisfy a policy selected by the CSS column-fill
property. The column generator is an external, expensive and possibly
asynchronous collaborator, so the search is organised as a strictly
sequential trial loop: a strategy resizes the container, the generator is
run exactly once, the outcome is scored with a penalty, and this repeats
until the strategy sees no way to improve. Only then is the best trial
selected (the search is exhaustive over the generated sequence, never an
early exit) and its visual content and page-float state are restored into
the live container.

Two strategies exist, chosen once by the factory New:

‣ the last-column strategy, for the terminal fragment of a flow (or a
fragment ending in a forced break), which must not leave a
disproportionately long trailing column. It grows the container from a
deliberate undershoot until the trailing-column constraint holds, then
shrinks it as far as the constraint allows.

‣ the non-last-column strategy, for column-fill value 'balance-all' on
mid-flow fragments, which minimizes the population variance of the column
block sizes. It only ever shrinks, starting from the natural size.

Each trial takes move-style ownership of the region's page-float child
contexts right after generation and gives them back exactly once (winning
trial) or never (losing trials, discarded wholesale). The container and
the float context are single-writer resources for the duration of one run;
callers must not touch them while BalanceColumns is in flight.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package balance

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'multicol.balance'.
func tracer() tracing.Trace {
	return tracing.Select("multicol.balance")
}
