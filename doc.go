/*
Package multicol provides column balancing for CSS multi-column layout in
a paginated typesetting engine.

When a region of flowed content is split into a fixed number of columns,
the used value of the column-fill property may demand that the columns be
balanced: no column, especially the trailing one, should end up noticeably
longer than its siblings, or (for balance-all) the block sizes of all
columns should vary as little as possible. Finding a container block size
which satisfies such a policy is a search problem: column generation is an
expensive, possibly asynchronous operation owned by the surrounding layout
engine, so the balancer re-runs it at candidate sizes, scores every
candidate with a penalty, and restores the best one.

This root package holds the data model shared by the subpackages: the
measurement records produced by the column generator (Column,
ColumnLayoutResult), the opaque resumption markers of the flow
(LayoutPosition, FlowPosition), and the generator contract itself.
The search lives in package balance, the container handle in package
region, and the page-float bookkeeping in package floats.

Status

Stable. The balancing policies implemented are the two that CSS defines;
there is no plugin mechanism for further ones.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package multicol
