package floats

import (
	tp "github.com/xlab/treeprint"
)

// Dump renders the context subtree rooted at pfc as an ASCII tree, for
// debugging which float state travelled with which trial.
func (pfc *PageFloatLayoutContext) Dump() string {
	printer := tp.New()
	dumpContext(printer, pfc)
	return printer.String()
}

func dumpContext(printer tp.Tree, pfc *PageFloatLayoutContext) {
	if pfc == nil {
		return
	}
	if pfc.ChildCount() == 0 {
		printer.AddNode(pfc.String())
		return
	}
	branch := printer.AddBranch(pfc.String())
	for _, ch := range pfc.Children() {
		dumpContext(branch, ch)
	}
}
