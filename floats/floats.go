package floats

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'multicol.floats'.
func tracer() tracing.Trace {
	return tracing.Select("multicol.floats")
}

/*
Page floats are tracked in a tree of layout contexts: one context per
region/flow nesting level. During column balancing, the child contexts of a
region's context change hands a lot: each trial of the balancer takes them
out of the live tree and stores them with the trial's layout result. We
therefore enforce a strict move discipline: a context subtree is attached
to at most one parent (i.e., one trial or the live tree) at any instant.
*/

// PageFloat is one page float anchored at a layout context: an element
// floated with page/column-level anchoring rules rather than line-level
// ones.
type PageFloat struct {
	ID        string  // identifies the float's source element
	BlockSize float64 // block-axis extent the float occupies
}

// PageFloatLayoutContext is a node in the tree of page-float state. Each
// context records the floats anchored at its level and owns a
// mutex-protected slice of child contexts.
type PageFloatLayoutContext struct {
	FlowName string // name of the flow this context belongs to
	parent   *PageFloatLayoutContext
	children childrenSlice
	floats   []PageFloat
}

// NewContext creates a free-standing page-float layout context.
func NewContext(flowName string) *PageFloatLayoutContext {
	return &PageFloatLayoutContext{FlowName: flowName}
}

func (pfc *PageFloatLayoutContext) String() string {
	return fmt.Sprintf("(FloatContext %q #f=%d #ch=%d)", pfc.FlowName,
		len(pfc.floats), pfc.ChildCount())
}

// NewChild creates a child context and attaches it to this context.
//
// This operation is concurrency-safe.
func (pfc *PageFloatLayoutContext) NewChild(flowName string) *PageFloatLayoutContext {
	ch := NewContext(flowName)
	pfc.children.add(ch, pfc)
	return ch
}

// AddFloat records a page float as anchored at this context.
func (pfc *PageFloatLayoutContext) AddFloat(f PageFloat) {
	pfc.floats = append(pfc.floats, f)
}

// Floats returns the page floats anchored at this context (not including
// floats of child contexts).
func (pfc *PageFloatLayoutContext) Floats() []PageFloat {
	fs := make([]PageFloat, len(pfc.floats))
	copy(fs, pfc.floats)
	return fs
}

// Parent returns the context this context is attached to, or nil for a
// detached context and for the root of the live tree.
func (pfc *PageFloatLayoutContext) Parent() *PageFloatLayoutContext {
	return pfc.parent
}

// ChildCount returns the number of attached child contexts
// (concurrency-safe).
func (pfc *PageFloatLayoutContext) ChildCount() int {
	return pfc.children.length()
}

// Children returns a slice with the attached child contexts.
func (pfc *PageFloatLayoutContext) Children() []*PageFloatLayoutContext {
	return pfc.children.asSlice()
}

// DetachChildren moves all child contexts out of this context and returns
// them. The returned slice is never nil, so that "has been detached into"
// remains distinguishable from "was never detached". After the call the
// children carry no parent and this context has none of them.
//
// This operation is concurrency-safe.
func (pfc *PageFloatLayoutContext) DetachChildren() []*PageFloatLayoutContext {
	children := pfc.children.detach()
	tracer().Debugf("detached %d float context(s) from %v", len(children), pfc)
	return children
}

// AttachChildren re-attaches previously detached child contexts. Attaching
// a context that is still attached elsewhere violates the single-owner
// discipline and panics: it indicates that two trials share float state.
//
// This operation is concurrency-safe.
func (pfc *PageFloatLayoutContext) AttachChildren(children []*PageFloatLayoutContext) {
	for _, ch := range children {
		if ch == nil {
			continue
		}
		if ch.parent != nil {
			panic(fmt.Sprintf("floats: context %v is already attached", ch))
		}
		pfc.children.add(ch, pfc)
	}
	tracer().Debugf("attached %d float context(s) to %v", len(children), pfc)
}

// --- Concurrency-safe slice of child contexts ------------------------------

type childrenSlice struct {
	sync.RWMutex
	slice []*PageFloatLayoutContext
}

func (chs *childrenSlice) length() int {
	chs.RLock()
	defer chs.RUnlock()
	return len(chs.slice)
}

func (chs *childrenSlice) add(child, parent *PageFloatLayoutContext) {
	if child == nil {
		return
	}
	chs.Lock()
	defer chs.Unlock()
	chs.slice = append(chs.slice, child)
	child.parent = parent
}

func (chs *childrenSlice) detach() []*PageFloatLayoutContext {
	chs.Lock()
	defer chs.Unlock()
	children := chs.slice
	chs.slice = nil
	for _, ch := range children {
		ch.parent = nil
	}
	if children == nil {
		children = []*PageFloatLayoutContext{}
	}
	return children
}

func (chs *childrenSlice) asSlice() []*PageFloatLayoutContext {
	chs.RLock()
	defer chs.RUnlock()
	children := make([]*PageFloatLayoutContext, len(chs.slice))
	copy(children, chs.slice)
	return children
}
