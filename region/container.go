package region

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/multicol"
)

// Container is the mutable handle for the region a column set is laid out
// into. It is owned by the surrounding engine; the balancer borrows it for
// the duration of one run and is the single writer during that time.
//
// Column length is measured along the block axis, which depends on the
// writing mode: the vertical extent in horizontal writing, the horizontal
// extent in vertical writing. All block-size reads and writes must go
// through BlockSize/SetBlockSize so that writing-mode correctness stays in
// one place.
type Container struct {
	Vertical   bool    // vertical writing mode?
	Width      float64 // inline extent (horizontal writing) or block extent (vertical)
	Height     float64
	OriginX    float64
	OriginY    float64
	OuterWidth float64 // outer x-extent of the region, fixed by the surrounding layout
	element    multicol.Element
}

// NewContainer wraps a visual element into a container handle.
func NewContainer(el multicol.Element) *Container {
	return &Container{element: el}
}

// Element returns the container's visual handle.
func (c *Container) Element() multicol.Element {
	return c.element
}

// BlockSize returns the container's extent along the block axis.
func (c *Container) BlockSize() float64 {
	if c.Vertical {
		return c.Width
	}
	return c.Height
}

// SetBlockSize resizes the container along the block axis. In vertical
// writing the block axis anchors at the region's right edge, so the
// x-origin has to follow the resize.
func (c *Container) SetBlockSize(size float64) {
	if c.Vertical {
		c.Width = size
		c.OriginX = c.OuterWidth - c.Width
	} else {
		c.Height = size
	}
}

// Clear detaches the container's visual children without destroying them.
// The children stay alive as long as a layout result references them.
func (c *Container) Clear() {
	if c.element != nil {
		c.element.RemoveChildren()
	}
}
