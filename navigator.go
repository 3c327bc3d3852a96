package main

import "time"

// Navigator is a stateful cursor over a DayIndex. It starts on the
// earliest day (or with no selection when the index is empty) and only
// moves on explicit navigation. Boundary moves and selecting a day absent
// from the index are silent no-ops - callers check HasPrev/HasNext first.
type Navigator struct {
	index *DayIndex
	pos   int // -1 means no selection; only terminal when the index is empty
}

// NewNavigator seeds a navigator on the index's earliest day.
func NewNavigator(index *DayIndex) *Navigator {
	nav := &Navigator{index: index, pos: -1}
	if index.Len() > 0 {
		nav.pos = 0
	}
	return nav
}

// CurrentDay returns the selected day, if any.
func (n *Navigator) CurrentDay() (time.Time, bool) {
	if n.pos < 0 {
		return time.Time{}, false
	}
	return n.index.At(n.pos), true
}

// HasPrev reports whether GoPrev would move.
func (n *Navigator) HasPrev() bool { return n.pos > 0 }

// HasNext reports whether GoNext would move.
func (n *Navigator) HasNext() bool { return n.pos >= 0 && n.pos < n.index.Len()-1 }

// GoPrev moves one day earlier; at the first day it does nothing.
func (n *Navigator) GoPrev() {
	if n.HasPrev() {
		n.pos--
	}
}

// GoNext moves one day later; at the last day it does nothing.
func (n *Navigator) GoNext() {
	if n.HasNext() {
		n.pos++
	}
}

// SelectDay jumps to an explicit day. Days absent from the index are
// ignored; returns whether the selection took effect.
func (n *Navigator) SelectDay(day time.Time) bool {
	i, ok := n.index.IndexOf(day)
	if !ok {
		return false
	}
	n.pos = i
	return true
}
