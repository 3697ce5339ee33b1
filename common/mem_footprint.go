// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"fmt"
	"sort"
	"strings"
)

// MemoryFootprint describes the memory consumption of a database structure
// as a tree: a byte value for the structure itself, plus named children for
// its sub-components.
type MemoryFootprint struct {
	value    uintptr
	note     string
	children map[string]*MemoryFootprint
}

// NewMemoryFootprint creates a new MemoryFootprint instance for a database structure
func NewMemoryFootprint(value uintptr) *MemoryFootprint {
	return &MemoryFootprint{
		value:    value,
		children: make(map[string]*MemoryFootprint),
	}
}

// AddChild allows to attach a MemoryFootprint of the database structure subcomponent
func (mf *MemoryFootprint) AddChild(name string, child *MemoryFootprint) {
	mf.children[name] = child
}

// SetNote attaches a free-form comment to be printed alongside this node,
// e.g. a cache hit ratio.
func (mf *MemoryFootprint) SetNote(note string) {
	mf.note = note
}

// Value provides the amount of bytes consumed by the database structure (excluding its subcomponents)
func (mf *MemoryFootprint) Value() uintptr {
	return mf.value
}

// Total provides the amount of bytes consumed by the database structure including all its subcomponents
func (mf *MemoryFootprint) Total() uintptr {
	includedObjects := make(map[*MemoryFootprint]bool)
	return includeObjectIntoTotal(mf, includedObjects)
}

func includeObjectIntoTotal(mf *MemoryFootprint, includedObjects map[*MemoryFootprint]bool) (total uintptr) {
	if mf == nil {
		return 0
	}
	if _, exists := includedObjects[mf]; exists {
		return 0
	}
	includedObjects[mf] = true
	total = mf.value
	for _, child := range mf.children {
		total += includeObjectIntoTotal(child, includedObjects)
	}
	return total
}

// ToString provides the memory footprint as a tree summary in a string
// The name param allows to give a name to the root of the tree.
func (mf *MemoryFootprint) ToString(name string) (str string, err error) {
	var sb strings.Builder
	err = mf.toStringBuilder(&sb, name)
	return sb.String(), err
}

// String renders the footprint rooted at "." for use with fmt's %v/%s verbs.
func (mf *MemoryFootprint) String() string {
	str, err := mf.ToString(".")
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}
	return str
}

// toStringBuilder prints children before self, in alphabetical order, so the
// tree reads bottom-up like a directory listing.
func (mf *MemoryFootprint) toStringBuilder(sb *strings.Builder, path string) error {
	names := make([]string, 0, len(mf.children))
	for name := range mf.children {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		child := mf.children[name]
		if child == nil {
			continue
		}
		if err := child.toStringBuilder(sb, path+"/"+name); err != nil {
			return err
		}
	}

	if err := memoryAmountToString(sb, mf.Total()); err != nil {
		return err
	}
	sb.WriteRune(' ')
	sb.WriteString(path)
	if mf.note != "" {
		sb.WriteRune(' ')
		sb.WriteString(mf.note)
	}
	sb.WriteRune('\n')
	return nil
}

// memoryAmountToString renders a byte count as a human-readable, fixed-width
// size (e.g. "  10.0 KB"), scaling by 1024 until the value drops below it.
func memoryAmountToString(sb *strings.Builder, bytes uintptr) error {
	units := [...]string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}
	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit+1 < len(units) {
		value /= 1024
		unit++
	}
	_, err := fmt.Fprintf(sb, "%6.1f %2s", value, units[unit])
	return err
}
