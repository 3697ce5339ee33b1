// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package buffer implements the fixed-size buffer pool: a bounded set of
// in-memory frames backed by a disk.DiskManager, with pin counts and an
// LRU-K replacement policy deciding which resident page gives way when the
// pool is full. This package has no notion of page content beyond raw
// bytes — it implements the memory-management core, not any access method
// built on top of it.
package buffer

import (
	"sync"

	"github.com/fantom-foundation/bustub-go/disk"
)

// Frame is a single in-memory slot that can hold the contents of one page.
//
// latch guards the frame's content once a guard has been handed out to a
// caller; it is distinct from the pool's own latch, which only protects
// the page table and replacer bookkeeping — matching the original's
// discipline of acquiring the page's own RLatch/WLatch after FetchPage
// returns, outside the pool's latch.
type Frame struct {
	latch sync.RWMutex

	data     [disk.PageSize]byte
	pageID   disk.PageID
	pinCount int
	dirty    bool
}

// Data returns the frame's raw page contents.
func (f *Frame) Data() []byte {
	return f.data[:]
}

// PageID is the identity of the page currently resident in this frame.
// It is disk.InvalidPageID when the frame holds no page.
func (f *Frame) PageID() disk.PageID {
	return f.pageID
}

// PinCount is the number of outstanding references preventing eviction.
func (f *Frame) PinCount() int {
	return f.pinCount
}

// IsDirty reports whether the frame's contents differ from what is on
// disk for its page.
func (f *Frame) IsDirty() bool {
	return f.dirty
}

func (f *Frame) reset() {
	for i := range f.data {
		f.data[i] = 0
	}
	f.pageID = disk.InvalidPageID
	f.pinCount = 0
	f.dirty = false
}
