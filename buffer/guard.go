// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package buffer

import (
	"sync"

	"github.com/fantom-foundation/bustub-go/disk"
)

// BasicGuard owns one pin on a page; it unpins exactly once, however many
// times Unpin or Drop is called, and releases the frame's content latch it
// may be wrapped with (see ReadGuard/WriteGuard) at the same time.
type BasicGuard struct {
	pool    *Pool
	frame   *Frame
	pageID  disk.PageID
	once    sync.Once
	release func()
}

// newBasicGuard wraps an already-fetched frame. release, if non-nil, is
// called once alongside the unpin (used by ReadGuard/WriteGuard to drop
// their content latch).
func newBasicGuard(pool *Pool, frame *Frame, release func()) *BasicGuard {
	if frame == nil {
		return nil
	}
	return &BasicGuard{pool: pool, frame: frame, pageID: frame.PageID(), release: release}
}

// PageID returns the id of the guarded page.
func (g *BasicGuard) PageID() disk.PageID {
	return g.pageID
}

// Data returns the guarded frame's raw bytes. Callers holding only a
// BasicGuard (as opposed to a ReadGuard/WriteGuard) are responsible for
// their own synchronization if they mutate it concurrently with others.
func (g *BasicGuard) Data() []byte {
	return g.frame.Data()
}

// MarkDirty flags the underlying frame dirty, so it will be written back
// on eviction or flush.
func (g *BasicGuard) MarkDirty() {
	g.frame.dirty = true
}

// IsDirty reports the underlying frame's current dirty flag.
func (g *BasicGuard) IsDirty() bool {
	return g.frame.IsDirty()
}

// Unpin releases the pin this guard holds. It is idempotent: calling it
// (or Drop) more than once has no further effect.
func (g *BasicGuard) Unpin() {
	g.once.Do(func() {
		if g.release != nil {
			g.release()
		}
		_, _ = g.pool.UnpinPage(g.pageID, false)
	})
}

// Drop is an alias for Unpin, matching the release-on-scope-exit idiom
// (`defer guard.Drop()`).
func (g *BasicGuard) Drop() {
	g.Unpin()
}

// ReadGuard holds a shared (read) latch on the frame's content in addition
// to the pin a BasicGuard holds, so concurrent readers never observe a
// write in progress.
type ReadGuard struct {
	*BasicGuard
}

// WriteGuard holds an exclusive (write) latch on the frame's content in
// addition to the pin a BasicGuard holds. Unlike a bare BasicGuard, it
// always unpins with isDirty=true: a caller that writes through a
// WriteGuard's Data() is trusted to have dirtied the page, whether or not
// it also calls MarkDirty explicitly.
type WriteGuard struct {
	*BasicGuard
	once sync.Once
}

// Unpin releases the pin this guard holds, always marking the page dirty.
// It is idempotent: calling it (or Drop) more than once has no further
// effect.
func (g *WriteGuard) Unpin() {
	g.once.Do(func() {
		if g.release != nil {
			g.release()
		}
		_, _ = g.pool.UnpinPage(g.pageID, true)
	})
}

// Drop is an alias for Unpin, matching the release-on-scope-exit idiom
// (`defer guard.Drop()`).
func (g *WriteGuard) Drop() {
	g.Unpin()
}
