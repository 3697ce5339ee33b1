// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package lru implements the LRU-K frame replacement policy: a frame is
// promoted into a "hot" list only after it has been accessed k times, and
// ties within a list are broken by least-recently-used order. Frames that
// have not yet reached k accesses are tracked in a separate "cold" history
// list and evicted ahead of any hot frame.
package lru

import (
	"container/list"
	"fmt"
	"sync"
	"unsafe"

	"github.com/fantom-foundation/bustub-go/common"
)

// FrameID identifies a slot in a buffer pool's frame array.
type FrameID int

// ErrOutOfRange is returned when a frame id does not fit within the
// replacer's configured capacity.
const ErrOutOfRange common.ConstError = "lru: frame id out of range"

// entry is the bookkeeping the replacer keeps per tracked frame.
type entry struct {
	frame      FrameID
	useCount   int
	accessible bool
	// elem points at this frame's node in whichever of history/cache it
	// currently lives in; nil when the frame has never been recorded.
	elem *list.Element
	// inCache is true once the frame has been promoted out of history.
	inCache bool
}

// KReplacer implements the LRU-K eviction policy over a fixed number of
// frame slots numbered 0..numFrames-1.
//
// history holds frames with fewer than k recorded accesses, ordered by
// recency of first-ever access (front = most recent). cache holds frames
// with k or more accesses, ordered by recency of most recent access
// (front = most recent). Evict always prefers the least-recently-used,
// still-accessible frame in history over any frame in cache.
type KReplacer struct {
	mu sync.Mutex

	numFrames int
	k         int

	history *list.List // of FrameID, cold frames (use_count < k)
	cache   *list.List // of FrameID, hot frames (use_count >= k)

	entries  map[FrameID]*entry
	currSize int
}

// NewKReplacer creates a replacer tracking up to numFrames frames, promoting
// a frame to the hot list on its k-th recorded access.
func NewKReplacer(numFrames, k int) *KReplacer {
	return &KReplacer{
		numFrames: numFrames,
		k:         k,
		history:   list.New(),
		cache:     list.New(),
		entries:   make(map[FrameID]*entry),
	}
}

func (r *KReplacer) checkRange(frameID FrameID) error {
	if frameID < 0 || int(frameID) >= r.numFrames {
		return fmt.Errorf("%w: %d (numFrames=%d)", ErrOutOfRange, frameID, r.numFrames)
	}
	return nil
}

func (r *KReplacer) entryFor(frameID FrameID) *entry {
	e, ok := r.entries[frameID]
	if !ok {
		e = &entry{frame: frameID}
		r.entries[frameID] = e
	}
	return e
}

// RecordAccess records that frameID has been accessed, advancing its use
// count and, on the k-th access, promoting it from history into cache.
func (r *KReplacer) RecordAccess(frameID FrameID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkRange(frameID); err != nil {
		return err
	}

	e := r.entryFor(frameID)
	e.useCount++

	switch {
	case e.useCount == r.k:
		if e.elem != nil && !e.inCache {
			r.history.Remove(e.elem)
		}
		e.elem = r.cache.PushFront(frameID)
		e.inCache = true
	case e.useCount > r.k:
		if e.elem != nil {
			r.cache.Remove(e.elem)
		}
		e.elem = r.cache.PushFront(frameID)
		e.inCache = true
	default:
		if e.elem == nil {
			e.elem = r.history.PushFront(frameID)
		}
	}

	return nil
}

// SetEvictable marks frameID as a candidate for eviction (or not). Calling
// it on a frame that has never been recorded via RecordAccess is a no-op.
func (r *KReplacer) SetEvictable(frameID FrameID, evictable bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkRange(frameID); err != nil {
		return err
	}

	e, ok := r.entries[frameID]
	if !ok || e.useCount == 0 {
		return nil
	}

	if e.accessible && !evictable {
		r.currSize--
	}
	if !e.accessible && evictable {
		r.currSize++
	}
	e.accessible = evictable
	return nil
}

// Evict removes and returns the frame the policy selects for replacement:
// the least-recently-used accessible frame in history if one exists,
// otherwise the least-recently-used accessible frame in cache.
func (r *KReplacer) Evict() (FrameID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if frameID, ok := r.evictFrom(r.history); ok {
		return frameID, true
	}
	return r.evictFrom(r.cache)
}

// evictFrom scans l from back (oldest) to front (newest) for the first
// accessible frame, removes its bookkeeping, and returns it.
func (r *KReplacer) evictFrom(l *list.List) (FrameID, bool) {
	for el := l.Back(); el != nil; el = el.Prev() {
		frameID := el.Value.(FrameID)
		e := r.entries[frameID]
		if e == nil || !e.accessible {
			continue
		}
		l.Remove(el)
		delete(r.entries, frameID)
		r.currSize--
		return frameID, true
	}
	return 0, false
}

// Remove erases an evictable frame's history entirely. Removing a frame
// that is not evictable (or was never recorded) is a no-op.
func (r *KReplacer) Remove(frameID FrameID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkRange(frameID); err != nil {
		return err
	}

	e, ok := r.entries[frameID]
	if !ok || !e.accessible {
		return nil
	}

	if e.inCache {
		r.cache.Remove(e.elem)
	} else {
		r.history.Remove(e.elem)
	}
	delete(r.entries, frameID)
	r.currSize--
	return nil
}

// Size returns the number of currently evictable frames.
func (r *KReplacer) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currSize
}

// GetMemoryFootprint reports the approximate memory consumed by the
// replacer's bookkeeping structures.
func (r *KReplacer) GetMemoryFootprint() *common.MemoryFootprint {
	r.mu.Lock()
	defer r.mu.Unlock()

	var e entry
	perEntry := unsafe.Sizeof(e)
	entries := uintptr(len(r.entries)) * (perEntry + unsafe.Sizeof(FrameID(0)))

	mf := common.NewMemoryFootprint(unsafe.Sizeof(*r))
	mf.AddChild("entries", common.NewMemoryFootprint(entries))
	return mf
}
