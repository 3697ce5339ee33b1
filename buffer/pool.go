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
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/exp/slices"

	"github.com/fantom-foundation/bustub-go/common"
	"github.com/fantom-foundation/bustub-go/disk"
	"github.com/fantom-foundation/bustub-go/lru"
)

// Pool is a fixed-size buffer pool: poolSize frames shared across however
// many pages the caller wants resident, backed by a disk.DiskManager for
// pages that don't fit and an lru.KReplacer for choosing who gives way.
type Pool struct {
	mu sync.Mutex

	frames    []*Frame
	pageTable map[disk.PageID]lru.FrameID
	freeList  []lru.FrameID
	replacer  *lru.KReplacer
	disk      disk.DiskManager
}

// NewPool creates a pool of poolSize frames, using an LRU-K replacer with
// the given k, backed by dm for pages that must be read from or written to
// durable storage.
func NewPool(poolSize, replacerK int, dm disk.DiskManager) *Pool {
	frames := make([]*Frame, poolSize)
	freeList := make([]lru.FrameID, poolSize)
	for i := range frames {
		frames[i] = &Frame{pageID: disk.InvalidPageID}
		freeList[i] = lru.FrameID(i)
	}

	return &Pool{
		frames:    frames,
		pageTable: make(map[disk.PageID]lru.FrameID),
		freeList:  freeList,
		replacer:  lru.NewKReplacer(poolSize, replacerK),
		disk:      dm,
	}
}

// Size returns the number of frames this pool manages.
func (p *Pool) Size() int {
	return len(p.frames)
}

// findVictim returns a frame id ready to host a new page: one from the
// free list if any remain, otherwise one evicted via the replacer (with
// its dirty contents written back first). ok is false only when the pool
// is full and every resident frame is pinned.
func (p *Pool) findVictim() (lru.FrameID, bool, error) {
	if n := len(p.freeList); n > 0 {
		id := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return id, true, nil
	}

	frameID, ok := p.replacer.Evict()
	if !ok {
		return 0, false, nil
	}

	frame := p.frames[frameID]
	if frame.dirty {
		if err := p.disk.WritePage(frame.pageID, frame.Data()); err != nil {
			return 0, false, fmt.Errorf("buffer: write back page %d: %w", frame.pageID, err)
		}
		frame.dirty = false
	}
	delete(p.pageTable, frame.pageID)
	return frameID, true, nil
}

// NewPage allocates a brand-new page, pins it into a frame, and returns
// its id. It returns disk.InvalidPageID when the pool is full and no
// frame can be evicted.
func (p *Pool) NewPage() (disk.PageID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameID, ok, err := p.findVictim()
	if err != nil {
		return disk.InvalidPageID, err
	}
	if !ok {
		return disk.InvalidPageID, nil
	}

	pageID := p.disk.AllocatePage()
	p.pageTable[pageID] = frameID

	frame := p.frames[frameID]
	frame.pageID = pageID
	frame.dirty = false
	frame.pinCount = 1
	for i := range frame.data {
		frame.data[i] = 0
	}

	if err := p.replacer.RecordAccess(frameID); err != nil {
		return disk.InvalidPageID, err
	}
	if err := p.replacer.SetEvictable(frameID, false); err != nil {
		return disk.InvalidPageID, err
	}

	return pageID, nil
}

// FetchPage returns the frame holding pageID, pinning it, loading it from
// disk first if it was not already resident. It returns nil when the pool
// is full and no frame can be evicted.
func (p *Pool) FetchPage(pageID disk.PageID) (*Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if frameID, ok := p.pageTable[pageID]; ok {
		frame := p.frames[frameID]
		frame.pinCount++
		if err := p.replacer.RecordAccess(frameID); err != nil {
			return nil, err
		}
		if err := p.replacer.SetEvictable(frameID, false); err != nil {
			return nil, err
		}
		return frame, nil
	}

	frameID, ok, err := p.findVictim()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	p.pageTable[pageID] = frameID
	frame := p.frames[frameID]
	frame.pageID = pageID
	frame.pinCount = 1
	frame.dirty = false

	if err := p.disk.ReadPage(pageID, frame.Data()); err != nil {
		return nil, fmt.Errorf("buffer: read page %d: %w", pageID, err)
	}

	if err := p.replacer.SetEvictable(frameID, false); err != nil {
		return nil, err
	}
	if err := p.replacer.RecordAccess(frameID); err != nil {
		return nil, err
	}

	return frame, nil
}

// UnpinPage decrements pageID's pin count, marking the frame evictable
// once it reaches zero. isDirty is OR'd into the frame's dirty flag — it
// can only ever set it, never clear it. It returns false if pageID is not
// resident or is already unpinned.
func (p *Pool) UnpinPage(pageID disk.PageID, isDirty bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameID, ok := p.pageTable[pageID]
	if !ok {
		return false, nil
	}
	frame := p.frames[frameID]
	if frame.pinCount == 0 {
		return false, nil
	}

	frame.dirty = frame.dirty || isDirty
	frame.pinCount--
	if frame.pinCount == 0 {
		if err := p.replacer.SetEvictable(frameID, true); err != nil {
			return false, err
		}
	}
	return true, nil
}

// FlushPage writes pageID's frame contents to disk unconditionally and
// clears its dirty flag, without touching its pin state. It returns false
// for disk.InvalidPageID or a page that is not resident.
func (p *Pool) FlushPage(pageID disk.PageID) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pageID == disk.InvalidPageID {
		return false, nil
	}
	frameID, ok := p.pageTable[pageID]
	if !ok {
		return false, nil
	}

	frame := p.frames[frameID]
	if err := p.disk.WritePage(pageID, frame.Data()); err != nil {
		return false, fmt.Errorf("buffer: flush page %d: %w", pageID, err)
	}
	frame.dirty = false
	return true, nil
}

// FlushAllPages writes every dirty resident page to disk.
func (p *Pool) FlushAllPages() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, frame := range p.frames {
		if frame.dirty && frame.pageID != disk.InvalidPageID {
			if err := p.disk.WritePage(frame.pageID, frame.Data()); err != nil {
				return fmt.Errorf("buffer: flush page %d: %w", frame.pageID, err)
			}
			frame.dirty = false
		}
	}
	return nil
}

// DeletePage removes pageID from the pool and deallocates it on disk. It
// returns true if pageID is not resident (nothing to do), false if it is
// resident but pinned (cannot be deleted), and true after a successful
// deletion.
func (p *Pool) DeletePage(pageID disk.PageID) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	frameID, ok := p.pageTable[pageID]
	if !ok {
		return true, nil
	}

	frame := p.frames[frameID]
	if frame.pinCount != 0 {
		return false, nil
	}

	if frame.dirty {
		if err := p.disk.WritePage(pageID, frame.Data()); err != nil {
			return false, fmt.Errorf("buffer: write back page %d before delete: %w", pageID, err)
		}
	}

	delete(p.pageTable, pageID)
	frame.reset()

	if err := p.replacer.Remove(frameID); err != nil {
		return false, err
	}
	p.freeList = append(p.freeList, frameID)

	if err := p.disk.DeallocatePage(pageID); err != nil {
		return false, fmt.Errorf("buffer: deallocate page %d: %w", pageID, err)
	}
	return true, nil
}

// residentPageIDs returns the ids of all pages currently resident, sorted
// ascending. It exists for diagnostics and tests, not production code
// paths.
func (p *Pool) residentPageIDs() []disk.PageID {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make([]disk.PageID, 0, len(p.pageTable))
	for id := range p.pageTable {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// GetMemoryFootprint implements common.MemoryFootprintProvider.
func (p *Pool) GetMemoryFootprint() *common.MemoryFootprint {
	p.mu.Lock()
	defer p.mu.Unlock()

	var frame Frame
	framesSize := uintptr(len(p.frames)) * unsafe.Sizeof(frame)

	mf := common.NewMemoryFootprint(unsafe.Sizeof(*p))
	mf.AddChild("frames", common.NewMemoryFootprint(framesSize))
	mf.AddChild("replacer", p.replacer.GetMemoryFootprint())
	mf.AddChild("disk", p.disk.GetMemoryFootprint())
	return mf
}
