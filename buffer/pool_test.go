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
	"testing"

	"github.com/fantom-foundation/bustub-go/disk"
)

// TestPool_UnpinThenEvict reproduces: pool_size=3, create pages A,B,C with
// NewPage (pinned); NewPage fails while all three are pinned; unpinning A allows
// the next NewPage to succeed by reusing A's frame, without writing A back
// (it was never marked dirty).
func TestPool_UnpinThenEvict(t *testing.T) {
	rm := disk.NewRecordingManager()
	pool := NewPool(3, 2, rm)

	a, err := pool.NewPage()
	mustNoErr(t, err)
	b, err := pool.NewPage()
	mustNoErr(t, err)
	c, err := pool.NewPage()
	mustNoErr(t, err)

	if d, err := pool.NewPage(); err != nil || d != disk.InvalidPageID {
		t.Fatalf("NewPage with all frames pinned = (%d, %v), want (InvalidPageID, nil)", d, err)
	}

	ok, err := pool.UnpinPage(a, false)
	mustNoErr(t, err)
	if !ok {
		t.Fatalf("UnpinPage(a) = false, want true")
	}

	newID, err := pool.NewPage()
	mustNoErr(t, err)
	if newID == disk.InvalidPageID {
		t.Fatalf("NewPage after unpinning a should succeed")
	}

	if rm.WriteCount(a) != 0 {
		t.Fatalf("WriteCount(a) = %d, want 0 (a was never dirty)", rm.WriteCount(a))
	}

	_, _ = b, c
}

// TestPool_DirtyEviction reproduces: pool_size=1; NewPage returns P, write
// "hello", UnpinPage(P, dirty=true); NewPage returns Q. Exactly one
// WritePage(P, ...) is observed before P is displaced.
func TestPool_DirtyEviction(t *testing.T) {
	rm := disk.NewRecordingManager()
	pool := NewPool(1, 2, rm)

	p, err := pool.NewPage()
	mustNoErr(t, err)

	frame, err := pool.FetchPage(p)
	mustNoErr(t, err)
	copy(frame.Data(), []byte("hello"))
	if _, err := pool.UnpinPage(p, false); err != nil {
		t.Fatalf("UnpinPage: %v", err)
	}
	if ok, err := pool.UnpinPage(p, true); err != nil || !ok {
		t.Fatalf("UnpinPage(dirty) = (%v, %v), want (true, nil)", ok, err)
	}

	q, err := pool.NewPage()
	mustNoErr(t, err)
	if q == disk.InvalidPageID {
		t.Fatalf("NewPage should evict P and succeed")
	}

	if got := rm.WriteCount(p); got != 1 {
		t.Fatalf("WriteCount(p) = %d, want 1", got)
	}
	writes := rm.Writes()
	if len(writes) != 1 || string(writes[0].Data.ToBytes()[:5]) != "hello" {
		t.Fatalf("write-back did not carry the dirty contents")
	}
}

// TestPool_FlushSemantics reproduces: FlushPage(P) on a dirty resident
// page clears is_dirty but leaves pin state unchanged; FlushPage of
// disk.InvalidPageID returns false.
func TestPool_FlushSemantics(t *testing.T) {
	rm := disk.NewRecordingManager()
	pool := NewPool(2, 2, rm)

	p, err := pool.NewPage()
	mustNoErr(t, err)
	frame, err := pool.FetchPage(p)
	mustNoErr(t, err)
	frame.dirty = true
	pinBefore := frame.PinCount()

	ok, err := pool.FlushPage(p)
	mustNoErr(t, err)
	if !ok {
		t.Fatalf("FlushPage(p) = false, want true")
	}
	if frame.IsDirty() {
		t.Fatalf("frame still dirty after FlushPage")
	}
	if frame.PinCount() != pinBefore {
		t.Fatalf("FlushPage changed pin count: before=%d after=%d", pinBefore, frame.PinCount())
	}

	if ok, err := pool.FlushPage(disk.InvalidPageID); err != nil || ok {
		t.Fatalf("FlushPage(InvalidPageID) = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestPool_DeletePageAbsentReturnsTrue(t *testing.T) {
	rm := disk.NewRecordingManager()
	pool := NewPool(2, 2, rm)

	ok, err := pool.DeletePage(disk.PageID(999))
	mustNoErr(t, err)
	if !ok {
		t.Fatalf("DeletePage of absent page = false, want true")
	}
}

func TestPool_DeletePagePinnedFails(t *testing.T) {
	rm := disk.NewRecordingManager()
	pool := NewPool(2, 2, rm)

	p, err := pool.NewPage()
	mustNoErr(t, err)

	ok, err := pool.DeletePage(p)
	mustNoErr(t, err)
	if ok {
		t.Fatalf("DeletePage of pinned page = true, want false")
	}
}

func TestPool_DeletePageFreesFrame(t *testing.T) {
	rm := disk.NewRecordingManager()
	pool := NewPool(1, 2, rm)

	p, err := pool.NewPage()
	mustNoErr(t, err)
	if _, err := pool.UnpinPage(p, false); err != nil {
		t.Fatalf("UnpinPage: %v", err)
	}

	ok, err := pool.DeletePage(p)
	mustNoErr(t, err)
	if !ok {
		t.Fatalf("DeletePage = false, want true")
	}

	q, err := pool.NewPage()
	mustNoErr(t, err)
	if q == disk.InvalidPageID {
		t.Fatalf("pool should have a free frame after DeletePage")
	}
}

// TestPool_ResidentPageIDsBijection checks that once all four frames hold a
// new page, all four pages are resident and the free list is empty.
func TestPool_ResidentPageIDsBijection(t *testing.T) {
	rm := disk.NewRecordingManager()
	pool := NewPool(4, 2, rm)

	ids := make([]disk.PageID, 0, 4)
	for i := 0; i < 4; i++ {
		id, err := pool.NewPage()
		mustNoErr(t, err)
		ids = append(ids, id)
	}

	resident := pool.residentPageIDs()
	if len(resident) != 4 {
		t.Fatalf("residentPageIDs() len = %d, want 4", len(resident))
	}
	if len(pool.freeList) != 0 {
		t.Fatalf("freeList should be empty once all frames are resident, got %d", len(pool.freeList))
	}

	for _, id := range ids {
		if _, err := pool.UnpinPage(id, false); err != nil {
			t.Fatalf("UnpinPage: %v", err)
		}
	}
}

// TestWriteGuard_UnpinAlwaysDirties confirms a caller that writes through a
// WriteGuard's Data() and unpins without ever calling MarkDirty still gets
// a write-back: the guard, not the caller, is responsible for the dirty
// flag.
func TestWriteGuard_UnpinAlwaysDirties(t *testing.T) {
	rm := disk.NewRecordingManager()
	pool := NewPool(1, 2, rm)

	p, err := pool.NewPage()
	mustNoErr(t, err)
	if _, err := pool.UnpinPage(p, false); err != nil {
		t.Fatalf("UnpinPage: %v", err)
	}

	g, err := pool.FetchPageWrite(p)
	mustNoErr(t, err)
	if g == nil {
		t.Fatalf("FetchPageWrite returned nil")
	}
	copy(g.Data(), []byte("hello"))
	g.Unpin()

	q, err := pool.NewPage()
	mustNoErr(t, err)
	if q == disk.InvalidPageID {
		t.Fatalf("NewPage should evict p and succeed")
	}

	if got := rm.WriteCount(p); got != 1 {
		t.Fatalf("WriteCount(p) = %d, want 1 (WriteGuard.Unpin should always dirty the page)", got)
	}
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
