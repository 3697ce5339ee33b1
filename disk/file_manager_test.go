// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package disk

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestFileManager_WriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fm, err := NewFileManager(filepath.Join(dir, "pages.db"))
	if err != nil {
		t.Fatalf("NewFileManager: %v", err)
	}
	defer fm.Close()

	id := fm.AllocatePage()

	want := make([]byte, PageSize)
	copy(want, []byte("hello, page"))

	if err := fm.WritePage(id, want); err != nil {
		t.Fatalf("WritePage: %v", err)
	}

	got := make([]byte, PageSize)
	if err := fm.ReadPage(id, got); err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("ReadPage returned different bytes than written")
	}
}

func TestFileManager_ReadNeverWrittenPageZeroFills(t *testing.T) {
	dir := t.TempDir()
	fm, err := NewFileManager(filepath.Join(dir, "pages.db"))
	if err != nil {
		t.Fatalf("NewFileManager: %v", err)
	}
	defer fm.Close()

	id := fm.AllocatePage()
	out := make([]byte, PageSize)
	for i := range out {
		out[i] = 0xFF
	}
	if err := fm.ReadPage(id, out); err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	for i, b := range out {
		if b != 0 {
			t.Fatalf("byte %d = %x, want 0", i, b)
		}
	}
}

func TestFileManager_DeallocateThenReadZeroFills(t *testing.T) {
	dir := t.TempDir()
	fm, err := NewFileManager(filepath.Join(dir, "pages.db"))
	if err != nil {
		t.Fatalf("NewFileManager: %v", err)
	}
	defer fm.Close()

	id := fm.AllocatePage()
	data := make([]byte, PageSize)
	copy(data, []byte("will be deallocated"))
	if err := fm.WritePage(id, data); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	if err := fm.DeallocatePage(id); err != nil {
		t.Fatalf("DeallocatePage: %v", err)
	}

	out := make([]byte, PageSize)
	if err := fm.ReadPage(id, out); err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	for i, b := range out {
		if b != 0 {
			t.Fatalf("byte %d = %x, want 0 after deallocation", i, b)
		}
	}
}

// TestFileManager_FlushThenWriteAfter confirms Flush syncs without closing
// the file: further reads and writes still work afterward.
func TestFileManager_FlushThenWriteAfter(t *testing.T) {
	dir := t.TempDir()
	fm, err := NewFileManager(filepath.Join(dir, "pages.db"))
	if err != nil {
		t.Fatalf("NewFileManager: %v", err)
	}
	defer fm.Close()

	id := fm.AllocatePage()
	data := make([]byte, PageSize)
	copy(data, []byte("flushed"))
	if err := fm.WritePage(id, data); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	if err := fm.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	other := fm.AllocatePage()
	more := make([]byte, PageSize)
	copy(more, []byte("after flush"))
	if err := fm.WritePage(other, more); err != nil {
		t.Fatalf("WritePage after Flush: %v", err)
	}

	out := make([]byte, PageSize)
	if err := fm.ReadPage(other, out); err != nil {
		t.Fatalf("ReadPage after Flush: %v", err)
	}
	if !bytes.Equal(out, more) {
		t.Fatalf("page written after Flush not readable back")
	}
}

func TestFileManager_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pages.db")

	fm, err := NewFileManager(path)
	if err != nil {
		t.Fatalf("NewFileManager: %v", err)
	}
	id := fm.AllocatePage()
	data := make([]byte, PageSize)
	copy(data, []byte("persisted"))
	if err := fm.WritePage(id, data); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	if err := fm.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewFileManager(path)
	if err != nil {
		t.Fatalf("reopen NewFileManager: %v", err)
	}
	defer reopened.Close()

	out := make([]byte, PageSize)
	if err := reopened.ReadPage(id, out); err != nil {
		t.Fatalf("ReadPage after reopen: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("page contents not preserved across reopen")
	}

	nextID := reopened.AllocatePage()
	if nextID <= id {
		t.Fatalf("AllocatePage after reopen returned %d, want > %d", nextID, id)
	}
}
