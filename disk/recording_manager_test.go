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

import "testing"

func TestRecordingManager_RecordsWritesAndReads(t *testing.T) {
	rm := NewRecordingManager()
	id := rm.AllocatePage()

	data := make([]byte, PageSize)
	if err := rm.WritePage(id, data); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	if err := rm.WritePage(id, data); err != nil {
		t.Fatalf("WritePage: %v", err)
	}

	out := make([]byte, PageSize)
	if err := rm.ReadPage(id, out); err != nil {
		t.Fatalf("ReadPage: %v", err)
	}

	if got, want := rm.WriteCount(id), 2; got != want {
		t.Fatalf("WriteCount(%d) = %d, want %d", id, got, want)
	}
	if got, want := len(rm.Reads()), 1; got != want {
		t.Fatalf("len(Reads()) = %d, want %d", got, want)
	}
}

func TestRecordingManager_Close(t *testing.T) {
	rm := NewRecordingManager()
	if rm.IsClosed() {
		t.Fatalf("expected not closed before Close")
	}
	if err := rm.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !rm.IsClosed() {
		t.Fatalf("expected closed after Close")
	}
}
