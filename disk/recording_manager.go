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
	"sync"

	"github.com/fantom-foundation/bustub-go/common"
	"github.com/fantom-foundation/bustub-go/common/immutable"
)

// RecordingManager wraps a MemoryManager and logs every ReadPage/WritePage
// call it observes, so tests can assert exact write-back behavior (e.g.
// "exactly one WritePage for the dirty frame before it is displaced")
// without reaching for a mock.
type RecordingManager struct {
	*MemoryManager

	mu     sync.Mutex
	reads  []PageID
	writes []WriteRecord
	closed bool
}

// WriteRecord captures one observed WritePage call. Data is stored as an
// immutable.Bytes so a recorded record can never be mutated by a later
// WritePage call reusing the caller's buffer.
type WriteRecord struct {
	ID   PageID
	Data immutable.Bytes
}

// NewRecordingManager creates a RecordingManager backed by a fresh, empty
// MemoryManager.
func NewRecordingManager() *RecordingManager {
	return &RecordingManager{
		MemoryManager: NewMemoryManager(),
	}
}

// WritePage records the call before delegating to the underlying
// MemoryManager.
func (m *RecordingManager) WritePage(id PageID, in []byte) error {
	data := immutable.NewBytes(in)

	m.mu.Lock()
	m.writes = append(m.writes, WriteRecord{ID: id, Data: data})
	m.mu.Unlock()

	return m.MemoryManager.WritePage(id, in)
}

// ReadPage records the call before delegating to the underlying
// MemoryManager.
func (m *RecordingManager) ReadPage(id PageID, out []byte) error {
	m.mu.Lock()
	m.reads = append(m.reads, id)
	m.mu.Unlock()

	return m.MemoryManager.ReadPage(id, out)
}

// Close marks the manager closed; it does not release the underlying
// MemoryManager's data so tests can still inspect call history afterward.
func (m *RecordingManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Writes returns the sequence of WritePage calls observed so far.
func (m *RecordingManager) Writes() []WriteRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]WriteRecord, len(m.writes))
	copy(out, m.writes)
	return out
}

// Reads returns the sequence of page ids passed to ReadPage so far.
func (m *RecordingManager) Reads() []PageID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PageID, len(m.reads))
	copy(out, m.reads)
	return out
}

// IsClosed reports whether Close has been called.
func (m *RecordingManager) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// WriteCount returns how many times WritePage was called for id.
func (m *RecordingManager) WriteCount(id PageID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, w := range m.writes {
		if w.ID == id {
			count++
		}
	}
	return count
}

var _ common.MemoryFootprintProvider = (*RecordingManager)(nil)
