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
	"fmt"
	"sync"
	"unsafe"

	"github.com/fantom-foundation/bustub-go/common"
)

// MemoryManager is an in-memory-only DiskManager, mainly for tests and for
// running the buffer pool without any filesystem dependency.
type MemoryManager struct {
	mu     sync.Mutex
	pages  map[PageID][]byte
	nextID PageID
}

// NewMemoryManager creates an empty in-memory page store.
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{
		pages: make(map[PageID][]byte),
	}
}

// ReadPage implements DiskManager.
func (m *MemoryManager) ReadPage(id PageID, out []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(out) != PageSize {
		return fmt.Errorf("disk: ReadPage: buffer has len %d, want %d", len(out), PageSize)
	}
	if stored, ok := m.pages[id]; ok {
		copy(out, stored)
		return nil
	}
	for i := range out {
		out[i] = 0
	}
	return nil
}

// WritePage implements DiskManager.
func (m *MemoryManager) WritePage(id PageID, in []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(in) != PageSize {
		return fmt.Errorf("disk: WritePage: buffer has len %d, want %d", len(in), PageSize)
	}
	data := make([]byte, PageSize)
	copy(data, in)
	m.pages[id] = data
	if id >= m.nextID {
		m.nextID = id + 1
	}
	return nil
}

// AllocatePage implements DiskManager.
func (m *MemoryManager) AllocatePage() PageID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	return id
}

// DeallocatePage implements DiskManager.
func (m *MemoryManager) DeallocatePage(id PageID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pages, id)
	return nil
}

// Close is a no-op for MemoryManager; there is nothing to release.
func (m *MemoryManager) Close() error {
	return nil
}

// GetMemoryFootprint implements common.MemoryFootprintProvider.
func (m *MemoryManager) GetMemoryFootprint() *common.MemoryFootprint {
	m.mu.Lock()
	defer m.mu.Unlock()

	selfSize := unsafe.Sizeof(*m)
	var idType PageID
	var size uintptr
	for _, v := range m.pages {
		size += unsafe.Sizeof(idType) + uintptr(len(v))
	}

	mf := common.NewMemoryFootprint(selfSize)
	mf.AddChild("pages", common.NewMemoryFootprint(size))
	return mf
}
