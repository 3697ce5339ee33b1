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
	"io"
	"os"
	"sync"
	"unsafe"

	"github.com/fantom-foundation/bustub-go/common"
)

// FileManager persists pages at fixed offsets (id * PageSize) in a single
// backing file, growing the file as pages are written at new offsets. It maintains a
// reusable read/write buffer, shared between ReadPage and WritePage, so
// steady-state operation does no extra allocation.
type FileManager struct {
	mu sync.Mutex

	file    *os.File
	nextID  PageID
	buffer  []byte
	deleted map[PageID]bool
}

// NewFileManager opens (creating if necessary) the file at path as page
// storage.
func NewFileManager(path string) (*FileManager, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("disk: open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("disk: stat %s: %w", path, err)
	}

	return &FileManager{
		file:    file,
		nextID:  PageID(info.Size() / PageSize),
		buffer:  make([]byte, PageSize),
		deleted: make(map[PageID]bool),
	}, nil
}

// ReadPage implements DiskManager.
func (m *FileManager) ReadPage(id PageID, out []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(out) != PageSize {
		return fmt.Errorf("disk: ReadPage: buffer has len %d, want %d", len(out), PageSize)
	}
	if m.deleted[id] || id >= m.nextID {
		for i := range out {
			out[i] = 0
		}
		return nil
	}

	offset := int64(id) * PageSize
	if _, err := m.file.ReadAt(m.buffer, offset); err != nil {
		if err == io.EOF {
			for i := range out {
				out[i] = 0
			}
			return nil
		}
		return fmt.Errorf("disk: ReadPage(%d): %w", id, err)
	}
	copy(out, m.buffer)
	return nil
}

// WritePage implements DiskManager.
func (m *FileManager) WritePage(id PageID, in []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(in) != PageSize {
		return fmt.Errorf("disk: WritePage: buffer has len %d, want %d", len(in), PageSize)
	}

	copy(m.buffer, in)
	offset := int64(id) * PageSize
	if _, err := m.file.WriteAt(m.buffer, offset); err != nil {
		return fmt.Errorf("disk: WritePage(%d): %w", id, err)
	}
	delete(m.deleted, id)
	if id >= m.nextID {
		m.nextID = id + 1
	}
	return nil
}

// AllocatePage implements DiskManager.
func (m *FileManager) AllocatePage() PageID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	return id
}

// DeallocatePage implements DiskManager. The underlying file space is not
// reclaimed; the id is simply marked so future reads zero-fill instead of
// returning stale bytes.
func (m *FileManager) DeallocatePage(id PageID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted[id] = true
	return nil
}

// Flush syncs the backing file to durable storage without closing it.
func (m *FileManager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.file.Sync(); err != nil {
		return fmt.Errorf("disk: flush: %w", err)
	}
	return nil
}

// Close flushes and closes the backing file.
func (m *FileManager) Close() error {
	if err := m.Flush(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.file.Close(); err != nil {
		return fmt.Errorf("disk: close: %w", err)
	}
	return nil
}

// GetMemoryFootprint implements common.MemoryFootprintProvider.
func (m *FileManager) GetMemoryFootprint() *common.MemoryFootprint {
	m.mu.Lock()
	defer m.mu.Unlock()

	selfSize := unsafe.Sizeof(*m)
	bufferSize := uintptr(len(m.buffer))
	var idType PageID
	var boolType bool
	deletedSize := uintptr(len(m.deleted)) * (unsafe.Sizeof(idType) + unsafe.Sizeof(boolType))

	mf := common.NewMemoryFootprint(selfSize + bufferSize)
	mf.AddChild("deleted", common.NewMemoryFootprint(deletedSize))
	return mf
}

var _ common.FlushAndCloser = (*FileManager)(nil)
