// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package disk provides the durable side of the storage engine: fixed-size
// page persistence behind a small interface, with file, in-memory and
// LevelDB-backed implementations plus test doubles. Everything above this
// package — the replacer, the buffer pool, the trie — only ever depends on
// the DiskManager interface, never on a concrete implementation.
package disk

import (
	"github.com/fantom-foundation/bustub-go/common"
)

// PageID identifies a fixed-size page on durable storage. Ids are handed
// out by AllocatePage in monotonically increasing order; implementations
// are not required to reuse ids once DeallocatePage releases one.
type PageID int64

// InvalidPageID is never returned by AllocatePage and is the identity a
// caller uses to represent "no page".
const InvalidPageID PageID = -1

// PageSize is the fixed size, in bytes, of every page and every frame that
// can hold one. The buffer pool and every DiskManager implementation agree
// on this constant; there is no support for variable-sized pages.
const PageSize = 4096

//go:generate mockgen -source manager.go -destination mocks/disk_manager.go -package mocks

// DiskManager is the durable-storage boundary the buffer pool relies on.
// Every method may be called concurrently from multiple goroutines;
// implementations are responsible for their own internal synchronization.
type DiskManager interface {
	common.MemoryFootprintProvider

	// ReadPage fills out with the PageSize bytes stored for id. Reading a
	// page that was never written (but is otherwise a valid, allocated id)
	// zero-fills out instead of failing.
	ReadPage(id PageID, out []byte) error

	// WritePage persists in (which must be exactly PageSize bytes) under
	// id, overwriting whatever was previously stored there.
	WritePage(id PageID, in []byte) error

	// AllocatePage reserves and returns a new page id. The page has no
	// content until the first WritePage under that id.
	AllocatePage() PageID

	// DeallocatePage releases id. Implementations may reclaim the backing
	// storage immediately or lazily; a page must not be read after it has
	// been deallocated.
	DeallocatePage(id PageID) error

	// Close releases resources held by the manager (open file handles,
	// database connections). After Close, no other method may be called.
	Close() error
}
