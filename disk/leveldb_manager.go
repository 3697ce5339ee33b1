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
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/fantom-foundation/bustub-go/common"
)

// LevelDBManager backs a DiskManager with a LevelDB instance, one key per
// page id. It is heavier than FileManager but reuses LevelDB's own
// write-ahead buffering and compaction instead of managing file offsets by
// hand — useful when the pool is embedded alongside other LevelDB-resident
// state sharing the same database handle.
type LevelDBManager struct {
	mu     sync.Mutex
	db     *leveldb.DB
	mf     *common.MemoryFootprint
	nextID PageID
}

// OpenLevelDBManager opens (creating if necessary) a LevelDB database at
// path and wraps it as a DiskManager.
func OpenLevelDBManager(path string, options *opt.Options) (*LevelDBManager, error) {
	db, err := leveldb.OpenFile(path, options)
	if err != nil {
		return nil, fmt.Errorf("disk: open leveldb %s: %w", path, err)
	}

	mf := common.NewMemoryFootprint(0)
	if options != nil {
		mf.AddChild("writeBuffer", common.NewMemoryFootprint(uintptr(options.GetWriteBuffer())))
	}

	nextID, err := recoverNextID(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LevelDBManager{db: db, mf: mf, nextID: nextID}, nil
}

// recoverNextID scans the database for the highest page id stored so
// AllocatePage can resume handing out ids above it after a restart.
func recoverNextID(db *leveldb.DB) (PageID, error) {
	iter := db.NewIterator(nil, nil)
	defer iter.Release()

	var max PageID = -1
	for iter.Next() {
		id, ok := decodeDBKey(iter.Key())
		if ok && id > max {
			max = id
		}
	}
	if err := iter.Error(); err != nil {
		return 0, fmt.Errorf("disk: scan leveldb: %w", err)
	}
	return max + 1, nil
}

func encodeDBKey(id PageID) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

func decodeDBKey(key []byte) (PageID, bool) {
	if len(key) != 8 {
		return 0, false
	}
	return PageID(binary.BigEndian.Uint64(key)), true
}

// ReadPage implements DiskManager.
func (m *LevelDBManager) ReadPage(id PageID, out []byte) error {
	if len(out) != PageSize {
		return fmt.Errorf("disk: ReadPage: buffer has len %d, want %d", len(out), PageSize)
	}

	value, err := m.db.Get(encodeDBKey(id), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			for i := range out {
				out[i] = 0
			}
			return nil
		}
		return fmt.Errorf("disk: ReadPage(%d): %w", id, err)
	}
	copy(out, value)
	return nil
}

// WritePage implements DiskManager.
func (m *LevelDBManager) WritePage(id PageID, in []byte) error {
	if len(in) != PageSize {
		return fmt.Errorf("disk: WritePage: buffer has len %d, want %d", len(in), PageSize)
	}
	if err := m.db.Put(encodeDBKey(id), in, nil); err != nil {
		return fmt.Errorf("disk: WritePage(%d): %w", id, err)
	}
	return nil
}

// AllocatePage implements DiskManager.
func (m *LevelDBManager) AllocatePage() PageID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	return id
}

// DeallocatePage implements DiskManager.
func (m *LevelDBManager) DeallocatePage(id PageID) error {
	if err := m.db.Delete(encodeDBKey(id), nil); err != nil {
		return fmt.Errorf("disk: DeallocatePage(%d): %w", id, err)
	}
	return nil
}

// Close implements DiskManager.
func (m *LevelDBManager) Close() error {
	if err := m.db.Close(); err != nil {
		return fmt.Errorf("disk: close leveldb: %w", err)
	}
	return nil
}

// GetMemoryFootprint implements common.MemoryFootprintProvider.
func (m *LevelDBManager) GetMemoryFootprint() *common.MemoryFootprint {
	var stats leveldb.DBStats
	if err := m.db.Stats(&stats); err != nil {
		return m.mf
	}
	m.mf.AddChild("blockCache", common.NewMemoryFootprint(uintptr(stats.BlockCacheSize)))
	return m.mf
}
