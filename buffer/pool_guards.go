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

import "github.com/fantom-foundation/bustub-go/disk"

// FetchPageBasic fetches pageID and wraps it in a BasicGuard. It returns
// nil if the pool is full and nothing can be evicted.
func (p *Pool) FetchPageBasic(pageID disk.PageID) (*BasicGuard, error) {
	frame, err := p.FetchPage(pageID)
	if err != nil {
		return nil, err
	}
	return newBasicGuard(p, frame, nil), nil
}

// FetchPageRead fetches pageID and returns it wrapped in a ReadGuard,
// holding the frame's content latch for reading. As in the original
// design, the frame's own latch is acquired after FetchPage returns, not
// while the pool's internal latch is held.
func (p *Pool) FetchPageRead(pageID disk.PageID) (*ReadGuard, error) {
	frame, err := p.FetchPage(pageID)
	if err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, nil
	}
	frame.latch.RLock()
	release := func() { frame.latch.RUnlock() }
	return &ReadGuard{BasicGuard: newBasicGuard(p, frame, release)}, nil
}

// FetchPageWrite fetches pageID and returns it wrapped in a WriteGuard,
// holding the frame's content latch for writing.
func (p *Pool) FetchPageWrite(pageID disk.PageID) (*WriteGuard, error) {
	frame, err := p.FetchPage(pageID)
	if err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, nil
	}
	frame.latch.Lock()
	release := func() { frame.latch.Unlock() }
	return &WriteGuard{BasicGuard: newBasicGuard(p, frame, release)}, nil
}

// NewPageGuarded allocates a new page and returns it wrapped in a
// BasicGuard, together with its id.
func (p *Pool) NewPageGuarded() (disk.PageID, *BasicGuard, error) {
	pageID, err := p.NewPage()
	if err != nil {
		return disk.InvalidPageID, nil, err
	}
	if pageID == disk.InvalidPageID {
		return disk.InvalidPageID, nil, nil
	}

	p.mu.Lock()
	frame := p.frames[p.pageTable[pageID]]
	p.mu.Unlock()

	return pageID, newBasicGuard(p, frame, nil), nil
}
