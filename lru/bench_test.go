// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package lru

import (
	"testing"

	lru "github.com/hashicorp/golang-lru/v2"
)

// BenchmarkKReplacer_RecordAccess measures the cost of the from-scratch
// LRU-K bookkeeping under a repeating working set.
func BenchmarkKReplacer_RecordAccess(b *testing.B) {
	const numFrames = 256
	r := NewKReplacer(numFrames, 2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.RecordAccess(FrameID(i % numFrames))
	}
}

// BenchmarkHashicorpLRU_Add compares against hashicorp/golang-lru/v2's plain
// (non-k) LRU under the same working set, as a sanity baseline: it cannot
// reproduce the k-th-access promotion rule, but its raw touch/evict cost is
// a useful reference point for KReplacer's overhead.
func BenchmarkHashicorpLRU_Add(b *testing.B) {
	const numFrames = 256
	cache, err := lru.New[FrameID, struct{}](numFrames)
	if err != nil {
		b.Fatalf("lru.New: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Add(FrameID(i%numFrames), struct{}{})
	}
}
