// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package trie

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
)

// RootHash computes a content hash over the whole trie, useful as a cheap
// equality/checksum of a version without walking both trees being
// compared. It is not part of the durable on-disk format; any internal
// restructuring that preserves the same key/value contents yields the
// same hash, but the hash is not guaranteed stable across versions of
// this package.
func (t Trie) RootHash() [32]byte {
	h := sha3.NewLegacyKeccak256()
	hashNode(h, t.root)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func hashNode(w io.Writer, n *node) {
	if n == nil {
		w.Write([]byte{0})
		return
	}

	if n.isValue {
		w.Write([]byte{1})
		fmt.Fprintf(w, "%v", n.value)
	} else {
		w.Write([]byte{0})
	}

	for _, b := range n.Children() {
		w.Write([]byte{b})
		hashNode(w, n.children[b])
	}

	var length [8]byte
	binary.LittleEndian.PutUint64(length[:], uint64(len(n.children)))
	w.Write(length[:])
}
