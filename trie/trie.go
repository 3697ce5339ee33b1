// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package trie implements an immutable, copy-on-write, byte-keyed trie.
// Every Put or Remove returns a new Trie value; prior values remain valid
// and unchanged, sharing whatever subtrees were not on the path of the
// edit. Go cannot express Get/Put as generic methods (a method may not
// introduce its own type parameters), so they are free functions taking a
// Trie value, mirroring the template-method shape of the original design.
package trie

import (
	"reflect"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// node is one trie vertex. It is never mutated after construction — every
// edit clones the nodes on the path from the root and leaves everything
// else shared with the prior version.
type node struct {
	children map[byte]*node

	isValue   bool
	value     any
	valueType reflect.Type
}

func newNode() *node {
	return &node{children: make(map[byte]*node)}
}

// clone returns a shallow copy of n: a new children map with the same
// entries, and the same value. Callers then overwrite exactly the one
// child (or value) that changes, leaving every other subtree shared with
// the original.
func (n *node) clone() *node {
	c := &node{
		children:  make(map[byte]*node, len(n.children)),
		isValue:   n.isValue,
		value:     n.value,
		valueType: n.valueType,
	}
	for k, v := range n.children {
		c.children[k] = v
	}
	return c
}

// Children returns the edge bytes out of this node, sorted ascending, via
// golang.org/x/exp/maps and /slices — used by callers that want a
// deterministic walk order (debugging, RootHash).
func (n *node) Children() []byte {
	keys := maps.Keys(n.children)
	slices.Sort(keys)
	return keys
}

// Trie is an immutable handle to one version of the trie. The zero value
// is a valid, empty trie.
type Trie struct {
	root *node
}

// New returns an empty trie.
func New() Trie {
	return Trie{}
}

// Get looks up key and, if present with a value of type T, returns it and
// true. A present key whose stored value is a different type, or an
// absent key, returns the zero value of T and false — a type mismatch is
// never an error, matching the original's dynamic_cast-returns-null
// contract.
func Get[T any](t Trie, key string) (T, bool) {
	var zero T

	if t.root == nil {
		return zero, false
	}

	ptr := t.root
	for i := 0; i < len(key); i++ {
		child, ok := ptr.children[key[i]]
		if !ok {
			return zero, false
		}
		ptr = child
	}

	if !ptr.isValue {
		return zero, false
	}

	wantType := reflect.TypeOf((*T)(nil)).Elem()
	if ptr.valueType != wantType {
		return zero, false
	}

	return ptr.value.(T), true
}

// Put returns a new Trie with key bound to value, leaving t unmodified.
func Put[T any](t Trie, key string, value T) Trie {
	valueType := reflect.TypeOf((*T)(nil)).Elem()

	if t.root == nil {
		t = Trie{root: newNode()}
	}

	if key == "" {
		newRoot := t.root.clone()
		newRoot.isValue = true
		newRoot.value = value
		newRoot.valueType = valueType
		return Trie{root: newRoot}
	}

	root := t.root.clone()
	ptr := root
	for i := 0; i < len(key)-1; i++ {
		b := key[i]
		if existing, ok := ptr.children[b]; ok {
			ptr.children[b] = existing.clone()
		} else {
			ptr.children[b] = newNode()
		}
		ptr = ptr.children[b]
	}

	last := key[len(key)-1]
	leaf := &node{
		isValue:   true,
		value:     value,
		valueType: valueType,
	}
	if existing, ok := ptr.children[last]; ok {
		leaf.children = make(map[byte]*node, len(existing.children))
		for k, v := range existing.children {
			leaf.children[k] = v
		}
	} else {
		leaf.children = make(map[byte]*node)
	}
	ptr.children[last] = leaf

	return Trie{root: root}
}

// Remove returns a new Trie with key's value (if any) removed, pruning
// internal nodes that become both valueless and childless along the way.
// Removing a key that is absent returns a Trie equivalent to t.
func Remove(t Trie, key string) Trie {
	if t.root == nil {
		return t
	}
	return Trie{root: dfs(t.root, key, 0)}
}

// dfs walks to the node at key[index:], rebuilds the path back to the
// root with the edit applied, and prunes nodes left with neither a value
// nor children.
func dfs(n *node, key string, index int) *node {
	if index == len(key) {
		if len(n.children) == 0 {
			return nil
		}
		// Found node retains its children but loses its value.
		pruned := newNode()
		for k, v := range n.children {
			pruned.children[k] = v
		}
		return pruned
	}

	b := key[index]
	child, ok := n.children[b]
	if !ok {
		return n
	}

	updated := dfs(child, key, index+1)
	clone := n.clone()
	if updated != nil {
		clone.children[b] = updated
	} else {
		delete(clone.children, b)
		if !clone.isValue && len(clone.children) == 0 {
			return nil
		}
	}
	return clone
}
