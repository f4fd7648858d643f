// Package buffer implements the per-channel ordered packet buffer (spec.md
// §4.B) and the multi-channel buffer built on top of it (§4.C). Versions
// are kept in a google/btree so point lookup, ascending iteration, and
// range-delete (cleanup_before) are all O(log n) rather than the O(n)
// sorted-slice approach a naive port of the teacher's in-memory caches
// would reach for.
package buffer

import (
	"github.com/google/btree"

	"github.com/flowgraph/flowgraph/packet"
)

const defaultDegree = 32

// entry is the btree.Item stored per version: ordered by Version only.
type entry struct {
	version packet.DataVersion
	pkt     packet.UntypedPacket
}

func (e entry) Less(than btree.Item) bool {
	return e.version.Less(than.(entry).version)
}

// FixedSizeOrdered is a single-channel ordered map version -> packet, capped
// at maxSize entries. On overflow the smallest-version entry is evicted
// silently. Not safe for concurrent use: the data model (spec.md §3)
// dictates a single owning reader thread.
type FixedSizeOrdered struct {
	tree    *btree.BTree
	maxSize int
}

// NewFixedSizeOrdered constructs an empty buffer capped at maxSize entries.
func NewFixedSizeOrdered(maxSize int) *FixedSizeOrdered {
	return &FixedSizeOrdered{
		tree:    btree.New(defaultDegree),
		maxSize: maxSize,
	}
}

// Insert adds p under version v. Returns ErrDuplicateVersion if v is
// already present, leaving the existing packet untouched. When the insert
// pushes the buffer past maxSize, the oldest (smallest-version) entry is
// evicted silently.
func (b *FixedSizeOrdered) Insert(v packet.DataVersion, p packet.UntypedPacket) error {
	key := entry{version: v}
	if b.tree.Has(key) {
		return ErrDuplicateVersion
	}
	b.tree.ReplaceOrInsert(entry{version: v, pkt: p})

	if b.maxSize > 0 && b.tree.Len() > b.maxSize {
		b.tree.DeleteMin()
	}
	return nil
}

// Get performs a point read without mutating the buffer.
func (b *FixedSizeOrdered) Get(v packet.DataVersion) (packet.UntypedPacket, bool) {
	item := b.tree.Get(entry{version: v})
	if item == nil {
		return packet.UntypedPacket{}, false
	}
	return item.(entry).pkt, true
}

// Remove deletes and returns the packet at v, if present.
func (b *FixedSizeOrdered) Remove(v packet.DataVersion) (packet.UntypedPacket, bool) {
	item := b.tree.Delete(entry{version: v})
	if item == nil {
		return packet.UntypedPacket{}, false
	}
	return item.(entry).pkt, true
}

// CleanupBefore erases every entry with version strictly less than v.
// Idempotent: calling it again with the same or an earlier version is a
// no-op.
func (b *FixedSizeOrdered) CleanupBefore(v packet.DataVersion) {
	var stale []btree.Item
	b.tree.AscendLessThan(entry{version: v}, func(i btree.Item) bool {
		stale = append(stale, i)
		return true
	})
	for _, i := range stale {
		b.tree.Delete(i)
	}
}

// ContainsKey reports whether v is present.
func (b *FixedSizeOrdered) ContainsKey(v packet.DataVersion) bool {
	return b.tree.Has(entry{version: v})
}

// Len reports the number of entries currently buffered.
func (b *FixedSizeOrdered) Len() int {
	return b.tree.Len()
}

// Ascend visits every entry in ascending version order, stopping early if
// fn returns false.
func (b *FixedSizeOrdered) Ascend(fn func(packet.DataVersion, packet.UntypedPacket) bool) {
	b.tree.Ascend(func(i btree.Item) bool {
		e := i.(entry)
		return fn(e.version, e.pkt)
	})
}
