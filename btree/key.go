// Package btree implements the on-disk B-tree described in the project
// specification: a fixed binary node layout, a single-pass sorted bulk
// loader, a post-load rebalancer, and a read-only lookup path.
package btree

import "bytes"

// KeySize is the width in bytes of a SHA-1 digest key.
const KeySize = 20

// Key is a 20-byte SHA-1 digest, ordered lexicographically (identical to
// numeric order over the digest bytes).
type Key [KeySize]byte

// Less reports whether k sorts strictly before other.
func (k Key) Less(other Key) bool {
	return bytes.Compare(k[:], other[:]) < 0
}

// Compare returns -1, 0 or 1 the way bytes.Compare does.
func (k Key) Compare(other Key) int {
	return bytes.Compare(k[:], other[:])
}

// Pointer is a 32-bit node index. Unused denotes "no child / no parent".
type Pointer uint32

// Unused is the sentinel pointer value: all bits set.
const Unused Pointer = 1<<32 - 1

// Order is the tree's branching parameter m: a node holds up to 2m keys and
// up to 2m+1 child pointers.
type Order uint32

// MaxKeys returns 2m, the maximum number of keys a node of this order holds.
func (o Order) MaxKeys() int {
	return int(2 * o)
}

// MaxChildren returns 2m+1, the maximum number of child pointers.
func (o Order) MaxChildren() int {
	return int(2*o) + 1
}

// MinKeys is the minimum-fill threshold m for non-root internal nodes.
func (o Order) MinKeys() int {
	return int(o)
}

// NodeSize returns S(m) = 49 + 48m, the fixed on-disk size in bytes of a
// node encoded at this order.
func (o Order) NodeSize() uint64 {
	return 49 + 48*uint64(o)
}

const (
	headerOrderSize = 4
	headerRootSize  = 4
	// HeaderSize is the size in bytes of the file header: order (4 bytes)
	// followed by root_ptr (4 bytes).
	HeaderSize = headerOrderSize + headerRootSize
)
