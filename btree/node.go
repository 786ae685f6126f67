package btree

import "encoding/binary"

// Node is a single B-tree node, held in memory in exactly the shape it is
// persisted in: a leaf flag, a live key count, a fixed-capacity pointer
// array, a fixed-capacity key array, and a parent back-reference.
type Node struct {
	ThisPointer   Pointer
	IsLeaf        bool
	KeysCount     int
	Pointers      []Pointer
	Keys          []Key
	ParentPointer Pointer

	order Order
}

// newNode allocates an empty node of the given order with all pointer
// slots set to Unused, ready to be filled in by the builder or rebalancer.
func newNode(order Order, parent Pointer) *Node {
	n := &Node{
		order:         order,
		ParentPointer: parent,
		Pointers:      make([]Pointer, order.MaxChildren()),
		Keys:          make([]Key, order.MaxKeys()),
	}
	for i := range n.Pointers {
		n.Pointers[i] = Unused
	}
	return n
}

// IsFull reports whether the node already holds the maximum number of keys.
func (n *Node) IsFull() bool {
	return n.KeysCount == n.order.MaxKeys()
}

// PushBack appends key to the node. The caller must ensure the node is not
// full and that key sorts strictly after the current last key; this is the
// fast path used exclusively during sorted bulk loading.
func (n *Node) PushBack(key Key) {
	n.Keys[n.KeysCount] = key
	n.KeysCount++
}

// Insert places key at its sorted position among the live keys, shifting
// later keys one slot to the right. Under the sorted-load builder this is
// only ever called to promote a splitter, which is always the largest key
// in the receiving node, so in practice it behaves like PushBack — but the
// general shifting insert is what the node-level contract promises.
func (n *Node) Insert(key Key) {
	pos := n.KeysCount
	for pos > 0 && key.Compare(n.Keys[pos-1]) < 0 {
		pos--
	}
	copy(n.Keys[pos+1:n.KeysCount+1], n.Keys[pos:n.KeysCount])
	n.Keys[pos] = key
	n.KeysCount++
}

// RightmostPointer returns the child pointer greater than all of the
// node's keys.
func (n *Node) RightmostPointer() Pointer {
	return n.Pointers[n.KeysCount]
}

// ChildPointerPrevOf returns the pointer immediately left of ptr in the
// child array, or (0, false) if ptr is already at index 0.
func (n *Node) ChildPointerPrevOf(ptr Pointer) (Pointer, bool) {
	childCount := n.KeysCount + 1
	for i := 0; i < childCount; i++ {
		if n.Pointers[i] == ptr {
			if i == 0 {
				return 0, false
			}
			return n.Pointers[i-1], true
		}
	}
	return 0, false
}

// IndexOfChild returns the index at which ptr appears among this node's
// live child pointers.
func (n *Node) IndexOfChild(ptr Pointer) (int, bool) {
	childCount := n.KeysCount + 1
	for i := 0; i < childCount; i++ {
		if n.Pointers[i] == ptr {
			return i, true
		}
	}
	return 0, false
}

// Contains performs a binary search over the live keys and reports the
// index at which key was found, or the lower-bound index and false.
func (n *Node) Contains(key Key) (int, bool) {
	low, high := 0, n.KeysCount
	for low < high {
		mid := (low + high) / 2
		switch cmp := key.Compare(n.Keys[mid]); {
		case cmp > 0:
			low = mid + 1
		case cmp < 0:
			high = mid
		default:
			return mid, true
		}
	}
	return low, false
}

// LowerBoundChildIndex returns the index of the child to descend into
// while searching for key: the first index i with Keys[i] > key, or
// KeysCount if no such key exists.
func (n *Node) LowerBoundChildIndex(key Key) int {
	for i := 0; i < n.KeysCount; i++ {
		if key.Compare(n.Keys[i]) < 0 {
			return i
		}
	}
	return n.KeysCount
}

// encode serialises the node into its fixed S(order) on-disk layout:
// is_leaf(1) · keys_count(4) · pointers[2m+1](4 each) · keys[2m](20 each) ·
// parent_pointer(4).
func (n *Node) encode(order Order) []byte {
	buf := make([]byte, order.NodeSize())
	offset := 0

	if n.IsLeaf {
		buf[offset] = 1
	}
	offset++

	binary.LittleEndian.PutUint32(buf[offset:], uint32(n.KeysCount))
	offset += 4

	for _, p := range n.Pointers {
		binary.LittleEndian.PutUint32(buf[offset:], uint32(p))
		offset += 4
	}

	for _, k := range n.Keys {
		copy(buf[offset:], k[:])
		offset += KeySize
	}

	binary.LittleEndian.PutUint32(buf[offset:], uint32(n.ParentPointer))

	return buf
}

// decodeNode parses buf — exactly order.NodeSize() bytes — into a Node,
// validating the structural invariants a corrupt file could violate
// (ErrInvariantViolation, see errors.go).
func decodeNode(order Order, ptr Pointer, buf []byte) (*Node, error) {
	n := newNode(order, Unused)
	n.ThisPointer = ptr

	offset := 0
	n.IsLeaf = buf[offset] != 0
	offset++

	n.KeysCount = int(binary.LittleEndian.Uint32(buf[offset:]))
	offset += 4

	if n.KeysCount > order.MaxKeys() {
		return nil, ErrInvariantViolation
	}
	if !n.IsLeaf && n.KeysCount == 0 {
		return nil, ErrInvariantViolation
	}

	for i := range n.Pointers {
		n.Pointers[i] = Pointer(binary.LittleEndian.Uint32(buf[offset:]))
		offset += 4
	}

	for i := range n.Keys {
		copy(n.Keys[i][:], buf[offset:offset+KeySize])
		offset += KeySize
	}

	n.ParentPointer = Pointer(binary.LittleEndian.Uint32(buf[offset:]))

	return n, nil
}
