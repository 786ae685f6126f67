package btree

import (
	"fmt"

	"github.com/jlebeau-guideline/okon/storage"
)

// Builder consumes a strictly ascending stream of keys and bulk-loads them
// into a valid B-tree in a single pass, appending into a right spine of
// nodes and splitting upward when the rightmost node fills. Ported from
// the original btree_sorted_keys_inserter: the sorted-only insertion path
// has no in-memory analogue to generalize from, so this is translated
// directly rather than adapted from the teacher.
type Builder struct {
	*treeBase

	nextNodePtr Pointer
	currentPath []*Node
	treeHeight  uint

	hasLastKey bool
	lastKey    Key
}

// NewBuilder creates a fresh index file of the given order on device and
// returns a Builder ready to receive keys via InsertSorted. The builder
// requires exclusive ownership of device for its lifetime.
func NewBuilder(device storage.Device, order Order) (*Builder, error) {
	tb, err := createTreeBase(device, order)
	if err != nil {
		return nil, err
	}

	b := &Builder{treeBase: tb, treeHeight: 1}

	root := newNode(order, Unused)
	root.ThisPointer = b.newNodePointer()
	root.IsLeaf = true
	b.currentPath = []*Node{root}

	return b, nil
}

func (b *Builder) newNodePointer() Pointer {
	ptr := b.nextNodePtr
	b.nextNodePtr++
	return ptr
}

func (b *Builder) currentNode() *Node {
	return b.currentPath[len(b.currentPath)-1]
}

// InsertSorted inserts key, which must be strictly greater than every key
// inserted so far. Violating that ordering returns ErrBuilderMisuse instead
// of corrupting the tree.
func (b *Builder) InsertSorted(key Key) error {
	if b.hasLastKey && key.Compare(b.lastKey) <= 0 {
		return fmt.Errorf("%w: %x is not greater than previous key %x", ErrBuilderMisuse, key, b.lastKey)
	}
	b.hasLastKey = true
	b.lastKey = key

	if b.currentNode().IsFull() {
		return b.splitNode(key, 0)
	}
	b.currentNode().PushBack(key)
	return nil
}

// splitNode implements the split-and-grow step: the active spine-top node
// is sealed to disk, popped off the spine, and its split key promoted into
// the parent (growing the root if the spine is now empty).
func (b *Builder) splitNode(key Key, levelFromLeafs uint) error {
	isRoot := len(b.currentPath) == 1
	if isRoot {
		return b.splitRootAndGrow(key, levelFromLeafs)
	}

	if err := b.writeNode(b.currentNode()); err != nil {
		return err
	}
	b.currentPath = b.currentPath[:len(b.currentPath)-1]

	parent := b.currentNode()
	if parent.IsFull() {
		return b.splitNode(key, levelFromLeafs+1)
	}

	parent.Insert(key)
	return b.createChildrenTillLeaf(levelFromLeafs)
}

// splitRootAndGrow allocates a new root above the current (full) root,
// increasing tree height by one.
func (b *Builder) splitRootAndGrow(key Key, levelFromLeafs uint) error {
	newRootPtr := b.newNodePointer()

	oldRoot := b.currentNode()
	oldRootPtr := oldRoot.ThisPointer

	oldRoot.ParentPointer = newRootPtr
	if err := b.writeNode(oldRoot); err != nil {
		return err
	}
	b.currentPath = b.currentPath[:len(b.currentPath)-1]

	newRoot := newNode(b.Order(), Unused)
	newRoot.Insert(key)
	newRoot.Pointers[0] = oldRootPtr
	newRoot.ThisPointer = newRootPtr
	newRoot.IsLeaf = false
	b.currentPath = append(b.currentPath, newRoot)

	if err := b.createChildrenTillLeaf(levelFromLeafs); err != nil {
		return err
	}

	if err := b.setRootPtr(newRootPtr); err != nil {
		return err
	}
	b.treeHeight++

	return nil
}

// createChildrenTillLeaf rebuilds an empty right spine below the current
// spine-top, levelFromLeafs+1 levels deep (down to and including a new
// empty leaf), linking each new empty child as
// the rightmost pointer slot (just past the parent's last inserted key) of
// its parent.
func (b *Builder) createChildrenTillLeaf(levelFromLeafs uint) error {
	isLeafLevel := levelFromLeafs == 0

	parentPtr := b.currentNode().ThisPointer
	parentPlace := len(b.currentPath) - 1

	node := newNode(b.Order(), parentPtr)
	node.ThisPointer = b.newNodePointer()
	node.KeysCount = 0
	node.IsLeaf = isLeafLevel
	b.currentPath = append(b.currentPath, node)

	parent := b.currentPath[parentPlace]
	parent.Pointers[parent.KeysCount] = node.ThisPointer

	if isLeafLevel {
		return nil
	}
	return b.createChildrenTillLeaf(levelFromLeafs - 1)
}

// Finalize hands the still-open right spine to the rebalancer, which fixes
// up underfull nodes left by the sorted-only insertion path and writes the
// spine to disk. The builder must not be used after Finalize returns.
func (b *Builder) Finalize() error {
	return rebalanceSpine(b.treeBase, b.currentPath)
}
