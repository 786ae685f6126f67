package btree

// rebalanceSpine repairs the minimum-fill invariant (I5) along the right
// spine Finalize hands over, then writes the spine to disk. Every node NOT
// on the spine was already
// written to disk at exactly 2m keys, the moment it was popped off the
// spine full (see builder.go's splitNode) — so it already satisfies every
// invariant on its own. Only the spine itself — one node per level, root
// down to the still-open leaf — can be underfull, since it never went
// through that seal-when-full path.
//
// The fix is sibling redistribution, processed root-to-leaf: for each
// spine node with fewer than m keys, keys (and, for internal levels, the
// child pointers that go with them) are rotated in from its immediate left
// sibling — the previously sealed, full node just to its left under the
// same parent — through the separator the two share in the parent. The
// sibling gives up only as many keys as the spine node needs to reach
// exactly m and keeps the rest, so it never itself drops below minimum.
//
// Processing top-down matters: fixing a shallower spine node gives it real
// children borrowed from its own sibling, and one of those borrowed
// children becomes the very sibling the next spine level down rotates
// from. Fixing bottom-up would examine a deeper level before its parent
// has any sibling to lend from. Because every non-leaf node's own parent
// always holds at least one key by the time it exists — splitRootAndGrow
// inserts a key into a new root before ever growing it — this always
// finds a lender once the tree has any internal structure at all, so no
// key is ever read out of a node it wasn't already in and no new node is
// ever invented to hold a leftover.
func rebalanceSpine(tb *treeBase, spine []*Node) error {
	m := tb.Order().MinKeys()

	for i := 1; i < len(spine); i++ {
		node := spine[i]
		parent := spine[i-1]

		if node.KeysCount >= m || parent.KeysCount == 0 {
			// Already fits, or there is no left sibling to borrow from.
			// The latter can only happen when the root itself is a leaf
			// (spine length 1, this loop never runs) — kept as a guard
			// rather than an assumption.
			continue
		}

		if err := redistribute(tb, parent, node, m); err != nil {
			return err
		}
	}

	for _, node := range spine {
		if err := tb.writeNode(node); err != nil {
			return err
		}
	}
	return nil
}

// redistribute rotates keys from node's immediate left sibling — reached
// via parent.Pointers[parent.KeysCount-1] — through the separator at
// parent.Keys[parent.KeysCount-1], until node holds exactly m keys.
func redistribute(tb *treeBase, parent, node *Node, m int) error {
	siblingPtr := parent.Pointers[parent.KeysCount-1]
	sibling, err := tb.readNode(siblingPtr)
	if err != nil {
		return err
	}

	c := node.KeysCount
	sepIdx := parent.KeysCount - 1
	oldSiblingKeys := sibling.KeysCount

	combinedKeys := make([]Key, 0, oldSiblingKeys+1+c)
	combinedKeys = append(combinedKeys, sibling.Keys[:oldSiblingKeys]...)
	combinedKeys = append(combinedKeys, parent.Keys[sepIdx])
	combinedKeys = append(combinedKeys, node.Keys[:c]...)

	siblingKeep := m + c // however many the sibling can spare, node needs the rest

	var combinedPointers []Pointer
	if !node.IsLeaf {
		combinedPointers = make([]Pointer, 0, oldSiblingKeys+1+c+1)
		combinedPointers = append(combinedPointers, sibling.Pointers[:oldSiblingKeys+1]...)
		combinedPointers = append(combinedPointers, node.Pointers[:c+1]...)
	}

	sibling.KeysCount = siblingKeep
	copy(sibling.Keys, combinedKeys[:siblingKeep])

	parent.Keys[sepIdx] = combinedKeys[siblingKeep]

	node.KeysCount = len(combinedKeys) - siblingKeep - 1
	copy(node.Keys, combinedKeys[siblingKeep+1:])

	if !node.IsLeaf {
		siblingPointerCount := siblingKeep + 1

		copy(sibling.Pointers, combinedPointers[:siblingPointerCount])
		for i := siblingPointerCount; i < len(sibling.Pointers); i++ {
			sibling.Pointers[i] = Unused
		}

		// The tail of the sibling's own former pointers, [siblingPointerCount,
		// oldSiblingKeys+1), moves to node along with the keys — those
		// children's parent changed and must be re-pointed on disk.
		for _, childPtr := range combinedPointers[siblingPointerCount : oldSiblingKeys+1] {
			if childPtr == Unused {
				continue
			}
			child, err := tb.readNode(childPtr)
			if err != nil {
				return err
			}
			child.ParentPointer = node.ThisPointer
			if err := tb.writeNode(child); err != nil {
				return err
			}
		}

		nodePointers := combinedPointers[siblingPointerCount:]
		copy(node.Pointers, nodePointers)
		for i := len(nodePointers); i < len(node.Pointers); i++ {
			node.Pointers[i] = Unused
		}
	}

	return tb.writeNode(sibling)
}
