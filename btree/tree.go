package btree

import (
	"encoding/binary"
	"fmt"

	"github.com/jlebeau-guideline/okon/storage"
)

// treeBase owns the open storage device and the cached (order, root_ptr)
// pair, and knows how to translate a node pointer into a byte offset.
// Builder and Reader both embed it so the offset arithmetic and header
// handling are written exactly once.
type treeBase struct {
	storage storage.Device
	order   Order
	rootPtr Pointer
}

// createTreeBase writes a fresh header (order, root_ptr=0) to storage and
// returns a treeBase ready for the builder.
func createTreeBase(device storage.Device, order Order) (*treeBase, error) {
	if order == 0 {
		return nil, fmt.Errorf("btree: %w: order must be positive", ErrMalformedHeader)
	}

	tb := &treeBase{storage: device, order: order, rootPtr: 0}

	if err := tb.writeHeader(); err != nil {
		return nil, err
	}
	return tb, nil
}

// openTreeBase reads the header from an existing file.
func openTreeBase(device storage.Device) (*treeBase, error) {
	tb := &treeBase{storage: device}

	if err := device.SeekIn(0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}

	header := make([]byte, HeaderSize)
	if err := device.Read(header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	order := binary.LittleEndian.Uint32(header[0:4])
	if order == 0 {
		return nil, ErrMalformedHeader
	}

	tb.order = Order(order)
	tb.rootPtr = Pointer(binary.LittleEndian.Uint32(header[4:8]))

	return tb, nil
}

func (tb *treeBase) writeHeader() error {
	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], uint32(tb.order))
	binary.LittleEndian.PutUint32(header[4:8], uint32(tb.rootPtr))

	if err := tb.storage.SeekOut(0); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	if err := tb.storage.Write(header); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return nil
}

// setRootPtr updates the cached root pointer and persists it at its fixed
// offset (byte 4) without rewriting the order.
func (tb *treeBase) setRootPtr(ptr Pointer) error {
	tb.rootPtr = ptr

	buf := make([]byte, headerRootSize)
	binary.LittleEndian.PutUint32(buf, uint32(ptr))

	if err := tb.storage.SeekOut(headerOrderSize); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	if err := tb.storage.Write(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return nil
}

// nodeOffset returns the absolute file offset of node ptr.
func (tb *treeBase) nodeOffset(ptr Pointer) uint64 {
	return uint64(HeaderSize) + tb.order.NodeSize()*uint64(ptr)
}

// readNode reads and decodes the node at ptr.
func (tb *treeBase) readNode(ptr Pointer) (*Node, error) {
	buf := make([]byte, tb.order.NodeSize())

	if err := tb.storage.SeekIn(tb.nodeOffset(ptr)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	if err := tb.storage.Read(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNodeOutOfRange, err)
	}

	return decodeNode(tb.order, ptr, buf)
}

// writeNode encodes and writes node at its ThisPointer's offset.
func (tb *treeBase) writeNode(node *Node) error {
	if err := tb.storage.SeekOut(tb.nodeOffset(node.ThisPointer)); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	if err := tb.storage.Write(node.encode(tb.order)); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return nil
}

// Order returns the tree's branching parameter, as read from (or written
// to) the header.
func (tb *treeBase) Order() Order {
	return tb.order
}

// RootPtr returns the current root node pointer.
func (tb *treeBase) RootPtr() Pointer {
	return tb.rootPtr
}
