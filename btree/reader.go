package btree

import (
	"errors"

	"github.com/jlebeau-guideline/okon/storage"
)

// Reader answers membership queries over an already-built index.
type Reader struct {
	*treeBase
}

// Open reads the file header from device and returns a Reader positioned
// at the root. It requires exclusive use of device for the duration of
// each query chain (reads interleave seeks and byte transfers).
func Open(device storage.Device) (*Reader, error) {
	tb, err := openTreeBase(device)
	if err != nil {
		return nil, err
	}
	return &Reader{treeBase: tb}, nil
}

// Contains descends from the root, performing at most h node reads where h
// is the tree height, and reports whether key is present.
//
// Corruption encountered along the way (ErrInvariantViolation,
// ErrNodeOutOfRange) is logged and reported as "not found" rather than
// returned as an error, per the error handling design; only an I/O failure
// not attributable to corruption propagates.
func (r *Reader) Contains(key Key) (bool, error) {
	ptr := r.RootPtr()

	for {
		node, err := r.readNode(ptr)
		if err != nil {
			if errors.Is(err, ErrIoFailure) {
				return false, err
			}
			log.WithError(err).Warn("btree: corrupt node encountered during lookup")
			return false, nil
		}

		if _, found := node.Contains(key); found {
			return true, nil
		}

		if node.IsLeaf {
			return false, nil
		}

		childIndex := node.LowerBoundChildIndex(key)
		ptr = node.Pointers[childIndex]
	}
}
