package btree

import "errors"

// Error kinds surfaced by this package, per the error handling design:
// corruption is reported through these sentinels rather than panics, so
// callers can distinguish "file is bad" from "key not found".
var (
	// ErrMalformedHeader means the header bytes are missing, short, or
	// order == 0.
	ErrMalformedHeader = errors.New("btree: malformed header")

	// ErrNodeOutOfRange means a pointer dereferences a node index whose
	// byte range extends past the end of the file.
	ErrNodeOutOfRange = errors.New("btree: node pointer out of range")

	// ErrInvariantViolation means a node read from disk violates a
	// structural invariant (keys_count > 2m, or a non-leaf with
	// keys_count == 0). Treated as file corruption.
	ErrInvariantViolation = errors.New("btree: invariant violation")

	// ErrIoFailure wraps an underlying storage error (short read, seek
	// failure).
	ErrIoFailure = errors.New("btree: io failure")

	// ErrBuilderMisuse means InsertSorted was given a key that is not
	// strictly greater than all previously inserted keys.
	ErrBuilderMisuse = errors.New("btree: key given to InsertSorted is not strictly increasing")
)
