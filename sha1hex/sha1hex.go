// Package sha1hex converts between the 40-character hex text form of a
// SHA-1 digest and its 20-byte binary form.
//
// It exists instead of a call to encoding/hex because the wire format
// requires uppercase output (see Encode) — something the standard
// library's hex encoder doesn't produce — and because decoding must
// accept mixed-case input the way the original SIMD-free conversion
// routine in original_source/lib/sha1_utils.hpp does.
package sha1hex

import (
	"fmt"

	"github.com/jlebeau-guideline/okon/btree"
)

// TextLen is the length in characters of a digest's hex text form.
const TextLen = btree.KeySize * 2

// ErrInvalidHex is returned by Decode when the input isn't 40 valid hex
// characters.
var ErrInvalidHex = fmt.Errorf("sha1hex: input is not a 40-character hex digest")

const hexDigits = "0123456789ABCDEF"

// Encode renders key as 40 uppercase hex characters.
func Encode(key btree.Key) string {
	out := make([]byte, TextLen)
	for i, b := range key {
		out[2*i] = hexDigits[b>>4]
		out[2*i+1] = hexDigits[b&0x0f]
	}
	return string(out)
}

// Decode parses a 40-character hex string (either case) into a Key.
func Decode(text string) (btree.Key, error) {
	var key btree.Key

	if len(text) != TextLen {
		return key, ErrInvalidHex
	}

	for i := 0; i < btree.KeySize; i++ {
		hi, ok := charToNibble(text[2*i])
		if !ok {
			return btree.Key{}, ErrInvalidHex
		}
		lo, ok := charToNibble(text[2*i+1])
		if !ok {
			return btree.Key{}, ErrInvalidHex
		}
		key[i] = hi<<4 | lo
	}

	return key, nil
}

// charToNibble converts a single hex character (either case) to its 4-bit
// value, mirroring sha1_utils.hpp's char_to_index.
func charToNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
