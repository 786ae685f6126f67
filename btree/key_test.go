package btree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jlebeau-guideline/okon/btree"
)

func keyFromByte(b byte) btree.Key {
	var k btree.Key
	k[len(k)-1] = b
	return k
}

func TestKeyLess(t *testing.T) {
	a := keyFromByte(1)
	b := keyFromByte(2)

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
}

func TestKeyCompare(t *testing.T) {
	a := keyFromByte(1)
	b := keyFromByte(2)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestOrderCapacities(t *testing.T) {
	order := btree.Order(2)

	assert.Equal(t, 4, order.MaxKeys())
	assert.Equal(t, 5, order.MaxChildren())
	assert.Equal(t, 2, order.MinKeys())
	assert.Equal(t, uint64(49+48*2), order.NodeSize())
}

func TestHeaderSize(t *testing.T) {
	assert.Equal(t, 8, btree.HeaderSize)
}
