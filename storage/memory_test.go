package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlebeau-guideline/okon/storage"
)

func TestMemoryReadWriteRoundTrip(t *testing.T) {
	m := storage.NewMemory()

	require.NoError(t, m.SeekOut(0))
	require.NoError(t, m.Write([]byte("hello")))

	require.NoError(t, m.SeekIn(0))
	buf := make([]byte, 5)
	require.NoError(t, m.Read(buf))
	assert.Equal(t, "hello", string(buf))
}

func TestMemoryIndependentCursors(t *testing.T) {
	m := storage.NewMemory()

	require.NoError(t, m.SeekOut(10))
	require.NoError(t, m.Write([]byte("world")))
	assert.Equal(t, 15, m.Len())

	require.NoError(t, m.SeekIn(10))
	buf := make([]byte, 5)
	require.NoError(t, m.Read(buf))
	assert.Equal(t, "world", string(buf))
}

func TestMemoryReadPastEndFails(t *testing.T) {
	m := storage.NewMemory()
	require.NoError(t, m.SeekOut(0))
	require.NoError(t, m.Write([]byte("ab")))

	require.NoError(t, m.SeekIn(0))
	buf := make([]byte, 10)
	assert.Error(t, m.Read(buf))
}

func TestMemoryWriteOverwritesInPlace(t *testing.T) {
	m := storage.NewMemory()
	require.NoError(t, m.SeekOut(0))
	require.NoError(t, m.Write([]byte("aaaaa")))

	require.NoError(t, m.SeekOut(1))
	require.NoError(t, m.Write([]byte("bb")))

	assert.Equal(t, "abbaa", string(m.Bytes()))
}
