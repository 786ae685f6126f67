package storage

import (
	"bytes"
	"fmt"
	"io"
)

// Memory is an in-memory Device, handy for tests that don't want to touch
// the filesystem. It grows its backing buffer as writes demand.
type Memory struct {
	buf    []byte
	inPos  uint64
	outPos uint64
}

// NewMemory returns an empty in-memory Device.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SeekIn(offset uint64) error {
	m.inPos = offset
	return nil
}

func (m *Memory) SeekOut(offset uint64) error {
	m.outPos = offset
	return nil
}

func (m *Memory) Read(buf []byte) error {
	end := m.inPos + uint64(len(buf))
	if end > uint64(len(m.buf)) {
		return fmt.Errorf("storage: short read at offset %d: %w", m.inPos, io.ErrUnexpectedEOF)
	}
	n := copy(buf, m.buf[m.inPos:end])
	m.inPos += uint64(n)
	return nil
}

func (m *Memory) Write(buf []byte) error {
	end := m.outPos + uint64(len(buf))
	if end > uint64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	n := copy(m.buf[m.outPos:end], buf)
	m.outPos += uint64(n)
	return nil
}

// Len returns the current size of the backing buffer.
func (m *Memory) Len() int {
	return len(m.buf)
}

// Bytes returns a copy of the full backing buffer, for assertions in tests.
func (m *Memory) Bytes() []byte {
	return bytes.Clone(m.buf)
}
