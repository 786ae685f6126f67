// Package storage provides the seekable byte sink/source the B-tree reads
// and writes nodes through. The btree package does all of its file I/O
// through this package.
package storage

import (
	"os"
)

// Device is an abstract seekable byte sink/source with independent read and
// write cursors. The tree is single-threaded, so one shared cursor would be
// enough, but the two-cursor shape matches how the original C++ storage
// wrapper is used: a read happening mid-descent never disturbs the offset a
// concurrent write step was about to use.
type Device interface {
	SeekIn(offset uint64) error
	SeekOut(offset uint64) error
	Read(buf []byte) error
	Write(buf []byte) error
}

// File is a Device backed by a single *os.File on disk.
type File struct {
	f      *os.File
	inPos  int64
	outPos int64
}

// Create truncates (or creates) path and returns a File ready for writing.
func Create(path string) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &File{f: f}, nil
}

// Open opens an existing file for reading and writing.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	return &File{f: f}, nil
}

func (fs *File) SeekIn(offset uint64) error {
	fs.inPos = int64(offset)
	return nil
}

func (fs *File) SeekOut(offset uint64) error {
	fs.outPos = int64(offset)
	return nil
}

func (fs *File) Read(buf []byte) error {
	n, err := fs.f.ReadAt(buf, fs.inPos)
	fs.inPos += int64(n)
	return err
}

func (fs *File) Write(buf []byte) error {
	n, err := fs.f.WriteAt(buf, fs.outPos)
	fs.outPos += int64(n)
	return err
}

// Close releases the underlying file handle.
func (fs *File) Close() error {
	return fs.f.Close()
}

// Sync forces the OS to flush the file to stable storage.
func (fs *File) Sync() error {
	return fs.f.Sync()
}
