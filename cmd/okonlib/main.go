// Command okonlib builds a C shared library exposing the three entry
// points original_source/lib/okon.cpp defines, translated from C++ free
// functions into cgo exports. Build with:
//
//	go build -buildmode=c-shared -o libokon.so ./cmd/okonlib
package main

/*
#include <string.h>
*/
import "C"

import (
	"os"
	"unsafe"

	"github.com/jlebeau-guideline/okon/btree"
	"github.com/jlebeau-guideline/okon/preparer"
	"github.com/jlebeau-guideline/okon/sha1hex"
	"github.com/jlebeau-guideline/okon/storage"
)

// defaultOrder is used by okon_prepare, which — like the original —
// takes no order parameter of its own.
const defaultOrder = btree.Order(64)

//export okon_prepare
func okon_prepare(inputDBFilePath, outputFileDirectory *C.char) C.int {
	input := C.GoString(inputDBFilePath)
	outputDir := C.GoString(outputFileDirectory)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return -1
	}

	if err := preparer.Prepare(input, outputDir, defaultOrder); err != nil {
		return -1
	}
	return 0
}

//export okon_exists_text
func okon_exists_text(sha1 *C.char, processedFilePath *C.char) C.int {
	key, err := sha1hex.Decode(C.GoString(sha1))
	if err != nil {
		return 0
	}
	return existsBinary(key, C.GoString(processedFilePath))
}

//export okon_exists_binary
func okon_exists_binary(sha1 unsafe.Pointer, processedFilePath *C.char) C.int {
	var key btree.Key
	src := C.GoBytes(sha1, C.int(btree.KeySize))
	copy(key[:], src)
	return existsBinary(key, C.GoString(processedFilePath))
}

func existsBinary(key btree.Key, processedFilePath string) C.int {
	device, err := storage.Open(processedFilePath)
	if err != nil {
		return 0
	}
	defer device.Close()

	reader, err := btree.Open(device)
	if err != nil {
		return 0
	}

	found, err := reader.Contains(key)
	if err != nil || !found {
		return 0
	}
	return 1
}

func main() {}
