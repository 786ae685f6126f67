// Package preparer drives the end-to-end build: read a sorted stream of
// hex SHA-1 digests from a text file, one per line, and bulk-load them
// into a fresh index file.
package preparer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jlebeau-guideline/okon/btree"
	"github.com/jlebeau-guideline/okon/sha1hex"
	"github.com/jlebeau-guideline/okon/storage"
)

// IndexFileName is the fixed name okon_prepare writes its output under,
// matching the original's "<output_dir>/okon.btree".
const IndexFileName = "okon.btree"

var log = logrus.StandardLogger()

// Prepare reads sortedDigestsPath line by line — each line a 40-character
// hex SHA-1 digest, already sorted ascending — and bulk-loads them into
// <outputDir>/okon.btree using order m.
//
// The builder aborts on the first error and leaves whatever partial file
// it had already written behind; there is no atomic rename or cleanup
// step, matching the error handling design in spec.md §7.
func Prepare(sortedDigestsPath, outputDir string, order btree.Order) error {
	in, err := os.Open(sortedDigestsPath)
	if err != nil {
		return fmt.Errorf("preparer: opening input: %w", err)
	}
	defer in.Close()

	outputPath := filepath.Join(outputDir, IndexFileName)
	device, err := storage.Create(outputPath)
	if err != nil {
		return fmt.Errorf("preparer: creating %s: %w", outputPath, err)
	}
	defer device.Close()

	builder, err := btree.NewBuilder(device, order)
	if err != nil {
		return fmt.Errorf("preparer: %w", err)
	}

	scanner := bufio.NewScanner(in)
	lineNo := 0
	count := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		key, err := sha1hex.Decode(line)
		if err != nil {
			return fmt.Errorf("preparer: line %d: %w", lineNo, err)
		}

		if err := builder.InsertSorted(key); err != nil {
			return fmt.Errorf("preparer: line %d: %w", lineNo, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("preparer: reading input: %w", err)
	}

	if err := builder.Finalize(); err != nil {
		return fmt.Errorf("preparer: finalizing: %w", err)
	}

	if err := device.Sync(); err != nil {
		return fmt.Errorf("preparer: syncing %s: %w", outputPath, err)
	}

	log.WithFields(logrus.Fields{
		"digests": count,
		"output":  outputPath,
		"order":   order,
	}).Info("preparer: index built")

	return nil
}
