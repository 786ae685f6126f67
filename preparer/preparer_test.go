package preparer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlebeau-guideline/okon/btree"
	"github.com/jlebeau-guideline/okon/preparer"
	"github.com/jlebeau-guideline/okon/sha1hex"
	"github.com/jlebeau-guideline/okon/storage"
)

func writeInput(t *testing.T, lines []string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "digests.txt")

	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPrepareEndToEnd(t *testing.T) {
	digests := []btree.Key{}
	lines := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		var k btree.Key
		k[19] = byte(i)
		digests = append(digests, k)
		lines = append(lines, sha1hex.Encode(k))
	}

	inputPath := writeInput(t, lines)
	outputDir := t.TempDir()

	require.NoError(t, preparer.Prepare(inputPath, outputDir, btree.Order(2)))

	indexPath := filepath.Join(outputDir, preparer.IndexFileName)
	device, err := storage.Open(indexPath)
	require.NoError(t, err)
	defer device.Close()

	reader, err := btree.Open(device)
	require.NoError(t, err)

	for _, d := range digests {
		found, err := reader.Contains(d)
		require.NoError(t, err)
		assert.True(t, found)
	}

	var absent btree.Key
	absent[19] = 200
	found, err := reader.Contains(absent)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPrepareSkipsBlankLines(t *testing.T) {
	var a, b btree.Key
	a[19] = 1
	b[19] = 2

	inputPath := writeInput(t, []string{sha1hex.Encode(a), "", sha1hex.Encode(b)})
	outputDir := t.TempDir()

	require.NoError(t, preparer.Prepare(inputPath, outputDir, btree.Order(2)))
}

func TestPrepareRejectsNonIncreasingInput(t *testing.T) {
	var a, b btree.Key
	a[19] = 5
	b[19] = 1

	inputPath := writeInput(t, []string{sha1hex.Encode(a), sha1hex.Encode(b)})
	outputDir := t.TempDir()

	err := preparer.Prepare(inputPath, outputDir, btree.Order(2))
	assert.ErrorIs(t, err, btree.ErrBuilderMisuse)
}

func TestPrepareRejectsInvalidHex(t *testing.T) {
	inputPath := writeInput(t, []string{"not-a-valid-digest"})
	outputDir := t.TempDir()

	err := preparer.Prepare(inputPath, outputDir, btree.Order(2))
	assert.ErrorIs(t, err, sha1hex.ErrInvalidHex)
}

func TestPrepareRejectsMissingInput(t *testing.T) {
	err := preparer.Prepare(filepath.Join(t.TempDir(), "missing.txt"), t.TempDir(), btree.Order(2))
	assert.Error(t, err)
}
