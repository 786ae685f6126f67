// Command okon builds and queries an on-disk B-tree index of SHA-1
// digests.
package main

import (
	"bufio"
	"crypto/sha1"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"

	"github.com/jlebeau-guideline/okon/btree"
	"github.com/jlebeau-guideline/okon/preparer"
	"github.com/jlebeau-guideline/okon/sha1hex"
	"github.com/jlebeau-guideline/okon/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "prepare":
		err = runPrepare(os.Args[2:])
	case "exists":
		err = runExists(os.Args[2:])
	case "seed":
		err = runSeed(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage:
  okon prepare -input <sorted-digests.txt> -output <dir> [-order 64]
  okon exists  -index <dir>/okon.btree -digest <40-char-hex>
  okon seed    -output <sorted-digests.txt> [-count 1000]`)
}

// runSeed writes -count freshly generated, sorted hex digests to -output,
// for exercising prepare/exists without a real corpus of digests on hand —
// the same role the teacher's own "-seed" flag plays over faker-generated
// words.
func runSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	output := fs.String("output", "", "path to write sorted hex digests to")
	count := fs.Uint("count", 1000, "number of digests to generate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("okon seed: -output is required")
	}

	seen := make(map[btree.Key]struct{}, *count)
	keys := make([]btree.Key, 0, *count)
	for len(keys) < int(*count) {
		sum := sha1.Sum([]byte(faker.Word() + faker.Word() + faker.Word()))
		key := btree.Key(sum)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	out, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, k := range keys {
		if _, err := fmt.Fprintln(w, sha1hex.Encode(k)); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runPrepare(args []string) error {
	fs := flag.NewFlagSet("prepare", flag.ExitOnError)
	input := fs.String("input", "", "path to a file of sorted, newline-separated hex SHA-1 digests")
	output := fs.String("output", "", "directory to write okon.btree into")
	order := fs.Uint("order", 64, "B-tree order (branching parameter m)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" || *output == "" {
		fs.Usage()
		return fmt.Errorf("okon prepare: -input and -output are required")
	}

	if err := os.MkdirAll(*output, 0o755); err != nil {
		return err
	}

	return preparer.Prepare(*input, *output, btree.Order(*order))
}

func runExists(args []string) error {
	fs := flag.NewFlagSet("exists", flag.ExitOnError)
	index := fs.String("index", "", "path to an okon.btree index file")
	digest := fs.String("digest", "", "40-character hex SHA-1 digest to look up")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *index == "" || *digest == "" {
		fs.Usage()
		return fmt.Errorf("okon exists: -index and -digest are required")
	}

	key, err := sha1hex.Decode(*digest)
	if err != nil {
		return err
	}

	device, err := storage.Open(*index)
	if err != nil {
		return err
	}
	defer device.Close()

	reader, err := btree.Open(device)
	if err != nil {
		return err
	}

	found, err := reader.Contains(key)
	if err != nil {
		return err
	}

	if !found {
		fmt.Println(color.YellowString("NOT FOUND"))
		return nil
	}

	fmt.Println(color.GreenString("FOUND"))
	os.Exit(1)
	return nil
}
