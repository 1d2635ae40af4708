package bench

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Tiers describes the synthetic corpus: file counts and sizes for the small,
// medium, and large tiers.
type Tiers struct {
	SmallFiles  int
	SmallSize   int
	MediumFiles int
	MediumSize  int
	LargeFiles  int
	LargeSize   int
}

// DefaultTiers returns the corpus shape used for published benchmark
// numbers: 10,000 files, roughly 290 MB.
func DefaultTiers() Tiers {
	return Tiers{
		SmallFiles:  9000,
		SmallSize:   1 << 10,
		MediumFiles: 800,
		MediumSize:  100 << 10,
		LargeFiles:  200,
		LargeSize:   1 << 20,
	}
}

// CreateCorpus populates dir with random-content files in three size tiers.
func CreateCorpus(dir string, tiers Tiers) error {
	specs := []struct {
		name   string
		count  int
		size   int
		format string
	}{
		{"small", tiers.SmallFiles, tiers.SmallSize, "file_%05d.txt"},
		{"medium", tiers.MediumFiles, tiers.MediumSize, "file_%04d.bin"},
		{"large", tiers.LargeFiles, tiers.LargeSize, "file_%04d.dat"},
	}

	for _, spec := range specs {
		tierDir := filepath.Join(dir, spec.name)

		err := os.MkdirAll(tierDir, 0o755)
		if err != nil {
			return fmt.Errorf("create corpus tier: %w", err)
		}

		buf := make([]byte, spec.size)

		for i := range spec.count {
			_, err = rand.Read(buf)
			if err != nil {
				return fmt.Errorf("generate corpus data: %w", err)
			}

			path := filepath.Join(tierDir, fmt.Sprintf(spec.format, i))

			err = os.WriteFile(path, buf, 0o644)
			if err != nil {
				return fmt.Errorf("write corpus file: %w", err)
			}
		}
	}

	return nil
}

// ModifyFraction rewrites roughly the given fraction of corpus files with
// fresh random content, for incremental-transfer scenarios. Files are
// selected deterministically (every Nth in sorted order) so repeated calls
// touch the same set.
func ModifyFraction(dir string, fraction float64) error {
	if fraction <= 0 {
		return nil
	}

	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk corpus: %w", err)
	}

	if len(files) == 0 {
		return nil
	}

	sort.Strings(files)

	step := int(1 / fraction)
	if step < 1 {
		step = 1
	}

	for i := 0; i < len(files); i += step {
		info, err := os.Stat(files[i])
		if err != nil {
			return fmt.Errorf("stat corpus file: %w", err)
		}

		buf := make([]byte, info.Size())

		_, err = rand.Read(buf)
		if err != nil {
			return fmt.Errorf("generate corpus data: %w", err)
		}

		err = os.WriteFile(files[i], buf, 0o644)
		if err != nil {
			return fmt.Errorf("rewrite corpus file: %w", err)
		}
	}

	return nil
}
