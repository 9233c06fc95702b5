package library

import (
	"fmt"
	"os"
	"path/filepath"

	"bindery/internal/fileutil"
	"bindery/internal/logging"
)

// MergeInto moves every item of srcDir into dstDir, suffixing on collision,
// then removes the emptied source directory. A file is never deleted unless
// its move completed; a non-empty source directory is left in place and
// logged. Returns the number of items moved.
func (s *Service) MergeInto(srcDir, dstDir string) (int, error) {
	if srcDir == dstDir {
		return 0, nil
	}
	if !s.dryRun {
		if err := os.MkdirAll(dstDir, 0o755); err != nil {
			return 0, fmt.Errorf("create destination %s: %w", dstDir, err)
		}
	}

	items, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, fmt.Errorf("read source %s: %w", srcDir, err)
	}

	moved := 0
	for _, item := range items {
		src := filepath.Join(srcDir, item.Name())
		target := fileutil.EnsureUniquePath(filepath.Join(dstDir, item.Name()))
		if s.dryRun {
			moved++
			continue
		}
		if item.IsDir() {
			err = os.Rename(src, target)
		} else {
			err = fileutil.MoveFile(src, target)
		}
		if err != nil {
			return moved, fmt.Errorf("move %s: %w", src, err)
		}
		moved++
	}

	if !s.dryRun {
		if err := os.Remove(srcDir); err != nil {
			s.logger.Warn("merged directory not removed",
				logging.String(logging.FieldPath, srcDir),
				logging.Error(err),
			)
		}
	}
	return moved, nil
}
