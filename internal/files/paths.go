package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// numberedAttempts is how many report_N names are tried before falling back
// to a UUID suffix.
const numberedAttempts = 9

// SafePath picks a name for path that does not exist yet. A free path is
// returned as is; otherwise report.json becomes report_1.json, report_2.json
// and so on, then report_<uuid>.json. The bool reports whether the name changed.
func SafePath(path string) (string, bool, error) {
	if path == "" {
		return "", false, errors.New("path is empty")
	}
	free, err := notExists(path)
	if err != nil || free {
		return path, false, err
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 1; n <= numberedAttempts; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		free, err := notExists(candidate)
		if err != nil {
			return "", false, err
		}
		if free {
			return candidate, true, nil
		}
	}
	return fmt.Sprintf("%s_%s%s", stem, uniqueSuffix(), ext), true, nil
}

func notExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, os.ErrNotExist):
		return true, nil
	default:
		return false, err
	}
}

func uniqueSuffix() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()[:8]
}

// RejectSymlinkPath fails when path, or any directory above it that already
// exists, is a symlink or a Windows reparse point. Components that do not
// exist yet are allowed, since WriteOutput creates them.
func RejectSymlinkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	for dir := abs; ; {
		if err := checkNotLink(dir, abs); err != nil {
			return err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

func checkNotLink(component, target string) error {
	info, err := os.Lstat(component)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("refusing to write to %s: %s is a symlink", target, component)
	}
	reparse, err := isReparsePoint(component)
	if err != nil {
		return fmt.Errorf("failed to check reparse point: %w", err)
	}
	if reparse {
		return fmt.Errorf("refusing to write to %s: %s is a reparse point", target, component)
	}
	return nil
}
