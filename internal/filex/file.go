// Package filex provides small filesystem helpers shared by the server and
// the checker: directory creation, base-directory canonicalization and safe
// joining of client-supplied names.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (and parents) if it does not exist yet and returns
// its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// CanonicalDir resolves dir to an absolute, symlink-free path and verifies
// it names an existing directory.
func CanonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", abs, err)
	}

	fi, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%s: not a directory", resolved)
	}

	return resolved, nil
}

// SafeJoin joins a client-supplied relative name onto base, rejecting any
// result that would escape base. The returned path is always inside base.
func SafeJoin(base, name string) (string, error) {
	joined := filepath.Join(base, filepath.Clean("/"+name))
	if joined != base && !strings.HasPrefix(joined, base+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: escapes base directory", name)
	}
	return joined, nil
}
