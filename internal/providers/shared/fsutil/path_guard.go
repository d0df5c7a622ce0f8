package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// IsPathUnderRoot reports whether candidate, after resolving the symlinks of
// its existing prefix, stays inside root. Paths that do not exist yet are
// compared lexically past the last existing component.
func IsPathUnderRoot(root string, candidate string) bool {
	resolvedRoot, err := resolveExistingPrefix(root)
	if err != nil {
		return false
	}
	resolvedCandidate, err := resolveExistingPrefix(candidate)
	if err != nil {
		return false
	}
	return isLexicallyUnder(resolvedRoot, resolvedCandidate)
}

// IsRegularFile reports whether path names an existing regular file. Errors
// other than absence are returned.
func IsRegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func isLexicallyUnder(root string, candidate string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(candidate))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func resolveExistingPrefix(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if !filepath.IsAbs(cleaned) {
		abs, err := filepath.Abs(cleaned)
		if err != nil {
			return "", err
		}
		cleaned = abs
	}

	existing := cleaned
	var suffix []string
	for {
		_, err := os.Lstat(existing)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return cleaned, nil
		}
		suffix = append([]string{filepath.Base(existing)}, suffix...)
		existing = parent
	}

	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{resolved}, suffix...)...), nil
}
