package generator

import (
	"os"
	"path/filepath"
	"strings"
)

// FindRepoRoot returns the nearest directory at or above dir that holds a
// .git or .hg directory, or "" when there is none.
func FindRepoRoot(dir string) string {
	current, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, marker := range []string{".git", ".hg"} {
			if info, err := os.Stat(filepath.Join(current, marker)); err == nil && info.IsDir() {
				return current
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

// ResolveContext joins a repository URL such as
// "https://github.com/user/repo/blob/main" with the path of file relative to
// its repository root. Without a context the file path is returned as is;
// outside a repository the path is taken relative to the working directory.
func ResolveContext(file, context string) string {
	if context == "" {
		return file
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return file
	}
	base := FindRepoRoot(filepath.Dir(abs))
	if base == "" {
		if base, err = os.Getwd(); err != nil {
			return file
		}
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = file
	}
	return strings.TrimRight(context, "/") + "/" + strings.TrimLeft(filepath.ToSlash(rel), "/")
}
