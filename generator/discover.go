// Package generator turns a tree of Java sources into markdown pages.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/tliron/commonlog"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

var log = commonlog.GetLogger("lojidoc.generator")

var defaultIgnore = []string{
	".git/", ".hg/", ".svn/",
	"node_modules/", "target/", "build/",
}

// loadIgnore compiles the default rules, the root .gitignore and extra
// exclude patterns into one matcher.
func loadIgnore(ctx context.Context, fs afs.Service, root string, exclude []string) *gitignore.GitIgnore {
	rules := append([]string{}, defaultIgnore...)
	content, err := fs.DownloadWithURL(ctx, filepath.Join(root, ".gitignore"))
	if err == nil {
		for _, line := range bytes.Split(content, []byte{'\n'}) {
			line = bytes.TrimSpace(line)
			if len(line) > 0 && !bytes.HasPrefix(line, []byte{'#'}) {
				rules = append(rules, string(line))
			}
		}
	}
	rules = append(rules, exclude...)
	return gitignore.CompileIgnoreLines(rules...)
}

// Discover returns every .java file below root, sorted, skipping paths
// matched by .gitignore or by the exclude patterns. A root that is itself a
// .java file is returned as the only result.
func Discover(ctx context.Context, fs afs.Service, root string, exclude []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	if !info.IsDir() {
		if filepath.Ext(root) != ".java" {
			return nil, nil
		}
		return []string{root}, nil
	}

	ignore := loadIgnore(ctx, fs, root, exclude)
	var files []string
	var skipped []string
	// The visitor never stops the walk; contents of ignored directories are
	// filtered by prefix.
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		rel := path.Join(parent, info.Name())
		for _, dir := range skipped {
			if strings.HasPrefix(rel, dir) {
				return true, nil
			}
		}
		if info.IsDir() {
			if ignore.MatchesPath(rel + "/") {
				log.Debugf("skipping directory %s", rel)
				skipped = append(skipped, rel+"/")
			}
			return true, nil
		}
		if !strings.HasSuffix(info.Name(), ".java") || ignore.MatchesPath(rel) {
			return true, nil
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(rel)))
		return true, nil
	}
	if err := fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	sort.Strings(files)
	log.Infof("found %d java files in %s", len(files), root)
	return files, nil
}
