package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/dhamidi/lojidoc/java"
)

var log = commonlog.GetLogger("lojidoc.format")

// ErrNoMdbook is returned by BuildBook when the mdbook binary is not on the
// PATH.
var ErrNoMdbook = errors.New("mdbook not found in PATH")

// Chapter is one generated page inside a book. Name is the label shown in
// the table of contents.
type Chapter struct {
	Decl    java.Declaration
	Name    string
	File    string
	Content []byte
}

// Summary renders the SUMMARY.md table of contents, grouping chapters by
// package.
func Summary(title string, chapters []Chapter) string {
	project := java.NewProject()
	byDecl := make(map[java.Declaration]Chapter, len(chapters))
	for _, ch := range chapters {
		project.Add(ch.Decl)
		byDecl[ch.Decl] = ch
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	for _, pkg := range project.Packages() {
		name := pkg.Name
		if name == "" {
			name = "(default package)"
		}
		fmt.Fprintf(&sb, "- [%s]()\n", name)
		for _, d := range pkg.Members {
			ch := byDecl[d]
			fmt.Fprintf(&sb, "  - [%s](./%s)\n", ch.Name, ch.File)
		}
	}
	return sb.String()
}

func bookConfig(title string) string {
	return fmt.Sprintf("[book]\ntitle = %q\nsrc = \"src\"\n", title)
}

// WriteBook writes book.toml, src/SUMMARY.md and every chapter below dir.
func WriteBook(ctx context.Context, fs afs.Service, dir, title string, chapters []Chapter) error {
	if err := upload(ctx, fs, url.Join(dir, "book.toml"), []byte(bookConfig(title))); err != nil {
		return err
	}
	src := url.Join(dir, "src")
	for _, ch := range chapters {
		if err := upload(ctx, fs, url.Join(src, ch.File), ch.Content); err != nil {
			return err
		}
	}
	if err := upload(ctx, fs, url.Join(src, "SUMMARY.md"), []byte(Summary(title, chapters))); err != nil {
		return err
	}
	log.Debugf("wrote book %q with %d chapters to %s", title, len(chapters), dir)
	return nil
}

func upload(ctx context.Context, fs afs.Service, URL string, content []byte) error {
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", URL, err)
	}
	return nil
}

// BuildBook runs "mdbook build" in dir.
func BuildBook(ctx context.Context, dir string) error {
	bin, err := exec.LookPath("mdbook")
	if err != nil {
		return ErrNoMdbook
	}
	cmd := exec.CommandContext(ctx, bin, "build", dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("mdbook build: %w\n%s", err, out)
	}
	log.Infof("built book in %s", dir)
	return nil
}
