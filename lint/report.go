// Package lint collects parser diagnostics across files and presents them to
// terminals and language clients.
package lint

import (
	"fmt"
	"io"
	"sort"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/lojidoc/java/parser"
)

const source = "lojidoc"

// Report groups diagnostics by the file they were found in. It is not safe
// for concurrent use; workers build their own and Merge them.
type Report struct {
	files map[string][]parser.Diagnostic
}

func NewReport() *Report {
	return &Report{files: make(map[string][]parser.Diagnostic)}
}

// Add records diags for file. Files without findings are remembered so the
// report can tell how many files were checked.
func (r *Report) Add(file string, diags []parser.Diagnostic) {
	r.files[file] = append(r.files[file], diags...)
	sort.SliceStable(r.files[file], func(i, j int) bool {
		return r.files[file][i].Line < r.files[file][j].Line
	})
}

func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	for file, diags := range other.files {
		r.Add(file, diags)
	}
}

// Files lists the checked files in lexical order.
func (r *Report) Files() []string {
	files := make([]string, 0, len(r.files))
	for file := range r.files {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

func (r *Report) Diagnostics(file string) []parser.Diagnostic {
	return r.files[file]
}

// Len returns the number of diagnostics of all kinds.
func (r *Report) Len() int {
	n := 0
	for _, diags := range r.files {
		n += len(diags)
	}
	return n
}

func (r *Report) Count(kind parser.DiagnosticKind) int {
	n := 0
	for _, diags := range r.files {
		for _, d := range diags {
			if d.Kind == kind {
				n++
			}
		}
	}
	return n
}

// WriteText prints every diagnostic on its own line followed by a summary.
func (r *Report) WriteText(w io.Writer) error {
	for _, file := range r.Files() {
		for _, d := range r.files[file] {
			if _, err := fmt.Fprintln(w, d.String()); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d lint findings, %d structural in %d files\n",
		r.Count(parser.DiagnosticLint), r.Count(parser.DiagnosticStructural), len(r.files))
	return err
}

// ToProtocol converts diagnostics to LSP diagnostics covering the whole
// reported line. Lint findings are warnings; structural findings are
// informational.
func ToProtocol(diags []parser.Diagnostic) []protocol.Diagnostic {
	result := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		line := protocol.UInteger(0)
		if d.Line > 0 {
			line = protocol.UInteger(d.Line - 1)
		}
		severity := protocol.DiagnosticSeverityWarning
		if d.Kind == parser.DiagnosticStructural {
			severity = protocol.DiagnosticSeverityInformation
		}
		src := source
		message := d.Message
		if d.Name != "" {
			message = d.Name + ": " + d.Message
		}
		result = append(result, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: 0},
				End:   protocol.Position{Line: line + 1, Character: 0},
			},
			Severity: &severity,
			Source:   &src,
			Message:  message,
		})
	}
	return result
}
