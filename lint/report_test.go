package lint

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/lojidoc/java/parser"
)

func lintDiag(file string, line int, msg string) parser.Diagnostic {
	return parser.Diagnostic{Kind: parser.DiagnosticLint, File: file, Name: "Calc", Line: line, Message: msg}
}

func TestReport(t *testing.T) {
	r := NewReport()
	r.Add("b/Calc.java", []parser.Diagnostic{
		lintDiag("b/Calc.java", 30, "missing description"),
		lintDiag("b/Calc.java", 12, "parameter x has no description"),
	})
	r.Add("a/Clean.java", nil)
	r.Add("a/Odd.java", []parser.Diagnostic{{Kind: parser.DiagnosticStructural, File: "a/Odd.java", Line: 4, Message: "nested type skipped"}})

	assert.Equal(t, []string{"a/Clean.java", "a/Odd.java", "b/Calc.java"}, r.Files())
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 2, r.Count(parser.DiagnosticLint))
	assert.Equal(t, 1, r.Count(parser.DiagnosticStructural))
	assert.Equal(t, 12, r.Diagnostics("b/Calc.java")[0].Line)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	expected := "a/Odd.java:4: nested type skipped\n" +
		"b/Calc.java:12: Calc: parameter x has no description\n" +
		"b/Calc.java:30: Calc: missing description\n" +
		"2 lint findings, 1 structural in 3 files\n"
	assert.Equal(t, expected, buf.String())
}

func TestReportMerge(t *testing.T) {
	a := NewReport()
	a.Add("Calc.java", []parser.Diagnostic{lintDiag("Calc.java", 9, "missing description")})
	b := NewReport()
	b.Add("Calc.java", []parser.Diagnostic{lintDiag("Calc.java", 3, "missing description")})
	b.Add("Other.java", nil)

	a.Merge(b)
	a.Merge(nil)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"Calc.java", "Other.java"}, a.Files())
	assert.Equal(t, 3, a.Diagnostics("Calc.java")[0].Line)
}

func TestToProtocol(t *testing.T) {
	diags := ToProtocol([]parser.Diagnostic{
		lintDiag("Calc.java", 30, "missing description"),
		{Kind: parser.DiagnosticStructural, Line: 0, Message: "unsupported file"},
	})
	require.Len(t, diags, 2)

	assert.Equal(t, protocol.UInteger(29), diags[0].Range.Start.Line)
	assert.Equal(t, protocol.UInteger(30), diags[0].Range.End.Line)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diags[0].Severity)
	assert.Equal(t, "Calc: missing description", diags[0].Message)
	assert.Equal(t, "lojidoc", *diags[0].Source)

	assert.Equal(t, protocol.UInteger(0), diags[1].Range.Start.Line)
	assert.Equal(t, protocol.DiagnosticSeverityInformation, *diags[1].Severity)
	assert.Equal(t, "unsupported file", diags[1].Message)
}
