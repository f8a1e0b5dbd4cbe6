package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/lojidoc/java"
)

// docTokens returns the tokens between the first "/**" and "*/" of src.
func docTokens(src string) []Token {
	var out []Token
	in := false
	for _, t := range Lex(src) {
		switch {
		case t.Is("/**"):
			in = true
		case t.Is("*/"):
			in = false
		case in:
			out = append(out, t)
		}
	}
	return out
}

func TestParseDoc(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want java.Doc
	}{
		{
			name: "param and return",
			src:  "/** @param x hello @return world */",
			want: java.Doc{
				Params: []java.Param{{Name: "x", Description: "hello"}},
				Return: "world",
			},
		},
		{
			name: "author and version",
			src:  "/** Example. @author Jane @version 1.0 */",
			want: java.Doc{
				Description: "Example.",
				Author:      "Jane",
				Version:     "1.0",
			},
		},
		{
			name: "paragraphs",
			src:  "/**\n * First line\n * continues.\n *\n * Second.\n */",
			want: java.Doc{
				Description: "First line continues.\n\nSecond.",
			},
		},
		{
			name: "throws and see",
			src:  "/** Does it. @throws IOException when broken @see Other */",
			want: java.Doc{
				Description: "Does it.",
				Exceptions:  []java.Exception{{Type: "IOException", Description: "when broken"}},
				See:         []string{"Other"},
			},
		},
		{
			name: "inline tags stay in prose",
			src:  "/** Use {@code x} here. */",
			want: java.Doc{
				Description: "Use {@code x} here.",
			},
		},
		{
			name: "several params keep order",
			src:  "/**\n * Adds.\n * @param b the second\n * @param a the first\n * @since 2.1\n * @deprecated use plus\n */",
			want: java.Doc{
				Description: "Adds.",
				Params: []java.Param{
					{Name: "b", Description: "the second"},
					{Name: "a", Description: "the first"},
				},
				Since:      "2.1",
				Deprecated: "use plus",
			},
		},
		{
			name: "keywords in prose are words",
			src:  "/** Returns this class instance. */",
			want: java.Doc{
				Description: "Returns this class instance.",
			},
		},
		{
			name: "value tags are ignored",
			src:  "/** Text. @serialData hidden words */",
			want: java.Doc{
				Description: "Text.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := ParseDoc(docTokens(tt.src))
			if len(diags) != 0 {
				t.Errorf("unexpected diagnostics: %v", diags)
			}
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("ParseDoc()\n got: %+v\nwant: %+v", *got, tt.want)
			}
		})
	}
}

func TestParseDocUnknownTag(t *testing.T) {
	src := "/**\n * Text.\n * @custom stuff\n * @since 2.0\n */"
	doc, diags := ParseDoc(docTokens(src))

	if doc.Description != "Text." {
		t.Errorf("Description = %q, want %q", doc.Description, "Text.")
	}
	if doc.Since != "2.0" {
		t.Errorf("Since = %q, want %q", doc.Since, "2.0")
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Line != 3 {
		t.Errorf("Line = %d, want 3", diags[0].Line)
	}
	if !strings.Contains(diags[0].Message, "@custom") {
		t.Errorf("Message = %q, want it to name the tag", diags[0].Message)
	}
}

func TestParseDocMidLineAt(t *testing.T) {
	doc, diags := ParseDoc(docTokens("/** Mark it with @Nullable when absent. */"))
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if want := "Mark it with @Nullable when absent."; doc.Description != want {
		t.Errorf("Description = %q, want %q", doc.Description, want)
	}
}
