// Package parser extracts documentation-level structure from Java source
// without a full grammar.
//
// # Overview
//
// Parsing runs in three cooperating stages that share one token loop:
//
//	┌─────────────┐     ┌─────────────┐     ┌──────────────┐
//	│   Source    │────▶│    Lex      │────▶│  Construct   │
//	│  (string)   │     │  (tokens)   │     │ (Declaration)│
//	└─────────────┘     └─────────────┘     └──────────────┘
//	                                           │        │
//	                                           ▼        ▼
//	                                    ┌──────────┐ ┌──────────┐
//	                                    │Classifier│ │ ParseDoc │
//	                                    └──────────┘ └──────────┘
//
// The lexer tracks brace depth and only emits tokens for file scope and the
// body of the declared type, so method bodies are never looked at. The
// constructor routes tokens either to the [Classifier], which turns each
// statement into a list of [Element] values, or to [ParseDoc] while a
// documentation comment is open. Each ";" or "{" interprets the buffered
// statement as a package, import, type header, field or method.
//
// # Recovery
//
// Nothing in this package fails on malformed input. Irregularities are
// recovered locally and reported as [Diagnostic] values next to a best
// effort result:
//
//	decl, diags := parser.Parse(src, parser.WithFile("Foo.java"), parser.WithLint())
//	for _, d := range diags {
//	    fmt.Println(d)
//	}
//
// Parsing is a pure function of the input, so files can be parsed
// concurrently without synchronization.
package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/lojidoc/java"
)

type docState int

const (
	docDescription docState = iota
	docParam
	docReturn
	docAuthor
	docDeprecated
	docException
	docVersion
	docSee
	docSince
	docIgnored
)

var docStates = map[string]docState{
	"@param":      docParam,
	"@return":     docReturn,
	"@author":     docAuthor,
	"@deprecated": docDeprecated,
	"@throws":     docException,
	"@exception":  docException,
	"@version":    docVersion,
	"@see":        docSee,
	"@link":       docSee,
	"@linkplain":  docSee,
	"@since":      docSince,
}

type docParser struct {
	doc       *java.Doc
	state     docState
	words     []string
	line      int
	lineWords int
	paragraph bool
	diags     []Diagnostic
}

// ParseDoc builds a Doc from the tokens between "/**" and "*/". Unknown
// block tags are reported and their text is dropped.
func ParseDoc(tokens []Token) (*java.Doc, []Diagnostic) {
	p := &docParser{doc: &java.Doc{}}
	for _, t := range tokens {
		switch t.Kind {
		case TokenLineNumber:
			p.newline(t.Line)
		case TokenKeyword, TokenSymbol:
			p.word(t)
		}
	}
	p.commit()
	return p.doc, p.diags
}

func (p *docParser) newline(line int) {
	if p.lineWords == 0 && len(p.words) > 0 {
		p.paragraph = true
	}
	p.line = line
	p.lineWords = 0
}

func (p *docParser) word(t Token) {
	s := t.Literal
	if strings.Trim(s, "*") == "" {
		return
	}
	atLineStart := p.lineWords == 0
	p.lineWords++

	if t.Kind == TokenKeyword && IsDocKeyword(s) {
		p.commit()
		if state, ok := docStates[s]; ok {
			p.state = state
		} else {
			p.state = docIgnored
		}
		return
	}
	if atLineStart && isBlockTag(s) {
		p.commit()
		p.state = docIgnored
		p.diags = append(p.diags, Diagnostic{
			Kind:    DiagnosticStructural,
			Line:    p.line,
			Message: fmt.Sprintf("unknown documentation tag %s", s),
		})
		return
	}

	if p.paragraph && len(p.words) > 0 {
		p.words = append(p.words, "\n\n")
	}
	p.paragraph = false
	p.words = append(p.words, s)
}

func isBlockTag(s string) bool {
	if len(s) < 2 || s[0] != '@' {
		return false
	}
	c := s[1]
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// commit stores the buffered words in the slot for the current state.
func (p *docParser) commit() {
	words := p.words
	p.words = nil
	p.paragraph = false
	if len(words) == 0 {
		return
	}
	d := p.doc
	switch p.state {
	case docDescription:
		d.Description = appendText(d.Description, joinWords(words))
	case docParam:
		d.Params = append(d.Params, java.Param{
			Name:        words[0],
			Description: joinWords(words[1:]),
		})
	case docReturn:
		d.Return = appendText(d.Return, joinWords(words))
	case docAuthor:
		if d.Author != "" {
			d.Author += ", "
		}
		d.Author += joinWords(words)
	case docDeprecated:
		d.Deprecated = appendText(d.Deprecated, joinWords(words))
	case docException:
		d.Exceptions = append(d.Exceptions, java.Exception{
			Type:        words[0],
			Description: joinWords(words[1:]),
		})
	case docVersion:
		d.Version = appendText(d.Version, joinWords(words))
	case docSee:
		d.See = append(d.See, joinWords(words))
	case docSince:
		d.Since = appendText(d.Since, joinWords(words))
	}
}

func joinWords(words []string) string {
	var b strings.Builder
	for i, w := range words {
		if w == "\n\n" {
			b.WriteString(w)
			continue
		}
		if i > 0 && words[i-1] != "\n\n" {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	return strings.TrimSpace(b.String())
}

func appendText(existing, text string) string {
	if existing == "" {
		return text
	}
	return existing + " " + text
}
