package parser

import "encoding/json"

type jsonToken struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal,omitempty"`
	Line    int    `json:"line,omitempty"`
}

type jsonDiagnostic struct {
	Kind    string `json:"kind"`
	File    string `json:"file,omitempty"`
	Name    string `json:"name,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (t Token) MarshalJSON() ([]byte, error) {
	jt := jsonToken{
		Kind: t.Kind.String(),
	}
	switch t.Kind {
	case TokenLineNumber:
		jt.Line = t.Line
	case TokenKeyword, TokenSymbol, TokenExpressionEnd:
		jt.Literal = t.Literal
	}
	return json.Marshal(jt)
}

func (e Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonToken{
		Kind:    e.Kind.String(),
		Literal: e.Value,
	})
}

func (d Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonDiagnostic{
		Kind:    d.Kind.String(),
		File:    d.File,
		Name:    d.Name,
		Line:    d.Line,
		Message: d.Message,
	})
}
