package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/lojidoc/java"
)

// buildMethod reads a method or constructor statement and merges the doc
// comment that precedes it.
func buildMethod(elements []Element, doc *java.Doc, line int) java.Method {
	if doc == nil {
		doc = &java.Doc{}
	}
	m := java.Method{Line: line}

	const (
		beforeParams = iota
		inParams
		afterParams
	)
	var (
		phase     = beforeParams
		depth     int
		head      []Element
		paramType string
		declared  []java.Param
		throwing  bool
		thrown    []string
	)
	for _, e := range elements {
		switch phase {
		case beforeParams:
			switch e.Kind {
			case ElementAccess:
				m.Access = java.Access(e.Value)
			case ElementModifier:
				m.Modifiers = append(m.Modifiers, e.Value)
			case ElementType, ElementVariable:
				head = append(head, e)
			case ElementParams:
				phase = inParams
				depth = 1
			}
		case inParams:
			switch e.Kind {
			case ElementParams:
				depth++
			case ElementParamsEnd:
				depth--
				if depth == 0 {
					phase = afterParams
				}
			case ElementType:
				paramType = e.Value
			case ElementVariable:
				declared = append(declared, java.Param{Name: e.Value, Type: paramType})
				paramType = ""
			}
		case afterParams:
			switch e.Kind {
			case ElementException:
				throwing = true
			case ElementType, ElementVariable:
				if throwing {
					thrown = append(thrown, e.Value)
				}
			}
		}
	}

	if n := len(head); n > 0 {
		m.Name = head[n-1].Value
		if n > 1 && head[n-2].Kind == ElementType && !strings.HasPrefix(head[n-2].Value, "<") {
			m.ReturnType = head[n-2].Value
		}
	}
	m.Description = doc.Description
	m.ReturnDescription = doc.Return
	m.Deprecated = doc.Deprecated
	m.Parameters = MatchParams(declared, doc.Params)
	m.Exceptions = matchExceptions(thrown, doc.Exceptions)
	return m
}

// matchExceptions pairs each thrown type with the documented entry of the
// same type, falling back to the first entry not yet used.
func matchExceptions(thrown []string, documented []java.Exception) []java.Exception {
	if len(thrown) == 0 {
		return nil
	}
	used := make([]bool, len(documented))
	result := make([]java.Exception, 0, len(thrown))
	for _, typ := range thrown {
		idx := -1
		for i, ex := range documented {
			if !used[i] && sameType(ex.Type, typ) {
				idx = i
				break
			}
		}
		if idx < 0 {
			for i := range documented {
				if !used[i] {
					idx = i
					break
				}
			}
		}
		ex := java.Exception{Type: typ}
		if idx >= 0 {
			used[idx] = true
			ex.Description = documented[idx].Description
		}
		result = append(result, ex)
	}
	return result
}

func sameType(a, b string) bool {
	return a == b || simpleName(a) == simpleName(b)
}

func simpleName(s string) string {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// lintMethod lists what is missing from a method's documentation.
func lintMethod(m java.Method, doc *java.Doc) []string {
	var findings []string
	if doc == nil || doc.Description == "" {
		findings = append(findings, "missing description")
	}
	if m.ReturnType != "" && (doc == nil || doc.Return == "") {
		findings = append(findings, fmt.Sprintf("missing @return description for %s", m.ReturnType))
	}
	if doc != nil {
		for _, documented := range doc.Params {
			if !hasParam(m.Parameters, documented.Name) {
				findings = append(findings, fmt.Sprintf("documented parameter %s does not match any declared parameter", documented.Name))
			}
		}
	}
	for _, param := range m.Parameters {
		if param.Description == "" || param.Description == java.NoDescription {
			findings = append(findings, fmt.Sprintf("parameter %s has no description", param.Name))
		}
	}
	return findings
}

func hasParam(params []java.Param, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}
