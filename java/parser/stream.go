package parser

import (
	"fmt"
	"strings"
)

type ElementKind int

const (
	ElementPackage ElementKind = iota
	ElementImport
	ElementException
	ElementImplement
	ElementParent
	ElementObject
	ElementAccess
	ElementModifier
	ElementType
	ElementVariable
	ElementParams
	ElementParamsEnd
)

var elementKindNames = map[ElementKind]string{
	ElementPackage:   "Package",
	ElementImport:    "Import",
	ElementException: "Exception",
	ElementImplement: "Implement",
	ElementParent:    "Parent",
	ElementObject:    "Object",
	ElementAccess:    "Access",
	ElementModifier:  "Modifier",
	ElementType:      "Type",
	ElementVariable:  "Variable",
	ElementParams:    "Params",
	ElementParamsEnd: "ParamsEnd",
}

func (k ElementKind) String() string {
	if name, ok := elementKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Element is a token reclassified by its role in the current statement.
type Element struct {
	Kind  ElementKind
	Value string
}

func (e Element) String() string {
	if e.Value == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.Value)
}

func (e Element) isAssign() bool {
	return e.Kind == ElementVariable && e.Value == "="
}

var markerKeywords = map[string]ElementKind{
	"package":    ElementPackage,
	"import":     ElementImport,
	"throws":     ElementException,
	"extends":    ElementParent,
	"implements": ElementImplement,
}

var modifierKeywords = map[string]struct{}{
	"static":       {},
	"final":        {},
	"abstract":     {},
	"synchronized": {},
	"volatile":     {},
	"transient":    {},
	"native":       {},
}

// Classifier buffers the elements of one statement. Symbols are held back
// until a boundary tells whether they name a type or a variable.
type Classifier struct {
	elements []Element
	pending  []string
}

// Push classifies a keyword or symbol token. Keywords with no role in a
// declaration (void, new, return, ...) are dropped.
func (c *Classifier) Push(t Token) {
	switch t.Kind {
	case TokenKeyword:
		c.pushKeyword(t.Literal)
	case TokenSymbol:
		c.pushSymbol(t.Literal)
	}
}

func (c *Classifier) pushKeyword(kw string) {
	switch kw {
	case "class", "interface", "enum":
		c.flushPending()
		c.elements = append(c.elements, Element{Kind: ElementObject, Value: kw})
	case "public", "protected", "private":
		c.flushPending()
		c.elements = append(c.elements, Element{Kind: ElementAccess, Value: kw})
	default:
		if kind, ok := markerKeywords[kw]; ok {
			c.flushPending()
			c.elements = append(c.elements, Element{Kind: kind})
			return
		}
		if _, ok := modifierKeywords[kw]; ok {
			c.flushPending()
			c.elements = append(c.elements, Element{Kind: ElementModifier, Value: kw})
		}
	}
}

func (c *Classifier) pushSymbol(s string) {
	if s == "" {
		return
	}
	if s == "=" {
		c.flushPending()
		c.elements = append(c.elements, Element{Kind: ElementVariable, Value: "="})
		return
	}
	i := strings.IndexByte(s, '=')
	if i < 0 || strings.ContainsAny(s, "\"'") || isOperator(s) {
		c.pending = append(c.pending, s)
		return
	}
	c.pushSymbol(s[:i])
	c.pushSymbol("=")
	c.pushSymbol(s[i+1:])
}

func isOperator(s string) bool {
	switch s {
	case "==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=":
		return true
	}
	return false
}

// Join marks a "," boundary.
func (c *Classifier) Join() {
	c.flushPending()
}

// ParamStart marks a "(" boundary and opens a parameter list.
func (c *Classifier) ParamStart() {
	c.flushPending()
	c.elements = append(c.elements, Element{Kind: ElementParams})
}

// ParamEnd marks a ")" boundary and closes the parameter list.
func (c *Classifier) ParamEnd() {
	c.flushPending()
	c.elements = append(c.elements, Element{Kind: ElementParamsEnd})
}

// Flush interprets what is left of the statement and returns its elements,
// leaving the classifier empty.
func (c *Classifier) Flush() []Element {
	c.flushPending()
	elements := c.elements
	c.elements = nil
	return elements
}

// Reset drops the statement without interpreting it.
func (c *Classifier) Reset() {
	c.elements = nil
	c.pending = c.pending[:0]
}

// Empty reports whether nothing has been buffered since the last flush.
func (c *Classifier) Empty() bool {
	return len(c.elements) == 0 && len(c.pending) == 0
}

func (c *Classifier) flushPending() {
	switch n := len(c.pending); n {
	case 0:
		return
	case 1:
		c.elements = append(c.elements, Element{Kind: ElementVariable, Value: c.pending[0]})
	default:
		for _, s := range c.pending[:n-1] {
			c.elements = append(c.elements, Element{Kind: ElementType, Value: s})
		}
		c.elements = append(c.elements, Element{Kind: ElementVariable, Value: c.pending[n-1]})
	}
	c.pending = c.pending[:0]
}

// hasParams reports whether a parameter list opens before any initializer,
// which is what separates a method from a field.
func hasParams(elements []Element) bool {
	for _, e := range elements {
		if e.isAssign() {
			return false
		}
		if e.Kind == ElementParams {
			return true
		}
	}
	return false
}

func hasAssign(elements []Element) bool {
	for _, e := range elements {
		if e.isAssign() {
			return true
		}
	}
	return false
}

func hasKind(elements []Element, kind ElementKind) bool {
	for _, e := range elements {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// valueAfter returns the last Type or Variable value that follows the first
// element of the given kind, stopping at the next marker.
func valueAfter(elements []Element, kind ElementKind) string {
	var value string
	found := false
	for _, e := range elements {
		if !found {
			found = e.Kind == kind
			continue
		}
		switch e.Kind {
		case ElementType, ElementVariable:
			value = e.Value
		case ElementModifier:
		default:
			return value
		}
	}
	return value
}
