// Package javadoc renders the inline markup found in documentation comment
// text (inline tags, HTML and entities) as markdown.
package javadoc

// Node is the interface implemented by all inline nodes.
type Node interface {
	node()
}

// Text represents plain text content.
type Text struct {
	Content string
}

func (Text) node() {}

// Code represents an {@code ...} inline tag.
type Code struct {
	Content string
}

func (Code) node() {}

// Literal represents an {@literal ...} inline tag.
type Literal struct {
	Content string
}

func (Literal) node() {}

// Link represents an {@link ...} or {@linkplain ...} inline tag.
type Link struct {
	Reference string // e.g. "java.util.List#add(E)"
	Label     []Node
	Plain     bool // true for @linkplain
}

func (Link) node() {}

// Value represents an {@value ...} inline tag.
type Value struct {
	Reference string
}

func (Value) node() {}

type DocRoot struct{}

func (DocRoot) node() {}

type InheritDoc struct{}

func (InheritDoc) node() {}

// UnknownInlineTag keeps the content of an inline tag with no rendering.
type UnknownInlineTag struct {
	Name    string
	Content string
}

func (UnknownInlineTag) node() {}

// StartElement represents the start of an HTML element.
type StartElement struct {
	Name       string
	Attributes []Attribute
	SelfClose  bool
}

func (StartElement) node() {}

// EndElement represents the end of an HTML element.
type EndElement struct {
	Name string
}

func (EndElement) node() {}

type Attribute struct {
	Name  string
	Value string
}

// Entity represents an HTML entity like &nbsp; or &#160;.
type Entity struct {
	Name string // without & and ;
}

func (Entity) node() {}
