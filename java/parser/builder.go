package parser

import (
	"strings"

	"github.com/dhamidi/lojidoc/java"
)

// builder accumulates the one top-level declaration of a file until it is
// projected into a Class, Interface or Enumeration.
type builder struct {
	kind       java.Kind
	name       string
	pkg        string
	parents    []string
	interfaces []string
	access     java.Access
	modifiers  []string
	deps       []string
	fields     []java.EnumField
	members    []java.Member
	methods    []java.Method
	license    string
	signature  string
	line       int
	doc        *java.Doc
}

// readHeader fills name, access, modifiers and supertypes from the
// elements of a type header such as
// "public final class Foo<T> extends Bar implements Baz, Qux".
func (b *builder) readHeader(elements []Element) {
	section := ElementAccess
	seenObject := false
	for _, e := range elements {
		switch e.Kind {
		case ElementAccess:
			b.access = java.Access(e.Value)
		case ElementModifier:
			b.modifiers = append(b.modifiers, e.Value)
		case ElementObject:
			seenObject = true
			section = ElementObject
		case ElementParent, ElementImplement:
			section = e.Kind
		case ElementType, ElementVariable:
			if e.Value == "permits" {
				section = ElementAccess
				continue
			}
			switch {
			case !seenObject:
				// sealed, non-sealed
				b.modifiers = append(b.modifiers, e.Value)
			case section == ElementObject:
				if b.name == "" {
					b.name = typeName(e.Value)
				}
			case section == ElementParent:
				b.parents = append(b.parents, e.Value)
			case section == ElementImplement:
				b.interfaces = append(b.interfaces, e.Value)
			}
		}
	}
}

// typeName strips type parameters from a declared name.
func typeName(s string) string {
	if i := strings.IndexByte(s, '<'); i >= 0 {
		return s[:i]
	}
	return s
}

func (b *builder) header() java.Header {
	h := java.Header{
		Name:         b.name,
		Package:      b.pkg,
		Access:       b.access,
		Modifiers:    b.modifiers,
		License:      b.license,
		Signature:    b.signature,
		Line:         b.line,
		Dependencies: b.deps,
		Members:      b.members,
		Methods:      b.methods,
	}
	if d := b.doc; d != nil {
		h.Description = d.Description
		h.Author = d.Author
		h.Version = d.Version
		h.Since = d.Since
		h.Deprecation = d.Deprecated
		h.See = d.See
	}
	return h
}

func (b *builder) project() java.Declaration {
	h := b.header()
	switch b.kind {
	case java.KindInterface:
		return &java.Interface{
			Header:  h,
			Extends: b.parents,
		}
	case java.KindEnumeration:
		return &java.Enumeration{
			Header:     h,
			Interfaces: b.interfaces,
			Fields:     b.fields,
		}
	default:
		c := &java.Class{
			Header:     h,
			Interfaces: b.interfaces,
		}
		if len(b.parents) > 0 {
			c.Parent = b.parents[0]
		}
		if b.doc != nil {
			c.Exceptions = b.doc.Exceptions
		}
		return c
	}
}
