package java

import "strings"

type Kind string

const (
	KindClass       Kind = "class"
	KindInterface   Kind = "interface"
	KindEnumeration Kind = "enum"
)

// Declaration is the top-level type recovered from one source file. It is
// implemented by *Class, *Interface and *Enumeration only.
type Declaration interface {
	Kind() Kind
	Info() *Header
	declaration()
}

// Header holds the fields shared by every kind of declaration.
type Header struct {
	Name         string   `json:"name"`
	Package      string   `json:"package,omitempty"`
	Access       Access   `json:"access,omitempty"`
	Modifiers    []string `json:"modifiers,omitempty"`
	Description  string   `json:"description,omitempty"`
	Author       string   `json:"author,omitempty"`
	Version      string   `json:"version,omitempty"`
	Since        string   `json:"since,omitempty"`
	Deprecation  string   `json:"deprecation,omitempty"`
	See          []string `json:"see,omitempty"`
	License      string   `json:"license,omitempty"`
	Signature    string   `json:"signature,omitempty"`
	Line         int      `json:"line,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Members      []Member `json:"members,omitempty"`
	Methods      []Method `json:"methods,omitempty"`

	// Source is the path or repository URL the declaration was read from.
	// Renderers append a line anchor to it.
	Source URLString `json:"source,omitempty"`
}

// QualifiedName returns the package-qualified name, or the bare name for
// declarations in the default package.
func (h *Header) QualifiedName() string {
	if h.Package == "" {
		return h.Name
	}
	return h.Package + "." + h.Name
}

type Class struct {
	Header
	Parent     string      `json:"parent,omitempty"`
	Interfaces []string    `json:"interfaces,omitempty"`
	Exceptions []Exception `json:"exceptions,omitempty"`
}

type Interface struct {
	Header
	Extends []string `json:"extends,omitempty"`
}

type Enumeration struct {
	Header
	Interfaces []string    `json:"interfaces,omitempty"`
	Fields     []EnumField `json:"fields,omitempty"`
}

func (*Class) Kind() Kind       { return KindClass }
func (*Interface) Kind() Kind   { return KindInterface }
func (*Enumeration) Kind() Kind { return KindEnumeration }

func (c *Class) Info() *Header       { return &c.Header }
func (i *Interface) Info() *Header   { return &i.Header }
func (e *Enumeration) Info() *Header { return &e.Header }

func (*Class) declaration()       {}
func (*Interface) declaration()   {}
func (*Enumeration) declaration() {}

// Title is the heading used for a declaration, e.g. "Class Foo".
func Title(d Declaration) string {
	var kind string
	switch d.(type) {
	case *Interface:
		kind = "Interface"
	case *Enumeration:
		kind = "Enum"
	default:
		kind = "Class"
	}
	return kind + " " + d.Info().Name
}

// IsEmpty reports whether a declaration carries nothing a reader could use,
// which is the case for the placeholder returned for unsupported files.
func IsEmpty(d Declaration) bool {
	if d == nil {
		return true
	}
	h := d.Info()
	return strings.TrimSpace(h.Name) == "" && len(h.Methods) == 0 && len(h.Members) == 0
}
