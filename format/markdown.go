package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/lojidoc/java"
	"github.com/dhamidi/lojidoc/java/javadoc"
)

type MarkdownOptions struct {
	// IncludeSignatures adds the declaration line of every type, member and
	// method as a fenced java block.
	IncludeSignatures bool
	// Ignore omits members and methods with these access levels.
	Ignore []java.Access
}

// MarkdownEncoder renders one declaration as a markdown page.
type MarkdownEncoder struct {
	w    io.Writer
	decl java.Declaration
	opts MarkdownOptions
	sb   strings.Builder
}

func NewMarkdownEncoder(w io.Writer, opts MarkdownOptions) *MarkdownEncoder {
	return &MarkdownEncoder{w: w, opts: opts}
}

func (e *MarkdownEncoder) Encode(d java.Declaration) error {
	e.decl = d
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *MarkdownEncoder) MarshalText() ([]byte, error) {
	if e.decl == nil {
		return nil, fmt.Errorf("markdown: no declaration to encode")
	}
	e.sb.Reset()
	e.writeHeader()
	if en, ok := e.decl.(*java.Enumeration); ok {
		e.writeEnumFields(en.Fields)
	}
	e.writeMembers()
	e.writeMethods()
	return []byte(e.sb.String()), nil
}

// Markdown renders d with opts.
func Markdown(d java.Declaration, opts MarkdownOptions) ([]byte, error) {
	e := &MarkdownEncoder{decl: d, opts: opts}
	return e.MarshalText()
}

func (e *MarkdownEncoder) printf(format string, args ...any) {
	fmt.Fprintf(&e.sb, format, args...)
}

func (e *MarkdownEncoder) writeHeader() {
	h := e.decl.Info()
	title := java.Title(e.decl)
	if src := h.Source.String(); src != "" {
		e.printf("# %s [[src]](%s)  \n\n", title, src)
	} else {
		e.printf("# %s\n\n", title)
	}

	if h.License != "" {
		e.printf("<details>  \n")
		e.printf("  <summary>  \n")
		e.printf("    Show license  \n\n")
		e.printf("  </summary>  \n\n")
		e.printf("%s\n\n", strings.TrimSpace(h.License))
		e.printf("</details>  \n\n")
	}

	e.printf("Access: %s  \n", h.Access)
	if len(h.Modifiers) > 0 {
		e.printf("Modifiers: %s  \n", strings.Join(h.Modifiers, " "))
	}
	if h.Description != "" {
		e.printf("Description:  \n%s\n\n", quote(javadoc.Render(h.Description)))
	}
	if h.Author != "" {
		e.printf("Author: %s  \n", h.Author)
	}
	if h.Version != "" {
		e.printf("Version: %s  \n", h.Version)
	}
	if h.Since != "" {
		e.printf("Since: %s  \n", h.Since)
	}
	if h.Deprecation != "" {
		e.printf("Deprecated: %s  \n", javadoc.RenderInline(h.Deprecation))
	}

	switch d := e.decl.(type) {
	case *java.Class:
		if d.Parent != "" {
			e.printf("Parent class: %s  \n", d.Parent)
		}
		e.writeList("Interfaces", d.Interfaces)
	case *java.Interface:
		e.writeList("Extends", d.Extends)
	case *java.Enumeration:
		e.writeList("Interfaces", d.Interfaces)
	}

	if h.Package != "" {
		e.printf("Package: %s  \n\n", h.Package)
	} else {
		e.printf("Package: (default)  \n\n")
	}

	if c, ok := e.decl.(*java.Class); ok && len(c.Exceptions) > 0 {
		for _, ex := range c.Exceptions {
			e.printf("Throws %s: %s  \n", ex.Type, javadoc.RenderInline(ex.Description))
		}
		e.printf("\n")
	}

	if len(h.See) > 0 {
		e.printf("See also:  \n")
		for _, see := range h.See {
			e.printf("- %s  \n", javadoc.RenderInline(see))
		}
		e.printf("\n")
	}

	e.writeSignature(h.Signature)

	if len(h.Dependencies) > 0 {
		e.printf("## Dependencies\n\n")
		e.printf("<details>  \n")
		e.printf("  <summary>  \n")
		e.printf("    Show dependencies  \n")
		e.printf("  </summary>  \n\n")
		for _, dep := range h.Dependencies {
			e.printf("- %s\n", dep)
		}
		e.printf("\n</details>  \n\n")
	}
}

func (e *MarkdownEncoder) writeList(label string, items []string) {
	if len(items) == 0 {
		return
	}
	e.printf("%s:  \n", label)
	for _, item := range items {
		e.printf("- %s  \n", item)
	}
	e.printf("\n")
}

func (e *MarkdownEncoder) writeSignature(sig string) {
	if !e.opts.IncludeSignatures || sig == "" {
		return
	}
	e.printf("```java\n%s\n```\n\n", sig)
}

func (e *MarkdownEncoder) writeEnumFields(fields []java.EnumField) {
	if len(fields) == 0 {
		return
	}
	e.printf("## Enum Fields\n\n")
	for _, f := range fields {
		if f.Value != "" {
			e.printf("- `%s(%s)`\n", f.Name, f.Value)
		} else {
			e.printf("- `%s`\n", f.Name)
		}
	}
	e.printf("\n")
}

func (e *MarkdownEncoder) writeMembers() {
	var members []java.Member
	for _, m := range e.decl.Info().Members {
		if !e.ignored(m.Access) {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		e.printf("## No member variables in this %s\n\n", e.kindNoun())
		return
	}

	e.printf("## Member Variables\n\n")
	for _, m := range members {
		heading := m.Type + " " + m.Name
		if link := e.sourceLink(m.Line); link != "" {
			e.printf("#### %s [[src]](%s)\n\n", heading, link)
		} else {
			e.printf("#### %s\n\n", heading)
		}
		e.writeSignature(m.Signature)
		if m.Description != "" {
			e.printf("+ Description: %s  \n", javadoc.RenderInline(m.Description))
		}
		e.printf("+ Access: %s  \n", m.Access)
		if len(m.Modifiers) > 0 {
			e.printf("+ Modifiers: %s  \n", strings.Join(m.Modifiers, " "))
		}
		e.printf("\n")
	}
}

func (e *MarkdownEncoder) writeMethods() {
	var methods []java.Method
	for _, m := range e.decl.Info().Methods {
		if m.Name != "" && !e.ignored(m.Access) {
			methods = append(methods, m)
		}
	}
	if len(methods) == 0 {
		e.printf("## No methods in this %s\n\n", e.kindNoun())
		return
	}

	e.printf("## Methods\n\n")
	for _, m := range methods {
		if link := e.sourceLink(m.Line); link != "" {
			e.printf("### %s [[src]](%s)\n\n", m.Name, link)
		} else {
			e.printf("### %s\n\n", m.Name)
		}
		e.writeSignature(m.Signature)
		e.printf("+ Description: %s  \n", javadoc.RenderInline(m.Description))
		e.printf("+ Access: %s  \n", m.Access)
		if len(m.Modifiers) > 0 {
			e.printf("+ Modifiers: %s  \n", strings.Join(m.Modifiers, " "))
		}
		if m.Deprecated != "" {
			e.printf("+ Deprecated: %s  \n", javadoc.RenderInline(m.Deprecated))
		}
		for _, ex := range m.Exceptions {
			e.printf("+ Throws %s: %s  \n", ex.Type, javadoc.RenderInline(ex.Description))
		}
		if m.ReturnType != "" {
			if m.ReturnDescription != "" {
				e.printf("+ Return: `%s` %s  \n", m.ReturnType, javadoc.RenderInline(m.ReturnDescription))
			} else {
				e.printf("+ Return: `%s`  \n", m.ReturnType)
			}
		}
		e.printf("\n")

		if len(m.Parameters) == 0 {
			e.printf("This method has no parameters.\n\n")
			continue
		}
		e.printf("| Name | Type | Description |\n")
		e.printf("| ----- | ----- | ----- |\n")
		for _, p := range m.Parameters {
			e.printf("| %s | %s | %s |\n", cell(p.Name), cell(p.Type), cell(javadoc.RenderInline(p.Description)))
		}
		e.printf("\n")
	}
}

func (e *MarkdownEncoder) sourceLink(line int) string {
	return e.decl.Info().Source.AtLine(line)
}

func (e *MarkdownEncoder) ignored(access java.Access) bool {
	for _, a := range e.opts.Ignore {
		if a == access {
			return true
		}
	}
	return false
}

func (e *MarkdownEncoder) kindNoun() string {
	switch e.decl.(type) {
	case *java.Interface:
		return "interface"
	case *java.Enumeration:
		return "enum"
	}
	return "class"
}

// quote renders text as a markdown block quote.
func quote(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

// cell escapes text for a table cell.
func cell(text string) string {
	text = strings.ReplaceAll(text, "|", `\|`)
	return strings.ReplaceAll(text, "\n", " ")
}
