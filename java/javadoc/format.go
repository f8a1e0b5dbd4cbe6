package javadoc

import (
	"strings"
)

// Render turns description text into markdown. Paragraph breaks ("\n\n")
// are kept; HTML block elements become their markdown equivalents.
func Render(text string) string {
	if text == "" {
		return ""
	}
	out := formatNodes(ParseInline(text))
	return strings.TrimSpace(normalizeWhitespace(out))
}

// RenderInline renders text like Render but on a single line, for table
// cells and headings.
func RenderInline(text string) string {
	return strings.Join(strings.Fields(Render(text)), " ")
}

// Plain strips all markup from text.
func Plain(text string) string {
	var sb strings.Builder
	for _, node := range ParseInline(text) {
		sb.WriteString(formatNodePlain(node))
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func formatNodes(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		sb.WriteString(formatNode(node))
	}
	return sb.String()
}

func formatNode(node Node) string {
	switch n := node.(type) {
	case Text:
		return n.Content
	case Code:
		content := strings.TrimSpace(n.Content)
		if strings.Contains(content, "\n") {
			return "\n```java\n" + content + "\n```\n"
		}
		return "`" + content + "`"
	case Literal:
		return n.Content
	case Link:
		if len(n.Label) > 0 {
			return strings.TrimSpace(formatNodes(n.Label))
		}
		if n.Plain {
			return formatReference(n.Reference)
		}
		return "`" + formatReference(n.Reference) + "`"
	case Value:
		if n.Reference == "" {
			return ""
		}
		return "`" + formatReference(n.Reference) + "`"
	case DocRoot:
		return ""
	case InheritDoc:
		return "*(inherited)*"
	case UnknownInlineTag:
		return n.Content
	case StartElement:
		return formatStartElement(n)
	case EndElement:
		return formatEndElement(n)
	case Entity:
		return decodeEntity(n.Name)
	default:
		return ""
	}
}

func formatNodePlain(node Node) string {
	switch n := node.(type) {
	case Text:
		return n.Content
	case Code:
		return n.Content
	case Literal:
		return n.Content
	case Link:
		if len(n.Label) > 0 {
			var sb strings.Builder
			for _, label := range n.Label {
				sb.WriteString(formatNodePlain(label))
			}
			return sb.String()
		}
		return formatReference(n.Reference)
	case Value:
		return formatReference(n.Reference)
	case UnknownInlineTag:
		return n.Content
	case StartElement:
		switch strings.ToLower(n.Name) {
		case "p", "br", "li":
			return " "
		}
		return ""
	case Entity:
		return decodeEntity(n.Name)
	default:
		return ""
	}
}

// formatReference reduces a reference to the name a reader looks for:
// "java.util.List#add(E)" becomes "List.add", "java.util.List" becomes "List".
func formatReference(ref string) string {
	if idx := strings.Index(ref, "("); idx >= 0 {
		ref = ref[:idx]
	}
	owner, member, hasMember := strings.Cut(ref, "#")
	if idx := strings.LastIndex(owner, "."); idx >= 0 {
		owner = owner[idx+1:]
	}
	if !hasMember {
		return owner
	}
	if owner == "" {
		return member
	}
	return owner + "." + member
}

func formatStartElement(e StartElement) string {
	switch strings.ToLower(e.Name) {
	case "p":
		return "\n\n"
	case "br":
		return "\n"
	case "pre":
		return "\n```\n"
	case "code", "tt":
		return "`"
	case "ul", "ol":
		return "\n"
	case "li":
		return "\n- "
	case "b", "strong":
		return "**"
	case "i", "em":
		return "*"
	case "blockquote":
		return "\n> "
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "\n\n"
	case "table", "thead", "tbody", "tr":
		return "\n"
	case "td", "th":
		return " "
	case "dl", "dt":
		return "\n"
	case "dd":
		return "\n  "
	default:
		return ""
	}
}

func formatEndElement(e EndElement) string {
	switch strings.ToLower(e.Name) {
	case "pre":
		return "\n```\n"
	case "code", "tt":
		return "`"
	case "b", "strong":
		return "**"
	case "i", "em":
		return "*"
	case "ul", "ol":
		return "\n"
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "\n"
	default:
		return ""
	}
}

func decodeEntity(name string) string {
	switch name {
	case "lt", "#60":
		return "<"
	case "gt", "#62":
		return ">"
	case "amp", "#38":
		return "&"
	case "quot", "#34":
		return "\""
	case "apos", "#39":
		return "'"
	case "nbsp", "#160":
		return " "
	case "mdash", "#8212":
		return "—"
	case "ndash", "#8211":
		return "–"
	case "copy", "#169":
		return "©"
	case "reg", "#174":
		return "®"
	case "trade", "#8482":
		return "™"
	default:
		return "&" + name + ";"
	}
}

// normalizeWhitespace trims every line and collapses runs of blank lines to
// one.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	prevEmpty := false
	inFence := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if trimmed == "" && !inFence {
			if !prevEmpty {
				result = append(result, "")
				prevEmpty = true
			}
			continue
		}
		if inFence {
			result = append(result, strings.TrimRight(line, " \t"))
		} else {
			result = append(result, trimmed)
		}
		prevEmpty = false
	}

	return strings.Join(result, "\n")
}
