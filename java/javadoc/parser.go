package javadoc

import (
	"strings"
	"unicode"
)

// Parser is a recursive-descent parser for inline documentation markup.
type Parser struct {
	input []rune
	pos   int
	len   int
}

// ParseInline parses description text into inline nodes. Malformed markup
// is kept as text.
func ParseInline(text string) []Node {
	p := &Parser{
		input: []rune(text),
	}
	p.len = len(p.input)
	return p.parseContent(false)
}

// parseContent parses text, HTML and inline tags. If inInlineTag is true,
// parsing stops before an unmatched '}'.
func (p *Parser) parseContent(inInlineTag bool) []Node {
	var nodes []Node
	var textBuf strings.Builder
	depth := 0

	flushText := func() {
		if textBuf.Len() > 0 {
			nodes = append(nodes, Text{Content: textBuf.String()})
			textBuf.Reset()
		}
	}

	for p.pos < p.len {
		ch := p.peek()
		switch {
		case ch == '{' && p.peekAt(1) == '@':
			flushText()
			nodes = append(nodes, p.parseInlineTag())
			continue
		case ch == '{':
			depth++
		case ch == '}':
			if inInlineTag && depth == 0 {
				flushText()
				return nodes
			}
			if depth > 0 {
				depth--
			}
		case ch == '<' && (isLetter(p.peekAt(1)) || p.peekAt(1) == '/'):
			if n := p.parseHTML(); n != nil {
				flushText()
				nodes = append(nodes, n)
				continue
			}
		case ch == '&':
			if n := p.parseEntity(); n != nil {
				flushText()
				nodes = append(nodes, n)
				continue
			}
		}
		textBuf.WriteRune(ch)
		p.advance(1)
	}
	flushText()
	return nodes
}

func (p *Parser) parseInlineTag() Node {
	p.advance(2) // {@
	name := p.readTagName()
	if p.peek() == ' ' || p.peek() == '\t' || p.peek() == '\n' {
		p.advance(1)
	}

	switch name {
	case "code":
		return Code{Content: p.readBalancedContent()}
	case "literal":
		return Literal{Content: p.readBalancedContent()}
	case "link", "linkplain":
		ref := p.readReference()
		p.skipHorizontalWhitespace()
		label := p.parseContent(true)
		if p.peek() == '}' {
			p.advance(1)
		}
		return Link{Reference: ref, Label: label, Plain: name == "linkplain"}
	case "value":
		ref := strings.TrimSpace(p.readBalancedContent())
		return Value{Reference: ref}
	case "docRoot":
		p.readBalancedContent()
		return DocRoot{}
	case "inheritDoc":
		p.readBalancedContent()
		return InheritDoc{}
	default:
		return UnknownInlineTag{Name: name, Content: strings.TrimSpace(p.readBalancedContent())}
	}
}

// parseHTML reads "<name attr=...>" or "</name>". It returns nil and leaves
// the position unchanged when the text is not a tag.
func (p *Parser) parseHTML() Node {
	start := p.pos
	p.advance(1) // <
	closing := false
	if p.peek() == '/' {
		closing = true
		p.advance(1)
	}
	name := p.readHTMLTagName()
	if !htmlTags[strings.ToLower(name)] {
		p.pos = start
		return nil
	}
	if closing {
		p.skipHorizontalWhitespace()
		if p.peek() != '>' {
			p.pos = start
			return nil
		}
		p.advance(1)
		return EndElement{Name: name}
	}

	e := StartElement{Name: name}
	for p.pos < p.len {
		p.skipHorizontalWhitespace()
		switch ch := p.peek(); {
		case ch == '>':
			p.advance(1)
			return e
		case ch == '/' && p.peekAt(1) == '>':
			p.advance(2)
			e.SelfClose = true
			return e
		case isLetter(ch):
			attr := Attribute{Name: p.readHTMLAttrName()}
			if p.peek() == '=' {
				p.advance(1)
				if q := p.peek(); q == '"' || q == '\'' {
					attr.Value = p.readQuotedString()
				} else {
					attr.Value = p.readUnquotedAttrValue()
				}
			}
			e.Attributes = append(e.Attributes, attr)
		default:
			p.pos = start
			return nil
		}
	}
	p.pos = start
	return nil
}

// htmlTags lists the elements treated as markup. Anything else after '<'
// is text, so "List<String>" survives.
var htmlTags = map[string]bool{
	"a": true, "b": true, "blockquote": true, "br": true, "code": true,
	"dd": true, "div": true, "dl": true, "dt": true, "em": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "i": true, "img": true, "li": true, "ol": true, "p": true,
	"pre": true, "s": true, "span": true, "strong": true, "sub": true,
	"sup": true, "table": true, "tbody": true, "td": true, "th": true,
	"thead": true, "tr": true, "tt": true, "u": true, "ul": true,
}

func (p *Parser) parseEntity() Node {
	start := p.pos
	p.advance(1) // &
	var name strings.Builder
	for p.pos < p.len {
		ch := p.peek()
		if ch == ';' {
			if name.Len() == 0 {
				break
			}
			p.advance(1)
			return Entity{Name: name.String()}
		}
		if !(isLetter(ch) || isDigit(ch) || ch == '#') || name.Len() > 10 {
			break
		}
		name.WriteRune(ch)
		p.advance(1)
	}
	p.pos = start
	return nil
}

func (p *Parser) peek() rune {
	if p.pos >= p.len {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) peekAt(offset int) rune {
	if p.pos+offset >= p.len {
		return 0
	}
	return p.input[p.pos+offset]
}

func (p *Parser) advance(n int) {
	p.pos += n
	if p.pos > p.len {
		p.pos = p.len
	}
}

func (p *Parser) skipHorizontalWhitespace() {
	for p.pos < p.len && (p.peek() == ' ' || p.peek() == '\t') {
		p.advance(1)
	}
}

func (p *Parser) readTagName() string {
	start := p.pos
	for p.pos < p.len && (isLetter(p.peek()) || isDigit(p.peek())) {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

// readReference reads a program element reference such as
// "java.util.List#add(int, E)".
func (p *Parser) readReference() string {
	start := p.pos
	parens := 0
	for p.pos < p.len {
		ch := p.peek()
		if ch == '(' {
			parens++
		} else if ch == ')' {
			parens--
		} else if ch == '}' || (parens == 0 && isWhitespace(ch)) {
			break
		}
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readQuotedString() string {
	quote := p.peek()
	p.advance(1)
	start := p.pos
	for p.pos < p.len && p.peek() != quote {
		p.advance(1)
	}
	s := string(p.input[start:p.pos])
	p.advance(1)
	return s
}

func (p *Parser) readUnquotedAttrValue() string {
	start := p.pos
	for p.pos < p.len && !isWhitespace(p.peek()) && p.peek() != '>' {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readHTMLTagName() string {
	start := p.pos
	for p.pos < p.len && (isLetter(p.peek()) || isDigit(p.peek())) {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readHTMLAttrName() string {
	start := p.pos
	for p.pos < p.len && (isLetter(p.peek()) || isDigit(p.peek()) || p.peek() == '-') {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

// readBalancedContent reads up to the '}' that closes the current inline
// tag, keeping nested braces, and consumes it.
func (p *Parser) readBalancedContent() string {
	start := p.pos
	depth := 0
	for p.pos < p.len {
		switch p.peek() {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				s := string(p.input[start:p.pos])
				p.advance(1)
				return s
			}
			depth--
		}
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

func isWhitespace(ch rune) bool {
	return unicode.IsSpace(ch)
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
