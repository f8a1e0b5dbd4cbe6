package parser

type lexMode int

const (
	modeCode lexMode = iota
	modeBlockComment
	modeLineComment
	modeString
	modeChar
)

// Lexer turns Java source into the flat token stream consumed by the
// constructor. Only file scope (depth 0) and the body of the declared type
// (depth 1) produce tokens; method and initializer bodies are skipped.
type Lexer struct {
	input       []byte
	pos         int
	line        int
	depth       int
	extraBraces int
	mode        lexMode
	buf         []byte
	angle       int
	space       bool
	tokens      []Token
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
	}
}

// Lex tokenizes text in a single pass.
func Lex(text string) []Token {
	return NewLexer([]byte(text)).Tokens()
}

// Tokens runs the lexer to the end of input and returns every emitted token.
func (l *Lexer) Tokens() []Token {
	if l.tokens != nil {
		return l.tokens
	}
	l.tokens = make([]Token, 0, len(l.input)/6+1)
	l.emit(LineNumber(1))

	for l.pos < len(l.input) {
		switch l.mode {
		case modeBlockComment:
			l.scanBlockComment()
		case modeLineComment:
			l.scanLineComment()
		case modeString:
			l.scanQuoted('"')
		case modeChar:
			l.scanQuoted('\'')
		default:
			l.scanCode()
		}
	}
	l.flush()
	return l.tokens
}

// Depth returns the brace depth reached at the current position.
func (l *Lexer) Depth() int {
	return l.depth
}

// ExtraBraces counts closing braces that had no matching opening brace.
func (l *Lexer) ExtraBraces() int {
	return l.extraBraces
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	return ch
}

func (l *Lexer) emit(t Token) {
	if l.depth < 2 {
		l.tokens = append(l.tokens, t)
	}
}

func (l *Lexer) flush() {
	if len(l.buf) > 0 {
		s := string(l.buf)
		l.emit(Token{Kind: LookupKeyword(s), Literal: s})
	}
	l.buf = l.buf[:0]
	l.angle = 0
	l.space = false
}

func (l *Lexer) newline() {
	l.advance()
	l.line++
	l.emit(LineNumber(l.line))
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f'
}

func (l *Lexer) scanCode() {
	ch := l.peek()
	switch {
	case ch == '\n':
		if l.angle > 0 {
			l.space = true
		} else {
			l.flush()
		}
		l.newline()
	case isSpace(ch):
		// Inside an open type argument list whitespace is kept so that
		// Map<String, List<String>> stays one symbol.
		if l.angle > 0 {
			l.space = true
		} else {
			l.flush()
		}
		l.advance()
	case ch == '/' && l.peekN(1) == '*':
		l.flush()
		if l.peekN(2) == '*' && l.peekN(3) != '/' {
			l.emit(Symbol("/**"))
			l.pos += 3
		} else {
			l.emit(Symbol("/*"))
			l.pos += 2
		}
		l.mode = modeBlockComment
	case ch == '/' && l.peekN(1) == '/':
		l.flush()
		l.emit(Symbol("//"))
		l.pos += 2
		l.mode = modeLineComment
	case ch == '"':
		l.appendCode(ch)
		l.advance()
		l.mode = modeString
	case ch == '\'':
		l.appendCode(ch)
		l.advance()
		l.mode = modeChar
	case ch == ',':
		if l.angle > 0 {
			l.buf = append(l.buf, ',')
			l.space = true
		} else {
			l.flush()
			l.emit(Join())
		}
		l.advance()
	case ch == ';':
		l.flush()
		l.emit(ExpressionEnd(";"))
		l.advance()
	case ch == '(':
		l.flush()
		l.emit(ParamStart())
		l.advance()
	case ch == ')':
		l.flush()
		l.emit(ParamEnd())
		l.advance()
	case ch == '{':
		l.flush()
		l.emit(ExpressionEnd("{"))
		l.depth++
		l.advance()
	case ch == '}':
		l.flush()
		if l.depth > 0 {
			l.depth--
		} else {
			l.extraBraces++
		}
		l.advance()
	default:
		l.appendCode(ch)
		l.advance()
	}
}

// appendCode adds ch to the symbol buffer, normalizing whitespace inside
// type arguments to single spaces ("List< ? extends T >" becomes
// "List<? extends T>").
func (l *Lexer) appendCode(ch byte) {
	if l.space && len(l.buf) > 0 {
		last := l.buf[len(l.buf)-1]
		if last != '<' && last != ' ' && ch != '>' && ch != ',' {
			l.buf = append(l.buf, ' ')
		}
	}
	l.space = false
	l.buf = append(l.buf, ch)
	switch ch {
	case '<':
		l.angle++
	case '>':
		if l.angle > 0 {
			l.angle--
		}
	}
}

func (l *Lexer) scanBlockComment() {
	ch := l.peek()
	switch {
	case ch == '*' && l.peekN(1) == '/':
		l.flush()
		l.emit(Symbol("*/"))
		l.pos += 2
		l.mode = modeCode
	case ch == '\n':
		l.flush()
		l.newline()
	case isSpace(ch):
		l.flush()
		l.advance()
	default:
		l.buf = append(l.buf, ch)
		l.advance()
	}
}

func (l *Lexer) scanLineComment() {
	ch := l.peek()
	switch {
	case ch == '\n':
		l.flush()
		l.mode = modeCode
		l.newline()
	case isSpace(ch):
		l.flush()
		l.advance()
	default:
		l.buf = append(l.buf, ch)
		l.advance()
	}
}

// scanQuoted consumes string and char literal content. Delimiters and
// braces inside a literal are part of the symbol.
func (l *Lexer) scanQuoted(quote byte) {
	ch := l.peek()
	switch ch {
	case '\\':
		l.buf = append(l.buf, ch)
		l.advance()
		if next := l.peek(); next != 0 && next != '\n' {
			l.buf = append(l.buf, next)
			l.advance()
		}
	case '\n':
		// Only text blocks span lines; keep the literal in one symbol.
		l.buf = append(l.buf, ' ')
		l.newline()
	case quote:
		l.buf = append(l.buf, ch)
		l.advance()
		l.mode = modeCode
	default:
		l.buf = append(l.buf, ch)
		l.advance()
	}
}
