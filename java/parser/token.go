package parser

import "fmt"

type TokenKind int

const (
	TokenKeyword TokenKind = iota
	TokenSymbol
	TokenJoin
	TokenParamStart
	TokenParamEnd
	TokenLineNumber
	TokenExpressionEnd
)

var tokenKindNames = map[TokenKind]string{
	TokenKeyword:       "Keyword",
	TokenSymbol:        "Symbol",
	TokenJoin:          "Join",
	TokenParamStart:    "ParamStart",
	TokenParamEnd:      "ParamEnd",
	TokenLineNumber:    "LineNumber",
	TokenExpressionEnd: "ExpressionEnd",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one lexical unit. Literal holds the text of keywords and symbols
// and the terminator (";" or "{") of an ExpressionEnd. Line is set on
// LineNumber tokens only.
type Token struct {
	Kind    TokenKind
	Literal string
	Line    int
}

func Keyword(s string) Token       { return Token{Kind: TokenKeyword, Literal: s} }
func Symbol(s string) Token        { return Token{Kind: TokenSymbol, Literal: s} }
func Join() Token                  { return Token{Kind: TokenJoin, Literal: ","} }
func ParamStart() Token            { return Token{Kind: TokenParamStart, Literal: "("} }
func ParamEnd() Token              { return Token{Kind: TokenParamEnd, Literal: ")"} }
func LineNumber(n int) Token       { return Token{Kind: TokenLineNumber, Line: n} }
func ExpressionEnd(s string) Token { return Token{Kind: TokenExpressionEnd, Literal: s} }

func (t Token) String() string {
	switch t.Kind {
	case TokenKeyword, TokenSymbol, TokenExpressionEnd:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
	case TokenLineNumber:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Line)
	default:
		return t.Kind.String()
	}
}

// Is reports whether t is a keyword or symbol with the given text.
func (t Token) Is(literal string) bool {
	return (t.Kind == TokenKeyword || t.Kind == TokenSymbol) && t.Literal == literal
}

var keywords = map[string]struct{}{
	"abstract":     {},
	"class":        {},
	"const":        {},
	"default":      {},
	"else":         {},
	"if":           {},
	"enum":         {},
	"extends":      {},
	"final":        {},
	"for":          {},
	"implements":   {},
	"import":       {},
	"instanceof":   {},
	"interface":    {},
	"native":       {},
	"new":          {},
	"package":      {},
	"public":       {},
	"private":      {},
	"protected":    {},
	"return":       {},
	"static":       {},
	"strictfp":     {},
	"super":        {},
	"switch":       {},
	"synchronized": {},
	"this":         {},
	"throw":        {},
	"throws":       {},
	"transient":    {},
	"try":          {},
	"void":         {},
	"volatile":     {},
	"while":        {},
}

var docKeywords = map[string]struct{}{
	"@return":      {},
	"@param":       {},
	"@author":      {},
	"@code":        {},
	"@deprecated":  {},
	"@docRoot":     {},
	"@exception":   {},
	"@inheritDoc":  {},
	"@link":        {},
	"@linkplain":   {},
	"@literal":     {},
	"@see":         {},
	"@throws":      {},
	"@since":       {},
	"@serialData":  {},
	"@serialField": {},
	"@value":       {},
	"@version":     {},
}

// IsKeyword reports whether s is a Java keyword known to the lexer.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// IsDocKeyword reports whether s is a javadoc block tag known to the lexer.
func IsDocKeyword(s string) bool {
	_, ok := docKeywords[s]
	return ok
}

// LookupKeyword classifies a flushed symbol buffer.
func LookupKeyword(s string) TokenKind {
	if IsKeyword(s) || IsDocKeyword(s) {
		return TokenKeyword
	}
	return TokenSymbol
}
