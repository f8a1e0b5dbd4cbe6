package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/lojidoc/java"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lojidoc.parser")

type DiagnosticKind int

const (
	// DiagnosticStructural reports input the parser had to skip or guess at.
	DiagnosticStructural DiagnosticKind = iota
	// DiagnosticLint reports missing or incomplete documentation.
	DiagnosticLint
)

func (k DiagnosticKind) String() string {
	if k == DiagnosticLint {
		return "lint"
	}
	return "structural"
}

// Diagnostic is a human-readable finding keyed by declaration name and line.
type Diagnostic struct {
	Kind    DiagnosticKind
	File    string
	Name    string
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		b.WriteByte(':')
	}
	if d.Line > 0 {
		fmt.Fprintf(&b, "%d:", d.Line)
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	if d.Name != "" {
		b.WriteString(d.Name)
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// OrphanPolicy decides what happens to a documentation comment that is
// followed by another one before any declaration.
type OrphanPolicy int

const (
	OrphanDiscard OrphanPolicy = iota
	OrphanReport
	OrphanMerge
)

var orphanPolicyNames = map[OrphanPolicy]string{
	OrphanDiscard: "discard",
	OrphanReport:  "report",
	OrphanMerge:   "merge",
}

func (o OrphanPolicy) String() string {
	return orphanPolicyNames[o]
}

func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	for policy, name := range orphanPolicyNames {
		if name == s {
			return policy, nil
		}
	}
	return OrphanDiscard, fmt.Errorf("unknown orphan doc policy %q", s)
}

type Option func(*Parser)

// WithFile names the file being parsed. Diagnostics carry the name and the
// resulting declaration uses it as its source location.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithLint enables documentation lint findings.
func WithLint() Option {
	return func(p *Parser) {
		p.lint = true
	}
}

func WithOrphanDocs(policy OrphanPolicy) Option {
	return func(p *Parser) {
		p.orphans = policy
	}
}

// WithStatements calls fn with the classified elements of every statement
// the parser interprets, along with the line the statement starts on.
func WithStatements(fn func(line int, elements []Element)) Option {
	return func(p *Parser) {
		p.onStatement = fn
	}
}

type captureMode int

const (
	captureNone captureMode = iota
	captureDoc
	captureComment
	captureLineComment
)

// parseState holds the flags that are reset after every statement. header is
// the kind of the type header being read, if any; capture is at most one
// comment mode at a time. docUsed is set once the pending doc is attached.
type parseState struct {
	header   java.Kind
	capture  captureMode
	docReady bool
	docUsed  bool
}

// Parser is the coordinator for one file. It is single use.
type Parser struct {
	file        string
	lint        bool
	orphans     OrphanPolicy
	onStatement func(line int, elements []Element)

	state      parseState
	classifier Classifier
	b          builder

	line       int
	stmtLine   int
	started    bool
	sig        signature
	bodyOpened bool

	annotation bool
	annSkip    int

	enumPhase bool
	constant  enumConstant

	docTokens   []Token
	docLine     int
	pending     *java.Doc
	pendingLine int
	license     commentText
	diags       []Diagnostic
}

func newParser(opts ...Option) *Parser {
	p := &Parser{line: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Construct builds the declaration described by a token stream.
func Construct(tokens []Token, opts ...Option) (java.Declaration, []Diagnostic) {
	p := newParser(opts...)
	p.run(tokens)
	return p.finish()
}

// Parse lexes and constructs src.
func Parse(src []byte, opts ...Option) (java.Declaration, []Diagnostic) {
	l := NewLexer(src)
	p := newParser(opts...)
	p.run(l.Tokens())
	if n := l.ExtraBraces(); n > 0 {
		p.structural("", 0, "%d unmatched closing brace(s)", n)
	}
	return p.finish()
}

// ParseFile reads path as UTF-8 and parses it. Only reading can fail.
func ParseFile(path string, opts ...Option) (java.Declaration, []Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	decl, diags := Parse(src, append([]Option{WithFile(path)}, opts...)...)
	return decl, diags, nil
}

func (p *Parser) run(tokens []Token) {
	for _, t := range tokens {
		p.step(t)
	}
}

func (p *Parser) step(t Token) {
	if t.Kind == TokenLineNumber {
		p.lineNumber(t)
		return
	}
	if p.state.capture != captureNone {
		p.captureToken(t)
		return
	}
	if t.Kind == TokenSymbol && p.openComment(t.Literal) {
		return
	}
	if p.annSkip > 0 {
		p.skipAnnotation(t)
		return
	}
	if p.annotation {
		p.annotation = false
		if t.Kind == TokenParamStart {
			p.annSkip = 1
			return
		}
	}
	if p.enumPhase {
		p.enumToken(t)
		return
	}

	switch t.Kind {
	case TokenKeyword, TokenSymbol:
		p.word(t)
	case TokenJoin:
		p.classifier.Join()
		p.sig.add(",")
	case TokenParamStart:
		p.begin()
		p.classifier.ParamStart()
		p.sig.add("(")
	case TokenParamEnd:
		p.classifier.ParamEnd()
		p.sig.add(")")
	case TokenExpressionEnd:
		if t.Literal == "{" {
			p.openBlock()
		} else {
			p.endStatement()
		}
	}
}

func (p *Parser) lineNumber(t Token) {
	p.line = t.Line
	switch p.state.capture {
	case captureDoc:
		p.docTokens = append(p.docTokens, t)
	case captureLineComment:
		p.state.capture = captureNone
	}
	if p.collectingLicense() {
		p.license.newline()
	}
}

func (p *Parser) openComment(s string) bool {
	switch s {
	case "/**":
		p.state.capture = captureDoc
		p.docTokens = nil
		p.docLine = p.line
	case "/*":
		p.state.capture = captureComment
	case "//":
		p.state.capture = captureLineComment
	case "*/":
		p.structural("", p.line, "comment terminator without an open comment")
	default:
		return false
	}
	return true
}

func (p *Parser) captureToken(t Token) {
	if p.state.capture != captureLineComment && t.Is("*/") {
		if p.state.capture == captureDoc {
			p.closeDoc()
		}
		p.state.capture = captureNone
		return
	}
	if p.state.capture == captureDoc {
		p.docTokens = append(p.docTokens, t)
	}
	if p.collectingLicense() {
		p.license.word(t.Literal)
	}
}

// collectingLicense reports whether comment text may still be the license
// header, which is the text before the package statement.
func (p *Parser) collectingLicense() bool {
	return p.b.pkg == "" && p.b.kind == "" && !p.bodyOpened && p.classifier.Empty()
}

func (p *Parser) closeDoc() {
	doc, diags := ParseDoc(p.docTokens)
	for _, d := range diags {
		p.addDiagnostic(d)
	}
	p.docTokens = nil
	if p.state.docReady && p.pending != nil {
		p.orphan(doc)
	}
	p.pending = doc
	p.pendingLine = p.docLine
	p.state.docReady = true
}

// orphan applies the orphan policy to the pending doc, which is about to be
// replaced by next. next is nil at end of input.
func (p *Parser) orphan(next *java.Doc) {
	switch p.orphans {
	case OrphanReport:
		p.structural("", p.pendingLine, "documentation comment is not attached to a declaration")
	case OrphanMerge:
		if next != nil && p.pending.Description != "" {
			if next.Description == "" {
				next.Description = p.pending.Description
			} else {
				next.Description = p.pending.Description + "\n\n" + next.Description
			}
		}
	default:
		log.Debugf("discarding unattached documentation comment in %s", p.file)
	}
}

func (p *Parser) skipAnnotation(t Token) {
	switch t.Kind {
	case TokenParamStart:
		p.annSkip++
	case TokenParamEnd:
		p.annSkip--
	}
}

func (p *Parser) begin() {
	if !p.started {
		p.started = true
		p.stmtLine = p.line
	}
}

func (p *Parser) word(t Token) {
	s := t.Literal
	if strings.HasPrefix(s, "@") {
		if s != "@interface" {
			p.annotation = true
			return
		}
		p.begin()
		p.sig.add(s)
		t = Keyword("interface")
		s = t.Literal
	} else {
		p.begin()
		p.sig.add(s)
	}

	if t.Kind == TokenKeyword {
		switch s {
		case "class", "interface", "enum":
			if !p.bodyOpened && p.b.kind == "" {
				p.b.kind = java.Kind(s)
				p.state.header = p.b.kind
			}
		case "package":
			p.b.license = p.license.String()
		}
	}
	p.classifier.Push(t)
}

func (p *Parser) endStatement() {
	elements := p.flush()
	switch {
	case len(elements) == 0:
	case !p.bodyOpened:
		p.fileStatement(elements)
	case hasParams(elements):
		p.addMethod(elements)
	default:
		p.addMembers(elements)
	}
	p.resetStatement()
}

func (p *Parser) fileStatement(elements []Element) {
	switch {
	case hasKind(elements, ElementPackage):
		p.b.pkg = valueAfter(elements, ElementPackage)
		// A doc comment before the package statement is the license header.
		p.state.docUsed = true
	case hasKind(elements, ElementImport):
		if dep := valueAfter(elements, ElementImport); dep != "" {
			p.b.deps = append(p.b.deps, dep)
		}
	default:
		if !p.addMembers(elements) {
			p.structural("", p.stmtLine, "unexpected statement %q at file scope", p.sig.String())
		}
	}
}

func (p *Parser) flush() []Element {
	elements := p.classifier.Flush()
	if p.onStatement != nil && len(elements) > 0 {
		p.onStatement(p.stmtLine, elements)
	}
	return elements
}

func (p *Parser) openBlock() {
	elements := p.flush()
	switch {
	case !p.bodyOpened:
		if p.state.header == "" {
			p.structural("", p.stmtLine, "block outside of a type declaration")
			break
		}
		p.openBody(elements)
	case hasKind(elements, ElementObject):
		p.structural(valueAfter(elements, ElementObject), p.stmtLine, "nested type skipped")
	case hasAssign(elements):
		p.addMembers(elements)
	case hasParams(elements):
		p.addMethod(elements)
	}
	p.resetStatement()
}

func (p *Parser) openBody(elements []Element) {
	p.b.readHeader(elements)
	p.b.signature = p.sig.String()
	p.b.line = p.stmtLine
	if p.state.docReady {
		p.b.doc = p.pending
		p.state.docUsed = true
	}
	if p.lint && (p.b.doc == nil || p.b.doc.Description == "") {
		p.lintf(p.b.name, p.b.line, "%s has no description", p.b.kind)
	}
	p.bodyOpened = true
	p.enumPhase = p.b.kind == java.KindEnumeration
}

func (p *Parser) currentDoc() *java.Doc {
	if p.state.docReady && p.pending != nil {
		return p.pending
	}
	return nil
}

func (p *Parser) addMethod(elements []Element) {
	doc := p.currentDoc()
	m := buildMethod(elements, doc, p.stmtLine)
	m.Signature = p.sig.String()
	if m.Access == java.AccessPackage && p.b.kind == java.KindInterface {
		m.Access = java.AccessPublic
	}
	if m.Name == "" {
		p.structural("", p.stmtLine, "method without a name skipped")
		return
	}
	p.state.docUsed = doc != nil
	if p.lint {
		for _, msg := range lintMethod(m, doc) {
			p.lintf(m.Name, m.Line, "%s", msg)
		}
	}
	p.b.methods = append(p.b.methods, m)
}

func (p *Parser) addMembers(elements []Element) bool {
	members := buildMembers(elements, p.currentDoc(), p.stmtLine)
	for i := range members {
		members[i].Signature = p.sig.String()
		if members[i].Access == java.AccessPackage && p.b.kind == java.KindInterface {
			members[i].Access = java.AccessPublic
		}
	}
	p.b.members = append(p.b.members, members...)
	if len(members) > 0 && p.currentDoc() != nil {
		p.state.docUsed = true
	}
	return len(members) > 0
}

// resetStatement ends the current statement. A pending doc that no
// declaration took is an orphan.
func (p *Parser) resetStatement() {
	if p.state.docReady && p.pending != nil && !p.state.docUsed {
		p.orphan(nil)
	}
	p.classifier.Reset()
	p.sig.reset()
	p.started = false
	p.state.header = ""
	p.state.docReady = false
	p.state.docUsed = false
	p.pending = nil
}

func (p *Parser) enumToken(t Token) {
	c := &p.constant
	switch t.Kind {
	case TokenKeyword, TokenSymbol:
		if c.depth > 0 {
			c.args.write(t.Literal)
			return
		}
		if strings.HasPrefix(t.Literal, "@") {
			p.annotation = true
			return
		}
		if c.name == "" {
			c.name = t.Literal
		}
	case TokenParamStart:
		if c.depth > 0 {
			c.args.write("(")
		}
		c.depth++
	case TokenParamEnd:
		if c.depth > 0 {
			c.depth--
			if c.depth > 0 {
				c.args.write(")")
			}
		}
	case TokenJoin:
		if c.depth > 0 {
			c.args.write(",")
			return
		}
		p.commitConstant()
	case TokenExpressionEnd:
		p.commitConstant()
		if t.Literal == ";" {
			p.enumPhase = false
			p.resetStatement()
		}
	}
}

func (p *Parser) commitConstant() {
	if p.constant.name != "" {
		p.b.fields = append(p.b.fields, java.EnumField{
			Name:  p.constant.name,
			Value: p.constant.args.String(),
		})
	}
	p.constant = enumConstant{}
	p.state.docReady = false
	p.pending = nil
}

func (p *Parser) finish() (java.Declaration, []Diagnostic) {
	if p.enumPhase {
		p.commitConstant()
	}
	if p.state.capture == captureDoc || p.state.capture == captureComment {
		p.structural("", p.line, "unterminated comment")
	}
	if p.state.docReady && p.pending != nil {
		p.orphan(nil)
	}
	if p.b.kind == "" {
		p.structural("", 0, "unsupported file: no class, interface or enum declaration")
		c := &java.Class{}
		if p.file != "" {
			c.Source = java.ParseURLString(p.file)
		}
		return c, p.diags
	}
	if !p.bodyOpened {
		p.structural(p.b.name, p.stmtLine, "declaration has no body")
	}
	decl := p.b.project()
	if p.file != "" {
		decl.Info().Source = java.ParseURLString(p.file)
	}
	return decl, p.diags
}

func (p *Parser) addDiagnostic(d Diagnostic) {
	d.File = p.file
	if d.Kind == DiagnosticLint {
		log.Debugf("%s", d)
	} else {
		log.Warningf("%s", d)
	}
	p.diags = append(p.diags, d)
}

func (p *Parser) structural(name string, line int, format string, args ...any) {
	p.addDiagnostic(Diagnostic{
		Kind:    DiagnosticStructural,
		Name:    name,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) lintf(name string, line int, format string, args ...any) {
	p.addDiagnostic(Diagnostic{
		Kind:    DiagnosticLint,
		Name:    name,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

type enumConstant struct {
	name  string
	args  signature
	depth int
}

// signature renders statement tokens on one line: "int add(int a, int b)".
// After "=" nothing more is recorded, so initializers are left out.
type signature struct {
	parts  []string
	closed bool
}

func (s *signature) add(part string) {
	if s.closed {
		return
	}
	if i := strings.IndexByte(part, '='); i >= 0 && !strings.ContainsAny(part, "\"'") && !isOperator(part) {
		if i > 0 {
			s.parts = append(s.parts, part[:i])
		}
		s.closed = true
		return
	}
	s.parts = append(s.parts, part)
}

// write records part without looking for an initializer.
func (s *signature) write(part string) {
	s.parts = append(s.parts, part)
}

func (s *signature) reset() {
	s.parts = s.parts[:0]
	s.closed = false
}

func (s *signature) String() string {
	var b strings.Builder
	for i, part := range s.parts {
		switch part {
		case "(", ")", ",":
			b.WriteString(part)
			continue
		}
		if i > 0 && s.parts[i-1] != "(" {
			b.WriteByte(' ')
		}
		b.WriteString(part)
	}
	return b.String()
}

// commentText collects comment words line by line.
type commentText struct {
	lines []string
	cur   []string
}

func (c *commentText) word(w string) {
	if strings.Trim(w, "*") == "" {
		return
	}
	c.cur = append(c.cur, w)
}

func (c *commentText) newline() {
	c.lines = append(c.lines, strings.Join(c.cur, " "))
	c.cur = nil
}

// String joins the collected lines, dropping leading and trailing blank
// lines and collapsing runs of blank lines.
func (c *commentText) String() string {
	lines := append(append([]string(nil), c.lines...), strings.Join(c.cur, " "))
	var out []string
	blank := false
	for _, line := range lines {
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
