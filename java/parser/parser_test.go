package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dhamidi/lojidoc/java"
)

func parseString(t *testing.T, src string, opts ...Option) (java.Declaration, []Diagnostic) {
	t.Helper()
	decl, diags := Parse([]byte(src), opts...)
	if decl == nil {
		t.Fatal("Parse returned a nil declaration")
	}
	return decl, diags
}

func mustClass(t *testing.T, decl java.Declaration) *java.Class {
	t.Helper()
	c, ok := decl.(*java.Class)
	if !ok {
		t.Fatalf("got %T, want *java.Class", decl)
	}
	return c
}

func TestParseSimpleClass(t *testing.T) {
	decl, diags := parseString(t, "public class Foo { public void bar() {} }")
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	c := mustClass(t, decl)

	if c.Name != "Foo" {
		t.Errorf("Name = %q, want %q", c.Name, "Foo")
	}
	if c.Access != java.AccessPublic {
		t.Errorf("Access = %q, want %q", c.Access, java.AccessPublic)
	}
	if len(c.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(c.Methods))
	}
	m := c.Methods[0]
	if m.Name != "bar" {
		t.Errorf("method Name = %q, want %q", m.Name, "bar")
	}
	if m.ReturnType != "" {
		t.Errorf("method ReturnType = %q, want empty", m.ReturnType)
	}
	if m.Signature != "public void bar()" {
		t.Errorf("method Signature = %q, want %q", m.Signature, "public void bar()")
	}
}

func TestParseClassDoc(t *testing.T) {
	decl, _ := parseString(t, "/** Example. @author Jane @version 1.0 */ public class Foo {")
	c := mustClass(t, decl)

	if c.Description != "Example." {
		t.Errorf("Description = %q, want %q", c.Description, "Example.")
	}
	if c.Author != "Jane" {
		t.Errorf("Author = %q, want %q", c.Author, "Jane")
	}
	if c.Version != "1.0" {
		t.Errorf("Version = %q, want %q", c.Version, "1.0")
	}
}

func TestParseInterface(t *testing.T) {
	decl, _ := parseString(t, "public interface I { String get(); }")
	i, ok := decl.(*java.Interface)
	if !ok {
		t.Fatalf("got %T, want *java.Interface", decl)
	}
	if i.Name != "I" {
		t.Errorf("Name = %q, want %q", i.Name, "I")
	}
	if len(i.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(i.Methods))
	}
	if i.Methods[0].Name != "get" || i.Methods[0].ReturnType != "String" {
		t.Errorf("method = %s %s, want String get", i.Methods[0].ReturnType, i.Methods[0].Name)
	}
	if i.Methods[0].Access != java.AccessPublic {
		t.Errorf("method Access = %q, want implicit public", i.Methods[0].Access)
	}
}

func TestParseInterfaceMembers(t *testing.T) {
	src := `public interface Shape extends Comparable<Shape>, Serializable {
    double area();
    default String name() { return "s"; }
    int SIDES = 0;
}`
	decl, _ := parseString(t, src)
	i, ok := decl.(*java.Interface)
	if !ok {
		t.Fatalf("got %T, want *java.Interface", decl)
	}
	if want := []string{"Comparable<Shape>", "Serializable"}; !reflect.DeepEqual(i.Extends, want) {
		t.Errorf("Extends = %v, want %v", i.Extends, want)
	}
	var names []string
	for _, m := range i.Methods {
		names = append(names, m.ReturnType+" "+m.Name)
	}
	if want := []string{"double area", "String name"}; !reflect.DeepEqual(names, want) {
		t.Errorf("methods = %v, want %v", names, want)
	}
	if len(i.Members) != 1 || i.Members[0].Name != "SIDES" || i.Members[0].Type != "int" {
		t.Errorf("members = %+v, want one int SIDES", i.Members)
	}
}

const calcSource = `/*
 * Copyright 2024 Example
 */
package com.example;

import java.util.List;
import java.io.IOException;

/**
 * Adds things.
 *
 * @author Ann
 */
public final class Calc extends Base implements Runnable, Serializable {
    /** The total. */
    private int total = 0;

    /**
     * Adds two numbers.
     * @param b second
     * @param a first
     * @return the sum
     * @throws IOException never
     */
    @Override
    public static int add(int a, int b) throws IOException {
        return a + b;
    }

    public Calc() {
        this.total = 1;
    }
}
`

func TestParseFullClass(t *testing.T) {
	decl, diags := parseString(t, calcSource)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	c := mustClass(t, decl)

	tests := []struct {
		field string
		got   any
		want  any
	}{
		{"License", c.License, "Copyright 2024 Example"},
		{"Package", c.Package, "com.example"},
		{"Dependencies", c.Dependencies, []string{"java.util.List", "java.io.IOException"}},
		{"Name", c.Name, "Calc"},
		{"Description", c.Description, "Adds things."},
		{"Author", c.Author, "Ann"},
		{"Access", c.Access, java.AccessPublic},
		{"Modifiers", c.Modifiers, []string{"final"}},
		{"Parent", c.Parent, "Base"},
		{"Interfaces", c.Interfaces, []string{"Runnable", "Serializable"}},
		{"Signature", c.Signature, "public final class Calc extends Base implements Runnable, Serializable"},
		{"Line", c.Line, 14},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("%s = %#v, want %#v", tt.field, tt.got, tt.want)
			}
		})
	}

	wantMembers := []java.Member{{
		Name:        "total",
		Type:        "int",
		Access:      java.AccessPrivate,
		Description: "The total.",
		Signature:   "private int total",
		Line:        16,
	}}
	if !reflect.DeepEqual(c.Members, wantMembers) {
		t.Errorf("Members\n got: %+v\nwant: %+v", c.Members, wantMembers)
	}

	if len(c.Methods) != 2 {
		t.Fatalf("got %d methods, want 2", len(c.Methods))
	}
	wantAdd := java.Method{
		Name:              "add",
		ReturnType:        "int",
		ReturnDescription: "the sum",
		Parameters: []java.Param{
			{Name: "a", Type: "int", Description: "first"},
			{Name: "b", Type: "int", Description: "second"},
		},
		Access:      java.AccessPublic,
		Modifiers:   []string{"static"},
		Exceptions:  []java.Exception{{Type: "IOException", Description: "never"}},
		Description: "Adds two numbers.",
		Signature:   "public static int add(int a, int b) throws IOException",
		Line:        26,
	}
	if !reflect.DeepEqual(c.Methods[0], wantAdd) {
		t.Errorf("add\n got: %+v\nwant: %+v", c.Methods[0], wantAdd)
	}
	ctor := c.Methods[1]
	if ctor.Name != "Calc" || ctor.ReturnType != "" || ctor.Line != 30 {
		t.Errorf("constructor = %+v, want Calc with no return type on line 30", ctor)
	}
}

func TestParseLint(t *testing.T) {
	_, diags := parseString(t, calcSource, WithLint(), WithFile("Calc.java"))
	var lint []Diagnostic
	for _, d := range diags {
		if d.Kind == DiagnosticLint {
			lint = append(lint, d)
		}
	}
	if len(lint) != 1 {
		t.Fatalf("got %d lint diagnostics, want 1: %v", len(lint), lint)
	}
	want := Diagnostic{Kind: DiagnosticLint, File: "Calc.java", Name: "Calc", Line: 30, Message: "missing description"}
	if lint[0] != want {
		t.Errorf("diagnostic = %+v, want %+v", lint[0], want)
	}
	if got := lint[0].String(); got != "Calc.java:30: Calc: missing description" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseLintFindings(t *testing.T) {
	src := `public class A {
    /**
     * Looks up a value.
     * @param key the key
     * @param extra not declared
     */
    public String find(String key, int limit) { return null; }
}`
	_, diags := parseString(t, src, WithLint())
	var messages []string
	for _, d := range diags {
		if d.Kind == DiagnosticLint {
			messages = append(messages, d.Name+": "+d.Message)
		}
	}
	want := []string{
		"A: class has no description",
		"find: missing @return description for String",
		"find: documented parameter extra does not match any declared parameter",
		"find: parameter limit has no description",
	}
	if !reflect.DeepEqual(messages, want) {
		t.Errorf("lint findings\n got: %q\nwant: %q", messages, want)
	}
}

func TestParseEnum(t *testing.T) {
	src := `package demo;

/** Colors. */
public enum Color implements Named {
    RED("r"), GREEN("g"),
    BLUE;

    private final String code;
}`
	decl, _ := parseString(t, src)
	e, ok := decl.(*java.Enumeration)
	if !ok {
		t.Fatalf("got %T, want *java.Enumeration", decl)
	}
	if e.Name != "Color" || e.Package != "demo" || e.Description != "Colors." {
		t.Errorf("header = %q %q %q", e.Name, e.Package, e.Description)
	}
	if want := []string{"Named"}; !reflect.DeepEqual(e.Interfaces, want) {
		t.Errorf("Interfaces = %v, want %v", e.Interfaces, want)
	}
	wantFields := []java.EnumField{
		{Name: "RED", Value: `"r"`},
		{Name: "GREEN", Value: `"g"`},
		{Name: "BLUE"},
	}
	if !reflect.DeepEqual(e.Fields, wantFields) {
		t.Errorf("Fields = %+v, want %+v", e.Fields, wantFields)
	}
	if len(e.Members) != 1 {
		t.Fatalf("got %d members, want 1", len(e.Members))
	}
	m := e.Members[0]
	if m.Name != "code" || m.Type != "String" || m.Access != java.AccessPrivate || !m.HasModifier("final") {
		t.Errorf("member = %+v", m)
	}
}

func TestParseMultipleMembers(t *testing.T) {
	decl, _ := parseString(t, "class P { private int a, b; }")
	c := mustClass(t, decl)
	if len(c.Members) != 2 {
		t.Fatalf("got %d members, want 2", len(c.Members))
	}
	for i, name := range []string{"a", "b"} {
		if c.Members[i].Name != name || c.Members[i].Type != "int" || c.Members[i].Access != java.AccessPrivate {
			t.Errorf("member %d = %+v", i, c.Members[i])
		}
	}
}

func TestParseMembersStopAtInitializer(t *testing.T) {
	decl, _ := parseString(t, "class P { int a, b = 3, c; }")
	c := mustClass(t, decl)
	var names []string
	for _, m := range c.Members {
		names = append(names, m.Name)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(names, want) {
		t.Errorf("members = %v, want %v", names, want)
	}
}

func TestParseGenerics(t *testing.T) {
	src := "public class Box<T> { public <R> Map<String, List<R>> convert(Map<String, T> input, int... rest) { return null; } }"
	decl, _ := parseString(t, src)
	c := mustClass(t, decl)
	if c.Name != "Box" {
		t.Errorf("Name = %q, want %q", c.Name, "Box")
	}
	if len(c.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(c.Methods))
	}
	m := c.Methods[0]
	if m.ReturnType != "Map<String, List<R>>" {
		t.Errorf("ReturnType = %q", m.ReturnType)
	}
	wantParams := []java.Param{
		{Name: "input", Type: "Map<String, T>", Description: java.NoDescription},
		{Name: "rest", Type: "int...", Description: java.NoDescription},
	}
	if !reflect.DeepEqual(m.Parameters, wantParams) {
		t.Errorf("Parameters = %+v, want %+v", m.Parameters, wantParams)
	}
	if want := "public <R> Map<String, List<R>> convert(Map<String, T> input, int... rest)"; m.Signature != want {
		t.Errorf("Signature = %q, want %q", m.Signature, want)
	}
}

func TestParseMultiLineGenerics(t *testing.T) {
	src := `public class Cache {
    private Map<String,
        Integer> counts;

    public void putAll(Map<String,
            Integer> values) {}
}`
	decl, _ := parseString(t, src)
	c := mustClass(t, decl)
	if len(c.Members) != 1 {
		t.Fatalf("got %d members, want 1", len(c.Members))
	}
	if m := c.Members[0]; m.Name != "counts" || m.Type != "Map<String, Integer>" {
		t.Errorf("member = %q %q, want counts Map<String, Integer>", m.Name, m.Type)
	}
	if len(c.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(c.Methods))
	}
	want := []java.Param{{Name: "values", Type: "Map<String, Integer>", Description: java.NoDescription}}
	if !reflect.DeepEqual(c.Methods[0].Parameters, want) {
		t.Errorf("Parameters = %+v, want %+v", c.Methods[0].Parameters, want)
	}
}

func TestParseAnnotations(t *testing.T) {
	src := `@SuppressWarnings({"unchecked", "rawtypes"})
public class A {
    @Deprecated(since = "1.0")
    public void old() {}
}`
	decl, diags := parseString(t, src)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	c := mustClass(t, decl)
	if c.Name != "A" || c.Access != java.AccessPublic {
		t.Errorf("header = %q %q", c.Name, c.Access)
	}
	if len(c.Methods) != 1 || c.Methods[0].Name != "old" {
		t.Errorf("methods = %+v, want only old", c.Methods)
	}
	if c.Methods[0].Line != 4 {
		t.Errorf("method Line = %d, want 4", c.Methods[0].Line)
	}
}

func TestParseAnnotationType(t *testing.T) {
	decl, _ := parseString(t, "public @interface Marker { String value() default \"\"; }")
	i, ok := decl.(*java.Interface)
	if !ok {
		t.Fatalf("got %T, want *java.Interface", decl)
	}
	if i.Name != "Marker" || len(i.Methods) != 1 || i.Methods[0].Name != "value" {
		t.Errorf("got %+v", i)
	}
}

func TestParseNestedTypeSkipped(t *testing.T) {
	src := "public class Outer {\n  static class Inner {\n    int x;\n  }\n  int y;\n}"
	decl, diags := parseString(t, src)
	c := mustClass(t, decl)
	if len(c.Members) != 1 || c.Members[0].Name != "y" {
		t.Errorf("members = %+v, want only y", c.Members)
	}
	if len(diags) != 1 || diags[0].Name != "Inner" || diags[0].Kind != DiagnosticStructural {
		t.Errorf("diagnostics = %v, want one for Inner", diags)
	}
}

func TestParseInitializers(t *testing.T) {
	src := `class Init {
    static { load(); }
    private int[] values = { 1, 2 };
    private Runnable task = new Runnable() { public void run() {} };
    void after() {}
}`
	decl, _ := parseString(t, src)
	c := mustClass(t, decl)
	var members []string
	for _, m := range c.Members {
		members = append(members, m.Type+" "+m.Name)
	}
	if want := []string{"int[] values", "Runnable task"}; !reflect.DeepEqual(members, want) {
		t.Errorf("members = %v, want %v", members, want)
	}
	if len(c.Methods) != 1 || c.Methods[0].Name != "after" {
		t.Errorf("methods = %+v, want only after", c.Methods)
	}
}

func TestParseOrphanDocs(t *testing.T) {
	src := `public class A {
    /** Lost. */
    /** Kept. */
    public void f() {}
}`
	tests := []struct {
		name        string
		policy      OrphanPolicy
		description string
		diagnostics int
	}{
		{"discard", OrphanDiscard, "Kept.", 0},
		{"report", OrphanReport, "Kept.", 1},
		{"merge", OrphanMerge, "Lost.\n\nKept.", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl, diags := parseString(t, src, WithOrphanDocs(tt.policy))
			c := mustClass(t, decl)
			if got := c.Methods[0].Description; got != tt.description {
				t.Errorf("Description = %q, want %q", got, tt.description)
			}
			if len(diags) != tt.diagnostics {
				t.Errorf("got %d diagnostics, want %d: %v", len(diags), tt.diagnostics, diags)
			}
			if tt.diagnostics > 0 && diags[0].Line != 2 {
				t.Errorf("diagnostic Line = %d, want 2", diags[0].Line)
			}
		})
	}
}

func TestParseOrphanDocsReported(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		orphans int
	}{
		{
			name:    "initializer block",
			src:     "public class A {\n    /** Lost. */\n    static { }\n    void f() {}\n}",
			orphans: 1,
		},
		{
			name:    "import",
			src:     "package p;\n/** Lost. */\nimport java.util.List;\npublic class A {}",
			orphans: 1,
		},
		{
			name:    "nested type",
			src:     "public class A {\n    /** Lost. */\n    class Inner {}\n}",
			orphans: 1,
		},
		{
			name:    "license before package",
			src:     "/** License. */\npackage p;\npublic class A {}",
			orphans: 0,
		},
		{
			name:    "attached to type and member",
			src:     "/** Doc. */\npublic class A {\n    /** Count. */\n    int x;\n}",
			orphans: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := parseString(t, tt.src, WithOrphanDocs(OrphanReport))
			var orphans []Diagnostic
			for _, d := range diags {
				if strings.Contains(d.Message, "not attached") {
					orphans = append(orphans, d)
				}
			}
			if len(orphans) != tt.orphans {
				t.Fatalf("got %d orphan diagnostics, want %d: %v", len(orphans), tt.orphans, diags)
			}
			if tt.orphans > 0 && orphans[0].Line != 2 {
				t.Errorf("orphan Line = %d, want 2", orphans[0].Line)
			}
		})
	}
}

func TestParseBlockWithoutHeader(t *testing.T) {
	for _, src := range []string{"{ }", "class A;\n{ }"} {
		_, diags := parseString(t, src)
		found := false
		for _, d := range diags {
			if strings.Contains(d.Message, "block outside of a type declaration") {
				found = true
			}
		}
		if !found {
			t.Errorf("Parse(%q) diagnostics = %v, want a block outside of a type declaration", src, diags)
		}
	}
}

func TestParseStatementsOption(t *testing.T) {
	var lines []int
	var first []Element
	src := "package p;\n\npublic class A {\n    int x;\n}"
	parseString(t, src, WithStatements(func(line int, elements []Element) {
		if first == nil {
			first = elements
		}
		lines = append(lines, line)
	}))
	if want := []int{1, 3, 4}; !reflect.DeepEqual(lines, want) {
		t.Errorf("statement lines = %v, want %v", lines, want)
	}
	want := []Element{{Kind: ElementPackage}, {Kind: ElementVariable, Value: "p"}}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("first statement = %v, want %v", first, want)
	}
}

func TestParseUnsupportedFile(t *testing.T) {
	decl, diags := parseString(t, "import java.util.List;\n")
	c := mustClass(t, decl)
	if !java.IsEmpty(c) {
		t.Errorf("got %+v, want an empty class", c)
	}
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "unsupported file") {
		t.Errorf("diagnostics = %v, want an unsupported file diagnostic", diags)
	}
}

func TestParseExtraBrace(t *testing.T) {
	_, diags := parseString(t, "class A {}}")
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "unmatched closing brace") {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	first, firstDiags := parseString(t, calcSource, WithLint())
	second, secondDiags := parseString(t, calcSource, WithLint())
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same source twice gave different declarations")
	}
	if !reflect.DeepEqual(firstDiags, secondDiags) {
		t.Error("parsing the same source twice gave different diagnostics")
	}
}

func TestConstructMatchesParse(t *testing.T) {
	fromTokens, _ := Construct(Lex(calcSource))
	fromSource, _ := parseString(t, calcSource)
	if !reflect.DeepEqual(fromTokens, fromSource) {
		t.Error("Construct(Lex(src)) differs from Parse(src)")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Calc.java")
	if err := os.WriteFile(path, []byte(calcSource), 0o644); err != nil {
		t.Fatal(err)
	}

	decl, _, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if got := decl.Info().Source.String(); got != path {
		t.Errorf("Source = %q, want %q", got, path)
	}

	_, _, err = ParseFile(filepath.Join(dir, "Missing.java"))
	if err == nil {
		t.Error("ParseFile on a missing file returned no error")
	}
}

func TestParseStateTransitions(t *testing.T) {
	p := newParser()

	p.step(Symbol("/**"))
	if p.state.capture != captureDoc {
		t.Fatalf("capture = %v after /**, want doc", p.state.capture)
	}
	p.step(Symbol("Hi."))
	p.step(Symbol("*/"))
	if p.state.capture != captureNone || !p.state.docReady {
		t.Fatalf("state = %+v after */, want doc ready", p.state)
	}
	if p.pending.Description != "Hi." {
		t.Errorf("pending Description = %q", p.pending.Description)
	}

	p.step(Keyword("class"))
	if p.state.header != java.KindClass {
		t.Errorf("header = %q after class, want class", p.state.header)
	}
	p.step(Symbol("A"))
	p.step(ExpressionEnd("{"))
	if p.state.header != "" || p.state.docReady || !p.bodyOpened {
		t.Errorf("state = %+v bodyOpened=%v after {, want reset and open", p.state, p.bodyOpened)
	}
	if p.b.doc == nil || p.b.doc.Description != "Hi." {
		t.Error("class doc not attached")
	}

	p.step(Symbol("@Foo"))
	if !p.annotation {
		t.Error("annotation not pending after @Foo")
	}
	p.step(ParamStart())
	if p.annotation || p.annSkip != 1 {
		t.Errorf("annotation=%v annSkip=%d after (, want skipping", p.annotation, p.annSkip)
	}
	p.step(Symbol("x"))
	p.step(ParamEnd())
	if p.annSkip != 0 {
		t.Errorf("annSkip = %d after ), want 0", p.annSkip)
	}
	if !p.classifier.Empty() {
		t.Error("annotation arguments reached the classifier")
	}

	p.step(Symbol("/*"))
	if p.state.capture != captureComment {
		t.Errorf("capture = %v after /*, want comment", p.state.capture)
	}
	p.step(Symbol("*/"))
	p.step(Symbol("//"))
	if p.state.capture != captureLineComment {
		t.Errorf("capture = %v after //, want line comment", p.state.capture)
	}
	p.step(LineNumber(2))
	if p.state.capture != captureNone || p.line != 2 {
		t.Errorf("capture = %v line = %d after newline", p.state.capture, p.line)
	}
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{Diagnostic{Message: "plain"}, "plain"},
		{Diagnostic{File: "A.java", Line: 3, Message: "m"}, "A.java:3: m"},
		{Diagnostic{Line: 3, Name: "f", Message: "m"}, "3: f: m"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseOrphanPolicy(t *testing.T) {
	for _, policy := range []OrphanPolicy{OrphanDiscard, OrphanReport, OrphanMerge} {
		got, err := ParseOrphanPolicy(policy.String())
		if err != nil || got != policy {
			t.Errorf("ParseOrphanPolicy(%q) = %v, %v", policy, got, err)
		}
	}
	if _, err := ParseOrphanPolicy("keep"); err == nil {
		t.Error("ParseOrphanPolicy(keep) returned no error")
	}
}
