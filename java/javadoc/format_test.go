package javadoc

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"Use {@code x} here.", "Use `x` here."},
		{"See {@link Foo#bar()}.", "See `Foo.bar`."},
		{"See {@link java.util.List}.", "See `List`."},
		{"Read {@linkplain java.util.List lists} first.", "Read lists first."},
		{"Max is {@value #MAX}.", "Max is `MAX`."},
		{"First.<p>Second.", "First.\n\nSecond."},
		{"Keep\n\nparagraphs", "Keep\n\nparagraphs"},
		{"<ul><li>one</li><li>two</li></ul>", "- one\n- two"},
		{"a &amp; b", "a & b"},
		{"<b>bold</b> and <i>it</i>", "**bold** and *it*"},
		{"{@inheritDoc}", "*(inherited)*"},
		{"Returns a List<String>", "Returns a List<String>"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Render(tt.input); got != tt.expected {
				t.Errorf("Render(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRenderPre(t *testing.T) {
	got := Render("Example: <pre> int x = 1; </pre>")
	if !strings.Contains(got, "```\n int x = 1;\n```") {
		t.Errorf("expected a fenced block, got %q", got)
	}
}

func TestRenderInline(t *testing.T) {
	if got := RenderInline("One.<p>Two."); got != "One. Two." {
		t.Errorf("expected 'One. Two.', got %q", got)
	}
}

func TestPlain(t *testing.T) {
	got := Plain("Use {@code x} and {@link Foo#bar}.<br>Done &amp; dusted.")
	expected := "Use x and Foo.bar. Done & dusted."
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestFormatReference(t *testing.T) {
	tests := []struct {
		ref      string
		expected string
	}{
		{"java.util.List#add(E)", "List.add"},
		{"#method", "method"},
		{"java.util.List", "List"},
		{"Foo", "Foo"},
	}
	for _, tt := range tests {
		if got := formatReference(tt.ref); got != tt.expected {
			t.Errorf("formatReference(%q) = %q, expected %q", tt.ref, got, tt.expected)
		}
	}
}
