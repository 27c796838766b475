// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func renderPlain(t *testing.T, input string, width int) string {
	t.Helper()
	return ansi.Strip(RenderMarkdown(input, DefaultTheme, width))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("", DefaultTheme, 80); got != "" {
		t.Fatalf("empty input should render empty, got %q", got)
	}
}

func TestRenderMarkdownHeadingAndParagraph(t *testing.T) {
	out := renderPlain(t, "# Rules\n\nDrop tokens into columns.", 80)

	if !strings.Contains(out, "Rules") {
		t.Errorf("missing heading text: %q", out)
	}
	if !strings.Contains(out, "Drop tokens into columns.") {
		t.Errorf("missing paragraph text: %q", out)
	}
}

func TestRenderMarkdownReflowsSoftBreaks(t *testing.T) {
	// Hard-wrapped source should reflow into one line at a wide
	// terminal.
	out := renderPlain(t, "first part\nsecond part", 200)
	if !strings.Contains(out, "first part second part") {
		t.Fatalf("soft break not reflowed: %q", out)
	}
}

func TestRenderMarkdownWrapsToWidth(t *testing.T) {
	out := renderPlain(t, strings.Repeat("word ", 30), 40)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 40 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}

func TestRenderMarkdownLists(t *testing.T) {
	out := renderPlain(t, "- first\n- second\n\n1. one\n2. two", 80)

	for _, want := range []string{"- first", "- second", "1. one", "2. two"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing list item %q in %q", want, out)
		}
	}
}

func TestRenderMarkdownFencedCode(t *testing.T) {
	out := renderPlain(t, "```\nfourline --difficulty hard\n```", 80)
	if !strings.Contains(out, "fourline --difficulty hard") {
		t.Fatalf("missing code content: %q", out)
	}
}

func TestRenderMarkdownHighlightedCode(t *testing.T) {
	// A known language goes through chroma; the styled output must
	// still contain the code after stripping escapes.
	out := renderPlain(t, "```go\nfmt.Println(\"hi\")\n```", 80)
	if !strings.Contains(out, "fmt.Println") {
		t.Fatalf("missing highlighted code content: %q", out)
	}
}

func TestRenderMarkdownEmphasis(t *testing.T) {
	styled := RenderMarkdown("**bold** and *italic*", DefaultTheme, 80)
	plain := ansi.Strip(styled)

	if !strings.Contains(plain, "bold and italic") {
		t.Fatalf("emphasis text mangled: %q", plain)
	}
	if styled == plain {
		t.Fatal("expected ANSI styling in emphasized output")
	}
}
