package parser

import (
	"testing"
)

func TestParse_GeneratedNote(t *testing.T) {
	input := []byte("---\ntags:\n  - translation\ntitle: Ch1\ntranslatedTitle: Empty\nauthor: Ana\n---\n## Pag 1\n\n## Pag 2\n\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Ch1" {
		t.Errorf("title = %q, want Ch1", r.Title)
	}
	if r.String("author") != "Ana" {
		t.Errorf("author = %q, want Ana", r.String("author"))
	}
	if !r.HasTag("translation") {
		t.Errorf("tags = %v, want translation", r.Tags)
	}
	if len(r.Headings) != 2 || r.Headings[0] != "Pag 1" || r.Headings[1] != "Pag 2" {
		t.Errorf("headings = %v", r.Headings)
	}
}

func TestParse_EmptyFields(t *testing.T) {
	input := []byte("---\ntags:\n  - translation\ntitle: \ntranslatedTitle: Empty\nauthor: \n---\n## Pag 1\n\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "" || r.String("author") != "" {
		t.Errorf("title = %q, author = %q, want empty", r.Title, r.String("author"))
	}
	if r.String("missing") != "" {
		t.Error("missing key should be empty")
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", r.Title, "Just a heading")
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}

func TestExtractTags_InlineAndFrontmatter(t *testing.T) {
	fm := map[string]any{
		"tags": []any{"alpha"},
	}
	body := "Some text #beta and #alpha again."
	tags := extractTags(body, fm)
	if len(tags) != 2 || tags[0] != "alpha" || tags[1] != "beta" {
		t.Errorf("tags = %v, want [alpha beta]", tags)
	}
}

func TestExtractTags_StringField(t *testing.T) {
	tags := extractTags("", map[string]any{"tags": "translation, #manga"})
	if len(tags) != 2 || tags[0] != "translation" || tags[1] != "manga" {
		t.Errorf("tags = %v, want [translation manga]", tags)
	}
}

func TestExtractHeadings_OnlyLevelTwo(t *testing.T) {
	body := "# Title\n## Pag 1\ntext\n### Sub\n##NoSpace\n## Pag 2  \n"
	got := extractHeadings(body)
	if len(got) != 2 || got[0] != "Pag 1" || got[1] != "Pag 2" {
		t.Errorf("headings = %v, want [Pag 1 Pag 2]", got)
	}
}

func TestDeriveTitle_FrontmatterOverH1(t *testing.T) {
	fm := map[string]any{"title": "FM Title"}
	body := "# H1 Title\ntext"
	title := deriveTitle(fm, body)
	if title != "FM Title" {
		t.Errorf("title = %q, want %q", title, "FM Title")
	}
}

func TestDeriveTitle_H1Fallback(t *testing.T) {
	title := deriveTitle(nil, "some text\n# My Heading\nmore")
	if title != "My Heading" {
		t.Errorf("title = %q, want %q", title, "My Heading")
	}
}
