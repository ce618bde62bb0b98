package render

import (
	"strings"
	"testing"

	"blogpilot/internal/core"
)

func TestCleanMarkdown_RemovesPlacementSection(t *testing.T) {
	input := `# Title

Some intro paragraph.

## Image Placement Suggestions
**Image 1 Placement:** after intro
**Image 1 ALT Text:** a diagram

## Real Section

Body text.`

	got := CleanMarkdown(input)
	if strings.Contains(got, "Image Placement Suggestions") {
		t.Error("placement section should be removed")
	}
	if strings.Contains(got, "Image 1 Placement") {
		t.Error("placement metadata lines should be removed")
	}
	if !strings.Contains(got, "## Real Section") {
		t.Error("following section heading must survive")
	}
	if !strings.Contains(got, "Body text.") {
		t.Error("body text must survive")
	}
}

func TestCleanMarkdown_UnescapesPunctuation(t *testing.T) {
	got := CleanMarkdown(`Text with \*\*escaped bold\*\* and \[brackets\].`)
	want := "Text with **escaped bold** and [brackets]."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCleanMarkdown_RemovesAIMeta(t *testing.T) {
	input := "Real content here. [This text was AI generated] More content."
	got := CleanMarkdown(input)
	if strings.Contains(got, "AI generated") {
		t.Errorf("meta commentary should be removed, got %q", got)
	}
	if !strings.Contains(got, "Real content here.") {
		t.Error("surrounding content must survive")
	}
}

func TestCleanMarkdown_FixesBoldRuns(t *testing.T) {
	got := CleanMarkdown("Strong ****emphasis**** run.")
	if strings.Contains(got, "***") {
		t.Errorf("asterisk runs should collapse, got %q", got)
	}
}

func TestCleanMarkdown_Idempotent(t *testing.T) {
	input := `# Title

Intro with \*escaped\* tokens.

## Image Placement Suggestions
Image 1 Placement: top

## Section

** Broken bold line
Content with ***runs***.


Extra blank lines above.`

	once := CleanMarkdown(input)
	twice := CleanMarkdown(once)
	if once != twice {
		t.Errorf("cleanup is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestCleanHTML_RemovesResidue(t *testing.T) {
	input := `<p>Good text</p>
<p>  </p>
<p>**</p>
<strong></strong>
<p>kept \[bracket\] text</p>`

	got := CleanHTML(input)
	if strings.Contains(got, "**") {
		t.Error("asterisk residue should be removed")
	}
	if strings.Contains(got, "<p>  </p>") || strings.Contains(got, "<p></p>") {
		t.Error("empty paragraphs should be removed")
	}
	if !strings.Contains(got, "[bracket]") {
		t.Errorf("escaped brackets should be unescaped, got %q", got)
	}
	if !strings.Contains(got, "Good text") {
		t.Error("real content must survive")
	}
}

func TestCleanHTML_Idempotent(t *testing.T) {
	input := `<p>Text ** residue</p><p></p><em> </em><p>more \\ text</p>`
	once := CleanHTML(input)
	twice := CleanHTML(once)
	if once != twice {
		t.Errorf("HTML cleanup is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestToHTML(t *testing.T) {
	md := `# My Article

First paragraph of prose.

## Section One

More prose here.`

	out, err := ToHTML(md)
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(out, "<h1>") {
		t.Error("expected an h1 in the output")
	}
	if !strings.Contains(out, "<h2>") {
		t.Error("expected an h2 in the output")
	}
	if !strings.Contains(out, "<p>") {
		t.Error("expected paragraphs in the output")
	}
}

func TestEmbedImages_FirstSlotAfterFirstSection(t *testing.T) {
	html := `<h1>Title</h1><p>Intro.</p><h2>Section</h2><p>First section body.</p><p>More.</p>`
	slots := []core.ImageSlot{
		{
			Placement:   0,
			Description: "docker containers",
			Image: &core.ImageRecord{
				URL:    "https://example.com/img.jpg",
				Alt:    "containers",
				Source: "Unsplash",
			},
		},
	}

	out, err := EmbedImages(html, slots)
	if err != nil {
		t.Fatalf("EmbedImages failed: %v", err)
	}
	if !strings.Contains(out, `<figure class="article-image">`) {
		t.Fatal("expected a figure block in the output")
	}

	figureIdx := strings.Index(out, "<figure")
	sectionBodyIdx := strings.Index(out, "First section body.")
	moreIdx := strings.Index(out, "More.")
	if figureIdx < sectionBodyIdx {
		t.Error("figure should come after the first section paragraph")
	}
	if figureIdx > moreIdx {
		t.Error("figure should come before later paragraphs")
	}
}

func TestEmbedImages_SkipsUnresolvedSlots(t *testing.T) {
	html := `<p>Only paragraph.</p>`
	slots := []core.ImageSlot{{Placement: 0, Description: "missing"}}

	out, err := EmbedImages(html, slots)
	if err != nil {
		t.Fatalf("EmbedImages failed: %v", err)
	}
	if strings.Contains(out, "<figure") {
		t.Error("unresolved slot should not produce a figure")
	}
}

func TestEmbedImages_AttributionCaption(t *testing.T) {
	html := `<p>Paragraph.</p>`
	slots := []core.ImageSlot{
		{
			Placement: 0,
			Image: &core.ImageRecord{
				URL:             "https://example.com/i.jpg",
				Alt:             "alt text",
				Source:          "Pexels",
				Photographer:    "Jane Doe",
				PhotographerURL: "https://pexels.com/@jane",
			},
		},
	}

	out, err := EmbedImages(html, slots)
	if err != nil {
		t.Fatalf("EmbedImages failed: %v", err)
	}
	if !strings.Contains(out, "Photo by") || !strings.Contains(out, "Jane Doe") {
		t.Errorf("expected photographer attribution caption, got %q", out)
	}
	if !strings.Contains(out, `rel="noopener"`) {
		t.Error("attribution link should carry rel=noopener")
	}
}

func TestEmbedImages_SecondSlotNearMidpoint(t *testing.T) {
	html := `<h1>T</h1><p>p1.</p><p>p2.</p><p>p3.</p><p>p4.</p><p>p5.</p><p>p6.</p>`
	slots := []core.ImageSlot{
		{Placement: 0, Image: &core.ImageRecord{URL: "https://example.com/a.jpg", Alt: "a", Source: "s"}},
		{Placement: 1, Image: &core.ImageRecord{URL: "https://example.com/b.jpg", Alt: "b", Source: "s"}},
	}

	out, err := EmbedImages(html, slots)
	if err != nil {
		t.Fatalf("EmbedImages failed: %v", err)
	}
	if strings.Count(out, "<figure") != 2 {
		t.Fatalf("expected 2 figures, got %d", strings.Count(out, "<figure"))
	}

	second := strings.Index(out, "b.jpg")
	first := strings.Index(out, "p1.")
	last := strings.Index(out, "p6.")
	if second < first || second > last {
		t.Error("second figure should land between the first and last paragraphs")
	}
}
