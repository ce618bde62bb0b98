// Package render converts generated markdown into publishable HTML. The
// generation backend leaves recognizable artifacts behind (placement
// annotation blocks, escaped punctuation, meta commentary), so conversion
// is bracketed by two cleanup passes: one over the markdown before
// goldmark runs, one over the HTML it produced.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

// ToHTML runs the full markdown pipeline: artifact cleanup, goldmark
// conversion, then the HTML residue pass.
func ToHTML(markdown string) (string, error) {
	cleaned := CleanMarkdown(markdown)

	var buf bytes.Buffer
	if err := converter.Convert([]byte(cleaned), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	return CleanHTML(buf.String()), nil
}
