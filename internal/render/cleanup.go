package render

import (
	"regexp"
	"strings"
)

type substitution struct {
	pattern *regexp.Regexp
	repl    string
}

// markdownSubs is the ordered artifact-removal list applied to raw
// generated markdown before HTML conversion. Order matters: placement
// sections go first so their member lines do not survive as orphans, and
// unescaping runs before the bold-run fixes that inspect asterisks.
var markdownSubs = []substitution{
	// Whole image-placement suggestion sections.
	{regexp.MustCompile(`(?s)## Image Placement Suggestions.*?(\n## |\z)`), "$1"},
	{regexp.MustCompile(`(?s)\*\*Image Placement Suggestions.*?\*\*`), ""},

	// Individual placement metadata lines.
	{regexp.MustCompile(`(?m)^\*\*Image \d+ Placement:\*\*.*$`), ""},
	{regexp.MustCompile(`(?m)^\*\*Image \d+ Description.*$`), ""},
	{regexp.MustCompile(`(?m)^\*\*Image \d+ ALT Text:\*\*.*$`), ""},
	{regexp.MustCompile(`(?m)^Image \d+ Placement:.*$`), ""},
	{regexp.MustCompile(`(?m)^Image \d+ Description.*$`), ""},
	{regexp.MustCompile(`(?m)^Image \d+ ALT Text:.*$`), ""},

	// Escaped markdown punctuation the backend sometimes emits.
	{regexp.MustCompile(`\\(\*\*|\*|\[|\]|\(|\)|#|_|` + "`" + `)`), "$1"},

	// Meta commentary fragments.
	{regexp.MustCompile(`(?i)\[[^\[\]\n]*AI[^\[\]\n]*generated[^\[\]\n]*\]`), ""},
	{regexp.MustCompile(`(?i)\[[^\[\]\n]*machine[^\[\]\n]*generated[^\[\]\n]*\]`), ""},
	{regexp.MustCompile(`(?i)\*\*Note:[^*]*\*\*`), ""},
	{regexp.MustCompile(`(?i)\(Generated by[^)]*\)`), ""},

	// Unterminated bold at line starts: "** Text" becomes "**Text**".
	{regexp.MustCompile(`(?m)^\*\* ([^*\n]+)$`), "**$1**"},

	// Runs of three or more asterisks collapse to bold.
	{regexp.MustCompile(`\*{3,}`), "**"},

	// Collapse stacked blank lines.
	{regexp.MustCompile(`\n\s*\n\s*\n+`), "\n\n"},
}

// htmlSubs is the residue pass over converted HTML: tokens the first
// pass could not see plus empty tags created by removals.
var htmlSubs = []substitution{
	// Asterisks that survived conversion, escaped or not.
	{regexp.MustCompile(`\\?\*\\?\*`), ""},
	{regexp.MustCompile(`\\?\*`), ""},

	// Escaped brackets and stray backslashes.
	{regexp.MustCompile(`\\\[`), "["},
	{regexp.MustCompile(`\\\]`), "]"},
	{regexp.MustCompile(`\\\\`), ""},

	// Empty tags left behind by the removals above.
	{regexp.MustCompile(`<p>\s*</p>`), ""},
	{regexp.MustCompile(`<strong>\s*</strong>`), ""},
	{regexp.MustCompile(`<em>\s*</em>`), ""},

	// Collapse horizontal whitespace runs and stacked blank lines.
	{regexp.MustCompile(`[ \t]{2,}`), " "},
	{regexp.MustCompile(`\n\s*\n\s*\n+`), "\n\n"},
}

// CleanMarkdown strips generation artifacts from raw markdown. Applying
// it to already-clean text is a no-op.
func CleanMarkdown(content string) string {
	return applySubs(content, markdownSubs)
}

// CleanHTML strips residual markdown tokens and empty tags from
// converted HTML. Applying it to already-clean HTML is a no-op.
func CleanHTML(content string) string {
	return applySubs(content, htmlSubs)
}

func applySubs(content string, subs []substitution) string {
	for _, s := range subs {
		content = s.pattern.ReplaceAllString(content, s.repl)
	}
	return strings.TrimSpace(content)
}
