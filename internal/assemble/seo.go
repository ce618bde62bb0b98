package assemble

import (
	"regexp"
	"strings"
)

const (
	defaultTitle       = "Latest Technology Trends and Insights"
	defaultDescription = "Discover the latest trends and insights in technology and electronics."
)

var (
	bracketedNote  = regexp.MustCompile(`\[.*?\]`)
	inlineMarkup   = regexp.MustCompile("[*_`]")
	inlineMarkupH  = regexp.MustCompile("[*_`#]")
	firstSectionRe = regexp.MustCompile(`(?s)## .+?\n+(.+?)(\n\n|\n##)`)
	anyParagraphRe = regexp.MustCompile(`(?s)\n\n(.+?)\n\n`)
)

// SEOData is the metadata pair extracted from generated markdown.
type SEOData struct {
	Title       string
	Description string
}

// ExtractSEO derives the SEO title and meta description from the
// markdown body. The first "#" line becomes the title, the first
// paragraph of the first section becomes the description; both are
// truncated to their configured ceilings and backed by static defaults
// so neither is ever empty.
func ExtractSEO(content string, titleMax, descMax int) SEOData {
	data := SEOData{}

	if m := titleLine.FindStringSubmatch(content); m != nil {
		title := strings.TrimSpace(bracketedNote.ReplaceAllString(m[1], ""))
		data.Title = Truncate(title, titleMax)
	}

	if m := firstSectionRe.FindStringSubmatch(content); m != nil {
		data.Description = Truncate(cleanInline(m[1], inlineMarkup), descMax)
	} else if m := anyParagraphRe.FindStringSubmatch(content); m != nil {
		data.Description = Truncate(cleanInline(m[1], inlineMarkupH), descMax)
	}

	if data.Title == "" {
		data.Title = defaultTitle
	}
	if data.Description == "" {
		data.Description = defaultDescription
	}
	return data
}

// Truncate shortens s to max characters, reserving three for an
// ellipsis when cutting is needed. Counts runes so Korean titles do not
// get cut mid-character.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func cleanInline(s string, markup *regexp.Regexp) string {
	s = bracketedNote.ReplaceAllString(s, "")
	s = markup.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
