package assemble

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	titleLine      = regexp.MustCompile(`(?m)^# (.+)$`)
	sectionLine    = regexp.MustCompile(`(?m)^## .+$`)
	imageMention   = regexp.MustCompile(`(?i)(Image \d+ Placement:|Image Placement Suggestions|image)`)
	markupStripper = regexp.MustCompile(`[#*\[\]()]`)
)

// Validation is the outcome of the quality gates applied to raw
// generated markdown. Errors abort assembly; warnings travel with the
// article.
type Validation struct {
	Errors       []string
	Warnings     []string
	WordCount    int
	SectionCount int
}

// Valid reports whether the content passed all hard gates.
func (v Validation) Valid() bool {
	return len(v.Errors) == 0
}

// CountWords counts whitespace-separated tokens after stripping
// markdown punctuation.
func CountWords(content string) int {
	stripped := markupStripper.ReplaceAllString(content, "")
	count := 0
	for _, tok := range strings.Fields(stripped) {
		if tok != "" {
			count++
		}
	}
	return count
}

// Validate applies the content quality gates. A missing title line or a
// word count below minWords is a hard error; thin sectioning and sparse
// image suggestions only warn.
func Validate(content string, minWords, minSections, minImages int) Validation {
	v := Validation{
		WordCount:    CountWords(content),
		SectionCount: len(sectionLine.FindAllString(content, -1)),
	}

	if v.WordCount < minWords {
		v.Errors = append(v.Errors,
			fmt.Sprintf("word count %d is below minimum %d", v.WordCount, minWords))
	}
	if !titleLine.MatchString(content) {
		v.Errors = append(v.Errors, "missing article title line")
	}

	if v.SectionCount < minSections {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("article has only %d sections, recommended at least %d", v.SectionCount, minSections))
	}
	if len(imageMention.FindAllString(content, -1)) < minImages {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("insufficient image suggestions, minimum %d recommended", minImages))
	}

	return v
}
