package assemble

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"blogpilot/internal/core"
)

// AI-response patterns, strict to loose. The first pattern that yields
// anything wins for each field.
var aiDescPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\*\*Image (\d+) Description:\*\*\s*\[(.*?)\]`),
	regexp.MustCompile(`\*\*Image (\d+) Description:\*\*\s*([^\n]+)`),
	regexp.MustCompile(`Image (\d+) Description[:\s]+([^\n]+)`),
}

var aiAltPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\*\*Image (\d+) ALT Text:\*\*\s*\[(.*?)\]`),
	regexp.MustCompile(`\*\*Image (\d+) ALT Text:\*\*\s*([^\n]+)`),
	regexp.MustCompile(`Image (\d+) ALT Text[:\s]+([^\n]+)`),
}

// Inline patterns for the placement block embedded in article markdown.
var inlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)Image (\d+) Placement:.*?\*\*Image \d+ Description[^:]*:\*\* \[(.*?)\].*?\*\*Image \d+ ALT Text:\*\* \[(.*?)\]`),
	regexp.MustCompile(`(?s)\*\*Image (\d+) Description[^:]*:\*\* \[(.*?)\].*?\*\*Image \d+ ALT Text:\*\* \[(.*?)\]`),
	regexp.MustCompile(`(?s)Image (\d+)[^\n]*?Description[^:]*:\s*\[(.*?)\].*?ALT Text[^:]*:\s*\[(.*?)\]`),
}

var bracketStrip = regexp.MustCompile(`[\[\]]`)

// parseAIImageInfo extracts image slots from a standalone AI response in
// the image-info prompt's format.
func parseAIImageInfo(response string) []core.ImageSlot {
	byNumber := make(map[int]*core.ImageSlot)
	var order []int

	for _, p := range aiDescPatterns {
		for _, m := range p.FindAllStringSubmatch(response, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if _, ok := byNumber[n]; ok {
				continue
			}
			desc := strings.TrimSpace(bracketStrip.ReplaceAllString(m[2], ""))
			if desc == "" {
				continue
			}
			byNumber[n] = &core.ImageSlot{Placement: n - 1, Description: desc}
			order = append(order, n)
		}
		if len(byNumber) > 0 {
			break
		}
	}

	for _, p := range aiAltPatterns {
		matched := false
		for _, m := range p.FindAllStringSubmatch(response, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if slot, ok := byNumber[n]; ok && slot.AltText == "" {
				slot.AltText = strings.TrimSpace(bracketStrip.ReplaceAllString(m[2], ""))
				matched = true
			}
		}
		if matched {
			break
		}
	}

	slots := make([]core.ImageSlot, 0, len(order))
	for _, n := range order {
		slot := byNumber[n]
		if slot.AltText == "" {
			slot.AltText = slot.Description + " - Professional technology visualization"
		}
		slots = append(slots, *slot)
	}
	return slots
}

// parseInlineImageInfo extracts image slots from the placement block in
// the article markdown itself.
func parseInlineImageInfo(content string) []core.ImageSlot {
	for _, p := range inlinePatterns {
		matches := p.FindAllStringSubmatch(content, -1)
		if len(matches) == 0 {
			continue
		}
		var slots []core.ImageSlot
		for _, m := range matches {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			slots = append(slots, core.ImageSlot{
				Placement:   n - 1,
				Description: strings.TrimSpace(m[2]),
				AltText:     strings.TrimSpace(m[3]),
			})
		}
		if len(slots) > 0 {
			return slots
		}
	}
	return nil
}

// defaultImageInfo is the last link of the extraction chain: two
// category-guessed slots derived from the topic alone.
func defaultImageInfo(topic string) []core.ImageSlot {
	lower := strings.ToLower(topic)

	switch {
	case strings.Contains(lower, "ai") || strings.Contains(lower, "artificial intelligence"):
		return []core.ImageSlot{
			{Placement: 0, Description: "artificial intelligence neural network", AltText: "AI neural network visualization"},
			{Placement: 1, Description: "machine learning data analysis", AltText: "Machine learning data processing"},
		}
	case strings.Contains(lower, "blockchain") || strings.Contains(lower, "crypto"):
		return []core.ImageSlot{
			{Placement: 0, Description: "blockchain technology network", AltText: "Blockchain network visualization"},
			{Placement: 1, Description: "cryptocurrency trading dashboard", AltText: "Digital currency trading interface"},
		}
	case strings.Contains(lower, "cloud") || strings.Contains(lower, "computing"):
		return []core.ImageSlot{
			{Placement: 0, Description: "cloud computing infrastructure", AltText: "Cloud computing data center"},
			{Placement: 1, Description: "server technology network", AltText: "Network server infrastructure"},
		}
	default:
		return []core.ImageSlot{
			{Placement: 0, Description: fmt.Sprintf("%s technology", topic), AltText: fmt.Sprintf("%s technology visualization", topic)},
			{Placement: 1, Description: fmt.Sprintf("%s innovation", topic), AltText: fmt.Sprintf("%s innovation concept", topic)},
		}
	}
}
