package render

import (
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"blogpilot/internal/core"
)

const figcaptionStyle = "text-align: center; font-size: 0.9em; color: #666; margin-top: 8px;"
const imgStyle = "width: 100%; height: auto; border-radius: 8px; margin: 20px 0;"

// EmbedImages splices one figure block per resolved slot into the
// article HTML. The first slot lands after the first paragraph of the
// first section; later slots land near the document midpoint. Slots
// without a resolved image are skipped.
func EmbedImages(htmlContent string, slots []core.ImageSlot) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse article HTML: %w", err)
	}

	for i, slot := range slots {
		if slot.Image == nil || slot.Image.URL == "" {
			continue
		}
		figure := figureHTML(*slot.Image)

		if i == 0 {
			insertAfterFirstSection(doc, figure)
		} else {
			insertNearMidpoint(doc, figure)
		}
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize article HTML: %w", err)
	}
	return out, nil
}

// insertAfterFirstSection places the figure after the first paragraph
// following the first h2, falling back to the first paragraph overall.
func insertAfterFirstSection(doc *goquery.Document, figure string) {
	firstH2 := doc.Find("h2").First()
	if firstH2.Length() > 0 {
		p := firstH2.NextAllFiltered("p").First()
		if p.Length() > 0 {
			p.AfterHtml(figure)
			return
		}
		firstH2.AfterHtml(figure)
		return
	}

	p := doc.Find("p").First()
	if p.Length() > 0 {
		p.AfterHtml(figure)
		return
	}
	doc.Find("body").AppendHtml(figure)
}

// insertNearMidpoint places the figure after the first paragraph of the
// middle h2 section when the document has enough sections, otherwise
// after the middle paragraph.
func insertNearMidpoint(doc *goquery.Document, figure string) {
	h2s := doc.Find("h2")
	if h2s.Length() > 2 {
		middle := h2s.Eq(h2s.Length() / 2)
		p := middle.NextAllFiltered("p").First()
		if p.Length() > 0 {
			p.AfterHtml(figure)
			return
		}
		middle.AfterHtml(figure)
		return
	}

	paragraphs := doc.Find("p")
	if paragraphs.Length() == 0 {
		doc.Find("body").AppendHtml(figure)
		return
	}
	paragraphs.Eq(paragraphs.Length() / 2).AfterHtml(figure)
}

// figureHTML renders one image with its attribution caption.
func figureHTML(img core.ImageRecord) string {
	var caption string
	switch {
	case img.Photographer != "" && img.PhotographerURL != "":
		caption = fmt.Sprintf(
			`<figcaption style="%s">Photo by <a href="%s" target="_blank" rel="noopener">%s</a> on %s</figcaption>`,
			figcaptionStyle,
			stdhtml.EscapeString(img.PhotographerURL),
			stdhtml.EscapeString(img.Photographer),
			stdhtml.EscapeString(img.Source),
		)
	case img.Attribution != "":
		caption = fmt.Sprintf(`<figcaption style="%s">%s</figcaption>`,
			figcaptionStyle, stdhtml.EscapeString(img.Attribution))
	case img.Source != "":
		caption = fmt.Sprintf(`<figcaption style="%s">Image from %s</figcaption>`,
			figcaptionStyle, stdhtml.EscapeString(img.Source))
	}

	return fmt.Sprintf(
		`<figure class="article-image"><img src="%s" alt="%s" style="%s">%s</figure>`,
		stdhtml.EscapeString(img.URL),
		stdhtml.EscapeString(img.Alt),
		imgStyle,
		caption,
	)
}
