package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/amosWeiskopf/onpage/internal/models"
)

// Extractor builds SEO records from page markup
type Extractor struct{}

// New creates a new Extractor instance
func New() *Extractor {
	return &Extractor{}
}

// Extract parses markup and returns the SEO record for pageURL. It never
// panics; parse failures are reported through the record's Error field.
func (e *Extractor) Extract(pageURL, markup string) (rec models.SeoRecord) {
	defer func() {
		if r := recover(); r != nil {
			rec = models.FailedRecord(pageURL, fmt.Sprintf("Ocurrió un error general durante el parseo: %v", r))
		}
	}()

	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return models.FailedRecord(pageURL, fmt.Sprintf("Ocurrió un error general durante el parseo: %v", err))
	}
	doc := goquery.NewDocumentFromNode(root)

	rec = models.SeoRecord{
		URL:       pageURL,
		Title:     extractTitle(doc),
		Canonical: extractCanonical(doc),
		H1:        extractHeadings(doc, "h1"),
		H2:        extractHeadings(doc, "h2"),
		H3:        extractHeadings(doc, "h3"),
	}
	extractMeta(doc, &rec)

	return rec
}

func extractTitle(doc *goquery.Document) *string {
	title := doc.Find("title").First()
	if title.Length() == 0 {
		return nil
	}
	text := strings.TrimSpace(title.Text())
	return &text
}

// extractMeta walks every meta element. description and keywords fill the
// dedicated fields; any other name, or failing that property, goes into
// OtherMeta under its lower-cased key, where later duplicates win.
func extractMeta(doc *goquery.Document, rec *models.SeoRecord) {
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		property := s.AttrOr("property", "")
		content := strings.TrimSpace(s.AttrOr("content", ""))

		key := strings.ToLower(name)
		switch key {
		case "description":
			rec.MetaDescription = &content
		case "keywords":
			rec.MetaKeywords = &content
		case "":
			if property != "" {
				rec.OtherMeta.Set(strings.ToLower(property), content)
			}
		default:
			rec.OtherMeta.Set(key, content)
		}
	})
}

func extractCanonical(doc *goquery.Document) *string {
	var canonical *string
	doc.Find("link[rel]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !hasToken(s.AttrOr("rel", ""), "canonical") {
			return true
		}
		if href, ok := s.Attr("href"); ok {
			canonical = &href
		}
		return false
	})
	return canonical
}

func extractHeadings(doc *goquery.Document, tag string) []string {
	headings := []string{}
	doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, strings.TrimSpace(s.Text()))
	})
	return headings
}

// hasToken reports whether the space-separated attribute value contains
// token, ignoring case.
func hasToken(value, token string) bool {
	for _, field := range strings.Fields(value) {
		if strings.EqualFold(field, token) {
			return true
		}
	}
	return false
}
