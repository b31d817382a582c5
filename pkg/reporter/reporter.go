package reporter

import (
	"fmt"
	"strings"

	"github.com/amosWeiskopf/onpage/internal/models"
	"github.com/amosWeiskopf/onpage/pkg/utils"
)

const (
	// HeadingMaxChars is the cutoff for heading text in the report.
	HeadingMaxChars = 80
	// MetaValueMaxChars is the cutoff for other meta tag values.
	MetaValueMaxChars = 100
)

// Separator frames the report header.
var Separator = strings.Repeat("=", 60)

// Reporter renders SEO records as plain-text audit reports
type Reporter struct{}

// New creates a new Reporter instance
func New() *Reporter {
	return &Reporter{}
}

// Format renders rec into the fixed report layout. Lines are joined with
// "\n" and there is no trailing newline. A failed record renders only the
// header and the error line.
func (r *Reporter) Format(rec models.SeoRecord) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("%s", Separator)
	add("       ✅ Auditoría SEO On-Page: %s", rec.URL)
	add("%s", Separator)

	if rec.Failed() {
		add("❌ ERROR: %s", rec.Error)
		add("%s", Separator)
		return strings.Join(lines, "\n")
	}

	add("\n--- MÉTADATOS PRINCIPALES (HEAD) ---")
	add("TITLE:           %s", valueOrNotFound(rec.Title))
	add("Descripción Meta:  %s", valueOrNotFound(rec.MetaDescription))
	add("Keywords Meta:   %s", valueOrNotFound(rec.MetaKeywords))
	add("Canonical URL:   %s", valueOrNotFound(rec.Canonical))

	add("\n--- ESTRUCTURA DE ENCABEZADOS ---")
	for _, level := range []struct {
		tag      string
		headings []string
	}{
		{"h1", rec.H1},
		{"h2", rec.H2},
		{"h3", rec.H3},
	} {
		add("%s (%d):", strings.ToUpper(level.tag), len(level.headings))
		if len(level.headings) == 0 {
			add("  No se encontraron etiquetas <%s>.", level.tag)
			continue
		}
		for i, h := range level.headings {
			add("  %d. %s", i+1, utils.TruncateText(h, HeadingMaxChars))
		}
	}

	add("\n--- OTRAS METATAGS (Robots, OG, etc.) ---")
	if rec.OtherMeta.Len() == 0 {
		add("  No se encontraron meta tags adicionales (robots, Open Graph, etc.).")
	}
	for _, name := range rec.OtherMeta.Names() {
		value, _ := rec.OtherMeta.Get(name)
		add("  %s: %s", name, utils.TruncateText(value, MetaValueMaxChars))
	}

	return strings.Join(lines, "\n")
}

func valueOrNotFound(v *string) string {
	if v == nil {
		return models.NotFound
	}
	return *v
}
