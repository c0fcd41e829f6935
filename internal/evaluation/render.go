package evaluation

import (
	"html"
	"strings"
)

// RenderAnnotated builds the two parallel plain-text documents from a span
// sequence: the reference side carries equal and missing text, the
// generated side carries equal and added text. Missing text is wrapped in
// [- -], added text in {+ +}.
func RenderAnnotated(spans []Span) (reference, generated string) {
	var ref, gen strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case SpanEqual:
			ref.WriteString(s.Text)
			gen.WriteString(s.Text)
		case SpanMissing:
			ref.WriteString("[-")
			ref.WriteString(s.Text)
			ref.WriteString("-]")
		case SpanAdded:
			gen.WriteString("{+")
			gen.WriteString(s.Text)
			gen.WriteString("+}")
		}
	}
	return ref.String(), gen.String()
}

// RenderSideBySideHTML builds the two synchronized annotated documents as
// an HTML fragment, one comparison box per side. Span text is escaped;
// classification is carried on span classes.
func RenderSideBySideHTML(spans []Span) string {
	var refHTML, genHTML strings.Builder

	for _, s := range spans {
		escaped := html.EscapeString(s.Text)
		switch s.Kind {
		case SpanEqual:
			refHTML.WriteString(`<span class="diff-text-equal">` + escaped + `</span>`)
			genHTML.WriteString(`<span class="diff-text-equal">` + escaped + `</span>`)
		case SpanMissing:
			refHTML.WriteString(`<span class="diff-text-missing" title="Eksik">` + escaped + `</span>`)
		case SpanAdded:
			genHTML.WriteString(`<span class="diff-text-added" title="Fazla">` + escaped + `</span>`)
		}
	}

	var out strings.Builder
	out.WriteString(`<div class="comparison-container">`)
	out.WriteString(`<div class="comparison-box"><div class="box-header">Gerçek Rapor (Referans)</div><div class="box-content">`)
	out.WriteString(refHTML.String())
	out.WriteString(`</div></div>`)
	out.WriteString(`<div class="comparison-box"><div class="box-header">AI Raporu (Analiz)</div><div class="box-content">`)
	out.WriteString(genHTML.String())
	out.WriteString(`</div></div>`)
	out.WriteString(`</div>`)
	return out.String()
}
