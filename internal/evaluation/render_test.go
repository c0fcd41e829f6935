package evaluation

import (
	"strings"
	"testing"
)

var renderSpans = []Span{
	{Kind: SpanEqual, Text: "Lezyon saptanmadı."},
	{Kind: SpanMissing, Text: " Plevral effüzyon izlenmedi."},
	{Kind: SpanAdded, Text: " Ek patoloji izlenmedi."},
}

func TestRenderAnnotated(t *testing.T) {
	reference, generated := RenderAnnotated(renderSpans)

	wantRef := "Lezyon saptanmadı.[- Plevral effüzyon izlenmedi.-]"
	if reference != wantRef {
		t.Errorf("reference side = %q, want %q", reference, wantRef)
	}

	wantGen := "Lezyon saptanmadı.{+ Ek patoloji izlenmedi.+}"
	if generated != wantGen {
		t.Errorf("generated side = %q, want %q", generated, wantGen)
	}
}

func TestRenderSideBySideHTML(t *testing.T) {
	out := RenderSideBySideHTML(renderSpans)

	for _, want := range []string{
		`<div class="comparison-container">`,
		`Gerçek Rapor (Referans)`,
		`AI Raporu (Analiz)`,
		`<span class="diff-text-equal">Lezyon saptanmadı.</span>`,
		`<span class="diff-text-missing" title="Eksik"> Plevral effüzyon izlenmedi.</span>`,
		`<span class="diff-text-added" title="Fazla"> Ek patoloji izlenmedi.</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}

	// Missing text must not appear on the generated side and vice versa.
	genSide := out[strings.Index(out, "AI Raporu"):]
	if strings.Contains(genSide, "effüzyon") {
		t.Error("missing span leaked into generated side")
	}
}

func TestRenderSideBySideHTML_EscapesContent(t *testing.T) {
	out := RenderSideBySideHTML([]Span{{Kind: SpanEqual, Text: `<script>alert("x")</script>`}})

	if strings.Contains(out, "<script>") {
		t.Fatal("span content was not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("expected escaped script tag")
	}
}
