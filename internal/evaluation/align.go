package evaluation

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Align computes the classified difference between a reference report and
// a generated report. The raw character-level edit script is passed
// through a semantic cleanup pass so the result reads as a handful of
// legible chunks instead of isolated single-character edits.
//
// The output is deterministic for identical inputs and satisfies two
// reconstruction invariants: concatenating equal+missing spans in order
// yields the reference exactly, concatenating equal+added spans yields
// the generated text exactly.
func Align(reference, generated string) []Span {
	if reference == "" && generated == "" {
		return nil
	}
	if reference == "" {
		return []Span{{Kind: SpanAdded, Text: generated}}
	}
	if generated == "" {
		return []Span{{Kind: SpanMissing, Text: reference}}
	}

	// The diff engine works on runes and would mangle invalid UTF-8 into
	// U+FFFD, breaking byte-exact reconstruction. A coarse full
	// missing+added pair still satisfies both reconstruction invariants.
	if !utf8.ValidString(reference) || !utf8.ValidString(generated) {
		return []Span{
			{Kind: SpanMissing, Text: reference},
			{Kind: SpanAdded, Text: generated},
		}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(reference, generated, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	return coalesce(diffs)
}

// coalesce converts the library's edit script into spans, dropping empty
// segments and merging adjacent segments of the same kind.
func coalesce(diffs []diffmatchpatch.Diff) []Span {
	spans := make([]Span, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}

		kind := SpanEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = SpanMissing
		case diffmatchpatch.DiffInsert:
			kind = SpanAdded
		}

		if n := len(spans); n > 0 && spans[n-1].Kind == kind {
			spans[n-1].Text += d.Text
			continue
		}
		spans = append(spans, Span{Kind: kind, Text: d.Text})
	}
	return spans
}

// ReferenceText rebuilds the reference report from a span sequence.
func ReferenceText(spans []Span) string {
	var out []byte
	for _, s := range spans {
		if s.Kind == SpanEqual || s.Kind == SpanMissing {
			out = append(out, s.Text...)
		}
	}
	return string(out)
}

// GeneratedText rebuilds the generated report from a span sequence.
func GeneratedText(spans []Span) string {
	var out []byte
	for _, s := range spans {
		if s.Kind == SpanEqual || s.Kind == SpanAdded {
			out = append(out, s.Text...)
		}
	}
	return string(out)
}
