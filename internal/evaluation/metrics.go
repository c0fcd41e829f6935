package evaluation

import "unicode/utf8"

// ComputeMetrics derives character-level quality ratios from a span
// sequence. Counts are in runes so multi-byte Turkish characters weigh
// the same as ASCII.
func ComputeMetrics(spans []Span) CaseMetrics {
	var m CaseMetrics
	for _, s := range spans {
		n := utf8.RuneCountInString(s.Text)
		switch s.Kind {
		case SpanEqual:
			m.EqualChars += n
		case SpanMissing:
			m.MissingChars += n
		case SpanAdded:
			m.AddedChars += n
		}
	}

	if refLen := m.EqualChars + m.MissingChars; refLen > 0 {
		m.MatchRatio = float64(m.EqualChars) / float64(refLen)
		m.MissingRatio = float64(m.MissingChars) / float64(refLen)
	}
	if genLen := m.EqualChars + m.AddedChars; genLen > 0 {
		m.AddedRatio = float64(m.AddedChars) / float64(genLen)
	}

	return m
}
