package evaluation

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestComputeMetrics_PerfectMatch(t *testing.T) {
	m := ComputeMetrics([]Span{{Kind: SpanEqual, Text: "aynı metin"}})

	if !almostEqual(m.MatchRatio, 1.0) {
		t.Errorf("expected match ratio 1.0, got %f", m.MatchRatio)
	}
	if !almostEqual(m.MissingRatio, 0.0) || !almostEqual(m.AddedRatio, 0.0) {
		t.Errorf("expected zero missing/added, got %f/%f", m.MissingRatio, m.AddedRatio)
	}
}

func TestComputeMetrics_CountsRunesNotBytes(t *testing.T) {
	// "dört" is 4 runes but 5 bytes.
	m := ComputeMetrics([]Span{
		{Kind: SpanEqual, Text: "dört"},
		{Kind: SpanMissing, Text: "dört"},
	})

	if m.EqualChars != 4 || m.MissingChars != 4 {
		t.Fatalf("expected 4/4 rune counts, got %d/%d", m.EqualChars, m.MissingChars)
	}
	if !almostEqual(m.MatchRatio, 0.5) {
		t.Errorf("expected match ratio 0.5, got %f", m.MatchRatio)
	}
}

func TestComputeMetrics_AddedOnly(t *testing.T) {
	m := ComputeMetrics([]Span{{Kind: SpanAdded, Text: "tamamen yeni"}})

	// Empty reference: reference ratios stay zero rather than dividing by zero.
	if !almostEqual(m.MatchRatio, 0.0) || !almostEqual(m.MissingRatio, 0.0) {
		t.Errorf("expected zero reference ratios, got %f/%f", m.MatchRatio, m.MissingRatio)
	}
	if !almostEqual(m.AddedRatio, 1.0) {
		t.Errorf("expected added ratio 1.0, got %f", m.AddedRatio)
	}
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics(nil)
	if m.EqualChars != 0 || m.MissingChars != 0 || m.AddedChars != 0 {
		t.Errorf("expected zero counts, got %+v", m)
	}
}

func TestComputeMetrics_MixedSpans(t *testing.T) {
	m := ComputeMetrics([]Span{
		{Kind: SpanEqual, Text: "123456"},
		{Kind: SpanMissing, Text: "12"},
		{Kind: SpanAdded, Text: "12"},
	})

	// Reference is 8 chars, generated is 8 chars.
	if !almostEqual(m.MatchRatio, 6.0/8.0) {
		t.Errorf("expected match 0.75, got %f", m.MatchRatio)
	}
	if !almostEqual(m.MissingRatio, 2.0/8.0) {
		t.Errorf("expected missing 0.25, got %f", m.MissingRatio)
	}
	if !almostEqual(m.AddedRatio, 2.0/8.0) {
		t.Errorf("expected added 0.25, got %f", m.AddedRatio)
	}
}
