package tokenize

import (
	"testing"
)

func TestNewExtractorRejectsBadPattern(t *testing.T) {
	_, err := NewExtractor(`(unclosed`, SectionConstructor, 0, Extra{})
	if err == nil {
		t.Fatal("Expected error for pattern that does not compile")
	}
}

func TestNewExtractorRejectsNilConstructor(t *testing.T) {
	_, err := NewExtractor(`x`, nil, 0, Extra{})
	if err == nil {
		t.Fatal("Expected error for nil constructor")
	}
}

func TestExtractorMatches(t *testing.T) {
	extractor, err := NewExtractor(
		`\b(?P<volume>\d+)\s+(?P<reporter>U\.S\.)\s+(?P<page>\d+)\b`,
		CitationConstructor, 0, Extra{})
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}

	text := "See 515 U.S. 200 and also 530 U.S. 914 for more."
	matches := extractor.Matches(text)
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}

	first := matches[0]
	if first.Text != "515 U.S. 200" {
		t.Errorf("Match text = %q, want %q", first.Text, "515 U.S. 200")
	}
	if first.Start != 4 || first.End != 16 {
		t.Errorf("Match span = [%d,%d), want [4,16)", first.Start, first.End)
	}
	if first.Groups["volume"] != "515" || first.Groups["reporter"] != "U.S." || first.Groups["page"] != "200" {
		t.Errorf("Named groups = %v", first.Groups)
	}
}

func TestExtractorCaseInsensitiveFlag(t *testing.T) {
	extractor, err := NewExtractor(`(?:^|\s)(supra)\b,?`, SupraConstructor, FlagIgnoreCase, Extra{})
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}
	if len(extractor.Matches("Adarand, Supra, at 240")) != 1 {
		t.Error("Expected case-insensitive match for Supra")
	}
}

func TestExtractorTokenFor(t *testing.T) {
	extractor, err := NewExtractor(`(?:^|\s)(supra)\b,?`, SupraConstructor, FlagIgnoreCase, Extra{})
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}
	matches := extractor.Matches("Adarand, supra, at 240")
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}

	token := extractor.TokenFor(matches[0])
	supra, ok := token.(SupraToken)
	if !ok {
		t.Fatalf("Expected SupraToken, got %T", token)
	}
	if supra.Text() != "supra" {
		t.Errorf("Token text = %q, want %q (captured group only)", supra.Text(), "supra")
	}
}

func TestExtractorEquality(t *testing.T) {
	a, _ := NewExtractor(`x+`, SectionConstructor, 0, Extra{})
	b, _ := NewExtractor(`x+`, SectionConstructor, 0, Extra{})
	c, _ := NewExtractor(`x+`, SectionConstructor, FlagIgnoreCase, Extra{})
	d, _ := NewExtractor(`y+`, SectionConstructor, 0, Extra{})

	if !a.Equal(b) {
		t.Error("Extractors with same pattern and flags should be equal")
	}
	if a.Equal(c) {
		t.Error("Extractors with different flags should not be equal")
	}
	if a.Equal(d) {
		t.Error("Extractors with different patterns should not be equal")
	}
	if a.Equal(nil) {
		t.Error("Extractor should not equal nil")
	}
}

func TestDedupExtractors(t *testing.T) {
	a, _ := NewExtractor(`x+`, SectionConstructor, 0, Extra{})
	b, _ := NewExtractor(`x+`, SectionConstructor, 0, Extra{})
	c, _ := NewExtractor(`y+`, SectionConstructor, 0, Extra{})

	deduped := DedupExtractors([]*Extractor{a, b, c})
	if len(deduped) != 2 {
		t.Fatalf("Expected 2 extractors after dedup, got %d", len(deduped))
	}
	if deduped[0] != a || deduped[1] != c {
		t.Error("Dedup should keep first occurrence and preserve order")
	}
}
