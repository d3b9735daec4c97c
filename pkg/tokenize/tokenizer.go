package tokenize

import (
	"sort"
	"strings"
)

// Tokenizer combines many extractors into a single pass that produces one
// ordered token stream for a document.
type Tokenizer struct {
	extractors []*Extractor
}

// NewTokenizer creates a tokenizer running the given extractors in
// priority order: when two matches start at the same offset, the earlier
// extractor wins.
func NewTokenizer(extractors ...*Extractor) *Tokenizer {
	return &Tokenizer{extractors: DedupExtractors(extractors)}
}

// Extractors returns the tokenizer's extractors in priority order.
func (t *Tokenizer) Extractors() []*Extractor {
	out := make([]*Extractor, len(t.extractors))
	copy(out, t.extractors)
	return out
}

// span is one extractor match tagged with its source extractor's priority.
type span struct {
	match    Match
	priority int
	source   *Extractor
}

// Tokenize produces the document's token stream: every extractor match in
// document order, with the gaps between matches emitted as one PlainWord
// per whitespace-delimited word. The result is eager and indexable; the
// index of a token in the returned slice is the identity citations use to
// refer back to it.
func (t *Tokenizer) Tokenize(text string) []Token {
	var spans []span
	for priority, extractor := range t.extractors {
		for _, m := range extractor.Matches(text) {
			spans = append(spans, span{match: m, priority: priority, source: extractor})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].match.Start != spans[j].match.Start {
			return spans[i].match.Start < spans[j].match.Start
		}
		return spans[i].priority < spans[j].priority
	})

	var tokens []Token
	cursor := 0
	for _, s := range spans {
		if s.match.Start < cursor {
			// Overlaps a higher-priority match already emitted.
			continue
		}
		tokens = appendWords(tokens, text[cursor:s.match.Start])
		tokens = append(tokens, s.source.TokenFor(s.match))
		cursor = s.match.End
	}
	tokens = appendWords(tokens, text[cursor:])

	return tokens
}

// appendWords splits a gap between matches into plain-word tokens.
func appendWords(tokens []Token, gap string) []Token {
	for _, word := range strings.Fields(gap) {
		tokens = append(tokens, PlainWord{Data: word})
	}
	return tokens
}
