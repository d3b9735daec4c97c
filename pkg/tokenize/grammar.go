package tokenize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/adelevie/eyecite/pkg/reporters"
)

// Token constructors used by the built-in grammar.

// CitationConstructor builds a CitationToken from a volume/reporter/page
// match and the extractor's pre-resolved edition candidates.
func CitationConstructor(m Match, extra Extra) Token {
	return CitationToken{
		Data:              m.Text,
		Volume:            m.Groups["volume"],
		Reporter:          m.Groups["reporter"],
		Page:              m.Groups["page"],
		ExactEditions:     extra.ExactEditions,
		VariationEditions: extra.VariationEditions,
		Short:             extra.Short,
	}
}

// SectionConstructor builds a SectionToken from the whole match.
func SectionConstructor(m Match, extra Extra) Token {
	return SectionToken{Data: m.Text}
}

// SupraConstructor builds a SupraToken from the captured word, dropping
// the surrounding whitespace the pattern consumed.
func SupraConstructor(m Match, extra Extra) Token {
	return SupraToken{Data: m.Captures[1]}
}

// IdConstructor builds an IdToken from the captured word.
func IdConstructor(m Match, extra Extra) Token {
	return IdToken{Data: m.Captures[1]}
}

// StopWordConstructor builds a StopWordToken. Capture 1 is the word as
// matched (possibly with a trailing period), capture 2 the bare word.
func StopWordConstructor(m Match, extra Extra) Token {
	return StopWordToken{Data: m.Captures[1], Word: strings.ToLower(m.Captures[2])}
}

// BuildExtractors assembles the citation grammar for a loaded reporters
// database: one full-citation and one short-citation extractor per distinct
// reporter string, each carrying the string's edition candidates, followed
// by the marker extractors (section, supra, id, stop words). The returned
// slice is in tokenizer priority order.
func BuildExtractors(registry *reporters.Registry) ([]*Extractor, error) {
	reporterStrings := collectReporterStrings(registry)

	var extractors []*Extractor
	for _, reporterString := range reporterStrings {
		exact, variations := registry.Lookup(reporterString)
		namePattern := reporterPattern(reporterString)

		full, err := NewExtractor(
			fmt.Sprintf(`\b(?P<volume>\d+)\s+(?P<reporter>%s)\s+(?P<page>\d+)\b`, namePattern),
			CitationConstructor,
			0,
			Extra{ExactEditions: exact, VariationEditions: variations},
		)
		if err != nil {
			return nil, err
		}

		short, err := NewExtractor(
			fmt.Sprintf(`\b(?P<volume>\d+)\s+(?P<reporter>%s),?\s+at\s+(?P<page>\d+)\b`, namePattern),
			CitationConstructor,
			0,
			Extra{ExactEditions: exact, VariationEditions: variations, Short: true},
		)
		if err != nil {
			return nil, err
		}

		extractors = append(extractors, full, short)
	}

	markers, err := markerExtractors()
	if err != nil {
		return nil, err
	}
	extractors = append(extractors, markers...)

	return extractors, nil
}

// markerExtractors builds the non-citation extractors shared by every
// grammar: section symbols, supra, id/ibid and stop words.
func markerExtractors() ([]*Extractor, error) {
	section, err := NewExtractor(`(\S*§\S*)`, SectionConstructor, 0, Extra{})
	if err != nil {
		return nil, err
	}

	supra, err := NewExtractor(`(?:^|\s)(supra)\b,?`, SupraConstructor, FlagIgnoreCase, Extra{})
	if err != nil {
		return nil, err
	}

	id, err := NewExtractor(`(?:^|\s)(id\.,?|ibid\.)`, IdConstructor, FlagIgnoreCase, Extra{})
	if err != nil {
		return nil, err
	}

	escaped := make([]string, len(StopWords))
	for i, word := range StopWords {
		escaped[i] = regexp.QuoteMeta(word)
	}
	stopWord, err := NewExtractor(
		fmt.Sprintf(`(?:^|\s)((%s)\b\.?)`, strings.Join(escaped, "|")),
		StopWordConstructor,
		FlagIgnoreCase,
		Extra{},
	)
	if err != nil {
		return nil, err
	}

	return []*Extractor{section, supra, id, stopWord}, nil
}

// collectReporterStrings returns every distinct exact and variation string
// in deterministic order, longest first so that at equal start offsets the
// longer reporter name takes priority.
func collectReporterStrings(registry *reporters.Registry) []string {
	seen := make(map[string]bool)
	var all []string
	for _, s := range registry.EditionStrings() {
		if !seen[s] {
			seen[s] = true
			all = append(all, s)
		}
	}
	for _, s := range registry.VariationStrings() {
		if !seen[s] {
			seen[s] = true
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if len(all[i]) != len(all[j]) {
			return len(all[i]) > len(all[j])
		}
		return all[i] < all[j]
	})
	return all
}

// reporterPattern turns a reporter string into a pattern fragment: the
// string is quoted literally except that each space matches any whitespace
// run, since reprinted documents are loose about spacing inside
// abbreviations.
func reporterPattern(reporterString string) string {
	return strings.ReplaceAll(regexp.QuoteMeta(reporterString), " ", `\s+`)
}
