package tokenize

import (
	"fmt"
	"regexp"

	"github.com/adelevie/eyecite/pkg/reporters"
)

// Flags alter how an extractor's pattern is compiled.
type Flags int

const (
	// FlagIgnoreCase compiles the pattern case-insensitively.
	FlagIgnoreCase Flags = 1 << iota
)

// Extra is configuration merged into the tokens an extractor constructs.
// Citation extractors use it to attach the edition candidates that were
// resolved when the grammar was built.
type Extra struct {
	ExactEditions     []reporters.Edition
	VariationEditions []reporters.Edition
	Short             bool
}

// Match is one span found by an extractor's pattern.
type Match struct {
	// Text is the full matched substring; Start and End are its byte
	// offsets in the source text.
	Text  string
	Start int
	End   int

	// Groups holds the named capture groups, Captures the numbered ones
	// (index 0 is the full match). A group that did not participate is
	// the empty string.
	Groups   map[string]string
	Captures []string
}

// Constructor builds a Token from a match and the extractor's extra
// configuration. Most constructors use the whole match text; markers that
// only want a captured sub-group (supra, id, stop words) take it from the
// capture list instead.
type Constructor func(m Match, extra Extra) Token

// Extractor wraps one compiled pattern and a token constructor. The
// pattern is compiled once, at construction, so a broken grammar surfaces
// before any document is processed.
type Extractor struct {
	Pattern     string
	Constructor Constructor
	Flags       Flags
	Extra       Extra

	compiled *regexp.Regexp
}

// NewExtractor compiles the pattern and returns the extractor. A pattern
// that fails to compile is fatal here, not at match time.
func NewExtractor(pattern string, constructor Constructor, flags Flags, extra Extra) (*Extractor, error) {
	if constructor == nil {
		return nil, fmt.Errorf("extractor constructor cannot be nil")
	}

	source := pattern
	if flags&FlagIgnoreCase != 0 {
		source = "(?i)" + source
	}
	compiled, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compiling extractor pattern %q: %w", pattern, err)
	}

	return &Extractor{
		Pattern:     pattern,
		Constructor: constructor,
		Flags:       flags,
		Extra:       extra,
		compiled:    compiled,
	}, nil
}

// Matches returns all spans the extractor's pattern finds in text, in
// document order.
func (e *Extractor) Matches(text string) []Match {
	indexes := e.compiled.FindAllStringSubmatchIndex(text, -1)
	if indexes == nil {
		return nil
	}

	names := e.compiled.SubexpNames()
	matches := make([]Match, 0, len(indexes))
	for _, idx := range indexes {
		m := Match{
			Text:     text[idx[0]:idx[1]],
			Start:    idx[0],
			End:      idx[1],
			Groups:   make(map[string]string),
			Captures: make([]string, len(idx)/2),
		}
		for g := 0; g < len(idx)/2; g++ {
			if idx[2*g] == -1 {
				continue
			}
			captured := text[idx[2*g]:idx[2*g+1]]
			m.Captures[g] = captured
			if g > 0 && names[g] != "" {
				m.Groups[names[g]] = captured
			}
		}
		matches = append(matches, m)
	}
	return matches
}

// TokenFor constructs the token for a match.
func (e *Extractor) TokenFor(m Match) Token {
	return e.Constructor(m, e.Extra)
}

// Canonical returns a representation under which two extractors with the
// same pattern and flags compare equal. Used to deduplicate extractors
// surfaced more than once by a multi-pattern pre-filter.
func (e *Extractor) Canonical() string {
	return fmt.Sprintf("%d:%s", e.Flags, e.Pattern)
}

// Equal reports whether two extractors are interchangeable.
func (e *Extractor) Equal(other *Extractor) bool {
	return other != nil && e.Canonical() == other.Canonical()
}

// DedupExtractors removes extractors whose canonical representations have
// already been seen, preserving order.
func DedupExtractors(extractors []*Extractor) []*Extractor {
	seen := make(map[string]bool, len(extractors))
	deduped := make([]*Extractor, 0, len(extractors))
	for _, extractor := range extractors {
		key := extractor.Canonical()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, extractor)
	}
	return deduped
}
