// Package tokenize turns raw legal text into an ordered stream of tokens:
// plain words interleaved with typed lexical markers (citations, section
// symbols, "supra", "id.", stop words) found by a configurable set of
// regex extractors.
package tokenize

import (
	"github.com/adelevie/eyecite/pkg/reporters"
)

// Token is the smallest lexical unit produced by tokenization. The set of
// implementations is closed; consumers dispatch with a type switch.
//
// Tokens are immutable values. Text returns exactly the substring the
// token was matched from; for markers that capture only a sub-group
// (supra, id, stop words) that is the captured group with surrounding
// whitespace and punctuation stripped.
type Token interface {
	Text() string
	token()
}

// PlainWord is ordinary text with no citation significance, one per
// whitespace-delimited word.
type PlainWord struct {
	Data string
}

func (w PlainWord) Text() string { return w.Data }
func (w PlainWord) token()       {}

// CitationToken is a string matching a volume/reporter/page citation
// pattern, e.g. "515 U.S. 200" or, for the short form, "515 U.S., at 241".
type CitationToken struct {
	Data     string
	Volume   string
	Reporter string
	Page     string

	// Candidate editions for the matched reporter string, attached by the
	// extractor's configuration before disambiguation runs.
	ExactEditions     []reporters.Edition
	VariationEditions []reporters.Edition

	// Short marks a short-form match ("515 U.S., at 241").
	Short bool
}

func (t CitationToken) Text() string { return t.Data }
func (t CitationToken) token()       {}

// SectionToken is a word containing a section symbol, e.g. "§922(g)(1)".
type SectionToken struct {
	Data string
}

func (t SectionToken) Text() string { return t.Data }
func (t SectionToken) token()       {}

// SupraToken is a word matching "supra".
type SupraToken struct {
	Data string
}

func (t SupraToken) Text() string { return t.Data }
func (t SupraToken) token()       {}

// IdToken is a word matching "id." or "ibid.".
type IdToken struct {
	Data string
}

func (t IdToken) Text() string { return t.Data }
func (t IdToken) token()       {}

// StopWordToken is a word matching one of the stop words that delimit case
// names, like the "v." between plaintiff and defendant.
type StopWordToken struct {
	Data string

	// Word is the canonical lowercase stop word without punctuation,
	// e.g. "v" for a matched "V.".
	Word string
}

func (t StopWordToken) Text() string { return t.Data }
func (t StopWordToken) token()       {}

// StopWords is the set of words that terminate a case name scan, in the
// order they are tried by the stop-word extractor (longest first so that
// alternation cannot truncate a longer word).
var StopWords = []string{
	"affirmed",
	"remanded",
	"dismissed",
	"granted",
	"denied",
	"citing",
	"aff'd",
	"parte",
	"see",
	"re",
	"v",
}
