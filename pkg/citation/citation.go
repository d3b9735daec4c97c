// Package citation defines the citation records produced by extraction:
// full case citations, the short-form/"supra"/"id." back-references that
// point at them, and non-opinion references such as statutes.
//
// The set of variants is closed; consumers dispatch with a type switch.
// Citations are created with partial information during extraction and
// enriched in place by disambiguation (Reporter, CanonicalReporter,
// EditionGuess, Court) and resolution (Antecedent); no other fields are
// mutated after construction.
package citation

import (
	"fmt"
	"strings"

	"github.com/adelevie/eyecite/pkg/reporters"
	"github.com/adelevie/eyecite/pkg/tokenize"
)

// Citation is any citation found in a document.
type Citation interface {
	// Token returns the token the citation was extracted from. The
	// reference is non-owning; tokens are immutable.
	Token() tokenize.Token

	// Index is the token's position in the document token stream, and the
	// identity other citations use to refer to this one.
	Index() int

	// MatchedText is the literal text that identified the citation, such
	// as "1 U.S. 1" or "id.".
	MatchedText() string

	// AsRegex synthesizes a pattern that relocates the citation's span in
	// the original text.
	AsRegex() string

	citation()
}

// Base carries the fields shared by every citation variant.
type Base struct {
	SourceToken tokenize.Token
	StreamIndex int
}

func (b *Base) Token() tokenize.Token { return b.SourceToken }
func (b *Base) Index() int            { return b.StreamIndex }
func (b *Base) MatchedText() string   { return b.SourceToken.Text() }
func (b *Base) citation()             {}

// CaseCitation carries the fields shared by full and short-form case
// citations.
type CaseCitation struct {
	Base

	// Reporter starts as the raw matched abbreviation and is rewritten to
	// the resolved edition's short name by disambiguation.
	Reporter string
	Volume   string
	Page     string

	// CanonicalReporter is set by disambiguation; for a citation to
	// "F.2d" the canonical reporter is "F.".
	CanonicalReporter string

	// Supplementary data harvested from the surrounding text, where found.
	Extra     string
	Defendant string
	Plaintiff string
	Court     string
	Year      int // 0 = unknown

	// ReporterFound is the original matched string, preserved because
	// Reporter may be overwritten.
	ReporterFound string

	// Candidate editions for the matched reporter string, and the single
	// edition disambiguation committed to, if any.
	ExactEditions     []reporters.Edition
	VariationEditions []reporters.Edition
	EditionGuess      *reporters.Edition
}

// AllEditions returns the full candidate set: exact editions first, then
// variations.
func (c *CaseCitation) AllEditions() []reporters.Edition {
	all := make([]reporters.Edition, 0, len(c.ExactEditions)+len(c.VariationEditions))
	all = append(all, c.ExactEditions...)
	all = append(all, c.VariationEditions...)
	return all
}

// BaseCitation returns the citation's core "volume reporter page" form.
func (c *CaseCitation) BaseCitation() string {
	return fmt.Sprintf("%s %s %s", c.Volume, c.Reporter, c.Page)
}

// newCaseCitation copies the shared fields out of a citation token.
func newCaseCitation(token tokenize.CitationToken, index int) CaseCitation {
	return CaseCitation{
		Base:              Base{SourceToken: token, StreamIndex: index},
		Reporter:          token.Reporter,
		Volume:            token.Volume,
		Page:              token.Page,
		ReporterFound:     token.Reporter,
		ExactEditions:     token.ExactEditions,
		VariationEditions: token.VariationEditions,
	}
}

// FullCaseCitation is a standard, fully specified citation: the kind that
// marks the first time an authority is cited.
//
// Example: Adarand Constructors, Inc. v. Peña, 515 U.S. 200, 240
type FullCaseCitation struct {
	CaseCitation
}

// NewFullCaseCitation builds a full citation from its token.
func NewFullCaseCitation(token tokenize.CitationToken, index int) *FullCaseCitation {
	return &FullCaseCitation{CaseCitation: newCaseCitation(token, index)}
}

func (c *FullCaseCitation) String() string {
	s := c.BaseCitation()
	if c.Defendant != "" {
		s = c.Defendant + " " + s
		if c.Plaintiff != "" {
			s = c.Plaintiff + " v. " + s
		}
	}
	if c.Extra != "" {
		s += " " + c.Extra
	}
	switch {
	case c.Court != "" && c.Year != 0:
		s += fmt.Sprintf(" (%s %d)", c.Court, c.Year)
	case c.Year != 0:
		s += fmt.Sprintf(" (%d)", c.Year)
	case c.Court != "":
		s += fmt.Sprintf(" (%s)", c.Court)
	}
	return s
}

// ShortCaseCitation is a short-form repeat citation: it lacks a full case
// name and usually carries a different page than the original.
//
// Example: Adarand, 515 U.S., at 241
type ShortCaseCitation struct {
	CaseCitation

	// AntecedentGuess is the name fragment presumed to refer back to an
	// earlier full citation.
	AntecedentGuess string

	// Antecedent is the index of the linked full citation in the
	// citation list, or -1 when unresolved.
	Antecedent int
}

// NewShortCaseCitation builds a short-form citation from its token, with
// the antecedent link unresolved.
func NewShortCaseCitation(token tokenize.CitationToken, index int, antecedentGuess string) *ShortCaseCitation {
	return &ShortCaseCitation{
		CaseCitation:    newCaseCitation(token, index),
		AntecedentGuess: antecedentGuess,
		Antecedent:      -1,
	}
}

func (c *ShortCaseCitation) String() string {
	return fmt.Sprintf("%s, %s %s, at %s", c.AntecedentGuess, c.Volume, c.Reporter, c.Page)
}

// SupraCitation is a back-reference using "supra" instead of repeating the
// reporter and volume; it only has a guess at what its antecedent is.
//
// Example: Adarand, supra, at 240
type SupraCitation struct {
	Base

	AntecedentGuess string
	Page            string
	Volume          string

	// Antecedent is the index of the linked full citation, or -1.
	Antecedent int
}

// NewSupraCitation builds a supra citation with the antecedent unresolved.
func NewSupraCitation(token tokenize.SupraToken, index int, antecedentGuess, page, volume string) *SupraCitation {
	return &SupraCitation{
		Base:            Base{SourceToken: token, StreamIndex: index},
		AntecedentGuess: antecedentGuess,
		Page:            page,
		Volume:          volume,
		Antecedent:      -1,
	}
}

func (c *SupraCitation) String() string {
	return fmt.Sprintf("%s supra, at %s", c.AntecedentGuess, c.Page)
}

// IdCitation is a back-reference to the immediately preceding citation.
// It knows nothing of reporter, volume or page; the tokens following the
// "id." token are retained so the citation's span can be relocated.
//
// Example: "... foo bar," id., at 240
type IdCitation struct {
	Base

	// AfterTokens are the tokens immediately following the id token, up
	// to a page reference or the end of the clause.
	AfterTokens []tokenize.Token

	// HasPage reports whether AfterTokens encode a page reference.
	HasPage bool

	// Antecedent is the index of the immediately preceding citation of
	// any kind, or -1.
	Antecedent int
}

// NewIdCitation builds an id citation with the antecedent unresolved. The
// citation takes ownership of afterTokens.
func NewIdCitation(token tokenize.IdToken, index int, afterTokens []tokenize.Token, hasPage bool) *IdCitation {
	return &IdCitation{
		Base:        Base{SourceToken: token, StreamIndex: index},
		AfterTokens: afterTokens,
		HasPage:     hasPage,
		Antecedent:  -1,
	}
}

func (c *IdCitation) String() string {
	words := make([]string, len(c.AfterTokens))
	for i, t := range c.AfterTokens {
		words[i] = t.Text()
	}
	return fmt.Sprintf("%s %s", c.MatchedText(), strings.Join(words, " "))
}

// NonopinionCitation marks a reference that is known not to be case law: a
// statute, the U.S. Code, the Constitution, and so on.
//
// Example: 18 U.S.C. §922(g)(1)
type NonopinionCitation struct {
	Base
}

// NewNonopinionCitation builds a non-opinion citation from its token.
func NewNonopinionCitation(token tokenize.Token, index int) *NonopinionCitation {
	return &NonopinionCitation{Base: Base{SourceToken: token, StreamIndex: index}}
}
