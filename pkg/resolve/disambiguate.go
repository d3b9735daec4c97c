// Package resolve disambiguates extracted case citations against their
// candidate reporter editions and links back-reference citations to their
// antecedents. Both stages fill in designated fields on the citation
// records and treat "could not resolve" as a normal outcome, never an
// error.
package resolve

import (
	"github.com/adelevie/eyecite/pkg/citation"
	"github.com/adelevie/eyecite/pkg/reporters"
)

// CourtSCOTUS is the canonical designator for the Supreme Court of the
// United States.
const CourtSCOTUS = "scotus"

// EditionOutcome reports what GuessEdition decided.
type EditionOutcome int

const (
	// EditionResolved means exactly one candidate survived and the
	// citation was committed to it.
	EditionResolved EditionOutcome = iota

	// EditionAmbiguous means zero or multiple candidates survived
	// narrowing; the citation is left unresolved. This is a legitimate
	// terminal state.
	EditionAmbiguous

	// EditionNoCandidates means the citation had no candidate editions
	// at all.
	EditionNoCandidates
)

// GuessEdition resolves a citation's reporter string to a concrete
// edition. Exact candidates are preferred over variations; if several
// remain and the citation's year is known, candidates whose date range
// excludes the year are dropped. The citation is committed only when
// exactly one candidate survives: EditionGuess and CanonicalReporter are
// set and Reporter is overwritten with the edition's short name (the
// original string stays available as ReporterFound).
func GuessEdition(c *citation.CaseCitation) EditionOutcome {
	editions := c.ExactEditions
	if len(editions) == 0 {
		editions = c.VariationEditions
	}
	if len(editions) == 0 {
		return EditionNoCandidates
	}

	if len(editions) > 1 && c.Year != 0 {
		var narrowed []reporters.Edition
		for _, edition := range editions {
			if edition.IncludesYear(c.Year) {
				narrowed = append(narrowed, edition)
			}
		}
		editions = narrowed
	}

	if len(editions) != 1 {
		return EditionAmbiguous
	}

	edition := editions[0]
	c.EditionGuess = &edition
	c.CanonicalReporter = edition.Reporter.ShortName
	c.Reporter = edition.ShortName
	return EditionResolved
}

// GuessCourt infers the issuing court from the citation's full candidate
// set: if any candidate edition belongs to a Supreme Court reporter, the
// court is the Supreme Court. A court already set is never overwritten,
// and the inference does not depend on GuessEdition having succeeded.
func GuessCourt(c *citation.CaseCitation) {
	if c.Court != "" {
		return
	}
	for _, edition := range c.AllEditions() {
		if edition.Reporter.IsSCOTUS {
			c.Court = CourtSCOTUS
			return
		}
	}
}
