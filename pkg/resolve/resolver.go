package resolve

import (
	"regexp"
	"strings"

	"github.com/adelevie/eyecite/pkg/citation"
)

var (
	nonNameChars  = regexp.MustCompile(`[^a-z0-9 ]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// NormalizeName reduces a party-name fragment to a case- and
// punctuation-insensitive form for antecedent matching.
func NormalizeName(name string) string {
	normalized := strings.ToLower(name)
	normalized = nonNameChars.ReplaceAllString(normalized, "")
	normalized = whitespaceRun.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// Link walks the index-ordered citation list once, left to right, and
// links every back-reference citation to its antecedent:
//
//   - an id citation refers to the immediately preceding citation of any
//     kind, purely by position;
//   - a supra citation links to the nearest preceding full citation whose
//     party names match its antecedent guess, and whose volume matches
//     when the supra citation carries one;
//   - a short-form citation is matched the same way, additionally
//     constrained by its own reporter and volume.
//
// Antecedent fields are set to the matched citation's position in the
// list. Back-references with no satisfying antecedent are left unresolved
// and returned; an unlinked citation is a normal outcome, not a failure
// of the run.
func Link(citations []citation.Citation) []citation.Citation {
	var unlinked []citation.Citation

	for i, cit := range citations {
		switch c := cit.(type) {
		case *citation.IdCitation:
			if i > 0 {
				c.Antecedent = i - 1
			} else {
				unlinked = append(unlinked, c)
			}

		case *citation.SupraCitation:
			if j := findAntecedent(citations, i, c.AntecedentGuess, c.Volume, "", ""); j >= 0 {
				c.Antecedent = j
			} else {
				unlinked = append(unlinked, c)
			}

		case *citation.ShortCaseCitation:
			j := findAntecedent(citations, i, c.AntecedentGuess, c.Volume, c.Reporter, c.CanonicalReporter)
			if j >= 0 {
				c.Antecedent = j
			} else {
				unlinked = append(unlinked, c)
			}
		}
	}

	return unlinked
}

// findAntecedent scans backwards from position from for the nearest full
// citation satisfying the back-reference's constraints; ties are broken
// by recency since the scan stops at the first satisfying candidate.
// Returns -1 when none qualifies.
func findAntecedent(citations []citation.Citation, from int, guess, volume, reporter, canonical string) int {
	normalizedGuess := NormalizeName(guess)

	for j := from - 1; j >= 0; j-- {
		full, ok := citations[j].(*citation.FullCaseCitation)
		if !ok {
			continue
		}
		if !nameMatches(normalizedGuess, full) {
			continue
		}
		if volume != "" && volume != full.Volume {
			continue
		}
		if reporter != "" && !reporterMatches(reporter, canonical, full) {
			continue
		}
		return j
	}
	return -1
}

// nameMatches reports whether the normalized antecedent guess refers to
// the candidate's parties. An empty guess matches structurally (the
// back-reference carried no name); a candidate with no harvested party
// names matches vacuously, leaving the volume/reporter constraints to
// decide.
func nameMatches(normalizedGuess string, full *citation.FullCaseCitation) bool {
	if normalizedGuess == "" {
		return true
	}
	defendant := NormalizeName(full.Defendant)
	plaintiff := NormalizeName(full.Plaintiff)
	if defendant == "" && plaintiff == "" {
		return true
	}
	return strings.Contains(defendant, normalizedGuess) ||
		strings.Contains(plaintiff, normalizedGuess)
}

// reporterMatches reports whether a short citation's reporter (as matched
// or as canonicalized) names the same series as the candidate full
// citation's.
func reporterMatches(reporter, canonical string, full *citation.FullCaseCitation) bool {
	candidates := []string{full.Reporter, full.ReporterFound, full.CanonicalReporter}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if candidate == reporter || (canonical != "" && candidate == canonical) {
			return true
		}
	}
	return false
}
