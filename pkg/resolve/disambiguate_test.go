package resolve

import (
	"testing"

	"github.com/adelevie/eyecite/pkg/citation"
	"github.com/adelevie/eyecite/pkg/reporters"
)

func edition(t *testing.T, reporterShort, editionShort, citeType string, start, end int) reporters.Edition {
	t.Helper()
	name := reporterShort + " reporter"
	if citeType == "federal" {
		name = "United States Supreme Court Reports"
	}
	rep := reporters.NewReporter(reporterShort, name, citeType)
	e := reporters.Edition{Reporter: rep, ShortName: editionShort}
	if start != 0 {
		e.Start = &reporters.Date{Year: start, Month: 1, Day: 1}
	}
	if end != 0 {
		e.End = &reporters.Date{Year: end, Month: 12, Day: 31}
	}
	return e
}

func TestGuessEditionSingleCandidate(t *testing.T) {
	cite := &citation.CaseCitation{
		Reporter:      "U.S.",
		ReporterFound: "U.S.",
		ExactEditions: []reporters.Edition{edition(t, "U.S.", "U.S.", "federal", 1790, 0)},
	}

	if got := GuessEdition(cite); got != EditionResolved {
		t.Fatalf("GuessEdition = %v, want EditionResolved", got)
	}
	if cite.EditionGuess == nil {
		t.Fatal("EditionGuess not set")
	}
	if cite.CanonicalReporter != "U.S." {
		t.Errorf("CanonicalReporter = %q, want %q", cite.CanonicalReporter, "U.S.")
	}
}

func TestGuessEditionRewritesVariation(t *testing.T) {
	cite := &citation.CaseCitation{
		Reporter:          "U. S.",
		ReporterFound:     "U. S.",
		VariationEditions: []reporters.Edition{edition(t, "U.S.", "U.S.", "federal", 1790, 0)},
	}

	if got := GuessEdition(cite); got != EditionResolved {
		t.Fatalf("GuessEdition = %v, want EditionResolved", got)
	}
	if cite.Reporter != "U.S." {
		t.Errorf("Reporter = %q, want rewritten to %q", cite.Reporter, "U.S.")
	}
	if cite.ReporterFound != "U. S." {
		t.Errorf("ReporterFound = %q, want the original spelling preserved", cite.ReporterFound)
	}
}

func TestGuessEditionYearNarrowing(t *testing.T) {
	old := edition(t, "P.", "P.", "state", 1883, 1931)
	newer := edition(t, "P.", "P.2d", "state", 1931, 2000)

	cases := []struct {
		name        string
		year        int
		wantOutcome EditionOutcome
		wantEdition string
	}{
		{name: "narrows_to_one", year: 1940, wantOutcome: EditionResolved, wantEdition: "P.2d"},
		{name: "narrows_to_other", year: 1900, wantOutcome: EditionResolved, wantEdition: "P."},
		{name: "no_year_stays_ambiguous", year: 0, wantOutcome: EditionAmbiguous},
		{name: "year_outside_all_ranges", year: 1850, wantOutcome: EditionAmbiguous},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cite := &citation.CaseCitation{
				Reporter:      "P.",
				ReporterFound: "P.",
				Year:          tc.year,
				ExactEditions: []reporters.Edition{old, newer},
			}
			if got := GuessEdition(cite); got != tc.wantOutcome {
				t.Fatalf("GuessEdition = %v, want %v", got, tc.wantOutcome)
			}
			if tc.wantOutcome != EditionResolved {
				if cite.EditionGuess != nil {
					t.Error("EditionGuess set on an ambiguous citation")
				}
				return
			}
			if cite.EditionGuess.ShortName != tc.wantEdition {
				t.Errorf("EditionGuess = %q, want %q", cite.EditionGuess.ShortName, tc.wantEdition)
			}
		})
	}
}

func TestGuessEditionNoCandidates(t *testing.T) {
	cite := &citation.CaseCitation{Reporter: "X.Y.Z.", ReporterFound: "X.Y.Z."}
	if got := GuessEdition(cite); got != EditionNoCandidates {
		t.Errorf("GuessEdition = %v, want EditionNoCandidates", got)
	}
}

func TestGuessEditionPrefersExact(t *testing.T) {
	cite := &citation.CaseCitation{
		Reporter:          "U.S.",
		ReporterFound:     "U.S.",
		ExactEditions:     []reporters.Edition{edition(t, "U.S.", "U.S.", "federal", 1790, 0)},
		VariationEditions: []reporters.Edition{edition(t, "P.", "P.", "state", 0, 0)},
	}

	if got := GuessEdition(cite); got != EditionResolved {
		t.Fatalf("GuessEdition = %v, want EditionResolved", got)
	}
	if cite.CanonicalReporter != "U.S." {
		t.Errorf("CanonicalReporter = %q, want the exact candidate", cite.CanonicalReporter)
	}
}

func TestGuessCourt(t *testing.T) {
	scotus := edition(t, "U.S.", "U.S.", "federal", 0, 0)
	state := edition(t, "P.", "P.", "state", 0, 0)

	t.Run("scotus_reporter", func(t *testing.T) {
		cite := &citation.CaseCitation{ExactEditions: []reporters.Edition{scotus}}
		GuessCourt(cite)
		if cite.Court != CourtSCOTUS {
			t.Errorf("Court = %q, want %q", cite.Court, CourtSCOTUS)
		}
	})

	t.Run("variation_counts", func(t *testing.T) {
		cite := &citation.CaseCitation{VariationEditions: []reporters.Edition{scotus}}
		GuessCourt(cite)
		if cite.Court != CourtSCOTUS {
			t.Errorf("Court = %q, want %q", cite.Court, CourtSCOTUS)
		}
	})

	t.Run("non_scotus", func(t *testing.T) {
		cite := &citation.CaseCitation{ExactEditions: []reporters.Edition{state}}
		GuessCourt(cite)
		if cite.Court != "" {
			t.Errorf("Court = %q, want unset", cite.Court)
		}
	})

	t.Run("never_overwrites", func(t *testing.T) {
		cite := &citation.CaseCitation{
			Court:         "ca9",
			ExactEditions: []reporters.Edition{scotus},
		}
		GuessCourt(cite)
		if cite.Court != "ca9" {
			t.Errorf("Court = %q, want the existing value kept", cite.Court)
		}
	})
}
