package citation

import (
	"regexp"
	"strings"
	"testing"

	"github.com/adelevie/eyecite/pkg/tokenize"
)

// relocate compiles the citation's pattern and finds it in text, failing the
// test when the pattern does not compile or does not land on the citation.
func relocate(t *testing.T, cite Citation, text string) string {
	t.Helper()
	re, err := regexp.Compile(cite.AsRegex())
	if err != nil {
		t.Fatalf("AsRegex %q did not compile: %v", cite.AsRegex(), err)
	}
	found := re.FindString(text)
	if found == "" {
		t.Fatalf("Pattern %q found nothing in %q", cite.AsRegex(), text)
	}
	return found
}

func TestFullAsRegex(t *testing.T) {
	text := "See Adarand v. Pena, 515 U.S. 200, 240 (1995)."
	cite := NewFullCaseCitation(fullToken(t), 2)

	found := relocate(t, cite, text)
	if !strings.Contains(found, "515 U.S. 200") {
		t.Errorf("Relocated %q, want it to cover the matched text", found)
	}
}

func TestFullAsRegexSurvivesReporterRewrite(t *testing.T) {
	text := "See 515 U. S. 200 (1995)."
	token := fullToken(t)
	token.Data = "515 U. S. 200"
	token.Reporter = "U. S."
	cite := NewFullCaseCitation(token, 0)

	// Disambiguation rewrites Reporter to the resolved edition name; the
	// pattern must keep using the string found in the document.
	cite.Reporter = "U.S."

	found := relocate(t, cite, text)
	if !strings.Contains(found, "515 U. S. 200") {
		t.Errorf("Relocated %q, want the original spelling", found)
	}
}

func TestShortAsRegex(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{name: "with_comma", text: "later, Adarand, 515 U.S., at 241, the Court"},
		{name: "without_comma", text: "later, Adarand, 515 U.S. at 241, the Court"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// The harvested guess carries no trailing comma; the pattern
			// has to accept the one in the source text.
			token := fullToken(t)
			token.Page = "241"
			token.Short = true
			cite := NewShortCaseCitation(token, 0, "Adarand")
			cite.Page = "241"

			found := relocate(t, cite, tc.text)
			if !strings.Contains(found, "at 241") {
				t.Errorf("Relocated %q, want the page tail", found)
			}
		})
	}
}

func TestSupraAsRegex(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		volume string
		page   string
	}{
		{name: "name_only", text: "Adarand, supra, the Court held", volume: "", page: ""},
		{name: "with_page", text: "Adarand, supra, at 240, the Court", volume: "", page: "240"},
		{name: "page_no_comma", text: "Adarand supra at 240", volume: "", page: "240"},
		{name: "with_volume", text: "Adarand, 515 supra, at 240", volume: "515", page: "240"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cite := NewSupraCitation(tokenize.SupraToken{Data: "supra"}, 0, "Adarand", tc.page, tc.volume)
			found := relocate(t, cite, tc.text)
			if !strings.HasPrefix(found, "Adarand") {
				t.Errorf("Relocated %q, want it anchored on the antecedent", found)
			}
		})
	}
}

func TestSupraAsRegexNoAntecedent(t *testing.T) {
	cite := NewSupraCitation(tokenize.SupraToken{Data: "supra"}, 0, "", "240", "")
	found := relocate(t, cite, "see supra, at 240")
	if !strings.HasPrefix(found, "supra") {
		t.Errorf("Relocated %q, want the bare supra span", found)
	}
}

func TestIdAsRegex(t *testing.T) {
	text := "was denied. Id., at 240, and the rest"
	cite := NewIdCitation(tokenize.IdToken{Data: "Id.,"}, 0,
		[]tokenize.Token{tokenize.PlainWord{Data: "at"}, tokenize.PlainWord{Data: "240,"}}, true)

	found := relocate(t, cite, text)
	if !strings.Contains(found, "Id., at 240,") {
		t.Errorf("Relocated %q, want the id span with its after tokens", found)
	}
}

func TestIdAsRegexSpansMarkup(t *testing.T) {
	text := "was denied. <em>Ibid.</em> at 240"
	cite := NewIdCitation(tokenize.IdToken{Data: "Ibid."}, 0,
		[]tokenize.Token{tokenize.PlainWord{Data: "at"}, tokenize.PlainWord{Data: "240"}}, true)

	found := relocate(t, cite, text)
	if !strings.Contains(found, "Ibid.") || !strings.Contains(found, "240") {
		t.Errorf("Relocated %q, want it to span the markup", found)
	}
}

func TestNonopinionAsRegex(t *testing.T) {
	text := "under 18 U.S.C. §922(g)(1) the"
	cite := NewNonopinionCitation(tokenize.SectionToken{Data: "§922(g)(1)"}, 0)

	found := relocate(t, cite, text)
	if !strings.HasPrefix(found, "§922(g)(1)") {
		t.Errorf("Relocated %q, want the literal section text", found)
	}
}
