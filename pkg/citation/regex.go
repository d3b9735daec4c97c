package citation

import (
	"fmt"
	"regexp"
	"strings"
)

// fillerPattern matches the whitespace, inline markup and commas the id
// extractor consumed but did not retain between the id token and its
// trailing context: any run of whitespace, HTML tags, or commas, captured
// greedily as one group.
const fillerPattern = `((?:\s|</?\w+>|,)*)`

// AsRegex relocates a full citation: volume, whitespace, the reporter as
// originally matched, whitespace, page.
func (c *FullCaseCitation) AsRegex() string {
	return fmt.Sprintf(`%s(\s+)%s(\s+)%s(\s?)`,
		c.Volume,
		regexp.QuoteMeta(c.ReporterFound),
		regexp.QuoteMeta(c.Page),
	)
}

// antecedentPrefix builds the pattern for an antecedent guess. The guess
// is harvested without its trailing comma, so the pattern has to accept
// one in the source text. An empty guess contributes nothing.
func antecedentPrefix(guess string) string {
	if guess == "" {
		return ""
	}
	return regexp.QuoteMeta(guess) + `(,?)(\s+)`
}

// AsRegex relocates a short-form citation, including the antecedent run
// and the "at page" tail.
func (c *ShortCaseCitation) AsRegex() string {
	return fmt.Sprintf(`%s%s(\s+)%s(,?)(\s+)at(\s+)%s(\s?)`,
		antecedentPrefix(c.AntecedentGuess),
		c.Volume,
		regexp.QuoteMeta(c.ReporterFound),
		regexp.QuoteMeta(c.Page),
	)
}

// AsRegex relocates a supra citation: antecedent, optional volume, the
// "supra" keyword, and an "at page" suffix when a page was present.
func (c *SupraCitation) AsRegex() string {
	pattern := antecedentPrefix(c.AntecedentGuess)
	if c.Volume != "" {
		pattern += c.Volume + `(\s+)`
	}
	pattern += "supra"
	if c.Page != "" {
		pattern += fmt.Sprintf(`(,?)(\s+)at(\s+)%s`, regexp.QuoteMeta(c.Page))
	}
	return pattern + `(\s?)`
}

// AsRegex relocates an id citation by matching the id token itself plus
// the retained after-tokens, joined by filler groups, since the original
// match consumed but did not keep the separators between them.
func (c *IdCitation) AsRegex() string {
	escaped := make([]string, len(c.AfterTokens))
	for i, t := range c.AfterTokens {
		escaped[i] = regexp.QuoteMeta(t.Text())
	}

	pattern := fillerPattern
	pattern += regexp.QuoteMeta(c.MatchedText())
	pattern += fillerPattern
	pattern += strings.Join(escaped, fillerPattern)
	pattern += `(\s?)`
	return pattern
}

// AsRegex relocates a non-opinion citation by its literal matched text.
func (c *NonopinionCitation) AsRegex() string {
	return regexp.QuoteMeta(c.MatchedText()) + `(\s?)`
}
