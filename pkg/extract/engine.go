// Package extract runs the full citation pipeline over a document: it
// tokenizes the text against a reporters database, builds citation records
// from the token stream, harvests case names and years from the
// surrounding text, disambiguates reporter editions, and links
// back-references to their antecedents.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/adelevie/eyecite/pkg/citation"
	"github.com/adelevie/eyecite/pkg/reporters"
	"github.com/adelevie/eyecite/pkg/resolve"
	"github.com/adelevie/eyecite/pkg/tokenize"
)

const (
	// backwardSeek bounds the scan for case names behind a citation.
	backwardSeek = 28

	// forwardSeek bounds the scan for the year parenthetical after a
	// citation.
	forwardSeek = 18

	// maxIdAfterTokens bounds how many words an id citation retains.
	maxIdAfterTokens = 5
)

// parenPattern matches a trailing parenthetical like "(1995)" or
// "(9th Cir. 1995)", optionally followed by closing punctuation.
var parenPattern = regexp.MustCompile(`^\((?:(.+)\s+)?(\d{4})\)[.,;]?$`)

// idPagePattern recognizes an "at <page>" run after an id token.
var idPagePattern = regexp.MustCompile(`(?i)^at\s+\d+`)

var digitsPattern = regexp.MustCompile(`^\d+$`)

// Engine extracts and resolves citations from documents. An engine is
// built once per reporters database; each Extract call is an independent
// single-threaded run with no state shared between documents, so one
// engine may serve concurrent callers.
type Engine struct {
	registry  *reporters.Registry
	tokenizer *tokenize.Tokenizer
}

// NewEngine builds the citation grammar for the registry and returns an
// engine. A grammar pattern that fails to compile is reported here,
// before any document is processed.
func NewEngine(registry *reporters.Registry) (*Engine, error) {
	extractors, err := tokenize.BuildExtractors(registry)
	if err != nil {
		return nil, fmt.Errorf("building citation grammar: %w", err)
	}
	return &Engine{
		registry:  registry,
		tokenizer: tokenize.NewTokenizer(extractors...),
	}, nil
}

// Result is one document's extraction output.
type Result struct {
	// Tokens is the document's full token stream; citation indexes refer
	// into it.
	Tokens []tokenize.Token

	// Citations are all extracted citations in document order, enriched
	// by disambiguation and antecedent linking where possible.
	Citations []citation.Citation

	// Unlinked lists the back-reference citations for which no
	// antecedent satisfied the match. They also appear in Citations.
	Unlinked []citation.Citation
}

// Extract runs the pipeline over a document.
func (e *Engine) Extract(text string) *Result {
	tokens := e.tokenizer.Tokenize(text)

	var citations []citation.Citation
	for i, tok := range tokens {
		switch t := tok.(type) {
		case tokenize.CitationToken:
			if t.Short {
				citations = append(citations, buildShort(tokens, t, i))
			} else {
				citations = append(citations, buildFull(tokens, t, i))
			}
		case tokenize.SupraToken:
			citations = append(citations, buildSupra(tokens, t, i))
		case tokenize.IdToken:
			citations = append(citations, buildId(tokens, t, i))
		case tokenize.SectionToken:
			citations = append(citations, citation.NewNonopinionCitation(t, i))
		}
	}

	for _, cit := range citations {
		switch c := cit.(type) {
		case *citation.FullCaseCitation:
			resolve.GuessEdition(&c.CaseCitation)
			resolve.GuessCourt(&c.CaseCitation)
		case *citation.ShortCaseCitation:
			resolve.GuessEdition(&c.CaseCitation)
			resolve.GuessCourt(&c.CaseCitation)
		}
	}

	unlinked := resolve.Link(citations)

	return &Result{
		Tokens:    tokens,
		Citations: citations,
		Unlinked:  unlinked,
	}
}

// Verify re-applies every citation's reconstructed pattern to the source
// text and reports the first citation whose pattern fails to relocate its
// own span. By contract this cannot happen; a failure here is an
// internal-consistency error and is surfaced rather than ignored.
func (r *Result) Verify(text string) error {
	for _, cit := range r.Citations {
		re, err := regexp.Compile(cit.AsRegex())
		if err != nil {
			return fmt.Errorf("citation %q: reconstructed pattern does not compile: %w",
				cit.MatchedText(), err)
		}
		found := re.FindString(text)
		if found == "" || !strings.Contains(found, cit.MatchedText()) {
			return fmt.Errorf("citation %q: reconstructed pattern failed to relocate its span",
				cit.MatchedText())
		}
	}
	return nil
}

// buildFull creates a full case citation and harvests the case name from
// the text before it and the year/court parenthetical after it.
func buildFull(tokens []tokenize.Token, t tokenize.CitationToken, index int) *citation.FullCaseCitation {
	c := citation.NewFullCaseCitation(t, index)
	addCaseNames(&c.CaseCitation, tokens, index)
	addPostCitation(&c.CaseCitation, tokens, index)
	return c
}

// addCaseNames scans backwards from the citation for a "v." stop word:
// the words between it and the citation are the defendant, the word run
// before it the plaintiff. Any other stop word, a clause boundary, or the
// seek limit ends the scan with no names.
func addCaseNames(c *citation.CaseCitation, tokens []tokenize.Token, index int) {
	nameStart := -1
	lower := max(index-backwardSeek, 0)

scan:
	for j := index - 1; j >= lower; j-- {
		switch w := tokens[j].(type) {
		case tokenize.StopWordToken:
			if w.Word == "v" {
				c.Plaintiff = plaintiffBefore(tokens, j, lower)
			}
			nameStart = j + 1
			break scan
		case tokenize.PlainWord:
			if strings.HasSuffix(w.Data, ";") {
				break scan
			}
		default:
			break scan
		}
	}

	if nameStart < 0 || nameStart >= index {
		return
	}
	words := make([]string, 0, index-nameStart)
	for j := nameStart; j < index; j++ {
		words = append(words, tokens[j].Text())
	}
	c.Defendant = strings.TrimSuffix(strings.Join(words, " "), ",")
}

// plaintiffBefore collects the word run before a "v." stop word, e.g.
// "Adarand Constructors, Inc." in "Adarand Constructors, Inc. v. Pena".
// The word adjacent to "v." always belongs to the name; words further back
// belong until the run hits a typed token, a sentence-final word, a
// parenthetical, or a lowercase word.
func plaintiffBefore(tokens []tokenize.Token, vIndex, lower int) string {
	start := -1
	for j := vIndex - 1; j >= lower; j-- {
		w, ok := tokens[j].(tokenize.PlainWord)
		if !ok {
			break
		}
		if j < vIndex-1 && isNameBoundary(w.Data) {
			break
		}
		start = j
	}
	if start < 0 {
		return ""
	}

	words := make([]string, 0, vIndex-start)
	for j := start; j < vIndex; j++ {
		words = append(words, tokens[j].Text())
	}
	return strings.TrimSuffix(strings.Join(words, " "), ",")
}

// isNameBoundary reports whether a word ends the backwards case-name run:
// sentence-final punctuation, anything parenthesized, or an uncapitalized
// word like the "and" joining two citations.
func isNameBoundary(word string) bool {
	if strings.HasSuffix(word, ".") || strings.HasSuffix(word, ";") {
		return true
	}
	if strings.ContainsAny(word, "()") {
		return true
	}
	r := rune(word[0])
	return r >= 'a' && r <= 'z'
}

// addPostCitation looks ahead of the citation for a parenthetical holding
// the year and, optionally, the court, e.g. "(9th Cir. 1995)". Words
// between the citation and the parenthetical (typically a pincite) become
// Extra.
func addPostCitation(c *citation.CaseCitation, tokens []tokenize.Token, index int) {
	limit := min(index+forwardSeek, len(tokens))

	parenStart, parenEnd := -1, -1
	for j := index + 1; j < limit; j++ {
		w, ok := tokens[j].(tokenize.PlainWord)
		if !ok {
			break
		}
		if strings.HasPrefix(w.Data, "(") {
			parenStart = j
			for k := j; k < limit; k++ {
				pw, ok := tokens[k].(tokenize.PlainWord)
				if !ok {
					break
				}
				if strings.Contains(pw.Data, ")") {
					parenEnd = k
					break
				}
			}
			break
		}
	}
	if parenStart < 0 || parenEnd < 0 {
		return
	}

	parenWords := make([]string, 0, parenEnd-parenStart+1)
	for j := parenStart; j <= parenEnd; j++ {
		parenWords = append(parenWords, tokens[j].Text())
	}
	m := parenPattern.FindStringSubmatch(strings.Join(parenWords, " "))
	if m == nil {
		return
	}

	if year, err := strconv.Atoi(m[2]); err == nil {
		c.Year = year
	}
	c.Court = strings.TrimSpace(m[1])

	if parenStart > index+1 {
		extras := make([]string, 0, parenStart-index-1)
		for j := index + 1; j < parenStart; j++ {
			extras = append(extras, tokens[j].Text())
		}
		c.Extra = strings.Trim(strings.Join(extras, " "), ", ")
	}
}

// buildShort creates a short-form citation; the word immediately before
// the citation token, stripped of its trailing comma, is the antecedent
// guess.
func buildShort(tokens []tokenize.Token, t tokenize.CitationToken, index int) *citation.ShortCaseCitation {
	antecedent := ""
	if index > 0 {
		if w, ok := tokens[index-1].(tokenize.PlainWord); ok {
			antecedent = strings.TrimSuffix(w.Data, ",")
		}
	}
	return citation.NewShortCaseCitation(t, index, antecedent)
}

// buildSupra creates a supra citation. The preceding word is the
// antecedent guess unless it is a bare number, in which case it is the
// volume and the word before it the antecedent. A following "at <page>"
// run sets the page.
func buildSupra(tokens []tokenize.Token, t tokenize.SupraToken, index int) *citation.SupraCitation {
	antecedent, volume := "", ""
	if index > 0 {
		if w, ok := tokens[index-1].(tokenize.PlainWord); ok {
			word := strings.TrimSuffix(w.Data, ",")
			if digitsPattern.MatchString(word) {
				volume = word
				if index > 1 {
					if prev, ok := tokens[index-2].(tokenize.PlainWord); ok {
						antecedent = strings.TrimSuffix(prev.Data, ",")
					}
				}
			} else {
				antecedent = word
			}
		}
	}

	page := ""
	if index+2 < len(tokens) {
		at, okAt := tokens[index+1].(tokenize.PlainWord)
		pageWord, okPage := tokens[index+2].(tokenize.PlainWord)
		if okAt && okPage && strings.EqualFold(strings.TrimSuffix(at.Data, ","), "at") {
			candidate := strings.TrimRight(pageWord.Data, ".,;)")
			if digitsPattern.MatchString(candidate) {
				page = candidate
			}
		}
	}

	return citation.NewSupraCitation(t, index, antecedent, page, volume)
}

// buildId creates an id citation, retaining the plain words following the
// id token until a typed token, a clause boundary, or the retention limit.
func buildId(tokens []tokenize.Token, t tokenize.IdToken, index int) *citation.IdCitation {
	var after []tokenize.Token
	for j := index + 1; j < len(tokens) && len(after) < maxIdAfterTokens; j++ {
		w, ok := tokens[j].(tokenize.PlainWord)
		if !ok {
			break
		}
		after = append(after, w)
		if strings.HasSuffix(w.Data, ".") ||
			strings.HasSuffix(w.Data, ";") ||
			strings.HasSuffix(w.Data, ")") {
			break
		}
	}

	words := make([]string, len(after))
	for i, tok := range after {
		words[i] = tok.Text()
	}
	hasPage := idPagePattern.MatchString(strings.Join(words, " "))

	return citation.NewIdCitation(t, index, after, hasPage)
}
