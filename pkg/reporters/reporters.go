// Package reporters models the reporters database: the named case-law
// reporter series and their date-bounded print editions that citation
// extraction resolves against. The database is loaded once at startup and
// treated as read-only for the duration of a run.
package reporters

import (
	"strings"
	"time"
)

// Reporter is a top-level reporter series, like "S.W." or
// "United States Reports".
type Reporter struct {
	// ShortName is the canonical abbreviation, e.g. "U.S.".
	ShortName string

	// Name is the full series name, e.g. "United States Reports".
	Name string

	// CiteType classifies the series, e.g. "federal", "state",
	// "scotus_early", "federal:statute".
	CiteType string

	// IsSCOTUS reports whether this series publishes Supreme Court
	// opinions. Derived from CiteType and Name at construction.
	IsSCOTUS bool
}

// NewReporter builds a Reporter, deriving IsSCOTUS: a federal series whose
// name mentions "supreme", or any series whose cite type mentions "scotus",
// is a Supreme Court series.
func NewReporter(shortName, name, citeType string) Reporter {
	isSCOTUS := (citeType == "federal" &&
		strings.Contains(strings.ToLower(name), "supreme")) ||
		strings.Contains(strings.ToLower(citeType), "scotus")

	return Reporter{
		ShortName: shortName,
		Name:      name,
		CiteType:  citeType,
		IsSCOTUS:  isSCOTUS,
	}
}

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// ToTime converts a Date to a time.Time at midnight UTC.
func (d Date) ToTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Edition is one print series within a reporter, valid over a date range.
// "S.W." and "S.W.2d" are two editions of the same reporter. A nil bound
// is open-ended.
type Edition struct {
	Reporter  Reporter
	ShortName string
	Start     *Date
	End       *Date
}

// IncludesYear reports whether the edition contains cases for the given
// year. Years in the future are never included; an absent start or end
// bound is treated as open.
func (e Edition) IncludesYear(year int) bool {
	return year <= time.Now().Year() &&
		(e.Start == nil || e.Start.Year <= year) &&
		(e.End == nil || e.End.Year >= year)
}
