package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/kmonkmol38/DashNew1/internal/domain"
)

// MonthYear is the canonical resolved date of a row: a three-letter
// uppercase month abbreviation and a four-digit year kept as a string, so
// all date comparisons downstream are string comparisons.
type MonthYear struct {
	Month string `json:"month"`
	Year  string `json:"year"`
}

var monthAbbrevs = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// MonthOptions returns the twelve canonical month abbreviations in calendar
// order.
func MonthOptions() []string {
	return monthAbbrevs[:]
}

// dateStrategy declares, per sheet kind, where a row's date may live and in
// which priority order the candidates are tried.
type dateStrategy struct {
	primaryDate   string
	monthColumn   string
	yearColumn    string
	alternateDate string
}

// Source sheets are inconsistent: some carry a single date cell, some carry
// separate text-month and numeral-year columns, and the same sheet kind may
// use either depending on which section of the workbook it came from. A
// fixed priority order with graceful fallback lets one codepath handle all
// sheet kinds.
var dateStrategies = map[domain.SheetKind]dateStrategy{
	domain.SheetFleetManagement: {primaryDate: "Date", monthColumn: "Month", yearColumn: "Year", alternateDate: "Invoice Date"},
	domain.SheetDriverOperator:  {primaryDate: "Date", monthColumn: "Month", yearColumn: "Year", alternateDate: "Billing Date"},
	domain.SheetJobCard:         {primaryDate: "Job Card Date", monthColumn: "Month", yearColumn: "Year", alternateDate: "Date"},
	domain.SheetInternalFleet:   {primaryDate: "Date", monthColumn: "Month", yearColumn: "Year", alternateDate: "Purchase Date"},
	domain.SheetExternalFleet:   {primaryDate: "Date", monthColumn: "Month", yearColumn: "Year", alternateDate: "Hire Date"},
}

// sheetDateColumns returns the date-valued columns the normalizer coerces
// for a sheet kind.
func sheetDateColumns(kind domain.SheetKind) []string {
	s, ok := dateStrategies[kind]
	if !ok {
		return nil
	}
	return []string{s.primaryDate, s.alternateDate}
}

// ResolveDate derives the canonical (month, year) pair for a row. Strategies
// are tried in priority order, first success wins:
//
//  1. the sheet's primary date column, when it holds a valid date;
//  2. separate month-text and year-numeral columns, both required;
//  3. the sheet's alternate date column.
//
// It returns ok=false when no strategy succeeds; such a row is never matched
// by a specific month/year filter but still exists under "All". Resolution
// is a pure function of the row; nothing is cached.
func ResolveDate(kind domain.SheetKind, r domain.Row) (MonthYear, bool) {
	strat, ok := dateStrategies[kind]
	if !ok {
		return MonthYear{}, false
	}

	if t, ok := cellTime(r[strat.primaryDate]); ok {
		return fromTime(t), true
	}

	if my, ok := fromColumns(r.String(strat.monthColumn), r.String(strat.yearColumn)); ok {
		return my, true
	}

	if t, ok := cellTime(r[strat.alternateDate]); ok {
		return fromTime(t), true
	}

	return MonthYear{}, false
}

func fromTime(t time.Time) MonthYear {
	t = t.UTC()
	return MonthYear{
		Month: monthAbbrevs[int(t.Month())-1],
		Year:  strconv.Itoa(t.Year()),
	}
}

func fromColumns(monthText, yearText string) (MonthYear, bool) {
	if monthText == "" || yearText == "" {
		return MonthYear{}, false
	}
	month, ok := CanonicalMonth(monthText)
	if !ok {
		return MonthYear{}, false
	}
	year, ok := canonicalYear(yearText)
	if !ok {
		return MonthYear{}, false
	}
	return MonthYear{Month: month, Year: year}, true
}

// CanonicalMonth matches a month name case-insensitively by its first three
// letters against the twelve abbreviations, so "January", "jan" and "JAN"
// all canonicalize to "JAN".
func CanonicalMonth(v string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(v))
	if len(s) < 3 {
		return "", false
	}
	prefix := s[:3]
	for _, m := range monthAbbrevs {
		if m == prefix {
			return m, true
		}
	}
	return "", false
}

func canonicalYear(v string) (string, bool) {
	s := strings.TrimSpace(v)
	// Tolerate "2024.0" style numerals from sheet exports.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	y := int(f)
	if y < 1000 || y > 9999 {
		return "", false
	}
	return strconv.Itoa(y), true
}

// Cell date layouts seen in real exports, tried in order. RFC3339 comes
// first because session round-trips re-encode normalized dates that way.
var cellDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan-06",
	"Jan 2006",
}

// excelEpoch is day zero of the 1900 date system used by xlsx serial dates.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// cellTime interprets a cell value as a date. It accepts time.Time values,
// the known string layouts, and bare Excel serial numbers. Anything else is
// not a date.
func cellTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range cellDateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			return serialTime(serial)
		}
	case float64:
		return serialTime(t)
	}
	return time.Time{}, false
}

func serialTime(serial float64) (time.Time, bool) {
	// Serials below 61 predate March 1900 and collide with the Lotus leap
	// year bug; real report dates never live there.
	if serial < 61 || serial > 200000 {
		return time.Time{}, false
	}
	return excelEpoch.AddDate(0, 0, int(serial)), true
}
