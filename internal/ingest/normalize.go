package ingest

import (
	"strings"
	"time"

	"github.com/kmonkmol38/DashNew1/internal/domain"
)

// NormalizeSheet converts the raw rows of one sheet into canonical rows.
// For the internal-fleet vehicle inventory, rows whose registration number
// is blank are dropped before normalization; they are trailing blank
// spreadsheet rows, not vehicles.
func NormalizeSheet(kind domain.SheetKind, raw []domain.Row) []domain.Row {
	out := make([]domain.Row, 0, len(raw))
	for _, r := range raw {
		if kind == domain.SheetInternalFleet && EffectiveRegistrationNo(r) == "" {
			continue
		}
		out = append(out, NormalizeRow(kind, r))
	}
	return out
}

// NormalizeRow produces a canonical row: keys trimmed and deduplicated
// (last writer wins on whitespace-variant duplicates), and cells in the
// sheet's declared date columns coerced to midnight UTC preserving the
// source day, month and year. A cell that fails to parse as a date is kept
// unchanged so downstream consumers can see the invalid value.
func NormalizeRow(kind domain.SheetKind, raw domain.Row) domain.Row {
	out := make(domain.Row, len(raw))
	for key, v := range raw {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if t, ok := v.(time.Time); ok {
			v = midnightUTC(t)
		}
		out[key] = v
	}

	for _, col := range sheetDateColumns(kind) {
		v, ok := out[col]
		if !ok {
			continue
		}
		if t, parsed := cellTime(v); parsed {
			out[col] = midnightUTC(t)
		}
	}

	return out
}

// midnightUTC drops the time of day and rebinds the calendar date to UTC,
// so a date parsed as local midnight cannot shift to a neighboring day when
// re-read in a different timezone.
func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
