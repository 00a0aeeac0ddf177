package domain

import (
	"strconv"
	"strings"
	"time"
)

// Row is one canonical spreadsheet row: column name to cell value. Values are
// strings as parsed from the workbook, except cells in a sheet's declared
// date columns, which are normalized to time.Time at midnight UTC. Malformed
// date cells keep their original value so consumers can detect invalidity.
type Row map[string]any

// String returns the cell under key rendered as a trimmed string, or ""
// when the cell is absent. It never panics on missing or oddly typed cells.
func (r Row) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case time.Time:
		return t.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

// Number coerces the cell under key to a float64. Blank, absent and
// non-numeric cells count as 0, matching how financial columns default when
// a sheet omits them. Thousands separators are tolerated.
func (r Row) Number(key string) float64 {
	s := r.String(key)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Session is the single durable unit of state: the canonical row collections
// for every sheet kind plus the upload provenance. Everything else the
// dashboard shows is derived from it on demand.
type Session struct {
	Sheets     map[SheetKind][]Row `json:"sheets"`
	FileName   string              `json:"file_name"`
	UploadedAt time.Time           `json:"uploaded_at"`
	Warnings   []string            `json:"warnings,omitempty"`
}

// Rows returns the row collection for a sheet kind, never nil.
func (s *Session) Rows(kind SheetKind) []Row {
	if s == nil || s.Sheets == nil {
		return nil
	}
	return s.Sheets[kind]
}

// SessionInfo is the lightweight summary handed to the presentation layer.
type SessionInfo struct {
	FileName   string            `json:"file_name"`
	UploadedAt time.Time         `json:"uploaded_at"`
	RowCounts  map[SheetKind]int `json:"row_counts"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// Info builds the summary for a session.
func (s *Session) Info() SessionInfo {
	info := SessionInfo{
		FileName:   s.FileName,
		UploadedAt: s.UploadedAt,
		RowCounts:  make(map[SheetKind]int, len(s.Sheets)),
		Warnings:   s.Warnings,
	}
	for kind, rows := range s.Sheets {
		info.RowCounts[kind] = len(rows)
	}
	return info
}
