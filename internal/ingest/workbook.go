package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/kmonkmol38/DashNew1/internal/domain"
)

// ParseResult is the outcome of parsing one workbook: canonical rows for
// every expected sheet kind plus human-readable warnings for any expected
// sheet the workbook does not contain. A missing sheet is non-fatal; its
// collection is simply empty.
type ParseResult struct {
	Sheets   map[domain.SheetKind][]domain.Row
	Warnings []string
}

// ParseWorkbook opens an xlsx workbook from memory and normalizes every
// expected sheet. It fails only when the file itself is unreadable; no
// partial data is ever returned on error.
func ParseWorkbook(data []byte) (*ParseResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	// Sheet names in real exports vary in case, spacing and punctuation
	// ("Driver & Operator" vs "driver and operator" vs "DriverOperator"),
	// so matching happens on a squashed alphanumeric form.
	actualByNorm := make(map[string]string)
	for _, name := range f.GetSheetList() {
		actualByNorm[normalizeSheetName(name)] = name
	}

	result := &ParseResult{
		Sheets: make(map[domain.SheetKind][]domain.Row, len(domain.AllSheetKinds())),
	}

	for _, kind := range domain.AllSheetKinds() {
		actual, ok := actualByNorm[normalizeSheetName(kind.WorkbookName())]
		if !ok {
			result.Sheets[kind] = []domain.Row{}
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("sheet %q not found in workbook", kind.WorkbookName()))
			continue
		}

		raw, err := readSheetRows(f, actual)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", actual, err)
		}
		result.Sheets[kind] = NormalizeSheet(kind, raw)
	}

	for _, w := range result.Warnings {
		log.Warn().Str("warning", w).Msg("workbook parsed with missing sheet")
	}

	return result, nil
}

// readSheetRows turns one worksheet into raw rows keyed by the header row.
// The first row with any non-blank cell is the header; header cells are
// trimmed and whitespace-variant duplicates collapse (last writer wins).
// Fully blank data rows are skipped.
func readSheetRows(f *excelize.File, sheet string) ([]domain.Row, error) {
	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	headerIdx := -1
	var header []string
	for i, cells := range grid {
		if !rowBlank(cells) {
			headerIdx = i
			header = cells
			break
		}
	}
	if headerIdx < 0 {
		return nil, nil
	}

	rows := make([]domain.Row, 0, len(grid)-headerIdx-1)
	for _, cells := range grid[headerIdx+1:] {
		if rowBlank(cells) {
			continue
		}
		row := make(domain.Row, len(header))
		for col, key := range header {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if col < len(cells) {
				row[key] = cells[col]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func rowBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func normalizeSheetName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '&':
			// "Driver & Operator" and "Driver and Operator" are the same sheet.
			b.WriteString("and")
		}
	}
	return b.String()
}
