package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kmonkmol38/DashNew1/internal/domain"
)

// buildWorkbook renders sheet name to cell grid as an in-memory xlsx file.
func buildWorkbook(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, grid := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, cells := range grid {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &cells))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseWorkbook(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"Fleet Management": {
			{"Month", "Year", "BUSINESS UNITS", "REVENUE"},
			{"Jan", "2024", "Logistics", "100"},
			{"", "", "", ""},
			{"Feb", "2024", "Workshop", "250"},
		},
		"driver and operator": {
			{" DESIGNATIONS ", "CTC No"},
			{"Driver", "E100"},
		},
		"Internal Fleet": {
			{"REG NO", "COST"},
			{"TRK-1", "10"},
			{"", "99"},
		},
	})

	result, err := ParseWorkbook(data)
	require.NoError(t, err)

	t.Run("rows parsed under trimmed headers", func(t *testing.T) {
		rows := result.Sheets[domain.SheetFleetManagement]
		require.Len(t, rows, 2)
		assert.Equal(t, "Logistics", EffectiveBusinessUnit(rows[0]))
		assert.Equal(t, float64(250), rows[1].Number("REVENUE"))
	})

	t.Run("sheet names match loosely", func(t *testing.T) {
		rows := result.Sheets[domain.SheetDriverOperator]
		require.Len(t, rows, 1)
		assert.Equal(t, "Driver", EffectiveDesignation(rows[0]))
	})

	t.Run("blank-registration vehicles dropped", func(t *testing.T) {
		rows := result.Sheets[domain.SheetInternalFleet]
		require.Len(t, rows, 1)
		assert.Equal(t, "TRK-1", EffectiveRegistrationNo(rows[0]))
	})

	t.Run("missing sheets warn and stay empty", func(t *testing.T) {
		assert.Empty(t, result.Sheets[domain.SheetJobCard])
		assert.Empty(t, result.Sheets[domain.SheetExternalFleet])
		assert.Len(t, result.Warnings, 2)
	})
}

func TestParseWorkbook_InvalidFile(t *testing.T) {
	_, err := ParseWorkbook([]byte("not a workbook"))
	assert.Error(t, err)
}

func TestParseAsync(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"Job Card": {
			{"Job Card No", "AMOUNT"},
			{"JC-1", "500"},
		},
	})

	resp := <-ParseAsync(ParseRequest{FileName: "report.xlsx", Data: data})
	require.NoError(t, resp.Err)
	require.NotNil(t, resp.Session)
	assert.Equal(t, "report.xlsx", resp.Session.FileName)
	assert.False(t, resp.Session.UploadedAt.IsZero())
	assert.Len(t, resp.Session.Rows(domain.SheetJobCard), 1)

	t.Run("parse failure is a single error response", func(t *testing.T) {
		resp := <-ParseAsync(ParseRequest{FileName: "bad.xlsx", Data: []byte("junk")})
		assert.Error(t, resp.Err)
		assert.Nil(t, resp.Session)
	})
}
