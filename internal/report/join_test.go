package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmonkmol38/DashNew1/internal/domain"
)

func jobCard(month, year, regFleet, sap, amount string) domain.Row {
	return domain.Row{
		"Month":          month,
		"Year":           year,
		"Reg / Fleet No": regFleet,
		"SAP NO":         sap,
		"AMOUNT":         amount,
	}
}

func TestJobCardIndex_SubstringMatch(t *testing.T) {
	ix := NewJobCardIndex([]domain.Row{
		jobCard("Jan", "2024", "TRK-0123 / FL99", "E100", "500"),
		jobCard("Jan", "2024", "trk-0123", "E101", "200"),
		jobCard("Feb", "2024", "TRK-0123 / FL99", "E100", "900"),
		jobCard("Jan", "2024", "BUS-7788", "E102", "50"),
	})

	t.Run("sums every containing entry in the month", func(t *testing.T) {
		assert.Equal(t, float64(700), ix.AmountForVehicle("0123", "JAN", "2024"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, float64(700), ix.AmountForVehicle("TRK-0123", "JAN", "2024"))
	})

	t.Run("month buckets are disjoint", func(t *testing.T) {
		assert.Equal(t, float64(900), ix.AmountForVehicle("0123", "FEB", "2024"))
		assert.Equal(t, float64(0), ix.AmountForVehicle("0123", "JAN", "2023"))
	})

	t.Run("blank registration never matches", func(t *testing.T) {
		assert.Equal(t, float64(0), ix.AmountForVehicle("  ", "JAN", "2024"))
	})
}

func TestRowIndex_ExactMatch(t *testing.T) {
	ix := NewRowIndex(domain.SheetJobCard, []domain.Row{
		jobCard("Jan", "2024", "", "E100", "500"),
		jobCard("Jan", "2024", "", "e100", "300"),
		jobCard("Jan", "2024", "", "E1001", "999"),
	}, jobCardSAPKey)

	t.Run("exact key joins case-insensitively", func(t *testing.T) {
		assert.Len(t, ix.Lookup("E100", "JAN", "2024"), 2)
	})

	t.Run("never joins by substring", func(t *testing.T) {
		assert.Len(t, ix.Lookup("E10", "JAN", "2024"), 0)
	})
}

func TestBuildVehicleCards(t *testing.T) {
	vehicles := []domain.Row{
		{
			"Month":          "Jan",
			"Year":           "2024",
			"REG NO":         "TRK-0123",
			"FLEET CATEGORY": "Crane",
			"BUSINESS UNITS": "Logistics",
		},
		{
			// No resolvable date, so no card.
			"REG NO": "TRK-9999",
		},
	}
	jobCards := NewJobCardIndex([]domain.Row{
		jobCard("Jan", "2024", "TRK-0123 / FL99", "E100", "450"),
	})
	revenue := NewRowIndex(domain.SheetFleetManagement, []domain.Row{
		fleetRowWithReg("Jan", "2024", "trk-0123", "1200"),
		fleetRowWithReg("Jan", "2024", "TRK-0123", "300"),
		fleetRowWithReg("Feb", "2024", "TRK-0123", "555"),
	}, vehicleRevenueKey)

	cards := BuildVehicleCards(vehicles, jobCards, revenue)
	require.Len(t, cards, 1)

	card := cards[0]
	assert.Equal(t, "TRK-0123", card.RegistrationNo)
	assert.Equal(t, "Crane", card.FleetCategory)
	assert.Equal(t, "Logistics", card.BusinessUnit)
	assert.Equal(t, "JAN", card.Month)
	assert.Equal(t, "2024", card.Year)
	assert.Equal(t, float64(450), card.JobCardAmount)
	assert.Equal(t, float64(1500), card.Revenue)
}

func fleetRowWithReg(month, year, reg, revenue string) domain.Row {
	r := fleetRow(month, year, "Logistics", revenue)
	r["REG NO"] = reg
	return r
}

func TestBuildEmployeeCards(t *testing.T) {
	employees := []domain.Row{
		{
			"Month":          "Jan",
			"Year":           "2024",
			"SAP NO":         "E100",
			"DESIGNATIONS":   "Driver",
			"BUSINESS UNITS": "Logistics",
			"CLUSTER":        "North",
		},
	}
	jobCards := NewRowIndex(domain.SheetJobCard, []domain.Row{
		jobCard("Jan", "2024", "", "E100", "500"),
		jobCard("Jan", "2024", "", "E100", "250"),
		jobCard("Jan", "2024", "", "E1000", "999"),
	}, jobCardSAPKey)

	cards := BuildEmployeeCards(employees, jobCards)
	require.Len(t, cards, 1)

	card := cards[0]
	assert.Equal(t, "E100", card.SAPNo)
	assert.Equal(t, "Driver", card.Designation)
	assert.Equal(t, "North", card.Cluster)
	assert.Equal(t, 2, card.JobCardCount)
	assert.Equal(t, float64(750), card.JobCardTotal)
}

func TestNewRowIndex_SignatureVariants(t *testing.T) {
	ix := NewRowIndex(domain.SheetJobCard, []domain.Row{
		// Blank key rows are unreachable.
		jobCard("Jan", "2024", "", "", "100"),
		// Rows without a resolvable date are unreachable.
		{"SAP NO": "E200", "AMOUNT": "100"},
	}, jobCardSAPKey)

	assert.Len(t, ix.Lookup("", "JAN", "2024"), 0)
	assert.Len(t, ix.Lookup("E200", "JAN", "2024"), 0)
}
