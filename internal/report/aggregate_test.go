package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmonkmol38/DashNew1/internal/domain"
)

func TestAggregate_FleetManagement(t *testing.T) {
	rows := []domain.Row{
		{"REVENUE": "60", "EXPENSE": "25", "INVOICE NO": "INV-1"},
		{"REVENUE": "40", "EXPENSE": "15", "INVOICE NO": "inv-1"},
		{"Revenue": "0", "Expense": "0", "Invoice No": "INV-2"},
	}

	agg := Aggregate(domain.SheetFleetManagement, rows)

	assert.Equal(t, float64(3), agg[domain.MetricRowCount])
	assert.Equal(t, float64(100), agg[domain.MetricTotalRevenue])
	assert.Equal(t, float64(40), agg[domain.MetricTotalCost])
	// Profit is derived, not read from a column.
	assert.Equal(t, float64(60), agg[domain.MetricTotalProfit])
	// Invoice numbers deduplicate case-insensitively.
	assert.Equal(t, float64(2), agg[domain.MetricUniqueInvoices])
}

func TestAggregate_JobCardCostFromProfit(t *testing.T) {
	rows := []domain.Row{
		{"AMOUNT": "70", "PROFIT": "20", "JOB CARD NO": "JC-1"},
		{"AMOUNT": "30", "PROFIT": "10", "JOB CARD NO": "JC-2"},
	}

	agg := Aggregate(domain.SheetJobCard, rows)

	assert.Equal(t, float64(100), agg[domain.MetricTotalRevenue])
	assert.Equal(t, float64(30), agg[domain.MetricTotalProfit])
	// The sheet's cost-like columns are never summed; cost is the residual.
	assert.Equal(t, float64(70), agg[domain.MetricTotalCost])
	assert.Equal(t, float64(2), agg[domain.MetricUniqueJobCards])
}

func TestAggregate_AliasPrecedencePerField(t *testing.T) {
	rows := []domain.Row{
		{"REVENUE": "100", "Revenue": "999", "Cost": "30"},
	}

	agg := Aggregate(domain.SheetFleetManagement, rows)

	assert.Equal(t, float64(100), agg[domain.MetricTotalRevenue])
	assert.Equal(t, float64(30), agg[domain.MetricTotalCost])
}

func TestAggregate_EmptySubset(t *testing.T) {
	agg := Aggregate(domain.SheetExternalFleet, nil)

	assert.Equal(t, float64(0), agg[domain.MetricRowCount])
	assert.Equal(t, float64(0), agg[domain.MetricTotalRevenue])
	assert.Equal(t, float64(0), agg[domain.MetricTotalProfit])
	assert.Equal(t, float64(0), agg[domain.MetricUniqueVehicles])
}

func TestAggregate_BlankKeysSkippedInDistinctCounts(t *testing.T) {
	rows := []domain.Row{
		{"SAP NO": "E100", "COST": "10"},
		{"SAP NO": "  ", "COST": "10"},
		{"COST": "10"},
	}

	agg := Aggregate(domain.SheetDriverOperator, rows)
	assert.Equal(t, float64(1), agg[domain.MetricUniqueEmployees])
}

func fleetRow(month, year, unit, revenue string) domain.Row {
	return domain.Row{
		"Month":          month,
		"Year":           year,
		"BUSINESS UNITS": unit,
		"REVENUE":        revenue,
	}
}

func TestAggregateFleetManagement_RevenueShare(t *testing.T) {
	all := []domain.Row{
		fleetRow("Jan", "2024", "Logistics", "30"),
		fleetRow("Jan", "2024", "Workshop", "70"),
		fleetRow("Feb", "2024", "Logistics", "500"),
		fleetRow("Jan", "2023", "Logistics", "900"),
	}

	engine := NewEngine(domain.SheetFleetManagement)

	t.Run("share of the selected month across all units", func(t *testing.T) {
		fs := domain.NewFilterState().
			With(domain.DimMonth, "JAN").
			With(domain.DimYear, "2024").
			With(domain.DimBusinessUnit, "Logistics")
		filtered := engine.Apply(all, fs).Rows
		require.Len(t, filtered, 1)

		agg := AggregateFleetManagement(filtered, all, fs)
		assert.Equal(t, float64(30), agg[domain.MetricTotalRevenue])
		assert.InDelta(t, 30.0, agg[domain.MetricRevenueSharePct], 1e-9)
	})

	t.Run("year at All widens the denominator to both years", func(t *testing.T) {
		fs := domain.NewFilterState().
			With(domain.DimMonth, "JAN").
			With(domain.DimBusinessUnit, "Workshop")
		filtered := engine.Apply(all, fs).Rows

		agg := AggregateFleetManagement(filtered, all, fs)
		// 70 out of 30+70+900 across both JAN vintages.
		assert.InDelta(t, 7.0, agg[domain.MetricRevenueSharePct], 1e-9)
	})

	t.Run("zero without a specific month", func(t *testing.T) {
		fs := domain.NewFilterState().With(domain.DimBusinessUnit, "Logistics")
		filtered := engine.Apply(all, fs).Rows

		agg := AggregateFleetManagement(filtered, all, fs)
		assert.Equal(t, float64(0), agg[domain.MetricRevenueSharePct])
	})

	t.Run("zero without a specific business unit", func(t *testing.T) {
		fs := domain.NewFilterState().With(domain.DimMonth, "JAN")
		filtered := engine.Apply(all, fs).Rows

		agg := AggregateFleetManagement(filtered, all, fs)
		assert.Equal(t, float64(0), agg[domain.MetricRevenueSharePct])
	})

	t.Run("zero when the month has no revenue", func(t *testing.T) {
		noRevenue := []domain.Row{fleetRow("Mar", "2024", "Logistics", "0")}
		fs := domain.NewFilterState().
			With(domain.DimMonth, "MAR").
			With(domain.DimYear, "2024").
			With(domain.DimBusinessUnit, "Logistics")
		filtered := engine.Apply(noRevenue, fs).Rows

		agg := AggregateFleetManagement(filtered, noRevenue, fs)
		assert.Equal(t, float64(0), agg[domain.MetricRevenueSharePct])
	})
}
