package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmonkmol38/DashNew1/internal/domain"
)

func driverRow(month, year, unit, designation, cluster string) domain.Row {
	return domain.Row{
		"Month":          month,
		"Year":           year,
		"BUSINESS UNITS": unit,
		"DESIGNATIONS":   designation,
		"CLUSTER":        cluster,
	}
}

func driverRows() []domain.Row {
	return []domain.Row{
		driverRow("Jan", "2024", "Logistics", "Driver", "North"),
		driverRow("Jan", "2024", "Logistics", "Operator", "North"),
		driverRow("Jan", "2024", "Workshop", "Mechanic", "South"),
		driverRow("Feb", "2024", "Workshop", "Mechanic", "South"),
		driverRow("Feb", "2023", "Logistics", "Driver", "South"),
	}
}

func TestEngineApply_AllSelectionsIdentity(t *testing.T) {
	engine := NewEngine(domain.SheetDriverOperator)
	rows := driverRows()

	res := engine.Apply(rows, domain.NewFilterState())

	assert.Len(t, res.Rows, len(rows))
	assert.Empty(t, res.Resets)
	assert.Equal(t, []string{"All", "FEB", "JAN"}, res.Options[domain.DimMonth])
	assert.Equal(t, []string{"All", "Logistics", "Workshop"}, res.Options[domain.DimBusinessUnit])
}

func TestEngineApply_OptionsExcludeOwnDimension(t *testing.T) {
	engine := NewEngine(domain.SheetDriverOperator)
	fs := domain.NewFilterState().With(domain.DimBusinessUnit, "Logistics")

	res := engine.Apply(driverRows(), fs)

	// Narrowing the business unit shrinks the other option lists.
	assert.Equal(t, []string{"All", "Driver", "Operator"}, res.Options[domain.DimDesignation])
	// The dimension's own selection never restricts its own options.
	assert.Equal(t, []string{"All", "Logistics", "Workshop"}, res.Options[domain.DimBusinessUnit])
	assert.Len(t, res.Rows, 3)
	assert.Empty(t, res.Resets)
}

func TestEngineApply_CombinedDimensions(t *testing.T) {
	engine := NewEngine(domain.SheetDriverOperator)
	fs := domain.NewFilterState().
		With(domain.DimMonth, "JAN").
		With(domain.DimBusinessUnit, "Logistics")

	res := engine.Apply(driverRows(), fs)

	assert.Len(t, res.Rows, 2)
	// Designation candidates come from rows matching month AND unit.
	assert.Equal(t, []string{"All", "Driver", "Operator"}, res.Options[domain.DimDesignation])
	// Month options come from rows matching unit only.
	assert.Equal(t, []string{"All", "FEB", "JAN"}, res.Options[domain.DimMonth])
}

func TestEngineApply_StaleSelection(t *testing.T) {
	engine := NewEngine(domain.SheetDriverOperator)
	// Driver exists under Logistics but not under Workshop.
	fs := domain.NewFilterState().
		With(domain.DimDesignation, "Driver").
		With(domain.DimBusinessUnit, "Workshop")

	res := engine.Apply(driverRows(), fs)

	require.Equal(t, []domain.Dimension{domain.DimDesignation}, res.Resets)
	// The stale value stays visible in the option list until the reset lands.
	assert.Contains(t, res.Options[domain.DimDesignation], "Driver")
	assert.Contains(t, res.Options[domain.DimDesignation], "Mechanic")
	assert.Empty(t, res.Rows)

	t.Run("prune resets the stale dimension to All", func(t *testing.T) {
		pruned := PruneStale(fs, res, domain.SheetDriverOperator)
		assert.Equal(t, domain.AllOption, pruned.Selection(domain.DimDesignation))
		assert.Equal(t, "Workshop", pruned.Selection(domain.DimBusinessUnit))

		again := engine.Apply(driverRows(), pruned)
		assert.Empty(t, again.Resets)
		assert.Len(t, again.Rows, 2)
	})
}

func TestEngineApply_UnresolvableRowsOnlyUnderAll(t *testing.T) {
	engine := NewEngine(domain.SheetDriverOperator)
	rows := append(driverRows(), domain.Row{
		"BUSINESS UNITS": "Logistics",
		"DESIGNATIONS":   "Driver",
	})

	all := engine.Apply(rows, domain.NewFilterState())
	assert.Len(t, all.Rows, 6)

	jan := engine.Apply(rows, domain.NewFilterState().With(domain.DimMonth, "JAN"))
	assert.Len(t, jan.Rows, 3)
}

func TestEngineApply_MultiSelect(t *testing.T) {
	engine := NewEngine(domain.SheetFleetManagement)
	rows := []domain.Row{
		{"Month": "Jan", "Year": "2024", "BUSINESS UNITS": "Logistics", "TYPE OF SERVICE": "Rental"},
		{"Month": "Jan", "Year": "2024", "BUSINESS UNITS": "Logistics", "TYPE OF SERVICE": "Repair"},
		{"Month": "Jan", "Year": "2024", "BUSINESS UNITS": "Workshop", "TYPE OF SERVICE": "Towing"},
	}

	t.Run("empty selection means no restriction", func(t *testing.T) {
		res := engine.Apply(rows, domain.NewFilterState())
		assert.Len(t, res.Rows, 3)
	})

	t.Run("selected values union", func(t *testing.T) {
		fs := domain.NewFilterState().WithMulti(domain.DimServiceType, []string{"Rental", "Towing"})
		res := engine.Apply(rows, fs)
		assert.Len(t, res.Rows, 2)
		assert.Empty(t, res.Resets)
	})

	t.Run("vanished values pruned individually", func(t *testing.T) {
		fs := domain.NewFilterState().
			WithMulti(domain.DimServiceType, []string{"Rental", "Towing"}).
			With(domain.DimBusinessUnit, "Logistics")
		res := engine.Apply(rows, fs)
		require.Equal(t, []domain.Dimension{domain.DimServiceType}, res.Resets)

		pruned := PruneStale(fs, res, domain.SheetFleetManagement)
		assert.Equal(t, []string{"Rental"}, pruned.Selections(domain.DimServiceType))
	})
}

func TestEngineApply_Idempotent(t *testing.T) {
	engine := NewEngine(domain.SheetDriverOperator)
	fs := domain.NewFilterState().With(domain.DimMonth, "JAN")
	rows := driverRows()

	first := engine.Apply(rows, fs)
	second := engine.Apply(rows, fs)

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.Options, second.Options)
	assert.Equal(t, first.Resets, second.Resets)
}
