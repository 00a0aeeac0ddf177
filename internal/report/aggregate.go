package report

import (
	"strings"

	"github.com/kmonkmol38/DashNew1/internal/domain"
	"github.com/kmonkmol38/DashNew1/internal/ingest"
)

// fieldRef is an ordered alias chain for one financial column. The all-caps
// form is always checked before the title-case form, independently per
// field, because sheets name the same column inconsistently.
type fieldRef []string

func (f fieldRef) value(r domain.Row) float64 {
	for _, key := range f {
		if r.String(key) != "" {
			return r.Number(key)
		}
	}
	return 0
}

// formula declares how one sheet kind reduces to revenue/cost/profit.
// Formulas are data, not code paths: the engine below is the only reducer.
type formula struct {
	revenue []fieldRef
	cost    []fieldRef
	profit  []fieldRef

	// costFromProfit derives cost as revenue - profit instead of summing a
	// cost column. The job-card sheet carries cost-like columns, but none of
	// them is reliable, so they are deliberately never summed.
	costFromProfit bool

	// distinct maps metric names to the key accessor deduplicated under
	// them. Blank keys are ignored.
	distinct map[string]func(domain.Row) string
}

var formulas = map[domain.SheetKind]formula{
	domain.SheetFleetManagement: {
		revenue: []fieldRef{{"REVENUE", "Revenue"}},
		cost:    []fieldRef{{"EXPENSE", "Expense"}, {"COST", "Cost"}},
		distinct: map[string]func(domain.Row) string{
			domain.MetricUniqueInvoices: ingest.EffectiveInvoiceNo,
		},
	},
	domain.SheetDriverOperator: {
		revenue: []fieldRef{{"REVENUE", "Revenue"}, {"BILLING AMOUNT", "Billing Amount"}},
		cost:    []fieldRef{{"COST", "Cost"}, {"CTC", "Ctc"}},
		distinct: map[string]func(domain.Row) string{
			domain.MetricUniqueEmployees: ingest.EffectiveSAPNo,
		},
	},
	domain.SheetJobCard: {
		revenue:        []fieldRef{{"REVENUE", "Revenue"}, {"AMOUNT", "Amount"}},
		profit:         []fieldRef{{"PROFIT", "Profit"}},
		costFromProfit: true,
		distinct: map[string]func(domain.Row) string{
			domain.MetricUniqueJobCards: ingest.EffectiveJobCardNo,
		},
	},
	domain.SheetInternalFleet: {
		revenue: []fieldRef{{"REVENUE", "Revenue"}},
		cost:    []fieldRef{{"COST", "Cost"}, {"MAINTENANCE COST", "Maintenance Cost"}},
		distinct: map[string]func(domain.Row) string{
			domain.MetricUniqueVehicles: ingest.EffectiveRegistrationNo,
		},
	},
	domain.SheetExternalFleet: {
		revenue: []fieldRef{{"HIRE CHARGES", "Hire Charges"}, {"REVENUE", "Revenue"}},
		cost:    []fieldRef{{"VENDOR COST", "Vendor Cost"}, {"COST", "Cost"}},
		distinct: map[string]func(domain.Row) string{
			domain.MetricUniqueVehicles: ingest.EffectiveRegistrationNo,
		},
	},
}

// Aggregate reduces a filtered row subset into the named totals for a sheet
// kind. Totals are always recomputed from scratch; there is no incremental
// path, so they can never drift from the filter state that produced rows.
func Aggregate(kind domain.SheetKind, rows []domain.Row) domain.Aggregate {
	f := formulas[kind]
	agg := domain.Aggregate{
		domain.MetricRowCount: float64(len(rows)),
	}

	var revenue, cost, profit float64
	for _, r := range rows {
		revenue += sumRefs(r, f.revenue)
		cost += sumRefs(r, f.cost)
		profit += sumRefs(r, f.profit)
	}

	if f.costFromProfit {
		cost = revenue - profit
	}
	if len(f.profit) == 0 && !f.costFromProfit {
		profit = revenue - cost
	}

	agg[domain.MetricTotalRevenue] = revenue
	agg[domain.MetricTotalCost] = cost
	agg[domain.MetricTotalProfit] = profit

	for metric, key := range f.distinct {
		agg[metric] = float64(countDistinct(rows, key))
	}

	return agg
}

func sumRefs(r domain.Row, refs []fieldRef) float64 {
	var total float64
	for _, ref := range refs {
		total += ref.value(r)
	}
	return total
}

func countDistinct(rows []domain.Row, key func(domain.Row) string) int {
	seen := make(map[string]struct{})
	for _, r := range rows {
		k := strings.TrimSpace(key(r))
		if k == "" {
			continue
		}
		seen[strings.ToUpper(k)] = struct{}{}
	}
	return len(seen)
}

// AggregateFleetManagement computes the fleet-management totals plus the
// revenue-share metric: the filtered subset's revenue as a percentage of the
// same month's revenue across ALL business units. The share is only
// meaningful when both a specific month and a specific business unit are
// selected; otherwise, and when the month has no revenue at all, it is 0.
func AggregateFleetManagement(filtered, all []domain.Row, fs domain.FilterState) domain.Aggregate {
	agg := Aggregate(domain.SheetFleetManagement, filtered)
	agg[domain.MetricRevenueSharePct] = 0

	month := fs.Selection(domain.DimMonth)
	unit := fs.Selection(domain.DimBusinessUnit)
	if month == domain.AllOption || unit == domain.AllOption {
		return agg
	}

	monthOnly := domain.NewFilterState().With(domain.DimMonth, month)
	if year := fs.Selection(domain.DimYear); year != domain.AllOption {
		monthOnly = monthOnly.With(domain.DimYear, year)
	}

	engine := NewEngine(domain.SheetFleetManagement)
	denominator := Aggregate(domain.SheetFleetManagement,
		engine.filterRows(all, monthOnly, ""))[domain.MetricTotalRevenue]
	if denominator == 0 {
		return agg
	}

	agg[domain.MetricRevenueSharePct] = agg[domain.MetricTotalRevenue] / denominator * 100
	return agg
}
