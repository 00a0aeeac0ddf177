package domain

// Aggregate is a named mapping of metric name to numeric total, rebuilt from
// the current filtered subset on every recomputation and never mutated in
// place.
type Aggregate map[string]float64

// Metric names produced by the aggregation engine.
const (
	MetricRowCount        = "rowCount"
	MetricTotalRevenue    = "totalRevenue"
	MetricTotalCost       = "totalCost"
	MetricTotalProfit     = "totalProfit"
	MetricRevenueSharePct = "revenueSharePct"
	MetricUniqueInvoices  = "uniqueInvoices"
	MetricUniqueEmployees = "uniqueEmployees"
	MetricUniqueVehicles  = "uniqueVehicles"
	MetricUniqueJobCards  = "uniqueJobCards"
)

// ViewModel is the derived output for one sheet view: the filtered rows, the
// per-dimension option lists, and the aggregate totals, all consistent with
// the returned filter state.
type ViewModel struct {
	Sheet     SheetKind              `json:"sheet"`
	Filter    FilterState            `json:"filter"`
	Rows      []Row                  `json:"rows"`
	Options   map[Dimension][]string `json:"options"`
	Aggregate Aggregate              `json:"aggregate"`
	// ResetDimensions lists dimensions whose selection became stale and was
	// auto-corrected to "All" during this recomputation.
	ResetDimensions []Dimension `json:"reset_dimensions,omitempty"`
}

// VehicleCard is the printable card for one internal-fleet vehicle, enriched
// with cross-sheet joins against the job-card and fleet-management sheets.
type VehicleCard struct {
	RegistrationNo string  `json:"registration_no"`
	FleetCategory  string  `json:"fleet_category"`
	BusinessUnit   string  `json:"business_unit"`
	Month          string  `json:"month"`
	Year           string  `json:"year"`
	JobCardAmount  float64 `json:"job_card_amount"`
	Revenue        float64 `json:"revenue"`
}

// EmployeeCard is the printable card for one driver/operator, with the
// job-card rows joined by SAP/CTC number.
type EmployeeCard struct {
	SAPNo        string  `json:"sap_no"`
	Designation  string  `json:"designation"`
	BusinessUnit string  `json:"business_unit"`
	Cluster      string  `json:"cluster"`
	Month        string  `json:"month"`
	Year         string  `json:"year"`
	JobCardCount int     `json:"job_card_count"`
	JobCardTotal float64 `json:"job_card_total"`
}
