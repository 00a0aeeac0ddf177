package report

import (
	"strings"

	"github.com/kmonkmol38/DashNew1/internal/domain"
	"github.com/kmonkmol38/DashNew1/internal/ingest"
)

type monthYearKey struct {
	month string
	year  string
}

type exactKey struct {
	key   string
	month string
	year  string
}

// JobCardIndex indexes job-card rows by month/year for the vehicle join.
// The vehicle → job-card match is substring containment of the registration
// number inside the combined "Reg / Fleet No" field, case-insensitive, so
// rows can only be bucketed by date and scanned within the bucket. Substring
// matching tolerates formatting drift (leading zeros, unit suffixes) but is
// a known over-matching risk; it is preserved deliberately.
type JobCardIndex struct {
	byDate map[monthYearKey][]jobCardEntry
}

type jobCardEntry struct {
	regFleet string // lowercased combined field
	row      domain.Row
}

// NewJobCardIndex builds the index once per recomputation, replacing linear
// scans on every lookup.
func NewJobCardIndex(jobCards []domain.Row) *JobCardIndex {
	ix := &JobCardIndex{byDate: make(map[monthYearKey][]jobCardEntry)}
	for _, r := range jobCards {
		my, ok := ingest.ResolveDate(domain.SheetJobCard, r)
		if !ok {
			continue
		}
		combined := strings.ToLower(ingest.EffectiveRegFleetNo(r))
		if combined == "" {
			continue
		}
		k := monthYearKey{month: my.Month, year: my.Year}
		ix.byDate[k] = append(ix.byDate[k], jobCardEntry{regFleet: combined, row: r})
	}
	return ix
}

// AmountForVehicle sums the job-card revenue of entries in the given month
// whose combined reg/fleet field contains the registration number.
func (ix *JobCardIndex) AmountForVehicle(regNo, month, year string) float64 {
	needle := strings.ToLower(strings.TrimSpace(regNo))
	if needle == "" {
		return 0
	}
	var total float64
	for _, e := range ix.byDate[monthYearKey{month: month, year: year}] {
		if strings.Contains(e.regFleet, needle) {
			total += sumRefs(e.row, formulas[domain.SheetJobCard].revenue)
		}
	}
	return total
}

// RowIndex is an exact-match join index keyed by (key, month, year). Keys
// compare case-insensitively but, unlike the vehicle join, never by
// substring. The two join semantics are distinct contracts and must not be
// unified.
type RowIndex struct {
	rows map[exactKey][]domain.Row
}

// NewRowIndex indexes rows of one sheet under keyFn + resolved date.
// Rows with a blank key or no resolvable date are unreachable via the join.
func NewRowIndex(kind domain.SheetKind, rows []domain.Row, keyFn func(domain.Row) string) *RowIndex {
	ix := &RowIndex{rows: make(map[exactKey][]domain.Row)}
	for _, r := range rows {
		key := strings.ToUpper(strings.TrimSpace(keyFn(r)))
		if key == "" {
			continue
		}
		my, ok := ingest.ResolveDate(kind, r)
		if !ok {
			continue
		}
		k := exactKey{key: key, month: my.Month, year: my.Year}
		ix.rows[k] = append(ix.rows[k], r)
	}
	return ix
}

// Lookup returns the rows joined under (key, month, year).
func (ix *RowIndex) Lookup(key, month, year string) []domain.Row {
	return ix.rows[exactKey{
		key:   strings.ToUpper(strings.TrimSpace(key)),
		month: month,
		year:  year,
	}]
}

func vehicleRevenueKey(r domain.Row) string { return ingest.EffectiveRegistrationNo(r) }

func jobCardSAPKey(r domain.Row) string { return ingest.EffectiveSAPNo(r) }

// BuildVehicleCards joins the filtered internal-fleet rows against job cards
// (substring, summed amount) and fleet-management revenue (exact by
// registration number).
func BuildVehicleCards(vehicles []domain.Row, jobCards *JobCardIndex, revenue *RowIndex) []domain.VehicleCard {
	cards := make([]domain.VehicleCard, 0, len(vehicles))
	for _, v := range vehicles {
		my, ok := ingest.ResolveDate(domain.SheetInternalFleet, v)
		if !ok {
			continue
		}
		reg := ingest.EffectiveRegistrationNo(v)
		card := domain.VehicleCard{
			RegistrationNo: reg,
			FleetCategory:  ingest.EffectiveFleetCategory(v),
			BusinessUnit:   ingest.EffectiveBusinessUnit(v),
			Month:          my.Month,
			Year:           my.Year,
			JobCardAmount:  jobCards.AmountForVehicle(reg, my.Month, my.Year),
		}
		for _, r := range revenue.Lookup(reg, my.Month, my.Year) {
			card.Revenue += sumRefs(r, formulas[domain.SheetFleetManagement].revenue)
		}
		cards = append(cards, card)
	}
	return cards
}

// BuildEmployeeCards joins the filtered driver/operator rows against job
// cards by SAP/CTC number (exact).
func BuildEmployeeCards(employees []domain.Row, jobCards *RowIndex) []domain.EmployeeCard {
	cards := make([]domain.EmployeeCard, 0, len(employees))
	for _, e := range employees {
		my, ok := ingest.ResolveDate(domain.SheetDriverOperator, e)
		if !ok {
			continue
		}
		sap := ingest.EffectiveSAPNo(e)
		card := domain.EmployeeCard{
			SAPNo:        sap,
			Designation:  ingest.EffectiveDesignation(e),
			BusinessUnit: ingest.EffectiveBusinessUnit(e),
			Cluster:      ingest.EffectiveCluster(e),
			Month:        my.Month,
			Year:         my.Year,
		}
		joined := jobCards.Lookup(sap, my.Month, my.Year)
		card.JobCardCount = len(joined)
		for _, r := range joined {
			card.JobCardTotal += sumRefs(r, formulas[domain.SheetJobCard].revenue)
		}
		cards = append(cards, card)
	}
	return cards
}
