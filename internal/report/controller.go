package report

import (
	"sync"

	"github.com/kmonkmol38/DashNew1/internal/domain"
)

// Controller owns the view state: the adopted session, the shared top-level
// filter and one FilterState per sheet view. Recomputation is synchronous
// pure computation under the lock, so every recompute observes a fully
// settled filter state with no partial read.
type Controller struct {
	mu      sync.RWMutex
	session *domain.Session
	shared  domain.SharedFilter
	views   map[domain.SheetKind]domain.FilterState
	engines map[domain.SheetKind]*Engine
}

// NewController returns a controller with no session and all filters at
// "All".
func NewController() *Controller {
	c := &Controller{
		views:   make(map[domain.SheetKind]domain.FilterState),
		engines: make(map[domain.SheetKind]*Engine),
	}
	for _, kind := range domain.AllSheetKinds() {
		c.views[kind] = domain.NewFilterState()
		c.engines[kind] = NewEngine(kind)
	}
	return c
}

// AdoptSession atomically replaces the whole session. Filters reset to
// "All" because selections from the previous workbook are meaningless
// against a new one. Nothing is adopted on a nil session.
func (c *Controller) AdoptSession(s *domain.Session) {
	if s == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
	c.shared = domain.SharedFilter{}
	for _, kind := range domain.AllSheetKinds() {
		c.views[kind] = domain.NewFilterState()
	}
}

// Session returns the currently adopted session, nil before first upload.
func (c *Controller) Session() *domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Clear drops the session and resets all filters.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.shared = domain.SharedFilter{}
	for _, kind := range domain.AllSheetKinds() {
		c.views[kind] = domain.NewFilterState()
	}
}

// SetShared stores the shared month/year/business-unit filter and pushes it
// down into every per-view state, overwriting those three dimensions and
// leaving view-local dimensions untouched.
func (c *Controller) SetShared(sf domain.SharedFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shared = sf
	for kind, fs := range c.views {
		c.views[kind] = fs.ApplyShared(sf)
	}
}

// Shared returns the current shared filter.
func (c *Controller) Shared() domain.SharedFilter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shared
}

// SetViewFilter updates one single-select dimension of one view.
func (c *Controller) SetViewFilter(kind domain.SheetKind, d domain.Dimension, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[kind] = c.views[kind].With(d, value)
}

// SetViewFilterMulti replaces one multi-select dimension of one view.
func (c *Controller) SetViewFilterMulti(kind domain.SheetKind, d domain.Dimension, values []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[kind] = c.views[kind].WithMulti(d, values)
}

// View recomputes one sheet view: filtered rows, option lists, aggregate.
// Stale selections detected during the recomputation are corrected to "All"
// in the stored state and the view is recomputed once against the corrected
// state, so the returned model is always internally consistent.
func (c *Controller) View(kind domain.SheetKind) domain.ViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := c.session.Rows(kind)
	engine := c.engines[kind]
	fs := c.views[kind]

	res := engine.Apply(rows, fs)
	var resets []domain.Dimension
	if len(res.Resets) > 0 {
		resets = res.Resets
		fs = PruneStale(fs, res, kind)
		c.views[kind] = fs
		res = engine.Apply(rows, fs)
	}

	var agg domain.Aggregate
	if kind == domain.SheetFleetManagement {
		agg = AggregateFleetManagement(res.Rows, rows, fs)
	} else {
		agg = Aggregate(kind, res.Rows)
	}

	return domain.ViewModel{
		Sheet:           kind,
		Filter:          fs,
		Rows:            res.Rows,
		Options:         res.Options,
		Aggregate:       agg,
		ResetDimensions: resets,
	}
}

// VehicleCards returns the printable cards for the internal-fleet view's
// current filtered subset, joined against job cards and fleet-management
// revenue. Join indexes are rebuilt per call.
func (c *Controller) VehicleCards() []domain.VehicleCard {
	vm := c.View(domain.SheetInternalFleet)

	c.mu.RLock()
	defer c.mu.RUnlock()
	jobCards := NewJobCardIndex(c.session.Rows(domain.SheetJobCard))
	revenue := NewRowIndex(domain.SheetFleetManagement,
		c.session.Rows(domain.SheetFleetManagement), vehicleRevenueKey)
	return BuildVehicleCards(vm.Rows, jobCards, revenue)
}

// EmployeeCards returns the printable cards for the driver/operator view's
// current filtered subset, joined against job cards by SAP/CTC number.
func (c *Controller) EmployeeCards() []domain.EmployeeCard {
	vm := c.View(domain.SheetDriverOperator)

	c.mu.RLock()
	defer c.mu.RUnlock()
	jobCards := NewRowIndex(domain.SheetJobCard,
		c.session.Rows(domain.SheetJobCard), jobCardSAPKey)
	return BuildEmployeeCards(vm.Rows, jobCards)
}
