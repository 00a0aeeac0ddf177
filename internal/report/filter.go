// Package report holds the derived-view layer: cascading filters,
// aggregation and cross-sheet joins over the canonical row collections.
// Everything here is pure computation: inputs are never mutated and every
// output is freshly allocated, so two views sharing a row collection can
// never alias each other's state.
package report

import (
	"sort"

	"github.com/kmonkmol38/DashNew1/internal/domain"
	"github.com/kmonkmol38/DashNew1/internal/ingest"
)

// DimensionSpec binds a filter dimension to the function that resolves a
// row's effective value for it. ok=false means the row has no value for the
// dimension (e.g. an unresolvable date) and can never match a specific
// selection, though "All" still includes it.
type DimensionSpec struct {
	Name  domain.Dimension
	Value func(domain.Row) (string, bool)
	Multi bool
}

func accessorDim(name domain.Dimension, fn func(domain.Row) string, multi bool) DimensionSpec {
	return DimensionSpec{
		Name:  name,
		Multi: multi,
		Value: func(r domain.Row) (string, bool) {
			v := fn(r)
			return v, v != ""
		},
	}
}

func dateDims(kind domain.SheetKind) []DimensionSpec {
	return []DimensionSpec{
		{
			Name: domain.DimMonth,
			Value: func(r domain.Row) (string, bool) {
				my, ok := ingest.ResolveDate(kind, r)
				return my.Month, ok
			},
		},
		{
			Name: domain.DimYear,
			Value: func(r domain.Row) (string, bool) {
				my, ok := ingest.ResolveDate(kind, r)
				return my.Year, ok
			},
		},
	}
}

// SheetDimensions returns the filterable dimensions of a sheet kind, in the
// order their option lists appear in the view.
func SheetDimensions(kind domain.SheetKind) []DimensionSpec {
	dims := dateDims(kind)
	dims = append(dims, accessorDim(domain.DimBusinessUnit, ingest.EffectiveBusinessUnit, false))
	switch kind {
	case domain.SheetFleetManagement:
		dims = append(dims, accessorDim(domain.DimServiceType, ingest.EffectiveServiceType, true))
	case domain.SheetDriverOperator:
		dims = append(dims,
			accessorDim(domain.DimDesignation, ingest.EffectiveDesignation, false),
			accessorDim(domain.DimCluster, ingest.EffectiveCluster, false))
	default:
		dims = append(dims, accessorDim(domain.DimFleetCategory, ingest.EffectiveFleetCategory, false))
	}
	return dims
}

// Result is one recomputation of a view's derived state.
type Result struct {
	// Rows is the subset matching every active dimension.
	Rows []domain.Row
	// Options holds, per dimension, "All" plus the sorted distinct values
	// occurring in the rows filtered by every OTHER active dimension.
	Options map[domain.Dimension][]string
	// Resets lists dimensions whose current selection no longer occurs in
	// its freshly computed candidate set and must fall back to "All".
	Resets []domain.Dimension

	// distinct keeps the raw candidate sets (without the stale-selection
	// append) so PruneStale can distinguish valid from merely displayed.
	distinct map[domain.Dimension]map[string]struct{}
}

// Engine applies a FilterState to one sheet's row collection.
type Engine struct {
	dims []DimensionSpec
}

// NewEngine builds an engine for a sheet kind.
func NewEngine(kind domain.SheetKind) *Engine {
	return &Engine{dims: SheetDimensions(kind)}
}

// Apply computes the filtered subset, the per-dimension option lists and the
// stale-selection resets for one (rows, filter) pair. It is deterministic
// and allocates fresh output on every call.
func (e *Engine) Apply(rows []domain.Row, fs domain.FilterState) Result {
	res := Result{
		Rows:     e.filterRows(rows, fs, ""),
		Options:  make(map[domain.Dimension][]string, len(e.dims)),
		distinct: make(map[domain.Dimension]map[string]struct{}, len(e.dims)),
	}

	for _, dim := range e.dims {
		// Candidate options for a dimension come from the rows filtered by
		// every dimension EXCEPT itself: narrowing Business Unit must shrink
		// the Designation list and vice versa, while the dimension's own
		// selection must never restrict its own options.
		candidates := e.filterRows(rows, fs, dim.Name)
		distinct := distinctValues(candidates, dim)
		res.distinct[dim.Name] = distinct
		res.Options[dim.Name] = buildOptionList(distinct, fs, dim)

		if stale(distinct, fs, dim) {
			res.Resets = append(res.Resets, dim.Name)
		}
	}

	return res
}

// filterRows returns the rows matching every active dimension except the
// excluded one ("" excludes nothing).
func (e *Engine) filterRows(rows []domain.Row, fs domain.FilterState, exclude domain.Dimension) []domain.Row {
	out := make([]domain.Row, 0, len(rows))
	for _, r := range rows {
		if e.matches(r, fs, exclude) {
			out = append(out, r)
		}
	}
	return out
}

func (e *Engine) matches(r domain.Row, fs domain.FilterState, exclude domain.Dimension) bool {
	for _, dim := range e.dims {
		if dim.Name == exclude {
			continue
		}
		if !matchesDim(r, fs, dim) {
			return false
		}
	}
	return true
}

func matchesDim(r domain.Row, fs domain.FilterState, dim DimensionSpec) bool {
	if dim.Multi {
		selected := fs.Selections(dim.Name)
		if len(selected) == 0 {
			return true
		}
		v, ok := dim.Value(r)
		if !ok {
			return false
		}
		for _, s := range selected {
			if s == v {
				return true
			}
		}
		return false
	}

	selection := fs.Selection(dim.Name)
	if selection == domain.AllOption {
		return true
	}
	v, ok := dim.Value(r)
	return ok && v == selection
}

func distinctValues(rows []domain.Row, dim DimensionSpec) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range rows {
		if v, ok := dim.Value(r); ok {
			set[v] = struct{}{}
		}
	}
	return set
}

// buildOptionList renders a distinct set as the view's option list: the
// current selection is kept visible even when stale (the reset lands on the
// next state transition, not mid-render), everything sorts lexicographically
// ascending, and "All" is pinned first.
func buildOptionList(distinct map[string]struct{}, fs domain.FilterState, dim DimensionSpec) []string {
	values := make([]string, 0, len(distinct)+1)
	for v := range distinct {
		values = append(values, v)
	}

	if dim.Multi {
		for _, s := range fs.Selections(dim.Name) {
			if _, ok := distinct[s]; !ok {
				values = append(values, s)
			}
		}
	} else if sel := fs.Selection(dim.Name); sel != domain.AllOption {
		if _, ok := distinct[sel]; !ok {
			values = append(values, sel)
		}
	}

	sort.Strings(values)
	return append([]string{domain.AllOption}, values...)
}

func stale(distinct map[string]struct{}, fs domain.FilterState, dim DimensionSpec) bool {
	if dim.Multi {
		for _, s := range fs.Selections(dim.Name) {
			if _, ok := distinct[s]; !ok {
				return true
			}
		}
		return false
	}
	sel := fs.Selection(dim.Name)
	if sel == domain.AllOption {
		return false
	}
	_, ok := distinct[sel]
	return !ok
}

// PruneStale applies the reset signals of a Result to a FilterState,
// returning the corrected state. Single-select dimensions fall back to
// "All"; multi-select dimensions drop only the vanished values.
func PruneStale(fs domain.FilterState, res Result, kind domain.SheetKind) domain.FilterState {
	if len(res.Resets) == 0 {
		return fs
	}
	dims := make(map[domain.Dimension]DimensionSpec)
	for _, d := range SheetDimensions(kind) {
		dims[d.Name] = d
	}
	out := fs
	for _, name := range res.Resets {
		dim := dims[name]
		if !dim.Multi {
			out = out.Reset(name)
			continue
		}
		kept := make([]string, 0)
		for _, s := range out.Selections(name) {
			if _, ok := res.distinct[name][s]; ok {
				kept = append(kept, s)
			}
		}
		out = out.WithMulti(name, kept)
	}
	return out
}
