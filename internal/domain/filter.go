package domain

// Dimension is one independently selectable filter axis.
type Dimension string

const (
	DimMonth         Dimension = "month"
	DimYear          Dimension = "year"
	DimBusinessUnit  Dimension = "businessUnit"
	DimDesignation   Dimension = "designation"
	DimCluster       Dimension = "cluster"
	DimFleetCategory Dimension = "fleetCategory"
	DimServiceType   Dimension = "serviceType"
)

// AllOption is the sentinel meaning "no restriction" for a dimension. It is
// always pinned first in option lists.
const AllOption = "All"

// FilterState is the set of active selections for one view. It is a value
// object: mutating helpers return a copy, so a recomputation always observes
// a fully settled state. The zero value behaves as all-"All".
type FilterState struct {
	Single map[Dimension]string   `json:"single,omitempty"`
	Multi  map[Dimension][]string `json:"multi,omitempty"`
}

// NewFilterState returns a state with every dimension at "All".
func NewFilterState() FilterState {
	return FilterState{}
}

// Selection returns the current single-select value for a dimension,
// "All" when unset.
func (f FilterState) Selection(d Dimension) string {
	if f.Single == nil {
		return AllOption
	}
	v, ok := f.Single[d]
	if !ok || v == "" {
		return AllOption
	}
	return v
}

// Selections returns the selected values of a multi-select dimension.
// An empty slice means no restriction.
func (f FilterState) Selections(d Dimension) []string {
	if f.Multi == nil {
		return nil
	}
	return f.Multi[d]
}

// IsActive reports whether a dimension currently restricts the row set.
func (f FilterState) IsActive(d Dimension) bool {
	if len(f.Selections(d)) > 0 {
		return true
	}
	return f.Selection(d) != AllOption
}

// With returns a copy with one single-select dimension set. Selecting
// "All" clears the dimension.
func (f FilterState) With(d Dimension, value string) FilterState {
	out := f.clone()
	if value == "" || value == AllOption {
		delete(out.Single, d)
		return out
	}
	out.Single[d] = value
	return out
}

// WithMulti returns a copy with a multi-select dimension replaced. An empty
// list clears the restriction.
func (f FilterState) WithMulti(d Dimension, values []string) FilterState {
	out := f.clone()
	if len(values) == 0 {
		delete(out.Multi, d)
		return out
	}
	out.Multi[d] = append([]string(nil), values...)
	return out
}

// Reset returns a copy with the dimension back at "All".
func (f FilterState) Reset(d Dimension) FilterState {
	out := f.clone()
	delete(out.Single, d)
	delete(out.Multi, d)
	return out
}

func (f FilterState) clone() FilterState {
	out := FilterState{
		Single: make(map[Dimension]string, len(f.Single)),
		Multi:  make(map[Dimension][]string, len(f.Multi)),
	}
	for d, v := range f.Single {
		out.Single[d] = v
	}
	for d, vs := range f.Multi {
		out.Multi[d] = append([]string(nil), vs...)
	}
	return out
}

// SharedFilter is the top-level filter subset shared across all views.
type SharedFilter struct {
	Month        string `json:"month"`
	Year         string `json:"year"`
	BusinessUnit string `json:"business_unit"`
}

// ApplyShared overwrites the shared dimensions of a per-view state while
// leaving view-local dimensions (designation, cluster, ...) untouched.
func (f FilterState) ApplyShared(s SharedFilter) FilterState {
	out := f.With(DimMonth, s.Month)
	out = out.With(DimYear, s.Year)
	return out.With(DimBusinessUnit, s.BusinessUnit)
}
