package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kmonkmol38/DashNew1/internal/domain"
)

func TestEffectiveBusinessUnit_AliasOrder(t *testing.T) {
	tests := []struct {
		name string
		row  domain.Row
		want string
	}{
		{
			name: "all-caps form wins over title case",
			row:  domain.Row{"BUSINESS UNITS": "Logistics", "Business Unit": "Workshop"},
			want: "Logistics",
		},
		{
			name: "title case used when all-caps is blank",
			row:  domain.Row{"BUSINESS UNITS": "  ", "Business Unit": "Workshop"},
			want: "Workshop",
		},
		{
			name: "sheet-specific fallback is last",
			row:  domain.Row{"Site": "Depot 4"},
			want: "Depot 4",
		},
		{
			name: "absent everywhere",
			row:  domain.Row{"REVENUE": "100"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveBusinessUnit(tt.row))
		})
	}
}

func TestEffectiveAccessors(t *testing.T) {
	row := domain.Row{
		"DESIGNATIONS":   "Driver",
		"Cluster":        "North",
		"FLEET CATEGORY": "Crane",
		"TYPE OF SERVICE": "Rental",
		"Reg No":         " TRK-0123 ",
		"CTC No":         "E100",
		"INVOICE NO":     "INV-9",
		"Job Card No":    "JC-55",
		"Reg / Fleet No": "TRK-0123 / FL99",
	}

	assert.Equal(t, "Driver", EffectiveDesignation(row))
	assert.Equal(t, "North", EffectiveCluster(row))
	assert.Equal(t, "Crane", EffectiveFleetCategory(row))
	assert.Equal(t, "Rental", EffectiveServiceType(row))
	assert.Equal(t, "TRK-0123", EffectiveRegistrationNo(row))
	assert.Equal(t, "E100", EffectiveSAPNo(row))
	assert.Equal(t, "INV-9", EffectiveInvoiceNo(row))
	assert.Equal(t, "JC-55", EffectiveJobCardNo(row))
	assert.Equal(t, "TRK-0123 / FL99", EffectiveRegFleetNo(row))
}

func TestEffectiveSAPNo_PrefersSAPOverCTC(t *testing.T) {
	row := domain.Row{"SAP NO": "S1", "CTC No": "C1"}
	assert.Equal(t, "S1", EffectiveSAPNo(row))
}
