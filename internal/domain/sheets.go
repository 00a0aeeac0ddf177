package domain

// SheetKind identifies one of the fixed workbook sheet categories. Each kind
// has its own canonical schema, date columns and filter dimensions.
type SheetKind string

const (
	SheetFleetManagement SheetKind = "fleet_management"
	SheetDriverOperator  SheetKind = "driver_operator"
	SheetJobCard         SheetKind = "job_card"
	SheetInternalFleet   SheetKind = "internal_fleet"
	SheetExternalFleet   SheetKind = "external_fleet"
)

// AllSheetKinds returns the sheet kinds in workbook order.
func AllSheetKinds() []SheetKind {
	return []SheetKind{
		SheetFleetManagement,
		SheetDriverOperator,
		SheetJobCard,
		SheetInternalFleet,
		SheetExternalFleet,
	}
}

// WorkbookName returns the sheet name expected inside an uploaded workbook.
// Matching against actual sheet names is case/whitespace/punctuation
// insensitive, so this is a display form, not an exact key.
func (k SheetKind) WorkbookName() string {
	switch k {
	case SheetFleetManagement:
		return "Fleet Management"
	case SheetDriverOperator:
		return "Driver & Operator"
	case SheetJobCard:
		return "Job Card"
	case SheetInternalFleet:
		return "Internal Fleet"
	case SheetExternalFleet:
		return "External Fleet"
	}
	return string(k)
}

// ParseSheetKind maps an API path segment to a SheetKind.
func ParseSheetKind(s string) (SheetKind, bool) {
	for _, k := range AllSheetKinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}
