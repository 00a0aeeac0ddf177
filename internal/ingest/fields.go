package ingest

import (
	"github.com/kmonkmol38/DashNew1/internal/domain"
)

// Source workbooks name the same logical column differently between sheets
// and between export vintages. Each logical field therefore has an ordered
// alias list: the first alias holding a non-empty value wins. The order is a
// contract: all-caps plural forms are checked before title-case singular
// forms before sheet-specific fallbacks, because changing it changes which
// alias wins when a row carries more than one populated alias.
var (
	businessUnitAliases  = []string{"BUSINESS UNITS", "Business Unit", "Site"}
	designationAliases   = []string{"DESIGNATIONS", "Designation", "Trade"}
	clusterAliases       = []string{"CLUSTER", "Cluster", "Region"}
	fleetCategoryAliases = []string{"FLEET CATEGORY", "Fleet Category", "Category"}
	serviceTypeAliases   = []string{"TYPE OF SERVICE", "Type of Service"}
	registrationAliases  = []string{"REG NO", "Reg No", "Registration No"}
	sapNoAliases         = []string{"SAP NO", "SAP No", "CTC No"}
	invoiceNoAliases     = []string{"INVOICE NO", "Invoice No"}
	jobCardNoAliases     = []string{"JOB CARD NO", "Job Card No"}
	regFleetNoAliases    = []string{"REG / FLEET NO", "Reg / Fleet No", "Reg/Fleet No"}
)

func firstAlias(r domain.Row, aliases []string) string {
	for _, key := range aliases {
		if v := r.String(key); v != "" {
			return v
		}
	}
	return ""
}

// EffectiveBusinessUnit resolves the row's business unit, "" when absent.
func EffectiveBusinessUnit(r domain.Row) string {
	return firstAlias(r, businessUnitAliases)
}

// EffectiveDesignation resolves the row's designation, "" when absent.
func EffectiveDesignation(r domain.Row) string {
	return firstAlias(r, designationAliases)
}

// EffectiveCluster resolves the row's cluster, "" when absent.
func EffectiveCluster(r domain.Row) string {
	return firstAlias(r, clusterAliases)
}

// EffectiveFleetCategory resolves the row's fleet category, "" when absent.
func EffectiveFleetCategory(r domain.Row) string {
	return firstAlias(r, fleetCategoryAliases)
}

// EffectiveServiceType resolves the row's type of service, "" when absent.
func EffectiveServiceType(r domain.Row) string {
	return firstAlias(r, serviceTypeAliases)
}

// EffectiveRegistrationNo resolves a vehicle row's registration number.
func EffectiveRegistrationNo(r domain.Row) string {
	return firstAlias(r, registrationAliases)
}

// EffectiveSAPNo resolves an employee row's SAP/CTC number.
func EffectiveSAPNo(r domain.Row) string {
	return firstAlias(r, sapNoAliases)
}

// EffectiveInvoiceNo resolves the row's invoice number.
func EffectiveInvoiceNo(r domain.Row) string {
	return firstAlias(r, invoiceNoAliases)
}

// EffectiveJobCardNo resolves a job-card row's card number.
func EffectiveJobCardNo(r domain.Row) string {
	return firstAlias(r, jobCardNoAliases)
}

// EffectiveRegFleetNo resolves a job-card row's combined "Reg / Fleet No"
// field, the target of the substring vehicle join.
func EffectiveRegFleetNo(r domain.Row) string {
	return firstAlias(r, regFleetNoAliases)
}
