package models

// Category is the ESG pillar a metric or initiative belongs to.
type Category string

const (
	CategoryEnvironmental Category = "Environmental"
	CategorySocial        Category = "Social"
	CategoryGovernance    Category = "Governance"
)

// Categories lists the pillars in reporting order.
func Categories() []Category {
	return []Category{CategoryEnvironmental, CategorySocial, CategoryGovernance}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryEnvironmental, CategorySocial, CategoryGovernance:
		return true
	}
	return false
}

// Performance is the traffic-light indicator of an entry against its target.
type Performance string

const (
	PerformanceGreen  Performance = "Green"
	PerformanceYellow Performance = "Yellow"
	PerformanceRed    Performance = "Red"
	// PerformanceNone marks entries with nothing to compare against.
	PerformanceNone Performance = ""
)

func (p Performance) IsValid() bool {
	switch p {
	case PerformanceGreen, PerformanceYellow, PerformanceRed:
		return true
	}
	return false
}

// VariancePerformance is the plain variance rule: meeting or beating the
// target (variance >= 0) is Green, anything else Red.
func VariancePerformance(variance float64) Performance {
	if variance < 0 {
		return PerformanceRed
	}
	return PerformanceGreen
}

// VerificationStatus tracks review of a metric entry.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "Pending"
	VerificationVerified VerificationStatus = "Verified"
	VerificationRejected VerificationStatus = "Rejected"
)

func (v VerificationStatus) IsValid() bool {
	switch v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

// DataSource records how an entry came to exist.
type DataSource string

const (
	DataSourceManual          DataSource = "Manual Entry"
	DataSourceSystemGenerated DataSource = "System Generated"
	DataSourceImported        DataSource = "Imported"
	DataSourceCalculated      DataSource = "Calculated"
)

func (d DataSource) IsValid() bool {
	switch d {
	case DataSourceManual, DataSourceSystemGenerated, DataSourceImported, DataSourceCalculated:
		return true
	}
	return false
}

// PartyType names the kind of counterparty an entry is attributed to.
type PartyType string

const (
	PartyCustomer       PartyType = "Customer"
	PartySupplier       PartyType = "Supplier"
	PartyWarehouse      PartyType = "Warehouse"
	PartyItem           PartyType = "Item"
	PartyProductionPlan PartyType = "Production Plan"
	PartyEmployee       PartyType = "Employee"
)

func (p PartyType) IsValid() bool {
	switch p {
	case PartyCustomer, PartySupplier, PartyWarehouse, PartyItem, PartyProductionPlan, PartyEmployee:
		return true
	}
	return false
}

// SourceDocType is an ERP document type whose lifecycle produces metric entries.
type SourceDocType string

const (
	DocSalesInvoice    SourceDocType = "Sales Invoice"
	DocPurchaseInvoice SourceDocType = "Purchase Invoice"
	DocStockEntry      SourceDocType = "Stock Entry"
	DocWorkOrder       SourceDocType = "Work Order"
	DocProductionPlan  SourceDocType = "Production Plan"
	DocDeliveryNote    SourceDocType = "Delivery Note"
)

// SourceDocTypes lists every document type with a derivation rule.
func SourceDocTypes() []SourceDocType {
	return []SourceDocType{
		DocSalesInvoice, DocPurchaseInvoice, DocStockEntry,
		DocWorkOrder, DocProductionPlan, DocDeliveryNote,
	}
}

func (d SourceDocType) IsValid() bool {
	for _, t := range SourceDocTypes() {
		if d == t {
			return true
		}
	}
	return false
}

// Frequency is a reporting or review cadence.
type Frequency string

const (
	FrequencyDaily      Frequency = "Daily"
	FrequencyWeekly     Frequency = "Weekly"
	FrequencyMonthly    Frequency = "Monthly"
	FrequencyQuarterly  Frequency = "Quarterly"
	FrequencyHalfYearly Frequency = "Half Yearly"
	FrequencyAnnually   Frequency = "Annually"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyAnnually:
		return true
	}
	return false
}
