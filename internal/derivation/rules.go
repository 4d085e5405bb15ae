package derivation

import (
	"fmt"
	"strconv"
	"time"

	"esgtrack/internal/esg/models"
)

// outcome is what a document-type rule decides for one submitted document.
type outcome struct {
	metric       string
	target       float64
	performance  models.Performance
	verification models.VerificationStatus
	period       time.Time
	partyType    models.PartyType
	party        string
	remarks      string
}

// rule derives a metric entry for one document type. measured reads the
// document's emissions field; a zero value means nothing to record.
type rule struct {
	measured func(d *Document) float64
	apply    func(d *Document, baseline float64) outcome
}

var rules = map[models.SourceDocType]rule{
	models.DocSalesInvoice: {
		measured: func(d *Document) float64 { return d.TotalCarbonEmissions },
		apply: func(d *Document, baseline float64) outcome {
			variance, _ := models.ComputeVariance(baseline, d.TotalCarbonEmissions)
			return outcome{
				metric:      "Carbon Footprint",
				target:      baseline,
				performance: models.VariancePerformance(variance),
				period:      d.PostingDate.Time,
				partyType:   models.PartyCustomer,
				party:       d.Customer,
				remarks:     "Carbon emissions from Sales Invoice " + d.Name,
			}
		},
	},
	models.DocPurchaseInvoice: {
		measured: func(d *Document) float64 { return d.TotalCarbonEmissions },
		apply: func(d *Document, baseline float64) outcome {
			o := outcome{
				metric:       "Supplier Carbon Footprint",
				target:       baseline,
				performance:  models.PerformanceRed,
				verification: models.VerificationPending,
				period:       d.PostingDate.Time,
				partyType:    models.PartySupplier,
				party:        d.Supplier,
				remarks:      "Carbon emissions from Purchase Invoice " + d.Name,
			}
			if d.SupplierIsCarbonCertified {
				o.performance = models.PerformanceGreen
				o.verification = models.VerificationVerified
			}
			return o
		},
	},
	models.DocStockEntry: {
		measured: func(d *Document) float64 { return d.TotalCarbonImpact },
		apply: func(d *Document, baseline float64) outcome {
			o := outcome{
				metric:      d.Purpose + " Carbon Impact",
				target:      baseline,
				performance: models.PerformanceRed,
				period:      d.PostingDate.Time,
				partyType:   models.PartyWarehouse,
				party:       d.ToWarehouse,
				remarks:     fmt.Sprintf("Carbon impact from %s %s", d.Purpose, d.Name),
			}
			if d.Purpose == "Material Receipt" {
				o.performance = models.PerformanceGreen
			}
			if o.party == "" {
				o.party = d.FromWarehouse
			}
			return o
		},
	},
	models.DocWorkOrder: {
		measured: func(d *Document) float64 { return d.TotalWorkOrderEmissions },
		apply: func(d *Document, baseline float64) outcome {
			o := outcome{
				metric:      "Manufacturing Carbon Impact",
				target:      baseline,
				performance: models.PerformanceGreen,
				period:      d.PlannedStartDate.Time,
				partyType:   models.PartyItem,
				party:       d.ProductionItem,
				remarks:     fmt.Sprintf("Manufacturing emissions for %s (WO: %s)", d.ItemName, d.Name),
			}
			if d.RawMaterialEmissions+d.ManufacturingProcessEmissions > baseline {
				o.performance = models.PerformanceRed
			}
			return o
		},
	},
	models.DocProductionPlan: {
		measured: func(d *Document) float64 { return d.EstimatedCarbonEmissions },
		apply: func(d *Document, baseline float64) outcome {
			adjusted := baseline * (1 - d.CarbonReductionTarget/100)
			o := outcome{
				metric:      "Production Planning Carbon Impact",
				target:      adjusted,
				performance: models.PerformanceRed,
				period:      d.PostingDate.Time,
				partyType:   models.PartyProductionPlan,
				party:       d.Name,
				remarks: fmt.Sprintf("Estimated carbon emissions for Production Plan %s (Target reduction: %s%%)",
					d.Name, strconv.FormatFloat(d.CarbonReductionTarget, 'f', -1, 64)),
			}
			if d.EstimatedCarbonEmissions <= adjusted {
				o.performance = models.PerformanceGreen
			}
			return o
		},
	},
	models.DocDeliveryNote: {
		measured: func(d *Document) float64 { return d.TotalDeliveryEmissions },
		apply: func(d *Document, baseline float64) outcome {
			o := outcome{
				metric:      "Delivery Carbon Impact",
				target:      baseline,
				performance: models.PerformanceRed,
				period:      d.PostingDate.Time,
				partyType:   models.PartyCustomer,
				party:       d.Customer,
				remarks: fmt.Sprintf("Delivery emissions for %s (Product: %skg, Transport: %skg)",
					d.CustomerName,
					strconv.FormatFloat(d.ProductCarbonEmissions, 'f', -1, 64),
					strconv.FormatFloat(d.TransportCarbonEmissions, 'f', -1, 64)),
			}
			if d.TransportCarbonEmissions < d.ProductCarbonEmissions*0.1 {
				o.performance = models.PerformanceGreen
			}
			return o
		},
	},
}
