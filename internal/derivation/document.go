package derivation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"esgtrack/internal/esg/models"
	dErrors "esgtrack/pkg/domain-errors"
)

// Lifecycle events a host publishes for a document.
const (
	EventSubmit = "submit"
	EventCancel = "cancel"
)

// Event is the envelope published on the documents topic.
type Event struct {
	Event    string               `json:"event"`
	DocType  models.SourceDocType `json:"doctype"`
	Document Document             `json:"document"`
}

// Validate checks the envelope and copies the envelope doctype onto the document.
func (e *Event) Validate() error {
	e.Event = strings.ToLower(strings.TrimSpace(e.Event))
	if e.Event != EventSubmit && e.Event != EventCancel {
		return dErrors.New(dErrors.CodeValidation, "event must be submit or cancel")
	}
	if e.DocType == "" {
		e.DocType = e.Document.DocType
	}
	if !e.DocType.IsValid() {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unsupported document type %q", e.DocType))
	}
	e.Document.DocType = e.DocType
	if strings.TrimSpace(e.Document.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "document name is required")
	}
	return nil
}

// Document carries the fields of an ERP document that derivation reads.
// Emission fields are in kg CO2e; fields not used by a document type stay zero.
type Document struct {
	DocType          models.SourceDocType `json:"doctype"`
	Name             string               `json:"name"`
	Company          string               `json:"company"`
	PostingDate      Date                 `json:"posting_date"`
	PlannedStartDate Date                 `json:"planned_start_date"`

	Customer       string `json:"customer,omitempty"`
	CustomerName   string `json:"customer_name,omitempty"`
	Supplier       string `json:"supplier,omitempty"`
	Purpose        string `json:"purpose,omitempty"`
	FromWarehouse  string `json:"from_warehouse,omitempty"`
	ToWarehouse    string `json:"to_warehouse,omitempty"`
	ProductionItem string `json:"production_item,omitempty"`
	ItemName       string `json:"item_name,omitempty"`

	// Sales and purchase invoices
	TotalCarbonEmissions      float64 `json:"total_carbon_emissions_kg_co2e,omitempty"`
	SupplierIsCarbonCertified bool    `json:"supplier_is_carbon_certified,omitempty"`

	// Stock entries
	TotalCarbonImpact float64 `json:"total_carbon_impact_kg_co2e,omitempty"`

	// Work orders
	TotalWorkOrderEmissions       float64 `json:"total_work_order_emissions_kg_co2e,omitempty"`
	RawMaterialEmissions          float64 `json:"raw_material_emissions_kg_co2e,omitempty"`
	ManufacturingProcessEmissions float64 `json:"manufacturing_process_emissions_kg_co2e,omitempty"`

	// Production plans
	EstimatedCarbonEmissions float64 `json:"estimated_carbon_emissions_kg_co2e,omitempty"`
	CarbonReductionTarget    float64 `json:"carbon_reduction_target_percent,omitempty"`

	// Delivery notes
	TotalDeliveryEmissions   float64 `json:"total_delivery_emissions_kg_co2e,omitempty"`
	ProductCarbonEmissions   float64 `json:"product_carbon_emissions_kg_co2e,omitempty"`
	TransportCarbonEmissions float64 `json:"transport_carbon_emissions_kg_co2e,omitempty"`
}

// Date is a calendar date that accepts the layouts ERP hosts emit.
type Date struct {
	time.Time
}

var dateLayouts = []string{time.DateOnly, time.RFC3339, time.DateTime}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = models.Day(t)
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.DateOnly))
}

// ParseDocType accepts a document type by name ("Sales Invoice") or URL slug
// ("sales-invoice").
func ParseDocType(s string) (models.SourceDocType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	for _, t := range models.SourceDocTypes() {
		if strings.ToLower(string(t)) == norm {
			return t, nil
		}
	}
	return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unsupported document type %q", s))
}
