package derivation

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any, headers map[string]string) error
	POSTRaw(path, body string, headers map[string]string) error
	Save(name, value string)
	AccessToken() string
}

// RegisterSteps registers ERP document hook step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &derivationSteps{tc: tc}

	ctx.Step(`^a unique name "([^"]*)"$`, steps.uniqueName)
	ctx.Step(`^I submit a "([^"]*)" named "([^"]*)" for company "([^"]*)" with (\d+(?:\.\d+)?) kg of emissions$`, steps.submit)
	ctx.Step(`^I cancel the "([^"]*)" named "([^"]*)"$`, steps.cancel)
	ctx.Step(`^I POST raw "([^"]*)" to "([^"]*)" as the ERP host$`, steps.postRaw)
}

type derivationSteps struct {
	tc    TestContext
	names map[string]string
}

// emissionField maps a document type to the field derivation reads.
var emissionField = map[string]string{
	"sales-invoice":    "total_carbon_emissions_kg_co2e",
	"purchase-invoice": "total_carbon_emissions_kg_co2e",
	"stock-entry":      "total_carbon_impact_kg_co2e",
	"work-order":       "total_work_order_emissions_kg_co2e",
	"production-plan":  "estimated_carbon_emissions_kg_co2e",
	"delivery-note":    "total_delivery_emissions_kg_co2e",
}

func (s *derivationSteps) uniqueName(ctx context.Context, alias string) error {
	if s.names == nil {
		s.names = make(map[string]string)
	}
	name := fmt.Sprintf("%s-%d", alias, time.Now().UnixNano())
	s.names[alias] = name
	s.tc.Save(alias, name)
	return nil
}

// hookHeaders carries the bearer token hooks require.
func (s *derivationSteps) hookHeaders() (map[string]string, error) {
	token := s.tc.AccessToken()
	if token == "" {
		return nil, fmt.Errorf("no access token configured")
	}
	return map[string]string{"Authorization": "Bearer " + token}, nil
}

func (s *derivationSteps) resolve(alias string) string {
	if name, ok := s.names[alias]; ok {
		return name
	}
	return alias
}

func (s *derivationSteps) submit(ctx context.Context, docType, alias, company string, emissions float64) error {
	field, ok := emissionField[docType]
	if !ok {
		return fmt.Errorf("unknown document type %q", docType)
	}
	body := map[string]any{
		"name":         s.resolve(alias),
		"company":      company,
		"customer":     "E2E-CUSTOMER",
		"supplier":     "E2E-SUPPLIER",
		"posting_date": time.Now().UTC().Format(time.DateOnly),
		field:          emissions,
	}
	headers, err := s.hookHeaders()
	if err != nil {
		return err
	}
	return s.tc.POST("/hooks/"+docType+"/submit", body, headers)
}

func (s *derivationSteps) cancel(ctx context.Context, docType, alias string) error {
	headers, err := s.hookHeaders()
	if err != nil {
		return err
	}
	return s.tc.POST("/hooks/"+docType+"/cancel", map[string]any{"name": s.resolve(alias)}, headers)
}

func (s *derivationSteps) postRaw(ctx context.Context, body, path string) error {
	headers, err := s.hookHeaders()
	if err != nil {
		return err
	}
	return s.tc.POSTRaw(path, body, headers)
}
