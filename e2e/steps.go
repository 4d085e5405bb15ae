package e2e

import (
	"github.com/cucumber/godog"

	"esgtrack/e2e/steps/common"
	"esgtrack/e2e/steps/derivation"
	"esgtrack/e2e/steps/records"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register ERP document hook steps
	derivation.RegisterSteps(ctx, tc)

	// Register records API steps
	records.RegisterSteps(ctx, tc)
}
