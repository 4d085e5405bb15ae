package models

import (
	"time"

	dErrors "esgtrack/pkg/domain-errors"
)

// CompanySettings holds the ESG configuration of one company.
type CompanySettings struct {
	Company               string    `json:"company"`
	CompanyName           string    `json:"company_name,omitempty"`
	BaselineEmissions     *float64  `json:"baseline_emissions_tonnes_co2e,omitempty"`
	BaselineYear          *int      `json:"baseline_year,omitempty"`
	AnnualReductionTarget *float64  `json:"annual_emission_reduction_target,omitempty"`
	NetZeroTargetYear     *int      `json:"net_zero_target_year,omitempty"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Validate checks the settings before they are stored.
func (c *CompanySettings) Validate() error {
	if c.Company == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "company is required")
	}
	if c.BaselineEmissions != nil && *c.BaselineEmissions < 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "baseline emissions cannot be negative")
	}
	if c.AnnualReductionTarget != nil && (*c.AnnualReductionTarget < 0 || *c.AnnualReductionTarget > 100) {
		return dErrors.New(dErrors.CodeInvariantViolation, "annual reduction target must be between 0 and 100")
	}
	if c.BaselineYear != nil && c.NetZeroTargetYear != nil && *c.NetZeroTargetYear < *c.BaselineYear {
		return dErrors.New(dErrors.CodeInvariantViolation, "net zero target year cannot precede the baseline year")
	}
	return nil
}

// Baseline returns the configured baseline, or fallback when none is set.
// A zero baseline counts as unset.
func (c *CompanySettings) Baseline(fallback float64) float64 {
	if c == nil || c.BaselineEmissions == nil || *c.BaselineEmissions == 0 {
		return fallback
	}
	return *c.BaselineEmissions
}
