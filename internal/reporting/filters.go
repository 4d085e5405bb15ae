package reporting

import (
	"fmt"
	"strings"
	"time"

	"esgtrack/internal/esg/models"
	dErrors "esgtrack/pkg/domain-errors"
)

// GroupBy selects how analysis rows are grouped.
type GroupBy string

const (
	GroupNone           GroupBy = ""
	GroupMetric         GroupBy = "Metric"
	GroupCompany        GroupBy = "Company"
	GroupSourceDocument GroupBy = "Source Document"
	GroupPartyType      GroupBy = "Party Type"
	GroupMonth          GroupBy = "Month"
	GroupQuarter        GroupBy = "Quarter"
	GroupYear           GroupBy = "Year"
	GroupPerformance    GroupBy = "Performance"
)

// ParseGroupBy accepts a group name case-insensitively. "None" and "" mean ungrouped.
func ParseGroupBy(s string) (GroupBy, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return GroupNone, nil
	}
	for _, g := range []GroupBy{
		GroupMetric, GroupCompany, GroupSourceDocument, GroupPartyType,
		GroupMonth, GroupQuarter, GroupYear, GroupPerformance,
	} {
		if strings.EqualFold(s, string(g)) {
			return g, nil
		}
	}
	return GroupNone, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown group by %q", s))
}

// AnalysisFilters selects and shapes the ESG analysis report.
type AnalysisFilters struct {
	Company            string
	Metric             string
	SourceDocType      models.SourceDocType
	PartyType          models.PartyType
	Party              string
	From               time.Time
	To                 time.Time
	Performance        models.Performance
	VerificationStatus models.VerificationStatus
	DataSource         models.DataSource
	GroupBy            GroupBy
	IncludeTargets     bool
	ShowSummary        bool
}

// normalize defaults the window to the twelve months ending today and
// rejects inverted windows and unknown enum values.
func (f *AnalysisFilters) normalize(now time.Time) error {
	today := models.Day(now)
	if f.To.IsZero() {
		f.To = today
	}
	if f.From.IsZero() {
		f.From = today.AddDate(0, -12, 0)
	}
	f.From, f.To = models.Day(f.From), models.Day(f.To)
	if f.From.After(f.To) {
		return dErrors.New(dErrors.CodeValidation, "from date cannot be after to date")
	}
	return validateEnums(f.SourceDocType, f.PartyType, f.Performance, f.VerificationStatus, f.DataSource)
}

func (f *AnalysisFilters) entryFilter() models.EntryFilter {
	return models.EntryFilter{
		Company:            f.Company,
		Metric:             f.Metric,
		SourceDocType:      f.SourceDocType,
		PartyType:          f.PartyType,
		Party:              f.Party,
		From:               f.From,
		To:                 f.To,
		Performance:        f.Performance,
		VerificationStatus: f.VerificationStatus,
		DataSource:         f.DataSource,
	}
}

// ActivityFilters selects the ESG activity log. Company is required.
type ActivityFilters struct {
	Company            string
	From               time.Time
	To                 time.Time
	SourceDocType      models.SourceDocType
	ActivityType       string
	Performance        models.Performance
	IncludeInitiatives bool
}

func (f *ActivityFilters) normalize(now time.Time) error {
	f.Company = strings.TrimSpace(f.Company)
	if f.Company == "" {
		return dErrors.New(dErrors.CodeValidation, "company is required")
	}
	today := models.Day(now)
	if f.To.IsZero() {
		f.To = today
	}
	if f.From.IsZero() {
		f.From = today.AddDate(0, -1, 0)
	}
	f.From, f.To = models.Day(f.From), models.Day(f.To)
	if f.From.After(f.To) {
		return dErrors.New(dErrors.CodeValidation, "from date cannot be after to date")
	}
	return validateEnums(f.SourceDocType, "", f.Performance, "", "")
}

func validateEnums(
	docType models.SourceDocType,
	partyType models.PartyType,
	perf models.Performance,
	verification models.VerificationStatus,
	source models.DataSource,
) error {
	switch {
	case docType != "" && !docType.IsValid():
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown source document type %q", docType))
	case partyType != "" && !partyType.IsValid():
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown party type %q", partyType))
	case perf != models.PerformanceNone && !perf.IsValid():
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown performance %q", perf))
	case verification != "" && !verification.IsValid():
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown verification status %q", verification))
	case source != "" && !source.IsValid():
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown data source %q", source))
	}
	return nil
}
