package models

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "esgtrack/pkg/domain-errors"
)

type ReportType string

const (
	ReportMonthly    ReportType = "Monthly"
	ReportQuarterly  ReportType = "Quarterly"
	ReportHalfYearly ReportType = "Half Yearly"
	ReportAnnual     ReportType = "Annual"
	ReportCustom     ReportType = "Custom"
	ReportRegulatory ReportType = "Regulatory"
)

func (t ReportType) IsValid() bool {
	switch t {
	case ReportMonthly, ReportQuarterly, ReportHalfYearly, ReportAnnual, ReportCustom, ReportRegulatory:
		return true
	}
	return false
}

type ComplianceStatus string

const (
	ComplianceFull      ComplianceStatus = "Fully Compliant"
	ComplianceMostly    ComplianceStatus = "Mostly Compliant"
	CompliancePartially ComplianceStatus = "Partially Compliant"
	ComplianceNone      ComplianceStatus = "Non-Compliant"
)

// ComplianceStatusFor maps a weighted green share in percent to a status.
func ComplianceStatusFor(score float64) ComplianceStatus {
	switch {
	case score >= 90:
		return ComplianceFull
	case score >= 75:
		return ComplianceMostly
	case score >= 50:
		return CompliancePartially
	default:
		return ComplianceNone
	}
}

type MetricTrend string

const (
	TrendImproving MetricTrend = "Improving"
	TrendStable    MetricTrend = "Stable"
	TrendDeclining MetricTrend = "Declining"
)

// stableBand is the relative change, in percent of the previous value, still
// reported as Stable.
const stableBand = 1.0

// ReportCategory selects an ESG category for the report and weighs it in the
// compliance score.
type ReportCategory struct {
	Category Category `json:"category"`
	Include  bool     `json:"include"`
	Weight   float64  `json:"weight"`
}

// ReportMetric is one row of the metric analysis: the period's totals for a
// metric against the preceding period of equal length.
type ReportMetric struct {
	Metric        string      `json:"metric"`
	Category      Category    `json:"category"`
	CurrentValue  float64     `json:"current_value"`
	TargetValue   float64     `json:"target_value"`
	PreviousValue float64     `json:"previous_value"`
	Trend         MetricTrend `json:"trend"`
	Entries       int         `json:"entries"`
	Green         int         `json:"green"`
}

type Risk struct {
	Area           string `json:"risk_area"`
	Level          string `json:"risk_level,omitempty"`
	Probability    string `json:"probability,omitempty"`
	Impact         string `json:"impact,omitempty"`
	MitigationPlan string `json:"mitigation_plan,omitempty"`
}

type ActionItem struct {
	Action      string     `json:"action"`
	Priority    string     `json:"priority,omitempty"`
	Responsible string     `json:"responsible,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
}

// ComplianceReport is a company's ESG compliance report for a reporting
// period. MetricAnalysis, ComplianceScore and ComplianceStatus are computed
// from the period's metric entries when the report is generated.
type ComplianceReport struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"report_name"`
	Company          string           `json:"company"`
	Type             ReportType       `json:"report_type"`
	PeriodFrom       time.Time        `json:"reporting_period_from"`
	PeriodTo         time.Time        `json:"reporting_period_to"`
	Categories       []ReportCategory `json:"esg_categories"`
	Summary          string           `json:"summary,omitempty"`
	MetricAnalysis   []ReportMetric   `json:"metric_analysis"`
	ComplianceScore  float64          `json:"compliance_score"`
	ComplianceStatus ComplianceStatus `json:"compliance_status,omitempty"`
	Risks            []Risk           `json:"risk_assessment"`
	ActionItems      []ActionItem     `json:"action_items"`
	Recommendations  string           `json:"recommendations,omitempty"`
	PreparedBy       string           `json:"prepared_by"`
	GeneratedOn      time.Time        `json:"generated_on"`
}

var (
	riskLevels   = map[string]bool{"": true, "Low": true, "Medium": true, "High": true, "Critical": true}
	likelihoods  = map[string]bool{"": true, "Low": true, "Medium": true, "High": true}
	actionRanks  = map[string]bool{"": true, "Low": true, "Medium": true, "High": true, "Urgent": true}
	actionStates = map[string]bool{"Open": true, "In Progress": true, "Completed": true, "Overdue": true}
)

// NewComplianceReport validates a report request. Without categories every
// ESG category is included with equal weight.
func NewComplianceReport(r ComplianceReport, now time.Time) (*ComplianceReport, error) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "report name is required")
	}
	if r.Company == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "company is required")
	}
	if r.Type == "" {
		r.Type = ReportQuarterly
	}
	if !r.Type.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown report type")
	}
	if r.PeriodFrom.IsZero() || r.PeriodTo.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reporting period is required")
	}
	r.PeriodFrom, r.PeriodTo = Day(r.PeriodFrom), Day(r.PeriodTo)
	if r.PeriodTo.Before(r.PeriodFrom) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reporting period to cannot be before period from")
	}
	if r.PreparedBy == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "prepared by is required")
	}

	if len(r.Categories) == 0 {
		for _, c := range Categories() {
			r.Categories = append(r.Categories, ReportCategory{Category: c, Include: true})
		}
	}
	seen := make(map[Category]bool, len(r.Categories))
	var weights float64
	for _, c := range r.Categories {
		if !c.Category.IsValid() {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown report category")
		}
		if seen[c.Category] {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "category "+string(c.Category)+" is listed twice")
		}
		seen[c.Category] = true
		if c.Weight < 0 || c.Weight > 100 {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "category weight must be between 0 and 100")
		}
		if c.Include {
			weights += c.Weight
		}
	}
	if weights > 100 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "included category weights exceed 100")
	}

	for _, risk := range r.Risks {
		if strings.TrimSpace(risk.Area) == "" {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "risk area is required")
		}
		if !riskLevels[risk.Level] || !likelihoods[risk.Probability] || !likelihoods[risk.Impact] {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown risk rating for "+risk.Area)
		}
	}
	r.ActionItems = append([]ActionItem(nil), r.ActionItems...)
	for i, a := range r.ActionItems {
		if strings.TrimSpace(a.Action) == "" {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "action is required")
		}
		if a.Status == "" {
			r.ActionItems[i].Status = "Open"
		}
		if !actionRanks[a.Priority] || !actionStates[r.ActionItems[i].Status] {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown priority or status for action "+a.Action)
		}
	}
	if r.Risks == nil {
		r.Risks = []Risk{}
	}
	if r.ActionItems == nil {
		r.ActionItems = []ActionItem{}
	}
	r.MetricAnalysis = []ReportMetric{}
	r.ComplianceScore = 0
	r.ComplianceStatus = ""
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.GeneratedOn = now
	return &r, nil
}

// PreviousPeriod returns the period of equal length ending the day before PeriodFrom.
func (r *ComplianceReport) PreviousPeriod() (from, to time.Time) {
	days := daysBetween(r.PeriodFrom, r.PeriodTo)
	to = r.PeriodFrom.AddDate(0, 0, -1)
	return to.AddDate(0, 0, -days), to
}

// categoryOf places an entry in a report category. Entries whose metric has
// no definition come from document derivation and are carbon figures.
func categoryOf(e *EntryRecord) Category {
	if e.Category == "" {
		return CategoryEnvironmental
	}
	return e.Category
}

// Assess fills the metric analysis and the compliance score and status.
// current and previous are the entries of the reporting period and the one
// before it; rejected entries are ignored. higherIsBetter names metrics whose
// values should grow; all others are expected to shrink.
func (r *ComplianceReport) Assess(current, previous []*EntryRecord, higherIsBetter map[string]bool) {
	weights := make(map[Category]float64)
	for _, c := range r.Categories {
		if c.Include {
			weights[c.Category] = c.Weight
		}
	}

	rows := make(map[string]*ReportMetric)
	for _, e := range current {
		cat := categoryOf(e)
		if _, ok := weights[cat]; !ok || e.VerificationStatus == VerificationRejected {
			continue
		}
		row, ok := rows[e.Metric]
		if !ok {
			row = &ReportMetric{Metric: e.Metric, Category: cat}
			rows[e.Metric] = row
		}
		row.CurrentValue += e.MeasuredValue
		row.TargetValue += e.TargetValue
		row.Entries++
		if e.Performance == PerformanceGreen {
			row.Green++
		}
	}
	seenBefore := make(map[string]bool)
	for _, e := range previous {
		row, ok := rows[e.Metric]
		if !ok || e.VerificationStatus == VerificationRejected {
			continue
		}
		row.PreviousValue += e.MeasuredValue
		seenBefore[e.Metric] = true
	}

	r.MetricAnalysis = make([]ReportMetric, 0, len(rows))
	for name, row := range rows {
		row.Trend = TrendStable
		if seenBefore[name] {
			row.Trend = trendOf(row.CurrentValue, row.PreviousValue, higherIsBetter[name])
		}
		row.CurrentValue = round2(row.CurrentValue)
		row.TargetValue = round2(row.TargetValue)
		row.PreviousValue = round2(row.PreviousValue)
		r.MetricAnalysis = append(r.MetricAnalysis, *row)
	}
	sort.Slice(r.MetricAnalysis, func(i, j int) bool {
		a, b := r.MetricAnalysis[i], r.MetricAnalysis[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Metric < b.Metric
	})

	r.ComplianceScore, r.ComplianceStatus = 0, ""
	if len(r.MetricAnalysis) == 0 {
		return
	}
	r.ComplianceScore = round2(weightedGreenShare(r.MetricAnalysis, weights))
	r.ComplianceStatus = ComplianceStatusFor(r.ComplianceScore)
}

func trendOf(current, previous float64, higherIsBetter bool) MetricTrend {
	change := current - previous
	if previous == 0 {
		if change == 0 {
			return TrendStable
		}
	} else if math.Abs(change)/math.Abs(previous)*100 <= stableBand {
		return TrendStable
	}
	if (change > 0) == higherIsBetter {
		return TrendImproving
	}
	return TrendDeclining
}

// weightedGreenShare averages the green share of each category with entries,
// weighted by category weight. All-zero weights count equally.
func weightedGreenShare(rows []ReportMetric, weights map[Category]float64) float64 {
	type tally struct{ green, total int }
	byCat := make(map[Category]*tally)
	for _, row := range rows {
		t, ok := byCat[row.Category]
		if !ok {
			t = &tally{}
			byCat[row.Category] = t
		}
		t.green += row.Green
		t.total += row.Entries
	}

	var weightSum float64
	for c := range byCat {
		weightSum += weights[c]
	}
	var score, norm float64
	for c, t := range byCat {
		w := weights[c]
		if weightSum == 0 {
			w = 1
		}
		score += w * float64(t.green) / float64(t.total) * 100
		norm += w
	}
	if norm == 0 {
		return 0
	}
	return score / norm
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
