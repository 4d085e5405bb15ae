package reporting

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"esgtrack/internal/esg/models"
)

const (
	notSpecified = "Not Specified"
	defaultUnit  = "kg"
	monthLayout  = "Jan 2006"
)

// RowKind tells a report consumer how to render a row.
type RowKind string

const (
	RowData      RowKind = "data"
	RowGroup     RowKind = "group"
	RowSubtotal  RowKind = "subtotal"
	RowSeparator RowKind = "separator"
	RowSummary   RowKind = "summary"
)

// Column describes one report column.
type Column struct {
	Field string `json:"fieldname"`
	Label string `json:"label"`
	Type  string `json:"fieldtype"`
}

// EntryRow is one metric entry as shown in the analysis.
type EntryRow struct {
	PartyType          models.PartyType          `json:"party_type,omitempty"`
	Party              string                    `json:"party,omitempty"`
	Metric             string                    `json:"metric"`
	Category           models.Category           `json:"category,omitempty"`
	Company            string                    `json:"company"`
	CompanyName        string                    `json:"company_name,omitempty"`
	SourceDocType      models.SourceDocType      `json:"source_doctype,omitempty"`
	SourceDocument     string                    `json:"source_document,omitempty"`
	EntryDate          time.Time                 `json:"entry_date"`
	ReportingPeriod    models.Frequency          `json:"reporting_period"`
	MeasuredValue      float64                   `json:"measured_value"`
	Unit               string                    `json:"unit"`
	TargetValue        float64                   `json:"target_value"`
	Variance           float64                   `json:"variance"`
	VariancePercent    float64                   `json:"variance_percent"`
	Performance        models.Performance        `json:"performance"`
	DataSource         models.DataSource         `json:"data_source"`
	VerificationStatus models.VerificationStatus `json:"verification_status"`
	VerifiedBy         string                    `json:"verified_by,omitempty"`
}

// Totals aggregates a group of entries. Variance follows the entry
// convention: total target minus total measured.
type Totals struct {
	Count           int     `json:"count"`
	TotalMeasured   float64 `json:"total_measured"`
	TotalTarget     float64 `json:"total_target"`
	Variance        float64 `json:"variance"`
	VariancePercent float64 `json:"variance_percent"`
}

// Summary is the closing row of an analysis with show summary set.
type Summary struct {
	Totals
	Green        int    `json:"green"`
	Yellow       int    `json:"yellow"`
	Red          int    `json:"red"`
	Verified     int    `json:"verified"`
	Pending      int    `json:"pending"`
	Performance  string `json:"performance"`
	Verification string `json:"verification"`
}

// Row is a single analysis row. Which fields are set depends on Kind.
type Row struct {
	Kind    RowKind   `json:"kind"`
	Group   string    `json:"group_field,omitempty"`
	Entry   *EntryRow `json:"entry,omitempty"`
	Totals  *Totals   `json:"totals,omitempty"`
	Summary *Summary  `json:"summary,omitempty"`
}

// Analysis is the ESG analysis report.
type Analysis struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

func analysisColumns(f AnalysisFilters) []Column {
	cols := make([]Column, 0, 17)
	if f.GroupBy != GroupNone {
		cols = append(cols, Column{Field: "group_field", Label: fmt.Sprintf("Group (%s)", f.GroupBy), Type: "Data"})
	}
	cols = append(cols,
		Column{Field: "party_type", Label: "Party Type", Type: "Data"},
		Column{Field: "party", Label: "Party", Type: "Dynamic Link"},
		Column{Field: "metric", Label: "ESG Metric", Type: "Data"},
		Column{Field: "source_doctype", Label: "Source Type", Type: "Data"},
		Column{Field: "source_document", Label: "Source Document", Type: "Dynamic Link"},
		Column{Field: "entry_date", Label: "Entry Date", Type: "Date"},
		Column{Field: "reporting_period", Label: "Period", Type: "Data"},
		Column{Field: "measured_value", Label: "Measured Value", Type: "Float"},
		Column{Field: "unit", Label: "Unit", Type: "Data"},
	)
	if f.IncludeTargets {
		cols = append(cols,
			Column{Field: "target_value", Label: "Target Value", Type: "Float"},
			Column{Field: "variance", Label: "Variance", Type: "Float"},
			Column{Field: "variance_percent", Label: "Variance %", Type: "Percent"},
		)
	}
	return append(cols,
		Column{Field: "performance", Label: "Performance", Type: "Data"},
		Column{Field: "data_source", Label: "Data Source", Type: "Data"},
		Column{Field: "verification_status", Label: "Verification", Type: "Data"},
		Column{Field: "verified_by", Label: "Verified By", Type: "Link"},
	)
}

func toEntryRow(r *models.EntryRecord) *EntryRow {
	unit := r.Unit
	if unit == "" {
		unit = defaultUnit
	}
	return &EntryRow{
		PartyType:          r.PartyType,
		Party:              r.Party,
		Metric:             r.Metric,
		Category:           r.Category,
		Company:            r.Company,
		CompanyName:        r.CompanyName,
		SourceDocType:      r.SourceDocType,
		SourceDocument:     r.SourceDocument,
		EntryDate:          r.EntryDate,
		ReportingPeriod:    r.ReportingPeriod,
		MeasuredValue:      r.MeasuredValue,
		Unit:               unit,
		TargetValue:        r.TargetValue,
		Variance:           r.Variance,
		VariancePercent:    r.VariancePercent,
		Performance:        r.Performance,
		DataSource:         r.DataSource,
		VerificationStatus: r.VerificationStatus,
		VerifiedBy:         r.VerifiedBy,
	}
}

// groupKey returns the group label of a record, or "Not Specified".
func groupKey(r *models.EntryRecord, g GroupBy) string {
	var key string
	switch g {
	case GroupMetric:
		key = r.Metric
	case GroupCompany:
		key = r.Company
	case GroupSourceDocument:
		if r.SourceDocType != "" && r.SourceDocument != "" {
			key = fmt.Sprintf("%s: %s", r.SourceDocType, r.SourceDocument)
		}
	case GroupPartyType:
		if r.PartyType != "" && r.Party != "" {
			key = fmt.Sprintf("%s: %s", r.PartyType, r.Party)
		}
	case GroupMonth:
		if !r.EntryDate.IsZero() {
			key = r.EntryDate.Format(monthLayout)
		}
	case GroupQuarter:
		if !r.EntryDate.IsZero() {
			key = fmt.Sprintf("Q%d %d", (int(r.EntryDate.Month())-1)/3+1, r.EntryDate.Year())
		}
	case GroupYear:
		if !r.EntryDate.IsZero() {
			key = strconv.Itoa(r.EntryDate.Year())
		}
	case GroupPerformance:
		key = string(r.Performance)
	}
	if key == "" {
		return notSpecified
	}
	return key
}

func totalsOf(records []*models.EntryRecord) Totals {
	t := Totals{Count: len(records)}
	for _, r := range records {
		t.TotalMeasured += r.MeasuredValue
		t.TotalTarget += r.TargetValue
	}
	t.Variance, t.VariancePercent = models.ComputeVariance(t.TotalTarget, t.TotalMeasured)
	return t
}

// buildAnalysis lays out rows for already filtered and ordered records.
// Grouped output emits, per group, a header, its data rows and, when the
// group holds more than one entry, a subtotal and a separator.
func buildAnalysis(records []*models.EntryRecord, f AnalysisFilters) *Analysis {
	a := &Analysis{Columns: analysisColumns(f), Rows: []Row{}}

	if f.GroupBy == GroupNone {
		for _, r := range records {
			a.Rows = append(a.Rows, Row{Kind: RowData, Entry: toEntryRow(r)})
		}
	} else {
		groups := make(map[string][]*models.EntryRecord)
		for _, r := range records {
			k := groupKey(r, f.GroupBy)
			groups[k] = append(groups[k], r)
		}
		for _, k := range sortedGroupKeys(groups) {
			members := groups[k]
			a.Rows = append(a.Rows, Row{Kind: RowGroup, Group: k})
			for _, r := range members {
				a.Rows = append(a.Rows, Row{Kind: RowData, Group: k, Entry: toEntryRow(r)})
			}
			if len(members) > 1 {
				t := totalsOf(members)
				a.Rows = append(a.Rows,
					Row{Kind: RowSubtotal, Group: fmt.Sprintf("Subtotal (%d entries)", len(members)), Totals: &t},
					Row{Kind: RowSeparator},
				)
			}
		}
	}

	if f.ShowSummary && len(records) > 0 {
		s := summarize(records)
		a.Rows = append(a.Rows, Row{Kind: RowSummary, Summary: &s})
	}
	return a
}

// sortedGroupKeys orders groups ascending with "Not Specified" last.
func sortedGroupKeys(groups map[string][]*models.EntryRecord) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		if k != notSpecified {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := groups[notSpecified]; ok {
		keys = append(keys, notSpecified)
	}
	return keys
}

func summarize(records []*models.EntryRecord) Summary {
	s := Summary{Totals: totalsOf(records)}
	for _, r := range records {
		switch r.Performance {
		case models.PerformanceGreen:
			s.Green++
		case models.PerformanceYellow:
			s.Yellow++
		case models.PerformanceRed:
			s.Red++
		}
		switch r.VerificationStatus {
		case models.VerificationVerified:
			s.Verified++
		case models.VerificationPending:
			s.Pending++
		}
	}
	s.Performance = fmt.Sprintf("G:%d Y:%d R:%d", s.Green, s.Yellow, s.Red)
	s.Verification = fmt.Sprintf("V:%d P:%d", s.Verified, s.Pending)
	return s
}

// MonthlyTrend is the entry count and measured total of one calendar month.
type MonthlyTrend struct {
	Month      string  `json:"month"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
}

type VerificationStats struct {
	Verified int `json:"verified"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

// AnalysisChart feeds the analysis dashboard.
type AnalysisChart struct {
	PerformanceDistribution map[string]int    `json:"performance_distribution"`
	MonthlyTrends           []MonthlyTrend    `json:"monthly_trends"`
	TotalEntries            int               `json:"total_entries"`
	VerificationStats       VerificationStats `json:"verification_stats"`
}

func emptyChart() *AnalysisChart {
	return &AnalysisChart{
		PerformanceDistribution: map[string]int{},
		MonthlyTrends:           []MonthlyTrend{},
	}
}

// buildChart aggregates records; monthly trends come out oldest first.
func buildChart(records []*models.EntryRecord) *AnalysisChart {
	c := emptyChart()
	c.TotalEntries = len(records)

	type bucket struct {
		start time.Time
		trend MonthlyTrend
	}
	months := make(map[time.Time]*bucket)
	for _, r := range records {
		perf := string(r.Performance)
		if perf == "" {
			perf = "Not Set"
		}
		c.PerformanceDistribution[perf]++

		switch r.VerificationStatus {
		case models.VerificationVerified:
			c.VerificationStats.Verified++
		case models.VerificationPending:
			c.VerificationStats.Pending++
		case models.VerificationRejected:
			c.VerificationStats.Rejected++
		}

		if r.EntryDate.IsZero() {
			continue
		}
		start := time.Date(r.EntryDate.Year(), r.EntryDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		b, ok := months[start]
		if !ok {
			b = &bucket{start: start, trend: MonthlyTrend{Month: start.Format(monthLayout)}}
			months[start] = b
		}
		b.trend.Count++
		b.trend.TotalValue += r.MeasuredValue
	}

	buckets := make([]*bucket, 0, len(months))
	for _, b := range months {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].start.Before(buckets[j].start) })
	for _, b := range buckets {
		c.MonthlyTrends = append(c.MonthlyTrends, b.trend)
	}
	return c
}
