package reporting

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"esgtrack/internal/esg/models"
)

const (
	entryTypeMetric     = "ESG Metric"
	entryTypeInitiative = "Initiative"
	initiativeSource    = "ESG Initiative"
	initiativePrefix    = "Initiative: "
	inProgress          = "In Progress"
)

// ActivityRow is one line of the activity log: a metric entry or an initiative.
type ActivityRow struct {
	Date         time.Time          `json:"entry_date"`
	ActivityType string             `json:"activity_type"`
	SourceType   string             `json:"source_type"`
	SourceName   string             `json:"source_name"`
	PartyType    models.PartyType   `json:"party_type,omitempty"`
	Party        string             `json:"party,omitempty"`
	ImpactValue  float64            `json:"impact_value"`
	Performance  models.Performance `json:"performance"`
	Verification string             `json:"verification"`
	Company      string             `json:"company"`
	EntryType    string             `json:"entry_type"`
}

type BarChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// DonutChart counts Green and Red activities.
type DonutChart struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type ActivityChart struct {
	Impact      BarChart    `json:"impact"`
	Performance *DonutChart `json:"performance,omitempty"`
}

// SummaryCard is one headline figure above the activity log.
type SummaryCard struct {
	Label     string `json:"label"`
	Value     any    `json:"value"`
	Datatype  string `json:"datatype"`
	Indicator string `json:"indicator"`
}

type ActivityLog struct {
	Rows    []ActivityRow `json:"rows"`
	Chart   ActivityChart `json:"chart"`
	Summary []SummaryCard `json:"summary"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func metricActivity(r *models.EntryRecord) ActivityRow {
	return ActivityRow{
		Date:         r.EntryDate,
		ActivityType: strings.TrimSpace(strings.ReplaceAll(r.Metric, "Carbon Impact", "")),
		SourceType:   string(r.SourceDocType),
		SourceName:   r.SourceDocument,
		PartyType:    r.PartyType,
		Party:        r.Party,
		ImpactValue:  round2(r.MeasuredValue),
		Performance:  r.Performance,
		Verification: string(r.VerificationStatus),
		Company:      r.Company,
		EntryType:    entryTypeMetric,
	}
}

func initiativeActivity(i *models.Initiative, now time.Time) ActivityRow {
	verification := inProgress
	if i.Status == models.InitiativeCompleted {
		verification = string(models.VerificationVerified)
	}
	return ActivityRow{
		Date:         models.Day(i.CreatedAt),
		ActivityType: initiativePrefix + i.Name,
		SourceType:   initiativeSource,
		SourceName:   i.ID.String(),
		PartyType:    models.PartyEmployee,
		Party:        i.ResponsiblePerson,
		ImpactValue:  round2(i.Budget),
		Performance:  i.ActivityPerformance(now),
		Verification: verification,
		Company:      i.Company,
		EntryType:    entryTypeInitiative,
	}
}

// buildActivityLog merges both sources newest first. Rows on the same day
// keep metric entries ahead of initiatives.
func buildActivityLog(records []*models.EntryRecord, initiatives []*models.Initiative, now time.Time) *ActivityLog {
	rows := make([]ActivityRow, 0, len(records)+len(initiatives))
	for _, r := range records {
		rows = append(rows, metricActivity(r))
	}
	for _, i := range initiatives {
		rows = append(rows, initiativeActivity(i, now))
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Date.After(rows[b].Date) })

	return &ActivityLog{
		Rows:    rows,
		Chart:   activityChart(rows),
		Summary: activitySummary(rows),
	}
}

func emptyActivityLog() *ActivityLog {
	return buildActivityLog(nil, nil, time.Time{})
}

func activityChart(rows []ActivityRow) ActivityChart {
	chart := ActivityChart{Impact: BarChart{Labels: []string{}, Values: []float64{}}}
	index := make(map[string]int)
	var green, red int
	for _, r := range rows {
		label := strings.TrimPrefix(r.ActivityType, initiativePrefix)
		i, ok := index[label]
		if !ok {
			i = len(chart.Impact.Labels)
			index[label] = i
			chart.Impact.Labels = append(chart.Impact.Labels, label)
			chart.Impact.Values = append(chart.Impact.Values, 0)
		}
		chart.Impact.Values[i] += r.ImpactValue

		switch r.Performance {
		case models.PerformanceGreen:
			green++
		case models.PerformanceRed:
			red++
		}
	}
	for i, v := range chart.Impact.Values {
		chart.Impact.Values[i] = round2(v)
	}
	if green+red > 0 {
		chart.Performance = &DonutChart{
			Labels: []string{"Green Performance", "Red Performance"},
			Values: []int{green, red},
		}
	}
	return chart
}

func activitySummary(rows []ActivityRow) []SummaryCard {
	var total float64
	var green, red, verified int
	for _, r := range rows {
		total += r.ImpactValue
		switch r.Performance {
		case models.PerformanceGreen:
			green++
		case models.PerformanceRed:
			red++
		}
		if r.Verification == string(models.VerificationVerified) {
			verified++
		}
	}

	var score float64
	if len(rows) > 0 {
		score = float64(green) / float64(len(rows)) * 100
	}
	indicator := "red"
	if green > red {
		indicator = "green"
	}

	return []SummaryCard{
		{Label: "Total Carbon Impact (kg CO2e)", Value: round2(total), Datatype: "Float", Indicator: "blue"},
		{Label: "Total Entries", Value: len(rows), Datatype: "Int", Indicator: "gray"},
		{Label: "Green Performance", Value: green, Datatype: "Int", Indicator: "green"},
		{Label: "Red Performance", Value: red, Datatype: "Int", Indicator: "red"},
		{Label: "Verified Entries", Value: verified, Datatype: "Int", Indicator: "blue"},
		{Label: "Performance Score", Value: fmt.Sprintf("%.1f%%", score), Datatype: "Percentage", Indicator: indicator},
	}
}
