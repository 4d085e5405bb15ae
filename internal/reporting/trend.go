package reporting

import (
	"time"

	"esgtrack/internal/esg/models"
)

const (
	trendPoints   = 6
	trendStepDays = 30
)

var categoryColors = map[models.Category]string{
	models.CategoryEnvironmental: "#4ade80",
	models.CategorySocial:        "#60a5fa",
	models.CategoryGovernance:    "#a78bfa",
}

type TrendDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	Color string    `json:"color"`
}

// Trend is the overview chart: mean initiative progress per category.
type Trend struct {
	Labels   []string       `json:"labels"`
	Datasets []TrendDataset `json:"datasets"`
}

func emptyTrend() *Trend {
	return &Trend{Labels: []string{}, Datasets: []TrendDataset{}}
}

// buildTrend samples six points thirty days apart, the last one today.
func buildTrend(initiatives []*models.Initiative, now time.Time) *Trend {
	today := models.Day(now)
	points := make([]time.Time, trendPoints)
	t := &Trend{Labels: make([]string, trendPoints)}
	for k := range trendPoints {
		at := today.AddDate(0, 0, -trendStepDays*(trendPoints-1-k))
		points[k] = at
		t.Labels[k] = at.Format(monthLayout)
	}

	for _, c := range models.Categories() {
		var members []*models.Initiative
		for _, i := range initiatives {
			if i.Category == c {
				members = append(members, i)
			}
		}
		ds := TrendDataset{Label: string(c), Data: make([]float64, trendPoints), Color: categoryColors[c]}
		if len(members) > 0 {
			for k, at := range points {
				var sum float64
				for _, i := range members {
					sum += i.Progress(at)
				}
				ds.Data[k] = round2(sum / float64(len(members)))
			}
		}
		t.Datasets = append(t.Datasets, ds)
	}
	return t
}
