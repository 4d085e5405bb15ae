package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "esgtrack/pkg/domain-errors"
)

// Metric is an ESG metric definition. Entries reference it by Name.
//
// Thresholds are optional. When both green and red are set their order gives
// the direction: green below red means lower values are better (emissions,
// energy), green above red means higher values are better (satisfaction,
// training hours).
type Metric struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"metric_name"`
	Code              string    `json:"metric_code,omitempty"`
	Company           string    `json:"company"`
	Category          Category  `json:"category"`
	SubCategory       string    `json:"sub_category,omitempty"`
	Unit              string    `json:"unit"`
	Description       string    `json:"description,omitempty"`
	Frequency         Frequency `json:"frequency"`
	CollectionMethod  string    `json:"collection_method,omitempty"`
	TargetValue       *float64  `json:"target_value,omitempty"`
	BenchmarkValue    *float64  `json:"benchmark_value,omitempty"`
	ImprovementTarget *float64  `json:"improvement_target,omitempty"`
	ThresholdRed      *float64  `json:"threshold_red,omitempty"`
	ThresholdYellow   *float64  `json:"threshold_yellow,omitempty"`
	ThresholdGreen    *float64  `json:"threshold_green,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewMetric validates and builds a metric definition.
func NewMetric(m Metric, now time.Time) (*Metric, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Code = strings.TrimSpace(m.Code)
	if m.Name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "metric name is required")
	}
	if m.Company == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "company is required")
	}
	if !m.Category.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "category must be Environmental, Social or Governance")
	}
	if m.Unit == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unit is required")
	}
	if m.Frequency == "" {
		m.Frequency = FrequencyMonthly
	}
	if !m.Frequency.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown reporting frequency")
	}
	if err := m.validateThresholds(); err != nil {
		return nil, err
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = now
	return &m, nil
}

// validateThresholds requires yellow, when present with both bounds, to sit between them.
func (m *Metric) validateThresholds() error {
	if m.ThresholdGreen == nil || m.ThresholdRed == nil || m.ThresholdYellow == nil {
		return nil
	}
	g, y, r := *m.ThresholdGreen, *m.ThresholdYellow, *m.ThresholdRed
	if (g <= r && (y < g || y > r)) || (g > r && (y > g || y < r)) {
		return dErrors.New(dErrors.CodeInvariantViolation, "yellow threshold must lie between green and red thresholds")
	}
	return nil
}

// HasThresholds reports whether threshold evaluation applies.
func (m *Metric) HasThresholds() bool {
	return m.ThresholdGreen != nil && m.ThresholdRed != nil && *m.ThresholdGreen != *m.ThresholdRed
}

// LowerIsBetter reports the threshold direction. Only meaningful with thresholds.
func (m *Metric) LowerIsBetter() bool {
	return *m.ThresholdGreen < *m.ThresholdRed
}

// Evaluate classifies a measured value. Without thresholds the variance rule
// against the target applies; without a target there is no indicator.
func (m *Metric) Evaluate(value float64) Performance {
	if !m.HasThresholds() {
		if m.TargetValue == nil {
			return PerformanceNone
		}
		return VariancePerformance(*m.TargetValue - value)
	}

	green, red := *m.ThresholdGreen, *m.ThresholdRed
	if m.LowerIsBetter() {
		switch {
		case value <= green:
			return PerformanceGreen
		case m.ThresholdYellow != nil && value <= *m.ThresholdYellow:
			return PerformanceYellow
		case m.ThresholdYellow == nil && value < red:
			return PerformanceYellow
		default:
			return PerformanceRed
		}
	}
	switch {
	case value >= green:
		return PerformanceGreen
	case m.ThresholdYellow != nil && value >= *m.ThresholdYellow:
		return PerformanceYellow
	case m.ThresholdYellow == nil && value > red:
		return PerformanceYellow
	default:
		return PerformanceRed
	}
}
