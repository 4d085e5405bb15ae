package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "esgtrack/pkg/domain-errors"
)

// SupportingDocument points at evidence for an entry.
type SupportingDocument struct {
	DocumentType string `json:"document_type"`
	DocumentName string `json:"document_name"`
}

// MetricEntry is one measured value of a metric for a company and period.
//
// Invariants:
//   - Variance = TargetValue - MeasuredValue
//   - VariancePercent = Variance / TargetValue * 100, or 0 when TargetValue is 0
//   - System-generated entries carry SourceDocType and SourceDocument; a
//     cancelled document removes every entry pointing at it
type MetricEntry struct {
	ID                  uuid.UUID            `json:"id"`
	Metric              string               `json:"metric"`
	Company             string               `json:"company"`
	EntryDate           time.Time            `json:"entry_date"`
	ReportingPeriod     Frequency            `json:"reporting_period"`
	PeriodFrom          time.Time            `json:"period_from"`
	PeriodTo            time.Time            `json:"period_to"`
	Value               float64              `json:"value"`
	MeasuredValue       float64              `json:"measured_value"`
	TargetValue         float64              `json:"target_value"`
	Unit                string               `json:"unit"`
	Variance            float64              `json:"variance"`
	VariancePercent     float64              `json:"variance_percent"`
	Performance         Performance          `json:"performance"`
	DataSource          DataSource           `json:"data_source"`
	SourceDocType       SourceDocType        `json:"source_doctype,omitempty"`
	SourceDocument      string               `json:"source_document,omitempty"`
	VerificationStatus  VerificationStatus   `json:"verification_status"`
	VerifiedBy          string               `json:"verified_by,omitempty"`
	VerificationDate    *time.Time           `json:"verification_date,omitempty"`
	PartyType           PartyType            `json:"party_type,omitempty"`
	Party               string               `json:"party,omitempty"`
	Remarks             string               `json:"remarks,omitempty"`
	SupportingDocuments []SupportingDocument `json:"supporting_documents"`
	CreatedAt           time.Time            `json:"created_at"`
}

// ManualEntry is a user-submitted entry. A nil Target falls back to the
// metric's target; an explicit zero is kept.
type ManualEntry struct {
	Entry  MetricEntry
	Target *float64
}

// ComputeVariance returns target - measured and its share of the target in percent.
func ComputeVariance(target, measured float64) (variance, percent float64) {
	variance = target - measured
	if target != 0 {
		percent = variance / target * 100
	}
	return variance, percent
}

// NewMetricEntry validates an entry and fills derived fields. Variance is
// always recomputed from target and measured value; performance is kept as
// given because its rule depends on where the entry came from.
func NewMetricEntry(e MetricEntry, now time.Time) (*MetricEntry, error) {
	e.Metric = strings.TrimSpace(e.Metric)
	if e.Metric == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "metric is required")
	}
	if e.Company == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "company is required")
	}
	if e.EntryDate.IsZero() {
		e.EntryDate = Day(now)
	}
	if e.PeriodFrom.IsZero() {
		e.PeriodFrom = e.EntryDate
	}
	if e.PeriodTo.IsZero() {
		e.PeriodTo = e.PeriodFrom
	}
	if e.PeriodTo.Before(e.PeriodFrom) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "period to cannot be before period from")
	}
	if e.ReportingPeriod == "" {
		e.ReportingPeriod = FrequencyDaily
	}
	if !e.ReportingPeriod.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown reporting period")
	}
	if e.DataSource == "" {
		e.DataSource = DataSourceManual
	}
	if !e.DataSource.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown data source")
	}
	if e.VerificationStatus == "" {
		e.VerificationStatus = VerificationPending
	}
	if !e.VerificationStatus.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown verification status")
	}
	if e.Performance != PerformanceNone && !e.Performance.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown performance indicator")
	}
	if e.PartyType != "" && !e.PartyType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown party type")
	}
	if e.SourceDocType != "" && !e.SourceDocType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown source document type")
	}
	if (e.SourceDocType == "") != (e.SourceDocument == "") {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "source document type and name must be set together")
	}

	e.Variance, e.VariancePercent = ComputeVariance(e.TargetValue, e.MeasuredValue)
	if e.SupportingDocuments == nil {
		e.SupportingDocuments = []SupportingDocument{}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = now
	return &e, nil
}

// Verify marks the entry verified by actor.
func (e *MetricEntry) Verify(actor string, now time.Time) error {
	if actor == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "verifier is required")
	}
	if e.VerificationStatus == VerificationVerified {
		return dErrors.New(dErrors.CodeInvariantViolation, "entry is already verified")
	}
	day := Day(now)
	e.VerificationStatus = VerificationVerified
	e.VerifiedBy = actor
	e.VerificationDate = &day
	return nil
}

// Reject marks the entry rejected by actor.
func (e *MetricEntry) Reject(actor string, now time.Time) error {
	if actor == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "verifier is required")
	}
	if e.VerificationStatus == VerificationRejected {
		return dErrors.New(dErrors.CodeInvariantViolation, "entry is already rejected")
	}
	day := Day(now)
	e.VerificationStatus = VerificationRejected
	e.VerifiedBy = actor
	e.VerificationDate = &day
	return nil
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
