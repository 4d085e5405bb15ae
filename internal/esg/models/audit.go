package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "esgtrack/pkg/domain-errors"
)

type AuditType string

const (
	AuditInternal      AuditType = "Internal"
	AuditExternal      AuditType = "External"
	AuditCertification AuditType = "Certification"
	AuditRegulatory    AuditType = "Regulatory"
)

func (t AuditType) IsValid() bool {
	switch t {
	case AuditInternal, AuditExternal, AuditCertification, AuditRegulatory:
		return true
	}
	return false
}

type AuditStatus string

const (
	AuditPlanned   AuditStatus = "Planned"
	AuditOngoing   AuditStatus = "Ongoing"
	AuditCompleted AuditStatus = "Completed"
	AuditReporting AuditStatus = "Reporting"
)

func (s AuditStatus) IsValid() bool {
	switch s {
	case AuditPlanned, AuditOngoing, AuditCompleted, AuditReporting:
		return true
	}
	return false
}

// Finding is one observation recorded by an audit.
type Finding struct {
	FindingType string   `json:"finding_type"`
	Category    Category `json:"category,omitempty"`
	Severity    string   `json:"severity,omitempty"`
	Description string   `json:"description"`
}

// Audit is an ESG audit of a company's policies and metrics.
type Audit struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"audit_name"`
	Company       string      `json:"company"`
	Type          AuditType   `json:"audit_type"`
	AuditDate     time.Time   `json:"audit_date"`
	Status        AuditStatus `json:"audit_status"`
	Auditor       string      `json:"auditor"`
	OverallRating string      `json:"overall_rating,omitempty"`
	Findings      []Finding   `json:"findings"`
	NextAuditDate *time.Time  `json:"next_audit_date,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

var findingTypes = map[string]bool{
	"Non-Conformity":              true,
	"Observation":                 true,
	"Opportunity for Improvement": true,
	"Positive Finding":            true,
}

var severities = map[string]bool{"": true, "Critical": true, "High": true, "Medium": true, "Low": true}

// NewAudit validates and builds an audit record.
func NewAudit(a Audit, now time.Time) (*Audit, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "audit name is required")
	}
	if a.Company == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "company is required")
	}
	if !a.Type.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "audit type must be Internal, External, Certification or Regulatory")
	}
	if a.AuditDate.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "audit date is required")
	}
	if a.Auditor == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "lead auditor is required")
	}
	if a.Status == "" {
		a.Status = AuditPlanned
	}
	if !a.Status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown audit status")
	}
	if a.NextAuditDate != nil && !a.NextAuditDate.After(a.AuditDate) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "next audit date must follow the audit date")
	}
	for _, f := range a.Findings {
		if !findingTypes[f.FindingType] {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown finding type "+f.FindingType)
		}
		if !severities[f.Severity] {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown finding severity "+f.Severity)
		}
		if f.Category != "" && !f.Category.IsValid() {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown finding category")
		}
		if strings.TrimSpace(f.Description) == "" {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "finding description is required")
		}
	}
	if a.Findings == nil {
		a.Findings = []Finding{}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = now
	return &a, nil
}

// NonConformities counts findings that require corrective action.
func (a *Audit) NonConformities() int {
	n := 0
	for _, f := range a.Findings {
		if f.FindingType == "Non-Conformity" {
			n++
		}
	}
	return n
}
