package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "esgtrack/pkg/domain-errors"
)

type PolicyStatus string

const (
	PolicyDraft       PolicyStatus = "Draft"
	PolicyUnderReview PolicyStatus = "Under Review"
	PolicyApproved    PolicyStatus = "Approved"
	PolicyRejected    PolicyStatus = "Rejected"
)

func (s PolicyStatus) IsValid() bool {
	switch s {
	case PolicyDraft, PolicyUnderReview, PolicyApproved, PolicyRejected:
		return true
	}
	return false
}

// Policy is a company ESG policy that initiatives are run under.
type Policy struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"policy_name"`
	Company         string       `json:"company"`
	Description     string       `json:"description,omitempty"`
	EffectiveDate   time.Time    `json:"effective_date"`
	ExpiryDate      *time.Time   `json:"expiry_date,omitempty"`
	Owner           string       `json:"policy_owner"`
	ReviewFrequency Frequency    `json:"review_frequency"`
	NextReviewDate  *time.Time   `json:"next_review_date,omitempty"`
	Status          PolicyStatus `json:"status"`
	ApprovedBy      string       `json:"approved_by,omitempty"`
	ApprovalDate    *time.Time   `json:"approval_date,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// NewPolicy validates a policy and schedules its first review when none is given.
func NewPolicy(p Policy, now time.Time) (*Policy, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "policy name is required")
	}
	if p.Company == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "company is required")
	}
	if p.Owner == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "policy owner is required")
	}
	if p.EffectiveDate.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "effective date is required")
	}
	if p.ExpiryDate != nil && p.ExpiryDate.Before(p.EffectiveDate) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "expiry date cannot be before effective date")
	}
	if p.ReviewFrequency == "" {
		p.ReviewFrequency = FrequencyAnnually
	}
	switch p.ReviewFrequency {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyAnnually:
	default:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "review frequency must be Monthly, Quarterly, Half Yearly or Annually")
	}
	if p.Status == "" {
		p.Status = PolicyDraft
	}
	if !p.Status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown policy status")
	}
	if p.NextReviewDate == nil {
		next := NextReview(p.EffectiveDate, p.ReviewFrequency)
		p.NextReviewDate = &next
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = now
	return &p, nil
}

// NextReview adds one review period to from.
func NextReview(from time.Time, f Frequency) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return from.AddDate(0, 3, 0)
	case FrequencyHalfYearly:
		return from.AddDate(0, 6, 0)
	default:
		return from.AddDate(1, 0, 0)
	}
}
