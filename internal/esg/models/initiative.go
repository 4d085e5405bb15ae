package models

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "esgtrack/pkg/domain-errors"
)

type InitiativeStatus string

const (
	InitiativePlanned   InitiativeStatus = "Planned"
	InitiativeOngoing   InitiativeStatus = "Ongoing"
	InitiativeCompleted InitiativeStatus = "Completed"
	InitiativeCancelled InitiativeStatus = "Cancelled"
	InitiativeOnHold    InitiativeStatus = "On Hold"
)

func (s InitiativeStatus) IsValid() bool {
	switch s {
	case InitiativePlanned, InitiativeOngoing, InitiativeCompleted, InitiativeCancelled, InitiativeOnHold:
		return true
	}
	return false
}

// IsClosed reports whether the initiative no longer contributes to trends.
func (s InitiativeStatus) IsClosed() bool {
	return s == InitiativeCompleted || s == InitiativeCancelled
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Initiative is a dated ESG programme run under a policy.
type Initiative struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"initiative_name"`
	Company           string           `json:"company"`
	RelatedPolicy     string           `json:"related_policy"`
	Category          Category         `json:"esg_category"`
	Priority          Priority         `json:"priority"`
	Status            InitiativeStatus `json:"status"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	Budget            float64          `json:"budget"`
	ActualCost        float64          `json:"actual_cost"`
	ResponsiblePerson string           `json:"responsible_person"`
	Description       string           `json:"description,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// NewInitiative validates and builds an initiative.
func NewInitiative(i Initiative, now time.Time) (*Initiative, error) {
	i.Name = strings.TrimSpace(i.Name)
	if i.Name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "initiative name is required")
	}
	if i.Company == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "company is required")
	}
	if i.RelatedPolicy == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "related policy is required")
	}
	if !i.Category.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "category must be Environmental, Social or Governance")
	}
	if i.ResponsiblePerson == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "responsible person is required")
	}
	if i.StartDate.IsZero() || i.EndDate.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "start and end dates are required")
	}
	if i.EndDate.Before(i.StartDate) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "end date cannot be before start date")
	}
	if i.Priority == "" {
		i.Priority = PriorityMedium
	}
	if !i.Priority.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown priority")
	}
	if i.Status == "" {
		i.Status = InitiativePlanned
	}
	if !i.Status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown initiative status")
	}
	if i.Budget < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "budget cannot be negative")
	}
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.CreatedAt = now
	return &i, nil
}

// Progress is the elapsed share of the planned duration at the given instant,
// in percent and clamped to [0, 100]. Durations shorter than a day count as one day.
func (i *Initiative) Progress(at time.Time) float64 {
	planned := daysBetween(i.StartDate, i.EndDate)
	if planned < 1 {
		planned = 1
	}
	elapsed := daysBetween(i.StartDate, at)
	return math.Min(100, math.Max(0, float64(elapsed)/float64(planned)*100))
}

// ActivityPerformance classifies the initiative for the activity log:
// completed initiatives and ongoing ones past the halfway mark are Green.
func (i *Initiative) ActivityPerformance(at time.Time) Performance {
	switch {
	case i.Status == InitiativeCompleted:
		return PerformanceGreen
	case i.Status == InitiativeOngoing && i.Progress(at) >= 50:
		return PerformanceGreen
	default:
		return PerformanceRed
	}
}

// SetStatus moves the initiative to a new status. Closed initiatives are final.
func (i *Initiative) SetStatus(status InitiativeStatus) error {
	if !status.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown initiative status")
	}
	if i.Status.IsClosed() && status != i.Status {
		return dErrors.New(dErrors.CodeInvariantViolation, "initiative is already "+string(i.Status))
	}
	i.Status = status
	return nil
}

// daysBetween counts whole calendar days from a to b (negative when b precedes a).
func daysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
