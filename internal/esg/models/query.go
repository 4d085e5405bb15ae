package models

import "time"

// EntryFilter selects metric entries. Zero values are ignored; From and To
// bound the entry date inclusively.
type EntryFilter struct {
	Company            string
	Metric             string
	SourceDocType      SourceDocType
	PartyType          PartyType
	Party              string
	From               time.Time
	To                 time.Time
	Performance        Performance
	VerificationStatus VerificationStatus
	DataSource         DataSource
	Limit              int
}

// Matches applies the filter to a single entry.
func (f EntryFilter) Matches(e *MetricEntry) bool {
	switch {
	case f.Company != "" && e.Company != f.Company:
		return false
	case f.Metric != "" && e.Metric != f.Metric:
		return false
	case f.SourceDocType != "" && e.SourceDocType != f.SourceDocType:
		return false
	case f.PartyType != "" && e.PartyType != f.PartyType:
		return false
	case f.Party != "" && e.Party != f.Party:
		return false
	case !f.From.IsZero() && e.EntryDate.Before(Day(f.From)):
		return false
	case !f.To.IsZero() && e.EntryDate.After(Day(f.To)):
		return false
	case f.Performance != PerformanceNone && e.Performance != f.Performance:
		return false
	case f.VerificationStatus != "" && e.VerificationStatus != f.VerificationStatus:
		return false
	case f.DataSource != "" && e.DataSource != f.DataSource:
		return false
	}
	return true
}

// EntryRecord is an entry joined with its metric definition and company.
// Category and CompanyName are empty when the definition or settings are missing.
type EntryRecord struct {
	MetricEntry
	Category    Category `json:"category,omitempty"`
	CompanyName string   `json:"company_name,omitempty"`
}

// InitiativeFilter selects initiatives. CreatedFrom and CreatedTo bound the
// creation day inclusively.
type InitiativeFilter struct {
	Company       string
	CreatedFrom   time.Time
	CreatedTo     time.Time
	ExcludeClosed bool
}

// Matches applies the filter to a single initiative.
func (f InitiativeFilter) Matches(i *Initiative) bool {
	switch {
	case f.Company != "" && i.Company != f.Company:
		return false
	case !f.CreatedFrom.IsZero() && Day(i.CreatedAt).Before(Day(f.CreatedFrom)):
		return false
	case !f.CreatedTo.IsZero() && Day(i.CreatedAt).After(Day(f.CreatedTo)):
		return false
	case f.ExcludeClosed && i.Status.IsClosed():
		return false
	}
	return true
}
