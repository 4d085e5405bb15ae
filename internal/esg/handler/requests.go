package handler

import (
	"strings"
	"time"

	"esgtrack/internal/esg/models"
	"esgtrack/pkg/platform/validation"
)

// date parses a field already checked by the datetime=2006-01-02 rule.
func date(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := date(s)
	return &t
}

type CreateMetricRequest struct {
	Name              string   `json:"metric_name" validate:"required,max=140"`
	Code              string   `json:"metric_code" validate:"max=40"`
	Company           string   `json:"company" validate:"required"`
	Category          string   `json:"category" validate:"required,oneof=Environmental Social Governance"`
	SubCategory       string   `json:"sub_category"`
	Unit              string   `json:"unit" validate:"required,max=20"`
	Description       string   `json:"description"`
	Frequency         string   `json:"frequency" validate:"omitempty,oneof=Daily Weekly Monthly Quarterly 'Half Yearly' Annually"`
	CollectionMethod  string   `json:"collection_method"`
	TargetValue       *float64 `json:"target_value"`
	BenchmarkValue    *float64 `json:"benchmark_value"`
	ImprovementTarget *float64 `json:"improvement_target" validate:"omitempty,gte=0,lte=100"`
	ThresholdRed      *float64 `json:"threshold_red"`
	ThresholdYellow   *float64 `json:"threshold_yellow"`
	ThresholdGreen    *float64 `json:"threshold_green"`
	IsActive          *bool    `json:"is_active"`
}

func (r *CreateMetricRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.TrimSpace(r.Code)
	r.Company = strings.TrimSpace(r.Company)
	r.Unit = strings.TrimSpace(r.Unit)
}

func (r *CreateMetricRequest) Validate() error {
	return validation.Struct(r)
}

// Model builds the metric. Metrics are active unless is_active is false.
func (r *CreateMetricRequest) Model() models.Metric {
	active := r.IsActive == nil || *r.IsActive
	return models.Metric{
		Name:              r.Name,
		Code:              r.Code,
		Company:           r.Company,
		Category:          models.Category(r.Category),
		SubCategory:       r.SubCategory,
		Unit:              r.Unit,
		Description:       r.Description,
		Frequency:         models.Frequency(r.Frequency),
		CollectionMethod:  r.CollectionMethod,
		TargetValue:       r.TargetValue,
		BenchmarkValue:    r.BenchmarkValue,
		ImprovementTarget: r.ImprovementTarget,
		ThresholdRed:      r.ThresholdRed,
		ThresholdYellow:   r.ThresholdYellow,
		ThresholdGreen:    r.ThresholdGreen,
		IsActive:          active,
	}
}

type SupportingDocumentRequest struct {
	DocumentType string `json:"document_type" validate:"required"`
	DocumentName string `json:"document_name" validate:"required"`
}

type CreateEntryRequest struct {
	Metric              string                      `json:"metric" validate:"required"`
	Company             string                      `json:"company"`
	EntryDate           string                      `json:"entry_date" validate:"omitempty,datetime=2006-01-02"`
	ReportingPeriod     string                      `json:"reporting_period" validate:"omitempty,oneof=Daily Weekly Monthly Quarterly 'Half Yearly' Annually"`
	PeriodFrom          string                      `json:"period_from" validate:"omitempty,datetime=2006-01-02"`
	PeriodTo            string                      `json:"period_to" validate:"omitempty,datetime=2006-01-02"`
	Value               float64                     `json:"value"`
	MeasuredValue       float64                     `json:"measured_value"`
	TargetValue         *float64                    `json:"target_value"`
	Unit                string                      `json:"unit"`
	DataSource          string                      `json:"data_source" validate:"omitempty,oneof='Manual Entry' Imported Calculated"`
	PartyType           string                      `json:"party_type" validate:"omitempty,oneof=Customer Supplier Warehouse Item 'Production Plan' Employee"`
	Party               string                      `json:"party" validate:"required_with=PartyType"`
	Remarks             string                      `json:"remarks"`
	SupportingDocuments []SupportingDocumentRequest `json:"supporting_documents" validate:"dive"`
}

func (r *CreateEntryRequest) Normalize() {
	r.Metric = strings.TrimSpace(r.Metric)
	r.Company = strings.TrimSpace(r.Company)
	r.Party = strings.TrimSpace(r.Party)
}

func (r *CreateEntryRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateEntryRequest) Model() models.ManualEntry {
	docs := make([]models.SupportingDocument, 0, len(r.SupportingDocuments))
	for _, d := range r.SupportingDocuments {
		docs = append(docs, models.SupportingDocument{DocumentType: d.DocumentType, DocumentName: d.DocumentName})
	}
	e := models.MetricEntry{
		Metric:              r.Metric,
		Company:             r.Company,
		EntryDate:           date(r.EntryDate),
		ReportingPeriod:     models.Frequency(r.ReportingPeriod),
		PeriodFrom:          date(r.PeriodFrom),
		PeriodTo:            date(r.PeriodTo),
		Value:               r.Value,
		MeasuredValue:       r.MeasuredValue,
		Unit:                r.Unit,
		DataSource:          models.DataSource(r.DataSource),
		PartyType:           models.PartyType(r.PartyType),
		Party:               r.Party,
		Remarks:             r.Remarks,
		SupportingDocuments: docs,
	}
	return models.ManualEntry{Entry: e, Target: r.TargetValue}
}

type CreateInitiativeRequest struct {
	Name              string  `json:"initiative_name" validate:"required,max=140"`
	Company           string  `json:"company" validate:"required"`
	RelatedPolicy     string  `json:"related_policy" validate:"required"`
	Category          string  `json:"esg_category" validate:"required,oneof=Environmental Social Governance"`
	Priority          string  `json:"priority" validate:"omitempty,oneof=Low Medium High Critical"`
	Status            string  `json:"status" validate:"omitempty,oneof=Planned Ongoing Completed Cancelled 'On Hold'"`
	StartDate         string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate           string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Budget            float64 `json:"budget" validate:"gte=0"`
	ActualCost        float64 `json:"actual_cost" validate:"gte=0"`
	ResponsiblePerson string  `json:"responsible_person" validate:"required"`
	Description       string  `json:"description"`
}

func (r *CreateInitiativeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Company = strings.TrimSpace(r.Company)
	r.RelatedPolicy = strings.TrimSpace(r.RelatedPolicy)
	r.ResponsiblePerson = strings.TrimSpace(r.ResponsiblePerson)
}

func (r *CreateInitiativeRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateInitiativeRequest) Model() models.Initiative {
	return models.Initiative{
		Name:              r.Name,
		Company:           r.Company,
		RelatedPolicy:     r.RelatedPolicy,
		Category:          models.Category(r.Category),
		Priority:          models.Priority(r.Priority),
		Status:            models.InitiativeStatus(r.Status),
		StartDate:         date(r.StartDate),
		EndDate:           date(r.EndDate),
		Budget:            r.Budget,
		ActualCost:        r.ActualCost,
		ResponsiblePerson: r.ResponsiblePerson,
		Description:       r.Description,
	}
}

type UpdateInitiativeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Planned Ongoing Completed Cancelled 'On Hold'"`
}

func (r *UpdateInitiativeStatusRequest) Normalize() {
	r.Status = strings.TrimSpace(r.Status)
}

func (r *UpdateInitiativeStatusRequest) Validate() error {
	return validation.Struct(r)
}

type CreatePolicyRequest struct {
	Name            string `json:"policy_name" validate:"required,max=140"`
	Company         string `json:"company" validate:"required"`
	Description     string `json:"description"`
	EffectiveDate   string `json:"effective_date" validate:"required,datetime=2006-01-02"`
	ExpiryDate      string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Owner           string `json:"policy_owner" validate:"required"`
	ReviewFrequency string `json:"review_frequency" validate:"omitempty,oneof=Monthly Quarterly 'Half Yearly' Annually"`
	Status          string `json:"status" validate:"omitempty,oneof=Draft 'Under Review' Approved Rejected"`
}

func (r *CreatePolicyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Company = strings.TrimSpace(r.Company)
	r.Owner = strings.TrimSpace(r.Owner)
}

func (r *CreatePolicyRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreatePolicyRequest) Model() models.Policy {
	return models.Policy{
		Name:            r.Name,
		Company:         r.Company,
		Description:     r.Description,
		EffectiveDate:   date(r.EffectiveDate),
		ExpiryDate:      optionalDate(r.ExpiryDate),
		Owner:           r.Owner,
		ReviewFrequency: models.Frequency(r.ReviewFrequency),
		Status:          models.PolicyStatus(r.Status),
	}
}

type FindingRequest struct {
	FindingType string `json:"finding_type" validate:"required,oneof='Non-Conformity' Observation 'Opportunity for Improvement' 'Positive Finding'"`
	Category    string `json:"category" validate:"omitempty,oneof=Environmental Social Governance"`
	Severity    string `json:"severity" validate:"omitempty,oneof=Critical High Medium Low"`
	Description string `json:"description" validate:"required"`
}

type CreateAuditRequest struct {
	Name          string           `json:"audit_name" validate:"required,max=140"`
	Company       string           `json:"company" validate:"required"`
	Type          string           `json:"audit_type" validate:"required,oneof=Internal External Certification Regulatory"`
	AuditDate     string           `json:"audit_date" validate:"required,datetime=2006-01-02"`
	Status        string           `json:"audit_status" validate:"omitempty,oneof=Planned Ongoing Completed Reporting"`
	Auditor       string           `json:"auditor" validate:"required"`
	OverallRating string           `json:"overall_rating"`
	Findings      []FindingRequest `json:"findings" validate:"dive"`
	NextAuditDate string           `json:"next_audit_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *CreateAuditRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Company = strings.TrimSpace(r.Company)
	r.Auditor = strings.TrimSpace(r.Auditor)
	for i := range r.Findings {
		r.Findings[i].Description = strings.TrimSpace(r.Findings[i].Description)
	}
}

func (r *CreateAuditRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateAuditRequest) Model() models.Audit {
	findings := make([]models.Finding, 0, len(r.Findings))
	for _, f := range r.Findings {
		findings = append(findings, models.Finding{
			FindingType: f.FindingType,
			Category:    models.Category(f.Category),
			Severity:    f.Severity,
			Description: f.Description,
		})
	}
	return models.Audit{
		Name:          r.Name,
		Company:       r.Company,
		Type:          models.AuditType(r.Type),
		AuditDate:     date(r.AuditDate),
		Status:        models.AuditStatus(r.Status),
		Auditor:       r.Auditor,
		OverallRating: r.OverallRating,
		Findings:      findings,
		NextAuditDate: optionalDate(r.NextAuditDate),
	}
}

type ReportCategoryRequest struct {
	Category string  `json:"category" validate:"required,oneof=Environmental Social Governance"`
	Include  bool    `json:"include"`
	Weight   float64 `json:"weight" validate:"gte=0,lte=100"`
}

type RiskRequest struct {
	Area           string `json:"risk_area" validate:"required"`
	Level          string `json:"risk_level" validate:"omitempty,oneof=Low Medium High Critical"`
	Probability    string `json:"probability" validate:"omitempty,oneof=Low Medium High"`
	Impact         string `json:"impact" validate:"omitempty,oneof=Low Medium High"`
	MitigationPlan string `json:"mitigation_plan"`
}

type ActionItemRequest struct {
	Action      string `json:"action" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=Low Medium High Urgent"`
	Responsible string `json:"responsible"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=Open 'In Progress' Completed Overdue"`
}

// CreateComplianceReportRequest asks for a report over a period. The metric
// analysis and score are computed by the service.
type CreateComplianceReportRequest struct {
	Name            string                  `json:"report_name" validate:"required,max=140"`
	Company         string                  `json:"company" validate:"required"`
	Type            string                  `json:"report_type" validate:"omitempty,oneof=Monthly Quarterly 'Half Yearly' Annual Custom Regulatory"`
	PeriodFrom      string                  `json:"reporting_period_from" validate:"required,datetime=2006-01-02"`
	PeriodTo        string                  `json:"reporting_period_to" validate:"required,datetime=2006-01-02"`
	Categories      []ReportCategoryRequest `json:"esg_categories" validate:"dive"`
	Summary         string                  `json:"summary"`
	Risks           []RiskRequest           `json:"risk_assessment" validate:"dive"`
	ActionItems     []ActionItemRequest     `json:"action_items" validate:"dive"`
	Recommendations string                  `json:"recommendations"`
}

func (r *CreateComplianceReportRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Company = strings.TrimSpace(r.Company)
	for i := range r.Risks {
		r.Risks[i].Area = strings.TrimSpace(r.Risks[i].Area)
	}
	for i := range r.ActionItems {
		r.ActionItems[i].Action = strings.TrimSpace(r.ActionItems[i].Action)
	}
}

func (r *CreateComplianceReportRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateComplianceReportRequest) Model() models.ComplianceReport {
	out := models.ComplianceReport{
		Name:            r.Name,
		Company:         r.Company,
		Type:            models.ReportType(r.Type),
		PeriodFrom:      date(r.PeriodFrom),
		PeriodTo:        date(r.PeriodTo),
		Summary:         r.Summary,
		Recommendations: r.Recommendations,
	}
	for _, c := range r.Categories {
		out.Categories = append(out.Categories, models.ReportCategory{
			Category: models.Category(c.Category),
			Include:  c.Include,
			Weight:   c.Weight,
		})
	}
	for _, k := range r.Risks {
		out.Risks = append(out.Risks, models.Risk(k))
	}
	for _, a := range r.ActionItems {
		out.ActionItems = append(out.ActionItems, models.ActionItem{
			Action:      a.Action,
			Priority:    a.Priority,
			Responsible: a.Responsible,
			DueDate:     optionalDate(a.DueDate),
			Status:      a.Status,
		})
	}
	return out
}

// PutSettingsRequest replaces the ESG settings of the company in the path.
type PutSettingsRequest struct {
	CompanyName           string   `json:"company_name"`
	BaselineEmissions     *float64 `json:"baseline_emissions_tonnes_co2e" validate:"omitempty,gte=0"`
	BaselineYear          *int     `json:"baseline_year" validate:"omitempty,gte=1900,lte=2100"`
	AnnualReductionTarget *float64 `json:"annual_emission_reduction_target" validate:"omitempty,gte=0,lte=100"`
	NetZeroTargetYear     *int     `json:"net_zero_target_year" validate:"omitempty,gte=1900,lte=2100"`
}

func (r *PutSettingsRequest) Normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
}

func (r *PutSettingsRequest) Validate() error {
	return validation.Struct(r)
}

func (r *PutSettingsRequest) Model(company string) models.CompanySettings {
	return models.CompanySettings{
		Company:               company,
		CompanyName:           r.CompanyName,
		BaselineEmissions:     r.BaselineEmissions,
		BaselineYear:          r.BaselineYear,
		AnnualReductionTarget: r.AnnualReductionTarget,
		NetZeroTargetYear:     r.NetZeroTargetYear,
	}
}
