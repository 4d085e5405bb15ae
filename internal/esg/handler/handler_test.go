package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"esgtrack/internal/esg/handler/mocks"
	"esgtrack/internal/esg/models"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/platform/httputil"
	"esgtrack/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type RecordHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestRecordHandlerSuite(t *testing.T) {
	suite.Run(t, new(RecordHandlerSuite))
}

// stubAuth accepts "Bearer <user>" and stores the user in the context.
func stubAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || user == "" {
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing token"))
			return
		}
		next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(r.Context(), user)))
	})
}

func (s *RecordHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router, stubAuth)
}

func (s *RecordHandlerSuite) do(method, target, body string, authed bool) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if authed {
		req.Header.Set("Authorization", "Bearer auditor@acme.test")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RecordHandlerSuite) errorBody(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *RecordHandlerSuite) TestCreateMetric() {
	s.Run("defaults to active", func() {
		s.service.EXPECT().CreateMetric(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m models.Metric) (*models.Metric, error) {
				s.Equal("Carbon Footprint", m.Name)
				s.Equal(models.CategoryEnvironmental, m.Category)
				s.True(m.IsActive)
				s.Require().NotNil(m.ThresholdGreen)
				s.Equal(100.0, *m.ThresholdGreen)
				m.ID = uuid.New()
				return &m, nil
			})

		w := s.do(http.MethodPost, "/api/esg/metrics", `{
			"metric_name": "  Carbon Footprint ",
			"company": "ACME",
			"category": "Environmental",
			"unit": "kg",
			"threshold_green": 100,
			"threshold_red": 120
		}`, true)
		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("inactive when requested", func() {
		s.service.EXPECT().CreateMetric(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, m models.Metric) (*models.Metric, error) {
				s.False(m.IsActive)
				return &m, nil
			})

		w := s.do(http.MethodPost, "/api/esg/metrics",
			`{"metric_name":"Water","company":"ACME","category":"Environmental","unit":"l","is_active":false}`, true)
		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("unknown field", func() {
		w := s.do(http.MethodPost, "/api/esg/metrics",
			`{"metric_name":"Water","company":"ACME","category":"Environmental","unit":"l","colour":"blue"}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("bad_request", s.errorBody(w)["error"])
	})

	s.Run("bad category", func() {
		w := s.do(http.MethodPost, "/api/esg/metrics",
			`{"metric_name":"Water","company":"ACME","category":"Economic","unit":"l"}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
		body := s.errorBody(w)
		s.Equal("validation_error", body["error"])
		s.Equal("category must be one of: Environmental Social Governance", body["error_description"])
	})

	s.Run("requires auth", func() {
		w := s.do(http.MethodPost, "/api/esg/metrics",
			`{"metric_name":"Water","company":"ACME","category":"Environmental","unit":"l"}`, false)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *RecordHandlerSuite) TestGetMetric() {
	s.Run("bad id", func() {
		w := s.do(http.MethodGet, "/api/esg/metrics/not-a-uuid", "", false)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.service.EXPECT().GetMetric(gomock.Any(), id).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "metric not found"))

		w := s.do(http.MethodGet, "/api/esg/metrics/"+id.String(), "", false)
		s.Equal(http.StatusNotFound, w.Code)
		s.Equal("metric not found", s.errorBody(w)["error_description"])
	})

	s.Run("internal error hides description", func() {
		id := uuid.New()
		s.service.EXPECT().GetMetric(gomock.Any(), id).
			Return(nil, dErrors.New(dErrors.CodeInternal, "dial tcp 10.0.0.3:5432: refused"))

		w := s.do(http.MethodGet, "/api/esg/metrics/"+id.String(), "", false)
		s.Equal(http.StatusInternalServerError, w.Code)
		s.NotContains(w.Body.String(), "10.0.0.3")
	})
}

func (s *RecordHandlerSuite) TestListMetrics() {
	s.service.EXPECT().ListMetrics(gomock.Any(), "ACME").Return([]*models.Metric{}, nil)

	w := s.do(http.MethodGet, "/api/esg/metrics?company=ACME", "", false)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *RecordHandlerSuite) TestCreateEntry() {
	s.Run("parses dates", func() {
		s.service.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in models.ManualEntry) (*models.MetricEntry, error) {
				e := in.Entry
				s.Nil(in.Target)
				s.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), e.PeriodFrom)
				s.Equal(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), e.PeriodTo)
				s.True(e.EntryDate.IsZero())
				s.Equal(models.PartySupplier, e.PartyType)
				s.Len(e.SupportingDocuments, 1)
				return &e, nil
			})

		w := s.do(http.MethodPost, "/api/esg/entries", `{
			"metric": "Carbon Footprint",
			"period_from": "2026-03-01",
			"period_to": "2026-03-31",
			"measured_value": 12,
			"party_type": "Supplier",
			"party": "Green Supplies",
			"supporting_documents": [{"document_type": "Invoice", "document_name": "INV-1"}]
		}`, true)
		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("explicit zero target is passed through", func() {
		s.service.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in models.ManualEntry) (*models.MetricEntry, error) {
				s.Require().NotNil(in.Target)
				s.Equal(0.0, *in.Target)
				return &in.Entry, nil
			})

		w := s.do(http.MethodPost, "/api/esg/entries", `{"metric":"Carbon Footprint","measured_value":12,"target_value":0}`, true)
		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("bad date", func() {
		w := s.do(http.MethodPost, "/api/esg/entries", `{"metric":"Carbon Footprint","period_from":"03/01/2026"}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("period_from must be a date (YYYY-MM-DD)", s.errorBody(w)["error_description"])
	})

	s.Run("party requires party type", func() {
		w := s.do(http.MethodPost, "/api/esg/entries", `{"metric":"Carbon Footprint","party_type":"Customer"}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("party is required", s.errorBody(w)["error_description"])
	})

	s.Run("invalid supporting document", func() {
		w := s.do(http.MethodPost, "/api/esg/entries",
			`{"metric":"Carbon Footprint","supporting_documents":[{"document_type":"Invoice"}]}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("validation_error", s.errorBody(w)["error"])
	})
}

func (s *RecordHandlerSuite) TestListEntries() {
	s.Run("parses filters", func() {
		s.service.EXPECT().ListEntries(gomock.Any(), models.EntryFilter{
			Company:            "ACME",
			SourceDocType:      models.DocDeliveryNote,
			From:               time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			VerificationStatus: models.VerificationPending,
			Limit:              maxEntryLimit,
		}).Return([]*models.EntryRecord{}, nil)

		w := s.do(http.MethodGet,
			"/api/esg/entries?company=ACME&source_doctype=Delivery+Note&from_date=2026-01-01&verification_status=Pending&limit=9000",
			"", false)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("default limit", func() {
		s.service.EXPECT().ListEntries(gomock.Any(), models.EntryFilter{Limit: defaultEntryLimit}).
			Return([]*models.EntryRecord{}, nil)

		w := s.do(http.MethodGet, "/api/esg/entries", "", false)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("bad limit", func() {
		w := s.do(http.MethodGet, "/api/esg/entries?limit=-3", "", false)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("bad date", func() {
		w := s.do(http.MethodGet, "/api/esg/entries?to_date=yesterday", "", false)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("to_date must be a date (YYYY-MM-DD)", s.errorBody(w)["error_description"])
	})
}

func (s *RecordHandlerSuite) TestReviewEntry() {
	id := uuid.New()

	s.Run("verify carries the caller", func() {
		s.service.EXPECT().VerifyEntry(gomock.Any(), id).DoAndReturn(
			func(ctx context.Context, got uuid.UUID) (*models.MetricEntry, error) {
				s.Equal("auditor@acme.test", requestcontext.UserID(ctx))
				return &models.MetricEntry{ID: got, VerificationStatus: models.VerificationVerified, VerifiedBy: "auditor@acme.test"}, nil
			})

		w := s.do(http.MethodPost, "/api/esg/entries/"+id.String()+"/verify", "", true)
		s.Equal(http.StatusOK, w.Code)
		var e models.MetricEntry
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &e))
		s.Equal(models.VerificationVerified, e.VerificationStatus)
	})

	s.Run("reject conflict", func() {
		s.service.EXPECT().RejectEntry(gomock.Any(), id).
			Return(nil, dErrors.New(dErrors.CodeValidation, "entry is already rejected"))

		w := s.do(http.MethodPost, "/api/esg/entries/"+id.String()+"/reject", "", true)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("anonymous", func() {
		w := s.do(http.MethodPost, "/api/esg/entries/"+id.String()+"/verify", "", false)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *RecordHandlerSuite) TestDeleteEntry() {
	id := uuid.New()
	s.service.EXPECT().DeleteEntry(gomock.Any(), id).Return(nil)

	w := s.do(http.MethodDelete, "/api/esg/entries/"+id.String(), "", true)
	s.Equal(http.StatusNoContent, w.Code)
	s.Empty(w.Body.String())
}

func (s *RecordHandlerSuite) TestInitiatives() {
	s.Run("create", func() {
		s.service.EXPECT().CreateInitiative(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, i models.Initiative) (*models.Initiative, error) {
				s.Equal("Solar Roof", i.Name)
				s.Equal(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), i.EndDate)
				return &i, nil
			})

		w := s.do(http.MethodPost, "/api/esg/initiatives", `{
			"initiative_name": "Solar Roof",
			"company": "ACME",
			"related_policy": "Energy Policy",
			"esg_category": "Environmental",
			"start_date": "2026-01-01",
			"end_date": "2026-06-30",
			"budget": 25000,
			"responsible_person": "HR-EMP-0001"
		}`, true)
		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("missing dates", func() {
		w := s.do(http.MethodPost, "/api/esg/initiatives", `{
			"initiative_name": "Solar Roof",
			"company": "ACME",
			"related_policy": "Energy Policy",
			"esg_category": "Environmental",
			"responsible_person": "HR-EMP-0001"
		}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("start_date is required", s.errorBody(w)["error_description"])
	})

	s.Run("update status", func() {
		id := uuid.New()
		s.service.EXPECT().UpdateInitiativeStatus(gomock.Any(), id, models.InitiativeOnHold).
			Return(&models.Initiative{ID: id, Status: models.InitiativeOnHold}, nil)

		w := s.do(http.MethodPatch, "/api/esg/initiatives/"+id.String()+"/status", `{"status":"On Hold"}`, true)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("unknown status", func() {
		w := s.do(http.MethodPatch, "/api/esg/initiatives/"+uuid.NewString()+"/status", `{"status":"Paused"}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *RecordHandlerSuite) TestPoliciesAndAudits() {
	s.Run("create policy", func() {
		s.service.EXPECT().CreatePolicy(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p models.Policy) (*models.Policy, error) {
				s.Nil(p.ExpiryDate)
				s.Equal(models.FrequencyHalfYearly, p.ReviewFrequency)
				return &p, nil
			})

		w := s.do(http.MethodPost, "/api/esg/policies", `{
			"policy_name": "Energy Policy",
			"company": "ACME",
			"effective_date": "2026-01-01",
			"policy_owner": "HR-EMP-0001",
			"review_frequency": "Half Yearly"
		}`, true)
		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("create audit", func() {
		s.service.EXPECT().CreateAudit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a models.Audit) (*models.Audit, error) {
				s.Require().Len(a.Findings, 1)
				s.Equal("Non-Conformity", a.Findings[0].FindingType)
				s.Require().NotNil(a.NextAuditDate)
				return &a, nil
			})

		w := s.do(http.MethodPost, "/api/esg/audits", `{
			"audit_name": "Q1 Review",
			"company": "ACME",
			"audit_type": "Internal",
			"audit_date": "2026-03-15",
			"auditor": "HR-EMP-0002",
			"findings": [{"finding_type": "Non-Conformity", "severity": "High", "description": "Missing meter logs"}],
			"next_audit_date": "2026-09-15"
		}`, true)
		s.Equal(http.StatusCreated, w.Code)
	})

	s.Run("bad finding type", func() {
		w := s.do(http.MethodPost, "/api/esg/audits", `{
			"audit_name": "Q1 Review",
			"company": "ACME",
			"audit_type": "Internal",
			"audit_date": "2026-03-15",
			"auditor": "HR-EMP-0002",
			"findings": [{"finding_type": "Gripe", "description": "?"}]
		}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("list audits", func() {
		s.service.EXPECT().ListAudits(gomock.Any(), "ACME").Return([]*models.Audit{}, nil)

		w := s.do(http.MethodGet, "/api/esg/audits?company=ACME", "", false)
		s.Equal(http.StatusOK, w.Code)
	})
}

func (s *RecordHandlerSuite) TestComplianceReports() {
	body := `{
		"report_name": " Q1 2026 ",
		"company": "ACME",
		"report_type": "Quarterly",
		"reporting_period_from": "2026-01-01",
		"reporting_period_to": "2026-03-31",
		"esg_categories": [
			{"category": "Environmental", "include": true, "weight": 60},
			{"category": "Social", "include": true, "weight": 40}
		],
		"risk_assessment": [{"risk_area": "Grid supply", "risk_level": "High"}],
		"action_items": [{"action": "Install sub-meters", "priority": "Urgent", "due_date": "2026-06-30"}]
	}`

	s.Run("create passes the request through", func() {
		s.service.EXPECT().CreateComplianceReport(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, r models.ComplianceReport) (*models.ComplianceReport, error) {
				s.Equal("auditor@acme.test", requestcontext.UserID(ctx))
				s.Equal("Q1 2026", r.Name)
				s.Equal(models.ReportQuarterly, r.Type)
				s.Equal(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), r.PeriodTo)
				s.Require().Len(r.Categories, 2)
				s.Equal(60.0, r.Categories[0].Weight)
				s.Equal("High", r.Risks[0].Level)
				s.Require().NotNil(r.ActionItems[0].DueDate)
				r.ID = uuid.New()
				r.ComplianceStatus = models.ComplianceMostly
				return &r, nil
			})

		w := s.do(http.MethodPost, "/api/esg/compliance-reports", body, true)
		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), `"compliance_status":"Mostly Compliant"`)
	})

	s.Run("create requires auth", func() {
		w := s.do(http.MethodPost, "/api/esg/compliance-reports", body, false)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("weight above 100 is rejected", func() {
		w := s.do(http.MethodPost, "/api/esg/compliance-reports", `{
			"report_name": "Q1",
			"company": "ACME",
			"reporting_period_from": "2026-01-01",
			"reporting_period_to": "2026-03-31",
			"esg_categories": [{"category": "Social", "include": true, "weight": 120}]
		}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("get unknown report", func() {
		id := uuid.New()
		s.service.EXPECT().GetComplianceReport(gomock.Any(), id).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "compliance report not found"))

		w := s.do(http.MethodGet, "/api/esg/compliance-reports/"+id.String(), "", false)
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("list by company", func() {
		s.service.EXPECT().ListComplianceReports(gomock.Any(), "ACME").Return([]*models.ComplianceReport{}, nil)

		w := s.do(http.MethodGet, "/api/esg/compliance-reports?company=ACME", "", false)
		s.Equal(http.StatusOK, w.Code)
	})
}

func (s *RecordHandlerSuite) TestSettings() {
	s.Run("put uses path company", func() {
		s.service.EXPECT().PutSettings(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c models.CompanySettings) (*models.CompanySettings, error) {
				s.Equal("ACME", c.Company)
				s.Require().NotNil(c.BaselineEmissions)
				s.Equal(8000.0, *c.BaselineEmissions)
				return &c, nil
			})

		w := s.do(http.MethodPut, "/api/esg/companies/ACME/settings", `{"baseline_emissions_tonnes_co2e": 8000}`, true)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("negative baseline", func() {
		w := s.do(http.MethodPut, "/api/esg/companies/ACME/settings", `{"baseline_emissions_tonnes_co2e": -1}`, true)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("get", func() {
		s.service.EXPECT().GetSettings(gomock.Any(), "ACME").Return(&models.CompanySettings{Company: "ACME"}, nil)

		w := s.do(http.MethodGet, "/api/esg/companies/ACME/settings", "", false)
		s.Equal(http.StatusOK, w.Code)
	})
}
