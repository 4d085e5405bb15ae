package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/reporting"
	"esgtrack/internal/reporting/handler/mocks"
	dErrors "esgtrack/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type ReportHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestReportHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerSuite))
}

func (s *ReportHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *ReportHandlerSuite) get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func (s *ReportHandlerSuite) errorBody(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *ReportHandlerSuite) TestAnalysis() {
	s.Run("parses filters", func() {
		s.service.EXPECT().Analysis(gomock.Any(), reporting.AnalysisFilters{
			Company:        "ACME",
			SourceDocType:  models.DocSalesInvoice,
			From:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			To:             time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			Performance:    models.PerformanceRed,
			GroupBy:        reporting.GroupPartyType,
			IncludeTargets: true,
			ShowSummary:    true,
		}).Return(&reporting.Analysis{Columns: []reporting.Column{}, Rows: []reporting.Row{}}, nil)

		w := s.get("/reports/analysis?company=ACME&source_doctype=Sales+Invoice&from_date=2026-01-01&to_date=2026-03-31" +
			"&performance=Red&group_by=Party+Type&include_targets=1&show_summary=true")
		s.Equal(http.StatusOK, w.Code)
		s.JSONEq(`{"columns":[],"rows":[]}`, w.Body.String())
	})

	s.Run("bad date", func() {
		w := s.get("/reports/analysis?from_date=01/02/2026")
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("validation_error", s.errorBody(w)["error"])
	})

	s.Run("unknown group", func() {
		w := s.get("/reports/analysis?group_by=Weekday")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("service validation error", func() {
		s.service.EXPECT().Analysis(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "from date cannot be after to date"))

		w := s.get("/reports/analysis?from_date=2026-02-01&to_date=2026-01-01")
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("from date cannot be after to date", s.errorBody(w)["error_description"])
	})
}

func (s *ReportHandlerSuite) TestAnalysisChart() {
	s.service.EXPECT().AnalysisChart(gomock.Any(), gomock.Any()).Return(&reporting.AnalysisChart{
		PerformanceDistribution: map[string]int{"Green": 2},
		MonthlyTrends:           []reporting.MonthlyTrend{{Month: "Mar 2026", Count: 2, TotalValue: 10}},
		TotalEntries:            2,
		VerificationStats:       reporting.VerificationStats{Pending: 2},
	}, nil)

	w := s.get("/reports/analysis/chart?company=ACME")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{
		"performance_distribution": {"Green": 2},
		"monthly_trends": [{"month": "Mar 2026", "count": 2, "total_value": 10}],
		"total_entries": 2,
		"verification_stats": {"verified": 0, "pending": 2, "rejected": 0}
	}`, w.Body.String())
}

func (s *ReportHandlerSuite) TestActivityLog() {
	s.Run("parses filters", func() {
		s.service.EXPECT().ActivityLog(gomock.Any(), reporting.ActivityFilters{
			Company:            "ACME",
			ActivityType:       "Carbon Footprint",
			IncludeInitiatives: true,
		}).Return(&reporting.ActivityLog{Rows: []reporting.ActivityRow{}}, nil)

		w := s.get("/reports/activity-log?company=ACME&activity_type=Carbon+Footprint&include_initiatives=true")
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("bad flag", func() {
		w := s.get("/reports/activity-log?company=ACME&include_initiatives=maybe")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ReportHandlerSuite) TestOverviewTrend() {
	s.service.EXPECT().OverviewTrend(gomock.Any(), "ACME").DoAndReturn(
		func(context.Context, string) (*reporting.Trend, error) {
			return &reporting.Trend{Labels: []string{"Jun 2026"}, Datasets: []reporting.TrendDataset{}}, nil
		})

	w := s.get("/reports/overview/trend?company=ACME")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"labels":["Jun 2026"],"datasets":[]}`, w.Body.String())
}
