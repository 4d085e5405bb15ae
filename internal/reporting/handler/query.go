package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/reporting"
	dErrors "esgtrack/pkg/domain-errors"
)

// query reads report filters from URL parameters, keeping the first error.
type query struct {
	values url.Values
	err    error
}

func (q *query) str(key string) string {
	return strings.TrimSpace(q.values.Get(key))
}

func (q *query) date(key string) time.Time {
	v := q.str(key)
	if v == "" || q.err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		q.err = dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be a date (YYYY-MM-DD)", key))
		return time.Time{}
	}
	return t
}

func (q *query) flag(key string) bool {
	v := q.str(key)
	if v == "" || q.err != nil {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.err = dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be true or false", key))
		return false
	}
	return b
}

func analysisFilters(values url.Values) (reporting.AnalysisFilters, error) {
	q := &query{values: values}
	f := reporting.AnalysisFilters{
		Company:            q.str("company"),
		Metric:             q.str("metric"),
		SourceDocType:      models.SourceDocType(q.str("source_doctype")),
		PartyType:          models.PartyType(q.str("party_type")),
		Party:              q.str("party"),
		From:               q.date("from_date"),
		To:                 q.date("to_date"),
		Performance:        models.Performance(q.str("performance")),
		VerificationStatus: models.VerificationStatus(q.str("verification_status")),
		DataSource:         models.DataSource(q.str("data_source")),
		IncludeTargets:     q.flag("include_targets"),
		ShowSummary:        q.flag("show_summary"),
	}
	if q.err != nil {
		return f, q.err
	}
	groupBy, err := reporting.ParseGroupBy(q.str("group_by"))
	if err != nil {
		return f, err
	}
	f.GroupBy = groupBy
	return f, nil
}

func activityFilters(values url.Values) (reporting.ActivityFilters, error) {
	q := &query{values: values}
	f := reporting.ActivityFilters{
		Company:            q.str("company"),
		From:               q.date("from_date"),
		To:                 q.date("to_date"),
		SourceDocType:      models.SourceDocType(q.str("source_type")),
		ActivityType:       q.str("activity_type"),
		Performance:        models.Performance(q.str("performance")),
		IncludeInitiatives: q.flag("include_initiatives"),
	}
	return f, q.err
}
