package compliance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/platform/postgres"
	"esgtrack/pkg/platform/sentinel"
	"esgtrack/pkg/platform/tx"
)

// PostgresStore persists compliance reports. Child tables are JSONB columns.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const reportColumns = `id, name, company, report_type, period_from, period_to,
	categories, summary, metric_analysis, compliance_score, compliance_status,
	risks, action_items, recommendations, prepared_by, generated_on`

func (s *PostgresStore) Save(ctx context.Context, r *models.ComplianceReport) error {
	var docs [4][]byte
	for i, v := range []any{r.Categories, r.MetricAnalysis, r.Risks, r.ActionItems} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal report details: %w", err)
		}
		docs[i] = b
	}
	_, err := tx.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO esg_compliance_reports (`+reportColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		r.ID, r.Name, r.Company, string(r.Type), r.PeriodFrom, r.PeriodTo,
		docs[0], r.Summary, docs[1], r.ComplianceScore, string(r.ComplianceStatus),
		docs[2], docs[3], r.Recommendations, r.PreparedBy, r.GeneratedOn,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save compliance report: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ComplianceReport, error) {
	r, err := scanReport(tx.Use(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM esg_compliance_reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find compliance report: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) List(ctx context.Context, company string) ([]*models.ComplianceReport, error) {
	rows, err := tx.Use(ctx, s.db).QueryContext(ctx,
		`SELECT `+reportColumns+` FROM esg_compliance_reports
		WHERE ($1 = '' OR company = $1) ORDER BY period_to DESC, generated_on DESC`, company)
	if err != nil {
		return nil, fmt.Errorf("list compliance reports: %w", err)
	}
	defer rows.Close()

	out := make([]*models.ComplianceReport, 0)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan compliance report: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*models.ComplianceReport, error) {
	var (
		r                    models.ComplianceReport
		reportType, status   string
		categories, analysis []byte
		risks, actions       []byte
	)
	err := row.Scan(
		&r.ID, &r.Name, &r.Company, &reportType, &r.PeriodFrom, &r.PeriodTo,
		&categories, &r.Summary, &analysis, &r.ComplianceScore, &status,
		&risks, &actions, &r.Recommendations, &r.PreparedBy, &r.GeneratedOn,
	)
	if err != nil {
		return nil, err
	}
	r.Type = models.ReportType(reportType)
	r.ComplianceStatus = models.ComplianceStatus(status)
	r.PeriodFrom, r.PeriodTo = models.Day(r.PeriodFrom), models.Day(r.PeriodTo)

	r.Categories = []models.ReportCategory{}
	r.MetricAnalysis = []models.ReportMetric{}
	r.Risks = []models.Risk{}
	r.ActionItems = []models.ActionItem{}
	for _, d := range []struct {
		raw  []byte
		into any
	}{
		{categories, &r.Categories},
		{analysis, &r.MetricAnalysis},
		{risks, &r.Risks},
		{actions, &r.ActionItems},
	} {
		if len(d.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(d.raw, d.into); err != nil {
			return nil, fmt.Errorf("unmarshal report details: %w", err)
		}
	}
	return &r, nil
}
