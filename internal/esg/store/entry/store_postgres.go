package entry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/platform/postgres"
	"esgtrack/pkg/platform/sentinel"
	"esgtrack/pkg/platform/tx"
)

// PostgresStore persists metric entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed entry store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const entryColumns = `e.id, e.metric, e.company, e.entry_date, e.reporting_period, e.period_from, e.period_to,
	e.value, e.measured_value, e.target_value, e.unit, e.variance, e.variance_percent, e.performance,
	e.data_source, e.source_doctype, e.source_document, e.verification_status, e.verified_by,
	e.verification_date, e.party_type, e.party, e.remarks, e.supporting_documents, e.created_at`

func (s *PostgresStore) Save(ctx context.Context, e *models.MetricEntry) error {
	docs, err := json.Marshal(e.SupportingDocuments)
	if err != nil {
		return fmt.Errorf("marshal supporting documents: %w", err)
	}
	_, err = tx.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO esg_metric_entries (
			id, metric, company, entry_date, reporting_period, period_from, period_to,
			value, measured_value, target_value, unit, variance, variance_percent, performance,
			data_source, source_doctype, source_document, verification_status, verified_by,
			verification_date, party_type, party, remarks, supporting_documents, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)`,
		e.ID, e.Metric, e.Company, e.EntryDate, string(e.ReportingPeriod), e.PeriodFrom, e.PeriodTo,
		e.Value, e.MeasuredValue, e.TargetValue, e.Unit, e.Variance, e.VariancePercent, string(e.Performance),
		string(e.DataSource), string(e.SourceDocType), e.SourceDocument, string(e.VerificationStatus), e.VerifiedBy,
		postgres.NullTime(e.VerificationDate), string(e.PartyType), e.Party, e.Remarks, docs, e.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save metric entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.MetricEntry, error) {
	row := tx.Use(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+entryColumns+`, '' AS category, '' AS company_name FROM esg_metric_entries e WHERE e.id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find metric entry: %w", err)
	}
	return &rec.MetricEntry, nil
}

// Update persists the mutable verification and performance fields of an entry.
func (s *PostgresStore) Update(ctx context.Context, e *models.MetricEntry) error {
	res, err := tx.Use(ctx, s.db).ExecContext(ctx, `
		UPDATE esg_metric_entries
		SET performance = $2, verification_status = $3, verified_by = $4,
			verification_date = $5, remarks = $6
		WHERE id = $1`,
		e.ID, string(e.Performance), string(e.VerificationStatus), e.VerifiedBy,
		postgres.NullTime(e.VerificationDate), e.Remarks,
	)
	if err != nil {
		return fmt.Errorf("update metric entry: %w", err)
	}
	return expectOne(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := tx.Use(ctx, s.db).ExecContext(ctx, `DELETE FROM esg_metric_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete metric entry: %w", err)
	}
	return expectOne(res)
}

func (s *PostgresStore) DeleteBySource(ctx context.Context, docType models.SourceDocType, name string) (int, error) {
	res, err := tx.Use(ctx, s.db).ExecContext(ctx,
		`DELETE FROM esg_metric_entries WHERE source_doctype = $1 AND source_document = $2`,
		string(docType), name,
	)
	if err != nil {
		return 0, fmt.Errorf("delete entries by source: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete entries by source: %w", err)
	}
	return int(n), nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.EntryFilter) ([]*models.EntryRecord, error) {
	where, args := buildWhere(filter)
	query := `SELECT ` + entryColumns + `, COALESCE(m.category, ''), COALESCE(c.company_name, '')
		FROM esg_metric_entries e
		LEFT JOIN esg_metrics m ON m.name = e.metric
		LEFT JOIN esg_companies c ON c.company = e.company` + where +
		` ORDER BY e.entry_date DESC, e.metric ASC, e.company ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := tx.Use(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list metric entries: %w", err)
	}
	defer rows.Close()

	out := make([]*models.EntryRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan metric entry: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list metric entries: %w", err)
	}
	return out, nil
}

// buildWhere renders the filter as a WHERE clause with positional arguments.
func buildWhere(f models.EntryFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(expr string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}
	if f.Company != "" {
		add("e.company = $%d", f.Company)
	}
	if f.Metric != "" {
		add("e.metric = $%d", f.Metric)
	}
	if f.SourceDocType != "" {
		add("e.source_doctype = $%d", string(f.SourceDocType))
	}
	if f.PartyType != "" {
		add("e.party_type = $%d", string(f.PartyType))
	}
	if f.Party != "" {
		add("e.party = $%d", f.Party)
	}
	if !f.From.IsZero() {
		add("e.entry_date >= $%d", models.Day(f.From))
	}
	if !f.To.IsZero() {
		add("e.entry_date <= $%d", models.Day(f.To))
	}
	if f.Performance != models.PerformanceNone {
		add("e.performance = $%d", string(f.Performance))
	}
	if f.VerificationStatus != "" {
		add("e.verification_status = $%d", string(f.VerificationStatus))
	}
	if f.DataSource != "" {
		add("e.data_source = $%d", string(f.DataSource))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.EntryRecord, error) {
	var (
		rec        models.EntryRecord
		verifiedOn sql.NullTime
		docs       []byte

		period, perf, source, docType, status, partyType, cat string
	)
	e := &rec.MetricEntry
	err := row.Scan(
		&e.ID, &e.Metric, &e.Company, &e.EntryDate, &period, &e.PeriodFrom, &e.PeriodTo,
		&e.Value, &e.MeasuredValue, &e.TargetValue, &e.Unit, &e.Variance, &e.VariancePercent, &perf,
		&source, &docType, &e.SourceDocument, &status, &e.VerifiedBy,
		&verifiedOn, &partyType, &e.Party, &e.Remarks, &docs, &e.CreatedAt,
		&cat, &rec.CompanyName,
	)
	if err != nil {
		return nil, err
	}
	e.ReportingPeriod = models.Frequency(period)
	e.Performance = models.Performance(perf)
	e.DataSource = models.DataSource(source)
	e.SourceDocType = models.SourceDocType(docType)
	e.VerificationStatus = models.VerificationStatus(status)
	e.PartyType = models.PartyType(partyType)
	e.VerificationDate = postgres.TimePtr(verifiedOn)
	e.EntryDate = models.Day(e.EntryDate)
	e.PeriodFrom = models.Day(e.PeriodFrom)
	e.PeriodTo = models.Day(e.PeriodTo)
	rec.Category = models.Category(cat)

	e.SupportingDocuments = []models.SupportingDocument{}
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &e.SupportingDocuments); err != nil {
			return nil, fmt.Errorf("unmarshal supporting documents: %w", err)
		}
	}
	return &rec, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
