package metric

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/platform/postgres"
	"esgtrack/pkg/platform/sentinel"
	"esgtrack/pkg/platform/tx"
)

// PostgresStore persists metric definitions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed metric store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const metricColumns = `id, name, COALESCE(code, ''), company, category, sub_category, unit, description,
	frequency, collection_method, target_value, benchmark_value, improvement_target,
	threshold_red, threshold_yellow, threshold_green, is_active, created_at`

func (s *PostgresStore) Save(ctx context.Context, m *models.Metric) error {
	_, err := tx.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO esg_metrics (
			id, name, code, company, category, sub_category, unit, description,
			frequency, collection_method, target_value, benchmark_value, improvement_target,
			threshold_red, threshold_yellow, threshold_green, is_active, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		m.ID, m.Name, postgres.NullString(m.Code), m.Company, string(m.Category), m.SubCategory, m.Unit, m.Description,
		string(m.Frequency), m.CollectionMethod, postgres.NullFloat(m.TargetValue), postgres.NullFloat(m.BenchmarkValue),
		postgres.NullFloat(m.ImprovementTarget), postgres.NullFloat(m.ThresholdRed), postgres.NullFloat(m.ThresholdYellow),
		postgres.NullFloat(m.ThresholdGreen), m.IsActive, m.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save metric: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Metric, error) {
	return s.findOne(ctx, `SELECT `+metricColumns+` FROM esg_metrics WHERE id = $1`, id)
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Metric, error) {
	return s.findOne(ctx, `SELECT `+metricColumns+` FROM esg_metrics WHERE name = $1`, name)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*models.Metric, error) {
	m, err := scanMetric(tx.Use(ctx, s.db).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find metric: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) List(ctx context.Context, company string) ([]*models.Metric, error) {
	rows, err := tx.Use(ctx, s.db).QueryContext(ctx,
		`SELECT `+metricColumns+` FROM esg_metrics WHERE ($1 = '' OR company = $1) ORDER BY name`, company)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Metric, 0)
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMetric(row scanner) (*models.Metric, error) {
	var (
		m                   models.Metric
		category, frequency string

		target, benchmark, improvement, red, yellow, green sql.NullFloat64
	)
	err := row.Scan(
		&m.ID, &m.Name, &m.Code, &m.Company, &category, &m.SubCategory, &m.Unit, &m.Description,
		&frequency, &m.CollectionMethod, &target, &benchmark, &improvement,
		&red, &yellow, &green, &m.IsActive, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Category = models.Category(category)
	m.Frequency = models.Frequency(frequency)
	m.TargetValue = postgres.FloatPtr(target)
	m.BenchmarkValue = postgres.FloatPtr(benchmark)
	m.ImprovementTarget = postgres.FloatPtr(improvement)
	m.ThresholdRed = postgres.FloatPtr(red)
	m.ThresholdYellow = postgres.FloatPtr(yellow)
	m.ThresholdGreen = postgres.FloatPtr(green)
	return &m, nil
}
