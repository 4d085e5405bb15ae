package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/platform/postgres"
	"esgtrack/pkg/platform/sentinel"
	"esgtrack/pkg/platform/tx"
)

// PostgresStore persists company ESG settings in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed company settings store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Find(ctx context.Context, company string) (*models.CompanySettings, error) {
	var (
		c                  models.CompanySettings
		baseline, target   sql.NullFloat64
		baseYear, zeroYear sql.NullInt64
	)
	err := tx.Use(ctx, s.db).QueryRowContext(ctx, `
		SELECT company, company_name, baseline_emissions, baseline_year,
			annual_reduction_target, net_zero_target_year, updated_at
		FROM esg_companies WHERE company = $1`, company,
	).Scan(&c.Company, &c.CompanyName, &baseline, &baseYear, &target, &zeroYear, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find company settings: %w", err)
	}
	c.BaselineEmissions = postgres.FloatPtr(baseline)
	c.BaselineYear = postgres.IntPtr(baseYear)
	c.AnnualReductionTarget = postgres.FloatPtr(target)
	c.NetZeroTargetYear = postgres.IntPtr(zeroYear)
	return &c, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, c *models.CompanySettings) error {
	_, err := tx.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO esg_companies (
			company, company_name, baseline_emissions, baseline_year,
			annual_reduction_target, net_zero_target_year, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			baseline_emissions = EXCLUDED.baseline_emissions,
			baseline_year = EXCLUDED.baseline_year,
			annual_reduction_target = EXCLUDED.annual_reduction_target,
			net_zero_target_year = EXCLUDED.net_zero_target_year,
			updated_at = EXCLUDED.updated_at`,
		c.Company, c.CompanyName, postgres.NullFloat(c.BaselineEmissions), postgres.NullInt(c.BaselineYear),
		postgres.NullFloat(c.AnnualReductionTarget), postgres.NullInt(c.NetZeroTargetYear), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert company settings: %w", err)
	}
	return nil
}
