package policy

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

// PostgresStore persists policies in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed policy store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const policyColumns = `id, name, company, description, effective_date, expiry_date, owner,
	review_frequency, next_review_date, status, approved_by, approval_date, created_at`

func (s *PostgresStore) Save(ctx context.Context, p *models.Policy) error {
	_, err := tx.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO esg_policies (`+policyColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.Name, p.Company, p.Description, p.EffectiveDate, postgres.NullTime(p.ExpiryDate), p.Owner,
		string(p.ReviewFrequency), postgres.NullTime(p.NextReviewDate), string(p.Status), p.ApprovedBy,
		postgres.NullTime(p.ApprovalDate), p.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save policy: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	return s.findOne(ctx, `SELECT `+policyColumns+` FROM esg_policies WHERE id = $1`, id)
}

func (s *PostgresStore) FindByName(ctx context.Context, company, name string) (*models.Policy, error) {
	return s.findOne(ctx, `SELECT `+policyColumns+` FROM esg_policies WHERE company = $1 AND name = $2`, company, name)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, args ...any) (*models.Policy, error) {
	p, err := scanPolicy(tx.Use(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find policy: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) List(ctx context.Context, company string) ([]*models.Policy, error) {
	rows, err := tx.Use(ctx, s.db).QueryContext(ctx,
		`SELECT `+policyColumns+` FROM esg_policies WHERE ($1 = '' OR company = $1) ORDER BY name`, company)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Policy, 0)
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPolicy(row scanner) (*models.Policy, error) {
	var (
		p                            models.Policy
		frequency, status            string
		expiry, nextReview, approved sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Company, &p.Description, &p.EffectiveDate, &expiry, &p.Owner,
		&frequency, &nextReview, &status, &p.ApprovedBy, &approved, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.EffectiveDate = models.Day(p.EffectiveDate)
	p.ExpiryDate = postgres.TimePtr(expiry)
	p.ReviewFrequency = models.Frequency(frequency)
	p.NextReviewDate = postgres.TimePtr(nextReview)
	p.Status = models.PolicyStatus(status)
	p.ApprovalDate = postgres.TimePtr(approved)
	return &p, nil
}
