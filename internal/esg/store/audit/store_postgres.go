package audit

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

// PostgresStore persists audits in PostgreSQL. Findings are stored as JSONB.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed audit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const auditColumns = `id, name, company, audit_type, audit_date, status, auditor,
	overall_rating, findings, next_audit_date, created_at`

func (s *PostgresStore) Save(ctx context.Context, a *models.Audit) error {
	findings, err := json.Marshal(a.Findings)
	if err != nil {
		return fmt.Errorf("marshal findings: %w", err)
	}
	_, err = tx.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO esg_audits (`+auditColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.Name, a.Company, string(a.Type), a.AuditDate, string(a.Status), a.Auditor,
		a.OverallRating, findings, postgres.NullTime(a.NextAuditDate), a.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save audit: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Audit, error) {
	a, err := scanAudit(tx.Use(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+auditColumns+` FROM esg_audits WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find audit: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) List(ctx context.Context, company string) ([]*models.Audit, error) {
	rows, err := tx.Use(ctx, s.db).QueryContext(ctx,
		`SELECT `+auditColumns+` FROM esg_audits WHERE ($1 = '' OR company = $1) ORDER BY audit_date DESC`, company)
	if err != nil {
		return nil, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Audit, 0)
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAudit(row scanner) (*models.Audit, error) {
	var (
		a                 models.Audit
		auditType, status string
		findings          []byte
		next              sql.NullTime
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.Company, &auditType, &a.AuditDate, &status, &a.Auditor,
		&a.OverallRating, &findings, &next, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Type = models.AuditType(auditType)
	a.Status = models.AuditStatus(status)
	a.AuditDate = models.Day(a.AuditDate)
	a.NextAuditDate = postgres.TimePtr(next)
	a.Findings = []models.Finding{}
	if len(findings) > 0 {
		if err := json.Unmarshal(findings, &a.Findings); err != nil {
			return nil, fmt.Errorf("unmarshal findings: %w", err)
		}
	}
	return &a, nil
}
