package initiative

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/platform/postgres"
	"esgtrack/pkg/platform/sentinel"
	"esgtrack/pkg/platform/tx"
)

// PostgresStore persists initiatives in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed initiative store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const initiativeColumns = `id, name, company, related_policy, category, priority, status,
	start_date, end_date, budget, actual_cost, responsible_person, description, created_at`

func (s *PostgresStore) Save(ctx context.Context, i *models.Initiative) error {
	_, err := tx.Use(ctx, s.db).ExecContext(ctx, `
		INSERT INTO esg_initiatives (`+initiativeColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		i.ID, i.Name, i.Company, i.RelatedPolicy, string(i.Category), string(i.Priority), string(i.Status),
		i.StartDate, i.EndDate, i.Budget, i.ActualCost, i.ResponsiblePerson, i.Description, i.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save initiative: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Initiative, error) {
	i, err := scanInitiative(tx.Use(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+initiativeColumns+` FROM esg_initiatives WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find initiative: %w", err)
	}
	return i, nil
}

func (s *PostgresStore) Update(ctx context.Context, i *models.Initiative) error {
	res, err := tx.Use(ctx, s.db).ExecContext(ctx, `
		UPDATE esg_initiatives
		SET status = $2, priority = $3, actual_cost = $4, end_date = $5, description = $6
		WHERE id = $1`,
		i.ID, string(i.Status), string(i.Priority), i.ActualCost, i.EndDate, i.Description,
	)
	if err != nil {
		return fmt.Errorf("update initiative: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update initiative: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.InitiativeFilter) ([]*models.Initiative, error) {
	var (
		conds []string
		args  []any
	)
	add := func(expr string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}
	if filter.Company != "" {
		add("company = $%d", filter.Company)
	}
	if !filter.CreatedFrom.IsZero() {
		add("created_at::date >= $%d", models.Day(filter.CreatedFrom))
	}
	if !filter.CreatedTo.IsZero() {
		add("created_at::date <= $%d", models.Day(filter.CreatedTo))
	}
	if filter.ExcludeClosed {
		conds = append(conds, fmt.Sprintf("status NOT IN ('%s', '%s')", models.InitiativeCompleted, models.InitiativeCancelled))
	}
	query := `SELECT ` + initiativeColumns + ` FROM esg_initiatives`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, name ASC"

	rows, err := tx.Use(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list initiatives: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Initiative, 0)
	for rows.Next() {
		i, err := scanInitiative(rows)
		if err != nil {
			return nil, fmt.Errorf("scan initiative: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInitiative(row scanner) (*models.Initiative, error) {
	var (
		i                          models.Initiative
		category, priority, status string
	)
	err := row.Scan(
		&i.ID, &i.Name, &i.Company, &i.RelatedPolicy, &category, &priority, &status,
		&i.StartDate, &i.EndDate, &i.Budget, &i.ActualCost, &i.ResponsiblePerson, &i.Description, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	i.Category = models.Category(category)
	i.Priority = models.Priority(priority)
	i.Status = models.InitiativeStatus(status)
	i.StartDate = models.Day(i.StartDate)
	i.EndDate = models.Day(i.EndDate)
	return &i, nil
}
