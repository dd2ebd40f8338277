// Package profile implements the employee profile repository using PostgreSQL.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/workdeskhq/workdesk-backend/internal/adapter/postgres"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// Repo provides profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const profileColumns = `id, email, full_name, role, department, created_at`

const getByIDSQL = `
SELECT ` + profileColumns + `
FROM profiles
WHERE id = $1`

const getByIDsSQL = `
SELECT ` + profileColumns + `
FROM profiles
WHERE id = ANY($1::uuid[])`

const listEmployeesSQL = `
SELECT ` + profileColumns + `
FROM profiles
WHERE role = 'employee'
ORDER BY full_name`

const createSQL = `
INSERT INTO profiles (id, email, full_name, role, department, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + profileColumns

// GetByID returns a profile by primary key.
// Returns domain.ErrNotFound if the profile does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanProfile(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, "profile", id)
	}

	return p, nil
}

// GetByIDs returns profiles for the given IDs, keyed by ID.
// Missing IDs are simply absent from the map.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Profile, error) {
	out := make(map[uuid.UUID]*domain.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("get profiles by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return out, nil
}

// ListEmployees returns all profiles with the employee role, ordered by name.
func (r *Repo) ListEmployees(ctx context.Context) ([]*domain.Profile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listEmployeesSQL)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var ps []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	if ps == nil {
		ps = []*domain.Profile{}
	}

	return ps, nil
}

// Create inserts a new profile and returns the persisted domain.Profile.
// Returns domain.ErrAlreadyExists on a duplicate ID or email.
func (r *Repo) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanProfile(querier.QueryRow(ctx, createSQL,
		p.ID,
		p.Email,
		p.FullName,
		string(p.Role),
		p.Department,
		p.CreatedAt,
	))
	if err != nil {
		return nil, mapError(err, "profile", p.ID)
	}

	return created, nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p    domain.Profile
		role string
	)

	err := row.Scan(&p.ID, &p.Email, &p.FullName, &role, &p.Department, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	p.Role = domain.Role(role)
	return &p, nil
}

func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
