// Package request implements the workplace request repository using PostgreSQL.
// Triage insights are stored as a JSONB document alongside the row; decision
// transitions use a conditional UPDATE so a request leaves Pending exactly once.
package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/workdeskhq/workdesk-backend/internal/adapter/postgres"
	"github.com/workdeskhq/workdesk-backend/internal/domain"
)

// Repo provides request persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new request repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const requestColumns = `id, employee_id, type, from_date, to_date, reason, category, priority,
status, reviewed_by, reviewed_at, comment, insights, created_at`

const createSQL = `
INSERT INTO requests (id, employee_id, type, from_date, to_date, reason, category, priority,
status, reviewed_by, reviewed_at, comment, insights, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + requestColumns

const getByIDSQL = `
SELECT ` + requestColumns + `
FROM requests
WHERE id = $1`

const listByEmployeeSQL = `
SELECT ` + requestColumns + `
FROM requests
WHERE employee_id = $1
ORDER BY created_at DESC`

const listAllSQL = `
SELECT ` + requestColumns + `
FROM requests
ORDER BY created_at DESC`

// updateStatusSQL only matches when the stored status equals the expected one.
// A concurrent reviewer who already moved the row leaves this with 0 rows affected.
const updateStatusSQL = `
UPDATE requests
SET status = $3, reviewed_by = $4, reviewed_at = $5, comment = $6
WHERE id = $1 AND status = $2`

const statsByEmployeeSQL = `
SELECT
    count(*) AS total,
    count(*) FILTER (WHERE status = 'Pending') AS pending,
    count(*) FILTER (WHERE status = 'Accepted') AS accepted,
    count(*) FILTER (WHERE status = 'Rejected') AS rejected,
    count(*) FILTER (WHERE priority = 'High') AS high_priority
FROM requests
WHERE employee_id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a request by primary key.
// Returns domain.ErrNotFound if the request does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	req, err := scanRequest(row)
	if err != nil {
		return nil, mapError(err, "request", id)
	}

	return req, nil
}

// ListByEmployee returns all requests submitted by an employee,
// ordered by created_at DESC. Returns an empty slice if there are none.
func (r *Repo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Request, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByEmployeeSQL, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list requests by employee: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// ListAll returns every request in the system, ordered by created_at DESC.
func (r *Repo) ListAll(ctx context.Context) ([]*domain.Request, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listAllSQL)
	if err != nil {
		return nil, fmt.Errorf("list all requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// StatsByEmployee returns aggregate counts over an employee's requests.
func (r *Repo) StatsByEmployee(ctx context.Context, employeeID uuid.UUID) (*domain.RequestStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.RequestStats
	err := querier.QueryRow(ctx, statsByEmployeeSQL, employeeID).
		Scan(&s.Total, &s.Pending, &s.Accepted, &s.Rejected, &s.HighPriority)
	if err != nil {
		return nil, fmt.Errorf("request stats by employee: %w", err)
	}

	return &s, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new request and returns the persisted domain.Request.
func (r *Repo) Create(ctx context.Context, req *domain.Request) (*domain.Request, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	insights, err := marshalInsights(req.Insights)
	if err != nil {
		return nil, fmt.Errorf("request marshal insights: %w", err)
	}

	row := querier.QueryRow(ctx, createSQL,
		req.ID,
		req.EmployeeID,
		string(req.Type),
		req.FromDate,
		req.ToDate,
		req.Reason,
		string(req.Category),
		string(req.Priority),
		string(req.Status),
		req.ReviewedBy,
		req.ReviewedAt,
		req.Comment,
		insights,
		req.CreatedAt,
	)

	created, err := scanRequest(row)
	if err != nil {
		return nil, mapError(err, "request", req.ID)
	}

	return created, nil
}

// UpdateStatus transitions a request from expectedStatus to newStatus.
// Returns false (and no error) when the request no longer has expectedStatus,
// which the caller reports as a decision conflict. Returns domain.ErrNotFound
// if the request does not exist at all.
func (r *Repo) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	expectedStatus, newStatus domain.Status,
	reviewerID uuid.UUID,
	comment *string,
	reviewedAt time.Time,
) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateStatusSQL,
		id,
		string(expectedStatus),
		string(newStatus),
		reviewerID,
		reviewedAt,
		comment,
	)
	if err != nil {
		return false, mapError(err, "request", id)
	}

	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// Distinguish "already decided" from "never existed".
	var exists bool
	if err := querier.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("request %s: check existence: %w", id, err)
	}
	if !exists {
		return false, fmt.Errorf("request %s: %w", id, domain.ErrNotFound)
	}

	return false, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

// insightsJSON is the JSONB layout for triage insights.
// Keep the tags in sync with any query that reaches into the document.
type insightsJSON struct {
	CategoryReason  string   `json:"category_reason"`
	PriorityReason  string   `json:"priority_reason"`
	IntentSignals   []string `json:"intent_signals"`
	ConfidenceScore float64  `json:"confidence_score"`
	SuggestedAction string   `json:"suggested_action"`
	RiskLevel       string   `json:"risk_level"`
	BusinessImpact  string   `json:"business_impact"`
}

func marshalInsights(in domain.Insights) ([]byte, error) {
	doc := insightsJSON{
		CategoryReason:  in.CategoryReason,
		PriorityReason:  in.PriorityReason,
		IntentSignals:   in.IntentSignals,
		ConfidenceScore: in.ConfidenceScore,
		SuggestedAction: string(in.SuggestedAction),
		RiskLevel:       string(in.RiskLevel),
		BusinessImpact:  in.BusinessImpact,
	}
	return json.Marshal(doc)
}

func unmarshalInsights(data []byte) (domain.Insights, error) {
	if len(data) == 0 {
		return domain.Insights{}, nil
	}

	var doc insightsJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Insights{}, fmt.Errorf("unmarshal insights: %w", err)
	}

	return domain.Insights{
		CategoryReason:  doc.CategoryReason,
		PriorityReason:  doc.PriorityReason,
		IntentSignals:   doc.IntentSignals,
		ConfidenceScore: doc.ConfidenceScore,
		SuggestedAction: domain.SuggestedAction(doc.SuggestedAction),
		RiskLevel:       domain.RiskLevel(doc.RiskLevel),
		BusinessImpact:  doc.BusinessImpact,
	}, nil
}

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var (
		req      domain.Request
		typ      string
		category string
		priority string
		status   string
		insights []byte
	)

	err := row.Scan(
		&req.ID,
		&req.EmployeeID,
		&typ,
		&req.FromDate,
		&req.ToDate,
		&req.Reason,
		&category,
		&priority,
		&status,
		&req.ReviewedBy,
		&req.ReviewedAt,
		&req.Comment,
		&insights,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.Type = domain.RequestType(typ)
	req.Category = domain.Category(category)
	req.Priority = domain.Priority(priority)
	req.Status = domain.Status(status)

	in, err := unmarshalInsights(insights)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.ID, err)
	}
	req.Insights = in

	return &req, nil
}

func collectRequests(rows pgx.Rows) ([]*domain.Request, error) {
	var reqs []*domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}

	if reqs == nil {
		reqs = []*domain.Request{}
	}

	return reqs, nil
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
