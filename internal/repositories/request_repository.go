package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blucialabs/backend/internal/models"
)

const requestColumns = `sr.id, sr.user_id, sr.name, sr.email, sr.phone, sr.client_type,
	COALESCE(sr.company_name, ''), COALESCE(sr.company_location, ''), COALESCE(sr.industry, ''),
	COALESCE(sr.project_reason, ''), sr.service_type, sr.project_description,
	COALESCE(sr.budget, ''), sr.budget_amount, sr.budget_currency,
	COALESCE(sr.timeline, ''), COALESCE(sr.hear_about_us, ''), sr.status, sr.created_at, sr.updated_at`

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func scanRequest(row pgx.Row) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Name,
		&req.Email,
		&req.Phone,
		&req.ClientType,
		&req.CompanyName,
		&req.CompanyLocation,
		&req.Industry,
		&req.ProjectReason,
		&req.ServiceType,
		&req.ProjectDescription,
		&req.Budget,
		&req.BudgetAmount,
		&req.BudgetCurrency,
		&req.Timeline,
		&req.HearAboutUs,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) Create(ctx context.Context, req *models.ServiceRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	query := `
		INSERT INTO service_requests
			(id, user_id, name, email, phone, client_type, company_name, company_location, industry,
			 project_reason, service_type, project_description, budget, budget_amount, budget_currency,
			 timeline, hear_about_us)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''),
			NULLIF($10, ''), $11, $12, NULLIF($13, ''), $14, $15, NULLIF($16, ''), NULLIF($17, ''))
		RETURNING status, created_at, updated_at
	`

	return r.pool.QueryRow(ctx, query,
		req.ID,
		req.UserID,
		req.Name,
		req.Email,
		req.Phone,
		req.ClientType,
		req.CompanyName,
		req.CompanyLocation,
		req.Industry,
		req.ProjectReason,
		req.ServiceType,
		req.ProjectDescription,
		req.Budget,
		req.BudgetAmount,
		req.BudgetCurrency,
		req.Timeline,
		req.HearAboutUs,
	).Scan(&req.Status, &req.CreatedAt, &req.UpdatedAt)
}

// ListByUser returns the caller's own requests, newest first.
func (r *RequestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM service_requests sr
		WHERE sr.user_id = $1
		ORDER BY sr.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.ServiceRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// FindByIDForUser scopes the lookup to the owner; a row belonging to
// another user comes back as nil exactly like a missing id.
func (r *RequestRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM service_requests sr
		WHERE sr.id = $1 AND sr.user_id = $2`
	return scanRequest(r.pool.QueryRow(ctx, query, id, userID))
}

func scanAdminRequest(row pgx.Row) (*models.AdminRequest, error) {
	var req models.AdminRequest
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Name,
		&req.Email,
		&req.Phone,
		&req.ClientType,
		&req.CompanyName,
		&req.CompanyLocation,
		&req.Industry,
		&req.ProjectReason,
		&req.ServiceType,
		&req.ProjectDescription,
		&req.Budget,
		&req.BudgetAmount,
		&req.BudgetCurrency,
		&req.Timeline,
		&req.HearAboutUs,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.UserName,
		&req.UserEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// ListAllWithOwner joins every request with its owner's live account
// name/email for the admin console, newest first.
func (r *RequestRepository) ListAllWithOwner(ctx context.Context) ([]models.AdminRequest, error) {
	query := `SELECT ` + requestColumns + `, u.name, u.email
		FROM service_requests sr
		JOIN users u ON sr.user_id = u.id
		ORDER BY sr.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.AdminRequest, 0)
	for rows.Next() {
		req, err := scanAdminRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// FindByIDWithOwner fetches one request with owner info, unscoped (admin).
func (r *RequestRepository) FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*models.AdminRequest, error) {
	query := `SELECT ` + requestColumns + `, u.name, u.email
		FROM service_requests sr
		JOIN users u ON sr.user_id = u.id
		WHERE sr.id = $1`
	return scanAdminRequest(r.pool.QueryRow(ctx, query, id))
}

// UpdateStatus applies the status unconditionally (last write wins) and
// returns the updated row, or nil when the id does not exist.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.ServiceRequest, error) {
	query := `UPDATE service_requests sr
		SET status = $1, updated_at = NOW()
		WHERE sr.id = $2
		RETURNING ` + requestColumns
	return scanRequest(r.pool.QueryRow(ctx, query, status, id))
}

// StatusCounts aggregates requests by status for the dashboard.
func (r *RequestRepository) StatusCounts(ctx context.Context) (*models.RequestCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'in-progress'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled')
		FROM service_requests
	`
	var counts models.RequestCounts
	err := r.pool.QueryRow(ctx, query).Scan(
		&counts.Total,
		&counts.Pending,
		&counts.InProgress,
		&counts.Completed,
		&counts.Cancelled,
	)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

// ListRecentWithOwner returns the most recently created requests with owner
// info, for the dashboard's recent list.
func (r *RequestRepository) ListRecentWithOwner(ctx context.Context, limit int) ([]models.AdminRequest, error) {
	query := `SELECT ` + requestColumns + `, u.name, u.email
		FROM service_requests sr
		JOIN users u ON sr.user_id = u.id
		ORDER BY sr.created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.AdminRequest, 0, limit)
	for rows.Next() {
		req, err := scanAdminRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
