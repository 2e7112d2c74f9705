package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/mailer"
	"github.com/blucialabs/backend/internal/models"
)

const recentRequestLimit = 5

// CreateRequestInput carries the submitted form. The owning user is never
// part of it; ownership comes from the authenticated caller alone.
type CreateRequestInput struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	ClientType         string   `json:"clientType"`
	CompanyName        string   `json:"companyName"`
	CompanyLocation    string   `json:"companyLocation"`
	Industry           string   `json:"industry"`
	ProjectReason      string   `json:"projectReason"`
	ServiceType        string   `json:"serviceType"`
	ProjectDescription string   `json:"projectDescription"`
	Budget             string   `json:"budget"`
	BudgetAmount       *float64 `json:"budgetAmount"`
	BudgetCurrency     string   `json:"budgetCurrency"`
	Timeline           string   `json:"timeline"`
	HearAboutUs        string   `json:"hearAboutUs"`
}

type RequestService struct {
	requests   RequestStore
	users      UserStore
	dispatcher mailer.Dispatcher
	mailer     mailer.Mailer
	adminEmail string
	logger     *zap.Logger
}

func NewRequestService(requests RequestStore, users UserStore, dispatcher mailer.Dispatcher, m mailer.Mailer, adminEmail string, logger *zap.Logger) *RequestService {
	return &RequestService{
		requests:   requests,
		users:      users,
		dispatcher: dispatcher,
		mailer:     m,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Create validates and persists a new request owned by the caller, then
// dispatches the confirmation and the staff alert. Both sends are
// fire-and-forget; the request is already committed and stays committed.
func (s *RequestService) Create(ctx context.Context, callerID uuid.UUID, input *CreateRequestInput) (*models.ServiceRequest, error) {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return nil, apperrors.Validation("Name is required")
	case !emailPattern.MatchString(strings.TrimSpace(input.Email)):
		return nil, apperrors.Validation("Valid email is required")
	case strings.TrimSpace(input.Phone) == "":
		return nil, apperrors.Validation("Phone is required")
	case strings.TrimSpace(input.ServiceType) == "":
		return nil, apperrors.Validation("Service type is required")
	case strings.TrimSpace(input.ProjectDescription) == "":
		return nil, apperrors.Validation("Project description is required")
	}

	clientType := models.ClientType(input.ClientType)
	if input.ClientType == "" {
		clientType = models.ClientIndividual
	}
	if !clientType.Valid() {
		return nil, apperrors.Validation("Invalid client type")
	}

	currency := input.BudgetCurrency
	if currency == "" {
		currency = models.DefaultCurrency
	}
	if !models.CurrencySupported(currency) {
		return nil, apperrors.Validation("Unsupported currency")
	}

	req := &models.ServiceRequest{
		UserID:             callerID,
		Name:               strings.TrimSpace(input.Name),
		Email:              strings.TrimSpace(input.Email),
		Phone:              strings.TrimSpace(input.Phone),
		ClientType:         clientType,
		CompanyName:        input.CompanyName,
		CompanyLocation:    input.CompanyLocation,
		Industry:           input.Industry,
		ProjectReason:      input.ProjectReason,
		ServiceType:        input.ServiceType,
		ProjectDescription: input.ProjectDescription,
		Budget:             input.Budget,
		BudgetAmount:       input.BudgetAmount,
		BudgetCurrency:     currency,
		Timeline:           input.Timeline,
		HearAboutUs:        input.HearAboutUs,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, apperrors.Internal("failed to create request", err)
	}

	s.dispatcher.Dispatch(mailer.RequestReceived(req.Email, req.Name, req.ID.String()))
	s.dispatcher.Dispatch(mailer.AdminAlert(s.adminEmail, mailer.AdminAlertDetail{
		RequestID:          req.ID.String(),
		Name:               req.Name,
		Email:              req.Email,
		ServiceType:        req.ServiceType,
		ProjectDescription: req.ProjectDescription,
		Budget:             req.Budget,
		Timeline:           req.Timeline,
		ClientType:         string(req.ClientType),
		CompanyName:        req.CompanyName,
		CompanyLocation:    req.CompanyLocation,
		ProjectReason:      req.ProjectReason,
	}))

	s.logger.Info("service request created",
		zap.String("request_id", req.ID.String()),
		zap.String("user_id", callerID.String()),
	)

	return req, nil
}

func (s *RequestService) ListForUser(ctx context.Context, callerID uuid.UUID) ([]models.ServiceRequest, error) {
	requests, err := s.requests.ListByUser(ctx, callerID)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch requests", err)
	}
	return requests, nil
}

// GetForUser answers NotFound both for a missing id and for someone else's
// request; existence is never disclosed across owners.
func (s *RequestService) GetForUser(ctx context.Context, callerID, id uuid.UUID) (*models.ServiceRequest, error) {
	req, err := s.requests.FindByIDForUser(ctx, id, callerID)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch request", err)
	}
	if req == nil {
		return nil, apperrors.NotFound("Request not found")
	}
	return req, nil
}

func (s *RequestService) ListAll(ctx context.Context) ([]models.AdminRequest, error) {
	requests, err := s.requests.ListAllWithOwner(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch requests", err)
	}
	return requests, nil
}

// UpdateStatus rejects values outside the enum, then applies the transition
// policy. The policy currently admits every transition; it lives in
// Status.CanTransitionTo so it can be tightened in one place.
func (s *RequestService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.ServiceRequest, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("Invalid status")
	}

	current, err := s.requests.FindByIDWithOwner(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch request", err)
	}
	if current == nil {
		return nil, apperrors.NotFound("Request not found")
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, apperrors.Validation("Invalid status transition")
	}

	updated, err := s.requests.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, apperrors.Internal("failed to update status", err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("Request not found")
	}
	return updated, nil
}

// Stats is the read-side aggregation behind the admin dashboard.
func (s *RequestService) Stats(ctx context.Context) (*models.Stats, []models.AdminRequest, error) {
	counts, err := s.requests.StatusCounts(ctx)
	if err != nil {
		return nil, nil, apperrors.Internal("failed to aggregate requests", err)
	}

	_, clients, admins, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, nil, apperrors.Internal("failed to aggregate users", err)
	}

	recent, err := s.requests.ListRecentWithOwner(ctx, recentRequestLimit)
	if err != nil {
		return nil, nil, apperrors.Internal("failed to fetch recent requests", err)
	}

	return &models.Stats{Requests: *counts, Clients: clients, Admins: admins}, recent, nil
}

// EmailClient sends a free-form staff message to a request's owner. Unlike
// the lifecycle notifications this send is synchronous: its outcome is the
// whole point of the operation, so failure is surfaced.
func (s *RequestService) EmailClient(ctx context.Context, id uuid.UUID, subject, body string) (string, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(body) == "" {
		return "", apperrors.Validation("Subject and message are required")
	}

	req, err := s.requests.FindByIDWithOwner(ctx, id)
	if err != nil {
		return "", apperrors.Internal("failed to fetch request", err)
	}
	if req == nil {
		return "", apperrors.NotFound("Request not found")
	}

	msg := mailer.ClientMessage(
		req.UserEmail,
		req.UserName,
		subject,
		body,
		req.ID.String(),
		req.ServiceType,
		string(req.Status),
	)
	if err := s.mailer.Send(msg); err != nil {
		s.logger.Error("failed to send client email",
			zap.String("request_id", req.ID.String()),
			zap.Error(err),
		)
		return "", apperrors.Internal("failed to send email", err)
	}

	return req.UserEmail, nil
}
