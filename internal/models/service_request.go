package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the service request lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo is the single place the transition policy lives. The admin
// console currently allows setting any status from any prior state, so every
// valid target is accepted; tighten here if that ever changes.
func (s Status) CanTransitionTo(target Status) bool {
	return target.Valid()
}

// ClientType distinguishes individual requesters from companies.
type ClientType string

const (
	ClientIndividual ClientType = "individual"
	ClientCompany    ClientType = "company"
)

func (t ClientType) Valid() bool {
	return t == ClientIndividual || t == ClientCompany
}

// SupportedCurrencies are the accepted budget_currency codes. USD is the
// default when the client omits the field.
var SupportedCurrencies = []string{"USD", "TZS", "EUR", "GBP", "KES", "ZAR", "NGN", "GHS", "UGX", "RWF"}

const DefaultCurrency = "USD"

func CurrencySupported(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

// ServiceRequest is a client-submitted project inquiry. Name, email and
// phone are a snapshot taken at submission time and stay as submitted even
// if the owning account's profile changes later.
type ServiceRequest struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"userId"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	ClientType         ClientType `json:"clientType"`
	CompanyName        string     `json:"companyName,omitempty"`
	CompanyLocation    string     `json:"companyLocation,omitempty"`
	Industry           string     `json:"industry,omitempty"`
	ProjectReason      string     `json:"projectReason,omitempty"`
	ServiceType        string     `json:"serviceType"`
	ProjectDescription string     `json:"projectDescription"`
	Budget             string     `json:"budget,omitempty"`
	BudgetAmount       *float64   `json:"budgetAmount,omitempty"`
	BudgetCurrency     string     `json:"budgetCurrency"`
	Timeline           string     `json:"timeline,omitempty"`
	HearAboutUs        string     `json:"hearAboutUs,omitempty"`
	Status             Status     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// AdminRequest is a request row joined with its owner's live account
// name/email for the admin console.
type AdminRequest struct {
	ServiceRequest
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}
