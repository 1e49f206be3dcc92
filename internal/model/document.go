package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is a compliance document tracked for an employee.
// Status and fine are never stored here; they are derived on every read.
type Document struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	EmployeeName   string     `json:"employee_name,omitempty"`
	CompanyID      string     `json:"company_id,omitempty"`
	DocumentType   string     `json:"document_type"`
	DocumentNumber *string    `json:"document_number,omitempty"`
	IssueDate      *time.Time `json:"issue_date,omitempty"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	FileRef        *string    `json:"file_ref,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Legacy holds the deprecated per-document rule columns, if any were set.
	Legacy *LegacyRule `json:"-"`
}

// LegacyRule mirrors the old per-document rule columns. Any field may be absent.
type LegacyRule struct {
	GracePeriodDays *int
	FinePerDay      *decimal.Decimal
	FineType        *string
	FineCap         *decimal.Decimal
}

// Computed is the derived compliance bundle attached to each document read.
type Computed struct {
	Status             Status          `json:"status"`
	EstimatedFine      decimal.Decimal `json:"estimated_fine"`
	DaysRemaining      *int            `json:"days_remaining"`
	GraceDaysRemaining *int            `json:"grace_days_remaining"`
	DaysInPenalty      *int            `json:"days_in_penalty"`
}

// DocumentView is a stored document together with its computed fields.
type DocumentView struct {
	Document
	Computed Computed `json:"compliance"`
	FileURL  string   `json:"file_url,omitempty"`
}
