package model

import "github.com/shopspring/decimal"

// Status is the derived lifecycle state of a document.
type Status string

const (
	StatusIncomplete    Status = "incomplete"
	StatusValid         Status = "valid"
	StatusExpiringSoon  Status = "expiring_soon"
	StatusInGrace       Status = "in_grace"
	StatusPenaltyActive Status = "penalty_active"
)

// FineType controls how a fine accrues once a document is in penalty.
type FineType string

const (
	FineDaily   FineType = "daily"
	FineMonthly FineType = "monthly"
	FineOneTime FineType = "one_time"
)

// ComplianceRule governs one document type. A nil CompanyID is the global rule.
type ComplianceRule struct {
	ID              string          `json:"id"`
	CompanyID       *string         `json:"company_id,omitempty"`
	DocumentType    string          `json:"document_type"`
	GracePeriodDays int             `json:"grace_period_days"`
	FinePerDay      decimal.Decimal `json:"fine_per_day"`
	FineType        FineType        `json:"fine_type"`
	// FineCap of zero means uncapped.
	FineCap decimal.Decimal `json:"fine_cap"`
}

// IsGlobal reports whether the rule applies to every company.
func (r ComplianceRule) IsGlobal() bool {
	return r.CompanyID == nil || *r.CompanyID == ""
}

// DependencyEdge states that BlockingType gates renewal of BlockedType.
type DependencyEdge struct {
	ID           string `json:"id"`
	BlockingType string `json:"blocking_type"`
	BlockedType  string `json:"blocked_type"`
	Description  string `json:"description"`
}

// Severity of a dependency alert.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// DependencyAlert is an advisory raised by the dependency checker.
type DependencyAlert struct {
	BlockingType       string   `json:"blocking_type"`
	BlockedType        string   `json:"blocked_type"`
	BlockingDocumentID string   `json:"blocking_document_id"`
	BlockedDocumentID  string   `json:"blocked_document_id"`
	Description        string   `json:"description"`
	Severity           Severity `json:"severity"`
	Message            string   `json:"message"`
}
