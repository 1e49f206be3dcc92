package repository

import (
	"context"
	"time"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
)

// DocumentRepository reads compliance documents. Writes belong to the surrounding application.
type DocumentRepository interface {
	// FindByID returns a document by its ID, joined with its employee's company.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByEmployee returns every document owned by the employee.
	ListByEmployee(ctx context.Context, employeeID string) ([]model.Document, error)

	// ListAlertCandidates returns (document, recipient) pairs for documents that have a file
	// and an expiry date on or before until. Rows that fail to scan are reported to
	// onRowError and skipped; the returned error is reserved for query-level failures.
	ListAlertCandidates(ctx context.Context, until time.Time, onRowError func(error)) ([]model.AlertCandidate, error)
}

// RuleRepository reads compliance rules.
type RuleRepository interface {
	// ListAll returns every global and company-specific rule.
	ListAll(ctx context.Context) ([]model.ComplianceRule, error)

	// ListApplicable returns the global rules plus those scoped to companyID.
	ListApplicable(ctx context.Context, companyID string) ([]model.ComplianceRule, error)
}

// DependencyRepository reads the static dependency graph.
type DependencyRepository interface {
	List(ctx context.Context) ([]model.DependencyEdge, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
