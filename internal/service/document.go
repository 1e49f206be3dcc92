package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/compliance"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/logging"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/repository"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrInvalidID  = errors.New("id must be a valid UUID")
	ErrNotFound   = errors.New("document not found")
)

const defaultPresignExpiry = 15 * time.Minute

// EmployeeDocuments is the service-level DTO for an employee's documents.
type EmployeeDocuments struct {
	Items   []model.DocumentView `json:"data"`
	Summary compliance.Summary   `json:"summary"`
}

// DocumentService defines the read use cases for compliance documents. Every
// document it returns carries freshly computed status and fine.
type DocumentService interface {
	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.DocumentView, error)

	// ListByEmployee returns an employee's documents with a status summary.
	ListByEmployee(ctx context.Context, employeeID string) (*EmployeeDocuments, error)

	// DependencyAlerts evaluates the dependency graph against an employee's documents.
	DependencyAlerts(ctx context.Context, employeeID string) ([]model.DependencyAlert, error)
}

// DocumentOption configures the document service.
type DocumentOption func(*documentService)

// WithPresigner attaches download URLs to documents whose file lives in object storage.
func WithPresigner(p storage.Presigner, expiry time.Duration) DocumentOption {
	return func(s *documentService) {
		s.presigner = p
		if expiry > 0 {
			s.presignExpiry = expiry
		}
	}
}

// WithClock replaces time.Now for evaluation.
func WithClock(now func() time.Time) DocumentOption {
	return func(s *documentService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone whose calendar day counts as "today". It must match
// the notifier's zone so the API and the alerts agree on days remaining.
func WithLocation(loc *time.Location) DocumentOption {
	return func(s *documentService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) DocumentOption {
	return func(s *documentService) {
		if l != nil {
			s.log = l
		}
	}
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	docs  repository.DocumentRepository
	rules repository.RuleRepository
	deps  repository.DependencyRepository

	presigner     storage.Presigner
	presignExpiry time.Duration
	now           func() time.Time
	loc           *time.Location
	log           *logging.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(docs repository.DocumentRepository, rules repository.RuleRepository, deps repository.DependencyRepository, opts ...DocumentOption) DocumentService {
	s := &documentService{
		docs:          docs,
		rules:         rules,
		deps:          deps,
		presignExpiry: defaultPresignExpiry,
		now:           time.Now,
		loc:           time.Local,
		log:           logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("document_service")
	return s
}

// today is the evaluation instant expressed in the configured zone.
func (s *documentService) today() time.Time {
	return s.now().In(s.loc)
}

func validateID(id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// Get returns a document by ID, evaluated against its company's rules.
func (s *documentService) Get(ctx context.Context, id string) (*model.DocumentView, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rules, err := s.rules.ListApplicable(ctx, doc.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	view := s.view(ctx, s.today(), compliance.NewRuleSet(rules), *doc)
	return &view, nil
}

// ListByEmployee evaluates all of an employee's documents in one pass.
func (s *documentService) ListByEmployee(ctx context.Context, employeeID string) (*EmployeeDocuments, error) {
	if err := validateID(employeeID); err != nil {
		return nil, err
	}
	docs, err := s.docs.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	out := &EmployeeDocuments{Items: make([]model.DocumentView, 0, len(docs))}
	if len(docs) == 0 {
		out.Summary = compliance.Summarize(nil)
		return out, nil
	}

	// An employee belongs to one company, so one rule load covers every document.
	rules, err := s.rules.ListApplicable(ctx, docs[0].CompanyID)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	ruleSet := compliance.NewRuleSet(rules)
	now := s.today()

	bundles := make([]model.Computed, 0, len(docs))
	for _, d := range docs {
		v := s.view(ctx, now, ruleSet, d)
		out.Items = append(out.Items, v)
		bundles = append(bundles, v.Computed)
	}
	out.Summary = compliance.Summarize(bundles)
	return out, nil
}

// DependencyAlerts returns the dependency alerts for one employee.
func (s *documentService) DependencyAlerts(ctx context.Context, employeeID string) ([]model.DependencyAlert, error) {
	if err := validateID(employeeID); err != nil {
		return nil, err
	}
	edges, err := s.deps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dependencies: %w", err)
	}
	docs, err := s.docs.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return compliance.CheckDependencies(s.today(), edges, docs), nil
}

func (s *documentService) view(ctx context.Context, now time.Time, ruleSet *compliance.RuleSet, doc model.Document) model.DocumentView {
	return model.DocumentView{
		Document: doc,
		Computed: compliance.Evaluate(now, doc, ruleSet.ResolveFor(doc)),
		FileURL:  s.fileURL(ctx, doc),
	}
}

// fileURL resolves the download link for a document. A presign failure only
// drops the link; the computed fields are still served.
func (s *documentService) fileURL(ctx context.Context, doc model.Document) string {
	if doc.FileRef == nil {
		return ""
	}
	ref := strings.TrimSpace(*doc.FileRef)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case s.presigner == nil:
		return ""
	}
	u, err := s.presigner.PresignGet(ctx, ref, s.presignExpiry)
	if err != nil {
		s.log.Error("presign_failed", err, map[string]any{"document_id": doc.ID})
		return ""
	}
	return u
}
