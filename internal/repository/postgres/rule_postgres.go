package postgres

import (
	"context"
	"database/sql"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/repository"
)

// RulePostgres reads compliance_rules and document_dependencies.
type RulePostgres struct {
	db *sql.DB
}

// NewRulePostgres creates a new RulePostgres repository.
func NewRulePostgres(db *sql.DB) *RulePostgres {
	return &RulePostgres{db: db}
}

var (
	_ repository.RuleRepository       = (*RulePostgres)(nil)
	_ repository.DependencyRepository = (*RulePostgres)(nil)
)

const ruleSelect = `
	SELECT id, company_id, document_type, grace_period_days, fine_per_day, fine_type, fine_cap
	FROM compliance_rules`

// ListAll returns every rule, global rules first.
func (r *RulePostgres) ListAll(ctx context.Context) ([]model.ComplianceRule, error) {
	return r.queryRules(ctx, ruleSelect+` ORDER BY company_id NULLS FIRST, document_type`)
}

// ListApplicable returns global rules and the rules of one company.
func (r *RulePostgres) ListApplicable(ctx context.Context, companyID string) ([]model.ComplianceRule, error) {
	if companyID == "" {
		return r.queryRules(ctx, ruleSelect+` WHERE company_id IS NULL ORDER BY document_type`)
	}
	return r.queryRules(ctx, ruleSelect+`
		WHERE company_id IS NULL OR company_id = $1
		ORDER BY company_id NULLS FIRST, document_type`, companyID)
}

func (r *RulePostgres) queryRules(ctx context.Context, q string, args ...any) ([]model.ComplianceRule, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ComplianceRule, 0)
	for rows.Next() {
		var (
			rule      model.ComplianceRule
			companyID sql.NullString
			fineType  string
		)
		if err := rows.Scan(
			&rule.ID,
			&companyID,
			&rule.DocumentType,
			&rule.GracePeriodDays,
			&rule.FinePerDay,
			&fineType,
			&rule.FineCap,
		); err != nil {
			return nil, err
		}
		if companyID.Valid {
			rule.CompanyID = &companyID.String
		}
		rule.FineType = model.FineType(fineType)
		items = append(items, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// List returns every dependency edge.
func (r *RulePostgres) List(ctx context.Context) ([]model.DependencyEdge, error) {
	const q = `
		SELECT id, blocking_type, blocked_type, description
		FROM document_dependencies
		ORDER BY blocking_type, blocked_type
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DependencyEdge, 0)
	for rows.Next() {
		var e model.DependencyEdge
		if err := rows.Scan(&e.ID, &e.BlockingType, &e.BlockedType, &e.Description); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
