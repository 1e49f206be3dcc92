package compliance

import (
	"github.com/shopspring/decimal"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
)

// DefaultRule is used when neither a stored rule nor legacy columns apply:
// no grace, no fine, daily accrual.
func DefaultRule(documentType string) model.ComplianceRule {
	return model.ComplianceRule{
		DocumentType: documentType,
		FinePerDay:   decimal.Zero,
		FineType:     model.FineDaily,
		FineCap:      decimal.Zero,
	}
}

// ResolveRule picks the effective rule for a document. Precedence:
//  1. company-specific rule
//  2. global rule
//  3. legacy per-document columns
//  4. DefaultRule
//
// It never fails; any nil argument is simply skipped.
func ResolveRule(documentType string, company, global *model.ComplianceRule, legacy *model.LegacyRule) model.ComplianceRule {
	switch {
	case company != nil:
		return normalize(*company)
	case global != nil:
		return normalize(*global)
	case legacy != nil:
		return fromLegacy(documentType, legacy)
	default:
		return DefaultRule(documentType)
	}
}

func fromLegacy(documentType string, l *model.LegacyRule) model.ComplianceRule {
	r := DefaultRule(documentType)
	if l.GracePeriodDays != nil {
		r.GracePeriodDays = *l.GracePeriodDays
	}
	if l.FinePerDay != nil {
		r.FinePerDay = *l.FinePerDay
	}
	if l.FineType != nil {
		r.FineType = model.FineType(*l.FineType)
	}
	if l.FineCap != nil {
		r.FineCap = *l.FineCap
	}
	return normalize(r)
}

// normalize clamps values a calculator cannot use into their defaults.
func normalize(r model.ComplianceRule) model.ComplianceRule {
	switch r.FineType {
	case model.FineDaily, model.FineMonthly, model.FineOneTime:
	default:
		r.FineType = model.FineDaily
	}
	if r.GracePeriodDays < 0 {
		r.GracePeriodDays = 0
	}
	if r.FinePerDay.IsNegative() {
		r.FinePerDay = decimal.Zero
	}
	if r.FineCap.IsNegative() {
		r.FineCap = decimal.Zero
	}
	return r
}

type ruleKey struct {
	companyID    string
	documentType string
}

// RuleSet indexes loaded rules so a batch of documents resolves without further queries.
// It is read-only after construction and safe for concurrent use.
type RuleSet struct {
	company map[ruleKey]model.ComplianceRule
	global  map[string]model.ComplianceRule
}

// NewRuleSet builds a RuleSet. When duplicates slip past the store's unique
// indexes, the first rule seen for a key wins.
func NewRuleSet(rules []model.ComplianceRule) *RuleSet {
	rs := &RuleSet{
		company: make(map[ruleKey]model.ComplianceRule),
		global:  make(map[string]model.ComplianceRule),
	}
	for _, r := range rules {
		if r.IsGlobal() {
			if _, ok := rs.global[r.DocumentType]; !ok {
				rs.global[r.DocumentType] = r
			}
			continue
		}
		k := ruleKey{companyID: *r.CompanyID, documentType: r.DocumentType}
		if _, ok := rs.company[k]; !ok {
			rs.company[k] = r
		}
	}
	return rs
}

// Resolve returns the effective rule for a document of the given company.
func (rs *RuleSet) Resolve(companyID, documentType string, legacy *model.LegacyRule) model.ComplianceRule {
	var company, global *model.ComplianceRule
	if rs != nil {
		if r, ok := rs.company[ruleKey{companyID: companyID, documentType: documentType}]; ok && companyID != "" {
			company = &r
		}
		if r, ok := rs.global[documentType]; ok {
			global = &r
		}
	}
	return ResolveRule(documentType, company, global, legacy)
}

// ResolveFor is a convenience for a single document.
func (rs *RuleSet) ResolveFor(doc model.Document) model.ComplianceRule {
	return rs.Resolve(doc.CompanyID, doc.DocumentType, doc.Legacy)
}
