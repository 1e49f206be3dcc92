package compliance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
)

// Evaluate computes the full derived bundle for a document under an already resolved rule.
func Evaluate(now time.Time, doc model.Document, rule model.ComplianceRule) model.Computed {
	status := ComputeStatus(now, doc, rule.GracePeriodDays)
	out := model.Computed{
		Status:        status,
		EstimatedFine: ComputeFine(now, doc, rule, status),
	}
	if doc.ExpiryDate != nil {
		remaining := DaysBetween(now, *doc.ExpiryDate)
		out.DaysRemaining = &remaining
	}
	switch status {
	case model.StatusInGrace:
		left := max(rule.GracePeriodDays, 0) + *out.DaysRemaining
		out.GraceDaysRemaining = &left
	case model.StatusPenaltyActive:
		days := DaysInPenalty(now, doc, rule.GracePeriodDays)
		out.DaysInPenalty = &days
	}
	return out
}

// Summary aggregates computed bundles across a set of documents.
type Summary struct {
	Total      int                  `json:"total"`
	ByStatus   map[model.Status]int `json:"by_status"`
	TotalFines decimal.Decimal      `json:"total_fines"`
}

// Summarize counts statuses and sums accrued fines.
func Summarize(bundles []model.Computed) Summary {
	s := Summary{
		ByStatus:   make(map[model.Status]int),
		TotalFines: decimal.Zero,
	}
	for _, b := range bundles {
		s.Total++
		s.ByStatus[b.Status]++
		s.TotalFines = s.TotalFines.Add(b.EstimatedFine)
	}
	return s
}
