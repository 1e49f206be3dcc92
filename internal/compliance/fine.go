package compliance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
)

const daysPerFineMonth = 30

// DaysInPenalty returns how many days a document has been past expiry + grace.
// It is zero when the document is not in penalty or has no expiry date.
func DaysInPenalty(now time.Time, doc model.Document, gracePeriodDays int) int {
	if doc.ExpiryDate == nil {
		return 0
	}
	n := DaysBetween(AddDays(*doc.ExpiryDate, max(gracePeriodDays, 0)), now)
	if n < 0 {
		return 0
	}
	return n
}

// ComputeFine returns the fine accrued as of now. Anything other than
// penalty_active accrues nothing.
func ComputeFine(now time.Time, doc model.Document, rule model.ComplianceRule, status model.Status) decimal.Decimal {
	if status != model.StatusPenaltyActive {
		return decimal.Zero
	}
	days := DaysInPenalty(now, doc, rule.GracePeriodDays)
	if days <= 0 {
		return decimal.Zero
	}

	var fine decimal.Decimal
	switch rule.FineType {
	case model.FineOneTime:
		return rule.FinePerDay
	case model.FineMonthly:
		months := (days + daysPerFineMonth - 1) / daysPerFineMonth
		fine = rule.FinePerDay.Mul(decimal.NewFromInt(int64(months)))
	default:
		fine = rule.FinePerDay.Mul(decimal.NewFromInt(int64(days)))
	}

	// A zero cap means uncapped.
	if rule.FineCap.IsPositive() && fine.GreaterThan(rule.FineCap) {
		return rule.FineCap
	}
	return fine
}
