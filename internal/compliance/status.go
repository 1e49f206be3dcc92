package compliance

import (
	"strings"
	"time"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
)

// ExpiringWindowDays is how close to expiry a document becomes expiring_soon.
const ExpiringWindowDays = 30

// ComputeStatus derives a document's lifecycle status as of now.
// The first matching rule wins:
//   - missing expiry date, document number or file: incomplete
//   - more than 30 days remaining: valid
//   - 0..30 days remaining: expiring_soon
//   - expired but now <= expiry + grace: in_grace
//   - otherwise: penalty_active
//
// With zero grace a document goes straight from expiring_soon to penalty_active.
func ComputeStatus(now time.Time, doc model.Document, gracePeriodDays int) model.Status {
	if !isComplete(doc) {
		return model.StatusIncomplete
	}
	remaining := DaysBetween(now, *doc.ExpiryDate)
	switch {
	case remaining > ExpiringWindowDays:
		return model.StatusValid
	case remaining >= 0:
		return model.StatusExpiringSoon
	case -remaining <= max(gracePeriodDays, 0):
		return model.StatusInGrace
	default:
		return model.StatusPenaltyActive
	}
}

func isComplete(doc model.Document) bool {
	return doc.ExpiryDate != nil && present(doc.DocumentNumber) && present(doc.FileRef)
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
