package compliance

import (
	"fmt"
	"time"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
)

// DependencyLookaheadDays is how long the blocking document must outlive the
// blocked one for a renewal to be safe.
const DependencyLookaheadDays = 60

// CheckDependencies compares, per edge, the expiry dates of one employee's
// blocking and blocked documents. An alert is raised when the blocking document
// expires before, or less than DependencyLookaheadDays after, the blocked one.
// Edges are never followed transitively, so cycles in the graph are harmless.
//
// docs must belong to a single employee. When several documents share a type the
// one expiring last is used.
func CheckDependencies(now time.Time, edges []model.DependencyEdge, docs []model.Document) []model.DependencyAlert {
	byType := latestByType(docs)
	alerts := make([]model.DependencyAlert, 0)
	for _, e := range edges {
		blocking, ok := byType[e.BlockingType]
		if !ok {
			continue
		}
		blocked, ok := byType[e.BlockedType]
		if !ok {
			continue
		}
		deadline := AddDays(*blocked.ExpiryDate, DependencyLookaheadDays)
		if !dateOf(*blocking.ExpiryDate).Before(deadline) {
			continue
		}

		severity := model.SeverityWarning
		if DaysBetween(now, *blocking.ExpiryDate) < 0 {
			severity = model.SeverityCritical
		}
		alerts = append(alerts, model.DependencyAlert{
			BlockingType:       e.BlockingType,
			BlockedType:        e.BlockedType,
			BlockingDocumentID: blocking.ID,
			BlockedDocumentID:  blocked.ID,
			Description:        e.Description,
			Severity:           severity,
			Message:            dependencyMessage(e, blocking, blocked, severity),
		})
	}
	return alerts
}

func latestByType(docs []model.Document) map[string]model.Document {
	out := make(map[string]model.Document, len(docs))
	for _, d := range docs {
		if d.ExpiryDate == nil {
			continue
		}
		cur, ok := out[d.DocumentType]
		if !ok || d.ExpiryDate.After(*cur.ExpiryDate) {
			out[d.DocumentType] = d
		}
	}
	return out
}

func dependencyMessage(e model.DependencyEdge, blocking, blocked model.Document, sev model.Severity) string {
	const layout = "2006-01-02"
	if sev == model.SeverityCritical {
		return fmt.Sprintf("%s expired on %s; %s (expires %s) cannot be renewed until it is renewed",
			e.BlockingType, blocking.ExpiryDate.Format(layout), e.BlockedType, blocked.ExpiryDate.Format(layout))
	}
	return fmt.Sprintf("%s expires on %s, too close to %s expiry on %s",
		e.BlockingType, blocking.ExpiryDate.Format(layout), e.BlockedType, blocked.ExpiryDate.Format(layout))
}
