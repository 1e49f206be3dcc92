package notifier

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
)

const dateLayout = "2006-01-02"

// alert is the formatted content of one notification before it is addressed.
type alert struct {
	Title    string
	Message  string
	Category string
}

// formatAlert renders the title and message for a document's computed state.
// ok is false for statuses that never alert (valid, incomplete).
func formatAlert(doc model.Document, rule model.ComplianceRule, c model.Computed) (alert, bool) {
	label := documentLabel(doc.DocumentType)
	subject := label
	if doc.EmployeeName != "" {
		subject = fmt.Sprintf("%s for %s", label, doc.EmployeeName)
	}
	if doc.DocumentNumber != nil && *doc.DocumentNumber != "" {
		subject = fmt.Sprintf("%s (%s)", subject, *doc.DocumentNumber)
	}
	expiry := ""
	if doc.ExpiryDate != nil {
		expiry = doc.ExpiryDate.Format(dateLayout)
	}

	switch c.Status {
	case model.StatusExpiringSoon:
		return alert{
			Title:    label + " expiring soon",
			Message:  fmt.Sprintf("%s %s on %s.", subject, expiresIn(deref(c.DaysRemaining)), expiry),
			Category: model.CategoryExpiring,
		}, true
	case model.StatusInGrace:
		return alert{
			Title: label + " expired, grace period running",
			Message: fmt.Sprintf("%s expired on %s. %s before fines apply.",
				subject, expiry, plural(deref(c.GraceDaysRemaining), "grace day remains", "grace days remain")),
			Category: model.CategoryGrace,
		}, true
	case model.StatusPenaltyActive:
		return alert{
			Title: label + " penalty active",
			Message: fmt.Sprintf("%s expired on %s and is past its grace period. %s",
				subject, expiry, fineSentence(rule, c)),
			Category: model.CategoryPenalty,
		}, true
	default:
		return alert{}, false
	}
}

func fineSentence(rule model.ComplianceRule, c model.Computed) string {
	days := deref(c.DaysInPenalty)
	if rule.FineType == model.FineOneTime {
		return fmt.Sprintf("One-time fine: %s.", c.EstimatedFine.StringFixed(2))
	}
	return fmt.Sprintf("Accrued fine: %s over %s in penalty.",
		c.EstimatedFine.StringFixed(2), plural(days, "day", "days"))
}

func expiresIn(days int) string {
	switch days {
	case 0:
		return "expires today"
	case 1:
		return "expires tomorrow"
	default:
		return fmt.Sprintf("expires in %d days", days)
	}
}

// documentLabel turns a type code such as "work_permit" into "Work permit".
func documentLabel(code string) string {
	s := strings.TrimSpace(strings.ReplaceAll(code, "_", " "))
	if s == "" {
		return "Document"
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
