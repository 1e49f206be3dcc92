package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
)

var now = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// docExpiringIn builds a complete document whose expiry is n days from now.
func docExpiringIn(n int) model.Document {
	exp := AddDays(now, n)
	return model.Document{
		ID:             "doc-1",
		EmployeeID:     "emp-1",
		DocumentType:   "visa",
		DocumentNumber: strPtr("V-123"),
		ExpiryDate:     &exp,
		FileRef:        strPtr("documents/visa.pdf"),
	}
}

func TestComputeStatus(t *testing.T) {
	tests := []struct {
		name  string
		doc   model.Document
		grace int
		want  model.Status
	}{
		{name: "31 days remaining is valid", doc: docExpiringIn(31), want: model.StatusValid},
		{name: "30 days remaining is expiring soon", doc: docExpiringIn(30), want: model.StatusExpiringSoon},
		{name: "expires today is expiring soon", doc: docExpiringIn(0), want: model.StatusExpiringSoon},
		{name: "one day lapsed within grace", doc: docExpiringIn(-1), grace: 30, want: model.StatusInGrace},
		{name: "last day of grace is inclusive", doc: docExpiringIn(-30), grace: 30, want: model.StatusInGrace},
		{name: "day after grace is penalty", doc: docExpiringIn(-31), grace: 30, want: model.StatusPenaltyActive},
		{name: "zero grace skips in_grace", doc: docExpiringIn(-1), grace: 0, want: model.StatusPenaltyActive},
		{name: "negative grace treated as zero", doc: docExpiringIn(-1), grace: -5, want: model.StatusPenaltyActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(now, tt.doc, tt.grace))
		})
	}
}

func TestComputeStatus_Incomplete(t *testing.T) {
	t.Run("missing expiry", func(t *testing.T) {
		d := docExpiringIn(10)
		d.ExpiryDate = nil
		assert.Equal(t, model.StatusIncomplete, ComputeStatus(now, d, 0))
	})

	t.Run("missing file", func(t *testing.T) {
		d := docExpiringIn(-100)
		d.FileRef = nil
		assert.Equal(t, model.StatusIncomplete, ComputeStatus(now, d, 0))
	})

	t.Run("blank document number", func(t *testing.T) {
		d := docExpiringIn(100)
		d.DocumentNumber = strPtr("  ")
		assert.Equal(t, model.StatusIncomplete, ComputeStatus(now, d, 0))
	})
}

func TestComputeStatus_IgnoresClockWithinDay(t *testing.T) {
	d := docExpiringIn(30)
	late := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	early := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 1, 0, time.UTC)

	assert.Equal(t, model.StatusExpiringSoon, ComputeStatus(late, d, 0))
	assert.Equal(t, model.StatusExpiringSoon, ComputeStatus(early, d, 0))
}

func TestComputeStatus_RenewalHasNoMemory(t *testing.T) {
	d := docExpiringIn(-90)
	assert.Equal(t, model.StatusPenaltyActive, ComputeStatus(now, d, 10))

	renewed := AddDays(now, 365)
	d.ExpiryDate = &renewed
	assert.Equal(t, model.StatusValid, ComputeStatus(now, d, 10))
}

func TestDaysBetween(t *testing.T) {
	dubai := time.FixedZone("GST", 4*60*60)
	from := time.Date(2026, time.January, 1, 23, 0, 0, 0, dubai)
	to := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysBetween(from, to))
	assert.Equal(t, -1, DaysBetween(to, from))
	assert.Equal(t, 0, DaysBetween(from, from))
}
