package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `
	d.id, d.employee_id, e.full_name, COALESCE(e.company_id::text, ''), d.document_type,
	d.document_number, d.issue_date, d.expiry_date, d.file_url,
	d.grace_period_days, d.fine_per_day, d.fine_type, d.fine_cap,
	d.created_at, d.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument reads documentColumns followed by any extra destinations.
func scanDocument(s rowScanner, extra ...any) (model.Document, error) {
	var (
		d          model.Document
		number     sql.NullString
		issue      sql.NullTime
		expiry     sql.NullTime
		file       sql.NullString
		legacyDays sql.NullInt32
		legacyRate decimal.NullDecimal
		legacyType sql.NullString
		legacyCap  decimal.NullDecimal
	)
	dest := []any{
		&d.ID, &d.EmployeeID, &d.EmployeeName, &d.CompanyID, &d.DocumentType,
		&number, &issue, &expiry, &file,
		&legacyDays, &legacyRate, &legacyType, &legacyCap,
		&d.CreatedAt, &d.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return model.Document{}, err
	}

	if number.Valid {
		d.DocumentNumber = &number.String
	}
	if issue.Valid {
		d.IssueDate = &issue.Time
	}
	if expiry.Valid {
		d.ExpiryDate = &expiry.Time
	}
	if file.Valid {
		d.FileRef = &file.String
	}

	var legacy model.LegacyRule
	set := false
	if legacyDays.Valid {
		v := int(legacyDays.Int32)
		legacy.GracePeriodDays, set = &v, true
	}
	if legacyRate.Valid {
		legacy.FinePerDay, set = &legacyRate.Decimal, true
	}
	if legacyType.Valid {
		legacy.FineType, set = &legacyType.String, true
	}
	if legacyCap.Valid {
		legacy.FineCap, set = &legacyCap.Decimal, true
	}
	if set {
		d.Legacy = &legacy
	}
	return d, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `SELECT` + documentColumns + `
		FROM documents d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.id = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByEmployee returns an employee's documents ordered by type then expiry.
func (r *DocumentPostgres) ListByEmployee(ctx context.Context, employeeID string) ([]model.Document, error) {
	q := `SELECT` + documentColumns + `
		FROM documents d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1
		ORDER BY d.document_type, d.expiry_date NULLS LAST, d.id`
	rows, err := r.db.QueryContext(ctx, q, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListAlertCandidates joins each candidate document to every user that should hear
// about it: users of the employee's company, plus administrators.
func (r *DocumentPostgres) ListAlertCandidates(ctx context.Context, until time.Time, onRowError func(error)) ([]model.AlertCandidate, error) {
	q := `SELECT` + documentColumns + `, u.id
		FROM documents d
		JOIN employees e ON e.id = d.employee_id
		JOIN users u ON u.company_id = e.company_id OR u.role = 'admin'
		WHERE d.expiry_date IS NOT NULL
		  AND d.file_url IS NOT NULL AND d.file_url <> ''
		  AND d.expiry_date <= $1
		ORDER BY d.expiry_date, d.id, u.id`
	rows, err := r.db.QueryContext(ctx, q, until.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AlertCandidate, 0)
	for rows.Next() {
		var c model.AlertCandidate
		d, err := scanDocument(rows, &c.RecipientID)
		if err != nil {
			if onRowError != nil {
				onRowError(fmt.Errorf("scan alert candidate: %w", err))
			}
			continue
		}
		c.Document = d
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
