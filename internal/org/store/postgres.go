package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"givelink/internal/org"
	"givelink/pkg/platform/sentinel"
)

// Postgres persists organizations in PostgreSQL. Uniqueness of email, EIN,
// and short code is enforced by unique indexes, so a racing Create resolves
// in the database: one insert wins, the loser sees a unique violation that is
// translated into a DuplicateKeyError naming the field.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const orgColumns = `id, name, email, password_hash, verified, charity_id, short_code, target_url, ein, qr_code, created_at`

func (s *Postgres) Create(ctx context.Context, o org.Organization) (org.Organization, error) {
	query := `
		INSERT INTO organizations (` + orgColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		o.ID, o.Name, o.Email, o.PasswordHash, o.Verified, nullable(o.CharityID),
		o.ShortCode, o.TargetURL, o.EIN, o.QRCode, o.CreatedAt,
	)
	if err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return org.Organization{}, org.DuplicateKeyError{Field: field}
		}
		return org.Organization{}, fmt.Errorf("insert organization: %w", err)
	}
	return o, nil
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (org.Organization, error) {
	return s.findBy(ctx, "email", email)
}

func (s *Postgres) FindByEIN(ctx context.Context, ein string) (org.Organization, error) {
	return s.findBy(ctx, "ein", ein)
}

func (s *Postgres) FindByShortCode(ctx context.Context, code string) (org.Organization, error) {
	return s.findBy(ctx, "short_code", code)
}

func (s *Postgres) findBy(ctx context.Context, column, value string) (org.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE ` + column + ` = $1`
	row := s.db.QueryRowContext(ctx, query, value)

	var o org.Organization
	var charityID sql.NullString
	err := row.Scan(
		&o.ID, &o.Name, &o.Email, &o.PasswordHash, &o.Verified, &charityID,
		&o.ShortCode, &o.TargetURL, &o.EIN, &o.QRCode, &o.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return org.Organization{}, sentinel.ErrNotFound
	}
	if err != nil {
		return org.Organization{}, fmt.Errorf("find organization by %s: %w", column, err)
	}
	o.CharityID = charityID.String
	return o, nil
}

// uniqueViolationField maps a pq unique violation (23505) to the directory
// field it guards, using the constraint name from migrations/0001_init.up.sql.
func uniqueViolationField(err error) (org.Field, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return "", false
	}
	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return org.FieldEmail, true
	case strings.Contains(pqErr.Constraint, "ein"):
		return org.FieldEIN, true
	case strings.Contains(pqErr.Constraint, "short_code"):
		return org.FieldShortCode, true
	default:
		return "", false
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
