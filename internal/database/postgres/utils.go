package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/osse101/Mivy_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgFailedToRollback, "error", err)
	}
}

// pgErrorCode returns the SQLSTATE of a PostgreSQL error, or ""
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// constraintName returns the violated constraint of a PostgreSQL error, or ""
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == PgErrorCodeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == PgErrorCodeForeignKeyViolation
}

// validID reports whether id parses as a UUID. Lookups by a malformed id
// behave as "not found" rather than surfacing a SQL cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// validIDs filters a slice down to well-formed, de-duplicated UUIDs
func validIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || !validID(id) {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// parseDecimal converts a NUMERIC selected as text
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse numeric %q: %w", s, err)
	}
	return d, nil
}

// scanner is satisfied by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}
