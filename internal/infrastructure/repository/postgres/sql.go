package postgres

import (
	"database/sql"
	"errors"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/riskibarqy/league-portal/internal/usecase"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}

// wrapWriteErr marks unique violations as conflicts so callers can match on
// usecase.ErrConflict while the driver error stays attached.
func wrapWriteErr(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return crerr.WithSecondaryError(crerr.Wrapf(usecase.ErrConflict, format, args...), err)
	}
	return crerr.Wrapf(err, format, args...)
}

func nullString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}

func stringsToAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
