package postgres

import (
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"github.com/dominofed/federation-backend/internal/domain/storage"
)

const (
	pgUniqueViolation     = pq.ErrorCode("23505")
	pgForeignKeyViolation = pq.ErrorCode("23503")
)

func isNotFound(err error) bool {
	return stderrors.Is(err, sql.ErrNoRows)
}

func pgCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// classifyWrite wraps a write error and tags constraint violations with the
// storage sentinels so callers never need to import the driver. The sentinel
// joins the chain through %w, so plain errors.Is sees it.
func classifyWrite(err error, op string) error {
	switch pgCode(err) {
	case pgUniqueViolation:
		return fmt.Errorf("%s: %w: %w", op, storage.ErrDuplicate, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%s: %w: %w", op, storage.ErrReferenced, err)
	}
	return errors.Wrap(err, op)
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func nullStringToString(value sql.NullString) string {
	if value.Valid {
		return value.String
	}
	return ""
}

func nullInt64ToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	n := int(value.Int64)
	return &n
}
