package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/dominofed/federation-backend/internal/domain/storage"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches sql.ErrNoRows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("get club: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(errors.New("pq: relation clubs does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestClassifyWrite(t *testing.T) {
	t.Run("marks unique violation as duplicate", func(t *testing.T) {
		err := classifyWrite(&pq.Error{Code: "23505", Constraint: "clubs_codigo_club_key"}, "insert club")
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Fatalf("expected duplicate mark, got %v", err)
		}
		if errors.Is(err, storage.ErrReferenced) {
			t.Fatalf("unexpected referenced mark on unique violation")
		}
	})

	t.Run("marks foreign key violation as referenced", func(t *testing.T) {
		err := classifyWrite(&pq.Error{Code: "23503"}, "delete club")
		if !errors.Is(err, storage.ErrReferenced) {
			t.Fatalf("expected referenced mark, got %v", err)
		}
	})

	t.Run("keeps driver error in the chain", func(t *testing.T) {
		cause := &pq.Error{Code: "23505", Constraint: "campeonatos_pkey"}
		err := classifyWrite(cause, "insert campeonato")
		var pqErr *pq.Error
		if !errors.As(err, &pqErr) || pqErr.Constraint != "campeonatos_pkey" {
			t.Fatalf("expected pq error in chain, got %v", err)
		}
	})

	t.Run("wraps other errors without marks", func(t *testing.T) {
		err := classifyWrite(errors.New("connection reset"), "insert club")
		if errors.Is(err, storage.ErrDuplicate) || errors.Is(err, storage.ErrReferenced) {
			t.Fatalf("unexpected constraint mark on plain error")
		}
	})
}
