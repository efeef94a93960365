package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dominofed/federation-backend/internal/domain/tourtype"
)

// BootstrapSeed inserts the reference tipos de campeonato once, when the table
// is still empty. A non-empty table is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM tipos_campeonato`); err != nil {
		return fmt.Errorf("count tipos for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range tourtype.SeedTypes() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO tipos_campeonato (codigo, nombre, descripcion)
VALUES (:codigo, :nombre, :descripcion)
ON CONFLICT (codigo) DO NOTHING`, map[string]any{
			"codigo":      t.Codigo,
			"nombre":      t.Nombre,
			"descripcion": t.Descripcion,
		})
		if err != nil {
			return fmt.Errorf("bind seed tipo %s query: %w", t.Codigo, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed tipo %s: %w", t.Codigo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
