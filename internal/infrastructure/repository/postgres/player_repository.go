package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dominofed/federation-backend/internal/domain/player"
	"github.com/dominofed/federation-backend/internal/domain/storage"
	qb "github.com/dominofed/federation-backend/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

var playerSortColumns = map[string]string{
	"idfed":       "j.idfed",
	"nombre":      "j.nombre",
	"apellidos":   "j.apellidos",
	"codigo_club": "j.codigo_club",
}

func playerSelect() *qb.SelectBuilder {
	return qb.Select("j.*", "c.nombre AS nombre_club").
		From("jugadores j").
		LeftJoin("clubs c", "c.codigo_club = j.codigo_club")
}

func (r *PlayerRepository) List(ctx context.Context, params player.ListParams) ([]player.Player, int, error) {
	order, ok := playerSortColumns[params.Sort]
	if !ok {
		order = "j.idfed"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM jugadores`); err != nil {
		return nil, 0, fmt.Errorf("count jugadores: %w", err)
	}

	query, args, err := playerSelect().
		OrderBy(order, "j.id").
		Offset(params.Offset).
		Limit(params.Limit).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build list jugadores query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list jugadores: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, total, nil
}

func (r *PlayerRepository) GetByIDFed(ctx context.Context, idfed string) (player.Player, bool, error) {
	query, args, err := playerSelect().
		Where(qb.Eq("j.idfed", idfed)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get jugador by idfed query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get jugador by idfed: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) ListByClub(ctx context.Context, codigoClub string) ([]player.Player, error) {
	query, args, err := playerSelect().
		Where(qb.Eq("j.codigo_club", codigoClub)).
		OrderBy("j.idfed").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list jugadores by club query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list jugadores by club: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) Insert(ctx context.Context, p player.Player) (player.Player, error) {
	query, args, err := qb.InsertModel("jugadores", playerInsertRow(p), "RETURNING id")
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert jugador query: %w", err)
	}

	if err := r.db.GetContext(ctx, &p.ID, query, args...); err != nil {
		return player.Player{}, classifyWrite(err, "insert jugador "+p.IDFed)
	}
	return p, nil
}

func (r *PlayerRepository) Update(ctx context.Context, idfed string, p player.Player) (player.Player, error) {
	query, args, err := qb.Update("jugadores").
		Set("cp", p.CP).
		Set("numero_jugador", p.NumeroJugador).
		Set("idfed", p.IDFed).
		Set("nombre", p.Nombre).
		Set("apellidos", p.Apellidos).
		Set("dni", nullableString(p.DNI)).
		Set("telefono", nullableString(p.Telefono)).
		Set("email", nullableString(p.Email)).
		Set("codigo_club", p.CodigoClub).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("idfed", idfed)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build update jugador query: %w", err)
	}

	if err := r.db.GetContext(ctx, &p.ID, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, fmt.Errorf("update jugador %s: %w", idfed, storage.ErrNotFound)
		}
		return player.Player{}, classifyWrite(err, "update jugador "+idfed)
	}
	return p, nil
}

func (r *PlayerRepository) Delete(ctx context.Context, idfed string) error {
	query, args, err := qb.DeleteFrom("jugadores").
		Where(qb.Eq("idfed", idfed)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete jugador query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyWrite(err, "delete jugador "+idfed)
	}
	return nil
}

// CountDependents counts resultados that reference the player directly or as
// pareja.
func (r *PlayerRepository) CountDependents(ctx context.Context, idfed string) (int, error) {
	const query = `SELECT COUNT(1) FROM resultados WHERE idfed_jugador = $1 OR idfed_pareja = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, idfed); err != nil {
		return 0, fmt.Errorf("count jugador dependents: %w", err)
	}
	return count, nil
}

func (r *PlayerRepository) ApplyBulk(ctx context.Context, creates, updates []player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply jugadores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range creates {
		query, args, err := qb.InsertModel("jugadores", playerInsertRow(p), "")
		if err != nil {
			return fmt.Errorf("build bulk insert jugador query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyWrite(err, "bulk insert jugador "+p.IDFed)
		}
	}

	for _, p := range updates {
		query, args, err := qb.Update("jugadores").
			Set("nombre", p.Nombre).
			Set("apellidos", p.Apellidos).
			Set("dni", nullableString(p.DNI)).
			Set("telefono", nullableString(p.Telefono)).
			Set("email", nullableString(p.Email)).
			Set("codigo_club", p.CodigoClub).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("idfed", p.IDFed)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build bulk update jugador query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyWrite(err, "bulk update jugador "+p.IDFed)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply jugadores tx: %w", err)
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:            row.ID,
		CP:            row.CP,
		NumeroJugador: row.NumeroJugador,
		IDFed:         row.IDFed,
		Nombre:        row.Nombre,
		Apellidos:     row.Apellidos,
		DNI:           nullStringToString(row.DNI),
		Telefono:      nullStringToString(row.Telefono),
		Email:         nullStringToString(row.Email),
		CodigoClub:    row.CodigoClub,
		NombreClub:    nullStringToString(row.NombreClub),
	}
}

func playerInsertRow(p player.Player) playerInsertModel {
	return playerInsertModel{
		CP:            p.CP,
		NumeroJugador: p.NumeroJugador,
		IDFed:         p.IDFed,
		Nombre:        p.Nombre,
		Apellidos:     p.Apellidos,
		DNI:           nullableString(p.DNI),
		Telefono:      nullableString(p.Telefono),
		Email:         nullableString(p.Email),
		CodigoClub:    p.CodigoClub,
	}
}
