package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dominofed/federation-backend/internal/domain/storage"
	"github.com/dominofed/federation-backend/internal/domain/tournament"
	qb "github.com/dominofed/federation-backend/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

var tournamentSortColumns = map[string]string{
	"nch":          "ca.nch",
	"nombre":       "ca.nombre",
	"fecha_inicio": "ca.fecha_inicio",
	"codigo_club":  "ca.codigo_club",
}

func tournamentSelect() *qb.SelectBuilder {
	return qb.Select("ca.*", "t.codigo AS codigo_tipo").
		From("campeonatos ca").
		LeftJoin("tipos_campeonato t", "t.id = ca.tipo_campeonato_id")
}

func (r *TournamentRepository) List(ctx context.Context, params tournament.ListParams) ([]tournament.Tournament, int, error) {
	order, ok := tournamentSortColumns[params.Sort]
	if !ok {
		order = "ca.fecha_inicio DESC"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM campeonatos`); err != nil {
		return nil, 0, fmt.Errorf("count campeonatos: %w", err)
	}

	query, args, err := tournamentSelect().
		OrderBy(order, "ca.nch").
		Offset(params.Offset).
		Limit(params.Limit).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build list campeonatos query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list campeonatos: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournamentFromRow(row))
	}
	return out, total, nil
}

func (r *TournamentRepository) GetByNCH(ctx context.Context, nch string) (tournament.Tournament, bool, error) {
	query, args, err := tournamentSelect().
		Where(qb.Eq("ca.nch", nch)).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get campeonato by nch query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get campeonato by nch: %w", err)
	}
	return tournamentFromRow(row), true, nil
}

func (r *TournamentRepository) FindByAttributes(ctx context.Context, tipoID int64, codigoClub string, fecha time.Time, nombre string) (tournament.Tournament, bool, error) {
	query, args, err := tournamentSelect().
		Where(
			qb.Eq("ca.tipo_campeonato_id", tipoID),
			qb.Eq("ca.codigo_club", codigoClub),
			qb.Eq("ca.fecha_inicio", fecha),
			qb.Eq("ca.nombre", nombre),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build find campeonato query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("find campeonato by attributes: %w", err)
	}
	return tournamentFromRow(row), true, nil
}

// LastNCHForPrefix returns the highest NCH issued under a tipo+club+fecha
// prefix. The NCH layout keeps lexical and numeric order aligned, so MAX over
// the prefix is the newest incremental.
func (r *TournamentRepository) LastNCHForPrefix(ctx context.Context, prefix string) (string, bool, error) {
	const query = `SELECT nch FROM campeonatos WHERE nch LIKE $1 ORDER BY nch DESC LIMIT 1`

	var nch string
	if err := r.db.GetContext(ctx, &nch, query, prefix+"%"); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("last nch for prefix: %w", err)
	}
	return nch, true, nil
}

func (r *TournamentRepository) Insert(ctx context.Context, t tournament.Tournament) error {
	query, args, err := qb.InsertModel("campeonatos", tournamentInsertRow(t), "")
	if err != nil {
		return fmt.Errorf("build insert campeonato query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyWrite(err, "insert campeonato "+t.NCH)
	}
	return nil
}

func (r *TournamentRepository) Update(ctx context.Context, nch string, t tournament.Tournament) (tournament.Tournament, error) {
	query, args, err := qb.Update("campeonatos").
		Set("nombre", t.Nombre).
		Set("dias", t.Dias).
		Set("partidas", t.Partidas).
		Set("pm", t.PM).
		Set("gb", t.GB).
		Set("gbp", t.GBP).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("nch", nch)).
		Suffix("RETURNING nch").
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build update campeonato query: %w", err)
	}

	if err := r.db.GetContext(ctx, &t.NCH, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, fmt.Errorf("update campeonato %s: %w", nch, storage.ErrNotFound)
		}
		return tournament.Tournament{}, classifyWrite(err, "update campeonato "+nch)
	}
	return t, nil
}

func (r *TournamentRepository) Delete(ctx context.Context, nch string) error {
	query, args, err := qb.DeleteFrom("campeonatos").
		Where(qb.Eq("nch", nch)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete campeonato query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyWrite(err, "delete campeonato "+nch)
	}
	return nil
}

func (r *TournamentRepository) CountDependents(ctx context.Context, nch string) (int, error) {
	const query = `SELECT COUNT(1) FROM resultados WHERE campeonato_nch = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, nch); err != nil {
		return 0, fmt.Errorf("count campeonato dependents: %w", err)
	}
	return count, nil
}

func (r *TournamentRepository) ApplyBulk(ctx context.Context, creates, updates []tournament.Tournament) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply campeonatos: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range creates {
		query, args, err := qb.InsertModel("campeonatos", tournamentInsertRow(t), "")
		if err != nil {
			return fmt.Errorf("build bulk insert campeonato query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyWrite(err, "bulk insert campeonato "+t.NCH)
		}
	}

	for _, t := range updates {
		query, args, err := qb.Update("campeonatos").
			Set("nombre", t.Nombre).
			Set("dias", t.Dias).
			Set("partidas", t.Partidas).
			Set("pm", t.PM).
			Set("gb", t.GB).
			Set("gbp", t.GBP).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("nch", t.NCH)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build bulk update campeonato query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyWrite(err, "bulk update campeonato "+t.NCH)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply campeonatos tx: %w", err)
	}
	return nil
}

func tournamentFromRow(row tournamentTableModel) tournament.Tournament {
	return tournament.Tournament{
		NCH:              row.NCH,
		Nombre:           row.Nombre,
		FechaInicio:      row.FechaInicio,
		Dias:             row.Dias,
		Partidas:         row.Partidas,
		PM:               row.PM,
		GB:               row.GB,
		GBP:              nullInt64ToIntPtr(row.GBP),
		TipoCampeonatoID: row.TipoCampeonatoID,
		CodigoClub:       row.CodigoClub,
		CodigoTipo:       nullStringToString(row.CodigoTipo),
	}
}

func tournamentInsertRow(t tournament.Tournament) tournamentInsertModel {
	return tournamentInsertModel{
		NCH:              t.NCH,
		Nombre:           t.Nombre,
		FechaInicio:      t.FechaInicio,
		Dias:             t.Dias,
		Partidas:         t.Partidas,
		PM:               t.PM,
		GB:               t.GB,
		GBP:              t.GBP,
		TipoCampeonatoID: t.TipoCampeonatoID,
		CodigoClub:       t.CodigoClub,
	}
}
