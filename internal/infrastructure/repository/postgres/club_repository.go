package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dominofed/federation-backend/internal/domain/club"
	"github.com/dominofed/federation-backend/internal/domain/storage"
	qb "github.com/dominofed/federation-backend/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

var clubSortColumns = map[string]string{
	"codigo_club": "codigo_club",
	"nombre":      "nombre",
	"cp":          "cp",
	"numero_club": "numero_club",
}

func (r *ClubRepository) List(ctx context.Context, params club.ListParams) ([]club.Club, int, error) {
	order, ok := clubSortColumns[params.Sort]
	if !ok {
		order = "codigo_club"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM clubs`); err != nil {
		return nil, 0, fmt.Errorf("count clubs: %w", err)
	}

	query, args, err := qb.Select("*").From("clubs").
		OrderBy(order, "id").
		Offset(params.Offset).
		Limit(params.Limit).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build list clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}
	return out, total, nil
}

func (r *ClubRepository) GetByCode(ctx context.Context, codigoClub string) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(qb.Eq("codigo_club", codigoClub)).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club by code query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by code: %w", err)
	}
	return clubFromRow(row), true, nil
}

func (r *ClubRepository) Insert(ctx context.Context, c club.Club) (club.Club, error) {
	query, args, err := qb.InsertModel("clubs", clubInsertRow(c), "RETURNING id")
	if err != nil {
		return club.Club{}, fmt.Errorf("build insert club query: %w", err)
	}

	if err := r.db.GetContext(ctx, &c.ID, query, args...); err != nil {
		return club.Club{}, classifyWrite(err, "insert club "+c.CodigoClub)
	}
	return c, nil
}

func (r *ClubRepository) Update(ctx context.Context, codigoClub string, c club.Club) (club.Club, error) {
	query, args, err := qb.Update("clubs").
		Set("cp", c.CP).
		Set("numero_club", c.NumeroClub).
		Set("codigo_club", c.CodigoClub).
		Set("nombre", c.Nombre).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("codigo_club", codigoClub)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return club.Club{}, fmt.Errorf("build update club query: %w", err)
	}

	if err := r.db.GetContext(ctx, &c.ID, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, fmt.Errorf("update club %s: %w", codigoClub, storage.ErrNotFound)
		}
		return club.Club{}, classifyWrite(err, "update club "+codigoClub)
	}
	return c, nil
}

func (r *ClubRepository) Delete(ctx context.Context, codigoClub string) error {
	query, args, err := qb.DeleteFrom("clubs").
		Where(qb.Eq("codigo_club", codigoClub)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete club query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyWrite(err, "delete club "+codigoClub)
	}
	return nil
}

// CountDependents counts jugadores still attached to the club, plus
// campeonatos it organizes and resultados that reference it.
func (r *ClubRepository) CountDependents(ctx context.Context, codigoClub string) (int, error) {
	const query = `
SELECT (SELECT COUNT(1) FROM jugadores WHERE codigo_club = $1)
     + (SELECT COUNT(1) FROM campeonatos WHERE codigo_club = $1)
     + (SELECT COUNT(1) FROM resultados WHERE codigo_club_jugador = $1 OR codigo_club_pareja = $1)`

	var count int
	if err := r.db.GetContext(ctx, &count, query, codigoClub); err != nil {
		return 0, fmt.Errorf("count club dependents: %w", err)
	}
	return count, nil
}

func (r *ClubRepository) ApplyBulk(ctx context.Context, creates, updates []club.Club) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply clubs: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range creates {
		query, args, err := qb.InsertModel("clubs", clubInsertRow(c), "")
		if err != nil {
			return fmt.Errorf("build bulk insert club query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyWrite(err, "bulk insert club "+c.CodigoClub)
		}
	}

	for _, c := range updates {
		query, args, err := qb.Update("clubs").
			Set("nombre", c.Nombre).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("codigo_club", c.CodigoClub)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build bulk update club query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyWrite(err, "bulk update club "+c.CodigoClub)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply clubs tx: %w", err)
	}
	return nil
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:         row.ID,
		CP:         row.CP,
		NumeroClub: row.NumeroClub,
		CodigoClub: row.CodigoClub,
		Nombre:     row.Nombre,
	}
}

func clubInsertRow(c club.Club) clubInsertModel {
	return clubInsertModel{
		CP:         c.CP,
		NumeroClub: c.NumeroClub,
		CodigoClub: c.CodigoClub,
		Nombre:     c.Nombre,
	}
}
