package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dominofed/federation-backend/internal/domain/storage"
	"github.com/dominofed/federation-backend/internal/domain/tourtype"
	qb "github.com/dominofed/federation-backend/internal/platform/querybuilder"
)

type TourTypeRepository struct {
	db *sqlx.DB
}

func NewTourTypeRepository(db *sqlx.DB) *TourTypeRepository {
	return &TourTypeRepository{db: db}
}

func (r *TourTypeRepository) List(ctx context.Context) ([]tourtype.Type, error) {
	query, args, err := qb.Select("*").From("tipos_campeonato").
		OrderBy("codigo").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tipos query: %w", err)
	}

	var rows []tourTypeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tipos: %w", err)
	}

	out := make([]tourtype.Type, 0, len(rows))
	for _, row := range rows {
		out = append(out, tourTypeFromRow(row))
	}
	return out, nil
}

func (r *TourTypeRepository) GetByID(ctx context.Context, id int64) (tourtype.Type, bool, error) {
	query, args, err := qb.Select("*").From("tipos_campeonato").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return tourtype.Type{}, false, fmt.Errorf("build get tipo by id query: %w", err)
	}

	var row tourTypeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tourtype.Type{}, false, nil
		}
		return tourtype.Type{}, false, fmt.Errorf("get tipo by id: %w", err)
	}
	return tourTypeFromRow(row), true, nil
}

func (r *TourTypeRepository) GetByCode(ctx context.Context, codigo string) (tourtype.Type, bool, error) {
	query, args, err := qb.Select("*").From("tipos_campeonato").
		Where(qb.Eq("codigo", codigo)).
		ToSQL()
	if err != nil {
		return tourtype.Type{}, false, fmt.Errorf("build get tipo by codigo query: %w", err)
	}

	var row tourTypeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tourtype.Type{}, false, nil
		}
		return tourtype.Type{}, false, fmt.Errorf("get tipo by codigo: %w", err)
	}
	return tourTypeFromRow(row), true, nil
}

func (r *TourTypeRepository) Insert(ctx context.Context, t tourtype.Type) (tourtype.Type, error) {
	query, args, err := qb.InsertModel("tipos_campeonato", tourTypeInsertRow(t), "RETURNING id")
	if err != nil {
		return tourtype.Type{}, fmt.Errorf("build insert tipo query: %w", err)
	}

	if err := r.db.GetContext(ctx, &t.ID, query, args...); err != nil {
		return tourtype.Type{}, classifyWrite(err, "insert tipo "+t.Codigo)
	}
	return t, nil
}

func (r *TourTypeRepository) Update(ctx context.Context, id int64, t tourtype.Type) (tourtype.Type, error) {
	query, args, err := qb.Update("tipos_campeonato").
		Set("codigo", t.Codigo).
		Set("nombre", t.Nombre).
		Set("descripcion", nullableString(t.Descripcion)).
		Where(qb.Eq("id", id)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return tourtype.Type{}, fmt.Errorf("build update tipo query: %w", err)
	}

	if err := r.db.GetContext(ctx, &t.ID, query, args...); err != nil {
		if isNotFound(err) {
			return tourtype.Type{}, fmt.Errorf("update tipo %d: %w", id, storage.ErrNotFound)
		}
		return tourtype.Type{}, classifyWrite(err, fmt.Sprintf("update tipo %d", id))
	}
	return t, nil
}

func (r *TourTypeRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := qb.DeleteFrom("tipos_campeonato").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete tipo query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyWrite(err, fmt.Sprintf("delete tipo %d", id))
	}
	return nil
}

// CountDependents counts campeonatos and resultados that reference the tipo.
func (r *TourTypeRepository) CountDependents(ctx context.Context, id int64) (int, error) {
	const query = `
SELECT (SELECT COUNT(1) FROM campeonatos WHERE tipo_campeonato_id = $1)
     + (SELECT COUNT(1) FROM resultados WHERE tipo_campeonato_id = $1)`

	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count tipo dependents: %w", err)
	}
	return count, nil
}

func tourTypeFromRow(row tourTypeTableModel) tourtype.Type {
	return tourtype.Type{
		ID:          row.ID,
		Codigo:      row.Codigo,
		Nombre:      row.Nombre,
		Descripcion: nullStringToString(row.Descripcion),
	}
}

func tourTypeInsertRow(t tourtype.Type) tourTypeInsertModel {
	return tourTypeInsertModel{
		Codigo:      t.Codigo,
		Nombre:      t.Nombre,
		Descripcion: nullableString(t.Descripcion),
	}
}
