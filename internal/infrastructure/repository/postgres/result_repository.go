package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dominofed/federation-backend/internal/domain/result"
	"github.com/dominofed/federation-backend/internal/domain/storage"
	qb "github.com/dominofed/federation-backend/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

type filterColumnKind int

const (
	kindString filterColumnKind = iota
	kindNumber
	kindDate
	kindBool
)

type filterColumn struct {
	column string
	kind   filterColumnKind
}

// resultFilterColumns is the dynamic-filter allow-list. Anything outside it is
// rejected before any SQL is built.
var resultFilterColumns = map[string]filterColumn{
	"tipo_campeonato_id":  {"r.tipo_campeonato_id", kindNumber},
	"nombre_campeonato":   {"r.nombre_campeonato", kindString},
	"fecha_campeonato":    {"r.fecha_campeonato", kindDate},
	"idfed_jugador":       {"r.idfed_jugador", kindString},
	"nombre_jugador":      {"r.nombre_jugador", kindString},
	"apellido_jugador":    {"r.apellido_jugador", kindString},
	"codigo_club_jugador": {"r.codigo_club_jugador", kindString},
	"idfed_pareja":        {"r.idfed_pareja", kindString},
	"partida":             {"r.partida", kindNumber},
	"mesa":                {"r.mesa", kindNumber},
	"gb":                  {"r.gb", kindBool},
	"pg":                  {"r.pg", kindNumber},
	"dif":                 {"r.dif", kindNumber},
	"pv":                  {"r.pv", kindNumber},
	"pt":                  {"r.pt", kindNumber},
	"mg":                  {"r.mg", kindNumber},
	"pos":                 {"r.pos", kindNumber},
}

func resultSelect() *qb.SelectBuilder {
	return qb.Select("r.*", "t.codigo AS codigo_tipo").
		From("resultados r").
		LeftJoin("tipos_campeonato t", "t.id = r.tipo_campeonato_id")
}

func resultListConditions(filter result.ListFilter) []qb.Condition {
	var conditions []qb.Condition
	if filter.TipoCampeonatoID != nil {
		conditions = append(conditions, qb.Eq("r.tipo_campeonato_id", *filter.TipoCampeonatoID))
	}
	if filter.FechaDesde != nil {
		conditions = append(conditions, qb.Gte("r.fecha_campeonato", *filter.FechaDesde))
	}
	if filter.FechaHasta != nil {
		conditions = append(conditions, qb.Lte("r.fecha_campeonato", *filter.FechaHasta))
	}
	if filter.IDFedJugador != "" {
		conditions = append(conditions, qb.Eq("r.idfed_jugador", filter.IDFedJugador))
	}
	return conditions
}

func (r *ResultRepository) List(ctx context.Context, filter result.ListFilter) ([]result.Result, int, error) {
	conditions := resultListConditions(filter)

	countQuery, countArgs, err := qb.Select("COUNT(1)").From("resultados r").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count resultados query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count resultados: %w", err)
	}

	query, args, err := resultSelect().
		Where(conditions...).
		OrderBy("r.fecha_campeonato DESC", "r.nch", "r.idfed_jugador").
		Offset(filter.Offset).
		Limit(filter.Limit).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build list resultados query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list resultados: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromRow(row))
	}
	return out, total, nil
}

func filterCondition(f result.FieldFilter) (qb.Condition, error) {
	col, ok := resultFilterColumns[f.Field]
	if !ok {
		return nil, fmt.Errorf("campo no filtrable: %s", f.Field)
	}

	switch f.Operator {
	case result.OpEq:
		return qb.Eq(col.column, f.Value), nil
	case result.OpContains:
		if col.kind != kindString {
			return nil, fmt.Errorf("contains requiere un campo de texto: %s", f.Field)
		}
		s, ok := f.Value.(string)
		if !ok {
			return nil, fmt.Errorf("contains requiere un valor de texto: %s", f.Field)
		}
		return qb.Contains(col.column, s), nil
	case result.OpGt:
		if col.kind != kindNumber {
			return nil, fmt.Errorf("gt requiere un campo numerico: %s", f.Field)
		}
		return qb.Gt(col.column, f.Value), nil
	case result.OpLt:
		if col.kind != kindNumber {
			return nil, fmt.Errorf("lt requiere un campo numerico: %s", f.Field)
		}
		return qb.Lt(col.column, f.Value), nil
	case result.OpBetween:
		if col.kind != kindNumber && col.kind != kindDate {
			return nil, fmt.Errorf("between requiere un campo numerico o de fecha: %s", f.Field)
		}
		if f.Value2 == nil {
			return nil, fmt.Errorf("between requiere dos valores: %s", f.Field)
		}
		return qb.Between(col.column, f.Value, f.Value2), nil
	case result.OpAfter:
		if col.kind != kindDate {
			return nil, fmt.Errorf("after requiere un campo de fecha: %s", f.Field)
		}
		return qb.Gt(col.column, f.Value), nil
	case result.OpBefore:
		if col.kind != kindDate {
			return nil, fmt.Errorf("before requiere un campo de fecha: %s", f.Field)
		}
		return qb.Lt(col.column, f.Value), nil
	}
	return nil, fmt.Errorf("operador no soportado: %s", f.Operator)
}

func (r *ResultRepository) Filter(ctx context.Context, filters []result.FieldFilter, offset, limit int) ([]result.Result, int, error) {
	conditions := make([]qb.Condition, 0, len(filters))
	for _, f := range filters {
		cond, err := filterCondition(f)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %w", storage.ErrInvalidFilter, err)
		}
		conditions = append(conditions, cond)
	}

	countQuery, countArgs, err := qb.Select("COUNT(1)").From("resultados r").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count filtered resultados query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count filtered resultados: %w", err)
	}

	query, args, err := resultSelect().
		Where(conditions...).
		OrderBy("r.fecha_campeonato DESC", "r.nch", "r.idfed_jugador").
		Offset(offset).
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build filter resultados query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("filter resultados: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromRow(row))
	}
	return out, total, nil
}

func resultKeyConditions(key result.Key) []qb.Condition {
	return []qb.Condition{
		qb.Eq("r.nch", key.NCH),
		qb.Eq("r.fecha_campeonato", key.FechaCampeonato),
		qb.Eq("r.idfed_jugador", key.IDFedJugador),
	}
}

func (r *ResultRepository) GetByKey(ctx context.Context, key result.Key) (result.Result, bool, error) {
	query, args, err := resultSelect().
		Where(resultKeyConditions(key)...).
		ToSQL()
	if err != nil {
		return result.Result{}, false, fmt.Errorf("build get resultado by key query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.Result{}, false, nil
		}
		return result.Result{}, false, fmt.Errorf("get resultado by key: %w", err)
	}
	return resultFromRow(row), true, nil
}

func (r *ResultRepository) GetByNaturalKey(ctx context.Context, fecha time.Time, idfed string, partida, mesa int) (result.Result, bool, error) {
	query, args, err := resultSelect().
		Where(
			qb.Eq("r.fecha_campeonato", fecha),
			qb.Eq("r.idfed_jugador", idfed),
			qb.Eq("r.partida", partida),
			qb.Eq("r.mesa", mesa),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return result.Result{}, false, fmt.Errorf("build get resultado by natural key query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.Result{}, false, nil
		}
		return result.Result{}, false, fmt.Errorf("get resultado by natural key: %w", err)
	}
	return resultFromRow(row), true, nil
}

func (r *ResultRepository) ListByPlayer(ctx context.Context, idfed string) ([]result.Result, error) {
	query, args, err := resultSelect().
		Where(qb.Expr("(r.idfed_jugador = ? OR r.idfed_pareja = ?)", idfed, idfed)).
		OrderBy("r.fecha_campeonato DESC", "r.nch").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list resultados by jugador query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list resultados by jugador: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromRow(row))
	}
	return out, nil
}

func (r *ResultRepository) ListByCampeonato(ctx context.Context, campeonatoNCH string) ([]result.Result, error) {
	query, args, err := resultSelect().
		Where(qb.Eq("r.campeonato_nch", campeonatoNCH)).
		OrderBy("r.partida", "r.mesa", "r.idfed_jugador").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list resultados by campeonato query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list resultados by campeonato: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromRow(row))
	}
	return out, nil
}

func (r *ResultRepository) Insert(ctx context.Context, res result.Result) (result.Result, error) {
	query, args, err := qb.InsertModel("resultados", resultInsertRow(res), "RETURNING nch")
	if err != nil {
		return result.Result{}, fmt.Errorf("build insert resultado query: %w", err)
	}

	if err := r.db.GetContext(ctx, &res.NCH, query, args...); err != nil {
		return result.Result{}, classifyWrite(err, "insert resultado "+res.IDFedJugador)
	}
	return res, nil
}

func (r *ResultRepository) Update(ctx context.Context, key result.Key, fields result.UpdateFields) (result.Result, error) {
	builder := qb.Update("resultados")
	if fields.TipoCampeonatoID != nil {
		builder = builder.Set("tipo_campeonato_id", *fields.TipoCampeonatoID)
	}
	if fields.NombreCampeonato != nil {
		builder = builder.Set("nombre_campeonato", *fields.NombreCampeonato)
	}
	if fields.Partida != nil {
		builder = builder.Set("partida", *fields.Partida)
	}
	if fields.Mesa != nil {
		builder = builder.Set("mesa", *fields.Mesa)
	}
	if fields.GB != nil {
		builder = builder.Set("gb", *fields.GB)
	}
	if fields.PG != nil {
		builder = builder.Set("pg", *fields.PG)
	}
	if fields.Dif != nil {
		builder = builder.Set("dif", *fields.Dif)
	}
	if fields.PV != nil {
		builder = builder.Set("pv", *fields.PV)
	}
	if fields.PT != nil {
		builder = builder.Set("pt", *fields.PT)
	}
	if fields.MG != nil {
		builder = builder.Set("mg", *fields.MG)
	}
	if fields.Pos != nil {
		builder = builder.Set("pos", *fields.Pos)
	}

	query, args, err := builder.
		Where(
			qb.Eq("nch", key.NCH),
			qb.Eq("fecha_campeonato", key.FechaCampeonato),
			qb.Eq("idfed_jugador", key.IDFedJugador),
		).
		Suffix("RETURNING nch").
		ToSQL()
	if err != nil {
		return result.Result{}, fmt.Errorf("build update resultado query: %w", err)
	}

	var nch int64
	if err := r.db.GetContext(ctx, &nch, query, args...); err != nil {
		if isNotFound(err) {
			return result.Result{}, fmt.Errorf("update resultado %d: %w", key.NCH, storage.ErrNotFound)
		}
		return result.Result{}, classifyWrite(err, fmt.Sprintf("update resultado %d", key.NCH))
	}

	updated, found, err := r.GetByKey(ctx, key)
	if err != nil {
		return result.Result{}, err
	}
	if !found {
		return result.Result{}, fmt.Errorf("reload resultado %d: %w", key.NCH, storage.ErrNotFound)
	}
	return updated, nil
}

func (r *ResultRepository) Delete(ctx context.Context, key result.Key) error {
	query, args, err := qb.DeleteFrom("resultados").
		Where(
			qb.Eq("nch", key.NCH),
			qb.Eq("fecha_campeonato", key.FechaCampeonato),
			qb.Eq("idfed_jugador", key.IDFedJugador),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete resultado query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyWrite(err, fmt.Sprintf("delete resultado %d", key.NCH))
	}
	return nil
}

func (r *ResultRepository) ApplyBulk(ctx context.Context, creates, updates []result.Result) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply resultados: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, res := range creates {
		query, args, err := qb.InsertModel("resultados", resultInsertRow(res), "")
		if err != nil {
			return fmt.Errorf("build bulk insert resultado query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyWrite(err, "bulk insert resultado "+res.IDFedJugador)
		}
	}

	for _, res := range updates {
		query, args, err := qb.Update("resultados").
			Set("tipo_campeonato_id", res.TipoCampeonatoID).
			Set("nombre_campeonato", res.NombreCampeonato).
			Set("gb", res.GB).
			Set("pg", res.PG).
			Set("dif", res.Dif).
			Set("pv", res.PV).
			Set("pt", res.PT).
			Set("mg", res.MG).
			Set("pos", res.Pos).
			Where(
				qb.Eq("nch", res.NCH),
				qb.Eq("fecha_campeonato", res.FechaCampeonato),
				qb.Eq("idfed_jugador", res.IDFedJugador),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build bulk update resultado query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyWrite(err, fmt.Sprintf("bulk update resultado %d", res.NCH))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply resultados tx: %w", err)
	}
	return nil
}
