package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/dominofed/federation-backend/internal/domain/result"
	"github.com/dominofed/federation-backend/internal/usecase"
)

type resultPartnerDTO struct {
	IDFed      string `json:"idfed"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	CodigoClub string `json:"codigo_club"`
	NombreClub string `json:"nombre_club,omitempty"`
}

type resultDTO struct {
	NCH              int64             `json:"nch"`
	FechaCampeonato  string            `json:"fecha_campeonato"`
	IDFedJugador     string            `json:"idfed_jugador"`
	CampeonatoNCH    string            `json:"campeonato_nch,omitempty"`
	TipoCampeonatoID int64             `json:"tipo_campeonato_id"`
	CodigoTipo       string            `json:"codigo_tipo,omitempty"`
	NombreCampeonato string            `json:"nombre_campeonato"`
	NombreJugador    string            `json:"nombre_jugador"`
	ApellidoJugador  string            `json:"apellido_jugador"`
	CodigoClub       string            `json:"codigo_club_jugador"`
	NombreClub       string            `json:"nombre_club_jugador,omitempty"`
	Pareja           *resultPartnerDTO `json:"pareja,omitempty"`
	Partida          int               `json:"partida"`
	Mesa             int               `json:"mesa"`
	GB               bool              `json:"gb"`
	PG               int               `json:"pg"`
	Dif              int               `json:"dif"`
	PV               int               `json:"pv"`
	PT               int               `json:"pt"`
	MG               int               `json:"mg"`
	Pos              int               `json:"pos"`
}

func resultToDTO(_ context.Context, res result.Result) resultDTO {
	dto := resultDTO{
		NCH:              res.NCH,
		FechaCampeonato:  res.FechaCampeonato.Format(requestDateLayout),
		IDFedJugador:     res.IDFedJugador,
		CampeonatoNCH:    res.CampeonatoNCH,
		TipoCampeonatoID: res.TipoCampeonatoID,
		CodigoTipo:       res.CodigoTipo,
		NombreCampeonato: res.NombreCampeonato,
		NombreJugador:    res.NombreJugador,
		ApellidoJugador:  res.ApellidoJugador,
		CodigoClub:       res.CodigoClubJugador,
		NombreClub:       res.NombreClubJugador,
		Partida:          res.Partida,
		Mesa:             res.Mesa,
		GB:               res.GB,
		PG:               res.PG,
		Dif:              res.Dif,
		PV:               res.PV,
		PT:               res.PT,
		MG:               res.MG,
		Pos:              res.Pos,
	}
	if res.Pareja != nil {
		dto.Pareja = &resultPartnerDTO{
			IDFed:      res.Pareja.IDFed,
			Nombre:     res.Pareja.Nombre,
			Apellido:   res.Pareja.Apellido,
			CodigoClub: res.Pareja.CodigoClub,
			NombreClub: res.Pareja.NombreClub,
		}
	}
	return dto
}

type resultPartnerRequest struct {
	IDFed      string `json:"idfed" validate:"required,len=7"`
	Nombre     string `json:"nombre" validate:"required,max=200"`
	Apellido   string `json:"apellido" validate:"required,max=200"`
	CodigoClub string `json:"codigo_club" validate:"required,len=6"`
	NombreClub string `json:"nombre_club" validate:"omitempty,max=200"`
}

type createResultRequest struct {
	FechaCampeonato  string                `json:"fecha_campeonato" validate:"required"`
	IDFedJugador     string                `json:"idfed_jugador" validate:"required,len=7"`
	CampeonatoNCH    string                `json:"campeonato_nch" validate:"omitempty,len=20"`
	TipoCampeonatoID int64                 `json:"tipo_campeonato_id" validate:"required,min=1"`
	NombreCampeonato string                `json:"nombre_campeonato" validate:"required,max=200"`
	NombreJugador    string                `json:"nombre_jugador" validate:"required,max=200"`
	ApellidoJugador  string                `json:"apellido_jugador" validate:"required,max=200"`
	CodigoClub       string                `json:"codigo_club_jugador" validate:"required,len=6"`
	NombreClub       string                `json:"nombre_club_jugador" validate:"omitempty,max=200"`
	Pareja           *resultPartnerRequest `json:"pareja" validate:"omitempty"`
	Partida          int                   `json:"partida" validate:"required,min=1"`
	Mesa             int                   `json:"mesa" validate:"required,min=1"`
	GB               bool                  `json:"gb"`
	PG               int                   `json:"pg" validate:"min=0"`
	Dif              int                   `json:"dif"`
	PV               int                   `json:"pv" validate:"min=0"`
	PT               int                   `json:"pt" validate:"min=0"`
	MG               int                   `json:"mg" validate:"min=0"`
	Pos              int                   `json:"pos" validate:"min=0"`
}

type updateResultRequest struct {
	TipoCampeonatoID *int64  `json:"tipo_campeonato_id" validate:"omitempty,min=1"`
	NombreCampeonato *string `json:"nombre_campeonato" validate:"omitempty,max=200"`
	Partida          *int    `json:"partida" validate:"omitempty,min=1"`
	Mesa             *int    `json:"mesa" validate:"omitempty,min=1"`
	GB               *bool   `json:"gb"`
	PG               *int    `json:"pg" validate:"omitempty,min=0"`
	Dif              *int    `json:"dif"`
	PV               *int    `json:"pv" validate:"omitempty,min=0"`
	PT               *int    `json:"pt" validate:"omitempty,min=0"`
	MG               *int    `json:"mg" validate:"omitempty,min=0"`
	Pos              *int    `json:"pos" validate:"omitempty,min=0"`
}

type filterResultsRequest struct {
	Filters []fieldFilterRequest `json:"filters" validate:"required,min=1,dive"`
	Skip    int                  `json:"skip" validate:"min=0"`
	Limit   int                  `json:"limit" validate:"min=0"`
}

type fieldFilterRequest struct {
	Field    string `json:"field" validate:"required"`
	Operator string `json:"operator" validate:"required,oneof=eq contains gt lt between after before"`
	Value    any    `json:"value" validate:"required"`
	Value2   any    `json:"value2"`
}

// resultKeyFromPath reads the composite key from /{nch}/{fecha}/{idfed}.
func resultKeyFromPath(r *http.Request) (result.Key, error) {
	rawNCH := strings.TrimSpace(r.PathValue("nch"))
	nch, err := strconv.ParseInt(rawNCH, 10, 64)
	if err != nil || nch <= 0 {
		return result.Key{}, fmt.Errorf("%w: nch must be a positive integer", usecase.ErrInvalidInput)
	}

	fecha, err := parseRequestDate("fecha", r.PathValue("fecha"))
	if err != nil {
		return result.Key{}, err
	}

	idfed := strings.TrimSpace(r.PathValue("idfed"))
	if idfed == "" {
		return result.Key{}, fmt.Errorf("%w: idfed is required", usecase.ErrInvalidInput)
	}

	return result.Key{NCH: nch, FechaCampeonato: fecha, IDFedJugador: idfed}, nil
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResults")
	defer span.End()

	window, err := parseListWindow(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	filter := result.ListFilter{
		Offset:       window.Offset,
		Limit:        window.Limit,
		IDFedJugador: strings.TrimSpace(r.URL.Query().Get("idfed")),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("tipo")); raw != "" {
		tipoID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tipoID <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: tipo must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		filter.TipoCampeonatoID = &tipoID
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("desde")); raw != "" {
		desde, err := parseRequestDate("desde", raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		filter.FechaDesde = &desde
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("hasta")); raw != "" {
		hasta, err := parseRequestDate("hasta", raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		filter.FechaHasta = &hasta
	}

	results, total, err := h.resultService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list results failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]resultDTO, 0, len(results))
	for _, res := range results {
		items = append(items, resultToDTO(ctx, res))
	}

	writeSuccess(ctx, w, http.StatusOK, pagedList{
		Items:  items,
		Total:  total,
		Offset: window.Offset,
		Limit:  window.Limit,
	})
}

func (h *Handler) FilterResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FilterResults")
	defer span.End()

	var req filterResultsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	filters := make([]result.FieldFilter, 0, len(req.Filters))
	for _, f := range req.Filters {
		filters = append(filters, result.FieldFilter{
			Field:    f.Field,
			Operator: result.Operator(f.Operator),
			Value:    f.Value,
			Value2:   f.Value2,
		})
	}

	results, total, err := h.resultService.Filter(ctx, filters, req.Skip, req.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "filter results failed", "filters", len(filters), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]resultDTO, 0, len(results))
	for _, res := range results {
		items = append(items, resultToDTO(ctx, res))
	}

	writeSuccess(ctx, w, http.StatusOK, pagedList{
		Items:  items,
		Total:  total,
		Offset: req.Skip,
		Limit:  req.Limit,
	})
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetResult")
	defer span.End()

	key, err := resultKeyFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.resultService.Get(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "get result failed", "nch", key.NCH, "idfed", key.IDFedJugador, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(ctx, res))
}

func (h *Handler) CreateResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateResult")
	defer span.End()

	var req createResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fecha, err := parseRequestDate("fecha_campeonato", req.FechaCampeonato)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := result.Result{
		FechaCampeonato:   fecha,
		IDFedJugador:      req.IDFedJugador,
		CampeonatoNCH:     req.CampeonatoNCH,
		TipoCampeonatoID:  req.TipoCampeonatoID,
		NombreCampeonato:  req.NombreCampeonato,
		NombreJugador:     req.NombreJugador,
		ApellidoJugador:   req.ApellidoJugador,
		CodigoClubJugador: req.CodigoClub,
		NombreClubJugador: req.NombreClub,
		Partida:           req.Partida,
		Mesa:              req.Mesa,
		GB:                req.GB,
		PG:                req.PG,
		Dif:               req.Dif,
		PV:                req.PV,
		PT:                req.PT,
		MG:                req.MG,
		Pos:               req.Pos,
	}
	if req.Pareja != nil {
		input.Pareja = &result.Partner{
			IDFed:      req.Pareja.IDFed,
			Nombre:     req.Pareja.Nombre,
			Apellido:   req.Pareja.Apellido,
			CodigoClub: req.Pareja.CodigoClub,
			NombreClub: req.Pareja.NombreClub,
		}
	}

	res, err := h.resultService.Create(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create result failed", "idfed", req.IDFedJugador, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, resultToDTO(ctx, res))
}

func (h *Handler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateResult")
	defer span.End()

	key, err := resultKeyFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateResultRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.resultService.Update(ctx, key, result.UpdateFields{
		TipoCampeonatoID: req.TipoCampeonatoID,
		NombreCampeonato: req.NombreCampeonato,
		Partida:          req.Partida,
		Mesa:             req.Mesa,
		GB:               req.GB,
		PG:               req.PG,
		Dif:              req.Dif,
		PV:               req.PV,
		PT:               req.PT,
		MG:               req.MG,
		Pos:              req.Pos,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update result failed", "nch", key.NCH, "idfed", key.IDFedJugador, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(ctx, res))
}

func (h *Handler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteResult")
	defer span.End()

	key, err := resultKeyFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.resultService.Delete(ctx, key); err != nil {
		h.logger.WarnContext(ctx, "delete result failed", "nch", key.NCH, "idfed", key.IDFedJugador, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
