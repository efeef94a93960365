package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/dominofed/federation-backend/internal/domain/tournament"
	"github.com/dominofed/federation-backend/internal/usecase"
)

const requestDateLayout = "2006-01-02"

type tournamentDTO struct {
	NCH              string `json:"nch"`
	Nombre           string `json:"nombre"`
	FechaInicio      string `json:"fecha_inicio"`
	Dias             int    `json:"dias"`
	Partidas         int    `json:"partidas"`
	PM               int    `json:"pm"`
	GB               bool   `json:"gb"`
	GBP              *int   `json:"gbp,omitempty"`
	TipoCampeonatoID int64  `json:"tipo_campeonato_id"`
	CodigoTipo       string `json:"codigo_tipo,omitempty"`
	CodigoClub       string `json:"codigo_club"`
}

func tournamentToDTO(_ context.Context, t tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		NCH:              t.NCH,
		Nombre:           t.Nombre,
		FechaInicio:      t.FechaInicio.Format(requestDateLayout),
		Dias:             t.Dias,
		Partidas:         t.Partidas,
		PM:               t.PM,
		GB:               t.GB,
		GBP:              t.GBP,
		TipoCampeonatoID: t.TipoCampeonatoID,
		CodigoTipo:       t.CodigoTipo,
		CodigoClub:       t.CodigoClub,
	}
}

type createTournamentRequest struct {
	Nombre           string `json:"nombre" validate:"required,max=200"`
	FechaInicio      string `json:"fecha_inicio" validate:"required"`
	Dias             int    `json:"dias" validate:"required,min=1"`
	Partidas         int    `json:"partidas" validate:"required,min=1"`
	PM               int    `json:"pm" validate:"required,min=1"`
	GB               bool   `json:"gb"`
	GBP              *int   `json:"gbp" validate:"omitempty,min=0"`
	TipoCampeonatoID int64  `json:"tipo_campeonato_id" validate:"required,min=1"`
	CodigoClub       string `json:"codigo_club" validate:"required,len=6"`
}

type updateTournamentRequest struct {
	Nombre   string `json:"nombre" validate:"required,max=200"`
	Dias     int    `json:"dias" validate:"required,min=1"`
	Partidas int    `json:"partidas" validate:"required,min=1"`
	PM       int    `json:"pm" validate:"required,min=1"`
	GB       bool   `json:"gb"`
	GBP      *int   `json:"gbp" validate:"omitempty,min=0"`
}

func parseRequestDate(field, raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(requestDateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must use format %s", usecase.ErrInvalidInput, field, requestDateLayout)
	}
	return parsed, nil
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	window, err := parseListWindow(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tournaments, total, err := h.tournamentService.List(ctx, tournament.ListParams{
		Offset: window.Offset,
		Limit:  window.Limit,
		Sort:   window.Sort,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list campeonatos failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tournamentDTO, 0, len(tournaments))
	for _, t := range tournaments {
		items = append(items, tournamentToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, pagedList{
		Items:  items,
		Total:  total,
		Offset: window.Offset,
		Limit:  window.Limit,
	})
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	nch := strings.TrimSpace(r.PathValue("nch"))
	t, err := h.tournamentService.Get(ctx, nch)
	if err != nil {
		h.logger.WarnContext(ctx, "get campeonato failed", "nch", nch, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(ctx, t))
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var req createTournamentRequest
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

	fechaInicio, err := parseRequestDate("fecha_inicio", req.FechaInicio)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	t, err := h.tournamentService.Create(ctx, usecase.CreateTournamentInput{
		Nombre:           req.Nombre,
		FechaInicio:      fechaInicio,
		Dias:             req.Dias,
		Partidas:         req.Partidas,
		PM:               req.PM,
		GB:               req.GB,
		GBP:              req.GBP,
		TipoCampeonatoID: req.TipoCampeonatoID,
		CodigoClub:       req.CodigoClub,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create campeonato failed", "codigo_club", req.CodigoClub, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(ctx, t))
}

func (h *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTournament")
	defer span.End()

	nch := strings.TrimSpace(r.PathValue("nch"))
	var req updateTournamentRequest
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

	t, err := h.tournamentService.Update(ctx, nch, usecase.UpdateTournamentInput{
		Nombre:   req.Nombre,
		Dias:     req.Dias,
		Partidas: req.Partidas,
		PM:       req.PM,
		GB:       req.GB,
		GBP:      req.GBP,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update campeonato failed", "nch", nch, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(ctx, t))
}

func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTournament")
	defer span.End()

	nch := strings.TrimSpace(r.PathValue("nch"))
	if err := h.tournamentService.Delete(ctx, nch); err != nil {
		h.logger.WarnContext(ctx, "delete campeonato failed", "nch", nch, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListTournamentResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournamentResults")
	defer span.End()

	nch := strings.TrimSpace(r.PathValue("nch"))
	results, err := h.resultService.ListByCampeonato(ctx, nch)
	if err != nil {
		h.logger.WarnContext(ctx, "list campeonato results failed", "nch", nch, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]resultDTO, 0, len(results))
	for _, res := range results {
		items = append(items, resultToDTO(ctx, res))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
