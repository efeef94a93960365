package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/dominofed/federation-backend/internal/domain/club"
	"github.com/dominofed/federation-backend/internal/usecase"
)

type clubDTO struct {
	CP         string `json:"cp"`
	NumeroClub string `json:"numero_club"`
	CodigoClub string `json:"codigo_club"`
	Nombre     string `json:"nombre"`
}

func clubToDTO(_ context.Context, c club.Club) clubDTO {
	return clubDTO{
		CP:         c.CP,
		NumeroClub: c.NumeroClub,
		CodigoClub: c.CodigoClub,
		Nombre:     c.Nombre,
	}
}

type createClubRequest struct {
	CP         string `json:"cp" validate:"required"`
	NumeroClub string `json:"numero_club" validate:"required"`
	Nombre     string `json:"nombre" validate:"required,max=200"`
}

type updateClubRequest struct {
	Nombre string `json:"nombre" validate:"required,max=200"`
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	window, err := parseListWindow(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	clubs, total, err := h.clubService.List(ctx, club.ListParams{
		Offset: window.Offset,
		Limit:  window.Limit,
		Sort:   window.Sort,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, c := range clubs {
		items = append(items, clubToDTO(ctx, c))
	}

	writeSuccess(ctx, w, http.StatusOK, pagedList{
		Items:  items,
		Total:  total,
		Offset: window.Offset,
		Limit:  window.Limit,
	})
}

func (h *Handler) GetClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClub")
	defer span.End()

	codigoClub := strings.TrimSpace(r.PathValue("codigoClub"))
	c, err := h.clubService.Get(ctx, codigoClub)
	if err != nil {
		h.logger.WarnContext(ctx, "get club failed", "codigo_club", codigoClub, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubToDTO(ctx, c))
}

func (h *Handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateClub")
	defer span.End()

	var req createClubRequest
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

	c, err := h.clubService.Create(ctx, usecase.CreateClubInput{
		CP:         req.CP,
		NumeroClub: req.NumeroClub,
		Nombre:     req.Nombre,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create club failed", "cp", req.CP, "numero_club", req.NumeroClub, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, clubToDTO(ctx, c))
}

func (h *Handler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateClub")
	defer span.End()

	codigoClub := strings.TrimSpace(r.PathValue("codigoClub"))
	var req updateClubRequest
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

	c, err := h.clubService.Update(ctx, codigoClub, usecase.UpdateClubInput{Nombre: req.Nombre})
	if err != nil {
		h.logger.WarnContext(ctx, "update club failed", "codigo_club", codigoClub, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubToDTO(ctx, c))
}

func (h *Handler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteClub")
	defer span.End()

	codigoClub := strings.TrimSpace(r.PathValue("codigoClub"))
	if err := h.clubService.Delete(ctx, codigoClub); err != nil {
		h.logger.WarnContext(ctx, "delete club failed", "codigo_club", codigoClub, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListClubPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubPlayers")
	defer span.End()

	codigoClub := strings.TrimSpace(r.PathValue("codigoClub"))
	players, err := h.playerService.ListByClub(ctx, codigoClub)
	if err != nil {
		h.logger.WarnContext(ctx, "list club players failed", "codigo_club", codigoClub, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
