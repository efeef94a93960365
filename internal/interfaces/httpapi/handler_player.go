package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/dominofed/federation-backend/internal/domain/player"
	"github.com/dominofed/federation-backend/internal/usecase"
)

type playerDTO struct {
	CP            string `json:"cp"`
	NumeroJugador string `json:"numero_jugador"`
	IDFed         string `json:"idfed"`
	Nombre        string `json:"nombre"`
	Apellidos     string `json:"apellidos"`
	DNI           string `json:"dni,omitempty"`
	Telefono      string `json:"telefono,omitempty"`
	Email         string `json:"email,omitempty"`
	CodigoClub    string `json:"codigo_club"`
	NombreClub    string `json:"nombre_club,omitempty"`
}

func playerToDTO(_ context.Context, p player.Player) playerDTO {
	return playerDTO{
		CP:            p.CP,
		NumeroJugador: p.NumeroJugador,
		IDFed:         p.IDFed,
		Nombre:        p.Nombre,
		Apellidos:     p.Apellidos,
		DNI:           p.DNI,
		Telefono:      p.Telefono,
		Email:         p.Email,
		CodigoClub:    p.CodigoClub,
		NombreClub:    p.NombreClub,
	}
}

type createPlayerRequest struct {
	CP            string `json:"cp" validate:"required"`
	NumeroJugador string `json:"numero_jugador" validate:"required"`
	Nombre        string `json:"nombre" validate:"required,max=200"`
	Apellidos     string `json:"apellidos" validate:"required,max=200"`
	DNI           string `json:"dni" validate:"omitempty,max=20"`
	Telefono      string `json:"telefono" validate:"omitempty,max=20"`
	Email         string `json:"email" validate:"omitempty,email"`
	CodigoClub    string `json:"codigo_club" validate:"required,len=6"`
}

type updatePlayerRequest struct {
	Nombre     string `json:"nombre" validate:"required,max=200"`
	Apellidos  string `json:"apellidos" validate:"required,max=200"`
	DNI        string `json:"dni" validate:"omitempty,max=20"`
	Telefono   string `json:"telefono" validate:"omitempty,max=20"`
	Email      string `json:"email" validate:"omitempty,email"`
	CodigoClub string `json:"codigo_club" validate:"required,len=6"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	window, err := parseListWindow(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, total, err := h.playerService.List(ctx, player.ListParams{
		Offset: window.Offset,
		Limit:  window.Limit,
		Sort:   window.Sort,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, pagedList{
		Items:  items,
		Total:  total,
		Offset: window.Offset,
		Limit:  window.Limit,
	})
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	idfed := strings.TrimSpace(r.PathValue("idfed"))
	p, err := h.playerService.Get(ctx, idfed)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "idfed", idfed, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, p))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
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

	p, err := h.playerService.Create(ctx, usecase.CreatePlayerInput{
		CP:            req.CP,
		NumeroJugador: req.NumeroJugador,
		Nombre:        req.Nombre,
		Apellidos:     req.Apellidos,
		DNI:           req.DNI,
		Telefono:      req.Telefono,
		Email:         req.Email,
		CodigoClub:    req.CodigoClub,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "cp", req.CP, "numero_jugador", req.NumeroJugador, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(ctx, p))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	idfed := strings.TrimSpace(r.PathValue("idfed"))
	var req updatePlayerRequest
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

	p, err := h.playerService.Update(ctx, idfed, usecase.UpdatePlayerInput{
		Nombre:     req.Nombre,
		Apellidos:  req.Apellidos,
		DNI:        req.DNI,
		Telefono:   req.Telefono,
		Email:      req.Email,
		CodigoClub: req.CodigoClub,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "idfed", idfed, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, p))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	idfed := strings.TrimSpace(r.PathValue("idfed"))
	if err := h.playerService.Delete(ctx, idfed); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "idfed", idfed, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListPlayerResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerResults")
	defer span.End()

	idfed := strings.TrimSpace(r.PathValue("idfed"))
	results, err := h.resultService.ListByPlayer(ctx, idfed)
	if err != nil {
		h.logger.WarnContext(ctx, "list player results failed", "idfed", idfed, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]resultDTO, 0, len(results))
	for _, res := range results {
		items = append(items, resultToDTO(ctx, res))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
