package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/dominofed/federation-backend/internal/domain/tourtype"
	"github.com/dominofed/federation-backend/internal/usecase"
)

type tourTypeDTO struct {
	ID          int64  `json:"id"`
	Codigo      string `json:"codigo"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

func tourTypeToDTO(_ context.Context, t tourtype.Type) tourTypeDTO {
	return tourTypeDTO{
		ID:          t.ID,
		Codigo:      t.Codigo,
		Nombre:      t.Nombre,
		Descripcion: t.Descripcion,
	}
}

type tourTypeRequest struct {
	Codigo      string `json:"codigo" validate:"required,len=2"`
	Nombre      string `json:"nombre" validate:"required,max=200"`
	Descripcion string `json:"descripcion" validate:"omitempty,max=500"`
}

func tourTypeIDFromPath(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("tipoID"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: tipo id must be a positive integer", usecase.ErrInvalidInput)
	}
	return id, nil
}

func (h *Handler) ListTourTypes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTourTypes")
	defer span.End()

	types, err := h.tourTypeService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list tipos failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tourTypeDTO, 0, len(types))
	for _, t := range types {
		items = append(items, tourTypeToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTourType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTourType")
	defer span.End()

	id, err := tourTypeIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	t, err := h.tourTypeService.Get(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get tipo failed", "tipo_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tourTypeToDTO(ctx, t))
}

func (h *Handler) CreateTourType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTourType")
	defer span.End()

	var req tourTypeRequest
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

	t, err := h.tourTypeService.Create(ctx, usecase.TourTypeInput{
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create tipo failed", "codigo", req.Codigo, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tourTypeToDTO(ctx, t))
}

func (h *Handler) UpdateTourType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTourType")
	defer span.End()

	id, err := tourTypeIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req tourTypeRequest
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

	t, err := h.tourTypeService.Update(ctx, id, usecase.TourTypeInput{
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update tipo failed", "tipo_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tourTypeToDTO(ctx, t))
}

func (h *Handler) DeleteTourType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTourType")
	defer span.End()

	id, err := tourTypeIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tourTypeService.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete tipo failed", "tipo_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
