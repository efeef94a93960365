package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dominofed/federation-backend/internal/domain/player"
	"github.com/dominofed/federation-backend/internal/domain/result"
	"github.com/dominofed/federation-backend/internal/domain/storage"
	"github.com/dominofed/federation-backend/internal/domain/tourtype"
)

type ResultService struct {
	resultRepo result.Repository
	playerRepo player.Repository
	typeRepo   tourtype.Repository
}

func NewResultService(resultRepo result.Repository, playerRepo player.Repository, typeRepo tourtype.Repository) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		playerRepo: playerRepo,
		typeRepo:   typeRepo,
	}
}

func (s *ResultService) List(ctx context.Context, filter result.ListFilter) ([]result.Result, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.List")
	defer span.End()

	filter.Offset, filter.Limit = normalizeWindow(filter.Offset, filter.Limit)
	results, total, err := s.resultRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list resultados: %w", err)
	}
	return results, total, nil
}

// Filter evaluates AND-combined dynamic predicates. The repository rejects
// fields outside its allow-list, which surfaces here as invalid input.
func (s *ResultService) Filter(ctx context.Context, filters []result.FieldFilter, offset, limit int) ([]result.Result, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Filter")
	defer span.End()

	if len(filters) == 0 {
		return nil, 0, fmt.Errorf("%w: se requiere al menos un filtro", ErrInvalidInput)
	}
	for _, f := range filters {
		if f.Field == "" {
			return nil, 0, fmt.Errorf("%w: filtro sin campo", ErrInvalidInput)
		}
		if f.Value == nil {
			return nil, 0, fmt.Errorf("%w: filtro sin valor: %s", ErrInvalidInput, f.Field)
		}
	}

	offset, limit = normalizeWindow(offset, limit)
	results, total, err := s.resultRepo.Filter(ctx, filters, offset, limit)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFilter) {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, 0, fmt.Errorf("filter resultados: %w", err)
	}
	return results, total, nil
}

func (s *ResultService) Get(ctx context.Context, key result.Key) (result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Get")
	defer span.End()

	r, found, err := s.resultRepo.GetByKey(ctx, key)
	if err != nil {
		return result.Result{}, fmt.Errorf("get resultado: %w", err)
	}
	if !found {
		return result.Result{}, fmt.Errorf("%w: resultado nch=%d fecha=%s jugador=%s",
			ErrNotFound, key.NCH, key.FechaCampeonato.Format("2006-01-02"), key.IDFedJugador)
	}
	return r, nil
}

func (s *ResultService) ListByPlayer(ctx context.Context, idfed string) ([]result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ListByPlayer")
	defer span.End()

	if _, found, err := s.playerRepo.GetByIDFed(ctx, idfed); err != nil {
		return nil, fmt.Errorf("get jugador: %w", err)
	} else if !found {
		return nil, fmt.Errorf("%w: jugador=%s", ErrNotFound, idfed)
	}

	results, err := s.resultRepo.ListByPlayer(ctx, idfed)
	if err != nil {
		return nil, fmt.Errorf("list resultados by jugador: %w", err)
	}
	return results, nil
}

func (s *ResultService) ListByCampeonato(ctx context.Context, nch string) ([]result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ListByCampeonato")
	defer span.End()

	results, err := s.resultRepo.ListByCampeonato(ctx, nch)
	if err != nil {
		return nil, fmt.Errorf("list resultados by campeonato: %w", err)
	}
	return results, nil
}

func (s *ResultService) Create(ctx context.Context, r result.Result) (result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Create")
	defer span.End()

	if err := r.Validate(); err != nil {
		return result.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.checkReferences(ctx, r); err != nil {
		return result.Result{}, err
	}

	if _, found, err := s.resultRepo.GetByNaturalKey(ctx, r.FechaCampeonato, r.IDFedJugador, r.Partida, r.Mesa); err != nil {
		return result.Result{}, fmt.Errorf("check resultado natural key: %w", err)
	} else if found {
		return result.Result{}, fmt.Errorf("%w: ya existe un resultado para jugador=%s fecha=%s partida=%d mesa=%d",
			ErrConflict, r.IDFedJugador, r.FechaCampeonato.Format("2006-01-02"), r.Partida, r.Mesa)
	}

	created, err := s.resultRepo.Insert(ctx, r)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return result.Result{}, fmt.Errorf("%w: resultado duplicado", ErrConflict)
		}
		if errors.Is(err, storage.ErrReferenced) {
			return result.Result{}, fmt.Errorf("%w: referencia inexistente en el resultado", ErrInvalidInput)
		}
		return result.Result{}, fmt.Errorf("create resultado: %w", err)
	}
	return created, nil
}

func (s *ResultService) Update(ctx context.Context, key result.Key, fields result.UpdateFields) (result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Update")
	defer span.End()

	if fields == (result.UpdateFields{}) {
		return result.Result{}, fmt.Errorf("%w: no hay campos que actualizar", ErrInvalidInput)
	}
	if fields.TipoCampeonatoID != nil {
		if _, found, err := s.typeRepo.GetByID(ctx, *fields.TipoCampeonatoID); err != nil {
			return result.Result{}, fmt.Errorf("get tipo: %w", err)
		} else if !found {
			return result.Result{}, fmt.Errorf("%w: tipo=%d", ErrNotFound, *fields.TipoCampeonatoID)
		}
	}

	if _, err := s.Get(ctx, key); err != nil {
		return result.Result{}, err
	}

	updated, err := s.resultRepo.Update(ctx, key, fields)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return result.Result{}, fmt.Errorf("%w: resultado nch=%d", ErrNotFound, key.NCH)
		}
		return result.Result{}, fmt.Errorf("update resultado: %w", err)
	}
	return updated, nil
}

func (s *ResultService) Delete(ctx context.Context, key result.Key) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Delete")
	defer span.End()

	if _, err := s.Get(ctx, key); err != nil {
		return err
	}

	if err := s.resultRepo.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete resultado: %w", err)
	}
	return nil
}

func (s *ResultService) checkReferences(ctx context.Context, r result.Result) error {
	if _, found, err := s.typeRepo.GetByID(ctx, r.TipoCampeonatoID); err != nil {
		return fmt.Errorf("get tipo: %w", err)
	} else if !found {
		return fmt.Errorf("%w: tipo=%d", ErrNotFound, r.TipoCampeonatoID)
	}

	if _, found, err := s.playerRepo.GetByIDFed(ctx, r.IDFedJugador); err != nil {
		return fmt.Errorf("get jugador: %w", err)
	} else if !found {
		return fmt.Errorf("%w: jugador=%s", ErrNotFound, r.IDFedJugador)
	}

	if r.Pareja != nil {
		if _, found, err := s.playerRepo.GetByIDFed(ctx, r.Pareja.IDFed); err != nil {
			return fmt.Errorf("get pareja: %w", err)
		} else if !found {
			return fmt.Errorf("%w: pareja=%s", ErrNotFound, r.Pareja.IDFed)
		}
	}
	return nil
}
