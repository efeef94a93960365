package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dominofed/federation-backend/internal/domain/storage"
	"github.com/dominofed/federation-backend/internal/domain/tourtype"
	"github.com/dominofed/federation-backend/internal/domain/validate"
)

type TourTypeInput struct {
	Codigo      string
	Nombre      string
	Descripcion string
}

type TourTypeService struct {
	typeRepo tourtype.Repository
}

func NewTourTypeService(typeRepo tourtype.Repository) *TourTypeService {
	return &TourTypeService{typeRepo: typeRepo}
}

func (s *TourTypeService) List(ctx context.Context) ([]tourtype.Type, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TourTypeService.List")
	defer span.End()

	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tipos: %w", err)
	}
	return types, nil
}

func (s *TourTypeService) Get(ctx context.Context, id int64) (tourtype.Type, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TourTypeService.Get")
	defer span.End()

	if id <= 0 {
		return tourtype.Type{}, fmt.Errorf("%w: id de tipo invalido", ErrInvalidInput)
	}

	t, found, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		return tourtype.Type{}, fmt.Errorf("get tipo: %w", err)
	}
	if !found {
		return tourtype.Type{}, fmt.Errorf("%w: tipo=%d", ErrNotFound, id)
	}
	return t, nil
}

func (s *TourTypeService) Create(ctx context.Context, input TourTypeInput) (tourtype.Type, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TourTypeService.Create")
	defer span.End()

	t, err := buildTourType(input)
	if err != nil {
		return tourtype.Type{}, err
	}

	created, err := s.typeRepo.Insert(ctx, t)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return tourtype.Type{}, fmt.Errorf("%w: tipo=%s", ErrConflict, t.Codigo)
		}
		return tourtype.Type{}, fmt.Errorf("create tipo: %w", err)
	}
	return created, nil
}

func (s *TourTypeService) Update(ctx context.Context, id int64, input TourTypeInput) (tourtype.Type, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TourTypeService.Update")
	defer span.End()

	if _, err := s.Get(ctx, id); err != nil {
		return tourtype.Type{}, err
	}

	t, err := buildTourType(input)
	if err != nil {
		return tourtype.Type{}, err
	}

	updated, err := s.typeRepo.Update(ctx, id, t)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tourtype.Type{}, fmt.Errorf("%w: tipo=%d", ErrNotFound, id)
		}
		if errors.Is(err, storage.ErrDuplicate) {
			return tourtype.Type{}, fmt.Errorf("%w: tipo=%s", ErrConflict, t.Codigo)
		}
		return tourtype.Type{}, fmt.Errorf("update tipo: %w", err)
	}
	return updated, nil
}

func (s *TourTypeService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TourTypeService.Delete")
	defer span.End()

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	dependents, err := s.typeRepo.CountDependents(ctx, id)
	if err != nil {
		return fmt.Errorf("count tipo dependents: %w", err)
	}
	if dependents > 0 {
		return fmt.Errorf("%w: el tipo %d tiene %d registros asociados", ErrConflict, id, dependents)
	}

	if err := s.typeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrReferenced) {
			return fmt.Errorf("%w: el tipo %d tiene registros asociados", ErrConflict, id)
		}
		return fmt.Errorf("delete tipo: %w", err)
	}
	return nil
}

func buildTourType(input TourTypeInput) (tourtype.Type, error) {
	codigo, err := validate.TypeCode(input.Codigo)
	if err != nil {
		return tourtype.Type{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.Nombre == "" {
		return tourtype.Type{}, fmt.Errorf("%w: el nombre del tipo es obligatorio", ErrInvalidInput)
	}
	return tourtype.Type{
		Codigo:      codigo,
		Nombre:      input.Nombre,
		Descripcion: input.Descripcion,
	}, nil
}
