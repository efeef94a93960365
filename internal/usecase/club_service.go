package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dominofed/federation-backend/internal/domain/club"
	"github.com/dominofed/federation-backend/internal/domain/storage"
	"github.com/dominofed/federation-backend/internal/domain/validate"
	"github.com/dominofed/federation-backend/internal/platform/identifier"
)

type CreateClubInput struct {
	CP         string
	NumeroClub string
	Nombre     string
}

type UpdateClubInput struct {
	Nombre string
}

type ClubService struct {
	clubRepo club.Repository
}

func NewClubService(clubRepo club.Repository) *ClubService {
	return &ClubService{clubRepo: clubRepo}
}

func (s *ClubService) List(ctx context.Context, params club.ListParams) ([]club.Club, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.List")
	defer span.End()

	params.Offset, params.Limit = normalizeWindow(params.Offset, params.Limit)
	clubs, total, err := s.clubRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list clubs: %w", err)
	}
	return clubs, total, nil
}

func (s *ClubService) Get(ctx context.Context, codigoClub string) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.Get")
	defer span.End()

	codigo, err := validate.ClubCode(codigoClub)
	if err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	c, found, err := s.clubRepo.GetByCode(ctx, codigo)
	if err != nil {
		return club.Club{}, fmt.Errorf("get club: %w", err)
	}
	if !found {
		return club.Club{}, fmt.Errorf("%w: club=%s", ErrNotFound, codigo)
	}
	return c, nil
}

func (s *ClubService) Create(ctx context.Context, input CreateClubInput) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.Create")
	defer span.End()

	cp, err := validate.PostalCode(input.CP)
	if err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	numero, err := validate.ClubNumber(input.NumeroClub)
	if err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.Nombre == "" {
		return club.Club{}, fmt.Errorf("%w: el nombre del club es obligatorio", ErrInvalidInput)
	}

	codigo, err := identifier.FormatClubCode(cp, numero)
	if err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.clubRepo.Insert(ctx, club.Club{
		CP:         cp,
		NumeroClub: numero,
		CodigoClub: codigo,
		Nombre:     input.Nombre,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return club.Club{}, fmt.Errorf("%w: club=%s", ErrConflict, codigo)
		}
		return club.Club{}, fmt.Errorf("create club: %w", err)
	}
	return created, nil
}

func (s *ClubService) Update(ctx context.Context, codigoClub string, input UpdateClubInput) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.Update")
	defer span.End()

	if input.Nombre == "" {
		return club.Club{}, fmt.Errorf("%w: el nombre del club es obligatorio", ErrInvalidInput)
	}

	existing, err := s.Get(ctx, codigoClub)
	if err != nil {
		return club.Club{}, err
	}

	existing.Nombre = input.Nombre
	updated, err := s.clubRepo.Update(ctx, existing.CodigoClub, existing)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return club.Club{}, fmt.Errorf("%w: club=%s", ErrNotFound, codigoClub)
		}
		return club.Club{}, fmt.Errorf("update club: %w", err)
	}
	return updated, nil
}

func (s *ClubService) Delete(ctx context.Context, codigoClub string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.Delete")
	defer span.End()

	existing, err := s.Get(ctx, codigoClub)
	if err != nil {
		return err
	}

	dependents, err := s.clubRepo.CountDependents(ctx, existing.CodigoClub)
	if err != nil {
		return fmt.Errorf("count club dependents: %w", err)
	}
	if dependents > 0 {
		return fmt.Errorf("%w: el club %s tiene %d registros asociados", ErrConflict, existing.CodigoClub, dependents)
	}

	if err := s.clubRepo.Delete(ctx, existing.CodigoClub); err != nil {
		if errors.Is(err, storage.ErrReferenced) {
			return fmt.Errorf("%w: el club %s tiene registros asociados", ErrConflict, existing.CodigoClub)
		}
		return fmt.Errorf("delete club: %w", err)
	}
	return nil
}

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

func normalizeWindow(offset, limit int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
