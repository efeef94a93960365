package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dominofed/federation-backend/internal/domain/club"
	"github.com/dominofed/federation-backend/internal/domain/player"
	"github.com/dominofed/federation-backend/internal/domain/storage"
	"github.com/dominofed/federation-backend/internal/domain/validate"
	"github.com/dominofed/federation-backend/internal/platform/identifier"
)

type CreatePlayerInput struct {
	CP            string
	NumeroJugador string
	Nombre        string
	Apellidos     string
	DNI           string
	Telefono      string
	Email         string
	CodigoClub    string
}

type UpdatePlayerInput struct {
	Nombre     string
	Apellidos  string
	DNI        string
	Telefono   string
	Email      string
	CodigoClub string
}

type PlayerService struct {
	playerRepo player.Repository
	clubRepo   club.Repository
}

func NewPlayerService(playerRepo player.Repository, clubRepo club.Repository) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		clubRepo:   clubRepo,
	}
}

func (s *PlayerService) List(ctx context.Context, params player.ListParams) ([]player.Player, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	params.Offset, params.Limit = normalizeWindow(params.Offset, params.Limit)
	players, total, err := s.playerRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list jugadores: %w", err)
	}
	return players, total, nil
}

func (s *PlayerService) Get(ctx context.Context, idfed string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	id, err := validate.IDFed(idfed)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	p, found, err := s.playerRepo.GetByIDFed(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get jugador: %w", err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: jugador=%s", ErrNotFound, id)
	}
	return p, nil
}

func (s *PlayerService) ListByClub(ctx context.Context, codigoClub string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListByClub")
	defer span.End()

	codigo, err := s.requireClub(ctx, codigoClub)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByClub(ctx, codigo)
	if err != nil {
		return nil, fmt.Errorf("list jugadores by club: %w", err)
	}
	return players, nil
}

func (s *PlayerService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	p, err := s.buildPlayer(input)
	if err != nil {
		return player.Player{}, err
	}
	if _, err := s.requireClub(ctx, p.CodigoClub); err != nil {
		return player.Player{}, err
	}

	created, err := s.playerRepo.Insert(ctx, p)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return player.Player{}, fmt.Errorf("%w: jugador=%s", ErrConflict, p.IDFed)
		}
		return player.Player{}, fmt.Errorf("create jugador: %w", err)
	}
	return created, nil
}

func (s *PlayerService) Update(ctx context.Context, idfed string, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	existing, err := s.Get(ctx, idfed)
	if err != nil {
		return player.Player{}, err
	}

	updated, err := s.buildPlayer(CreatePlayerInput{
		CP:            existing.CP,
		NumeroJugador: existing.NumeroJugador,
		Nombre:        input.Nombre,
		Apellidos:     input.Apellidos,
		DNI:           input.DNI,
		Telefono:      input.Telefono,
		Email:         input.Email,
		CodigoClub:    input.CodigoClub,
	})
	if err != nil {
		return player.Player{}, err
	}
	if _, err := s.requireClub(ctx, updated.CodigoClub); err != nil {
		return player.Player{}, err
	}

	updated.ID = existing.ID
	out, err := s.playerRepo.Update(ctx, existing.IDFed, updated)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return player.Player{}, fmt.Errorf("%w: jugador=%s", ErrNotFound, existing.IDFed)
		}
		return player.Player{}, fmt.Errorf("update jugador: %w", err)
	}
	return out, nil
}

func (s *PlayerService) Delete(ctx context.Context, idfed string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	existing, err := s.Get(ctx, idfed)
	if err != nil {
		return err
	}

	dependents, err := s.playerRepo.CountDependents(ctx, existing.IDFed)
	if err != nil {
		return fmt.Errorf("count jugador dependents: %w", err)
	}
	if dependents > 0 {
		return fmt.Errorf("%w: el jugador %s tiene %d resultados asociados", ErrConflict, existing.IDFed, dependents)
	}

	if err := s.playerRepo.Delete(ctx, existing.IDFed); err != nil {
		if errors.Is(err, storage.ErrReferenced) {
			return fmt.Errorf("%w: el jugador %s tiene resultados asociados", ErrConflict, existing.IDFed)
		}
		return fmt.Errorf("delete jugador: %w", err)
	}
	return nil
}

func (s *PlayerService) buildPlayer(input CreatePlayerInput) (player.Player, error) {
	cp, err := validate.PostalCode(input.CP)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	numero, err := validate.PlayerNumber(input.NumeroJugador)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.Nombre == "" {
		return player.Player{}, fmt.Errorf("%w: el nombre del jugador es obligatorio", ErrInvalidInput)
	}
	if input.Apellidos == "" {
		return player.Player{}, fmt.Errorf("%w: los apellidos del jugador son obligatorios", ErrInvalidInput)
	}
	dni, err := validate.DNI(input.DNI)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	telefono, err := validate.Phone(input.Telefono)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	email, err := validate.Email(input.Email)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	codigoClub, err := validate.ClubCode(input.CodigoClub)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	idfed, err := identifier.FormatIDFed(cp, numero)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return player.Player{
		CP:            cp,
		NumeroJugador: numero,
		IDFed:         idfed,
		Nombre:        input.Nombre,
		Apellidos:     input.Apellidos,
		DNI:           dni,
		Telefono:      telefono,
		Email:         email,
		CodigoClub:    codigoClub,
	}, nil
}

func (s *PlayerService) requireClub(ctx context.Context, codigoClub string) (string, error) {
	codigo, err := validate.ClubCode(codigoClub)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	_, found, err := s.clubRepo.GetByCode(ctx, codigo)
	if err != nil {
		return "", fmt.Errorf("get club: %w", err)
	}
	if !found {
		return "", fmt.Errorf("%w: club=%s", ErrNotFound, codigo)
	}
	return codigo, nil
}
