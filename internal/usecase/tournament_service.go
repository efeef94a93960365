package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dominofed/federation-backend/internal/domain/club"
	"github.com/dominofed/federation-backend/internal/domain/storage"
	"github.com/dominofed/federation-backend/internal/domain/tournament"
	"github.com/dominofed/federation-backend/internal/domain/tourtype"
	"github.com/dominofed/federation-backend/internal/domain/validate"
	"github.com/dominofed/federation-backend/internal/platform/identifier"
)

// nchInsertAttempts bounds the generate-insert retry loop that absorbs
// concurrent creations racing for the same incremental.
const nchInsertAttempts = 3

type CreateTournamentInput struct {
	Nombre           string
	FechaInicio      time.Time
	Dias             int
	Partidas         int
	PM               int
	GB               bool
	GBP              *int
	TipoCampeonatoID int64
	CodigoClub       string
}

type UpdateTournamentInput struct {
	Nombre   string
	Dias     int
	Partidas int
	PM       int
	GB       bool
	GBP      *int
}

type TournamentService struct {
	tournamentRepo tournament.Repository
	typeRepo       tourtype.Repository
	clubRepo       club.Repository
}

func NewTournamentService(tournamentRepo tournament.Repository, typeRepo tourtype.Repository, clubRepo club.Repository) *TournamentService {
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		typeRepo:       typeRepo,
		clubRepo:       clubRepo,
	}
}

func (s *TournamentService) List(ctx context.Context, params tournament.ListParams) ([]tournament.Tournament, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	params.Offset, params.Limit = normalizeWindow(params.Offset, params.Limit)
	tournaments, total, err := s.tournamentRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list campeonatos: %w", err)
	}
	return tournaments, total, nil
}

func (s *TournamentService) Get(ctx context.Context, nch string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get")
	defer span.End()

	if len(nch) != identifier.NCHLen {
		return tournament.Tournament{}, fmt.Errorf("%w: el nch debe tener %d caracteres", ErrInvalidInput, identifier.NCHLen)
	}

	t, found, err := s.tournamentRepo.GetByNCH(ctx, nch)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get campeonato: %w", err)
	}
	if !found {
		return tournament.Tournament{}, fmt.Errorf("%w: campeonato=%s", ErrNotFound, nch)
	}
	return t, nil
}

// Create derives the next NCH under the tipo+club+fecha prefix and inserts.
// A duplicate-key insert means a concurrent creation won the incremental, so
// the NCH is recomputed and the insert retried a bounded number of times.
func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	t, tipo, err := s.buildTournament(ctx, input)
	if err != nil {
		return tournament.Tournament{}, err
	}

	for attempt := 0; attempt < nchInsertAttempts; attempt++ {
		nch, err := s.nextNCH(ctx, tipo.Codigo, t.CodigoClub, t.FechaInicio)
		if err != nil {
			return tournament.Tournament{}, err
		}

		t.NCH = nch
		if err := s.tournamentRepo.Insert(ctx, t); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				continue
			}
			if errors.Is(err, storage.ErrReferenced) {
				return tournament.Tournament{}, fmt.Errorf("%w: tipo o club inexistente", ErrInvalidInput)
			}
			return tournament.Tournament{}, fmt.Errorf("create campeonato: %w", err)
		}
		t.CodigoTipo = tipo.Codigo
		return t, nil
	}

	return tournament.Tournament{}, fmt.Errorf("%w: no se pudo asignar nch tras %d intentos", ErrConflict, nchInsertAttempts)
}

func (s *TournamentService) Update(ctx context.Context, nch string, input UpdateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Update")
	defer span.End()

	existing, err := s.Get(ctx, nch)
	if err != nil {
		return tournament.Tournament{}, err
	}

	existing.Nombre = input.Nombre
	existing.Dias = input.Dias
	existing.Partidas = input.Partidas
	existing.PM = input.PM
	existing.GB = input.GB
	existing.GBP = input.GBP
	if err := existing.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.tournamentRepo.Update(ctx, nch, existing)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tournament.Tournament{}, fmt.Errorf("%w: campeonato=%s", ErrNotFound, nch)
		}
		return tournament.Tournament{}, fmt.Errorf("update campeonato: %w", err)
	}
	return updated, nil
}

func (s *TournamentService) Delete(ctx context.Context, nch string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Delete")
	defer span.End()

	existing, err := s.Get(ctx, nch)
	if err != nil {
		return err
	}

	dependents, err := s.tournamentRepo.CountDependents(ctx, existing.NCH)
	if err != nil {
		return fmt.Errorf("count campeonato dependents: %w", err)
	}
	if dependents > 0 {
		return fmt.Errorf("%w: el campeonato %s tiene %d resultados asociados", ErrConflict, existing.NCH, dependents)
	}

	if err := s.tournamentRepo.Delete(ctx, existing.NCH); err != nil {
		if errors.Is(err, storage.ErrReferenced) {
			return fmt.Errorf("%w: el campeonato %s tiene resultados asociados", ErrConflict, existing.NCH)
		}
		return fmt.Errorf("delete campeonato: %w", err)
	}
	return nil
}

func (s *TournamentService) buildTournament(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, tourtype.Type, error) {
	codigoClub, err := validate.ClubCode(input.CodigoClub)
	if err != nil {
		return tournament.Tournament{}, tourtype.Type{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tipo, found, err := s.typeRepo.GetByID(ctx, input.TipoCampeonatoID)
	if err != nil {
		return tournament.Tournament{}, tourtype.Type{}, fmt.Errorf("get tipo: %w", err)
	}
	if !found {
		return tournament.Tournament{}, tourtype.Type{}, fmt.Errorf("%w: tipo=%d", ErrNotFound, input.TipoCampeonatoID)
	}

	_, found, err = s.clubRepo.GetByCode(ctx, codigoClub)
	if err != nil {
		return tournament.Tournament{}, tourtype.Type{}, fmt.Errorf("get club: %w", err)
	}
	if !found {
		return tournament.Tournament{}, tourtype.Type{}, fmt.Errorf("%w: club=%s", ErrNotFound, codigoClub)
	}

	t := tournament.Tournament{
		Nombre:           input.Nombre,
		FechaInicio:      input.FechaInicio,
		Dias:             input.Dias,
		Partidas:         input.Partidas,
		PM:               input.PM,
		GB:               input.GB,
		GBP:              input.GBP,
		TipoCampeonatoID: tipo.ID,
		CodigoClub:       codigoClub,
	}
	if err := t.Validate(); err != nil {
		return tournament.Tournament{}, tourtype.Type{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return t, tipo, nil
}

func (s *TournamentService) nextNCH(ctx context.Context, codigoTipo, codigoClub string, fecha time.Time) (string, error) {
	prefix := identifier.NCHPrefix(codigoTipo, codigoClub, fecha)

	incremental := 1
	last, found, err := s.tournamentRepo.LastNCHForPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("last nch for prefix: %w", err)
	}
	if found {
		lastIncremental, err := identifier.IncrementalFromNCH(last)
		if err != nil {
			return "", fmt.Errorf("parse last nch %s: %w", last, err)
		}
		incremental = lastIncremental + 1
	}
	if incremental > identifier.MaxIncremental {
		return "", fmt.Errorf("%w: agotados los %d campeonatos para el prefijo %s", ErrLimitExceeded, identifier.MaxIncremental, prefix)
	}

	nch, err := identifier.FormatNCH(codigoTipo, codigoClub, fecha, incremental)
	if err != nil {
		return "", fmt.Errorf("format nch: %w", err)
	}
	return nch, nil
}
