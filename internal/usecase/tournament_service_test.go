package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dominofed/federation-backend/internal/domain/club"
	"github.com/dominofed/federation-backend/internal/domain/tournament"
	"github.com/dominofed/federation-backend/internal/domain/tourtype"
)

func tournamentFixtures() (*stubTournamentRepository, *stubTourTypeRepository, *stubClubRepository) {
	tournamentRepo := &stubTournamentRepository{byNCH: map[string]tournament.Tournament{}}
	typeRepo := &stubTourTypeRepository{types: []tourtype.Type{
		{ID: 1, Codigo: "DP", Nombre: "Dominó Parejas"},
	}}
	clubRepo := &stubClubRepository{byCode: map[string]club.Club{
		"070012": {CodigoClub: "070012", Nombre: "Club Palma"},
	}}
	return tournamentRepo, typeRepo, clubRepo
}

func createInput() CreateTournamentInput {
	return CreateTournamentInput{
		Nombre:           "Open de Verano",
		FechaInicio:      time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
		Dias:             2,
		Partidas:         8,
		PM:               300,
		TipoCampeonatoID: 1,
		CodigoClub:       "070012",
	}
}

func TestTournamentService_Create_AssignsFirstNCH(t *testing.T) {
	t.Parallel()

	tournamentRepo, typeRepo, clubRepo := tournamentFixtures()
	service := NewTournamentService(tournamentRepo, typeRepo, clubRepo)

	created, err := service.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.NCH != "DP070012202408150001" {
		t.Fatalf("nch: got=%s want=DP070012202408150001", created.NCH)
	}
}

func TestTournamentService_Create_SequentialIncrementals(t *testing.T) {
	t.Parallel()

	tournamentRepo, typeRepo, clubRepo := tournamentFixtures()
	service := NewTournamentService(tournamentRepo, typeRepo, clubRepo)

	first, err := service.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("first Create error: %v", err)
	}

	second := createInput()
	second.Nombre = "Open de Verano II"
	got, err := service.Create(context.Background(), second)
	if err != nil {
		t.Fatalf("second Create error: %v", err)
	}

	if first.NCH != "DP070012202408150001" || got.NCH != "DP070012202408150002" {
		t.Fatalf("unexpected sequence: %s then %s", first.NCH, got.NCH)
	}
}

func TestTournamentService_Create_RetriesOnConcurrentConflict(t *testing.T) {
	t.Parallel()

	tournamentRepo, typeRepo, clubRepo := tournamentFixtures()
	tournamentRepo.conflictOnNext = 1
	service := NewTournamentService(tournamentRepo, typeRepo, clubRepo)

	created, err := service.Create(context.Background(), createInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	// A rival won 0001 mid-flight, so the retry lands on 0002.
	if created.NCH != "DP070012202408150002" {
		t.Fatalf("nch after retry: got=%s want=DP070012202408150002", created.NCH)
	}
}

func TestTournamentService_Create_GivesUpAfterBoundedRetries(t *testing.T) {
	t.Parallel()

	tournamentRepo, typeRepo, clubRepo := tournamentFixtures()
	tournamentRepo.conflictOnNext = nchInsertAttempts
	service := NewTournamentService(tournamentRepo, typeRepo, clubRepo)

	_, err := service.Create(context.Background(), createInput())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict after exhausted retries, got %v", err)
	}
}

func TestTournamentService_Create_IncrementalExhaustion(t *testing.T) {
	t.Parallel()

	tournamentRepo, typeRepo, clubRepo := tournamentFixtures()
	tournamentRepo.byNCH["DP070012202408159999"] = tournament.Tournament{NCH: "DP070012202408159999"}
	service := NewTournamentService(tournamentRepo, typeRepo, clubRepo)

	_, err := service.Create(context.Background(), createInput())
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected limit exceeded, got %v", err)
	}
}

func TestTournamentService_Create_UnknownTipoIsNotFound(t *testing.T) {
	t.Parallel()

	tournamentRepo, typeRepo, clubRepo := tournamentFixtures()
	service := NewTournamentService(tournamentRepo, typeRepo, clubRepo)

	input := createInput()
	input.TipoCampeonatoID = 99
	_, err := service.Create(context.Background(), input)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTournamentService_Delete_WithResultsIsConflict(t *testing.T) {
	t.Parallel()

	tournamentRepo, typeRepo, clubRepo := tournamentFixtures()
	tournamentRepo.byNCH["DP070012202408150001"] = tournament.Tournament{NCH: "DP070012202408150001"}
	tournamentRepo.dependents = map[string]int{"DP070012202408150001": 12}
	service := NewTournamentService(tournamentRepo, typeRepo, clubRepo)

	err := service.Delete(context.Background(), "DP070012202408150001")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
