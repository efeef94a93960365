package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dominofed/federation-backend/internal/domain/player"
	"github.com/dominofed/federation-backend/internal/domain/result"
	"github.com/dominofed/federation-backend/internal/domain/storage"
	"github.com/dominofed/federation-backend/internal/domain/tourtype"
)

func resultFixtures() (*stubResultRepository, *stubPlayerRepository, *stubTourTypeRepository) {
	resultRepo := &stubResultRepository{}
	playerRepo := &stubPlayerRepository{byIDFed: map[string]player.Player{
		"0700001": {IDFed: "0700001", Nombre: "Ana", Apellidos: "García", CodigoClub: "070012"},
		"0700002": {IDFed: "0700002", Nombre: "Luis", Apellidos: "Pérez", CodigoClub: "070012"},
	}}
	typeRepo := &stubTourTypeRepository{types: []tourtype.Type{
		{ID: 1, Codigo: "DP", Nombre: "Dominó Parejas"},
	}}
	return resultRepo, playerRepo, typeRepo
}

func sampleResult() result.Result {
	return result.Result{
		FechaCampeonato:  time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
		IDFedJugador:     "0700001",
		TipoCampeonatoID: 1,
		NombreCampeonato: "Open de Verano",

		NombreJugador:     "Ana",
		ApellidoJugador:   "García",
		CodigoClubJugador: "070012",
		NombreClubJugador: "Club Palma",

		Partida: 1,
		Mesa:    3,
		GB:      true,
		PG:      1,
		Dif:     45,
		PV:      120,
		PT:      150,
		MG:      4,
		Pos:     2,
	}
}

func TestResultService_Create(t *testing.T) {
	t.Parallel()

	resultRepo, playerRepo, typeRepo := resultFixtures()
	service := NewResultService(resultRepo, playerRepo, typeRepo)

	created, err := service.Create(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.NCH == 0 {
		t.Fatal("expected assigned nch")
	}
}

func TestResultService_Create_DuplicateNaturalKeyIsConflict(t *testing.T) {
	t.Parallel()

	resultRepo, playerRepo, typeRepo := resultFixtures()
	service := NewResultService(resultRepo, playerRepo, typeRepo)

	if _, err := service.Create(context.Background(), sampleResult()); err != nil {
		t.Fatalf("first Create error: %v", err)
	}

	second := sampleResult()
	second.Pos = 5
	_, err := service.Create(context.Background(), second)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestResultService_Create_UnknownPlayerIsNotFound(t *testing.T) {
	t.Parallel()

	resultRepo, playerRepo, typeRepo := resultFixtures()
	service := NewResultService(resultRepo, playerRepo, typeRepo)

	r := sampleResult()
	r.IDFedJugador = "2800001"
	_, err := service.Create(context.Background(), r)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResultService_Create_PartnerMustExist(t *testing.T) {
	t.Parallel()

	resultRepo, playerRepo, typeRepo := resultFixtures()
	service := NewResultService(resultRepo, playerRepo, typeRepo)

	r := sampleResult()
	r.Pareja = &result.Partner{
		IDFed:      "2899999",
		Nombre:     "Mar",
		Apellido:   "Santos",
		CodigoClub: "070012",
		NombreClub: "Club Palma",
	}
	_, err := service.Create(context.Background(), r)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for missing pareja, got %v", err)
	}
}

func TestResultService_Update_RequiresFields(t *testing.T) {
	t.Parallel()

	resultRepo, playerRepo, typeRepo := resultFixtures()
	service := NewResultService(resultRepo, playerRepo, typeRepo)

	_, err := service.Update(context.Background(), result.Key{NCH: 1}, result.UpdateFields{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestResultService_Update_AllowListedField(t *testing.T) {
	t.Parallel()

	resultRepo, playerRepo, typeRepo := resultFixtures()
	service := NewResultService(resultRepo, playerRepo, typeRepo)

	created, err := service.Create(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	pos := 1
	updated, err := service.Update(context.Background(), result.Key{
		NCH:             created.NCH,
		FechaCampeonato: created.FechaCampeonato,
		IDFedJugador:    created.IDFedJugador,
	}, result.UpdateFields{Pos: &pos})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Pos != 1 {
		t.Fatalf("pos: got=%d want=1", updated.Pos)
	}
}

func TestResultService_Filter_RejectsEmptyAndBadPredicates(t *testing.T) {
	t.Parallel()

	resultRepo, playerRepo, typeRepo := resultFixtures()
	service := NewResultService(resultRepo, playerRepo, typeRepo)

	if _, _, err := service.Filter(context.Background(), nil, 0, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty filters, got %v", err)
	}

	resultRepo.filterErr = fmt.Errorf("%w: campo no filtrable: secreto", storage.ErrInvalidFilter)
	_, _, err := service.Filter(context.Background(), []result.FieldFilter{
		{Field: "secreto", Operator: result.OpEq, Value: "x"},
	}, 0, 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for rejected field, got %v", err)
	}
}
