package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/dominofed/federation-backend/internal/domain/tourtype"
)

func TestTourTypeService_Create(t *testing.T) {
	t.Parallel()

	repo := &stubTourTypeRepository{}
	service := NewTourTypeService(repo)

	created, err := service.Create(context.Background(), TourTypeInput{Codigo: "DP", Nombre: "Domino por Parejas"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == 0 || created.Codigo != "DP" {
		t.Fatalf("unexpected tipo: %+v", created)
	}
}

func TestTourTypeService_Create_DuplicateCodigoIsConflict(t *testing.T) {
	t.Parallel()

	repo := &stubTourTypeRepository{types: []tourtype.Type{
		{ID: 1, Codigo: "DP", Nombre: "Domino por Parejas"},
	}}
	service := NewTourTypeService(repo)

	_, err := service.Create(context.Background(), TourTypeInput{Codigo: "DP", Nombre: "Otro"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestTourTypeService_Create_RejectsBadCodigo(t *testing.T) {
	t.Parallel()

	service := NewTourTypeService(&stubTourTypeRepository{})

	for _, bad := range []string{"dp", "D", "DPX", ""} {
		if _, err := service.Create(context.Background(), TourTypeInput{Codigo: bad, Nombre: "Tipo"}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Codigo %q: expected invalid input, got %v", bad, err)
		}
	}
}

func TestTourTypeService_Get_UnknownIsNotFound(t *testing.T) {
	t.Parallel()

	service := NewTourTypeService(&stubTourTypeRepository{})

	if _, err := service.Get(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := service.Get(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for id 0, got %v", err)
	}
}

func TestTourTypeService_Update(t *testing.T) {
	t.Parallel()

	repo := &stubTourTypeRepository{types: []tourtype.Type{
		{ID: 1, Codigo: "DP", Nombre: "Domino por Parejas"},
	}}
	service := NewTourTypeService(repo)

	updated, err := service.Update(context.Background(), 1, TourTypeInput{Codigo: "DP", Nombre: "Parejas", Descripcion: "modalidad por parejas"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.ID != 1 || updated.Nombre != "Parejas" {
		t.Fatalf("unexpected update: %+v", updated)
	}
}

func TestTourTypeService_Delete_WithDependentsIsConflict(t *testing.T) {
	t.Parallel()

	repo := &stubTourTypeRepository{
		types:      []tourtype.Type{{ID: 1, Codigo: "DP", Nombre: "Domino por Parejas"}},
		dependents: map[int64]int{1: 2},
	}
	service := NewTourTypeService(repo)

	if err := service.Delete(context.Background(), 1); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.types) != 1 {
		t.Fatal("delete must not reach the repository")
	}
}

func TestTourTypeService_Delete_WithoutDependents(t *testing.T) {
	t.Parallel()

	repo := &stubTourTypeRepository{
		types: []tourtype.Type{{ID: 1, Codigo: "DP", Nombre: "Domino por Parejas"}},
	}
	service := NewTourTypeService(repo)

	if err := service.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(repo.types) != 0 {
		t.Fatalf("tipo must be removed, got %v", repo.types)
	}
}
