package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/dominofed/federation-backend/internal/domain/club"
	"github.com/dominofed/federation-backend/internal/domain/result"
	"github.com/dominofed/federation-backend/internal/platform/spreadsheet"
)

func TestExportService_ExportClubs_RoundTripsThroughImport(t *testing.T) {
	t.Parallel()

	clubRepo := &stubClubRepository{byCode: map[string]club.Club{
		"070012": {CP: "07", NumeroClub: "12", CodigoClub: "070012", Nombre: "Club Palma"},
	}}
	exporter := NewExportService(clubRepo, &stubPlayerRepository{}, &stubTournamentRepository{}, &stubResultRepository{})
	importer := newImportService(clubRepo, nil, nil, nil, nil)

	data, err := exporter.ExportClubs(context.Background())
	if err != nil {
		t.Fatalf("export error: %v", err)
	}

	sheet, err := spreadsheet.Open(data)
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	if sheet.RowCount() != 1 {
		t.Fatalf("row count: got=%d want=1", sheet.RowCount())
	}
	col, ok := sheet.Column("codigo club")
	if !ok {
		t.Fatal("exported file misses codigo club column")
	}
	if got := sheet.Cell(0, col); got != "070012" {
		t.Fatalf("codigo club cell: got=%q", got)
	}

	summary, err := importer.ImportClubs(context.Background(), data)
	if err != nil {
		t.Fatalf("re-import error: %v", err)
	}
	if summary.Unchanged != 1 || summary.Created != 0 || summary.Updated != 0 {
		t.Fatalf("exported file must re-import unchanged: %+v", summary)
	}
}

func TestExportService_ExportResults_GroupLetters(t *testing.T) {
	t.Parallel()

	resultRepo := &stubResultRepository{}
	r := result.Result{
		FechaCampeonato:   time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
		IDFedJugador:      "0700001",
		TipoCampeonatoID:  1,
		NombreCampeonato:  "Open de Verano",
		NombreJugador:     "Ana",
		ApellidoJugador:   "García",
		CodigoClubJugador: "070012",
		NombreClubJugador: "Club Palma",
		Partida:           1,
		Mesa:              3,
		GB:                true,
		CodigoTipo:        "DP",
	}
	if _, err := resultRepo.Insert(context.Background(), r); err != nil {
		t.Fatalf("seed resultado: %v", err)
	}

	exporter := NewExportService(&stubClubRepository{}, &stubPlayerRepository{}, &stubTournamentRepository{}, resultRepo)
	data, err := exporter.ExportResults(context.Background(), result.ListFilter{})
	if err != nil {
		t.Fatalf("export error: %v", err)
	}

	sheet, err := spreadsheet.Open(data)
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	col, ok := sheet.Column("gb")
	if !ok {
		t.Fatal("exported file misses gb column")
	}
	// Stored gb=true means group A for resultados.
	if got := sheet.Cell(0, col); got != "A" {
		t.Fatalf("gb cell: got=%q want=A", got)
	}
}
