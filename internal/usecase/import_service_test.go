package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/dominofed/federation-backend/internal/domain/club"
	"github.com/dominofed/federation-backend/internal/domain/player"
	"github.com/dominofed/federation-backend/internal/domain/tournament"
	"github.com/dominofed/federation-backend/internal/domain/tourtype"
	"github.com/dominofed/federation-backend/internal/platform/spreadsheet"
)

func buildSheet(t *testing.T, headers []string, rows [][]any) []byte {
	t.Helper()
	data, err := spreadsheet.Build("Hoja1", headers, rows)
	if err != nil {
		t.Fatalf("build sheet: %v", err)
	}
	return data
}

func newImportService(
	clubRepo *stubClubRepository,
	playerRepo *stubPlayerRepository,
	typeRepo *stubTourTypeRepository,
	tournamentRepo *stubTournamentRepository,
	resultRepo *stubResultRepository,
) *ImportService {
	if clubRepo == nil {
		clubRepo = &stubClubRepository{}
	}
	if playerRepo == nil {
		playerRepo = &stubPlayerRepository{}
	}
	if typeRepo == nil {
		typeRepo = &stubTourTypeRepository{}
	}
	if tournamentRepo == nil {
		tournamentRepo = &stubTournamentRepository{}
	}
	if resultRepo == nil {
		resultRepo = &stubResultRepository{}
	}
	return NewImportService(clubRepo, playerRepo, typeRepo, tournamentRepo, resultRepo)
}

func TestImportService_ImportClubs_CreatesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	clubRepo := &stubClubRepository{}
	service := newImportService(clubRepo, nil, nil, nil, nil)

	data := buildSheet(t,
		[]string{"CP", "Número Club", "Nombre"},
		[][]any{
			{"7", "12", "Club Palma"},
			{"28", "1", "Club Madrid"},
		})

	summary, err := service.ImportClubs(context.Background(), data)
	if err != nil {
		t.Fatalf("first import error: %v", err)
	}
	if summary.Created != 2 || summary.Updated != 0 || summary.Unchanged != 0 {
		t.Fatalf("unexpected first summary: %+v", summary)
	}
	if _, ok := clubRepo.byCode["070012"]; !ok {
		t.Fatal("expected club 070012 created")
	}

	summary, err = service.ImportClubs(context.Background(), data)
	if err != nil {
		t.Fatalf("second import error: %v", err)
	}
	if summary.Created != 0 || summary.Updated != 0 || summary.Unchanged != 2 {
		t.Fatalf("re-import must be all unchanged: %+v", summary)
	}
}

func TestImportService_ImportClubs_RenameBecomesUpdate(t *testing.T) {
	t.Parallel()

	clubRepo := &stubClubRepository{byCode: map[string]club.Club{
		"070012": {CP: "07", NumeroClub: "12", CodigoClub: "070012", Nombre: "Club Palma"},
	}}
	service := newImportService(clubRepo, nil, nil, nil, nil)

	data := buildSheet(t,
		[]string{"CP", "Número Club", "Nombre"},
		[][]any{{"07", "12", "Club Palma Renovado"}})

	summary, err := service.ImportClubs(context.Background(), data)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if summary.Updated != 1 || summary.Created != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if clubRepo.byCode["070012"].Nombre != "Club Palma Renovado" {
		t.Fatalf("rename not applied: %+v", clubRepo.byCode["070012"])
	}
}

func TestImportService_ImportClubs_BadRowWritesNothing(t *testing.T) {
	t.Parallel()

	clubRepo := &stubClubRepository{}
	service := newImportService(clubRepo, nil, nil, nil, nil)

	data := buildSheet(t,
		[]string{"CP", "Número Club", "Nombre"},
		[][]any{
			{"07", "12", "Club Palma"},
			{"999", "12", "CP de tres digitos"},
		})

	summary, err := service.ImportClubs(context.Background(), data)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(summary.Errors) != 1 || summary.Errors[0].Row != 3 || summary.Errors[0].Column != "cp" {
		t.Fatalf("unexpected errors: %+v", summary.Errors)
	}
	if clubRepo.bulkCalls != 0 {
		t.Fatalf("no writes expected, got %d bulk calls", clubRepo.bulkCalls)
	}
}

func TestImportService_ImportClubs_MissingColumn(t *testing.T) {
	t.Parallel()

	service := newImportService(nil, nil, nil, nil, nil)

	data := buildSheet(t, []string{"CP", "Nombre"}, [][]any{{"07", "Club Palma"}})

	_, err := service.ImportClubs(context.Background(), data)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing column, got %v", err)
	}
}

func TestImportService_ImportClubs_SkipsInFileDuplicates(t *testing.T) {
	t.Parallel()

	clubRepo := &stubClubRepository{}
	service := newImportService(clubRepo, nil, nil, nil, nil)

	data := buildSheet(t,
		[]string{"CP", "Número Club", "Nombre"},
		[][]any{
			{"07", "12", "Club Palma"},
			{"7", "012", "Club Palma repetido"},
		})

	summary, err := service.ImportClubs(context.Background(), data)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if summary.Created != 1 || summary.SkippedDuplicates != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestImportService_ImportPlayers_UnknownClubIsRowError(t *testing.T) {
	t.Parallel()

	clubRepo := &stubClubRepository{byCode: map[string]club.Club{
		"070012": {CodigoClub: "070012", Nombre: "Club Palma"},
	}}
	playerRepo := &stubPlayerRepository{}
	service := newImportService(clubRepo, playerRepo, nil, nil, nil)

	data := buildSheet(t,
		[]string{"CP", "Número Jugador", "Nombre", "Apellidos", "Código Club"},
		[][]any{
			{"07", "1", "Ana", "García", "070012"},
			{"07", "2", "Luis", "Pérez", "280001"},
		})

	summary, err := service.ImportPlayers(context.Background(), data)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(summary.Errors) != 1 || summary.Errors[0].Row != 3 || summary.Errors[0].Column != "codigo club" {
		t.Fatalf("unexpected errors: %+v", summary.Errors)
	}
	if playerRepo.bulkCalls != 0 {
		t.Fatal("no writes expected on invalid file")
	}
}

func TestImportService_ImportPlayers_FormatErrorsRejectBeforeLookups(t *testing.T) {
	t.Parallel()

	clubRepo := &stubClubRepository{byCode: map[string]club.Club{
		"070012": {CodigoClub: "070012", Nombre: "Club Palma"},
	}}
	playerRepo := &stubPlayerRepository{}
	service := newImportService(clubRepo, playerRepo, nil, nil, nil)

	data := buildSheet(t,
		[]string{"CP", "Número Jugador", "Nombre", "Apellidos", "Código Club"},
		[][]any{
			{"999", "1", "Ana", "García", "070012"},
			{"07", "2", "Luis", "Pérez", "070012"},
		})

	summary, err := service.ImportPlayers(context.Background(), data)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(summary.Errors) != 1 || summary.Errors[0].Column != "cp" {
		t.Fatalf("unexpected errors: %+v", summary.Errors)
	}
	if clubRepo.lookups != 0 {
		t.Fatalf("format errors must reject before club lookups, got %d", clubRepo.lookups)
	}
	if playerRepo.bulkCalls != 0 {
		t.Fatal("no writes expected on invalid file")
	}
}

func TestImportService_ImportPlayers_CreatesWithDerivedIDFed(t *testing.T) {
	t.Parallel()

	clubRepo := &stubClubRepository{byCode: map[string]club.Club{
		"070012": {CodigoClub: "070012", Nombre: "Club Palma"},
	}}
	playerRepo := &stubPlayerRepository{}
	service := newImportService(clubRepo, playerRepo, nil, nil, nil)

	data := buildSheet(t,
		[]string{"CP", "Número Jugador", "Nombre", "Apellidos", "Código Club", "DNI"},
		[][]any{{"7", "1", "Ana", "García", "070012", "12345678z"}})

	summary, err := service.ImportPlayers(context.Background(), data)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if summary.Created != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	p, ok := playerRepo.byIDFed["0700001"]
	if !ok {
		t.Fatal("expected jugador 0700001 created")
	}
	if p.DNI != "12345678Z" {
		t.Fatalf("dni not normalized: %q", p.DNI)
	}
}

func TestImportService_ImportTournaments_AssignsSequentialNCH(t *testing.T) {
	t.Parallel()

	clubRepo := &stubClubRepository{byCode: map[string]club.Club{
		"070012": {CodigoClub: "070012", Nombre: "Club Palma"},
	}}
	typeRepo := &stubTourTypeRepository{types: []tourtype.Type{{ID: 1, Codigo: "DP", Nombre: "Dominó Parejas"}}}
	tournamentRepo := &stubTournamentRepository{byNCH: map[string]tournament.Tournament{}}
	service := newImportService(clubRepo, nil, typeRepo, tournamentRepo, nil)

	data := buildSheet(t,
		[]string{"Nombre", "Fecha Inicio", "Días", "Partidas", "PM", "GB", "Tipo", "Código Club"},
		[][]any{
			{"Open de Verano", "2024-08-15", "2", "8", "300", "A", "DP", "070012"},
			{"Open de Verano II", "15/08/2024", "1", "6", "300", "B", "DP", "070012"},
		})

	summary, err := service.ImportTournaments(context.Background(), data)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if summary.Created != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(tournamentRepo.bulkCreates) != 2 {
		t.Fatalf("expected 2 bulk creates, got %d", len(tournamentRepo.bulkCreates))
	}
	if tournamentRepo.bulkCreates[0].NCH != "DP070012202408150001" ||
		tournamentRepo.bulkCreates[1].NCH != "DP070012202408150002" {
		t.Fatalf("unexpected nch sequence: %s, %s",
			tournamentRepo.bulkCreates[0].NCH, tournamentRepo.bulkCreates[1].NCH)
	}
	if tournamentRepo.bulkCreates[0].GB || !tournamentRepo.bulkCreates[1].GB {
		t.Fatalf("group letters mapped wrong: %+v", tournamentRepo.bulkCreates)
	}
}

func TestImportService_ImportTournaments_ReimportIsUnchanged(t *testing.T) {
	t.Parallel()

	clubRepo := &stubClubRepository{byCode: map[string]club.Club{
		"070012": {CodigoClub: "070012", Nombre: "Club Palma"},
	}}
	typeRepo := &stubTourTypeRepository{types: []tourtype.Type{{ID: 1, Codigo: "DP", Nombre: "Dominó Parejas"}}}
	tournamentRepo := &stubTournamentRepository{byNCH: map[string]tournament.Tournament{}}
	service := newImportService(clubRepo, nil, typeRepo, tournamentRepo, nil)

	data := buildSheet(t,
		[]string{"Nombre", "Fecha Inicio", "Días", "Partidas", "PM", "GB", "Tipo", "Código Club"},
		[][]any{{"Open de Verano", "2024-08-15", "2", "8", "300", "A", "DP", "070012"}})

	if _, err := service.ImportTournaments(context.Background(), data); err != nil {
		t.Fatalf("first import error: %v", err)
	}
	summary, err := service.ImportTournaments(context.Background(), data)
	if err != nil {
		t.Fatalf("second import error: %v", err)
	}
	if summary.Created != 0 || summary.Unchanged != 1 {
		t.Fatalf("re-import must be unchanged: %+v", summary)
	}
}

func resultImportHeaders() []string {
	return []string{
		"Tipo", "Nombre Campeonato", "Fecha Campeonato",
		"IDFED Jugador", "Nombre Jugador", "Apellido Jugador", "Código Club Jugador", "Nombre Club Jugador",
		"IDFED Pareja", "Nombre Pareja", "Apellido Pareja", "Código Club Pareja", "Nombre Club Pareja",
		"Partida", "Mesa", "GB", "PG", "DIF", "PV", "PT", "MG", "POS",
	}
}

func resultImportFixtures() (*stubClubRepository, *stubPlayerRepository, *stubTourTypeRepository, *stubResultRepository) {
	clubRepo := &stubClubRepository{byCode: map[string]club.Club{
		"070012": {CodigoClub: "070012", Nombre: "Club Palma"},
	}}
	playerRepo := &stubPlayerRepository{byIDFed: map[string]player.Player{
		"0700001": {IDFed: "0700001"},
		"0700002": {IDFed: "0700002"},
	}}
	typeRepo := &stubTourTypeRepository{types: []tourtype.Type{{ID: 1, Codigo: "DP", Nombre: "Dominó Parejas"}}}
	return clubRepo, playerRepo, typeRepo, &stubResultRepository{}
}

func TestImportService_ImportResults_CreatesWithPartner(t *testing.T) {
	t.Parallel()

	clubRepo, playerRepo, typeRepo, resultRepo := resultImportFixtures()
	service := newImportService(clubRepo, playerRepo, typeRepo, nil, resultRepo)

	data := buildSheet(t, resultImportHeaders(), [][]any{{
		"DP", "Open de Verano", "2024-08-15",
		"0700001", "Ana", "García", "070012", "Club Palma",
		"0700002", "Luis", "Pérez", "070012", "Club Palma",
		"1", "3", "A", "1", "45", "120", "150", "4", "2",
	}})

	summary, err := service.ImportResults(context.Background(), data)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if summary.Created != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	created := resultRepo.bulkCreates[0]
	if created.Pareja == nil || created.Pareja.IDFed != "0700002" {
		t.Fatalf("pareja not carried: %+v", created.Pareja)
	}
	if !created.GB {
		t.Fatal("group A must store gb=true for resultados")
	}
}

func TestImportService_ImportResults_PartialPartnerGroupIsRejected(t *testing.T) {
	t.Parallel()

	clubRepo, playerRepo, typeRepo, resultRepo := resultImportFixtures()
	service := newImportService(clubRepo, playerRepo, typeRepo, nil, resultRepo)

	data := buildSheet(t, resultImportHeaders(), [][]any{{
		"DP", "Open de Verano", "2024-08-15",
		"0700001", "Ana", "García", "070012", "Club Palma",
		"0700002", "", "", "", "",
		"1", "3", "A", "1", "45", "120", "150", "4", "2",
	}})

	summary, err := service.ImportResults(context.Background(), data)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(summary.Errors) == 0 {
		t.Fatal("expected row errors for incomplete pareja group")
	}
	if resultRepo.bulkCalls != 0 {
		t.Fatal("no writes expected on invalid file")
	}
}

func TestImportService_ImportResults_ReimportSkipsPersisted(t *testing.T) {
	t.Parallel()

	clubRepo, playerRepo, typeRepo, resultRepo := resultImportFixtures()
	service := newImportService(clubRepo, playerRepo, typeRepo, nil, resultRepo)

	data := buildSheet(t, resultImportHeaders(), [][]any{{
		"DP", "Open de Verano", "2024-08-15",
		"0700001", "Ana", "García", "070012", "Club Palma",
		"", "", "", "", "",
		"1", "3", "A", "1", "45", "120", "150", "4", "2",
	}})

	if _, err := service.ImportResults(context.Background(), data); err != nil {
		t.Fatalf("first import error: %v", err)
	}
	summary, err := service.ImportResults(context.Background(), data)
	if err != nil {
		t.Fatalf("second import error: %v", err)
	}
	if summary.Created != 0 || summary.SkippedDuplicates != 1 {
		t.Fatalf("re-import must skip persisted rows: %+v", summary)
	}
}

func TestImportService_ImportResults_FormatErrorsRejectBeforeLookups(t *testing.T) {
	t.Parallel()

	clubRepo, playerRepo, typeRepo, resultRepo := resultImportFixtures()
	service := newImportService(clubRepo, playerRepo, typeRepo, nil, resultRepo)

	data := buildSheet(t, resultImportHeaders(), [][]any{
		{
			"DP", "Open de Verano", "fecha-rota",
			"0700001", "Ana", "García", "070012", "Club Palma",
			"", "", "", "", "",
			"1", "3", "A", "1", "45", "120", "150", "4", "2",
		},
		{
			"DP", "Open de Verano", "2024-08-15",
			"0700001", "Ana", "García", "070012", "Club Palma",
			"", "", "", "", "",
			"2", "3", "A", "1", "45", "120", "150", "4", "2",
		},
	})

	summary, err := service.ImportResults(context.Background(), data)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(summary.Errors) != 1 || summary.Errors[0].Column != "fecha campeonato" {
		t.Fatalf("unexpected errors: %+v", summary.Errors)
	}
	if typeRepo.lookups != 0 || clubRepo.lookups != 0 {
		t.Fatalf("format errors must reject before lookups, got tipo=%d club=%d",
			typeRepo.lookups, clubRepo.lookups)
	}
	if resultRepo.bulkCalls != 0 {
		t.Fatal("no writes expected on invalid file")
	}
}

func TestImportService_ImportResults_InFileDuplicateSkipped(t *testing.T) {
	t.Parallel()

	clubRepo, playerRepo, typeRepo, resultRepo := resultImportFixtures()
	service := newImportService(clubRepo, playerRepo, typeRepo, nil, resultRepo)

	row := []any{
		"DP", "Open de Verano", "2024-08-15",
		"0700001", "Ana", "García", "070012", "Club Palma",
		"", "", "", "", "",
		"1", "3", "A", "1", "45", "120", "150", "4", "2",
	}
	data := buildSheet(t, resultImportHeaders(), [][]any{row, row})

	summary, err := service.ImportResults(context.Background(), data)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if summary.Created != 1 || summary.SkippedDuplicates != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
