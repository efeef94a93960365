package usecase

import (
	"context"
	"fmt"

	"github.com/dominofed/federation-backend/internal/domain/club"
	"github.com/dominofed/federation-backend/internal/domain/player"
	"github.com/dominofed/federation-backend/internal/domain/result"
	"github.com/dominofed/federation-backend/internal/domain/tournament"
	"github.com/dominofed/federation-backend/internal/platform/spreadsheet"
)

// ExportService renders stored tables as spreadsheets whose headers match the
// import layouts, so an exported file re-imports as all-unchanged.
type ExportService struct {
	clubRepo       club.Repository
	playerRepo     player.Repository
	tournamentRepo tournament.Repository
	resultRepo     result.Repository
}

func NewExportService(
	clubRepo club.Repository,
	playerRepo player.Repository,
	tournamentRepo tournament.Repository,
	resultRepo result.Repository,
) *ExportService {
	return &ExportService{
		clubRepo:       clubRepo,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		resultRepo:     resultRepo,
	}
}

const exportDateLayout = "2006-01-02"

func (s *ExportService) ExportClubs(ctx context.Context) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.ExportClubs")
	defer span.End()

	clubs, _, err := s.clubRepo.List(ctx, club.ListParams{})
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	rows := make([][]any, 0, len(clubs))
	for _, c := range clubs {
		rows = append(rows, []any{c.CP, c.NumeroClub, c.CodigoClub, c.Nombre})
	}

	data, err := spreadsheet.Build("Clubs", []string{"CP", "Número Club", "Código Club", "Nombre"}, rows)
	if err != nil {
		return nil, fmt.Errorf("build clubs spreadsheet: %w", err)
	}
	return data, nil
}

func (s *ExportService) ExportPlayers(ctx context.Context) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.ExportPlayers")
	defer span.End()

	players, _, err := s.playerRepo.List(ctx, player.ListParams{})
	if err != nil {
		return nil, fmt.Errorf("list jugadores: %w", err)
	}

	rows := make([][]any, 0, len(players))
	for _, p := range players {
		rows = append(rows, []any{
			p.CP, p.NumeroJugador, p.IDFed, p.Nombre, p.Apellidos,
			p.DNI, p.Telefono, p.Email, p.CodigoClub, p.NombreClub,
		})
	}

	headers := []string{"CP", "Número Jugador", "IDFED", "Nombre", "Apellidos", "DNI", "Teléfono", "Email", "Código Club", "Nombre Club"}
	data, err := spreadsheet.Build("Jugadores", headers, rows)
	if err != nil {
		return nil, fmt.Errorf("build jugadores spreadsheet: %w", err)
	}
	return data, nil
}

func (s *ExportService) ExportTournaments(ctx context.Context) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.ExportTournaments")
	defer span.End()

	tournaments, _, err := s.tournamentRepo.List(ctx, tournament.ListParams{})
	if err != nil {
		return nil, fmt.Errorf("list campeonatos: %w", err)
	}

	rows := make([][]any, 0, len(tournaments))
	for _, t := range tournaments {
		var gbp any
		if t.GBP != nil {
			gbp = *t.GBP
		}
		rows = append(rows, []any{
			t.NCH, t.Nombre, t.FechaInicio.Format(exportDateLayout),
			t.Dias, t.Partidas, t.PM, tournamentGroupLetter(t.GB), gbp,
			t.CodigoTipo, t.CodigoClub,
		})
	}

	headers := []string{"NCH", "Nombre", "Fecha Inicio", "Días", "Partidas", "PM", "GB", "GBP", "Tipo", "Código Club"}
	data, err := spreadsheet.Build("Campeonatos", headers, rows)
	if err != nil {
		return nil, fmt.Errorf("build campeonatos spreadsheet: %w", err)
	}
	return data, nil
}

func (s *ExportService) ExportResults(ctx context.Context, filter result.ListFilter) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.ExportResults")
	defer span.End()

	results, _, err := s.resultRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list resultados: %w", err)
	}

	rows := make([][]any, 0, len(results))
	for _, r := range results {
		var idfedPareja, nombrePareja, apellidoPareja, codigoClubPareja, nombreClubPareja any
		if r.Pareja != nil {
			idfedPareja = r.Pareja.IDFed
			nombrePareja = r.Pareja.Nombre
			apellidoPareja = r.Pareja.Apellido
			codigoClubPareja = r.Pareja.CodigoClub
			nombreClubPareja = r.Pareja.NombreClub
		}
		rows = append(rows, []any{
			r.CodigoTipo, r.NombreCampeonato, r.FechaCampeonato.Format(exportDateLayout),
			r.IDFedJugador, r.NombreJugador, r.ApellidoJugador, r.CodigoClubJugador, r.NombreClubJugador,
			idfedPareja, nombrePareja, apellidoPareja, codigoClubPareja, nombreClubPareja,
			r.Partida, r.Mesa, resultGroupLetter(r.GB), r.PG, r.Dif, r.PV, r.PT, r.MG, r.Pos,
		})
	}

	headers := []string{
		"Tipo", "Nombre Campeonato", "Fecha Campeonato",
		"IDFED Jugador", "Nombre Jugador", "Apellido Jugador", "Código Club Jugador", "Nombre Club Jugador",
		"IDFED Pareja", "Nombre Pareja", "Apellido Pareja", "Código Club Pareja", "Nombre Club Pareja",
		"Partida", "Mesa", "GB", "PG", "DIF", "PV", "PT", "MG", "POS",
	}
	data, err := spreadsheet.Build("Resultados", headers, rows)
	if err != nil {
		return nil, fmt.Errorf("build resultados spreadsheet: %w", err)
	}
	return data, nil
}

// The stored flag reads inverted between the two tables: a campeonato with
// gb=true is group B, a resultado with gb=true is group A.
func tournamentGroupLetter(gb bool) string {
	if gb {
		return "B"
	}
	return "A"
}

func resultGroupLetter(gb bool) string {
	if gb {
		return "A"
	}
	return "B"
}
