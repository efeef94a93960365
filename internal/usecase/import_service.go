package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dominofed/federation-backend/internal/domain/club"
	"github.com/dominofed/federation-backend/internal/domain/player"
	"github.com/dominofed/federation-backend/internal/domain/result"
	"github.com/dominofed/federation-backend/internal/domain/tournament"
	"github.com/dominofed/federation-backend/internal/domain/tourtype"
	"github.com/dominofed/federation-backend/internal/domain/validate"
	"github.com/dominofed/federation-backend/internal/platform/identifier"
	"github.com/dominofed/federation-backend/internal/platform/spreadsheet"
)

// RowError locates one rejected spreadsheet cell. Row is the 1-based
// spreadsheet row, so the first data row is 2.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

type ImportSummary struct {
	Created           int        `json:"created"`
	Updated           int        `json:"updated"`
	Unchanged         int        `json:"unchanged"`
	SkippedDuplicates int        `json:"skipped_duplicates"`
	Details           []string   `json:"details,omitempty"`
	Errors            []RowError `json:"row_errors,omitempty"`
}

func (s *ImportSummary) detail(format string, args ...any) {
	s.Details = append(s.Details, fmt.Sprintf(format, args...))
}

// ImportService reconciles spreadsheet uploads against the stored tables.
// Every import validates the whole file first and only then writes, so a bad
// row anywhere leaves the database untouched.
type ImportService struct {
	clubRepo       club.Repository
	playerRepo     player.Repository
	typeRepo       tourtype.Repository
	tournamentRepo tournament.Repository
	resultRepo     result.Repository
}

func NewImportService(
	clubRepo club.Repository,
	playerRepo player.Repository,
	typeRepo tourtype.Repository,
	tournamentRepo tournament.Repository,
	resultRepo result.Repository,
) *ImportService {
	return &ImportService{
		clubRepo:       clubRepo,
		playerRepo:     playerRepo,
		typeRepo:       typeRepo,
		tournamentRepo: tournamentRepo,
		resultRepo:     resultRepo,
	}
}

type sheetColumns struct {
	sheet   *spreadsheet.Sheet
	indexes map[string]int
}

func (c sheetColumns) cell(row int, column string) string {
	idx, ok := c.indexes[column]
	if !ok {
		return ""
	}
	return c.sheet.Cell(row, idx)
}

func (c sheetColumns) has(column string) bool {
	_, ok := c.indexes[column]
	return ok
}

func openSheet(data []byte, required, optional []string) (sheetColumns, error) {
	sheet, err := spreadsheet.Open(data)
	if err != nil {
		return sheetColumns{}, fmt.Errorf("%w: no se pudo leer el fichero excel: %v", ErrInvalidInput, err)
	}

	cols := sheetColumns{sheet: sheet, indexes: make(map[string]int)}
	var missing []string
	for _, name := range required {
		idx, ok := sheet.Column(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols.indexes[name] = idx
	}
	if len(missing) > 0 {
		return sheetColumns{}, fmt.Errorf("%w: faltan columnas obligatorias: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	for _, name := range optional {
		if idx, ok := sheet.Column(name); ok {
			cols.indexes[name] = idx
		}
	}
	return cols, nil
}

func summaryError(summary ImportSummary) (ImportSummary, error) {
	return summary, fmt.Errorf("%w: el fichero contiene %d filas invalidas", ErrInvalidInput, len(summary.Errors))
}

func (s *ImportService) ImportClubs(ctx context.Context, data []byte) (ImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportClubs")
	defer span.End()

	cols, err := openSheet(data, []string{"cp", "numero club", "nombre"}, nil)
	if err != nil {
		return ImportSummary{}, err
	}

	var summary ImportSummary
	var parsed []club.Club
	seen := make(map[string]bool)

	for i := 0; i < cols.sheet.RowCount(); i++ {
		if cols.sheet.RowIsEmpty(i) {
			continue
		}
		row := spreadsheet.SpreadsheetRow(i)

		cp, err := validate.PostalCode(cols.cell(i, "cp"))
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{Row: row, Column: "cp", Message: err.Error()})
			continue
		}
		numero, err := validate.ClubNumber(cols.cell(i, "numero club"))
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{Row: row, Column: "numero club", Message: err.Error()})
			continue
		}
		nombre := cols.cell(i, "nombre")
		if nombre == "" {
			summary.Errors = append(summary.Errors, RowError{Row: row, Column: "nombre", Message: "el nombre del club es obligatorio"})
			continue
		}
		codigo, err := identifier.FormatClubCode(cp, numero)
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{Row: row, Message: err.Error()})
			continue
		}

		if seen[codigo] {
			summary.SkippedDuplicates++
			summary.detail("fila %d: club %s duplicado en el fichero, omitido", row, codigo)
			continue
		}
		seen[codigo] = true
		parsed = append(parsed, club.Club{CP: cp, NumeroClub: numero, CodigoClub: codigo, Nombre: nombre})
	}

	if len(summary.Errors) > 0 {
		return summaryError(summary)
	}

	var creates, updates []club.Club
	for _, c := range parsed {
		existing, found, err := s.clubRepo.GetByCode(ctx, c.CodigoClub)
		if err != nil {
			return summary, fmt.Errorf("get club %s: %w", c.CodigoClub, err)
		}
		switch {
		case !found:
			creates = append(creates, c)
		case existing.Nombre == c.Nombre:
			summary.Unchanged++
		default:
			updates = append(updates, c)
		}
	}

	if err := s.clubRepo.ApplyBulk(ctx, creates, updates); err != nil {
		return summary, fmt.Errorf("apply clubs: %w", err)
	}
	summary.Created = len(creates)
	summary.Updated = len(updates)
	for _, c := range creates {
		summary.detail("club %s creado", c.CodigoClub)
	}
	for _, c := range updates {
		summary.detail("club %s actualizado", c.CodigoClub)
	}
	return summary, nil
}

func (s *ImportService) ImportPlayers(ctx context.Context, data []byte) (ImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportPlayers")
	defer span.End()

	cols, err := openSheet(data,
		[]string{"cp", "numero jugador", "nombre", "apellidos", "codigo club"},
		[]string{"dni", "telefono", "email"})
	if err != nil {
		return ImportSummary{}, err
	}

	// Format pass over the whole file. No repository access until every row
	// has parsed clean, so a malformed file is rejected without touching
	// the database.
	var summary ImportSummary
	type playerRow struct {
		row    int
		player player.Player
	}
	var parsed []playerRow
	seen := make(map[string]bool)

	for i := 0; i < cols.sheet.RowCount(); i++ {
		if cols.sheet.RowIsEmpty(i) {
			continue
		}
		row := spreadsheet.SpreadsheetRow(i)

		p, rowErrs := parsePlayerRow(cols, i, row)
		if len(rowErrs) > 0 {
			summary.Errors = append(summary.Errors, rowErrs...)
			continue
		}

		if seen[p.IDFed] {
			summary.SkippedDuplicates++
			summary.detail("fila %d: jugador %s duplicado en el fichero, omitido", row, p.IDFed)
			continue
		}
		seen[p.IDFed] = true
		parsed = append(parsed, playerRow{row: row, player: p})
	}

	if len(summary.Errors) > 0 {
		return summaryError(summary)
	}

	// Reference pass: every club named in the file must already exist.
	knownClubs := make(map[string]bool)
	for _, pr := range parsed {
		known, checked := knownClubs[pr.player.CodigoClub]
		if !checked {
			_, found, err := s.clubRepo.GetByCode(ctx, pr.player.CodigoClub)
			if err != nil {
				return summary, fmt.Errorf("get club %s: %w", pr.player.CodigoClub, err)
			}
			known = found
			knownClubs[pr.player.CodigoClub] = found
		}
		if !known {
			summary.Errors = append(summary.Errors, RowError{Row: pr.row, Column: "codigo club", Message: "el club " + pr.player.CodigoClub + " no existe"})
		}
	}

	if len(summary.Errors) > 0 {
		return summaryError(summary)
	}

	var creates, updates []player.Player
	for _, pr := range parsed {
		p := pr.player
		existing, found, err := s.playerRepo.GetByIDFed(ctx, p.IDFed)
		if err != nil {
			return summary, fmt.Errorf("get jugador %s: %w", p.IDFed, err)
		}
		switch {
		case !found:
			creates = append(creates, p)
		case samePlayer(existing, p):
			summary.Unchanged++
		default:
			updates = append(updates, p)
		}
	}

	if err := s.playerRepo.ApplyBulk(ctx, creates, updates); err != nil {
		return summary, fmt.Errorf("apply jugadores: %w", err)
	}
	summary.Created = len(creates)
	summary.Updated = len(updates)
	for _, p := range creates {
		summary.detail("jugador %s creado", p.IDFed)
	}
	for _, p := range updates {
		summary.detail("jugador %s actualizado", p.IDFed)
	}
	return summary, nil
}

func parsePlayerRow(cols sheetColumns, i, row int) (player.Player, []RowError) {
	var errs []RowError

	cp, err := validate.PostalCode(cols.cell(i, "cp"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "cp", Message: err.Error()})
	}
	numero, err := validate.PlayerNumber(cols.cell(i, "numero jugador"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "numero jugador", Message: err.Error()})
	}
	nombre := cols.cell(i, "nombre")
	if nombre == "" {
		errs = append(errs, RowError{Row: row, Column: "nombre", Message: "el nombre del jugador es obligatorio"})
	}
	apellidos := cols.cell(i, "apellidos")
	if apellidos == "" {
		errs = append(errs, RowError{Row: row, Column: "apellidos", Message: "los apellidos del jugador son obligatorios"})
	}
	codigoClub, err := validate.ClubCode(cols.cell(i, "codigo club"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "codigo club", Message: err.Error()})
	}
	dni, err := validate.DNI(cols.cell(i, "dni"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "dni", Message: err.Error()})
	}
	telefono, err := validate.Phone(cols.cell(i, "telefono"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "telefono", Message: err.Error()})
	}
	email, err := validate.Email(cols.cell(i, "email"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "email", Message: err.Error()})
	}
	if len(errs) > 0 {
		return player.Player{}, errs
	}

	idfed, err := identifier.FormatIDFed(cp, numero)
	if err != nil {
		return player.Player{}, []RowError{{Row: row, Message: err.Error()}}
	}

	return player.Player{
		CP:            cp,
		NumeroJugador: numero,
		IDFed:         idfed,
		Nombre:        nombre,
		Apellidos:     apellidos,
		DNI:           dni,
		Telefono:      telefono,
		Email:         email,
		CodigoClub:    codigoClub,
	}, nil
}

func samePlayer(a, b player.Player) bool {
	return a.Nombre == b.Nombre &&
		a.Apellidos == b.Apellidos &&
		a.DNI == b.DNI &&
		a.Telefono == b.Telefono &&
		a.Email == b.Email &&
		a.CodigoClub == b.CodigoClub
}

func (s *ImportService) ImportTournaments(ctx context.Context, data []byte) (ImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportTournaments")
	defer span.End()

	cols, err := openSheet(data,
		[]string{"nombre", "fecha inicio", "dias", "partidas", "pm", "gb", "tipo", "codigo club"},
		[]string{"gbp"})
	if err != nil {
		return ImportSummary{}, err
	}

	// Format pass over the whole file before any repository access, so a
	// malformed file never reaches the database. In-file duplicates key on
	// the sheet's tipo code; tipo IDs resolve in the reference pass.
	var summary ImportSummary
	type tournamentRow struct {
		row        int
		tournament tournament.Tournament
	}
	var parsed []tournamentRow
	type naturalKey struct {
		tipo   string
		club   string
		fecha  time.Time
		nombre string
	}
	seen := make(map[naturalKey]bool)

	for i := 0; i < cols.sheet.RowCount(); i++ {
		if cols.sheet.RowIsEmpty(i) {
			continue
		}
		row := spreadsheet.SpreadsheetRow(i)

		t, rowErrs := parseTournamentRow(cols, i, row)
		if len(rowErrs) > 0 {
			summary.Errors = append(summary.Errors, rowErrs...)
			continue
		}

		key := naturalKey{tipo: t.CodigoTipo, club: t.CodigoClub, fecha: t.FechaInicio, nombre: t.Nombre}
		if seen[key] {
			summary.SkippedDuplicates++
			summary.detail("fila %d: campeonato %q duplicado en el fichero, omitido", row, t.Nombre)
			continue
		}
		seen[key] = true
		parsed = append(parsed, tournamentRow{row: row, tournament: t})
	}

	if len(summary.Errors) > 0 {
		return summaryError(summary)
	}

	// Reference pass: resolve tipo codes to IDs and require every club.
	tipoByCode := make(map[string]tourtype.Type)
	knownTipos := make(map[string]bool)
	knownClubs := make(map[string]bool)
	for idx := range parsed {
		pr := &parsed[idx]

		tipo, cached := tipoByCode[pr.tournament.CodigoTipo]
		if !cached {
			var found bool
			tipo, found, err = s.typeRepo.GetByCode(ctx, pr.tournament.CodigoTipo)
			if err != nil {
				return summary, fmt.Errorf("get tipo %s: %w", pr.tournament.CodigoTipo, err)
			}
			tipoByCode[pr.tournament.CodigoTipo] = tipo
			knownTipos[pr.tournament.CodigoTipo] = found
		}
		if !knownTipos[pr.tournament.CodigoTipo] {
			summary.Errors = append(summary.Errors, RowError{Row: pr.row, Column: "tipo", Message: "el tipo " + pr.tournament.CodigoTipo + " no existe"})
		}
		pr.tournament.TipoCampeonatoID = tipo.ID

		known, checked := knownClubs[pr.tournament.CodigoClub]
		if !checked {
			_, found, err := s.clubRepo.GetByCode(ctx, pr.tournament.CodigoClub)
			if err != nil {
				return summary, fmt.Errorf("get club %s: %w", pr.tournament.CodigoClub, err)
			}
			known = found
			knownClubs[pr.tournament.CodigoClub] = found
		}
		if !known {
			summary.Errors = append(summary.Errors, RowError{Row: pr.row, Column: "codigo club", Message: "el club " + pr.tournament.CodigoClub + " no existe"})
		}
	}

	if len(summary.Errors) > 0 {
		return summaryError(summary)
	}

	var creates, updates []tournament.Tournament
	nextIncremental := make(map[string]int)

	for _, pr := range parsed {
		t := pr.tournament
		existing, found, err := s.tournamentRepo.FindByAttributes(ctx, t.TipoCampeonatoID, t.CodigoClub, t.FechaInicio, t.Nombre)
		if err != nil {
			return summary, fmt.Errorf("find campeonato %s: %w", t.Nombre, err)
		}
		if found {
			if sameTournament(existing, t) {
				summary.Unchanged++
			} else {
				t.NCH = existing.NCH
				updates = append(updates, t)
			}
			continue
		}

		nch, err := s.assignNCH(ctx, t, nextIncremental)
		if err != nil {
			return summary, err
		}
		t.NCH = nch
		creates = append(creates, t)
	}

	if err := s.tournamentRepo.ApplyBulk(ctx, creates, updates); err != nil {
		return summary, fmt.Errorf("apply campeonatos: %w", err)
	}
	summary.Created = len(creates)
	summary.Updated = len(updates)
	for _, t := range creates {
		summary.detail("campeonato %s creado", t.NCH)
	}
	for _, t := range updates {
		summary.detail("campeonato %s actualizado", t.NCH)
	}
	return summary, nil
}

// assignNCH hands out sequential incrementals per prefix, seeding each prefix
// from storage so several new campeonatos in one file never collide.
func (s *ImportService) assignNCH(ctx context.Context, t tournament.Tournament, nextIncremental map[string]int) (string, error) {
	prefix := identifier.NCHPrefix(t.CodigoTipo, t.CodigoClub, t.FechaInicio)

	incremental, seeded := nextIncremental[prefix]
	if !seeded {
		incremental = 1
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
	}
	if incremental > identifier.MaxIncremental {
		return "", fmt.Errorf("%w: agotados los %d campeonatos para el prefijo %s", ErrLimitExceeded, identifier.MaxIncremental, prefix)
	}
	nextIncremental[prefix] = incremental + 1

	return identifier.FormatNCH(t.CodigoTipo, t.CodigoClub, t.FechaInicio, incremental)
}

func parseTournamentRow(cols sheetColumns, i, row int) (tournament.Tournament, []RowError) {
	var errs []RowError

	nombre := cols.cell(i, "nombre")
	if nombre == "" {
		errs = append(errs, RowError{Row: row, Column: "nombre", Message: "el nombre del campeonato es obligatorio"})
	}
	fecha, err := spreadsheet.ParseDate(cols.cell(i, "fecha inicio"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "fecha inicio", Message: err.Error()})
	}
	dias, err := spreadsheet.ParseInt(cols.cell(i, "dias"))
	if err != nil || dias <= 0 {
		errs = append(errs, RowError{Row: row, Column: "dias", Message: "dias debe ser un entero mayor que cero"})
	}
	partidas, err := spreadsheet.ParseInt(cols.cell(i, "partidas"))
	if err != nil || partidas <= 0 {
		errs = append(errs, RowError{Row: row, Column: "partidas", Message: "partidas debe ser un entero mayor que cero"})
	}
	pm, err := spreadsheet.ParseInt(cols.cell(i, "pm"))
	if err != nil || pm <= 0 {
		errs = append(errs, RowError{Row: row, Column: "pm", Message: "pm debe ser un entero mayor que cero"})
	}
	grupo, err := spreadsheet.ParseGroup(cols.cell(i, "gb"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "gb", Message: err.Error()})
	}
	codigoTipo, err := validate.TypeCode(cols.cell(i, "tipo"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "tipo", Message: err.Error()})
	}
	codigoClub, err := validate.ClubCode(cols.cell(i, "codigo club"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "codigo club", Message: err.Error()})
	}

	var gbp *int
	if cols.has("gbp") && cols.cell(i, "gbp") != "" {
		v, err := spreadsheet.ParseInt(cols.cell(i, "gbp"))
		if err != nil || v <= 0 {
			errs = append(errs, RowError{Row: row, Column: "gbp", Message: "gbp debe ser un entero mayor que cero"})
		} else {
			gbp = &v
		}
	}

	if len(errs) > 0 {
		return tournament.Tournament{}, errs
	}

	return tournament.Tournament{
		Nombre:      nombre,
		FechaInicio: fecha,
		Dias:        dias,
		Partidas:    partidas,
		PM:          pm,
		// For campeonatos the stored flag is true when the sheet says B.
		GB:         grupo == "B",
		GBP:        gbp,
		CodigoClub: codigoClub,
		CodigoTipo: codigoTipo,
	}, nil
}

func sameTournament(a, b tournament.Tournament) bool {
	if a.Dias != b.Dias || a.Partidas != b.Partidas || a.PM != b.PM || a.GB != b.GB {
		return false
	}
	if (a.GBP == nil) != (b.GBP == nil) {
		return false
	}
	if a.GBP != nil && *a.GBP != *b.GBP {
		return false
	}
	return true
}

var resultRequiredColumns = []string{
	"tipo", "nombre campeonato", "fecha campeonato",
	"idfed jugador", "nombre jugador", "apellido jugador", "codigo club jugador", "nombre club jugador",
	"partida", "mesa", "gb", "pg", "dif", "pv", "pt", "mg", "pos",
}

var resultPartnerColumns = []string{
	"idfed pareja", "nombre pareja", "apellido pareja", "codigo club pareja", "nombre club pareja",
}

func (s *ImportService) ImportResults(ctx context.Context, data []byte) (ImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportResults")
	defer span.End()

	cols, err := openSheet(data, resultRequiredColumns, resultPartnerColumns)
	if err != nil {
		return ImportSummary{}, err
	}

	// Format pass over the whole file before any repository access, so a
	// malformed file never reaches the database.
	var summary ImportSummary
	type resultRow struct {
		row    int
		result result.Result
	}
	var parsed []resultRow
	type naturalKey struct {
		fecha   time.Time
		idfed   string
		partida int
		mesa    int
	}
	seen := make(map[naturalKey]bool)

	for i := 0; i < cols.sheet.RowCount(); i++ {
		if cols.sheet.RowIsEmpty(i) {
			continue
		}
		row := spreadsheet.SpreadsheetRow(i)

		r, rowErrs := parseResultRow(cols, i, row)
		if len(rowErrs) > 0 {
			summary.Errors = append(summary.Errors, rowErrs...)
			continue
		}

		key := naturalKey{fecha: r.FechaCampeonato, idfed: r.IDFedJugador, partida: r.Partida, mesa: r.Mesa}
		if seen[key] {
			summary.SkippedDuplicates++
			summary.detail("fila %d: resultado de %s duplicado en el fichero, omitido", row, r.IDFedJugador)
			continue
		}
		seen[key] = true
		parsed = append(parsed, resultRow{row: row, result: r})
	}

	if len(summary.Errors) > 0 {
		return summaryError(summary)
	}

	// Reference pass: tipo codes, jugadores and clubs must already exist.
	tipoByCode := make(map[string]tourtype.Type)
	knownTipos := make(map[string]bool)
	knownPlayers := make(map[string]bool)
	knownClubs := make(map[string]bool)

	playerExists := func(idfed string) (bool, error) {
		if known, checked := knownPlayers[idfed]; checked {
			return known, nil
		}
		_, found, err := s.playerRepo.GetByIDFed(ctx, idfed)
		if err != nil {
			return false, fmt.Errorf("get jugador %s: %w", idfed, err)
		}
		knownPlayers[idfed] = found
		return found, nil
	}
	clubExists := func(codigo string) (bool, error) {
		if known, checked := knownClubs[codigo]; checked {
			return known, nil
		}
		_, found, err := s.clubRepo.GetByCode(ctx, codigo)
		if err != nil {
			return false, fmt.Errorf("get club %s: %w", codigo, err)
		}
		knownClubs[codigo] = found
		return found, nil
	}

	for idx := range parsed {
		pr := &parsed[idx]

		tipo, cached := tipoByCode[pr.result.CodigoTipo]
		if !cached {
			var found bool
			tipo, found, err = s.typeRepo.GetByCode(ctx, pr.result.CodigoTipo)
			if err != nil {
				return summary, fmt.Errorf("get tipo %s: %w", pr.result.CodigoTipo, err)
			}
			tipoByCode[pr.result.CodigoTipo] = tipo
			knownTipos[pr.result.CodigoTipo] = found
		}
		if !knownTipos[pr.result.CodigoTipo] {
			summary.Errors = append(summary.Errors, RowError{Row: pr.row, Column: "tipo", Message: "el tipo " + pr.result.CodigoTipo + " no existe"})
		}
		pr.result.TipoCampeonatoID = tipo.ID

		refErrs, err := s.checkResultReferences(pr.row, pr.result, playerExists, clubExists)
		if err != nil {
			return summary, err
		}
		summary.Errors = append(summary.Errors, refErrs...)
	}

	if len(summary.Errors) > 0 {
		return summaryError(summary)
	}

	// Rows already persisted under the natural key are skipped, never
	// updated; corrections go through the update endpoint.
	var creates []result.Result
	for _, pr := range parsed {
		r := pr.result
		_, found, err := s.resultRepo.GetByNaturalKey(ctx, r.FechaCampeonato, r.IDFedJugador, r.Partida, r.Mesa)
		if err != nil {
			return summary, fmt.Errorf("get resultado by natural key: %w", err)
		}
		if found {
			summary.SkippedDuplicates++
			summary.detail("resultado de %s el %s ya registrado, omitido", r.IDFedJugador, r.FechaCampeonato.Format("2006-01-02"))
			continue
		}
		creates = append(creates, r)
	}

	if err := s.resultRepo.ApplyBulk(ctx, creates, nil); err != nil {
		return summary, fmt.Errorf("apply resultados: %w", err)
	}
	summary.Created = len(creates)
	for _, r := range creates {
		summary.detail("resultado de %s el %s creado", r.IDFedJugador, r.FechaCampeonato.Format("2006-01-02"))
	}
	return summary, nil
}

func (s *ImportService) checkResultReferences(row int, r result.Result, playerExists, clubExists func(string) (bool, error)) ([]RowError, error) {
	var errs []RowError

	if found, err := playerExists(r.IDFedJugador); err != nil {
		return nil, err
	} else if !found {
		errs = append(errs, RowError{Row: row, Column: "idfed jugador", Message: "el jugador " + r.IDFedJugador + " no existe"})
	}
	if found, err := clubExists(r.CodigoClubJugador); err != nil {
		return nil, err
	} else if !found {
		errs = append(errs, RowError{Row: row, Column: "codigo club jugador", Message: "el club " + r.CodigoClubJugador + " no existe"})
	}
	if r.Pareja != nil {
		if found, err := playerExists(r.Pareja.IDFed); err != nil {
			return nil, err
		} else if !found {
			errs = append(errs, RowError{Row: row, Column: "idfed pareja", Message: "el jugador " + r.Pareja.IDFed + " no existe"})
		}
		if found, err := clubExists(r.Pareja.CodigoClub); err != nil {
			return nil, err
		} else if !found {
			errs = append(errs, RowError{Row: row, Column: "codigo club pareja", Message: "el club " + r.Pareja.CodigoClub + " no existe"})
		}
	}
	return errs, nil
}

func parseResultRow(cols sheetColumns, i, row int) (result.Result, []RowError) {
	var errs []RowError

	codigoTipo, err := validate.TypeCode(cols.cell(i, "tipo"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "tipo", Message: err.Error()})
	}
	nombreCampeonato := cols.cell(i, "nombre campeonato")
	if nombreCampeonato == "" {
		errs = append(errs, RowError{Row: row, Column: "nombre campeonato", Message: "el nombre del campeonato es obligatorio"})
	}
	fecha, err := spreadsheet.ParseDate(cols.cell(i, "fecha campeonato"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "fecha campeonato", Message: err.Error()})
	}
	idfed, err := validate.IDFed(cols.cell(i, "idfed jugador"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "idfed jugador", Message: err.Error()})
	}
	nombreJugador := cols.cell(i, "nombre jugador")
	apellidoJugador := cols.cell(i, "apellido jugador")
	if nombreJugador == "" || apellidoJugador == "" {
		errs = append(errs, RowError{Row: row, Column: "nombre jugador", Message: "nombre y apellido del jugador son obligatorios"})
	}
	codigoClubJugador, err := validate.ClubCode(cols.cell(i, "codigo club jugador"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "codigo club jugador", Message: err.Error()})
	}
	nombreClubJugador := cols.cell(i, "nombre club jugador")
	if nombreClubJugador == "" {
		errs = append(errs, RowError{Row: row, Column: "nombre club jugador", Message: "el nombre del club del jugador es obligatorio"})
	}

	intCell := func(column string, min int) int {
		v, err := spreadsheet.ParseInt(cols.cell(i, column))
		if err != nil || v < min {
			errs = append(errs, RowError{Row: row, Column: column, Message: column + " debe ser un entero valido"})
			return 0
		}
		return v
	}
	partida := intCell("partida", 1)
	mesa := intCell("mesa", 1)
	pg := intCell("pg", 0)
	dif, err := spreadsheet.ParseInt(cols.cell(i, "dif"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "dif", Message: "dif debe ser un entero valido"})
	}
	pv := intCell("pv", 0)
	pt := intCell("pt", 0)
	mg := intCell("mg", 0)
	pos := intCell("pos", 1)

	grupo, err := spreadsheet.ParseGroup(cols.cell(i, "gb"))
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "gb", Message: err.Error()})
	}

	pareja, parejaErrs := parsePartnerGroup(cols, i, row)
	errs = append(errs, parejaErrs...)

	if len(errs) > 0 {
		return result.Result{}, errs
	}

	return result.Result{
		FechaCampeonato:  fecha,
		IDFedJugador:     idfed,
		NombreCampeonato: nombreCampeonato,

		NombreJugador:     nombreJugador,
		ApellidoJugador:   apellidoJugador,
		CodigoClubJugador: codigoClubJugador,
		NombreClubJugador: nombreClubJugador,

		Pareja: pareja,

		Partida: partida,
		Mesa:    mesa,
		// For resultados the stored flag is true when the sheet says A.
		GB:  grupo == "A",
		PG:  pg,
		Dif: dif,
		PV:  pv,
		PT:  pt,
		MG:  mg,
		Pos: pos,

		CodigoTipo: codigoTipo,
	}, nil
}

// parsePartnerGroup enforces the all-or-nothing pareja columns: one filled
// cell makes the whole group mandatory for that row.
func parsePartnerGroup(cols sheetColumns, i, row int) (*result.Partner, []RowError) {
	values := make(map[string]string, len(resultPartnerColumns))
	any := false
	for _, column := range resultPartnerColumns {
		v := cols.cell(i, column)
		values[column] = v
		if v != "" {
			any = true
		}
	}
	if !any {
		return nil, nil
	}

	var errs []RowError
	for _, column := range resultPartnerColumns {
		if values[column] == "" {
			errs = append(errs, RowError{Row: row, Column: column, Message: "los datos de la pareja deben rellenarse completos"})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	idfed, err := validate.IDFed(values["idfed pareja"])
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "idfed pareja", Message: err.Error()})
	}
	codigoClub, err := validate.ClubCode(values["codigo club pareja"])
	if err != nil {
		errs = append(errs, RowError{Row: row, Column: "codigo club pareja", Message: err.Error()})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return &result.Partner{
		IDFed:      idfed,
		Nombre:     values["nombre pareja"],
		Apellido:   values["apellido pareja"],
		CodigoClub: codigoClub,
		NombreClub: values["nombre club pareja"],
	}, nil
}
