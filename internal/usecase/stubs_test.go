package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dominofed/federation-backend/internal/domain/club"
	"github.com/dominofed/federation-backend/internal/domain/player"
	"github.com/dominofed/federation-backend/internal/domain/result"
	"github.com/dominofed/federation-backend/internal/domain/storage"
	"github.com/dominofed/federation-backend/internal/domain/tournament"
	"github.com/dominofed/federation-backend/internal/domain/tourtype"
)

type stubClubRepository struct {
	byCode      map[string]club.Club
	dependents  map[string]int
	inserted    []club.Club
	updated     []club.Club
	deleted     []string
	bulkCreates []club.Club
	bulkUpdates []club.Club
	bulkCalls   int
	lookups     int
}

func (s *stubClubRepository) List(_ context.Context, _ club.ListParams) ([]club.Club, int, error) {
	out := make([]club.Club, 0, len(s.byCode))
	for _, c := range s.byCode {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (s *stubClubRepository) GetByCode(_ context.Context, codigo string) (club.Club, bool, error) {
	s.lookups++
	c, ok := s.byCode[codigo]
	return c, ok, nil
}

func (s *stubClubRepository) Insert(_ context.Context, c club.Club) (club.Club, error) {
	if _, exists := s.byCode[c.CodigoClub]; exists {
		return club.Club{}, fmt.Errorf("insert club: %w", storage.ErrDuplicate)
	}
	if s.byCode == nil {
		s.byCode = make(map[string]club.Club)
	}
	c.ID = int64(len(s.byCode) + 1)
	s.byCode[c.CodigoClub] = c
	s.inserted = append(s.inserted, c)
	return c, nil
}

func (s *stubClubRepository) Update(_ context.Context, codigo string, c club.Club) (club.Club, error) {
	if _, exists := s.byCode[codigo]; !exists {
		return club.Club{}, storage.ErrNotFound
	}
	s.byCode[codigo] = c
	s.updated = append(s.updated, c)
	return c, nil
}

func (s *stubClubRepository) Delete(_ context.Context, codigo string) error {
	delete(s.byCode, codigo)
	s.deleted = append(s.deleted, codigo)
	return nil
}

func (s *stubClubRepository) CountDependents(_ context.Context, codigo string) (int, error) {
	return s.dependents[codigo], nil
}

func (s *stubClubRepository) ApplyBulk(_ context.Context, creates, updates []club.Club) error {
	s.bulkCalls++
	s.bulkCreates = append(s.bulkCreates, creates...)
	s.bulkUpdates = append(s.bulkUpdates, updates...)
	if s.byCode == nil {
		s.byCode = make(map[string]club.Club)
	}
	for _, c := range creates {
		s.byCode[c.CodigoClub] = c
	}
	for _, c := range updates {
		existing := s.byCode[c.CodigoClub]
		existing.Nombre = c.Nombre
		s.byCode[c.CodigoClub] = existing
	}
	return nil
}

type stubPlayerRepository struct {
	byIDFed    map[string]player.Player
	dependents map[string]int

	bulkCreates []player.Player
	bulkUpdates []player.Player
	bulkCalls   int
}

func (s *stubPlayerRepository) List(_ context.Context, _ player.ListParams) ([]player.Player, int, error) {
	out := make([]player.Player, 0, len(s.byIDFed))
	for _, p := range s.byIDFed {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (s *stubPlayerRepository) GetByIDFed(_ context.Context, idfed string) (player.Player, bool, error) {
	p, ok := s.byIDFed[idfed]
	return p, ok, nil
}

func (s *stubPlayerRepository) ListByClub(_ context.Context, codigo string) ([]player.Player, error) {
	var out []player.Player
	for _, p := range s.byIDFed {
		if p.CodigoClub == codigo {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPlayerRepository) Insert(_ context.Context, p player.Player) (player.Player, error) {
	if _, exists := s.byIDFed[p.IDFed]; exists {
		return player.Player{}, fmt.Errorf("insert jugador: %w", storage.ErrDuplicate)
	}
	if s.byIDFed == nil {
		s.byIDFed = make(map[string]player.Player)
	}
	p.ID = int64(len(s.byIDFed) + 1)
	s.byIDFed[p.IDFed] = p
	return p, nil
}

func (s *stubPlayerRepository) Update(_ context.Context, idfed string, p player.Player) (player.Player, error) {
	if _, exists := s.byIDFed[idfed]; !exists {
		return player.Player{}, storage.ErrNotFound
	}
	s.byIDFed[idfed] = p
	return p, nil
}

func (s *stubPlayerRepository) Delete(_ context.Context, idfed string) error {
	delete(s.byIDFed, idfed)
	return nil
}

func (s *stubPlayerRepository) CountDependents(_ context.Context, idfed string) (int, error) {
	return s.dependents[idfed], nil
}

func (s *stubPlayerRepository) ApplyBulk(_ context.Context, creates, updates []player.Player) error {
	s.bulkCalls++
	s.bulkCreates = append(s.bulkCreates, creates...)
	s.bulkUpdates = append(s.bulkUpdates, updates...)
	if s.byIDFed == nil {
		s.byIDFed = make(map[string]player.Player)
	}
	for _, p := range creates {
		s.byIDFed[p.IDFed] = p
	}
	for _, p := range updates {
		s.byIDFed[p.IDFed] = p
	}
	return nil
}

type stubTourTypeRepository struct {
	types      []tourtype.Type
	dependents map[int64]int
	lookups    int
}

func (s *stubTourTypeRepository) List(_ context.Context) ([]tourtype.Type, error) {
	return s.types, nil
}

func (s *stubTourTypeRepository) GetByID(_ context.Context, id int64) (tourtype.Type, bool, error) {
	for _, t := range s.types {
		if t.ID == id {
			return t, true, nil
		}
	}
	return tourtype.Type{}, false, nil
}

func (s *stubTourTypeRepository) GetByCode(_ context.Context, codigo string) (tourtype.Type, bool, error) {
	s.lookups++
	for _, t := range s.types {
		if t.Codigo == codigo {
			return t, true, nil
		}
	}
	return tourtype.Type{}, false, nil
}

func (s *stubTourTypeRepository) Insert(_ context.Context, t tourtype.Type) (tourtype.Type, error) {
	for _, existing := range s.types {
		if existing.Codigo == t.Codigo {
			return tourtype.Type{}, fmt.Errorf("insert tipo: %w", storage.ErrDuplicate)
		}
	}
	t.ID = int64(len(s.types) + 1)
	s.types = append(s.types, t)
	return t, nil
}

func (s *stubTourTypeRepository) Update(_ context.Context, id int64, t tourtype.Type) (tourtype.Type, error) {
	for i, existing := range s.types {
		if existing.ID == id {
			t.ID = id
			s.types[i] = t
			return t, nil
		}
	}
	return tourtype.Type{}, storage.ErrNotFound
}

func (s *stubTourTypeRepository) Delete(_ context.Context, id int64) error {
	for i, existing := range s.types {
		if existing.ID == id {
			s.types = append(s.types[:i], s.types[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *stubTourTypeRepository) CountDependents(_ context.Context, id int64) (int, error) {
	return s.dependents[id], nil
}

type stubTournamentRepository struct {
	byNCH      map[string]tournament.Tournament
	dependents map[string]int

	// conflictOnNext makes that many Inserts fail with a duplicate mark, as
	// if concurrent writers kept winning the incremental.
	conflictOnNext int

	inserted    []tournament.Tournament
	bulkCreates []tournament.Tournament
	bulkUpdates []tournament.Tournament
	bulkCalls   int
}

func (s *stubTournamentRepository) List(_ context.Context, _ tournament.ListParams) ([]tournament.Tournament, int, error) {
	out := make([]tournament.Tournament, 0, len(s.byNCH))
	for _, t := range s.byNCH {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (s *stubTournamentRepository) GetByNCH(_ context.Context, nch string) (tournament.Tournament, bool, error) {
	t, ok := s.byNCH[nch]
	return t, ok, nil
}

func (s *stubTournamentRepository) FindByAttributes(_ context.Context, tipoID int64, codigoClub string, fecha time.Time, nombre string) (tournament.Tournament, bool, error) {
	for _, t := range s.byNCH {
		if t.TipoCampeonatoID == tipoID && t.CodigoClub == codigoClub && t.FechaInicio.Equal(fecha) && t.Nombre == nombre {
			return t, true, nil
		}
	}
	return tournament.Tournament{}, false, nil
}

func (s *stubTournamentRepository) LastNCHForPrefix(_ context.Context, prefix string) (string, bool, error) {
	var last string
	for nch := range s.byNCH {
		if len(nch) >= len(prefix) && nch[:len(prefix)] == prefix && nch > last {
			last = nch
		}
	}
	return last, last != "", nil
}

func (s *stubTournamentRepository) Insert(_ context.Context, t tournament.Tournament) error {
	if s.byNCH == nil {
		s.byNCH = make(map[string]tournament.Tournament)
	}
	if s.conflictOnNext > 0 {
		s.conflictOnNext--
		s.byNCH[t.NCH] = tournament.Tournament{NCH: t.NCH, Nombre: "rival"}
		return fmt.Errorf("insert campeonato: %w", storage.ErrDuplicate)
	}
	if _, exists := s.byNCH[t.NCH]; exists {
		return fmt.Errorf("insert campeonato: %w", storage.ErrDuplicate)
	}
	s.byNCH[t.NCH] = t
	s.inserted = append(s.inserted, t)
	return nil
}

func (s *stubTournamentRepository) Update(_ context.Context, nch string, t tournament.Tournament) (tournament.Tournament, error) {
	if _, exists := s.byNCH[nch]; !exists {
		return tournament.Tournament{}, storage.ErrNotFound
	}
	s.byNCH[nch] = t
	return t, nil
}

func (s *stubTournamentRepository) Delete(_ context.Context, nch string) error {
	delete(s.byNCH, nch)
	return nil
}

func (s *stubTournamentRepository) CountDependents(_ context.Context, nch string) (int, error) {
	return s.dependents[nch], nil
}

func (s *stubTournamentRepository) ApplyBulk(_ context.Context, creates, updates []tournament.Tournament) error {
	s.bulkCalls++
	s.bulkCreates = append(s.bulkCreates, creates...)
	s.bulkUpdates = append(s.bulkUpdates, updates...)
	if s.byNCH == nil {
		s.byNCH = make(map[string]tournament.Tournament)
	}
	for _, t := range creates {
		if _, exists := s.byNCH[t.NCH]; exists {
			return fmt.Errorf("bulk insert campeonato: %w", storage.ErrDuplicate)
		}
		s.byNCH[t.NCH] = t
	}
	for _, t := range updates {
		s.byNCH[t.NCH] = t
	}
	return nil
}

type resultNaturalKey struct {
	fecha   string
	idfed   string
	partida int
	mesa    int
}

type stubResultRepository struct {
	rows map[resultNaturalKey]result.Result

	filterErr error

	bulkCreates []result.Result
	bulkUpdates []result.Result
	bulkCalls   int
}

func naturalKeyOf(fecha time.Time, idfed string, partida, mesa int) resultNaturalKey {
	return resultNaturalKey{fecha: fecha.Format("2006-01-02"), idfed: idfed, partida: partida, mesa: mesa}
}

func (s *stubResultRepository) List(_ context.Context, _ result.ListFilter) ([]result.Result, int, error) {
	out := make([]result.Result, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out, len(out), nil
}

func (s *stubResultRepository) Filter(_ context.Context, _ []result.FieldFilter, _, _ int) ([]result.Result, int, error) {
	if s.filterErr != nil {
		return nil, 0, s.filterErr
	}
	return nil, 0, nil
}

func (s *stubResultRepository) GetByKey(_ context.Context, key result.Key) (result.Result, bool, error) {
	for _, r := range s.rows {
		if r.NCH == key.NCH && r.FechaCampeonato.Equal(key.FechaCampeonato) && r.IDFedJugador == key.IDFedJugador {
			return r, true, nil
		}
	}
	return result.Result{}, false, nil
}

func (s *stubResultRepository) GetByNaturalKey(_ context.Context, fecha time.Time, idfed string, partida, mesa int) (result.Result, bool, error) {
	r, ok := s.rows[naturalKeyOf(fecha, idfed, partida, mesa)]
	return r, ok, nil
}

func (s *stubResultRepository) ListByPlayer(_ context.Context, idfed string) ([]result.Result, error) {
	var out []result.Result
	for _, r := range s.rows {
		if r.IDFedJugador == idfed {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubResultRepository) ListByCampeonato(_ context.Context, nch string) ([]result.Result, error) {
	var out []result.Result
	for _, r := range s.rows {
		if r.CampeonatoNCH == nch {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubResultRepository) Insert(_ context.Context, r result.Result) (result.Result, error) {
	key := naturalKeyOf(r.FechaCampeonato, r.IDFedJugador, r.Partida, r.Mesa)
	if _, exists := s.rows[key]; exists {
		return result.Result{}, fmt.Errorf("insert resultado: %w", storage.ErrDuplicate)
	}
	if s.rows == nil {
		s.rows = make(map[resultNaturalKey]result.Result)
	}
	r.NCH = int64(len(s.rows) + 1)
	s.rows[key] = r
	return r, nil
}

func (s *stubResultRepository) Update(_ context.Context, key result.Key, fields result.UpdateFields) (result.Result, error) {
	for k, r := range s.rows {
		if r.NCH == key.NCH && r.FechaCampeonato.Equal(key.FechaCampeonato) && r.IDFedJugador == key.IDFedJugador {
			if fields.Pos != nil {
				r.Pos = *fields.Pos
			}
			if fields.PG != nil {
				r.PG = *fields.PG
			}
			s.rows[k] = r
			return r, nil
		}
	}
	return result.Result{}, storage.ErrNotFound
}

func (s *stubResultRepository) Delete(_ context.Context, key result.Key) error {
	for k, r := range s.rows {
		if r.NCH == key.NCH && r.FechaCampeonato.Equal(key.FechaCampeonato) && r.IDFedJugador == key.IDFedJugador {
			delete(s.rows, k)
			return nil
		}
	}
	return errors.New("resultado not found")
}

func (s *stubResultRepository) ApplyBulk(_ context.Context, creates, updates []result.Result) error {
	s.bulkCalls++
	s.bulkCreates = append(s.bulkCreates, creates...)
	s.bulkUpdates = append(s.bulkUpdates, updates...)
	if s.rows == nil {
		s.rows = make(map[resultNaturalKey]result.Result)
	}
	for _, r := range creates {
		r.NCH = int64(len(s.rows) + 1)
		s.rows[naturalKeyOf(r.FechaCampeonato, r.IDFedJugador, r.Partida, r.Mesa)] = r
	}
	for _, r := range updates {
		s.rows[naturalKeyOf(r.FechaCampeonato, r.IDFedJugador, r.Partida, r.Mesa)] = r
	}
	return nil
}
