// Package identifier derives the federation's composite business keys.
// Everything here is pure string formatting; no I/O, no database access.
package identifier

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	// ClubCodeLen is cp (2) + club number padded to 4.
	ClubCodeLen = 6
	// IDFedLen is cp (2) + player number padded to 5.
	IDFedLen = 7
	// NCHLen is tipo (2) + club code (6) + YYYYMMDD (8) + incremental (4).
	NCHLen = 20

	clubNumberWidth   = 4
	playerNumberWidth = 5
	incrementalWidth  = 4

	// MaxIncremental is the largest incremental a single
	// (tipo, club, fecha) prefix can hold.
	MaxIncremental = 9999
)

// FormatError reports a raw field that cannot form part of a business key.
type FormatError struct {
	Field  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("formato invalido en %s: %s", e.Field, e.Reason)
}

func formatErrorf(field, format string, args ...any) error {
	return &FormatError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// FormatClubCode builds a codigo_club from the postal prefix and the raw club
// number, zero-padding the number to 4 digits.
func FormatClubCode(cp, numero string) (string, error) {
	if !isDigits(cp) || len(cp) != 2 {
		return "", formatErrorf("cp", "se requieren exactamente 2 digitos, recibido %q", cp)
	}
	if !isDigits(numero) || len(numero) < 1 || len(numero) > clubNumberWidth {
		return "", formatErrorf("numero_club", "se requieren entre 1 y %d digitos, recibido %q", clubNumberWidth, numero)
	}
	return cp + zeroPad(numero, clubNumberWidth), nil
}

// FormatIDFed builds a player idfed from the postal prefix and the raw player
// number, zero-padding the number to 5 digits.
func FormatIDFed(cp, numero string) (string, error) {
	if !isDigits(cp) || len(cp) != 2 {
		return "", formatErrorf("cp", "se requieren exactamente 2 digitos, recibido %q", cp)
	}
	if !isDigits(numero) || len(numero) < 1 || len(numero) > playerNumberWidth {
		return "", formatErrorf("numero_jugador", "se requieren entre 1 y %d digitos, recibido %q", playerNumberWidth, numero)
	}
	return cp + zeroPad(numero, playerNumberWidth), nil
}

// FormatNCH builds the 20-character Numero de Campeonato Historico.
func FormatNCH(codigoTipo, codigoClub string, fechaInicio time.Time, incremental int) (string, error) {
	if !isUpperLetters(codigoTipo) || len(codigoTipo) != 2 {
		return "", formatErrorf("codigo_tipo", "se requieren exactamente 2 letras mayusculas, recibido %q", codigoTipo)
	}
	if !isDigits(codigoClub) || len(codigoClub) != ClubCodeLen {
		return "", formatErrorf("codigo_club", "se requieren exactamente %d digitos, recibido %q", ClubCodeLen, codigoClub)
	}
	if fechaInicio.IsZero() {
		return "", formatErrorf("fecha_inicio", "la fecha de inicio es obligatoria")
	}
	if incremental < 1 || incremental > MaxIncremental {
		return "", formatErrorf("incremental", "debe estar entre 1 y %d, recibido %d", MaxIncremental, incremental)
	}
	var b strings.Builder
	b.Grow(NCHLen)
	b.WriteString(codigoTipo)
	b.WriteString(codigoClub)
	b.WriteString(fechaInicio.Format("20060102"))
	b.WriteString(zeroPad(strconv.Itoa(incremental), incrementalWidth))
	return b.String(), nil
}

// IncrementalFromNCH parses the trailing 4-digit counter out of an nch.
func IncrementalFromNCH(nch string) (int, error) {
	if len(nch) != NCHLen {
		return 0, formatErrorf("nch", "se requieren %d caracteres, recibido %d", NCHLen, len(nch))
	}
	suffix := nch[NCHLen-incrementalWidth:]
	if !isDigits(suffix) {
		return 0, formatErrorf("nch", "los ultimos %d caracteres deben ser digitos, recibido %q", incrementalWidth, suffix)
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, formatErrorf("nch", "incremental ilegible: %v", err)
	}
	return n, nil
}

// NCHPrefix is the 16-character portion shared by every tournament of the same
// type, club and start date. The next incremental is computed per prefix.
func NCHPrefix(codigoTipo, codigoClub string, fechaInicio time.Time) string {
	return codigoTipo + codigoClub + fechaInicio.Format("20060102")
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isUpperLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) || r > 'Z' || r < 'A' {
			return false
		}
	}
	return true
}
