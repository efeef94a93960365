// Package validate holds the field-format rules shared by the API surface and
// the spreadsheet importer. Validators normalize their input and never touch
// the database.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
)

// FieldError names the field and the rule it violated.
type FieldError struct {
	Field string
	Rule  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Rule)
}

func fieldErr(field, rule string) error {
	return &FieldError{Field: field, Rule: rule}
}

// PostalCode accepts 1 or 2 ASCII digits and normalizes to the stored
// 2-digit form, so a sheet cell holding "7" becomes "07".
func PostalCode(raw string) (string, error) {
	cp := strings.TrimSpace(raw)
	if len(cp) < 1 || len(cp) > 2 || !allDigits(cp) {
		return "", fieldErr("cp", "debe tener 1 o 2 digitos numericos")
	}
	if len(cp) == 1 {
		cp = "0" + cp
	}
	return cp, nil
}

// ClubNumber requires 1 to 4 ASCII digits (pre-padding).
func ClubNumber(raw string) (string, error) {
	n := strings.TrimSpace(raw)
	if len(n) < 1 || len(n) > 4 || !allDigits(n) {
		return "", fieldErr("numero_club", "debe ser numerico con un maximo de 4 digitos")
	}
	return n, nil
}

// PlayerNumber requires 1 to 5 ASCII digits (pre-padding).
func PlayerNumber(raw string) (string, error) {
	n := strings.TrimSpace(raw)
	if len(n) < 1 || len(n) > 5 || !allDigits(n) {
		return "", fieldErr("numero_jugador", "debe ser numerico con un maximo de 5 digitos")
	}
	return n, nil
}

// DNI is optional; when present it must be 8 digits followed by one letter.
func DNI(raw string) (string, error) {
	dni := strings.ToUpper(strings.TrimSpace(raw))
	if dni == "" {
		return "", nil
	}
	if len(dni) != 9 || !allDigits(dni[:8]) || !isLetter(rune(dni[8])) {
		return "", fieldErr("dni", "formato invalido, se esperan 8 digitos seguidos de una letra")
	}
	return dni, nil
}

// Email is optional; when present it must parse as an address.
func Email(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fieldErr("email", "direccion de correo invalida")
	}
	return email, nil
}

// Phone is optional; after stripping separators it must hold 9 to 15 digits.
func Phone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	phone := digits.String()
	if len(phone) < 9 || len(phone) > 15 {
		return "", fieldErr("telefono", "debe contener entre 9 y 15 digitos")
	}
	return phone, nil
}

// TypeCode requires exactly 2 uppercase letters.
func TypeCode(raw string) (string, error) {
	codigo := strings.TrimSpace(raw)
	if len(codigo) != 2 || !allUpperLetters(codigo) {
		return "", fieldErr("codigo", "debe tener exactamente 2 letras mayusculas")
	}
	return codigo, nil
}

// IDFed requires exactly 7 ASCII digits.
func IDFed(raw string) (string, error) {
	idfed := strings.TrimSpace(raw)
	if len(idfed) != 7 || !allDigits(idfed) {
		return "", fieldErr("idfed", "debe tener 7 digitos numericos")
	}
	return idfed, nil
}

// ClubCode requires exactly 6 ASCII digits.
func ClubCode(raw string) (string, error) {
	codigo := strings.TrimSpace(raw)
	if len(codigo) != 6 || !allDigits(codigo) {
		return "", fieldErr("codigo_club", "debe tener 6 digitos numericos")
	}
	return codigo, nil
}

func allDigits(s string) bool {
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

func allUpperLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
