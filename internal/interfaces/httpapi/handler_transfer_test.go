package httpapi

import (
	"strings"
	"testing"

	"github.com/dominofed/federation-backend/internal/usecase"
)

func TestGroupRowErrors(t *testing.T) {
	t.Parallel()

	groups := groupRowErrors([]usecase.RowError{
		{Row: 2, Column: "cp", Message: "debe tener 1 o 2 digitos numericos"},
		{Row: 2, Column: "nombre", Message: "el nombre del club es obligatorio"},
		{Row: 5, Message: "formato invalido"},
	})

	if len(groups) != 2 {
		t.Fatalf("groups: got=%d want=2", len(groups))
	}
	if groups[0].Row != 2 || len(groups[0].Errors) != 2 {
		t.Fatalf("row 2 group: %+v", groups[0])
	}
	if !strings.HasPrefix(groups[0].Errors[0], "cp: ") {
		t.Fatalf("column prefix missing: %q", groups[0].Errors[0])
	}
	if groups[1].Row != 5 || groups[1].Errors[0] != "formato invalido" {
		t.Fatalf("row 5 group: %+v", groups[1])
	}
}

func TestIsXLSXPayload(t *testing.T) {
	t.Parallel()

	if !isXLSXPayload([]byte("PK\x03\x04rest of the archive")) {
		t.Fatal("zip payload must be accepted")
	}
	if isXLSXPayload([]byte("cp;numero club;nombre\n07;12;Club Palma\n")) {
		t.Fatal("renamed csv must be rejected")
	}
	if isXLSXPayload([]byte("PK")) {
		t.Fatal("truncated payload must be rejected")
	}
}

func TestExportFilename(t *testing.T) {
	t.Parallel()

	name := exportFilename("clubs")
	if !strings.HasPrefix(name, "clubs_") || !strings.HasSuffix(name, ".xlsx") {
		t.Fatalf("unexpected filename: %q", name)
	}
}
