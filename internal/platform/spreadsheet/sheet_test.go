package spreadsheet

import (
	"testing"
	"time"
)

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"Número  Club", "numero club"},
		{" CP ", "cp"},
		{"FECHA CAMPEONATO", "fecha campeonato"},
		{"Teléfono", "telefono"},
		{"Código\tClub  Jugador", "codigo club jugador"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeHeader(tc.in); got != tc.want {
			t.Fatalf("NormalizeHeader(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestBuildOpenRoundTrip(t *testing.T) {
	t.Parallel()

	data, err := Build("Clubs", []string{"CP", "Número Club", "Nombre"}, [][]any{
		{"07", "12", "Club Palma"},
		{"28", "1", "Club Madrid"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	sheet, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if sheet.RowCount() != 2 {
		t.Fatalf("row count: got=%d want=2", sheet.RowCount())
	}

	col, ok := sheet.Column("numero club")
	if !ok {
		t.Fatal("column 'numero club' not found after normalization")
	}
	if got := sheet.Cell(0, col); got != "12" {
		t.Fatalf("cell(0, numero club): got=%q want=12", got)
	}
	if got := sheet.Cell(1, 2); got != "Club Madrid" {
		t.Fatalf("cell(1, 2): got=%q", got)
	}
	if got := sheet.Cell(1, 99); got != "" {
		t.Fatalf("out-of-range cell must be empty, got %q", got)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := Open([]byte("not an excel file")); err == nil {
		t.Fatal("expected error for non-xlsx payload")
	}
}

func TestSpreadsheetRow(t *testing.T) {
	t.Parallel()

	if got := SpreadsheetRow(0); got != 2 {
		t.Fatalf("first data row: got=%d want=2", got)
	}
	if got := SpreadsheetRow(9); got != 11 {
		t.Fatalf("tenth data row: got=%d want=11", got)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-08-15", "15/08/2024", "45519"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%q): got=%v want=%v", in, got, want)
		}
	}

	for _, bad := range []string{"", "mañana", "2024/15/08"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("ParseDate(%q): expected error", bad)
		}
	}
}

func TestParseInt(t *testing.T) {
	t.Parallel()

	if n, err := ParseInt("12"); err != nil || n != 12 {
		t.Fatalf("ParseInt(12): n=%d err=%v", n, err)
	}
	if n, err := ParseInt("12.0"); err != nil || n != 12 {
		t.Fatalf("ParseInt(12.0): n=%d err=%v", n, err)
	}
	for _, bad := range []string{"", "doce", "12.5"} {
		if _, err := ParseInt(bad); err == nil {
			t.Fatalf("ParseInt(%q): expected error", bad)
		}
	}
}

func TestParseGroup(t *testing.T) {
	t.Parallel()

	if g, err := ParseGroup(" a "); err != nil || g != "A" {
		t.Fatalf("ParseGroup(a): g=%q err=%v", g, err)
	}
	if g, err := ParseGroup("B"); err != nil || g != "B" {
		t.Fatalf("ParseGroup(B): g=%q err=%v", g, err)
	}
	if _, err := ParseGroup("C"); err == nil {
		t.Fatal("ParseGroup(C): expected error")
	}
}
