package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006", "02-01-2006"}

// excelEpoch is day zero of Excel's 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate accepts ISO dates, the Spanish day-first form and raw Excel date
// serial numbers (excelize returns unformatted date cells as serials).
func ParseDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, fmt.Errorf("fecha vacia")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(cell, 64); err == nil && serial > 0 && serial < 200000 {
		return excelEpoch.AddDate(0, 0, int(serial)), nil
	}
	return time.Time{}, fmt.Errorf("fecha ilegible: %q", cell)
}

// ParseInt accepts plain integers and Excel's "12.0" rendering of numeric cells.
func ParseInt(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, fmt.Errorf("numero vacio")
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && f == float64(int(f)) {
		return int(f), nil
	}
	return 0, fmt.Errorf("numero ilegible: %q", cell)
}

// ParseGroup coerces a group cell to "A" or "B". The mapping between letter
// and the stored GB flag differs per entity, so callers do their own
// conversion.
func ParseGroup(cell string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(cell)) {
	case "A":
		return "A", nil
	case "B":
		return "B", nil
	}
	return "", fmt.Errorf("grupo ilegible: %q, se espera A o B", cell)
}
