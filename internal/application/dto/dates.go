package dto

import (
	"fmt"
	"time"
)

// DateLayout formato de las columnas DATE en requests y responses.
const DateLayout = "2006-01-02"

// timestampLayouts formas ISO 8601 aceptadas. Las que no traen zona se leen en UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	DateLayout,
}

// ParseTimestamp acepta un instante ISO 8601 con o sin zona, o solo la fecha. Devuelve UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp inválido %q: se espera ISO 8601", s)
}

// ParseDate acepta "2006-01-02" o un timestamp ISO 8601 (se conserva solo la fecha UTC).
func ParseDate(s string) (time.Time, error) {
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// FormatDate serializa una fecha DATE.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr como FormatDate; nil → nil.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}
