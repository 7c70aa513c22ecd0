package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeLabel produce la clave canónica de una etiqueta de categoría:
// minúsculas, espacios colapsados y sin acentos. "Ropa ", "ropa" y "ROPA"
// resuelven a la misma categoría; la normalización es determinista.
func NormalizeLabel(label string) string {
	s := strings.Join(strings.Fields(label), " ")
	s = strings.ToLower(s)
	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}
	return s
}
