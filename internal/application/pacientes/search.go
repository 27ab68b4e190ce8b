package pacientes

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quitarTildes descompone (NFD) y elimina las marcas diacríticas, de modo que
// "Pérez" y "perez" comparen igual.
var quitarTildes = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizar devuelve el texto en minúsculas, sin tildes y sin espacios
// sobrantes. Es una función pura: misma entrada, misma salida.
func Normalizar(s string) string {
	out, _, err := transform.String(quitarTildes, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
