// Package textnorm normaliza nombres capturados a mano (productos, marcas, proveedores)
// para detectar duplicados y buscar sin depender de mayúsculas, tildes o espacios.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key devuelve la clave de comparación: sin tildes, en minúsculas (case folding)
// y con los espacios colapsados. "  Tomáte   ROMA " y "tomate roma" comparten clave.
func Key(s string) string {
	// Los transformers guardan estado: uno nuevo por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return Clean(out)
}

// Clean recorta y colapsa espacios sin alterar el texto. Es la forma que se persiste.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Contains informa si needle aparece en haystack comparando por clave.
func Contains(haystack, needle string) bool {
	return strings.Contains(Key(haystack), Key(needle))
}
