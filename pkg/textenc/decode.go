// Package textenc normaliza a UTF-8 los archivos de texto que exportan hojas de cálculo y
// sistemas de caja heredados (Windows-1252 / ISO-8859-1 son habituales en Excel en francés).
package textenc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Codificaciones aceptadas.
const (
	Auto        = "auto"
	UTF8        = "utf-8"
	Windows1252 = "windows-1252"
	ISO88591    = "iso-8859-1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode convierte data a una cadena UTF-8 según la codificación indicada.
// En modo auto: UTF-8 válido se deja tal cual; si no, se asume Windows-1252.
func Decode(data []byte, enc string) (string, error) {
	switch normalize(enc) {
	case Auto:
		if utf8.Valid(data) {
			return string(bytes.TrimPrefix(data, utf8BOM)), nil
		}
		return decodeWith(charmap.Windows1252, data)
	case UTF8:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("textenc: el contenido no es UTF-8 válido")
		}
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	case Windows1252:
		return decodeWith(charmap.Windows1252, data)
	case ISO88591:
		return decodeWith(charmap.ISO8859_1, data)
	default:
		return "", fmt.Errorf("textenc: codificación no soportada %q", enc)
	}
}

// Supported informa si enc es una codificación reconocida.
func Supported(enc string) bool {
	switch normalize(enc) {
	case Auto, UTF8, Windows1252, ISO88591:
		return true
	}
	return false
}

func normalize(enc string) string {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", "auto":
		return Auto
	case "utf-8", "utf8":
		return UTF8
	case "windows-1252", "cp1252", "win1252":
		return Windows1252
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return ISO88591
	}
	return enc
}

func decodeWith(cm *charmap.Charmap, data []byte) (string, error) {
	out, _, err := transform.Bytes(cm.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("textenc: decodificar: %w", err)
	}
	return string(out), nil
}
