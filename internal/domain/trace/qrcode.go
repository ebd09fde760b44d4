// Package trace: identificadores públicos de la cadena de trazabilidad.
// El QR impreso en cada lote de producto terminado codifica un ID con prefijo fijo
// y 12 caracteres aleatorios del alfabeto URL-safe (A-Z a-z 0-9 _ -).

package trace

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
)

const (
	// QRPrefix prefijo fijo de todos los códigos.
	QRPrefix = "CC-"
	// QRRandomLength cantidad de caracteres aleatorios después del prefijo.
	QRRandomLength = 12

	qrAlphabet = "useandom-26T198340PX75pxJACKVERYMINDBUSHWOLF_GQZbfghjklqvwyzrict"
)

// QRCodeGenerator genera códigos QR. La unicidad global la garantiza el índice único en DB.
type QRCodeGenerator struct {
	rand io.Reader
}

// NewQRCodeGenerator crea el generador sobre crypto/rand.
func NewQRCodeGenerator() *QRCodeGenerator {
	return &QRCodeGenerator{rand: rand.Reader}
}

// NewQRCodeGeneratorWithSource permite inyectar la fuente de aleatoriedad (tests).
func NewQRCodeGeneratorWithSource(r io.Reader) *QRCodeGenerator {
	return &QRCodeGenerator{rand: r}
}

// Generate devuelve un nuevo código, ej. "CC-V1StGXR8_Z5j".
// El alfabeto tiene 64 símbolos, así que byte&63 no introduce sesgo.
func (g *QRCodeGenerator) Generate() (string, error) {
	buf := make([]byte, QRRandomLength)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("qr: leer aleatoriedad: %w", err)
	}
	var sb strings.Builder
	sb.Grow(len(QRPrefix) + QRRandomLength)
	sb.WriteString(QRPrefix)
	for _, b := range buf {
		sb.WriteByte(qrAlphabet[b&63])
	}
	return sb.String(), nil
}

// IsWellFormed valida el formato de un código recibido por la API pública.
func IsWellFormed(code string) bool {
	if len(code) != len(QRPrefix)+QRRandomLength || !strings.HasPrefix(code, QRPrefix) {
		return false
	}
	for _, c := range code[len(QRPrefix):] {
		if !strings.ContainsRune(qrAlphabet, c) {
			return false
		}
	}
	return true
}
