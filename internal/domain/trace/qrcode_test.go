package trace_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/trace"
)

func TestGenerate_FormatoFijo(t *testing.T) {
	g := trace.NewQRCodeGenerator()
	code, err := g.Generate()
	require.NoError(t, err)

	assert.Len(t, code, 15)
	assert.Equal(t, "CC-", code[:3])
	assert.True(t, trace.IsWellFormed(code))
}

func TestGenerate_FuenteDeterminista(t *testing.T) {
	// Bytes 0..11 → primeros 12 símbolos del alfabeto.
	src := bytes.NewReader([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	code, err := trace.NewQRCodeGeneratorWithSource(src).Generate()
	require.NoError(t, err)
	assert.Equal(t, "CC-useandom-26T", code)
}

func TestGenerate_BitsAltosSeEnmascaran(t *testing.T) {
	// 64 y 0 producen el mismo símbolo.
	src := bytes.NewReader(append([]byte{64}, make([]byte, 11)...))
	code, err := trace.NewQRCodeGeneratorWithSource(src).Generate()
	require.NoError(t, err)
	assert.Equal(t, "CC-uuuuuuuuuuuu", code)
}

func TestGenerate_SinAleatoriedadFalla(t *testing.T) {
	_, err := trace.NewQRCodeGeneratorWithSource(bytes.NewReader([]byte{1, 2})).Generate()
	assert.Error(t, err)
}

func TestGenerate_NoRepiteEnMuestra(t *testing.T) {
	g := trace.NewQRCodeGenerator()
	seen := make(map[string]struct{}, 5000)
	for i := 0; i < 5000; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		_, dup := seen[code]
		require.False(t, dup, "código repetido: %s", code)
		seen[code] = struct{}{}
	}
}

func TestIsWellFormed(t *testing.T) {
	assert.False(t, trace.IsWellFormed(""))
	assert.False(t, trace.IsWellFormed("XX-useandom-26T"))
	assert.False(t, trace.IsWellFormed("CC-useandom-26"))
	assert.False(t, trace.IsWellFormed("CC-useandom-2!T"))
	assert.True(t, trace.IsWellFormed("CC-A_b-0z9Y8x7W"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("sin entropía") }

func TestGenerate_ErrorDeFuente(t *testing.T) {
	_, err := trace.NewQRCodeGeneratorWithSource(failingReader{}).Generate()
	assert.ErrorContains(t, err, "sin entropía")
}
