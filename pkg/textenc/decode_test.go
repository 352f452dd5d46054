package textenc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seraphine/pkg/textenc"
)

// "Médicament" en Windows-1252: é = 0xE9.
var cp1252 = []byte{'M', 0xE9, 'd', 'i', 'c', 'a', 'm', 'e', 'n', 't'}

func TestDecode_AutoUTF8(t *testing.T) {
	out, err := textenc.Decode([]byte("\xEF\xBB\xBFMédicament;1"), textenc.Auto)
	require.NoError(t, err)
	assert.Equal(t, "Médicament;1", out)
}

func TestDecode_AutoWindows1252(t *testing.T) {
	out, err := textenc.Decode(cp1252, "")
	require.NoError(t, err)
	assert.Equal(t, "Médicament", out)
}

func TestDecode_Latin1(t *testing.T) {
	out, err := textenc.Decode(cp1252, "latin1")
	require.NoError(t, err)
	assert.Equal(t, "Médicament", out)
}

func TestDecode_UTF8Estricto(t *testing.T) {
	_, err := textenc.Decode(cp1252, "utf-8")
	assert.Error(t, err)
}

func TestDecode_CodificacionDesconocida(t *testing.T) {
	_, err := textenc.Decode([]byte("x"), "ebcdic")
	assert.Error(t, err)
	assert.False(t, textenc.Supported("ebcdic"))
	assert.True(t, textenc.Supported("CP1252"))
}
