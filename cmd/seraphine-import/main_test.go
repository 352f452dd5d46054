package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seraphine/internal/domain/catalog"
)

func TestRunParse_TodoValido(t *testing.T) {
	var out bytes.Buffer
	err := runParse(&out, "Doliprane;611;;;8,5;12;7;20;5\n\nVitamine C", false)
	require.NoError(t, err)

	var res catalog.ParseResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Len(t, res.Items, 2)
	assert.Empty(t, res.Errors)
}

func TestRunParse_ConErrores(t *testing.T) {
	var out bytes.Buffer
	err := runParse(&out, "nom;code\nAspirine;;;;x", true)
	assert.ErrorIs(t, err, errLinesRejected)

	var res catalog.ParseResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Line)
}

func TestParseCommand_Windows1252(t *testing.T) {
	path := filepath.Join(t.TempDir(), "produits.csv")
	require.NoError(t, os.WriteFile(path, []byte{'C', 'r', 0xE8, 'm', 'e', ';', ';', ';', ';', '1', ';', '2'}, 0o600))

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"parse", path, "--encoding", "windows-1252"})
	require.NoError(t, cmd.Execute())

	var res catalog.ParseResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Crème", res.Items[0].Name)
}

func TestParseCommand_Errores(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"parse", "no-existe.csv"})
	assert.ErrorContains(t, cmd.Execute(), "no-existe.csv")

	cmd = rootCmd()
	cmd.SetArgs([]string{"parse", "x.csv", "--encoding", "ebcdic"})
	assert.ErrorContains(t, cmd.Execute(), "encoding no soportado")

	cmd = rootCmd()
	cmd.SetArgs([]string{"load", "x.csv"})
	assert.ErrorContains(t, cmd.Execute(), "org")
}
