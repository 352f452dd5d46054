// seraphine-import valida y carga lotes de productos desde archivos de texto
// "nombre;código;categoría;forma;compra;venta;tva;stock;umbral[;notas]".
//
// Uso:
//
//	seraphine-import parse productos.csv --encoding windows-1252
//	seraphine-import load productos.csv --org <uuid> --skip-header
//	seraphine-import orgs
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errLinesRejected señala que el lote tuvo líneas inválidas; el detalle ya se imprimió.
var errLinesRejected = errors.New("hay líneas rechazadas")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errLinesRejected) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	encoding   string
	skipHeader bool
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "seraphine-import",
		Short:         "Importación por lotes del catálogo de productos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.encoding, "encoding", "auto", "Codificación del archivo (auto, utf-8, windows-1252, iso-8859-1)")
	cmd.PersistentFlags().BoolVar(&opts.skipHeader, "skip-header", false, "Ignorar la primera línea no vacía")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Nivel de log (debug, info, warn, error)")

	cmd.AddCommand(parseCmd(opts), loadCmd(opts), orgsCmd(opts))
	return cmd
}
