package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/application/usecase"
	"github.com/jhoicas/seraphine/internal/domain/catalog"
	"github.com/jhoicas/seraphine/internal/infrastructure/postgres"
	"github.com/jhoicas/seraphine/pkg/textenc"
)

func parseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE",
		Short: "Valida el archivo sin tocar la base de datos e imprime el resultado en JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args[0], opts.encoding)
			if err != nil {
				return err
			}
			return runParse(cmd.OutOrStdout(), text, opts.skipHeader)
		},
	}
}

// runParse imprime el ParseResult; devuelve errLinesRejected si alguna línea falló.
func runParse(w io.Writer, text string, skipHeader bool) error {
	if skipHeader {
		text = catalog.BlankFirstLine(text)
	}
	res := catalog.ParseBatchProducts(text)
	if err := writeJSON(w, res); err != nil {
		return err
	}
	if len(res.Errors) > 0 {
		return errLinesRejected
	}
	return nil
}

func loadCmd(opts *options) *cobra.Command {
	var (
		organizationID string
		dryRun         bool
	)
	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Crea los productos del archivo en la organización indicada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args[0], opts.encoding)
			if err != nil {
				return err
			}
			return withDatabase(cmd.Context(), opts, func(ctx context.Context, env *cliEnv) error {
				uc := usecase.NewProductUseCase(postgres.NewProductRepository(env.pool), postgres.NewTxRunner(env.pool), env.log)
				out, err := uc.Import(ctx, organizationID, "", text, dto.ImportOptions{
					DryRun:     dryRun,
					SkipHeader: opts.skipHeader,
				})
				if err != nil {
					return err
				}
				if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
				if len(out.Errors) > 0 {
					return errLinesRejected
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&organizationID, "org", "", "ID de la organización destino")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validar contra la base sin crear nada")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}

func orgsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "orgs",
		Short: "Lista las organizaciones (para obtener el ID de --org)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd.Context(), opts, func(ctx context.Context, env *cliEnv) error {
				uc := usecase.NewOrganizationUseCase(postgres.NewOrganizationRepository(env.pool))
				out, err := uc.List(ctx, 100, 0)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, o := range out.Items {
					fmt.Fprintf(w, "%s\t%s\t%s\n", o.ID, o.ICE, o.Name)
				}
				return nil
			})
		},
	}
}

// readText lee el archivo y lo normaliza a UTF-8.
func readText(path, enc string) (string, error) {
	if !textenc.Supported(enc) {
		return "", fmt.Errorf("encoding no soportado: %q", enc)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("leer %s: %w", path, err)
	}
	return textenc.Decode(data, enc)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
