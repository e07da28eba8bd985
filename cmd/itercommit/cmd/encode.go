package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"itercommit/internal/codec"
	"itercommit/internal/commitcrypto"
	"itercommit/internal/engine"
)

const flagIterations = "iterations"

func encodeCmd() *cobra.Command {
	var (
		iterations uint64
		secretFile string
		fill       string
		fromJSON   string
		outDir     string
		single     bool
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Write public.bin/private.bin (or input.bin) for a round count and secret",
		Long: `Write the binary input for a round count and secret.

With --from-json, read {"public":{"n":N},"private":{"secret":"..."}} instead,
write input.bin and echo the public part to public.json. The secret string
must be exactly 32 bytes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if fromJSON != "" {
				if cmd.Flags().Changed(flagIterations) || secretFile != "" || fill != "" {
					return errors.New("--from-json carries the round count and secret; drop --iterations/--secret-file/--fill")
				}
				pub, err := codec.ConvertInputJSON(fromJSON, outDir)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "wrote %s and %s (n = %d)\n",
					filepath.Join(outDir, codec.InputFile), filepath.Join(outDir, codec.PublicJSONFile), pub.N)
				return err
			}
			if !cmd.Flags().Changed(flagIterations) {
				return errors.New("missing --iterations (or --from-json)")
			}

			secret, err := loadSecret(secretFile, fill)
			if err != nil {
				return err
			}
			defer commitcrypto.Wipe(secret)

			if single {
				path := filepath.Join(outDir, codec.InputFile)
				if err := codec.WriteInputFile(path, iterations, secret); err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "wrote %s\n", path)
				return err
			}
			if err := codec.WriteInputFiles(outDir, iterations, secret); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "wrote %s and %s\n",
				filepath.Join(outDir, codec.PublicFile), filepath.Join(outDir, codec.PrivateFile))
			return err
		},
	}
	cmd.Flags().Uint64Var(&iterations, flagIterations, 0, "public hash round count")
	cmd.Flags().StringVar(&secretFile, "secret-file", "", "file holding the secret: 32 raw bytes or 64 hex digits")
	cmd.Flags().StringVar(&fill, "fill", "", "use a secret of 32 copies of this byte (e.g. 0xFF)")
	cmd.Flags().StringVar(&fromJSON, "from-json", "", "convert an input.json into input.bin and public.json")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "output directory")
	cmd.Flags().BoolVar(&single, "single", false, "write one concatenated input.bin")
	return cmd
}

func loadSecret(secretFile, fill string) ([]byte, error) {
	switch {
	case secretFile != "" && fill != "":
		return nil, errors.New("use either --secret-file or --fill, not both")
	case fill != "":
		v, err := strconv.ParseUint(fill, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("--fill: %w", err)
		}
		secret := make([]byte, engine.PrivateLen)
		for i := range secret {
			secret[i] = byte(v)
		}
		return secret, nil
	case secretFile != "":
		raw, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read secret: %w", err)
		}
		defer commitcrypto.Wipe(raw)
		return codec.ParseSecret(raw)
	default:
		return nil, errors.New("missing secret: pass --secret-file or --fill")
	}
}
