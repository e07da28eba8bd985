package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"itercommit/internal/commitcrypto"
	"itercommit/internal/engine"
	"itercommit/internal/runner"
)

func verifyCmd(s *appState) *cobra.Command {
	var (
		in    inputFlags
		words string
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Recompute the commitment and compare it with published words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			want, err := engine.ParseWords(words)
			if err != nil {
				return err
			}
			buf, err := in.read()
			if err != nil {
				return err
			}
			defer commitcrypto.Wipe(buf)

			r, err := runner.New(s.params, s.logger)
			if err != nil {
				return err
			}
			c, err := r.Verify(cmd.Context(), buf, want)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d iterations of %s match\n", c.Iterations, c.Hash)
			return err
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&words, "words", "", "expected words, comma-separated (decimal or 0x hex)")
	_ = cmd.MarkFlagRequired("words")
	return cmd
}
