package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"itercommit/internal/codec"
	"itercommit/internal/commitcrypto"
	"itercommit/internal/runner"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func commitCmd(s *appState) *cobra.Command {
	var (
		in     inputFlags
		format string
		label  string
		asTx   bool
	)
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Hash the secret the given number of times and print the public commitment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatText && format != formatJSON {
				return fmt.Errorf("--format must be %q or %q", formatText, formatJSON)
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
			c, err := r.Run(cmd.Context(), buf)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asTx:
				tx, err := codec.NewPublishTx(c, label)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(tx))
				return err
			case format == formatJSON:
				b, err := json.MarshalIndent(c, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			default:
				if _, err := fmt.Fprintf(out, "iterations = %d\nhash = %s\nword_order = %s\n", c.Iterations, c.Hash, c.Order); err != nil {
					return err
				}
				return runner.Publish(c, runner.WriterPublisher{W: out})
			}
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text|json)")
	cmd.Flags().StringVar(&label, "label", "", "label for the registry publish tx")
	cmd.Flags().BoolVar(&asTx, "tx", false, "print a registry publish tx instead of the commitment")
	return cmd
}
