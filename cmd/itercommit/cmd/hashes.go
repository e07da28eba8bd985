package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"itercommit/internal/commitcrypto"
)

func hashesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hashes",
		Short: "List the available hash primitives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range commitcrypto.Names() {
				suffix := ""
				if name == commitcrypto.DefaultHash {
					suffix = " (default)"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, suffix); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
