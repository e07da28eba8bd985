package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/cometbft/cometbft/abci/server"
	"github.com/spf13/cobra"

	"itercommit/internal/registry"
)

func registryCmd(s *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Public-output registry (CometBFT ABCI application)",
	}

	var (
		addr      string
		transport string
	)
	start := &cobra.Command{
		Use:   "start",
		Short: "Serve the registry over ABCI until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := registry.New(s.home, s.logger)
			if err != nil {
				return fmt.Errorf("init registry: %w", err)
			}
			defer func() { _ = a.Close() }()

			srv, err := server.NewServer(addr, transport, a)
			if err != nil {
				return fmt.Errorf("start abci server: %w", err)
			}
			if err := srv.Start(); err != nil {
				return fmt.Errorf("abci server start: %w", err)
			}
			defer func() { _ = srv.Stop() }()
			s.logger.Info("registry serving", "addr", addr, "transport", transport, "home", s.home)

			// Wait for signal.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
	start.Flags().StringVar(&addr, "addr", "tcp://127.0.0.1:26658", "ABCI listen address")
	start.Flags().StringVar(&transport, "transport", "socket", "ABCI transport (socket|grpc)")

	cmd.AddCommand(start)
	return cmd
}
