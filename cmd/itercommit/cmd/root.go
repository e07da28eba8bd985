package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"itercommit/internal/cmdutil"
	"itercommit/internal/params"
)

const (
	flagHome          = "home"
	flagMaxIterations = "max-iterations"
	flagTimeout       = "timeout"
	flagHash          = "hash"
	flagWordOrder     = "word-order"
	flagLogLevel      = "log-level"
	flagLogFormat     = "log-format"
)

// flag -> config key
var configKeys = map[string]string{
	flagHome:          "home",
	flagMaxIterations: "max_iterations",
	flagTimeout:       "timeout",
	flagHash:          "hash",
	flagWordOrder:     "word_order",
	flagLogLevel:      "log_level",
	flagLogFormat:     "log_format",
}

// DefaultHome is where config.toml and registry data live.
var DefaultHome = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + params.AppName
	}
	return filepath.Join(home, "."+params.AppName)
}()

// appState is filled by the root PersistentPreRunE and read by subcommands.
type appState struct {
	v      *viper.Viper
	home   string
	params params.Params
	logger log.Logger
}

// NewRootCmd creates the root command. It is called once in main.
func NewRootCmd() *cobra.Command {
	s := &appState{v: viper.New(), logger: log.NewNopLogger()}

	rootCmd := &cobra.Command{
		Use:           params.AppName,
		Short:         "Iterated-hash commitments over a public round count and a private secret",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			return s.load(cmd)
		},
	}

	def := params.DefaultParams()
	pf := rootCmd.PersistentFlags()
	pf.String(flagHome, DefaultHome, "directory holding config.toml and registry data")
	pf.Uint64(flagMaxIterations, def.MaxIterations, "reject inputs asking for more hash rounds (0 = unbounded)")
	pf.Duration(flagTimeout, def.Timeout, "deadline for one commitment (0 = none)")
	pf.String(flagHash, def.Hash, "hash primitive (see `hashes`)")
	pf.String(flagWordOrder, def.WordOrder, "byte order of each output word (little|big)")
	pf.String(flagLogLevel, "info", "log level (trace|debug|info|warn|error)")
	pf.String(flagLogFormat, cmdutil.LogFormatPlain, "log format (plain|json)")

	rootCmd.AddCommand(
		commitCmd(s),
		verifyCmd(s),
		encodeCmd(),
		hashesCmd(),
		registryCmd(s),
	)
	return rootCmd
}

// load resolves flags, ITERCOMMIT_* env vars and <home>/config.toml, in that
// order of precedence.
func (s *appState) load(cmd *cobra.Command) error {
	v := s.v
	v.SetEnvPrefix(params.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for flag, key := range configKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	s.home = v.GetString("home")
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(s.home)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	p := params.DefaultParams()
	if err := v.Unmarshal(&p); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	s.params = p

	logger, err := cmdutil.NewLogger(cmd.ErrOrStderr(), v.GetString("log_format"), v.GetString("log_level"))
	if err != nil {
		return err
	}
	s.logger = logger
	return nil
}
