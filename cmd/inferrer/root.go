package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geange/inferrer/internal/logging"
)

// config is everything a command reads through viper. Keys resolve from flags, then
// INFERRER_* environment variables, then the --config file.
type config struct {
	Log   logging.Config `mapstructure:"log"`
	Learn learnConfig    `mapstructure:"learn"`
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "inferrer",
		Short: "Learn regular languages from examples or from an oracle",
		Long: `inferrer identifies a finite automaton for a regular language. The passive
algorithms (gold, rpni) learn from positive and negative examples; the active ones
(lstar, nlstar) ask membership and equivalence queries, answered here from the
examples.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Configuration file path (yaml)")
	rootCmd.PersistentFlags().String("log-level", string(logging.LogLevelWarning), "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", string(logging.LogFormatText), "Log format (text, json)")

	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(newLearnCmd(v))
	return rootCmd
}

func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix("INFERRER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func readConfig(v *viper.Viper) (config, error) {
	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Log.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
