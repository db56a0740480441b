package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geange/inferrer"
	"github.com/geange/inferrer/automaton"
	"github.com/geange/inferrer/internal/logging"
)

var errNoSamples = errors.New("either --samples or --positive/--negative is required")

type learnConfig struct {
	Algorithm string   `mapstructure:"algorithm"`
	Alphabet  []string `mapstructure:"alphabet"`
	Samples   string   `mapstructure:"samples"`
	Positive  string   `mapstructure:"positive"`
	Negative  string   `mapstructure:"negative"`
	ShowDFA   bool     `mapstructure:"show_dfa"`
	Metrics   bool     `mapstructure:"metrics"`
}

func newLearnCmd(v *viper.Viper) *cobra.Command {
	learnCmd := &cobra.Command{
		Use:   "learn",
		Short: "Learn an automaton and print it as a regular expression",
		Long: `Learn reads a sample, runs the chosen algorithm and prints a regular expression
for the learned language. The sample is either a yaml file with positive and negative
lists, or two plain files with one example per line where an empty line or ε is the
empty string.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(v)
			if err != nil {
				return err
			}
			return runLearn(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}

	flags := learnCmd.Flags()
	flags.StringP("algorithm", "a", string(inferrer.RPNI), "Algorithm (gold, rpni, lstar, nlstar)")
	flags.StringSlice("alphabet", nil, "Alphabet symbols; derived from the sample when empty")
	flags.String("samples", "", "YAML file with positive and negative lists")
	flags.String("positive", "", "File with one positive example per line")
	flags.String("negative", "", "File with one negative example per line")
	flags.Bool("show-dfa", false, "Also print the transition table")
	flags.Bool("metrics", false, "Print oracle query counters")

	for key, flag := range map[string]string{
		"learn.algorithm": "algorithm",
		"learn.alphabet":  "alphabet",
		"learn.samples":   "samples",
		"learn.positive":  "positive",
		"learn.negative":  "negative",
		"learn.show_dfa":  "show-dfa",
		"learn.metrics":   "metrics",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
	return learnCmd
}

func runLearn(out, logOut io.Writer, cfg config) error {
	logger, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return err
	}

	algorithm, err := inferrer.ParseAlgorithm(cfg.Learn.Algorithm)
	if err != nil {
		return err
	}
	pos, neg, err := loadSamples(cfg.Learn)
	if err != nil {
		return err
	}

	alphabet := automaton.AlphabetOf(append(slices.Clone(pos), neg...)...)
	if len(cfg.Learn.Alphabet) > 0 {
		if alphabet, err = automaton.NewAlphabet(cfg.Learn.Alphabet...); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	l, err := inferrer.NewLearner(alphabet, algorithm,
		inferrer.WithExamples(pos, neg),
		inferrer.WithLogger(logger),
		inferrer.WithRegistry(reg))
	if err != nil {
		return err
	}
	dfa, err := l.Learn()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, dfa.ToRegex())
	if cfg.Learn.ShowDFA {
		fmt.Fprint(out, dfa.String())
	}
	if cfg.Learn.Metrics {
		return printMetrics(out, reg)
	}
	return nil
}

func loadSamples(cfg learnConfig) (pos, neg []string, err error) {
	switch {
	case cfg.Samples != "":
		return readSampleFile(cfg.Samples)
	case cfg.Positive != "" || cfg.Negative != "":
		if cfg.Positive != "" {
			if pos, err = readWordList(cfg.Positive); err != nil {
				return nil, nil, err
			}
		}
		if cfg.Negative != "" {
			if neg, err = readWordList(cfg.Negative); err != nil {
				return nil, nil, err
			}
		}
		return pos, neg, nil
	}
	return nil, nil, errNoSamples
}

// printMetrics writes one "name{labels} value" line per counter.
func printMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			sort.Strings(labels)
			fmt.Fprintf(out, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}
