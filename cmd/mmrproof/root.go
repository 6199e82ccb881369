package main

import (
	"io"
	"strings"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-mmrproof/hashing"
	"github.com/spf13/cobra"
)

type app struct {
	cfg    Config
	log    logger.Logger
	hasher *hashing.Hasher
	out    io.Writer

	configPath string
	hasherName string
	logLevel   string
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:           "mmrproof",
		Short:         "build merkle mountain ranges, prove and verify leaf inclusion",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "yaml configuration file")
	rootCmd.PersistentFlags().StringVar(&a.hasherName, "hasher", "", "hasher name, one of "+strings.Join(hashing.Names(), ", "))
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, NOOP disables logging")

	rootCmd.AddCommand(newBuildCmd(a))
	rootCmd.AddCommand(newVerifyCmd(a))
	rootCmd.AddCommand(newSignCmd(a))
	return rootCmd
}

// init loads the configuration, applies the flag overrides and starts the
// logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := parseConfig(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("hasher") {
		cfg.Hasher = a.hasherName
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	a.hasher, err = hashing.ByName(cfg.Hasher)
	if err != nil {
		return err
	}

	logger.New(cfg.LogLevel)
	a.log = logger.Sugar.WithServiceName("mmrproof")
	a.log.Debugf("hasher %s, concurrency %d", a.hasher.Name(), cfg.Concurrency)
	return nil
}
