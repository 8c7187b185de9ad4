package main

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/command"
	appconfig "github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/config"
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/engine"
	"github.com/SeanAlpaca818/Advanced-Database-Systems/pkg/parser"
)

func newRunCommand() *cobra.Command {
	var configPath string
	cfg := appconfig.DefaultConf

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Consume a workload command stream and print the resulting output",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := appconfig.Load(configPath)
				if err != nil {
					return errors.Wrapf(err, "loading config %q", configPath)
				}
				flags := cmd.Flags()
				if flags.Changed("input") {
					loaded.Input = cfg.Input
				}
				if flags.Changed("output") {
					loaded.Output = cfg.Output
				}
				if flags.Changed("log-level") {
					loaded.LogLevel = cfg.LogLevel
				}
				if flags.Changed("log-format") {
					loaded.LogFormat = cfg.LogFormat
				}
				if flags.Changed("echo") {
					loaded.Echo = cfg.Echo
				}
				cfg = loaded
			}
			return runWorkload(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Input, "input", "i", cfg.Input, `workload file path, "-" for stdin`)
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, `output file path, "-" for stdout`)
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn, or error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "console or json")
	flags.BoolVar(&cfg.Echo, "echo", cfg.Echo, "echo each input line before dispatching it")
	flags.StringVarP(&configPath, "config", "c", "", "path to a toml config file")

	return cmd
}

func runWorkload(cfg appconfig.Config) error {
	logger, err := buildLogger(cfg)
	if err != nil {
		return errors.Wrap(err, "building logger")
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	in, closeIn, err := openInput(cfg.Input)
	if err != nil {
		return errors.Wrapf(err, "opening input %q", cfg.Input)
	}
	defer closeIn()

	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		return errors.Wrapf(err, "opening output %q", cfg.Output)
	}
	defer closeOut()

	e := engine.New(out, engine.WithLogger(sugar))

	hadParseError := false
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if cfg.Echo {
			sugar.Debugf("line: %s", line)
		}
		cmd, err := parser.ParseLine(line)
		if err != nil {
			sugar.Warnf("parse error: %v", err)
			hadParseError = true
			continue
		}
		if cmd.Kind == command.Comment || cmd.Kind == command.Empty {
			continue
		}
		if err := e.Dispatch(cmd); err != nil {
			sugar.Warnf("dispatch error on %q: %v", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading input")
	}
	if hadParseError {
		return errors.New("one or more lines could not be parsed")
	}
	return nil
}

func buildLogger(cfg appconfig.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing log level %q", cfg.LogLevel)
	}
	zapCfg.Level = level
	return zapCfg.Build()
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
