// bbmc compiles a Blockbench .bbmodel file into the binary .bbm format.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/bbmc/internal/compiler"
	"github.com/Faultbox/bbmc/internal/config"
	"github.com/Faultbox/bbmc/internal/logger"
	"github.com/Faultbox/bbmc/internal/preview"
	"github.com/Faultbox/bbmc/pkg/bbm"
	"github.com/Faultbox/bbmc/pkg/bbmodel"
)

func main() {
	config.ParseFlags()

	input := config.InputPath()
	if input == "" {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg, input, os.Stdout); err != nil {
		logger.Log.Error("compilation failed", zap.String("input", input), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}

	if path := config.SaveConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `bbmc - Blockbench model compiler

Usage:
  bbmc [options] <model.bbmodel>

Options:`)
	flag.PrintDefaults()
}

// run compiles input and writes every configured output. The bone tree dump,
// when enabled, goes to out.
func run(cfg *config.Config, input string, out io.Writer) error {
	doc, err := bbmodel.ParseFile(input)
	if err != nil {
		return err
	}

	c := compiler.New(compiler.Options{
		Strict: cfg.Compile.Strict,
		Logger: logger.Named("compiler"),
	})
	m, err := c.Compile(doc)
	if err != nil {
		return errors.Wrapf(err, "compiling %s", input)
	}

	if cfg.Compile.Dump {
		dumper := spew.ConfigState{
			Indent:                  "  ",
			DisableCapacities:       true,
			DisablePointerAddresses: true,
		}
		dumper.Fdump(out, m.Root)
	}

	if err := bbm.WriteFile(cfg.Output.Path, m); err != nil {
		return err
	}
	logger.Log.Info("wrote model", zap.String("path", cfg.Output.Path))

	if cfg.Output.GLTFPath != "" {
		if err := preview.WriteSkeleton(cfg.Output.GLTFPath, m); err != nil {
			return err
		}
		logger.Log.Info("wrote preview", zap.String("path", cfg.Output.GLTFPath))
	}
	return nil
}
