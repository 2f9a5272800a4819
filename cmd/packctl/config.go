package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/danmuck/wirepack/internal/config"
)

const defaultConfigPath = "cmd/packctl/config.toml"

// loadConfig returns defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runInit(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	output := fs.String("output", defaultConfigPath, "output path for config template")
	force := fs.Bool("force", false, "overwrite existing config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := config.WriteTemplate(*output, *force); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote config template to %s\n", *output)
	return nil
}

func runValidate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	path := fs.String("config", defaultConfigPath, "config path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(*path)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "validated %s (node %s, listen %s, multiplex %t)\n",
		*path, cfg.NodeID, cfg.ListenAddr, cfg.Exchange.Multiplex)
	return nil
}
