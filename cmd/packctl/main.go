package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/wirepack/internal/logging"
)

const (
	msgObjects     uint32 = 1
	objectsVersion uint32 = 1
)

const usage = `usage: packctl <command> [flags]

commands:
  dump      pack the sample object set and print it with a hex dump
  serve     accept sessions and decode incoming object sets
  send      dial a server (or MQTT broker with -mqtt) and send the sample set
  init      write a default config file
  validate  load and validate a config file
`

func main() {
	logging.ConfigureRuntime()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "packctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return flag.ErrHelp
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "dump":
		return runDump(rest, stdout)
	case "serve":
		return runServe(ctx, rest)
	case "send":
		return runSend(ctx, rest)
	case "init":
		return runInit(rest, stdout)
	case "validate":
		return runValidate(rest, stdout)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q (supported: dump, serve, send, init, validate)", cmd)
	}
}
